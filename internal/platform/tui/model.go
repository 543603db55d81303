package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/input"
	"github.com/vovakirdan/motorush/internal/session"
	"github.com/vovakirdan/motorush/internal/storage"
)

// commandOrder is the order in which queued actions are applied on a tick.
var commandOrder = []core.Action{
	core.ActionBack,
	core.ActionRestart,
	core.ActionPause,
	core.ActionConfirm,
	core.ActionUpgrades,
	core.ActionBuyEngine,
	core.ActionBuyHandling,
	core.ActionBuyDurability,
	core.ActionDifficulty,
	core.ActionControl,
	core.ActionDayNight,
}

// Options configure a Model.
type Options struct {
	Machine *session.Machine
	Store   *storage.Store // Optional; runs and the garage are not persisted without it
	Player  string
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

// Model is the Bubble Tea model for a ride.
type Model struct {
	machine     *session.Machine
	store       *storage.Store
	player      string
	logger      *log.Logger
	screen      *core.Screen
	config      core.RuntimeConfig
	keys        *KeyMapper
	help        help.Model
	inputFrame  core.InputFrame
	best        int
	status      string
	statusTicks int
	quitting    bool
}

// NewModel creates a new Bubble Tea model driving the given machine.
// Finished runs are recorded in the store under the player's name.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		machine:    opts.Machine,
		store:      opts.Store,
		player:     opts.Player,
		logger:     logger,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.machine.OnRunEnd(recordRun(m.store, m.player, logger))
	m.refreshBest()
	return m
}

// recordRun returns a run-end listener that persists the result.
func recordRun(store *storage.Store, player string, logger *log.Logger) func(session.Result) {
	return func(res session.Result) {
		if store == nil {
			return
		}
		if err := store.RecordResult(player, res); err != nil {
			logger.Warn("could not record run", "run", res.RunID, "err", err)
		}
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey routes lane keys to the input unifier and queues every other
// action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case action.IsMovement():
		if m.machine.State() != entity.StatePlaying {
			return m, nil
		}
		k := input.KeyLeft
		if action == core.ActionRight {
			k = input.KeyRight
		}
		m.machine.Input().Submit(input.SourceKeyboard, input.KeyEvent{Key: k})
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns a left-button press and the following release into a
// touch swipe. Some terminals report releases without a button.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.machine.State() != entity.StatePlaying {
		return m, nil
	}
	scale := m.machine.Config().Input.TouchPixelsPerCell
	x, y := float64(msg.X)*scale, float64(msg.Y)*scale

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.machine.Input().Submit(input.SourceTouch, input.TouchStart{X: x, Y: y})
	case tea.MouseActionRelease:
		m.machine.Input().Submit(input.SourceTouch, input.TouchEnd{X: x, Y: y})
	}
	return m, nil
}

// handleResize processes window resize events. The last row holds the help line.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies queued actions and advances the simulation one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for _, a := range commandOrder {
		if m.inputFrame.Has(a) {
			m.apply(a)
		}
	}
	m.inputFrame.Clear()

	report := m.machine.Tick(tickInterval(m.config.TickRate))
	if report.GameOver {
		m.refreshBest()
	}

	if m.statusTicks > 0 {
		m.statusTicks--
		if m.statusTicks == 0 {
			m.status = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// apply runs one session command. Commands that do not fit the current
// state are ignored.
func (m *Model) apply(a core.Action) {
	mc := m.machine
	var err error

	switch a {
	case core.ActionConfirm:
		err = mc.Start()
	case core.ActionPause:
		err = mc.TogglePause()
	case core.ActionBack:
		if mc.State() == entity.StateUpgrades {
			err = mc.CloseUpgrades()
		} else {
			err = mc.ReturnToMenu()
		}
		m.refreshBest()
	case core.ActionRestart:
		err = mc.Restart()
	case core.ActionUpgrades:
		err = mc.OpenUpgrades()
	case core.ActionBuyEngine, core.ActionBuyHandling, core.ActionBuyDurability:
		kind, _ := upgradeFor(a)
		if err = mc.BuyUpgrade(kind); err == nil {
			m.saveGarage()
			m.setStatus(fmt.Sprintf("%s upgraded to level %d", kind, mc.Garage().Upgrades.Level(kind)))
		}
	case core.ActionDifficulty:
		err = mc.SetDifficulty(mc.Snapshot().Difficulty.Next())
		m.refreshBest()
	case core.ActionControl:
		next := entity.ControlGesture
		if mc.Snapshot().Control == entity.ControlGesture {
			next = entity.ControlKeyboard
		}
		err = mc.SetControl(next)
	case core.ActionDayNight:
		mc.ToggleDayNight()
	}

	if err == nil {
		return
	}
	if errors.Is(err, session.ErrInvalidTransition) {
		m.logger.Debug("command ignored", "action", a, "err", err)
		return
	}
	m.setStatus(statusFor(err))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTicks = int(statusTTL / tickInterval(m.config.TickRate))
}

// saveGarage persists the garage after a purchase.
func (m *Model) saveGarage() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveGarage(m.player, m.machine.Garage()); err != nil {
		m.logger.Warn("could not save garage", "player", m.player, "err", err)
	}
}

// refreshBest reloads the high score for the selected difficulty.
func (m *Model) refreshBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.machine.Snapshot().Difficulty.String())
	if err != nil {
		m.logger.Warn("could not load high score", "err", err)
		return
	}
	m.best = best
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	dir := filepath.Join(home, ".motorush", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("motorush_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.setStatus("screenshot saved")
}

func (m Model) draw() entity.GameSession {
	f := NewFrame(m.machine)
	f.Best = m.best
	f.Status = m.status
	Draw(m.screen, f)
	return f.Session
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.draw()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen, PaletteFor(s.DayMode)) + "\n" +
		helpStyle.Render(m.help.ShortHelpView(m.keys.Keys().ForState(s.State)))
}

// Finish ends a run still in progress as abandoned and releases the
// machine's gesture resources.
func Finish(mc *session.Machine) error {
	if mc.State() == entity.StatePlaying {
		if err := mc.TogglePause(); err != nil {
			return err
		}
	}
	if mc.State() == entity.StatePaused {
		if err := mc.ReturnToMenu(); err != nil {
			return err
		}
	}
	return mc.Close()
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	if ferr := Finish(opts.Machine); ferr != nil {
		model.logger.Warn("could not finish session", "err", ferr)
	}
	return err
}
