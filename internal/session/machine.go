// Package session owns the single GameSession of a ride and is the only
// code that writes to it. Hosts feed it commands and input events, call
// Tick at a fixed rate and read Snapshot for rendering.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/input"
	"github.com/vovakirdan/motorush/internal/obstacle"
	"github.com/vovakirdan/motorush/internal/powerup"
)

// EndReason explains why a run finished.
type EndReason string

const (
	EndCrashed   EndReason = "crashed"   // Out of lives
	EndAbandoned EndReason = "abandoned" // Left from pause
)

// Result summarizes a finished run for listeners.
type Result struct {
	RunID      string
	Reason     EndReason
	Difficulty entity.Difficulty
	Score      int
	Coins      int
	Distance   float64
	Level      int
	Ticks      uint64
	Upgrades   entity.Upgrades
	Garage     Garage // Garage after banking this run's coins
}

// GestureStarter acquires the gesture pipeline and returns the handle that
// releases it.
type GestureStarter func() (io.Closer, error)

// Options configure a Machine.
type Options struct {
	Config config.Config
	Seed   int64
	Clock  input.Clock
	Logger *log.Logger
	Garage Garage
}

// Machine is the session state machine.
type Machine struct {
	cfg    config.Config
	seed   int64
	log    *log.Logger
	input  *input.Unifier
	diff   *config.DifficultyManager
	obst   *obstacle.Manager
	pickup *powerup.Manager

	s      entity.GameSession
	garage Garage
	runID  string

	listeners     []func(Result)
	startGesture  GestureStarter
	gestureCloser io.Closer
	closed        bool
}

// New creates a machine in the menu state with a freshly reset session.
func New(opts Options) *Machine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	cfg.Normalize()

	preset, _ := entity.ParseDifficulty(cfg.Difficulty.Default)

	m := &Machine{
		cfg:    cfg,
		seed:   opts.Seed,
		log:    logger,
		input:  input.NewUnifier(cfg.Input, opts.Clock),
		diff:   config.NewDifficultyManager(cfg.Physics, cfg.Difficulty, preset),
		obst:   obstacle.NewManager(opts.Seed, cfg.Obstacles),
		pickup: powerup.NewManager(opts.Seed, cfg.PowerUps),
		garage: opts.Garage.normalized(),
	}
	m.input.SetLogger(logger)
	m.s.Difficulty = preset
	m.s.Control = entity.ControlKeyboard
	m.s.DayMode = true
	m.applyControl()
	m.Reset()
	return m
}

// Reset replaces the session with the initial state of a run, keeping the
// menu selections. Pools are rebuilt from the machine seed, so two resets
// in a row produce identical sessions.
func (m *Machine) Reset() {
	m.obst.Reset(m.seed)
	m.pickup.Reset(m.seed)
	m.input.Reset()

	m.s = entity.GameSession{
		State:      m.s.State,
		Difficulty: m.s.Difficulty,
		DayMode:    m.s.DayMode,
		Control:    m.s.Control,
		Motorcycle: entity.NewMotorcycle(m.garage.Upgrades),
		Obstacles:  m.obst.Layout(),
		Pickups:    m.pickup.Layout(),
		Effects:    entity.NewEffects(),
		Stats:      entity.NewGameStats(),
	}
	m.s.Motorcycle.Speed = m.cfg.Physics.InitialSpeed
}

// Reseed sets the seed used by the next reset.
func (m *Machine) Reseed(seed int64) {
	m.seed = seed
}

// Seed returns the seed of the current layout.
func (m *Machine) Seed() int64 {
	return m.seed
}

// Snapshot returns a deep copy of the session for rendering.
func (m *Machine) Snapshot() entity.GameSession {
	return m.s.Clone()
}

// State returns the current state.
func (m *Machine) State() entity.State {
	return m.s.State
}

// Input returns the unifier hosts submit raw events to.
func (m *Machine) Input() *input.Unifier {
	return m.input
}

// Config returns the normalized configuration the machine runs with.
func (m *Machine) Config() config.Config {
	return m.cfg
}

// RunID identifies the current or last run. Empty before the first start.
func (m *Machine) RunID() string {
	return m.runID
}

// OnRunEnd registers a listener called synchronously when a run finishes.
func (m *Machine) OnRunEnd(fn func(Result)) {
	m.listeners = append(m.listeners, fn)
}

// SetGestureStarter installs the function used to acquire the gesture
// pipeline when the gesture control method is selected.
func (m *Machine) SetGestureStarter(fn GestureStarter) {
	m.startGesture = fn
}

// Close releases gesture resources. The machine stays usable on keyboard
// and touch. Safe to call multiple times.
func (m *Machine) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.releaseGesture()
}

// startRun resets the session and enters playing with a new run ID.
func (m *Machine) startRun() {
	m.Reset()
	m.runID = uuid.NewString()
	m.s.State = entity.StatePlaying
	m.applyControl()
	m.log.Info("run started",
		"run", m.runID,
		"difficulty", m.s.Difficulty,
		"seed", m.seed,
		"control", m.s.Control,
	)
}

// endRun banks coins and notifies listeners.
func (m *Machine) endRun(reason EndReason) {
	m.garage.Coins += m.s.Stats.Coins
	res := Result{
		RunID:      m.runID,
		Reason:     reason,
		Difficulty: m.s.Difficulty,
		Score:      m.s.Stats.Score,
		Coins:      m.s.Stats.Coins,
		Distance:   m.s.Stats.Distance,
		Level:      m.s.Stats.Level,
		Ticks:      m.s.Tick,
		Upgrades:   m.s.Motorcycle.Upgrades,
		Garage:     m.garage,
	}
	m.log.Info("run ended",
		"run", res.RunID,
		"reason", reason,
		"score", res.Score,
		"distance", int(res.Distance),
		"level", res.Level,
	)
	for _, fn := range m.listeners {
		fn(res)
	}
}

// applyControl enables the input sources for the selected control method.
// Keyboard and touch stay live under gesture control.
func (m *Machine) applyControl() {
	m.input.SetEnabled(input.SourceKeyboard, true)
	m.input.SetEnabled(input.SourceTouch, true)
	m.input.SetEnabled(input.SourceGesture, m.s.Control == entity.ControlGesture)
	m.syncGesture()
}

// syncGesture holds the gesture pipeline only while a gesture-controlled run
// is in progress and releases it on every other state.
func (m *Machine) syncGesture() {
	inRun := m.s.State == entity.StatePlaying || m.s.State == entity.StatePaused
	if m.s.Control != entity.ControlGesture || !inRun || m.closed {
		if err := m.releaseGesture(); err != nil {
			m.log.Warn("gesture release failed", "err", err)
		}
		return
	}
	if m.gestureCloser != nil || m.startGesture == nil {
		return
	}
	c, err := m.startGesture()
	if err != nil {
		m.log.Warn("gesture input unavailable", "err", err)
		m.input.SetEnabled(input.SourceGesture, false)
		return
	}
	m.gestureCloser = c
}

func (m *Machine) releaseGesture() error {
	if m.gestureCloser == nil {
		return nil
	}
	c := m.gestureCloser
	m.gestureCloser = nil
	return c.Close()
}

// tickDelta normalizes a host delta.
func tickDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	return dt
}
