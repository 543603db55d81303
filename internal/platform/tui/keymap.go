package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
)

// KeyMap defines the key bindings for the ride.
type KeyMap struct {
	Left          key.Binding
	Right         key.Binding
	Confirm       key.Binding
	Pause         key.Binding
	Back          key.Binding
	Restart       key.Binding
	Upgrades      key.Binding
	BuyEngine     key.Binding
	BuyHandling   key.Binding
	BuyDurability key.Binding
	Difficulty    key.Binding
	DayNight      key.Binding
	Control       key.Binding
	Screenshot    key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "ride"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Upgrades: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "garage"),
		),
		BuyEngine: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "engine"),
		),
		BuyHandling: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "handling"),
		),
		BuyDurability: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "durability"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "difficulty"),
		),
		DayNight: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "day/night"),
		),
		Control: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "control"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Pause, k.Restart},
		{k.Confirm, k.Back, k.Upgrades, k.Difficulty},
		{k.DayNight, k.Control, k.Screenshot, k.Quit},
	}
}

// ForState returns the bindings that do something in the given state.
func (k KeyMap) ForState(s entity.State) []key.Binding {
	switch s {
	case entity.StateMenu:
		return []key.Binding{k.Confirm, k.Difficulty, k.Upgrades, k.Control, k.DayNight, k.Quit}
	case entity.StatePlaying:
		return []key.Binding{k.Left, k.Right, k.Pause, k.DayNight, k.Quit}
	case entity.StatePaused:
		return []key.Binding{k.Pause, k.Restart, k.Control, k.Back, k.Quit}
	case entity.StateGameOver:
		return []key.Binding{k.Restart, k.Back, k.Quit}
	case entity.StateUpgrades:
		return []key.Binding{k.BuyEngine, k.BuyHandling, k.BuyDurability, k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}

// KeyMapper translates Bubble Tea key messages to ride actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys     KeyMap
	bindings []binding
}

type binding struct {
	key    key.Binding
	action core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DefaultKeyMap())
}

// NewKeyMapperWith creates a key mapper for custom bindings.
func NewKeyMapperWith(k KeyMap) *KeyMapper {
	return &KeyMapper{
		keys: k,
		bindings: []binding{
			{k.Quit, core.ActionQuit},
			{k.Left, core.ActionLeft},
			{k.Right, core.ActionRight},
			{k.Confirm, core.ActionConfirm},
			{k.Pause, core.ActionPause},
			{k.Back, core.ActionBack},
			{k.Restart, core.ActionRestart},
			{k.Upgrades, core.ActionUpgrades},
			{k.BuyEngine, core.ActionBuyEngine},
			{k.BuyHandling, core.ActionBuyHandling},
			{k.BuyDurability, core.ActionBuyDurability},
			{k.Difficulty, core.ActionDifficulty},
			{k.DayNight, core.ActionDayNight},
			{k.Control, core.ActionControl},
		},
	}
}

// Keys returns the bindings for the help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, b.key) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// upgradeFor maps a buy action to the part it upgrades.
func upgradeFor(a core.Action) (entity.UpgradeKind, bool) {
	switch a {
	case core.ActionBuyEngine:
		return entity.UpgradeEngine, true
	case core.ActionBuyHandling:
		return entity.UpgradeHandling, true
	case core.ActionBuyDurability:
		return entity.UpgradeDurability, true
	default:
		return 0, false
	}
}
