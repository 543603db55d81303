package core

// Action represents a semantic control action, abstracted from physical key presses.
// Lane movement is routed through the input unifier; every other action is a
// session command consumed once per tick.
type Action int

const (
	ActionNone          Action = iota
	ActionLeft                 // A, Left arrow - shift one lane left
	ActionRight                // D, Right arrow - shift one lane right
	ActionConfirm              // Enter, Space - start a run from the menu
	ActionPause                // P - pause/unpause
	ActionBack                 // B, Escape - return to menu
	ActionRestart              // R - restart after game over
	ActionUpgrades             // U - open the upgrade garage from the menu
	ActionBuyEngine            // 1 - buy engine upgrade
	ActionBuyHandling          // 2 - buy handling upgrade
	ActionBuyDurability        // 3 - buy durability upgrade
	ActionDifficulty           // Tab - cycle difficulty in the menu
	ActionDayNight             // N - toggle day/night
	ActionControl              // G - switch keyboard/gesture control
	ActionQuit                 // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionUpgrades:
		return "Upgrades"
	case ActionBuyEngine:
		return "BuyEngine"
	case ActionBuyHandling:
		return "BuyHandling"
	case ActionBuyDurability:
		return "BuyDurability"
	case ActionDifficulty:
		return "Difficulty"
	case ActionDayNight:
		return "DayNight"
	case ActionControl:
		return "Control"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the action moves the rider between lanes.
func (a Action) IsMovement() bool {
	return a == ActionLeft || a == ActionRight
}

// InputFrame collects the non-movement actions triggered between two ticks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
