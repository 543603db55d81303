package session

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/input"
)

// ErrInvalidTransition is returned when a command is not allowed in the
// current state. The session is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

func (m *Machine) invalid(to entity.State) error {
	return fmt.Errorf("session: %s -> %s: %w", m.s.State, to, ErrInvalidTransition)
}

func (m *Machine) transition(to entity.State) {
	m.log.Debug("state", "from", m.s.State, "to", to)
	m.s.State = to
}

// Start begins a new run from the menu.
func (m *Machine) Start() error {
	if m.s.State != entity.StateMenu {
		return m.invalid(entity.StatePlaying)
	}
	m.startRun()
	return nil
}

// TogglePause switches between playing and paused.
func (m *Machine) TogglePause() error {
	switch m.s.State {
	case entity.StatePlaying:
		m.transition(entity.StatePaused)
	case entity.StatePaused:
		// Input queued while paused is dropped
		m.input.Drain()
		m.transition(entity.StatePlaying)
	default:
		return m.invalid(entity.StatePaused)
	}
	return nil
}

// ReturnToMenu leaves a paused run, the game over screen or the upgrades screen.
// Leaving a paused run ends it.
func (m *Machine) ReturnToMenu() error {
	switch m.s.State {
	case entity.StatePaused:
		m.endRun(EndAbandoned)
	case entity.StateGameOver, entity.StateUpgrades:
	default:
		return m.invalid(entity.StateMenu)
	}
	m.transition(entity.StateMenu)
	m.syncGesture()
	m.Reset()
	return nil
}

// Restart begins a new run from game over, or abandons a paused run and starts over.
func (m *Machine) Restart() error {
	switch m.s.State {
	case entity.StateGameOver:
	case entity.StatePaused:
		m.endRun(EndAbandoned)
	default:
		return m.invalid(entity.StatePlaying)
	}
	m.startRun()
	return nil
}

// OpenUpgrades enters the upgrades screen from the menu.
func (m *Machine) OpenUpgrades() error {
	if m.s.State != entity.StateMenu {
		return m.invalid(entity.StateUpgrades)
	}
	m.transition(entity.StateUpgrades)
	return nil
}

// CloseUpgrades returns from the upgrades screen to the menu.
func (m *Machine) CloseUpgrades() error {
	if m.s.State != entity.StateUpgrades {
		return m.invalid(entity.StateMenu)
	}
	m.transition(entity.StateMenu)
	return nil
}

// SetDifficulty selects the difficulty of the next run. Menu only.
func (m *Machine) SetDifficulty(d entity.Difficulty) error {
	if m.s.State != entity.StateMenu {
		return m.invalid(entity.StateMenu)
	}
	if d < entity.DifficultyEasy || d > entity.DifficultyHard {
		d = entity.DifficultyNormal
	}
	m.s.Difficulty = d
	m.diff.SetPreset(d)
	m.log.Debug("difficulty", "value", d)
	return nil
}

// SetControl selects the control method. Allowed from the menu and while
// paused. The gesture pipeline is acquired when a run is in progress.
func (m *Machine) SetControl(c entity.ControlMethod) error {
	if m.s.State != entity.StateMenu && m.s.State != entity.StatePaused {
		return m.invalid(m.s.State)
	}
	if c != entity.ControlGesture {
		c = entity.ControlKeyboard
	}
	m.s.Control = c
	m.applyControl()
	m.log.Debug("control", "value", c)
	return nil
}

// GestureActive reports whether the gesture source is accepting input.
// It turns false when the pipeline failed to start for the current run.
func (m *Machine) GestureActive() bool {
	return m.input.Enabled(input.SourceGesture)
}

// ToggleDayNight flips the day/night rendering flag. Allowed in any state.
func (m *Machine) ToggleDayNight() {
	m.s.DayMode = !m.s.DayMode
}
