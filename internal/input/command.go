// Package input unifies keyboard, touch swipes and gesture classifications
// into lane commands. Each source keeps its own debounce clock and a
// single-slot mailbox; the session drains the mailboxes once per tick.
package input

import (
	"fmt"
	"time"

	"github.com/vovakirdan/motorush/internal/entity"
)

// Source identifies where a command came from.
type Source int

const (
	SourceKeyboard Source = iota
	SourceTouch
	SourceGesture
	SourceCount // Sentinel for counting sources
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceTouch:
		return "touch"
	case SourceGesture:
		return "gesture"
	default:
		return "unknown"
	}
}

// CommandKind distinguishes relative from absolute lane commands.
type CommandKind int

const (
	CommandShift   CommandKind = iota // Move by Delta lanes
	CommandSetLane                    // Jump to Lane
)

// Command is a lane change request.
type Command struct {
	Kind   CommandKind
	Delta  int
	Lane   entity.Lane
	Source Source
}

// Shift returns a relative command. delta is reduced to its sign.
func Shift(delta int) Command {
	switch {
	case delta < 0:
		delta = -1
	case delta > 0:
		delta = 1
	}
	return Command{Kind: CommandShift, Delta: delta}
}

// SetLane returns an absolute command.
func SetLane(l entity.Lane) Command {
	return Command{Kind: CommandSetLane, Lane: entity.ClampLane(int(l))}
}

// Resolve returns the lane the command targets from the current lane.
// The result is always a valid lane.
func (c Command) Resolve(current entity.Lane) entity.Lane {
	if c.Kind == CommandSetLane {
		return entity.ClampLane(int(c.Lane))
	}
	return entity.ClampLane(int(current) + c.Delta)
}

// String returns a compact description for logs.
func (c Command) String() string {
	if c.Kind == CommandSetLane {
		return fmt.Sprintf("set(%s)", c.Lane)
	}
	return fmt.Sprintf("shift(%+d)", c.Delta)
}

// Clock returns the current time. Tests inject a fake.
type Clock func() time.Time

// Event is any raw input from a source.
type Event interface {
	isEvent()
}

// Key is a keyboard direction.
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key Key
}

// TouchStart begins a swipe at pixel coordinates.
type TouchStart struct {
	X, Y float64
}

// TouchEnd finishes a swipe at pixel coordinates.
type TouchEnd struct {
	X, Y float64
}

// Classification is one result from the gesture classifier.
type Classification struct {
	Label      string
	Confidence float64
}

func (KeyEvent) isEvent()       {}
func (TouchStart) isEvent()     {}
func (TouchEnd) isEvent()       {}
func (Classification) isEvent() {}
