package input

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/entity"
)

// gestureLanes maps classifier labels to lanes.
// The trained model emits Spanish labels; English aliases are accepted too.
var gestureLanes = map[string]entity.Lane{
	"left":      entity.LaneLeft,
	"izquierda": entity.LaneLeft,
	"center":    entity.LaneCenter,
	"centre":    entity.LaneCenter,
	"centro":    entity.LaneCenter,
	"right":     entity.LaneRight,
	"derecha":   entity.LaneRight,
}

// LaneForLabel maps a classifier label to a lane, ignoring case.
func LaneForLabel(label string) (entity.Lane, bool) {
	l, ok := gestureLanes[strings.ToLower(strings.TrimSpace(label))]
	return l, ok
}

// Unifier turns raw events from every source into lane commands.
// Submit is safe to call from multiple goroutines; the gesture feed posts
// from its own connection goroutine while the host posts keys and touches.
type Unifier struct {
	cfg   config.Input
	clock Clock
	log   *log.Logger

	mu         sync.Mutex
	enabled    [SourceCount]bool
	mailbox    [SourceCount]Command
	pending    [SourceCount]bool
	lastAccept [SourceCount]time.Time
	touchStart TouchStart
	touching   bool
}

// NewUnifier creates a unifier with every source enabled.
// A nil clock uses time.Now.
func NewUnifier(cfg config.Input, clock Clock) *Unifier {
	if clock == nil {
		clock = time.Now
	}
	u := &Unifier{
		cfg:   cfg,
		clock: clock,
	}
	for i := range u.enabled {
		u.enabled[i] = true
	}
	return u
}

// SetLogger attaches a logger for rejected or degraded input.
func (u *Unifier) SetLogger(l *log.Logger) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.log = l
}

// SetEnabled turns a source on or off. Disabling a source discards its
// pending command and any half-finished swipe.
func (u *Unifier) SetEnabled(src Source, on bool) {
	if src < 0 || src >= SourceCount {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.enabled[src] = on
	if !on {
		u.pending[src] = false
		if src == SourceTouch {
			u.touching = false
		}
	}
}

// Enabled reports whether a source is accepting events.
func (u *Unifier) Enabled(src Source) bool {
	if src < 0 || src >= SourceCount {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.enabled[src]
}

// Submit feeds one event from a source. When the event produces a lane
// command it is stored in the source's mailbox and returned with true.
// Shifts waiting in the same mailbox add up, so every key press between two
// ticks counts; any other command replaces the older one.
func (u *Unifier) Submit(src Source, ev Event) (Command, bool) {
	if src < 0 || src >= SourceCount {
		return Command{}, false
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.enabled[src] {
		return Command{}, false
	}

	var (
		cmd Command
		ok  bool
	)
	switch src {
	case SourceKeyboard:
		cmd, ok = u.keyboard(ev)
	case SourceTouch:
		cmd, ok = u.touch(ev)
	case SourceGesture:
		cmd, ok = u.gesture(ev)
	}
	if !ok {
		return Command{}, false
	}

	cmd.Source = src
	if prev := u.mailbox[src]; u.pending[src] && prev.Kind == CommandShift && cmd.Kind == CommandShift {
		cmd.Delta = clampDelta(prev.Delta + cmd.Delta)
	}
	u.mailbox[src] = cmd
	u.pending[src] = true
	return cmd, true
}

// Drain returns pending commands in keyboard, touch, gesture order and
// empties every mailbox.
func (u *Unifier) Drain() []Command {
	u.mu.Lock()
	defer u.mu.Unlock()

	var out []Command
	for src := Source(0); src < SourceCount; src++ {
		if u.pending[src] {
			out = append(out, u.mailbox[src])
			u.pending[src] = false
		}
	}
	return out
}

// Reset clears mailboxes, swipe state and debounce timestamps.
func (u *Unifier) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = [SourceCount]bool{}
	u.lastAccept = [SourceCount]time.Time{}
	u.touching = false
}

func (u *Unifier) keyboard(ev Event) (Command, bool) {
	k, ok := ev.(KeyEvent)
	if !ok {
		return Command{}, false
	}
	switch k.Key {
	case KeyLeft:
		return Shift(-1), true
	case KeyRight:
		return Shift(1), true
	default:
		return Command{}, false
	}
}

func (u *Unifier) touch(ev Event) (Command, bool) {
	switch t := ev.(type) {
	case TouchStart:
		u.touchStart = t
		u.touching = true
		return Command{}, false
	case TouchEnd:
		if !u.touching {
			return Command{}, false
		}
		u.touching = false
		dx := t.X - u.touchStart.X
		if math.Abs(dx) <= u.cfg.SwipeThreshold {
			return Command{}, false
		}
		now := u.clock()
		if last := u.lastAccept[SourceTouch]; !last.IsZero() && now.Sub(last) < u.cfg.SwipeDebounce() {
			return Command{}, false
		}
		u.lastAccept[SourceTouch] = now
		if dx < 0 {
			return Shift(-1), true
		}
		return Shift(1), true
	default:
		return Command{}, false
	}
}

func (u *Unifier) gesture(ev Event) (Command, bool) {
	c, ok := ev.(Classification)
	if !ok {
		return Command{}, false
	}
	conf := c.Confidence
	if math.IsNaN(conf) {
		conf = 0
	}
	conf = math.Max(0, math.Min(1, conf))
	if conf <= u.cfg.GestureConfidence {
		return Command{}, false
	}
	lane, ok := LaneForLabel(c.Label)
	if !ok {
		if u.log != nil {
			u.log.Warn("unknown gesture label", "label", c.Label)
		}
		return Command{}, false
	}
	now := u.clock()
	if last := u.lastAccept[SourceGesture]; !last.IsZero() && now.Sub(last) <= u.cfg.GestureDebounce() {
		return Command{}, false
	}
	u.lastAccept[SourceGesture] = now
	return SetLane(lane), true
}

// clampDelta limits a combined shift to the width of the road.
func clampDelta(d int) int {
	const limit = entity.LaneCount - 1
	switch {
	case d < -limit:
		return -limit
	case d > limit:
		return limit
	}
	return d
}
