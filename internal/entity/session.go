package entity

// State is the session state machine tag.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateUpgrades
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameOver"
	case StateUpgrades:
		return "upgrades"
	default:
		return "unknown"
	}
}

// Difficulty scales acceleration and top speed.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// Next cycles easy -> normal -> hard -> easy.
func (d Difficulty) Next() Difficulty {
	return (d + 1) % 3
}

// ParseDifficulty maps a name to a Difficulty. Unknown names return false.
func ParseDifficulty(name string) (Difficulty, bool) {
	switch name {
	case "easy":
		return DifficultyEasy, true
	case "normal", "":
		return DifficultyNormal, true
	case "hard":
		return DifficultyHard, true
	default:
		return DifficultyNormal, false
	}
}

// ControlMethod selects which input sources feed the rider.
type ControlMethod int

const (
	ControlKeyboard ControlMethod = iota // keyboard and touch
	ControlGesture                       // gesture classifier, keyboard stays live
)

// String returns the control method name.
func (c ControlMethod) String() string {
	switch c {
	case ControlKeyboard:
		return "keyboard"
	case ControlGesture:
		return "gesture"
	default:
		return "unknown"
	}
}

// GameSession is the single consistent snapshot of a ride.
type GameSession struct {
	State      State
	Difficulty Difficulty
	DayMode    bool
	Control    ControlMethod
	Motorcycle Motorcycle
	Obstacles  []Obstacle
	Pickups    []Pickup
	Effects    Effects
	Stats      GameStats
	Tick       uint64
}

// Clone returns a deep copy safe to hand to readers.
func (s GameSession) Clone() GameSession {
	c := s
	c.Obstacles = append([]Obstacle(nil), s.Obstacles...)
	c.Pickups = append([]Pickup(nil), s.Pickups...)
	return c
}
