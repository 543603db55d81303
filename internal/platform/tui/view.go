package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/session"
)

// View layout constants
const (
	hudRows      = 2
	minViewW     = 40
	minViewH     = 12
	minLaneWidth = 5
	maxLaneWidth = 11
	viewDepth    = 120.0 // World z shown between the rider and the horizon
	dashLength   = 6.0   // World z covered by one lane-mark dash
	panelWidth   = 36
)

// UpgradeOffer is one line of the garage screen.
type UpgradeOffer struct {
	Kind  entity.UpgradeKind
	Level int
	Cost  int
	Max   bool
}

// Frame is everything the view needs to draw one screen.
type Frame struct {
	Session entity.GameSession
	Config  config.Config
	Garage  session.Garage
	Offers  []UpgradeOffer
	Best    int
	Gesture bool
	Status  string
}

// NewFrame captures the machine state for drawing.
func NewFrame(m *session.Machine) Frame {
	f := Frame{
		Session: m.Snapshot(),
		Config:  m.Config(),
		Garage:  m.Garage(),
		Gesture: m.GestureActive(),
	}
	for _, k := range []entity.UpgradeKind{entity.UpgradeEngine, entity.UpgradeHandling, entity.UpgradeDurability} {
		cost, ok := m.UpgradeCost(k)
		f.Offers = append(f.Offers, UpgradeOffer{
			Kind:  k,
			Level: f.Garage.Upgrades.Level(k),
			Cost:  cost,
			Max:   !ok,
		})
	}
	return f
}

// road is the horizontal layout of the three lanes.
type road struct {
	x, width, laneW int
	top, riderRow   int
}

func layoutRoad(w, h int) road {
	laneW := core.Clamp((w-8)/3, minLaneWidth, maxLaneWidth)
	width := laneW*entity.LaneCount + 2
	return road{
		x:        (w - width) / 2,
		width:    width,
		laneW:    laneW,
		top:      hudRows,
		riderRow: h - 2,
	}
}

// laneCenter returns the screen column at the middle of a lane.
func (r road) laneCenter(l entity.Lane) int {
	return r.x + 1 + int(entity.ClampLane(int(l)))*r.laneW + r.laneW/2
}

// columnFor maps a world x offset to a screen column.
func (r road) columnFor(x float64) int {
	unit := entity.LaneRight.X()
	return r.laneCenter(entity.LaneCenter) + int(math.Round(x/unit*float64(r.laneW)))
}

// rowFor maps a world z distance ahead of the rider to a screen row.
// Returns false when z is off the visible stretch of road.
func (r road) rowFor(z float64) (int, bool) {
	if z < -1 || z > viewDepth {
		return 0, false
	}
	if z < 0 {
		z = 0
	}
	span := float64(r.riderRow - r.top)
	return r.riderRow - int(math.Round(z/viewDepth*span)), true
}

// zFor is the inverse of rowFor.
func (r road) zFor(row int) float64 {
	span := float64(r.riderRow - r.top)
	if span <= 0 {
		return 0
	}
	return float64(r.riderRow-row) / span * viewDepth
}

// Draw renders a frame into the screen buffer.
func Draw(scr *core.Screen, f Frame) {
	scr.Clear()
	w, h := scr.Width(), scr.Height()
	if w < minViewW || h < minViewH {
		scr.DrawTextCentered(h/2, fmt.Sprintf("terminal too small (%dx%d)", w, h), core.ColorWarning)
		return
	}

	rd := layoutRoad(w, h)
	s := f.Session

	drawRoad(scr, rd, f)
	drawPickups(scr, rd, s.Pickups)
	drawObstacles(scr, rd, s.Obstacles)
	drawRider(scr, rd, s)
	drawHUD(scr, f)

	switch s.State {
	case entity.StateMenu:
		drawMenu(scr, f)
	case entity.StatePaused:
		drawPanel(scr, "PAUSED", []string{
			fmt.Sprintf("score     %d", s.Stats.Score),
			fmt.Sprintf("distance  %.1f", s.Stats.Distance),
			"",
			"p resume   r restart",
			"b abandon run",
		})
	case entity.StateGameOver:
		drawPanel(scr, "GAME OVER", []string{
			fmt.Sprintf("score     %d", s.Stats.Score),
			fmt.Sprintf("distance  %.1f", s.Stats.Distance),
			fmt.Sprintf("level     %d", s.Stats.Level),
			fmt.Sprintf("coins     +%d  (%d banked)", s.Stats.Coins, f.Garage.Coins),
			"",
			"r ride again   b menu",
		})
	case entity.StateUpgrades:
		drawGarage(scr, f)
	}

	if f.Status != "" {
		scr.DrawTextCentered(h-1, f.Status, core.ColorWarning)
	}
}

func drawRoad(scr *core.Screen, rd road, f Frame) {
	s := f.Session
	edge := core.ColorRoad
	if !s.DayMode {
		edge = core.ColorNight
	}

	// World z the road has scrolled by, so lane marks move with the rider
	scroll := 0.0
	if f.Config.Physics.DistanceScale > 0 {
		scroll = s.Stats.Distance / f.Config.Physics.DistanceScale * f.Config.Obstacles.AdvanceScale
	}

	for y := rd.top; y <= rd.riderRow; y++ {
		scr.SetColored(rd.x, y, '▌', edge)
		scr.SetColored(rd.x+rd.width-1, y, '▐', edge)

		z := rd.zFor(y) + scroll
		if int(z/dashLength)%2 == 0 {
			for l := 1; l < entity.LaneCount; l++ {
				scr.SetColored(rd.x+1+l*rd.laneW, y, '┆', core.ColorLaneMark)
			}
		}

		if !s.DayMode {
			// Sparse roadside lights
			if int(z/(dashLength*3))%4 == 0 {
				scr.SetColored(rd.x-2, y, '·', core.ColorTurbo)
				scr.SetColored(rd.x+rd.width+1, y, '·', core.ColorTurbo)
			}
		}
	}
}

var obstacleGlyphs = [entity.ObstacleTypeCount]struct {
	glyph string
	color core.Color
}{
	entity.ObstacleCar:     {"▐█▌", core.ColorCar},
	entity.ObstacleCone:    {"▲", core.ColorCone},
	entity.ObstacleTruck:   {"[███]", core.ColorTruck},
	entity.ObstaclePothole: {"◖◗", core.ColorPothole},
}

func drawObstacles(scr *core.Screen, rd road, obstacles []entity.Obstacle) {
	for _, o := range obstacles {
		if !o.Active || o.Type < 0 || o.Type >= entity.ObstacleTypeCount {
			continue
		}
		y, ok := rd.rowFor(o.Z)
		if !ok {
			continue
		}
		g := obstacleGlyphs[o.Type]
		drawCentered(scr, rd.laneCenter(o.Lane), y, g.glyph, g.color)
	}
}

var pickupGlyphs = [entity.PowerUpTypeCount]struct {
	glyph string
	color core.Color
}{
	entity.PowerUpShield: {"(S)", core.ColorShield},
	entity.PowerUpTurbo:  {"(T)", core.ColorTurbo},
	entity.PowerUpMagnet: {"(M)", core.ColorMagnet},
}

func drawPickups(scr *core.Screen, rd road, pickups []entity.Pickup) {
	for _, p := range pickups {
		if p.Collected || p.Type < 0 || p.Type >= entity.PowerUpTypeCount {
			continue
		}
		y, ok := rd.rowFor(p.Z)
		if !ok {
			continue
		}
		g := pickupGlyphs[p.Type]
		drawCentered(scr, rd.laneCenter(p.Lane), y, g.glyph, g.color)
	}
}

func drawRider(scr *core.Screen, rd road, s entity.GameSession) {
	x := rd.columnFor(s.Motorcycle.Position.X)
	color := core.ColorRider
	if s.Motorcycle.Health < 30 {
		color = core.ColorRiderHurt
	}
	drawCentered(scr, x, rd.riderRow, "╱█╲", color)
	if s.Effects.IsActive(entity.PowerUpShield) {
		scr.SetColored(x-2, rd.riderRow, '(', core.ColorShield)
		scr.SetColored(x+2, rd.riderRow, ')', core.ColorShield)
	}
	if s.Effects.IsActive(entity.PowerUpTurbo) {
		scr.SetColored(x, rd.riderRow+1, '≈', core.ColorTurbo)
	}
}

func drawHUD(scr *core.Screen, f Frame) {
	s := f.Session
	st := s.Stats

	left := fmt.Sprintf(" SCORE %06d  COINS %d  DIST %.1f  LVL %d  SPD %.1f",
		st.Score, st.Coins, st.Distance, st.Level, s.Motorcycle.Speed)
	scr.DrawText(0, 0, left, core.ColorHUD)

	lives := strings.Repeat("♥", core.Max(st.Lives, 0))
	scr.DrawText(scr.Width()-len([]rune(lives))-1, 0, lives, core.ColorRiderHurt)

	hpColor := core.ColorHUD
	if s.Motorcycle.Health < 30 {
		hpColor = core.ColorWarning
	}
	scr.DrawText(1, 1, healthBar(s.Motorcycle.Health, 10), hpColor)

	x := 20
	for _, t := range []entity.PowerUpType{entity.PowerUpShield, entity.PowerUpTurbo, entity.PowerUpMagnet} {
		e := s.Effects[t]
		if !e.Active {
			continue
		}
		label := fmt.Sprintf("%s %.1fs", strings.ToUpper(t.String()), e.Remaining.Seconds())
		scr.DrawText(x, 1, label, pickupGlyphs[t].color)
		x += len(label) + 2
	}

	mode := "day"
	if !s.DayMode {
		mode = "night"
	}
	control := s.Control.String()
	if s.Control == entity.ControlGesture && !f.Gesture {
		control = "keyboard (gesture offline)"
	}
	right := fmt.Sprintf("%s · %s · %s ", s.Difficulty, control, mode)
	scr.DrawText(scr.Width()-len([]rune(right)), 1, right, core.ColorHUD)
}

func healthBar(health float64, width int) string {
	filled := int(math.Round(core.ClampF(health, entity.MinHealth, entity.MaxHealth) / entity.MaxHealth * float64(width)))
	return fmt.Sprintf("HP %s%s %3.0f",
		strings.Repeat("█", filled), strings.Repeat("·", width-filled), health)
}

func drawMenu(scr *core.Screen, f Frame) {
	s := f.Session
	mode := "day"
	if !s.DayMode {
		mode = "night"
	}
	drawPanel(scr, "M O T O R U S H", []string{
		fmt.Sprintf("difficulty  < %s >", s.Difficulty),
		fmt.Sprintf("control     %s", s.Control),
		fmt.Sprintf("mode        %s", mode),
		fmt.Sprintf("coins       %d", f.Garage.Coins),
		fmt.Sprintf("best        %d", f.Best),
		"",
		"enter to ride",
	})
}

func drawGarage(scr *core.Screen, f Frame) {
	lines := []string{fmt.Sprintf("coins  %d", f.Garage.Coins), ""}
	for i, o := range f.Offers {
		price := fmt.Sprintf("%d", o.Cost)
		if o.Max {
			price = "MAX"
		}
		lines = append(lines, fmt.Sprintf("%d  %-10s lvl %2d  %5s", i+1, o.Kind, o.Level, price))
	}
	lines = append(lines, "", "b back to menu")
	drawPanel(scr, "GARAGE", lines)
}

// drawPanel draws a centered box with a title and lines of text.
func drawPanel(scr *core.Screen, title string, lines []string) {
	h := len(lines) + 4
	r := core.NewRect((scr.Width()-panelWidth)/2, (scr.Height()-h)/2, panelWidth, h)
	scr.DrawRect(r, ' ', core.ColorDefault)
	scr.DrawBox(r, core.ColorHUD)
	scr.DrawTextCentered(r.Y+1, title, core.ColorTurbo)
	for i, line := range lines {
		scr.DrawText(r.X+3, r.Y+3+i, line, core.ColorHUD)
	}
}

// drawCentered writes text centered on column x.
func drawCentered(scr *core.Screen, x, y int, text string, c core.Color) {
	scr.DrawText(x-len([]rune(text))/2, y, text, c)
}

// statusFor turns a command error into a short status line.
func statusFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrInsufficientCoins):
		return "not enough coins"
	case errors.Is(err, session.ErrMaxLevel):
		return "already at max level"
	default:
		return err.Error()
	}
}

// statusTTL is how long a status line stays on screen.
const statusTTL = 2 * time.Second
