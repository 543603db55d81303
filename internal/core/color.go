package core

// Color is a semantic foreground color for a screen cell.
// The terminal host maps each value to an ANSI 256-color style.
type Color uint8

// Palette used by the road view and HUD.
const (
	ColorDefault Color = iota
	ColorRoad
	ColorLaneMark
	ColorRider
	ColorRiderHurt
	ColorCar
	ColorCone
	ColorTruck
	ColorPothole
	ColorShield
	ColorTurbo
	ColorMagnet
	ColorHUD
	ColorWarning
	ColorNight
)
