package session

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/motorush/internal/entity"
)

// Garage holds what carries over between runs: banked coins and the
// purchased upgrade levels copied into every new motorcycle.
type Garage struct {
	Coins    int
	Upgrades entity.Upgrades
}

// NewGarage returns an empty garage with base upgrades.
func NewGarage() Garage {
	return Garage{Upgrades: entity.BaseUpgrades()}
}

func (g Garage) normalized() Garage {
	if g.Coins < 0 {
		g.Coins = 0
	}
	g.Upgrades = g.Upgrades.Normalized()
	return g
}

var (
	ErrMaxLevel          = errors.New("upgrade already at max level")
	ErrInsufficientCoins = errors.New("not enough coins")
)

// Garage returns the current garage.
func (m *Machine) Garage() Garage {
	return m.garage
}

// UpgradeCost returns the price of the next level of a part and whether
// the part can still be upgraded.
func (m *Machine) UpgradeCost(k entity.UpgradeKind) (int, bool) {
	next := m.garage.Upgrades.Level(k) + 1
	if next > entity.MaxUpgradeLevel {
		return 0, false
	}
	return m.cfg.Garage.UpgradeCost(k, next), true
}

// BuyUpgrade spends banked coins on the next level of a part.
// Only allowed from the upgrades screen.
func (m *Machine) BuyUpgrade(k entity.UpgradeKind) error {
	if m.s.State != entity.StateUpgrades {
		return m.invalid(entity.StateUpgrades)
	}
	cost, ok := m.UpgradeCost(k)
	if !ok {
		return fmt.Errorf("session: buy %s: %w", k, ErrMaxLevel)
	}
	if m.garage.Coins < cost {
		return fmt.Errorf("session: buy %s for %d with %d: %w", k, cost, m.garage.Coins, ErrInsufficientCoins)
	}

	level := m.garage.Upgrades.Level(k) + 1
	m.garage.Coins -= cost
	m.garage.Upgrades = m.garage.Upgrades.With(k, level)
	m.s.Motorcycle.Upgrades = m.garage.Upgrades
	m.log.Debug("upgrade bought", "part", k, "level", level, "cost", cost, "coins", m.garage.Coins)
	return nil
}
