package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/motorush/internal/session"
	"github.com/vovakirdan/motorush/internal/sim"
)

var (
	flagSimTicks int
	flagSimPilot string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless ride and print a summary",
	Long: `Drive a ride without a terminal using a scripted pilot and print what
happened. The same seed, difficulty and pilot always give the same summary.

Pilots:
  auto    - dodges obstacles in its lane (default)
  random  - presses left/right at random
  idle    - never changes lane

Examples:
  motorush simulate --ticks 3600
  motorush simulate --ticks 36000 --difficulty hard --seed 42
  motorush simulate --pilot idle --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum number of ticks to simulate")
	simulateCmd.Flags().StringVar(&flagSimPilot, "pilot", "auto", "Scripted pilot: auto, random, idle")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, "motorush-sim")
	runSeed := seed()

	pilot, err := sim.PilotByName(flagSimPilot, runSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mc := session.New(session.Options{
		Config: cfg,
		Seed:   runSeed,
		Logger: logger,
	})
	defer mc.Close()

	sum, err := sim.Run(mc, sim.Options{
		Ticks:    flagSimTicks,
		TickRate: flagFPS,
		Pilot:    pilot,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(summaryTable(sum))
}

func summaryTable(sum sim.Summary) string {
	outcome := "time limit"
	if sum.GameOver {
		outcome = "crashed"
	}

	rows := [][]string{
		{"seed", fmt.Sprintf("%d", sum.Seed)},
		{"difficulty", sum.Difficulty.String()},
		{"pilot", flagSimPilot},
		{"outcome", outcome},
		{"ticks", fmt.Sprintf("%d (%s)", sum.Ticks, sum.SimTime)},
		{"score", fmt.Sprintf("%d", sum.Score)},
		{"distance", fmt.Sprintf("%.1f", sum.Distance)},
		{"level", fmt.Sprintf("%d", sum.Level)},
		{"speed", fmt.Sprintf("%.2f", sum.Speed)},
		{"coins", fmt.Sprintf("%d", sum.Coins)},
		{"lives", fmt.Sprintf("%d", sum.Lives)},
		{"health", fmt.Sprintf("%.1f", sum.Health)},
		{"hits", fmt.Sprintf("%d", sum.Hits)},
		{"deflections", fmt.Sprintf("%d", sum.Deflections)},
		{"pickups", fmt.Sprintf("%d", sum.Pickups)},
		{"lane changes", fmt.Sprintf("%d", sum.LaneChanges)},
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	valueStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("RIDE", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return valueStyle
		}).
		String()
}
