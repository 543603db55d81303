// motorush is a three-lane motorcycle runner for the terminal.
//
// Usage:
//
//	motorush play            - Ride in this terminal
//	motorush serve           - Start SSH server for remote play
//	motorush scores          - Show the best runs
//	motorush simulate        - Run a headless ride and print a summary
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible rides
//	--db <path>           - Set database path (default: ~/.motorush/runs.db)
//	--config <path>       - Load a custom ride config YAML
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/entity"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLogLevel   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "motorush",
	Short: "Motorush - a three-lane motorcycle runner in your terminal",
	Long: `Motorush puts you on a motorcycle weaving between cars, cones, trucks
and potholes on a three-lane road. Collect shields, turbo and magnets,
bank coins and spend them on engine, handling and durability upgrades.

Available commands:
  play      - Ride in this terminal
  serve     - Start SSH server for remote play
  scores    - View the best runs
  simulate  - Headless ride with scripted input

Examples:
  motorush play
  motorush play --difficulty hard --control gesture
  motorush serve --ssh :2222
  motorush scores --difficulty easy
  motorush simulate --ticks 3600 --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.motorush/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom ride config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger returns a logger writing to w at the --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig reads the ride config and applies the --difficulty override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		d, ok := entity.ParseDifficulty(strings.ToLower(flagDifficulty))
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		cfg.Difficulty.Default = d.String()
	}
	return cfg, nil
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// expandHome resolves a leading ~ in a path.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
