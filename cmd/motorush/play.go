package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/gesture"
	"github.com/vovakirdan/motorush/internal/platform/tui"
	"github.com/vovakirdan/motorush/internal/session"
	"github.com/vovakirdan/motorush/internal/storage"
)

var (
	flagPlayer      string
	flagControl     string
	flagGestureAddr string
	flagLogFile     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Ride in this terminal",
	Long: `Start a ride in the current terminal.

Controls:
  A/Left, D/Right  - Change lane
  Mouse drag       - Swipe to change lane
  Enter            - Start riding
  P                - Pause/resume
  R                - Restart
  B/Esc            - Back to menu
  U                - Garage (from the menu), 1/2/3 buy upgrades
  Tab              - Cycle difficulty (menu)
  G                - Switch keyboard/gesture control
  N                - Toggle day/night
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Gesture control listens for classifier frames on a local WebSocket:
  {"label": "Left", "confidence": 0.9}

Examples:
  motorush play
  motorush play --difficulty hard
  motorush play --control gesture --gesture-addr 127.0.0.1:9000
  motorush play --config ./my-ride.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for runs and garage (default: OS user)")
	playCmd.Flags().StringVar(&flagControl, "control", "keyboard", "Initial control method: keyboard, gesture")
	playCmd.Flags().StringVar(&flagGestureAddr, "gesture-addr", gesture.DefaultConfig().Addr, "Gesture classifier WebSocket listen address")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.motorush/motorush.log", "Log file (the terminal is busy with the ride)")
}

// playerName returns --player, the OS user name, or "rider".
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "rider"
}

// openLogFile opens the log file for appending, falling back to discard.
func openLogFile(path string) io.WriteCloser {
	path, err := expandHome(path)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	if err == nil {
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr == nil {
			return f
		}
		err = openErr
	}
	fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	return nopCloser{io.Discard}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var control entity.ControlMethod
	switch flagControl {
	case "keyboard", "":
		control = entity.ControlKeyboard
	case "gesture":
		control = entity.ControlGesture
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown control method %q (want keyboard or gesture)\n", flagControl)
		os.Exit(1)
	}

	logFile := openLogFile(flagLogFile)
	defer logFile.Close()
	logger := newLogger(logFile, "motorush")

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the ride still works
		store = nil
	}

	player := playerName()
	garage := session.NewGarage()
	if store != nil {
		g, lerr := store.LoadGarage(player)
		if lerr != nil {
			logger.Warn("could not load garage", "player", player, "err", lerr)
		} else {
			garage = g
		}
	}

	mc := session.New(session.Options{
		Config: cfg,
		Seed:   seed(),
		Logger: logger,
		Garage: garage,
	})
	if flagSeed == 0 {
		mc.OnRunEnd(func(session.Result) { mc.Reseed(time.Now().UnixNano()) })
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	gcfg := gesture.DefaultConfig()
	gcfg.Addr = flagGestureAddr
	mc.SetGestureStarter(func() (io.Closer, error) {
		feed := gesture.NewFeed(gcfg, mc.Input(), logger)
		if err := feed.Start(ctx); err != nil {
			return nil, err
		}
		return feed, nil
	})
	if control == entity.ControlGesture {
		if err := mc.SetControl(control); err != nil {
			logger.Warn("could not select control", "control", control, "err", err)
		}
	}

	runErr := tui.Run(tui.Options{
		Machine: mc,
		Store:   store,
		Player:  player,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running ride: %v\n", runErr)
		os.Exit(1)
	}
}
