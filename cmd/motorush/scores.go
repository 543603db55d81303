package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/motorush/internal/platform/tui"
	"github.com/vovakirdan/motorush/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs, optionally for one difficulty.

In a terminal the runs open in an interactive table; use --plain to print
them instead (the default when output is piped).

Examples:
  motorush scores
  motorush scores --difficulty hard
  motorush scores --plain --limit 20
  motorush scores --stats
  motorush scores --clear --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty filter: easy, normal, hard (default all)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain table instead of the interactive view")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Print per-difficulty statistics")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs for the difficulty filter")
}

func runScores(_ *cobra.Command, _ []string) {
	difficulty, err := storage.DifficultyName(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Println("Runs cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && !flagScoresStats && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, difficulty, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if flagScoresStats {
		printStats(store)
		return
	}
	printRuns(store, difficulty)
}

func printRuns(store *storage.Store, difficulty string) {
	runs, err := store.TopRuns(difficulty, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	title := difficulty
	if title == "" {
		title = "all difficulties"
	}
	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Ride with 'motorush play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-8s  %-8s  %-3s  %s\n", "Rank", "Player", "Diff", "Score", "Distance", "Lvl", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-8s  %-8s  %-3s  %s\n", "----", "------", "----", "-----", "--------", "---", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-6s  %-8d  %-8.1f  %-3d  %s\n",
			i+1, r.Player, r.Difficulty, r.Score, r.Distance, r.Level, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(difficulty); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.StatsByDifficulty()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	names := make([]string, 0, len(stats))
	for d := range stats {
		names = append(names, d)
	}
	sort.Strings(names)

	fmt.Printf("  %-8s  %-5s  %-7s  %-8s  %-10s  %-4s  %s\n", "Diff", "Runs", "Best", "Average", "Distance", "Lvl", "Coins")
	for _, d := range names {
		st := stats[d]
		fmt.Printf("  %-8s  %-5d  %-7d  %-8.1f  %-10.1f  %-4d  %d\n",
			d, st.Runs, st.BestScore, st.AvgScore, st.TotalDistance, st.MaxLevel, st.TotalCoins)
	}
}
