package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/platform/tui"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

var flagInteractive bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best solve times",
	Long: `Display the top 10 solve times for a puzzle shape. Each strategy
and piece count keeps its own leaderboard.

Examples:
  jigsaw scores
  jigsaw scores --strategy organic --pieces 48
  jigsaw scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Tessellation strategy (default from config)")
	scoresCmd.Flags().IntVar(&flagPieces, "pieces", 0, "Piece count (default from config)")
	scoresCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse all leaderboards interactively")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening solves database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	defaults := config.DefaultJigsawConfig()
	strategy := flagStrategy
	if strategy == "" {
		strategy = defaults.Generator.Strategy
	}
	pieces := flagPieces
	if pieces == 0 {
		pieces = defaults.Generator.Pieces
	}

	solves, err := store.TopSolves(strategy, pieces, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving solves: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Times - %s %d\n", strategy, pieces)
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'jigsaw play --strategy %s --pieces %d' to set the first time!\n", strategy, pieces)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "----", "----")

	for i, entry := range solves {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, formatDuration(entry.Elapsed), dateStr)
	}

	fmt.Println()
	best, err := store.BestSolve(strategy, pieces)
	if err == nil && best > 0 {
		fmt.Printf("Best: %s\n", formatDuration(best))
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
