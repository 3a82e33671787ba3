// jigsaw is a TUI jigsaw puzzle for the terminal.
//
// Usage:
//
//	jigsaw play              - Solve a puzzle interactively
//	jigsaw generate          - Generate a tessellation and print its stats
//	jigsaw serve             - Start SSH server for remote play
//	jigsaw scores            - Show best solve times
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for a reproducible tessellation
//	--db <path>     - Set database path (default: ~/.jigsaw/solves.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jigsaw",
	Short: "Jigsaw - solve jigsaw puzzles in your terminal",
	Long: `Jigsaw is a terminal puzzle game. Pieces are cut from a rectangular
image by a tessellation strategy, scattered over the board, and snap
together when you place them correctly.

Available commands:
  play      - Solve a puzzle interactively
  generate  - Generate a tessellation and print its stats
  serve     - Start SSH server for remote play
  scores    - View best solve times

Examples:
  jigsaw play
  jigsaw play --strategy organic --pieces 48
  jigsaw play --difficulty hard
  jigsaw serve --ssh :2222
  jigsaw scores --strategy grid --pieces 24`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jigsaw/solves.db", "Path to solve-times database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
