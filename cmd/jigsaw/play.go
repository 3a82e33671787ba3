package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/game"
	"github.com/vovakirdan/tui-jigsaw/internal/platform/tui"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
	"github.com/vovakirdan/tui-jigsaw/internal/tessellation"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStrategy   string
	flagPieces     int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Solve a puzzle",
	Long: `Start an interactive puzzle session.

Controls:
  WASD/Arrows  - Move the cursor (and a grabbed piece)
  Space/Enter  - Grab the piece under the cursor / drop it
  E/]          - Rotate clockwise
  Q/[          - Rotate counterclockwise
  Tab          - Cycle selection through loose pieces
  P            - Pause
  R            - New puzzle
  Esc/Ctrl+C   - Quit

Difficulty options:
  easy   - 12 pieces, generous snap tolerances
  normal - 24 pieces, standard tolerances
  hard   - 48 pieces, tight tolerances
  fixed  - Use the config file values unchanged

Examples:
  jigsaw play
  jigsaw play --strategy organic
  jigsaw play --pieces 48 --difficulty hard
  jigsaw play --config ./my-puzzle.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom puzzle config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Tessellation strategy: grid, organic")
	playCmd.Flags().IntVar(&flagPieces, "pieces", 0, "Piece count (overrides config and preset)")
}

// loadPuzzleConfig resolves the effective puzzle configuration from the
// config file, difficulty preset, and explicit flag overrides, in that
// order.
func loadPuzzleConfig(configPath, difficulty, strategy string, pieces int) (config.JigsawConfig, error) {
	cfg, err := config.LoadJigsaw(configPath)
	if err != nil {
		return config.JigsawConfig{}, err
	}

	if difficulty != "" {
		preset := config.ParsePreset(difficulty)
		if preset == "" {
			return config.JigsawConfig{}, fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", difficulty)
		}
		config.ApplyJigsawPreset(&cfg, preset)
	}

	if strategy != "" {
		cfg.Generator.Strategy = strategy
	}
	if pieces > 0 {
		cfg.Generator.Pieces = pieces
	}

	if !tessellation.Exists(cfg.Generator.Strategy) {
		return config.JigsawConfig{}, fmt.Errorf("unknown strategy %q (available: %v)",
			cfg.Generator.Strategy, tessellation.List())
	}

	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	jcfg, err := loadPuzzleConfig(flagConfig, flagDifficulty, flagStrategy, flagPieces)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size for the initial board
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open solve-time storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open solves database: %v\n", err)
		// Continue without storage - the puzzle still works
		store = nil
	}

	runErr := tui.Run(game.New(jcfg), store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
