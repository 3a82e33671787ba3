package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/geom"
	"github.com/vovakirdan/tui-jigsaw/internal/tessellation"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tessellation and print its stats",
	Long: `Run a tessellation strategy without starting a session and print
per-puzzle statistics: piece count, adjacency, and outline sizes. Useful
for tuning strategy parameters and checking seeds.

Examples:
  jigsaw generate
  jigsaw generate --strategy organic --pieces 100
  jigsaw generate --seed 7 --pieces 48`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom puzzle config YAML")
	generateCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Tessellation strategy: grid, organic")
	generateCmd.Flags().IntVar(&flagPieces, "pieces", 0, "Piece count")
}

func runGenerate(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "generate",
	})

	jcfg, err := loadPuzzleConfig(flagConfig, "", flagStrategy, flagPieces)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	params := tessellation.Params{
		ImageW:     float64(jcfg.Generator.ImageWidth),
		ImageH:     float64(jcfg.Generator.ImageHeight),
		PieceCount: jcfg.Generator.Pieces,
		BoardW:     float64(jcfg.Generator.ImageWidth),
		BoardH:     float64(jcfg.Generator.ImageHeight),
	}

	strategy, err := tessellation.Create(jcfg.Generator.Strategy)
	if err != nil {
		logger.Fatal("unknown strategy", "error", err)
	}

	start := time.Now()
	pieces, err := strategy.Generate(params, rand.New(rand.NewSource(seed)))
	if err != nil {
		logger.Fatal("tessellation failed", "error", err)
	}

	logger.Info("tessellation complete",
		"strategy", jcfg.Generator.Strategy,
		"requested", jcfg.Generator.Pieces,
		"generated", len(pieces),
		"seed", seed,
		"took", time.Since(start),
	)

	var totalNeighbors, minNeighbors, maxNeighbors int
	var minArea, maxArea float64
	for i, p := range pieces {
		n := len(p.Neighbors)
		box := geom.BoundingBox(p.Polygon)
		area := box.Width() * box.Height()
		if i == 0 {
			minNeighbors, maxNeighbors = n, n
			minArea, maxArea = area, area
		}
		totalNeighbors += n
		if n < minNeighbors {
			minNeighbors = n
		}
		if n > maxNeighbors {
			maxNeighbors = n
		}
		if area < minArea {
			minArea = area
		}
		if area > maxArea {
			maxArea = area
		}
	}

	logger.Info("adjacency",
		"min", minNeighbors,
		"max", maxNeighbors,
		"avg", float64(totalNeighbors)/float64(len(pieces)),
	)
	logger.Info("outline bounds",
		"min_area", minArea,
		"max_area", maxArea,
	)

	for _, p := range pieces {
		logger.Debug("piece",
			"id", p.ID,
			"centroid", p.Centroid,
			"neighbors", p.Neighbors,
		)
	}
}
