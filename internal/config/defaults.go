package config

import (
	_ "embed"
)

//go:embed defaults/jigsaw.yaml
var defaultJigsawYAML []byte

// DefaultJigsawConfig returns the default puzzle configuration. The snap
// tolerances carry the engine's reference values: 20 board units for the
// position gate, 15° for the rotation gate, 10° for the right-angle snap.
func DefaultJigsawConfig() JigsawConfig {
	return JigsawConfig{
		Generator: GeneratorConfig{
			Strategy:    "grid",
			Pieces:      24,
			ImageWidth:  400,
			ImageHeight: 300,
		},
		Snap: SnapConfig{
			Distance:      20,
			AngleDeg:      15,
			RightAngleDeg: 10,
		},
	}
}
