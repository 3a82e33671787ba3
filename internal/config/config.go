// Package config provides YAML-based configuration loading and difficulty
// presets for the jigsaw engine.
package config

// JigsawConfig contains all configuration for a puzzle session.
type JigsawConfig struct {
	Generator GeneratorConfig `yaml:"generator"`
	Snap      SnapConfig      `yaml:"snap"`
}

// GeneratorConfig defines tessellation parameters.
type GeneratorConfig struct {
	Strategy    string  `yaml:"strategy"` // "grid" or "organic"
	Pieces      int     `yaml:"pieces"`
	ImageWidth  float64 `yaml:"image_width"`  // virtual image dimensions
	ImageHeight float64 `yaml:"image_height"` // pieces are cut in this space
}

// SnapConfig defines the assembly tolerances. These are the engine's
// tunables: the merge gates and the right-angle rotation snap.
type SnapConfig struct {
	Distance      float64 `yaml:"distance"`        // position gate, board units
	AngleDeg      float64 `yaml:"angle_deg"`       // rotation gate, degrees
	RightAngleDeg float64 `yaml:"right_angle_deg"` // snap-to-90° window, degrees
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings map to the
// empty preset, which leaves the loaded config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch s {
	case "easy":
		return DifficultyEasy
	case "normal":
		return DifficultyNormal
	case "hard":
		return DifficultyHard
	case "fixed":
		return DifficultyFixed
	default:
		return ""
	}
}

// ApplyJigsawPreset modifies the config based on a difficulty preset.
// Presets select the piece count and scale the snap tolerances: easier
// puzzles have fewer pieces and forgive sloppier placement. "fixed" keeps
// the loaded config values as-is.
func ApplyJigsawPreset(cfg *JigsawConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Generator.Pieces = 12
		scaleSnap(&cfg.Snap, 1.5)
	case DifficultyNormal:
		cfg.Generator.Pieces = 24
	case DifficultyHard:
		cfg.Generator.Pieces = 48
		scaleSnap(&cfg.Snap, 0.6)
	case DifficultyFixed:
		// Keep the config file values.
	}
}

func scaleSnap(s *SnapConfig, factor float64) {
	s.Distance *= factor
	s.AngleDeg *= factor
	s.RightAngleDeg *= factor
}
