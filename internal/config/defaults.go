package config

import (
	_ "embed"
)

//go:embed defaults/bubblepop.yaml
var defaultBubblePopYAML []byte

// DefaultBubblePopConfig returns the classic 6x8 board with four-shot wall drops.
func DefaultBubblePopConfig() BubblePopConfig {
	return BubblePopConfig{
		Grid: GridConfig{
			Rows:      6,
			Cols:      8,
			CellSize:  100,
			XOffset:   0,
			YOffset:   30,
			FieldRows: 10,
		},
		Bubble: BubbleConfig{
			Radius:           47,
			Speed:            30,
			CollisionEpsilon: 2,
		},
		Cannon: CannonConfig{
			MinAngle:      10,
			MaxAngle:      170,
			StartAngle:    90,
			RotationSpeed: 4,
		},
		Rules: RulesConfig{
			MatchThreshold:  3,
			PointsPerBubble: 10,
			LaunchCooldown:  4,
		},
		Items: ItemsConfig{
			Swap:    3,
			Raise:   3,
			Rainbow: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1500,
			},
			Scaling: ScalingConfig{
				CooldownReduction: 2,
				MinCooldown:       2,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBubblePopYAML
}
