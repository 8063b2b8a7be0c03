package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/munchers.yaml
var defaultMunchersYAML []byte

// DefaultVariant is played when no variant is named.
const DefaultVariant = "classic"

// DefaultConfig returns the built-in classic variant. It is the fallback
// when even the embedded YAML cannot be parsed.
func DefaultConfig() MunchersConfig {
	return MunchersConfig{
		Variants: map[string]VariantConfig{
			DefaultVariant: {
				Title:       "Number Munchers",
				Description: "Eat the primes on the classic 4x6 board.",
				Board: BoardConfig{
					Rows: 4,
					Cols: 6,
					Goal: "prime",
					Layout: [][]int{
						{2, 2, 1, 2, 1, 2},
						{1, 0, 1, 1, 1, 2},
						{2, 2, 1, 1, 1, 1},
						{2, 2, 2, 1, 2, 1},
					},
				},
				Scoring: ScoringConfig{Reward: 5, Lives: 3, StrikesPerLife: 1},
				Timing:  TimingConfig{Move: 300 * time.Millisecond, Eat: 500 * time.Millisecond},
			},
		},
	}
}
