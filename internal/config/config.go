// Package config loads the YAML description of every Munchers variant and
// turns it into engine settings.
package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
)

// MunchersConfig is the root of munchers.yaml.
type MunchersConfig struct {
	Variants map[string]VariantConfig `yaml:"variants"`
}

// VariantConfig describes one playable variant.
type VariantConfig struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Board       BoardConfig   `yaml:"board"`
	Scoring     ScoringConfig `yaml:"scoring"`
	Timing      TimingConfig  `yaml:"timing"`
	Enemies     EnemyConfig   `yaml:"enemies"`
}

// BoardConfig defines the grid. Layout, when present, wins over max_value;
// use 0 for blank cells.
type BoardConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	Goal     string  `yaml:"goal"`
	MaxValue int     `yaml:"max_value"`
	Layout   [][]int `yaml:"layout,omitempty"`
}

type ScoringConfig struct {
	Reward         int `yaml:"reward"`
	Lives          int `yaml:"lives"`
	StrikesPerLife int `yaml:"strikes_per_life"`
}

type TimingConfig struct {
	Move      time.Duration `yaml:"move"`
	Eat       time.Duration `yaml:"eat"`
	TimeLimit time.Duration `yaml:"time_limit"`
}

// EnemyConfig tunes the wandering Toggles.
type EnemyConfig struct {
	Count       int           `yaml:"count"`
	Interval    time.Duration `yaml:"interval"`
	GrowthEvery int           `yaml:"growth_every"`
	Max         int           `yaml:"max"`
	Speedup     float64       `yaml:"speedup"`
	MinInterval time.Duration `yaml:"min_interval"`
}

// IDs returns the variant keys in sorted order.
func (c MunchersConfig) IDs() []string {
	ids := make([]string, 0, len(c.Variants))
	for id := range c.Variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Variant looks up a variant by key.
func (c MunchersConfig) Variant(id string) (VariantConfig, error) {
	v, ok := c.Variants[id]
	if !ok {
		return VariantConfig{}, fmt.Errorf("config: unknown variant %q", id)
	}
	return v, nil
}

// Settings converts the variant into validated engine settings.
func (v VariantConfig) Settings() (engine.Settings, error) {
	rule, err := engine.ParseRule(v.Board.Goal)
	if err != nil {
		return engine.Settings{}, fmt.Errorf("config: %w", err)
	}

	s := engine.Settings{
		Board: engine.BoardSpec{
			Rows:     v.Board.Rows,
			Cols:     v.Board.Cols,
			Rule:     rule,
			MaxValue: v.Board.MaxValue,
			Layout:   v.Board.Layout,
		},
		Reward:           v.Scoring.Reward,
		StartLives:       v.Scoring.Lives,
		StrikesPerLife:   v.Scoring.StrikesPerLife,
		MoveDuration:     v.Timing.Move,
		EatDuration:      v.Timing.Eat,
		TimeLimit:        v.Timing.TimeLimit,
		Enemies:          v.Enemies.Count,
		EnemyInterval:    v.Enemies.Interval,
		EnemyGrowthEvery: v.Enemies.GrowthEvery,
		MaxEnemies:       v.Enemies.Max,
		EnemySpeedup:     v.Enemies.Speedup,
		MinEnemyInterval: v.Enemies.MinInterval,
	}
	if err := s.Validate(); err != nil {
		return engine.Settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}
