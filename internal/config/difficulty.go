package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset is a named adjustment applied on top of a variant.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset accepts easy, normal or hard. An empty string is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// Apply adjusts lives, countdown and enemies of v. Normal leaves v as is.
func (p DifficultyPreset) Apply(v *VariantConfig) {
	switch p {
	case DifficultyEasy:
		v.Scoring.Lives += 2
		v.Timing.TimeLimit = scale(v.Timing.TimeLimit, 3, 2)
		if v.Enemies.Count > 1 {
			v.Enemies.Count--
		}
		v.Enemies.Interval = scale(v.Enemies.Interval, 3, 2)

	case DifficultyHard:
		v.Scoring.Lives = max(v.Scoring.Lives-1, 1)
		v.Timing.TimeLimit = scale(v.Timing.TimeLimit, 3, 4)
		if v.Enemies.Count > 0 {
			v.Enemies.Count++
			v.Enemies.Max = max(v.Enemies.Max, v.Enemies.Count)
		}
		v.Enemies.Interval = scale(v.Enemies.Interval, 3, 4)
		v.Enemies.MinInterval = scale(v.Enemies.MinInterval, 3, 4)
	}
}

func scale(d time.Duration, num, den int64) time.Duration {
	return d * time.Duration(num) / time.Duration(den)
}
