package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/munchers/internal/config"
	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
)

func loadDefaults(t *testing.T) config.MunchersConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestEmbeddedVariants(t *testing.T) {
	cfg := loadDefaults(t)

	want := []string{"classic", "multiples", "timed", "toggles"}
	ids := cfg.IDs()
	if len(ids) != len(want) {
		t.Fatalf("IDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", ids, want)
		}
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			v, _ := cfg.Variant(id)
			if _, err := v.Settings(); err != nil {
				t.Fatalf("Settings: %v", err)
			}
		})
	}
}

func TestVariantSettings(t *testing.T) {
	cfg := loadDefaults(t)

	tests := []struct {
		id       string
		rule     engine.Rule
		reward   int
		strikes  int
		timeout  time.Duration
		enemies  int
		rows     int
		cols     int
		literal  bool
		maxValue int
	}{
		{"classic", engine.Prime(), 5, 1, 0, 0, 4, 6, true, 0},
		{"multiples", engine.MultipleOf(3), 10, 3, 0, 0, 5, 5, false, 30},
		{"timed", engine.Prime(), 10, 1, 60 * time.Second, 0, 5, 5, false, 50},
		{"toggles", engine.FactorOf(48), 10, 1, 90 * time.Second, 2, 5, 5, false, 48},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			v, err := cfg.Variant(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			s, err := v.Settings()
			if err != nil {
				t.Fatal(err)
			}
			if s.Board.Rule != tt.rule || s.Reward != tt.reward || s.StrikesPerLife != tt.strikes {
				t.Errorf("rule/reward/strikes = %v/%d/%d", s.Board.Rule, s.Reward, s.StrikesPerLife)
			}
			if s.TimeLimit != tt.timeout || s.Enemies != tt.enemies {
				t.Errorf("time limit/enemies = %v/%d", s.TimeLimit, s.Enemies)
			}
			if s.Board.Rows != tt.rows || s.Board.Cols != tt.cols {
				t.Errorf("board = %dx%d", s.Board.Rows, s.Board.Cols)
			}
			if (s.Board.Layout != nil) != tt.literal || s.Board.MaxValue != tt.maxValue {
				t.Errorf("layout %v, max value %d", s.Board.Layout != nil, s.Board.MaxValue)
			}
			if s.StartLives != 3 || s.MoveDuration != 300*time.Millisecond || s.EatDuration != 500*time.Millisecond {
				t.Errorf("lives/move/eat = %d/%v/%v", s.StartLives, s.MoveDuration, s.EatDuration)
			}
		})
	}
}

func TestLoadCustomOverlay(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "mine.yaml")
	data := []byte(`
variants:
  classic:
    title: Tiny
    board: {rows: 1, cols: 3, goal: "multiple:2", layout: [[2, 3, 4]]}
    scoring: {reward: 1, lives: 1, strikes_per_life: 1}
  evens:
    title: Evens
    board: {rows: 3, cols: 3, goal: "multiple:2", max_value: 20}
    scoring: {reward: 2, lives: 3, strikes_per_life: 1}
    timing: {move: 100ms, eat: 100ms}
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := cfg.Variant("classic"); v.Title != "Tiny" {
		t.Errorf("classic not replaced: %q", v.Title)
	}
	if _, err := cfg.Variant("timed"); err != nil {
		t.Errorf("embedded variant lost: %v", err)
	}
	evens, err := cfg.Variant("evens")
	if err != nil {
		t.Fatal(err)
	}
	s, err := evens.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s.MoveDuration != 100*time.Millisecond || s.Board.Rule != engine.MultipleOf(2) {
		t.Errorf("evens settings = %+v", s)
	}
}

func TestLoadUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".munchers", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("variants:\n  timed:\n    title: Speedy\n")
	if err := os.WriteFile(filepath.Join(dir, "munchers.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := cfg.Variant("timed"); v.Title != "Speedy" {
		t.Errorf("user file ignored: %q", v.Title)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("variants: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestSettingsRejectsBadVariant(t *testing.T) {
	cfg := loadDefaults(t)

	v, _ := cfg.Variant("multiples")
	v.Board.Goal = "square"
	if _, err := v.Settings(); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("bad goal: %v", err)
	}

	v, _ = cfg.Variant("multiples")
	v.Board.MaxValue = 2
	if _, err := v.Settings(); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("range without multiples of 3: %v", err)
	}

	if _, err := cfg.Variant("nope"); err == nil {
		t.Error("expected unknown variant error")
	}
}

func TestDifficultyPresets(t *testing.T) {
	cfg := loadDefaults(t)

	if _, err := config.ParsePreset("brutal"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if p, err := config.ParsePreset(""); err != nil || p != config.DifficultyNormal {
		t.Errorf("empty preset = %q, %v", p, err)
	}

	base, _ := cfg.Variant("toggles")

	easy := base
	config.DifficultyEasy.Apply(&easy)
	if easy.Scoring.Lives != 5 || easy.Timing.TimeLimit != 135*time.Second || easy.Enemies.Count != 1 {
		t.Errorf("easy = lives %d, limit %v, enemies %d", easy.Scoring.Lives, easy.Timing.TimeLimit, easy.Enemies.Count)
	}

	hard := base
	config.DifficultyHard.Apply(&hard)
	if hard.Scoring.Lives != 2 || hard.Enemies.Count != 3 || hard.Enemies.Interval != 750*time.Millisecond {
		t.Errorf("hard = lives %d, enemies %d, interval %v", hard.Scoring.Lives, hard.Enemies.Count, hard.Enemies.Interval)
	}
	if _, err := hard.Settings(); err != nil {
		t.Errorf("hard toggles invalid: %v", err)
	}

	normal := base
	config.DifficultyNormal.Apply(&normal)
	if normal.Scoring != base.Scoring || normal.Enemies != base.Enemies {
		t.Error("normal preset changed the variant")
	}
}
