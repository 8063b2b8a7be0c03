package engine_test

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
)

var classicLayout = [][]int{
	{2, 2, 1, 2, 1, 2},
	{1, 0, 1, 1, 1, 2},
	{2, 2, 1, 1, 1, 1},
	{2, 2, 2, 1, 2, 1},
}

func classicSpec() engine.BoardSpec {
	return engine.BoardSpec{Rows: 4, Cols: 6, Rule: engine.Prime(), Layout: classicLayout}
}

func TestGenerateLiteralLayout(t *testing.T) {
	b, err := engine.Generate(context.Background(), classicSpec(), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(b.Layout(), classicLayout) {
		t.Errorf("layout = %v", b.Layout())
	}

	blank, _ := b.Cell(engine.Position{Row: 1, Col: 1})
	if blank.HasValue || blank.Correct {
		t.Errorf("blank cell = %+v", blank)
	}
	two, _ := b.Cell(engine.Position{Row: 0, Col: 1})
	if !two.Correct {
		t.Error("2 should be correct")
	}
	one, _ := b.Cell(engine.Position{Row: 0, Col: 2})
	if one.Correct {
		t.Error("1 should not be correct")
	}
	if b.CorrectCount() != 11 {
		t.Errorf("CorrectCount = %d, want 11", b.CorrectCount())
	}
}

func TestGenerateAlwaysHasCorrectCell(t *testing.T) {
	specs := []engine.BoardSpec{
		{Rows: 5, Cols: 5, Rule: engine.Prime(), MaxValue: 50},
		{Rows: 5, Cols: 5, Rule: engine.MultipleOf(3), MaxValue: 30},
		{Rows: 5, Cols: 5, Rule: engine.FactorOf(48), MaxValue: 48},
		// Only 1 and 2 are correct out of 1000, so rerolls usually fail.
		{Rows: 2, Cols: 2, Rule: engine.FactorOf(2), MaxValue: 1000},
		{Rows: 1, Cols: 1, Rule: engine.MultipleOf(97), MaxValue: 100},
	}
	for _, spec := range specs {
		for seed := int64(0); seed < 50; seed++ {
			b, err := engine.Generate(context.Background(), spec, rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("%s seed %d: %v", spec.Rule, seed, err)
			}
			if b.CorrectCount() < 1 {
				t.Fatalf("%s seed %d: no correct cell", spec.Rule, seed)
			}
			for _, c := range b.Cells() {
				if c.Value < 1 || c.Value > spec.MaxValue {
					t.Fatalf("value %d outside [1,%d]", c.Value, spec.MaxValue)
				}
				if c.Correct != spec.Rule.Evaluate(c.Value) {
					t.Fatalf("cell %+v mis-tagged", c)
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	spec := engine.BoardSpec{Rows: 5, Cols: 5, Rule: engine.Prime(), MaxValue: 50}
	a, _ := engine.Generate(context.Background(), spec, rand.New(rand.NewSource(7)))
	b, _ := engine.Generate(context.Background(), spec, rand.New(rand.NewSource(7)))
	if !reflect.DeepEqual(a.Layout(), b.Layout()) {
		t.Error("same seed produced different boards")
	}
}

func TestGenerateConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		spec engine.BoardSpec
	}{
		{"zero rows", engine.BoardSpec{Rows: 0, Cols: 5, Rule: engine.Prime(), MaxValue: 10}},
		{"too wide", engine.BoardSpec{Rows: 5, Cols: engine.MaxBoardSide + 1, Rule: engine.Prime(), MaxValue: 10}},
		{"bad rule", engine.BoardSpec{Rows: 5, Cols: 5, Rule: engine.MultipleOf(0), MaxValue: 10}},
		{"no correct number", engine.BoardSpec{Rows: 5, Cols: 5, Rule: engine.Prime(), MaxValue: 1}},
		{"multiple out of range", engine.BoardSpec{Rows: 5, Cols: 5, Rule: engine.MultipleOf(40), MaxValue: 30}},
		{"layout rows", engine.BoardSpec{Rows: 3, Cols: 6, Rule: engine.Prime(), Layout: classicLayout}},
		{"layout cols", engine.BoardSpec{Rows: 4, Cols: 5, Rule: engine.Prime(), Layout: classicLayout}},
		{"layout without answer", engine.BoardSpec{Rows: 1, Cols: 3, Rule: engine.Prime(), Layout: [][]int{{1, 4, 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Generate(context.Background(), tt.spec, rand.New(rand.NewSource(1)))
			if !errors.Is(err, engine.ErrInvalidConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestMoveClampsToBoard(t *testing.T) {
	b, _ := engine.Generate(context.Background(), classicSpec(), nil)
	rng := rand.New(rand.NewSource(3))
	p := engine.Position{}
	for i := 0; i < 1000; i++ {
		p = engine.Move(b, p, engine.Directions[rng.Intn(len(engine.Directions))])
		if !b.InBounds(p) {
			t.Fatalf("position %+v left the board", p)
		}
	}

	if got := engine.Move(b, engine.Position{}, engine.DirUp); got != (engine.Position{}) {
		t.Errorf("move up from origin = %+v", got)
	}
	corner := engine.Position{Row: 3, Col: 5}
	if got := engine.Move(b, corner, engine.DirRight); got != corner {
		t.Errorf("move right from corner = %+v", got)
	}
}
