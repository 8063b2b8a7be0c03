package engine

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vovakirdan/munchers/internal/telemetry"
)

const (
	// MaxBoardSide bounds rows and columns.
	MaxBoardSide = 12

	// maxRerolls is how many fresh draws a random board gets before a
	// correct value is injected.
	maxRerolls = 8
)

// BoardSpec describes how to build a board. When Layout is set it is used
// verbatim (Blank for empty cells); otherwise every cell is drawn uniformly
// from [1, MaxValue].
type BoardSpec struct {
	Rows     int
	Cols     int
	Rule     Rule
	MaxValue int
	Layout   [][]int
}

// Validate reports a ConfigError for bad dimensions, rules or number sources.
func (s BoardSpec) Validate() error {
	if s.Rows < 1 || s.Cols < 1 || s.Rows > MaxBoardSide || s.Cols > MaxBoardSide {
		return configErrorf("board", "dimensions must be within 1..%d, got %dx%d", MaxBoardSide, s.Rows, s.Cols)
	}
	if err := s.Rule.Validate(); err != nil {
		return err
	}

	if s.Layout != nil {
		if len(s.Layout) != s.Rows {
			return configErrorf("layout", "has %d rows, board has %d", len(s.Layout), s.Rows)
		}
		correct := 0
		for r, row := range s.Layout {
			if len(row) != s.Cols {
				return configErrorf("layout", "row %d has %d columns, board has %d", r, len(row), s.Cols)
			}
			for _, v := range row {
				if v < 0 {
					return configErrorf("layout", "negative value %d in row %d", v, r)
				}
				if v != Blank && s.Rule.Evaluate(v) {
					correct++
				}
			}
		}
		if correct == 0 {
			return configErrorf("layout", "no cell satisfies %s", s.Rule)
		}
		return nil
	}

	if s.MaxValue < 1 {
		return configErrorf("max_value", "must be >= 1, got %d", s.MaxValue)
	}
	if len(correctValues(s.Rule, s.MaxValue)) == 0 {
		return configErrorf("max_value", "no number in [1, %d] satisfies %s", s.MaxValue, s.Rule)
	}
	return nil
}

// correctValues lists every number in [1, maxValue] satisfying rule.
func correctValues(rule Rule, maxValue int) []int {
	var out []int
	for n := 1; n <= maxValue; n++ {
		if rule.Evaluate(n) {
			out = append(out, n)
		}
	}
	return out
}

// Generate builds a board from spec. Every returned board has at least one
// correct cell: random boards are redrawn a few times and then get a
// correct value injected at a random cell.
func Generate(ctx context.Context, spec BoardSpec, rng *rand.Rand) (*Board, error) {
	_, span := telemetry.Tracer("engine").Start(ctx, "board.generate")
	defer span.End()

	if err := spec.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid board spec")
		return nil, err
	}

	b := newBoard(spec.Rows, spec.Cols)
	rerolls := 0
	injected := false

	if spec.Layout != nil {
		for r, row := range spec.Layout {
			for c, v := range row {
				b.set(Position{Row: r, Col: c}, v, spec.Rule)
			}
		}
	} else {
		if rng == nil {
			err := configErrorf("rng", "random board needs a random source")
			span.RecordError(err)
			span.SetStatus(codes.Error, "missing rng")
			return nil, err
		}

		fill(b, spec, rng)
		for b.CorrectCount() == 0 && rerolls < maxRerolls {
			rerolls++
			fill(b, spec, rng)
		}
		if b.CorrectCount() == 0 {
			candidates := correctValues(spec.Rule, spec.MaxValue)
			p := Position{Row: rng.Intn(spec.Rows), Col: rng.Intn(spec.Cols)}
			b.set(p, candidates[rng.Intn(len(candidates))], spec.Rule)
			injected = true
		}
	}

	span.SetAttributes(
		attribute.Int("board.rows", spec.Rows),
		attribute.Int("board.cols", spec.Cols),
		attribute.String("board.rule", spec.Rule.String()),
		attribute.Bool("board.literal", spec.Layout != nil),
		attribute.Int("board.correct", b.CorrectCount()),
		attribute.Int("board.rerolls", rerolls),
		attribute.Bool("board.injected", injected),
	)

	return b, nil
}

func fill(b *Board, spec BoardSpec, rng *rand.Rand) {
	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Cols; c++ {
			b.set(Position{Row: r, Col: c}, 1+rng.Intn(spec.MaxValue), spec.Rule)
		}
	}
}
