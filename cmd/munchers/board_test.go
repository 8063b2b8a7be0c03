package main

import (
	"bytes"
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
)

func TestPrintBoardMarksMatches(t *testing.T) {
	spec := engine.BoardSpec{
		Rows:   2,
		Cols:   3,
		Rule:   engine.Prime(),
		Layout: [][]int{{2, 4, 0}, {9, 11, 15}},
	}
	b, err := engine.Generate(context.Background(), spec, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	printBoard(&buf, spec.Rule, b, 1)
	out := buf.String()

	for _, want := range []string{"PRIME NUMBERS", "(seed 1)", "2*", "11*", "   .  ", "2 of 6 cells match."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "4*") || strings.Contains(out, "9*") {
		t.Errorf("non-matching number marked:\n%s", out)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~/.munchers/scores.db", filepath.Join(home, ".munchers/scores.db")},
		{"/tmp/scores.db", "/tmp/scores.db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
