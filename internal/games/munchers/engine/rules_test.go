package engine_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
)

func TestIsPrime(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{-7, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{9, false},
		{17, true},
		{25, false},
		{29, true},
		{49, false},
		{97, true},
	}
	for _, tt := range tests {
		if got := engine.IsPrime(tt.n); got != tt.want {
			t.Errorf("IsPrime(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestNonPositiveNeverPrime(t *testing.T) {
	for n := -100; n <= 1; n++ {
		if engine.IsPrime(n) {
			t.Fatalf("IsPrime(%d) = true", n)
		}
	}
}

func TestMultiplesAndFactors(t *testing.T) {
	if !engine.IsMultipleOf(9, 3) || engine.IsMultipleOf(10, 3) {
		t.Error("multiple of 3 misclassified")
	}
	if engine.IsMultipleOf(5, 0) {
		t.Error("zero divisor should match nothing")
	}
	if !engine.IsFactorOf(6, 48) || engine.IsFactorOf(5, 48) {
		t.Error("factor of 48 misclassified")
	}
	if engine.IsFactorOf(0, 48) {
		t.Error("zero is not a factor")
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		want    engine.Rule
		wantErr bool
	}{
		{"prime", engine.Prime(), false},
		{" PRIME ", engine.Prime(), false},
		{"multiple:3", engine.MultipleOf(3), false},
		{"factor:48", engine.FactorOf(48), false},
		{"prime:2", engine.Rule{}, true},
		{"multiple", engine.Rule{}, true},
		{"multiple:x", engine.Rule{}, true},
		{"factor:0", engine.Rule{}, true},
		{"square", engine.Rule{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := engine.ParseRule(tt.in)
			if tt.wantErr {
				if !errors.Is(err, engine.ErrInvalidConfig) {
					t.Fatalf("expected config error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if back, _ := engine.ParseRule(got.String()); back != got {
				t.Errorf("String() %q does not parse back", got.String())
			}
		})
	}
}

func TestRuleText(t *testing.T) {
	if got := engine.Prime().Explain(1); got != `The number "1" is not prime.` {
		t.Errorf("Explain(1) = %q", got)
	}
	if got := engine.MultipleOf(3).Title(); got != "MULTIPLES OF 3" {
		t.Errorf("Title() = %q", got)
	}
	if got := engine.FactorOf(48).Instruction(); got != "Eat the factors of 48." {
		t.Errorf("Instruction() = %q", got)
	}
}

func TestConfigErrorAs(t *testing.T) {
	_, err := engine.ParseRule("factor:-2")
	var ce *engine.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if ce.Field != "goal" {
		t.Errorf("field = %q, want goal", ce.Field)
	}
}
