// Package engine implements the Number Munchers grid game-state engine:
// goal rules, board generation, avatar and enemy movement, and the state
// machine that owns score, lives and level.
//
// The engine has no terminal or clock dependencies. Time enters through
// Machine.Advance and randomness through an injected *rand.Rand, so every
// game is reproducible from its seed.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// RuleKind identifies a goal predicate.
type RuleKind string

const (
	RulePrime    RuleKind = "prime"
	RuleMultiple RuleKind = "multiple"
	RuleFactor   RuleKind = "factor"
)

// Rule is the active goal: which numbers the Muncher must eat.
// N is the parameter of multiple/factor rules and is ignored for prime.
type Rule struct {
	Kind RuleKind
	N    int
}

// Prime returns the primality rule.
func Prime() Rule { return Rule{Kind: RulePrime} }

// MultipleOf returns the rule "n is a multiple of k".
func MultipleOf(k int) Rule { return Rule{Kind: RuleMultiple, N: k} }

// FactorOf returns the rule "n divides k".
func FactorOf(k int) Rule { return Rule{Kind: RuleFactor, N: k} }

// ParseRule parses "prime", "multiple:3" or "factor:24".
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	kind, param, hasParam := strings.Cut(s, ":")

	r := Rule{Kind: RuleKind(kind)}
	switch r.Kind {
	case RulePrime:
		if hasParam {
			return Rule{}, configErrorf("goal", "%q takes no parameter", s)
		}
	case RuleMultiple, RuleFactor:
		if !hasParam {
			return Rule{}, configErrorf("goal", "%q needs a parameter, e.g. %s:3", s, kind)
		}
		n, err := strconv.Atoi(param)
		if err != nil {
			return Rule{}, configErrorf("goal", "parameter of %q is not an integer", s)
		}
		r.N = n
	default:
		return Rule{}, configErrorf("goal", "unknown rule %q", s)
	}

	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Validate reports a ConfigError for unknown kinds or bad parameters.
func (r Rule) Validate() error {
	switch r.Kind {
	case RulePrime:
		return nil
	case RuleMultiple, RuleFactor:
		if r.N < 1 {
			return configErrorf("goal", "%s parameter must be >= 1, got %d", r.Kind, r.N)
		}
		return nil
	default:
		return configErrorf("goal", "unknown rule %q", string(r.Kind))
	}
}

// Evaluate reports whether n satisfies the rule. Unknown rules match nothing.
func (r Rule) Evaluate(n int) bool {
	switch r.Kind {
	case RulePrime:
		return IsPrime(n)
	case RuleMultiple:
		return IsMultipleOf(n, r.N)
	case RuleFactor:
		return IsFactorOf(n, r.N)
	default:
		return false
	}
}

// String returns the parseable form of the rule.
func (r Rule) String() string {
	if r.Kind == RulePrime {
		return string(r.Kind)
	}
	return fmt.Sprintf("%s:%d", r.Kind, r.N)
}

// Title is the goal line shown in the HUD.
func (r Rule) Title() string {
	switch r.Kind {
	case RulePrime:
		return "PRIME NUMBERS"
	case RuleMultiple:
		return fmt.Sprintf("MULTIPLES OF %d", r.N)
	case RuleFactor:
		return fmt.Sprintf("FACTORS OF %d", r.N)
	default:
		return "???"
	}
}

// Instruction is the welcome message for a new game.
func (r Rule) Instruction() string {
	switch r.Kind {
	case RulePrime:
		return "Eat the prime numbers."
	case RuleMultiple:
		return fmt.Sprintf("Eat the multiples of %d.", r.N)
	case RuleFactor:
		return fmt.Sprintf("Eat the factors of %d.", r.N)
	default:
		return "Eat the numbers."
	}
}

// Explain describes why n was a wrong answer.
func (r Rule) Explain(n int) string {
	switch r.Kind {
	case RulePrime:
		return fmt.Sprintf("The number %q is not prime.", strconv.Itoa(n))
	case RuleMultiple:
		return fmt.Sprintf("%d is not a multiple of %d.", n, r.N)
	case RuleFactor:
		return fmt.Sprintf("%d is not a factor of %d.", n, r.N)
	default:
		return fmt.Sprintf("%d is not a match.", n)
	}
}

// IsPrime reports whether n is prime. Numbers <= 1 are never prime.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// IsMultipleOf reports whether n % k == 0. A zero k matches nothing.
func IsMultipleOf(n, k int) bool {
	if k == 0 {
		return false
	}
	return n%k == 0
}

// IsFactorOf reports whether n divides k. Only positive n can be a factor.
func IsFactorOf(n, k int) bool {
	if n <= 0 {
		return false
	}
	return k%n == 0
}
