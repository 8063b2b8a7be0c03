package engine

import "time"

// TransitionKind tells what the Muncher is busy doing.
type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	TransitionMove
	TransitionEat
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionMove:
		return "moving"
	case TransitionEat:
		return "eating"
	default:
		return "idle"
	}
}

// Transition is a timed animation. The avatar's logical position only
// changes when a move transition completes.
type Transition struct {
	Kind      TransitionKind
	Target    Position
	Remaining time.Duration
}

// Avatar is the player-controlled Muncher.
type Avatar struct {
	Pos        Position
	Transition Transition
}

// Busy reports whether a transition is in flight.
func (a Avatar) Busy() bool {
	return a.Transition.Kind != TransitionNone
}

// begin starts a transition. Callers must check Busy first.
func (a *Avatar) begin(kind TransitionKind, target Position, d time.Duration) {
	a.Transition = Transition{Kind: kind, Target: target, Remaining: d}
}

// advance runs the transition clock and completes it when time is up.
func (a *Avatar) advance(dt time.Duration) {
	if !a.Busy() {
		return
	}
	a.Transition.Remaining -= dt
	if a.Transition.Remaining > 0 {
		return
	}
	if a.Transition.Kind == TransitionMove {
		a.Pos = a.Transition.Target
	}
	a.Transition = Transition{}
}

// Move resolves a move intent from p, clamped to the board. Intents that
// would leave the board return p unchanged.
func Move(b *Board, p Position, d Direction) Position {
	next := p.Step(d)
	if !b.InBounds(next) {
		return p
	}
	return next
}
