package engine

import "context"

// Input is a discrete player intent.
type Input int

const (
	InputNone Input = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Confirm
	Cancel
)

func (in Input) String() string {
	switch in {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	default:
		return "none"
	}
}

func (in Input) direction() (Direction, bool) {
	switch in {
	case MoveUp:
		return DirUp, true
	case MoveDown:
		return DirDown, true
	case MoveLeft:
		return DirLeft, true
	case MoveRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// Handle routes one intent to the operation the current phase allows.
// Intents that make no sense in the phase are dropped. The returned error
// comes from board generation or the score recorder.
func (m *Machine) Handle(ctx context.Context, in Input) error {
	switch m.phase {
	case PhaseMenu:
		if in == Confirm {
			return m.StartGame(ctx)
		}

	case PhasePlaying:
		if in == Cancel {
			m.Abandon()
			return nil
		}
		if m.message.Visible() {
			if in == Confirm {
				return m.Dismiss(ctx)
			}
			return nil
		}
		if d, ok := in.direction(); ok {
			m.Move(d)
			return nil
		}
		if in == Confirm {
			m.AttemptEat()
		}

	case PhaseLevelComplete, PhaseGameOver:
		switch in {
		case Confirm:
			return m.Dismiss(ctx)
		case Cancel:
			m.Abandon()
		}

	case PhaseHighScoreEntry:
		switch in {
		case MoveUp:
			m.CycleLetter(1)
		case MoveDown:
			m.CycleLetter(-1)
		case MoveLeft:
			m.PrevLetter()
		case MoveRight, Confirm:
			return m.NextLetter()
		case Cancel:
			m.SkipEntry()
		}
	}
	return nil
}
