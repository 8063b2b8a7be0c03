package engine

import "time"

// Snapshot is a read-only copy of the game for renderers and tests.
type Snapshot struct {
	Phase Phase
	Rule  Rule

	Rows  int
	Cols  int
	Cells []Cell

	Avatar  Avatar
	Enemies []Enemy
	Message Message

	Score          int
	Lives          int
	Level          int
	Strikes        int
	StrikesPerLife int
	Remaining      int

	Timed    bool
	TimeLeft time.Duration

	RunID      string
	Name       string
	NameCursor int
}

// Snapshot copies the current state.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:          m.phase,
		Rule:           m.settings.Board.Rule,
		Avatar:         m.avatar,
		Message:        m.message,
		Score:          m.score,
		Lives:          m.lives,
		Level:          m.level,
		Strikes:        m.strikes,
		StrikesPerLife: m.settings.StrikesPerLife,
		Timed:          m.settings.TimeLimit > 0,
		TimeLeft:       m.timeLeft,
		RunID:          m.runID,
		Name:           m.lastName,
		NameCursor:     m.nameCursor,
	}
	if m.phase == PhaseHighScoreEntry {
		s.Name = string(m.name[:])
	}
	if m.board != nil {
		s.Rows = m.board.Rows
		s.Cols = m.board.Cols
		s.Cells = m.board.Cells()
		s.Remaining = m.board.RemainingCorrect()
	}
	if len(m.enemies) > 0 {
		s.Enemies = make([]Enemy, len(m.enemies))
		copy(s.Enemies, m.enemies)
	}
	return s
}

// Cell returns the cell at (row, col) from the copied board.
func (s Snapshot) Cell(row, col int) (Cell, bool) {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return Cell{}, false
	}
	return s.Cells[row*s.Cols+col], true
}

// EnemyAt reports whether an enemy stands on p.
func (s Snapshot) EnemyAt(p Position) bool {
	for _, e := range s.Enemies {
		if e.Pos == p {
			return true
		}
	}
	return false
}
