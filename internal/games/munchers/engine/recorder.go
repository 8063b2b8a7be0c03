package engine

import "sync"

// HighScore is one finished run as saved to the Hall of Fame.
type HighScore struct {
	RunID string
	Name  string
	Score int
	Level int
}

// ScoreRecorder receives the result of name entry. Implementations must
// not block the game loop for long.
type ScoreRecorder interface {
	RecordHighScore(HighScore) error
}

// MemoryRecorder keeps recorded scores in memory.
type MemoryRecorder struct {
	mu     sync.Mutex
	scores []HighScore
}

func (m *MemoryRecorder) RecordHighScore(hs HighScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, hs)
	return nil
}

// Scores returns a copy of everything recorded so far.
func (m *MemoryRecorder) Scores() []HighScore {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]HighScore, len(m.scores))
	copy(out, m.scores)
	return out
}
