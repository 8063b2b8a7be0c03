package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vovakirdan/munchers/internal/telemetry"
)

// Phase is the top-level state of a game.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseLevelComplete
	PhaseGameOver
	PhaseHighScoreEntry
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	case PhaseHighScoreEntry:
		return "high_score_entry"
	default:
		return "unknown"
	}
}

// Outcome is the result of an eat attempt.
type Outcome int

const (
	OutcomeNoOp Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	default:
		return "noop"
	}
}

// MessageKind classifies the blocking message on screen.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageWelcome
	MessageWrong
	MessageCaught
	MessageTimeUp
	MessageLevelComplete
	MessageGameOver
)

// Message is a dismissible banner. While one is visible, movement and
// eating are blocked and the countdown and enemies are frozen.
type Message struct {
	Kind MessageKind
	Text string
}

// Visible reports whether the message blocks input.
func (m Message) Visible() bool { return m.Kind != MessageNone }

const (
	// NameLength is the number of letters in a Hall of Fame name.
	NameLength = 3

	// DefaultName is the initial name entry buffer.
	DefaultName = "AAA"
)

// Settings tune one variant of the game.
type Settings struct {
	Board BoardSpec

	Reward         int
	StartLives     int
	StrikesPerLife int

	MoveDuration time.Duration
	EatDuration  time.Duration

	// TimeLimit is the per-life countdown. Zero disables it.
	TimeLimit time.Duration

	Enemies       int
	EnemyInterval time.Duration

	// EnemyGrowthEvery adds one enemy every N levels, up to MaxEnemies.
	// Zero disables growth.
	EnemyGrowthEvery int
	MaxEnemies       int

	// EnemySpeedup multiplies EnemyInterval once per level past the first,
	// never going below MinEnemyInterval. Zero or one disables it.
	EnemySpeedup     float64
	MinEnemyInterval time.Duration
}

// DefaultSettings returns the classic prime-number game on a random board.
func DefaultSettings() Settings {
	return Settings{
		Board: BoardSpec{
			Rows:     5,
			Cols:     5,
			Rule:     Prime(),
			MaxValue: 30,
		},
		Reward:         5,
		StartLives:     3,
		StrikesPerLife: 1,
		MoveDuration:   300 * time.Millisecond,
		EatDuration:    500 * time.Millisecond,
		EnemyInterval:  time.Second,
	}
}

// Validate reports the first bad knob as a ConfigError.
func (s Settings) Validate() error {
	if err := s.Board.Validate(); err != nil {
		return err
	}
	switch {
	case s.Reward < 1:
		return configErrorf("reward", "must be >= 1, got %d", s.Reward)
	case s.StartLives < 1:
		return configErrorf("lives", "must be >= 1, got %d", s.StartLives)
	case s.StrikesPerLife < 1:
		return configErrorf("strikes_per_life", "must be >= 1, got %d", s.StrikesPerLife)
	case s.MoveDuration < 0 || s.EatDuration < 0:
		return configErrorf("transition", "durations must not be negative")
	case s.TimeLimit < 0:
		return configErrorf("time_limit", "must not be negative, got %s", s.TimeLimit)
	case s.Enemies < 0:
		return configErrorf("enemies", "must not be negative, got %d", s.Enemies)
	case s.Enemies >= s.Board.Rows*s.Board.Cols:
		return configErrorf("enemies", "%d enemies do not fit a %dx%d board", s.Enemies, s.Board.Rows, s.Board.Cols)
	case s.EnemyGrowthEvery < 0:
		return configErrorf("enemy_growth_every", "must not be negative, got %d", s.EnemyGrowthEvery)
	case s.MaxEnemies < 0:
		return configErrorf("max_enemies", "must not be negative, got %d", s.MaxEnemies)
	case s.EnemySpeedup < 0 || s.EnemySpeedup > 1:
		return configErrorf("enemy_speedup", "must be within [0, 1], got %g", s.EnemySpeedup)
	case s.MinEnemyInterval < 0:
		return configErrorf("min_enemy_interval", "must not be negative, got %s", s.MinEnemyInterval)
	}
	if (s.Enemies > 0 || s.EnemyGrowthEvery > 0) && s.EnemyInterval <= 0 {
		return configErrorf("enemy_interval", "must be positive when enemies are enabled, got %s", s.EnemyInterval)
	}
	return nil
}

// enemyCount returns how many enemies roam on level.
func (s Settings) enemyCount(level int) int {
	n := s.Enemies
	if s.EnemyGrowthEvery > 0 {
		n += (level - 1) / s.EnemyGrowthEvery
		if s.MaxEnemies > 0 {
			n = min(n, max(s.MaxEnemies, s.Enemies))
		}
	}
	return min(n, s.Board.Rows*s.Board.Cols-1)
}

// enemyInterval returns the enemy tick period on level.
func (s Settings) enemyInterval(level int) time.Duration {
	if s.EnemySpeedup <= 0 || s.EnemySpeedup >= 1 || level <= 1 {
		return s.EnemyInterval
	}
	d := time.Duration(float64(s.EnemyInterval) * math.Pow(s.EnemySpeedup, float64(level-1)))
	return max(d, s.MinEnemyInterval, time.Millisecond)
}

// Machine owns the whole game state. Every mutation goes through its
// methods; renderers read Snapshot. A Machine is not safe for concurrent use.
type Machine struct {
	settings Settings
	rng      *rand.Rand
	recorder ScoreRecorder

	phase   Phase
	board   *Board
	avatar  Avatar
	enemies []Enemy
	message Message

	score   int
	lives   int
	level   int
	strikes int

	timeLeft   time.Duration
	enemyClock time.Duration

	runID      string
	name       [NameLength]byte
	lastName   string
	nameCursor int

	endErr error
}

// NewMachine validates settings and returns a machine in the menu phase.
// A nil recorder drops finished runs.
func NewMachine(settings Settings, rng *rand.Rand, recorder ScoreRecorder) (*Machine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new machine: %w", err)
	}
	if rng == nil {
		return nil, configErrorf("rng", "machine needs a random source")
	}
	return &Machine{
		settings: settings,
		rng:      rng,
		recorder: recorder,
		phase:    PhaseMenu,
		lastName: DefaultName,
		lives:    settings.StartLives,
		level:    1,
	}, nil
}

// Settings returns the knobs the machine was built with.
func (m *Machine) Settings() Settings { return m.settings }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Err returns ErrLifeDepleted, wrapped with the final result, once the game
// is over. It is nil otherwise.
func (m *Machine) Err() error { return m.endErr }

// StartGame begins a new game from the menu. It is a no-op in other phases.
func (m *Machine) StartGame(ctx context.Context) error {
	if m.phase != PhaseMenu {
		return nil
	}

	ctx, span := telemetry.Tracer("engine").Start(ctx, "game.start")
	defer span.End()

	board, err := Generate(ctx, m.settings.Board, m.rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "board generation failed")
		return fmt.Errorf("start game: %w", err)
	}

	m.board = board
	m.score = 0
	m.lives = m.settings.StartLives
	m.level = 1
	m.strikes = 0
	// Run IDs stay unique across replays of the same seed.
	m.runID = uuid.NewString()
	m.endErr = nil
	m.resetLevel()
	m.message = Message{Kind: MessageWelcome, Text: m.settings.Board.Rule.Instruction()}
	m.phase = PhasePlaying

	span.SetAttributes(
		attribute.String("game.run_id", m.runID),
		attribute.String("game.rule", m.settings.Board.Rule.String()),
		attribute.Int("game.enemies", len(m.enemies)),
	)
	return nil
}

// resetLevel puts the avatar home and respawns enemies and clocks for the
// current level. The board must already be in place.
func (m *Machine) resetLevel() {
	m.avatar = Avatar{}
	m.enemies = spawnEnemies(m.board, m.settings.enemyCount(m.level), m.avatar.Pos, m.rng)
	m.timeLeft = m.settings.TimeLimit
	m.enemyClock = 0
	m.strikes = 0
}

func (m *Machine) acceptsPlay() bool {
	return m.phase == PhasePlaying && !m.message.Visible() && !m.avatar.Busy()
}

// Move starts a move transition. It reports false when the intent is
// ignored: not playing, a message is up, a transition is running, or the
// move would leave the board.
func (m *Machine) Move(d Direction) bool {
	if !m.acceptsPlay() {
		return false
	}
	target := Move(m.board, m.avatar.Pos, d)
	if target == m.avatar.Pos {
		return false
	}
	if m.settings.MoveDuration == 0 {
		m.avatar.Pos = target
		return true
	}
	m.avatar.begin(TransitionMove, target, m.settings.MoveDuration)
	return true
}

// AttemptEat eats the number under the avatar.
func (m *Machine) AttemptEat() Outcome {
	if !m.acceptsPlay() {
		return OutcomeNoOp
	}
	cell, ok := m.board.Cell(m.avatar.Pos)
	if !ok || cell.Empty() {
		return OutcomeNoOp
	}

	if cell.Correct {
		m.board.eat(cell.Pos)
		m.score += m.settings.Reward
		m.strikes = 0
		if m.board.Cleared() {
			m.completeLevel()
			return OutcomeCorrect
		}
		if m.settings.EatDuration > 0 {
			m.avatar.begin(TransitionEat, cell.Pos, m.settings.EatDuration)
		}
		return OutcomeCorrect
	}

	text := m.settings.Board.Rule.Explain(cell.Value)
	m.strikes++
	if m.strikes >= m.settings.StrikesPerLife {
		m.loseLife(MessageWrong, text)
		return OutcomeIncorrect
	}
	m.message = Message{
		Kind: MessageWrong,
		Text: fmt.Sprintf("%s Strike %d of %d.", text, m.strikes, m.settings.StrikesPerLife),
	}
	return OutcomeIncorrect
}

// loseLife takes one life, floored at zero, and either shows text or ends
// the game.
func (m *Machine) loseLife(kind MessageKind, text string) {
	if m.lives > 0 {
		m.lives--
	}
	m.strikes = 0
	if m.lives == 0 {
		m.gameOver()
		return
	}
	m.message = Message{Kind: kind, Text: text}
}

func (m *Machine) completeLevel() {
	m.level++
	m.avatar.Transition = Transition{}
	m.phase = PhaseLevelComplete
	m.message = Message{
		Kind: MessageLevelComplete,
		Text: fmt.Sprintf("Level %d complete!", m.level-1),
	}
}

func (m *Machine) gameOver() {
	m.avatar.Transition = Transition{}
	m.enemyClock = 0
	m.phase = PhaseGameOver
	m.message = Message{
		Kind: MessageGameOver,
		Text: fmt.Sprintf("Game Over! Your score: %d", m.score),
	}
	m.endErr = fmt.Errorf("%w: score %d on level %d", ErrLifeDepleted, m.score, m.level)
}

// Dismiss closes the visible message. Leaving LevelComplete builds the next
// board; leaving GameOver opens name entry.
func (m *Machine) Dismiss(ctx context.Context) error {
	switch m.phase {
	case PhasePlaying:
		m.message = Message{}
	case PhaseLevelComplete:
		board, err := Generate(ctx, m.settings.Board, m.rng)
		if err != nil {
			return fmt.Errorf("next level: %w", err)
		}
		m.board = board
		m.resetLevel()
		m.message = Message{}
		m.phase = PhasePlaying
	case PhaseGameOver:
		copy(m.name[:], m.lastName)
		m.nameCursor = 0
		m.message = Message{}
		m.phase = PhaseHighScoreEntry
	}
	return nil
}

// Abandon drops the current game and returns to the menu without saving.
func (m *Machine) Abandon() {
	if m.phase == PhaseMenu {
		return
	}
	m.message = Message{}
	m.avatar.Transition = Transition{}
	m.phase = PhaseMenu
}

// CycleLetter moves the selected name letter by delta, wrapping A..Z.
func (m *Machine) CycleLetter(delta int) {
	if m.phase != PhaseHighScoreEntry {
		return
	}
	i := int(m.name[m.nameCursor]-'A') + delta
	i = ((i % 26) + 26) % 26
	m.name[m.nameCursor] = byte('A' + i)
}

// PrevLetter selects the previous letter.
func (m *Machine) PrevLetter() {
	if m.phase == PhaseHighScoreEntry && m.nameCursor > 0 {
		m.nameCursor--
	}
}

// NextLetter selects the next letter. Advancing past the last letter
// records the score and returns to the menu; a recorder error is returned
// after the transition.
func (m *Machine) NextLetter() error {
	if m.phase != PhaseHighScoreEntry {
		return nil
	}
	if m.nameCursor < NameLength-1 {
		m.nameCursor++
		return nil
	}

	m.lastName = string(m.name[:])
	m.phase = PhaseMenu
	if m.recorder == nil {
		return nil
	}
	hs := HighScore{RunID: m.runID, Name: m.lastName, Score: m.score, Level: m.level}
	if err := m.recorder.RecordHighScore(hs); err != nil {
		return fmt.Errorf("record high score: %w", err)
	}
	return nil
}

// SkipEntry leaves name entry without saving.
func (m *Machine) SkipEntry() {
	if m.phase == PhaseHighScoreEntry {
		m.phase = PhaseMenu
	}
}

// Advance moves the game clock forward by dt. Nothing runs outside the
// playing phase or while a message is visible.
func (m *Machine) Advance(dt time.Duration) {
	if dt <= 0 || m.phase != PhasePlaying || m.message.Visible() {
		return
	}

	m.avatar.advance(dt)

	if m.settings.TimeLimit > 0 {
		m.timeLeft -= dt
		if m.timeLeft <= 0 {
			m.timeLeft = m.settings.TimeLimit
			m.loseLife(MessageTimeUp, "Time's up!")
			return
		}
	}

	if len(m.enemies) == 0 {
		return
	}
	interval := m.settings.enemyInterval(m.level)
	m.enemyClock += dt
	for m.enemyClock >= interval {
		m.enemyClock -= interval
		m.tickEnemies()
		if m.phase != PhasePlaying || m.message.Visible() {
			m.enemyClock = 0
			return
		}
	}
}

// tickEnemies runs one enemy step. An enemy already standing on the
// avatar catches it without moving; otherwise enemies move and any that
// lands on the avatar catches it. A catching enemy is sent elsewhere.
func (m *Machine) tickEnemies() {
	if m.catch() {
		return
	}
	m.enemies = Tick(m.board, m.enemies, m.rng)
	m.catch()
}

func (m *Machine) catch() bool {
	for i, e := range m.enemies {
		if e.Pos != m.avatar.Pos {
			continue
		}
		relocate(m.board, m.enemies, i, m.avatar.Pos, m.rng)
		m.loseLife(MessageCaught, "You were caught by a Toggle!")
		return true
	}
	return false
}
