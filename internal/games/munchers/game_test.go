package munchers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/munchers/internal/config"
	"github.com/vovakirdan/munchers/internal/core"
	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
	"github.com/vovakirdan/munchers/internal/registry"
)

const tinyYAML = `
variants:
  tiny:
    title: Tiny
    description: One wrong number, two primes.
    board: {rows: 1, cols: 3, goal: prime, layout: [[4, 3, 5]]}
    scoring: {reward: 5, lives: 1, strikes_per_life: 1}
    timing: {move: 100ms, eat: 100ms}
`

// tinyGame returns a reset game for a 1x3 board with a single life.
func tinyGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "tiny.yaml")
	if err := os.WriteFile(path, []byte(tinyYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New("tiny", config.VariantConfig{})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})
	if g.Err() != nil {
		t.Fatalf("Reset: %v", g.Err())
	}
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	var res core.StepResult
	for _, a := range actions {
		in := core.NewInputFrame()
		in.Set(a)
		res = g.Step(in)
	}
	return res
}

func idle(g *Game, ticks int) {
	for i := 0; i < ticks; i++ {
		g.Step(core.NewInputFrame())
	}
}

func render(g *Game) string {
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	return scr.String()
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "multiples", "timed", "toggles"} {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
		}
	}

	g, err := registry.Create("classic")
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Number Munchers" {
		t.Errorf("Title = %q", g.Title())
	}
	if _, ok := g.(registry.ScoreSink); !ok {
		t.Error("game does not accept a score sink")
	}

	// Registering the defaults again must skip existing IDs.
	Register(config.Defaults())
}

func TestGameStartsOnTitleScreen(t *testing.T) {
	g := tinyGame(t)

	if st := g.State(); !st.InMenu || st.GameOver {
		t.Errorf("state = %+v, expected menu", st)
	}
	if out := render(g); !strings.Contains(out, gameTitle) || !strings.Contains(out, "Tiny") {
		t.Errorf("title screen missing:\n%s", out)
	}

	res := press(g, core.ActionConfirm)
	if res.State.InMenu {
		t.Fatal("Enter did not start the game")
	}
	s := g.Snapshot()
	if s.Phase != engine.PhasePlaying || s.Message.Kind != engine.MessageWelcome {
		t.Errorf("phase %v message %v", s.Phase, s.Message.Kind)
	}
	if out := render(g); !strings.Contains(out, "PRIME NUMBERS") || !strings.Contains(out, "Press Enter") {
		t.Errorf("board screen missing HUD or banner:\n%s", out)
	}
}

func TestGameEatsAndCompletesLevel(t *testing.T) {
	g := tinyGame(t)
	press(g, core.ActionConfirm, core.ActionConfirm)

	press(g, core.ActionRight)
	idle(g, 4)
	if pos := g.Snapshot().Avatar.Pos; pos != (engine.Position{Row: 0, Col: 1}) {
		t.Fatalf("avatar at %+v after move", pos)
	}

	press(g, core.ActionConfirm)
	if s := g.Snapshot(); s.Score != 5 || s.Remaining != 1 {
		t.Errorf("score %d remaining %d", s.Score, s.Remaining)
	}
	idle(g, 4)

	press(g, core.ActionRight)
	idle(g, 4)
	press(g, core.ActionConfirm)

	s := g.Snapshot()
	if s.Phase != engine.PhaseLevelComplete || s.Score != 10 {
		t.Fatalf("phase %v score %d", s.Phase, s.Score)
	}
	press(g, core.ActionConfirm)
	if s := g.Snapshot(); s.Phase != engine.PhasePlaying || s.Level != 2 || s.Remaining != 2 {
		t.Errorf("next level: phase %v level %d remaining %d", s.Phase, s.Level, s.Remaining)
	}
}

func TestGameOverSavesThroughSink(t *testing.T) {
	g := tinyGame(t)

	type saved struct {
		name         string
		score, level int
		runID        string
	}
	var got []saved
	g.SetScoreSink(func(name string, score, level int, runID string) error {
		got = append(got, saved{name, score, level, runID})
		return nil
	})

	press(g, core.ActionConfirm, core.ActionConfirm)
	runID := g.Snapshot().RunID

	// Eating the 4 costs the only life.
	res := press(g, core.ActionConfirm)
	if !res.State.GameOver {
		t.Fatalf("state = %+v, expected game over", res.State)
	}
	if !errors.Is(g.EndErr(), engine.ErrLifeDepleted) {
		t.Errorf("EndErr() = %v", g.EndErr())
	}

	press(g, core.ActionConfirm)
	if g.Snapshot().Phase != engine.PhaseHighScoreEntry {
		t.Fatalf("phase = %v", g.Snapshot().Phase)
	}
	if out := render(g); !strings.Contains(out, "HALL OF FAME") {
		t.Errorf("name entry not drawn:\n%s", out)
	}

	press(g, core.ActionUp, core.ActionConfirm, core.ActionDown, core.ActionConfirm, core.ActionConfirm)

	if len(got) != 1 {
		t.Fatalf("sink called %d times", len(got))
	}
	want := saved{"BZA", 0, 1, runID}
	if got[0] != want {
		t.Errorf("saved %+v, expected %+v", got[0], want)
	}
	if !g.State().InMenu {
		t.Error("expected title screen after name entry")
	}
}

func TestGameSinkErrorShownOnTitle(t *testing.T) {
	g := tinyGame(t)
	g.SetScoreSink(func(string, int, int, string) error {
		return errors.New("disk full")
	})

	press(g, core.ActionConfirm, core.ActionConfirm, core.ActionConfirm, core.ActionConfirm)
	press(g, core.ActionBack)
	if !g.State().InMenu {
		t.Fatal("Esc in name entry should return to the title")
	}

	// Skipping never calls the sink, so play again and save.
	press(g, core.ActionConfirm, core.ActionConfirm, core.ActionConfirm, core.ActionConfirm)
	press(g, core.ActionConfirm, core.ActionConfirm, core.ActionConfirm)
	if g.Err() != nil {
		t.Errorf("save failure must not break the game: %v", g.Err())
	}
	if out := render(g); !strings.Contains(out, "disk full") {
		t.Errorf("save error not shown:\n%s", out)
	}

	press(g, core.ActionConfirm)
	if g.saveErr != nil {
		t.Error("starting a new game should clear the save error")
	}
}

func TestGameBackAbandons(t *testing.T) {
	g := tinyGame(t)
	press(g, core.ActionConfirm, core.ActionConfirm)

	if res := press(g, core.ActionBack); !res.State.InMenu {
		t.Error("Esc while playing should return to the title")
	}
}

func TestGameTooSmall(t *testing.T) {
	g := tinyGame(t)
	g.Resize(30, 10)

	scr := core.NewScreen(30, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Errorf("expected size warning:\n%s", scr.String())
	}

	press(g, core.ActionConfirm)
	if !g.State().InMenu {
		t.Error("input should be ignored while the window is too small")
	}

	g.Resize(80, 24)
	press(g, core.ActionConfirm)
	if g.State().InMenu {
		t.Error("game should start after resizing")
	}

	g.Resize(30, 10)
	press(g, core.ActionBack)
	if !g.State().InMenu {
		t.Error("Esc should abandon a game the window cannot show")
	}
}

func TestDrawOverlayCentersOnArea(t *testing.T) {
	scr := core.NewScreen(40, 12)
	area := core.NewRect(10, 2, 20, 8)

	box := drawOverlay(scr, area, core.ColorBrightCyan, "HI", "there")
	if box != core.NewRect(15, 4, 9, 4) {
		t.Fatalf("box = %+v", box)
	}
	if got := scr.GetCell(box.X, box.Y).Color; got != core.ColorBrightCyan {
		t.Errorf("border colour = %v", got)
	}
	if got := scr.Get(18, 5); got != 'H' {
		t.Errorf("first line starts with %q", got)
	}
	if got := scr.Get(17, 6); got != 't' {
		t.Errorf("second line starts with %q", got)
	}
}

func TestGameBadConfig(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New("classic", config.VariantConfig{Title: "Number Munchers"})
	g.Reset(core.DefaultConfig())
	if g.Err() == nil {
		t.Fatal("expected error for missing config file")
	}
	if !g.State().InMenu {
		t.Error("broken variant should report menu so Esc leaves it")
	}
	if out := render(g); !strings.Contains(out, "Cannot start Number Munchers") {
		t.Errorf("error screen missing:\n%s", out)
	}
}

func TestGameDifficultyPreset(t *testing.T) {
	SetDifficultyPreset("easy")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := tinyGame(t)
	if lives := g.machine.Settings().StartLives; lives != 3 {
		t.Errorf("easy lives = %d, expected 3", lives)
	}

	SetDifficultyPreset("nonsense")
	if difficultyPreset != config.DifficultyNormal {
		t.Errorf("unknown preset = %q", difficultyPreset)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"Level 2 complete!", 36, []string{"Level 2 complete!"}},
		{"The number \"21\" is not prime. Strike 1 of 3.", 20, []string{"The number \"21\" is", "not prime. Strike 1", "of 3."}},
		{"", 10, nil},
	}
	for _, tt := range tests {
		got := wrap(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59*time.Second + time.Millisecond, "1:00"},
		{90 * time.Second, "1:30"},
		{500 * time.Millisecond, "0:01"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
