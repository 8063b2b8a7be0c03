package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/munchers/internal/core"
	"github.com/vovakirdan/munchers/internal/storage"
)

func findItem(m MenuModel, id string) (int, bool) {
	for i, item := range m.items {
		if item.GameID == id {
			return i, true
		}
	}
	return 0, false
}

func TestMenuListsVariantsWithBest(t *testing.T) {
	store := testStore(t)
	store.SaveScore(storage.ScoreEntry{GameID: stubID, Name: "TOP", Score: 120, Level: 4})

	m := NewMenuModel(store, core.DefaultConfig())
	i, ok := findItem(m, stubID)
	if !ok {
		t.Fatal("stub variant not listed")
	}
	if m.items[i].Best != 120 || m.items[i].Description == "" {
		t.Errorf("item = %+v", m.items[i])
	}

	m.cursor = i
	view := m.View()
	if !strings.Contains(view, "Stub Munchers") || !strings.Contains(view, "best 120") {
		t.Errorf("view missing stub entry:\n%s", view)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	i, _ := findItem(m, stubID)
	m.cursor = i

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select should quit the picker")
	}
	res := next.(MenuModel).result()
	if res.GameID != stubID || res.Quit || res.WantsScoreboard {
		t.Errorf("result = %+v", res)
	}
}

func TestMenuNavigationClamps(t *testing.T) {
	var m tea.Model = NewMenuModel(nil, core.DefaultConfig())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.(MenuModel).cursor != 0 {
		t.Error("cursor moved above the first item")
	}
	n := len(m.(MenuModel).items)
	for i := 0; i < n+2; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.(MenuModel).cursor != n-1 {
		t.Errorf("cursor = %d, want %d", m.(MenuModel).cursor, n-1)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if res := next.(MenuModel).result(); !res.WantsScoreboard {
		t.Errorf("tab result = %+v", res)
	}

	next, _ = m.Update(runes("q"))
	if res := next.(MenuModel).result(); !res.Quit {
		t.Errorf("quit result = %+v", res)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	if cfg := next.(MenuModel).Config(); cfg.ScreenW != 120 || cfg.ScreenH != 50 {
		t.Errorf("config not resized: %+v", cfg)
	}
}

func TestScoreboardShowsEntries(t *testing.T) {
	store := testStore(t)
	store.SaveScore(storage.ScoreEntry{GameID: stubID, Name: "ANN", Score: 40, Level: 2})
	store.SaveScore(storage.ScoreEntry{GameID: stubID, Name: "BOB", Score: 90, Level: 5})

	m := NewScoreboardModel(store, 100, 30, stubID)
	if m.games[m.gameCursor].ID != stubID {
		t.Fatalf("opened on %q", m.games[m.gameCursor].ID)
	}
	if len(m.scores) != 2 || m.scores[0].Name != "BOB" {
		t.Errorf("scores = %+v", m.scores)
	}
	if m.stats == nil || m.stats.GamesCount != 2 || m.stats.BestLevel != 5 {
		t.Errorf("stats = %+v", m.stats)
	}

	view := m.View()
	for _, want := range []string{"HALL OF FAME", "Stub Munchers", "BOB", "ANN"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardEmptyStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20, "missing")
	if m.gameCursor != 0 {
		t.Errorf("unknown start should open the first variant, got %d", m.gameCursor)
	}
	if view := m.View(); !strings.Contains(view, "No munchers yet") {
		t.Errorf("empty view:\n%s", view)
	}
}

func TestScoreRows(t *testing.T) {
	when := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	rows := scoreRows([]storage.ScoreEntry{
		{Name: "MUN", Score: 75, Level: 3, CreatedAt: when},
		{Name: "AAA", Score: 5, Level: 1},
	})
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	want := []string{"#1", "MUN", "75", "3", "Mar 09 14:05"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][4] != "-" {
		t.Errorf("missing date = %q", rows[1][4])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Multiples Munchers", 10); got != "Multiples." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Tiny", 10); got != "Tiny" {
		t.Errorf("truncate = %q", got)
	}
}
