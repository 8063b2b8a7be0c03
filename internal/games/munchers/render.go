package munchers

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/munchers/internal/config"
	"github.com/vovakirdan/munchers/internal/core"
	"github.com/vovakirdan/munchers/internal/games/munchers/engine"
)

const (
	cellWidth  = 6 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)

	hudHeight    = 4
	footerHeight = 2
	hudMinWidth  = 48

	overlayWrap = 36
)

// Visual characters for rendering
const (
	MuncherChar      = 'ᗧ'
	MuncherChompChar = 'O'
	EnemyChar        = 'Ж'
	HeartChar        = '♥'
	StrikeChar       = '✗'
	StrikeFreeChar   = '·'
)

const gameTitle = "N U M B E R   M U N C H E R S"

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst)
		return
	}
	if g.machine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	s := g.machine.Snapshot()
	if s.Phase == engine.PhaseMenu {
		g.renderTitle(dst, s)
		return
	}

	boardW := s.Cols*cellWidth + 1
	boardH := s.Rows*cellHeight + 1
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, s)
	g.renderBoard(dst, s, boardX, boardY)
	g.renderOverlays(dst, s, core.NewRect(boardX, boardY, boardW, boardH))
	dst.DrawTextCentered(g.screenH-1, g.Controls(), core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minSize()
	_, y := core.NewRect(0, 0, g.screenW, g.screenH).Center()
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, g.screenW, g.screenH), core.ColorGray)
}

func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH/2 - 1
	dst.DrawTextCentered(y, "Cannot start "+g.Title(), core.ColorBrightRed)
	for i, line := range wrap(g.err.Error(), max(g.screenW-4, 10)) {
		dst.DrawTextCentered(y+2+i, line, core.ColorDefault)
	}
	dst.DrawTextCentered(g.screenH-1, "Esc: back  Q: quit", core.ColorGray)
}

// renderTitle draws the variant's title screen.
func (g *Game) renderTitle(dst *core.Screen, s engine.Snapshot) {
	lines := []struct {
		text  string
		color core.Color
	}{
		{gameTitle, core.ColorBrightYellow},
		{"", core.ColorDefault},
		{g.Title(), core.ColorBrightCyan},
		{g.variant.Description, core.ColorDefault},
		{"", core.ColorDefault},
		{s.Rule.Instruction(), core.ColorBrightGreen},
	}
	if difficultyPreset != "" && difficultyPreset != config.DifficultyNormal {
		lines = append(lines, struct {
			text  string
			color core.Color
		}{"Difficulty: " + string(difficultyPreset), core.ColorOrange})
	}

	y := max((g.screenH-len(lines)-6)/2, 0)
	for i, l := range lines {
		dst.DrawTextCentered(y+i, l.text, l.color)
	}
	y += len(lines) + 1

	if s.RunID != "" {
		dst.DrawTextCentered(y, "Last player: "+s.Name, core.ColorGray)
	}
	y += 2

	// Blink the prompt.
	if (g.tickCount/15)%2 == 0 {
		dst.DrawTextCentered(y, "Press Enter to start", core.ColorBrightWhite)
	}
	if g.saveErr != nil {
		dst.DrawTextCentered(y+2, "Score not saved: "+g.saveErr.Error(), core.ColorBrightRed)
	}
	dst.DrawTextCentered(g.screenH-1, "Enter: start  Esc: back  Q: quit", core.ColorGray)
}

// renderHUD draws the goal, score, lives, level and clocks.
func (g *Game) renderHUD(dst *core.Screen, s engine.Snapshot) {
	hudX := (g.screenW - hudMinWidth) / 2
	right := func(y int, text string, c core.Color) {
		dst.DrawTextColor(hudX+hudMinWidth-utf8.RuneCountInString(text), y, text, c)
	}

	dst.DrawTextCentered(0, s.Rule.Title(), core.ColorBrightYellow)

	dst.DrawText(hudX, 1, fmt.Sprintf("Score: %d", s.Score))
	dst.DrawTextCentered(1, fmt.Sprintf("Level %d", s.Level), core.ColorBrightCyan)
	right(1, "Lives "+strings.Repeat(string(HeartChar), max(s.Lives, 0)), core.ColorBrightRed)

	dst.DrawTextColor(hudX, 2, fmt.Sprintf("Left: %d", s.Remaining), core.ColorGray)
	if s.StrikesPerLife > 1 {
		strikes := strings.Repeat(string(StrikeChar), s.Strikes) +
			strings.Repeat(string(StrikeFreeChar), max(s.StrikesPerLife-s.Strikes, 0))
		dst.DrawTextCentered(2, "Strikes "+strikes, core.ColorOrange)
	}
	if s.Timed {
		c := core.ColorDefault
		if s.TimeLeft < 10*time.Second {
			c = core.ColorBrightRed
		}
		right(2, "Time "+formatClock(s.TimeLeft), c)
	}
}

// renderBoard draws the grid, the numbers, the muncher and the enemies.
func (g *Game) renderBoard(dst *core.Screen, s engine.Snapshot, boardX, boardY int) {
	for y := 0; y < s.Rows+1; y++ {
		for x := 0; x < s.Cols+1; x++ {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == s.Cols:
				corner = '┐'
			case y == s.Rows && x == 0:
				corner = '└'
			case y == s.Rows && x == s.Cols:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == s.Rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == s.Cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorBlue)

			if x < s.Cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorBlue)
				}
			}
			if y < s.Rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorBlue)
				}
			}
		}
	}

	for _, cell := range s.Cells {
		if !cell.HasValue || cell.Eaten {
			continue
		}
		cx := boardX + cell.Pos.Col*cellWidth + 1
		cy := boardY + cell.Pos.Row*cellHeight + 1

		val := fmt.Sprintf("%3d", cell.Value)
		c := core.ColorDefault
		if cell.Pos == s.Avatar.Pos {
			c = core.ColorBrightGreen
		}
		dst.DrawTextColor(cx+1, cy, val, c)
	}

	// Move target hint.
	if t := s.Avatar.Transition; t.Kind == engine.TransitionMove {
		dst.SetColor(boardX+t.Target.Col*cellWidth+cellWidth-1, boardY+t.Target.Row*cellHeight+1, '·', core.ColorGreen)
	}

	for _, e := range s.Enemies {
		dst.SetColor(boardX+e.Pos.Col*cellWidth+1, boardY+e.Pos.Row*cellHeight+1, EnemyChar, core.ColorBrightRed)
	}

	glyph := MuncherChar
	if s.Avatar.Transition.Kind == engine.TransitionEat && (g.tickCount/4)%2 == 1 {
		glyph = MuncherChompChar
	}
	dst.SetColor(boardX+s.Avatar.Pos.Col*cellWidth+1, boardY+s.Avatar.Pos.Row*cellHeight+1, glyph, core.ColorBrightGreen)
}

// renderOverlays draws the message banner or the name entry box.
func (g *Game) renderOverlays(dst *core.Screen, s engine.Snapshot, area core.Rect) {
	if s.Phase == engine.PhaseHighScoreEntry {
		g.renderNameEntry(dst, s, area)
		return
	}
	if !s.Message.Visible() {
		return
	}

	border := core.ColorBrightCyan
	switch s.Message.Kind {
	case engine.MessageWrong, engine.MessageCaught, engine.MessageTimeUp:
		border = core.ColorBrightRed
	case engine.MessageGameOver:
		border = core.ColorRed
	case engine.MessageLevelComplete:
		border = core.ColorBrightGreen
	}

	lines := wrap(s.Message.Text, overlayWrap)
	lines = append(lines, "", "Press Enter")
	drawOverlay(dst, area, border, lines...)
}

func (g *Game) renderNameEntry(dst *core.Screen, s engine.Snapshot, area core.Rect) {
	letters := make([]string, 0, engine.NameLength)
	for _, r := range s.Name {
		letters = append(letters, string(r))
	}
	name := strings.Join(letters, "  ")
	nameW := utf8.RuneCountInString(name)
	cursor := core.Clamp(s.NameCursor, 0, engine.NameLength-1) * 3
	pointer := []rune(strings.Repeat(" ", nameW))
	if cursor < len(pointer) {
		pointer[cursor] = '^'
	}

	box := drawOverlay(dst, area, core.ColorBrightYellow,
		"HALL OF FAME",
		fmt.Sprintf("Score %d  Level %d", s.Score, s.Level),
		"",
		name,
		string(pointer),
		"",
		"Up/Down: letter  Enter: next",
		"Esc: skip",
	)

	// Highlight the letter under the cursor.
	inner := box.Inset(1)
	cx, cy := inner.X+(inner.W-nameW)/2+cursor, inner.Y+3
	if inner.Contains(cx, cy) {
		dst.SetColor(cx, cy, dst.Get(cx, cy), core.ColorBrightYellow)
	}
}

// drawOverlay draws a bordered box of lines centred on area and returns
// its bounds.
func drawOverlay(dst *core.Screen, area core.Rect, border core.Color, lines ...string) core.Rect {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.CenteredRect(area.W, area.H, maxLen+4, len(lines)+2)
	box.X += area.X
	box.Y += area.Y
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, border)

	inner := box.Inset(1)
	for i, line := range lines {
		x := inner.X + (inner.W-utf8.RuneCountInString(line))/2
		dst.DrawText(x, inner.Y+i, line)
	}
	return box
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// formatClock renders d as m:ss, rounding up so 0:00 means expired.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
