package engine

// Blank marks an empty cell in a literal layout.
const Blank = 0

// Direction is a move intent on the grid.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a stable order for random picks.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Position is a (row, col) grid coordinate.
type Position struct {
	Row, Col int
}

// Step returns the neighbouring position in direction d, unclamped.
func (p Position) Step(d Direction) Position {
	switch d {
	case DirUp:
		p.Row--
	case DirDown:
		p.Row++
	case DirLeft:
		p.Col--
	case DirRight:
		p.Col++
	}
	return p
}

// Cell is one square of the board.
type Cell struct {
	Pos      Position
	Value    int
	HasValue bool
	Correct  bool // fixed at generation
	Eaten    bool // monotonic
}

// Empty reports whether there is nothing to eat.
func (c Cell) Empty() bool {
	return !c.HasValue || c.Eaten
}

// Board is a fixed Rows x Cols grid stored row-major.
type Board struct {
	Rows  int
	Cols  int
	cells []Cell
}

func newBoard(rows, cols int) *Board {
	b := &Board{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			b.cells[r*cols+c].Pos = Position{Row: r, Col: c}
		}
	}
	return b
}

// InBounds reports whether p lies within [0,Rows) x [0,Cols).
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

// Cell returns the cell at p. ok is false out of bounds.
func (b *Board) Cell(p Position) (cell Cell, ok bool) {
	if !b.InBounds(p) {
		return Cell{}, false
	}
	return b.cells[p.Row*b.Cols+p.Col], true
}

// Cells returns a copy of every cell in row-major order.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// set places a value and tags its correctness.
func (b *Board) set(p Position, value int, rule Rule) {
	c := &b.cells[p.Row*b.Cols+p.Col]
	c.Value = value
	c.HasValue = value != Blank
	c.Correct = c.HasValue && rule.Evaluate(value)
	c.Eaten = false
}

// eat marks the cell eaten and clears its value. It is a no-op for
// blank or already eaten cells and reports whether anything changed.
func (b *Board) eat(p Position) bool {
	if !b.InBounds(p) {
		return false
	}
	c := &b.cells[p.Row*b.Cols+p.Col]
	if c.Empty() {
		return false
	}
	c.Eaten = true
	c.HasValue = false
	c.Value = 0
	return true
}

// CorrectCount returns how many cells were tagged correct at generation.
func (b *Board) CorrectCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Correct {
			n++
		}
	}
	return n
}

// RemainingCorrect returns the number of correct cells not yet eaten.
func (b *Board) RemainingCorrect() int {
	n := 0
	for _, c := range b.cells {
		if c.Correct && !c.Eaten {
			n++
		}
	}
	return n
}

// Cleared reports whether every correct cell has been eaten.
func (b *Board) Cleared() bool {
	return b.RemainingCorrect() == 0
}

// Layout returns the current values as rows, with Blank for empty cells.
func (b *Board) Layout() [][]int {
	out := make([][]int, b.Rows)
	for r := 0; r < b.Rows; r++ {
		out[r] = make([]int, b.Cols)
		for c := 0; c < b.Cols; c++ {
			cell := b.cells[r*b.Cols+c]
			if !cell.Empty() {
				out[r][c] = cell.Value
			}
		}
	}
	return out
}
