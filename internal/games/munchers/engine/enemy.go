package engine

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Enemy is a wandering Toggle. Two enemies never share a cell.
type Enemy struct {
	ID  int
	Pos Position
}

func occupancy(enemies []Enemy) mapset.Set[Position] {
	occupied := mapset.New[Position]()
	for _, e := range enemies {
		occupied.Put(e.Pos)
	}
	return occupied
}

// Tick moves every enemy one random step. Each enemy picks one of the four
// directions uniformly and stays put when the destination is off the board
// or already taken by an enemy that moved earlier in the same tick.
func Tick(b *Board, enemies []Enemy, rng *rand.Rand) []Enemy {
	out := make([]Enemy, len(enemies))
	copy(out, enemies)

	occupied := occupancy(out)
	for i := range out {
		d := Directions[rng.Intn(len(Directions))]
		next := out[i].Pos.Step(d)
		if !b.InBounds(next) || occupied.Has(next) {
			continue
		}
		occupied.Remove(out[i].Pos)
		occupied.Put(next)
		out[i].Pos = next
	}
	return out
}

// freeCells lists cells holding neither an enemy nor anything in avoid, in
// row-major order.
func freeCells(b *Board, enemies []Enemy, avoid ...Position) []Position {
	blocked := occupancy(enemies)
	for _, p := range avoid {
		blocked.Put(p)
	}

	free := make([]Position, 0, b.Rows*b.Cols)
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			p := Position{Row: r, Col: c}
			if !blocked.Has(p) {
				free = append(free, p)
			}
		}
	}
	return free
}

// spawnEnemies places up to n enemies on distinct random cells, never on
// the avatar's cell. Small boards get fewer enemies.
func spawnEnemies(b *Board, n int, avatar Position, rng *rand.Rand) []Enemy {
	enemies := make([]Enemy, 0, n)
	for id := 0; id < n; id++ {
		free := freeCells(b, enemies, avatar)
		if len(free) == 0 {
			break
		}
		enemies = append(enemies, Enemy{ID: id + 1, Pos: free[rng.Intn(len(free))]})
	}
	return enemies
}

// relocate moves enemies[i] to a random free cell away from the avatar.
// The enemy stays put when the board has no room.
func relocate(b *Board, enemies []Enemy, i int, avatar Position, rng *rand.Rand) {
	others := make([]Enemy, 0, len(enemies)-1)
	others = append(others, enemies[:i]...)
	others = append(others, enemies[i+1:]...)

	free := freeCells(b, others, avatar, enemies[i].Pos)
	if len(free) == 0 {
		return
	}
	enemies[i].Pos = free[rng.Intn(len(free))]
}
