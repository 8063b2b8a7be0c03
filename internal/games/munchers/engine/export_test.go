package engine

// PlaceEnemies replaces the enemies on the board.
func (m *Machine) PlaceEnemies(enemies ...Enemy) {
	m.enemies = append([]Enemy(nil), enemies...)
}

// PlaceAvatar puts the avatar on p with no transition.
func (m *Machine) PlaceAvatar(p Position) {
	m.avatar = Avatar{Pos: p}
}

// SetLives overrides the remaining lives.
func (m *Machine) SetLives(n int) {
	m.lives = n
}
