package object

// PlayerRadius is the fixed radius of the player.
const PlayerRadius = 10.0

// Player is the stationary turret at the center of the viewport.
type Player struct {
	X, Y   float64 // Position (center)
	Radius float64
}

// NewPlayer creates a player at the given position.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Radius: PlayerRadius,
	}
}

// Update is a no-op; the player never moves itself.
func (p *Player) Update(_ UpdateContext) {}

// Draw renders the player as a filled circle.
func (p *Player) Draw(s Surface) {
	s.DrawCircle(p.X, p.Y, p.Radius, ColorPlayer)
}

// GetPosition returns the player's center position.
func (p *Player) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// GetRadius returns the player's collision radius.
func (p *Player) GetRadius() float64 {
	return p.Radius
}
