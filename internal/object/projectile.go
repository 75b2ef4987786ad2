package object

import (
	"github.com/tomz197/centerfire/internal/physics"
)

// Projectile is a bullet fired by the player.
type Projectile struct {
	X, Y      float64 // Position
	VX, VY    float64 // Velocity in units per tick
	Radius    float64
	destroyed bool // Marked for destruction
}

// ProjectileSpeed is the distance a projectile travels per tick.
const ProjectileSpeed = 5.0

// ProjectileRadius is the collision radius of a projectile.
const ProjectileRadius = 5.0

// NewProjectile creates a projectile at (x,y) traveling toward (targetX, targetY).
// A target equal to the origin fires along angle 0.
func NewProjectile(x, y, targetX, targetY float64) *Projectile {
	vx, vy := physics.Toward(x, y, targetX, targetY, ProjectileSpeed)
	return &Projectile{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Radius: ProjectileRadius,
	}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Update moves the projectile one tick along its velocity.
func (p *Projectile) Update(_ UpdateContext) {
	p.X += p.VX
	p.Y += p.VY
}

// OutOfBounds reports whether the projectile has fully left the screen.
func (p *Projectile) OutOfBounds(screen Screen) bool {
	return physics.OutsideRect(p.X, p.Y, p.Radius, float64(screen.Width), float64(screen.Height))
}

// Draw renders the projectile.
func (p *Projectile) Draw(s Surface) {
	s.DrawCircle(p.X, p.Y, p.Radius, ColorProjectile)
}

// GetPosition returns the projectile's center position.
func (p *Projectile) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// GetRadius returns the projectile's collision radius.
func (p *Projectile) GetRadius() float64 {
	return p.Radius
}
