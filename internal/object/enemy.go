package object

import (
	"math/rand"

	"github.com/tomz197/centerfire/internal/physics"
)

// Enemy size and motion properties.
const (
	EnemyMinRadius = 4.0  // Smallest spawn radius (inclusive)
	EnemyMaxRadius = 30.0 // Largest spawn radius (exclusive)
	EnemySpeed     = 1.0  // Distance moved per tick

	// HitShrink is how much radius one projectile hit takes off.
	HitShrink = 10.0
	// MinAliveRadius is the radius at or below which a hit destroys the enemy.
	MinAliveRadius = 5.0
	// ShrinkPerTick is the radius lost per tick while animating toward TargetRadius.
	// A full hit animates over roughly half a second at 60 ticks per second.
	ShrinkPerTick = HitShrink / 30
)

// HitOutcome is the result of a projectile striking an enemy.
type HitOutcome int

const (
	HitNone    HitOutcome = iota // Enemy was already destroyed
	HitDamaged                   // Enemy shrinks and survives
	HitKilled                    // Enemy is destroyed
)

// Enemy is a hostile circle drifting toward the center of the screen.
type Enemy struct {
	X, Y         float64 // Position (center)
	VX, VY       float64 // Velocity in units per tick
	Radius       float64 // Current collision/draw radius
	TargetRadius float64 // Radius the enemy is shrinking toward
	Destroyed    bool    // Mark for removal
}

// NewEnemy creates an enemy at (x,y) with the given radius and velocity.
func NewEnemy(x, y, radius, vx, vy float64) *Enemy {
	return &Enemy{
		X:            x,
		Y:            y,
		VX:           vx,
		VY:           vy,
		Radius:       radius,
		TargetRadius: radius,
	}
}

// NewEnemyAtEdge creates an enemy just outside a random screen edge, aimed at the center.
func NewEnemyAtEdge(screen Screen, rng *rand.Rand) *Enemy {
	radius := rng.Float64()*(EnemyMaxRadius-EnemyMinRadius) + EnemyMinRadius
	w := float64(screen.Width)
	h := float64(screen.Height)

	var x, y float64
	if rng.Float64() < 0.5 {
		// Left or right
		if rng.Float64() < 0.5 {
			x = -radius
		} else {
			x = w + radius
		}
		y = rng.Float64() * h
	} else {
		// Top or bottom
		x = rng.Float64() * w
		if rng.Float64() < 0.5 {
			y = -radius
		} else {
			y = h + radius
		}
	}

	cx, cy := screen.Center()
	vx, vy := physics.Toward(x, y, cx, cy, EnemySpeed)
	return NewEnemy(x, y, radius, vx, vy)
}

// Hit applies one projectile hit. The decision uses the current radius, so a
// hit landing mid-shrink retargets the animation from where it is now.
func (e *Enemy) Hit() HitOutcome {
	if e.Destroyed {
		return HitNone
	}
	next := e.Radius - HitShrink
	if next > MinAliveRadius {
		e.TargetRadius = next
		return HitDamaged
	}
	e.MarkDestroyed()
	return HitKilled
}

// Update moves the enemy and advances any pending shrink.
func (e *Enemy) Update(_ UpdateContext) {
	e.X += e.VX
	e.Y += e.VY

	if e.Radius > e.TargetRadius {
		e.Radius -= ShrinkPerTick
		if e.Radius < e.TargetRadius {
			e.Radius = e.TargetRadius
		}
	}
}

// Draw renders the enemy as a filled circle.
func (e *Enemy) Draw(s Surface) {
	s.DrawCircle(e.X, e.Y, e.Radius, ColorEnemy)
}

// MarkDestroyed marks the enemy for removal (implements Destructible).
func (e *Enemy) MarkDestroyed() {
	e.Destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction (implements Destructible).
func (e *Enemy) IsDestroyed() bool {
	return e.Destroyed
}

// GetPosition returns the enemy's center position.
func (e *Enemy) GetPosition() (float64, float64) {
	return e.X, e.Y
}

// GetRadius returns the enemy's collision radius.
func (e *Enemy) GetRadius() float64 {
	return e.Radius
}
