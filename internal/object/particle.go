package object

import (
	"image/color"
	"math"
	"math/rand"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity in units per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Gravity     float64 // Downward acceleration in units per second²
	Size        float64 // Draw radius
	Color       color.RGBA
	Fade        bool // Whether to shrink out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime, size float64, c color.RGBA) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Gravity = 0
	p.Size = size
	p.Color = c
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion creates particles in a circular burst pattern.
func SpawnExplosion(x, y float64, count int, speed, lifetime float64, c color.RGBA, rng *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		// Random direction
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rng.Float64()*0.5)

		vx := math.Cos(angle) * spd
		vy := math.Sin(angle) * spd

		size := 1 + rng.Float64()*2
		spawner.Spawn(NewParticle(x, y, vx, vy, life, size, c))
	}
}

// confettiColors are the palette for the win celebration.
var confettiColors = []color.RGBA{
	{R: 255, G: 215, B: 0, A: 255},
	{R: 0, G: 200, B: 255, A: 255},
	{R: 255, G: 80, B: 200, A: 255},
	{R: 120, G: 255, B: 120, A: 255},
	{R: 255, G: 140, B: 0, A: 255},
}

// SpawnConfetti drops count colored particles from above the top edge of the screen.
func SpawnConfetti(screen Screen, count int, rng *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	w := float64(screen.Width)
	h := float64(screen.Height)
	for i := 0; i < count; i++ {
		x := rng.Float64() * w
		y := -rng.Float64() * h * 0.25
		vx := (rng.Float64() - 0.5) * w * 0.1
		vy := h * (0.05 + rng.Float64()*0.1)
		life := 2.0 + rng.Float64()*2.0

		p := NewParticle(x, y, vx, vy, life, 1.5+rng.Float64()*2, confettiColors[rng.Intn(len(confettiColors))])
		p.Drag = 0.99
		p.Gravity = h * 0.15
		p.Fade = false
		spawner.Spawn(p)
	}
}

// Update moves the particle and ages it.
func (p *Particle) Update(ctx UpdateContext) {
	dt := ctx.Delta.Seconds()

	// Decrease lifetime
	p.Lifetime -= dt

	// Apply drag
	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.VY += p.Gravity * dt

	// Apply velocity
	p.X += p.VX * dt
	p.Y += p.VY * dt
}

// Expired reports whether the particle's lifetime has run out.
func (p *Particle) Expired() bool {
	return p.Lifetime <= 0
}

// Draw renders the particle as a small circle.
func (p *Particle) Draw(s Surface) {
	if p.Expired() {
		return
	}
	size := p.Size
	if p.Fade && p.MaxLifetime > 0 {
		size *= p.Lifetime / p.MaxLifetime
	}
	s.DrawCircle(p.X, p.Y, size, p.Color)
}
