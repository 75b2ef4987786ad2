// Package effects draws particle feedback for game events.
package effects

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/object"
)

// Burst sizes per event.
const (
	killParticles   = 24
	damageParticles = 6
	playerParticles = 48
	clearConfetti   = 40
	winConfetti     = 150
)

var colorSpark = color.RGBA{R: 255, G: 200, B: 80, A: 255}

// Effects owns the particles spawned by game events. It implements loop.Hooks
// and is driven by the frame loop through Update and Draw.
type Effects struct {
	loop.NopHooks

	screen    object.Screen
	rng       *rand.Rand
	particles []*object.Particle
}

// New creates an effects layer for a viewport.
func New(screen object.Screen, rng *rand.Rand) *Effects {
	return &Effects{screen: screen, rng: rng}
}

// SetScreen updates the viewport used for confetti.
func (e *Effects) SetScreen(screen object.Screen) {
	e.screen = screen
}

// Spawn adds a particle. Implements object.Spawner.
func (e *Effects) Spawn(obj object.Object) {
	if p, ok := obj.(*object.Particle); ok {
		e.particles = append(e.particles, p)
	}
}

// OnEnemyKilled bursts the enemy into red debris.
func (e *Effects) OnEnemyKilled(ev loop.Event) {
	object.SpawnExplosion(ev.X, ev.Y, killParticles, 90, 0.8, object.ColorEnemy, e.rng, e)
}

// OnEnemyDamaged throws a few sparks.
func (e *Effects) OnEnemyDamaged(ev loop.Event) {
	object.SpawnExplosion(ev.X, ev.Y, damageParticles, 60, 0.4, colorSpark, e.rng, e)
}

// OnPlayerHit shatters the player.
func (e *Effects) OnPlayerHit(ev loop.Event) {
	object.SpawnExplosion(ev.X, ev.Y, playerParticles, 120, 1.5, object.ColorPlayer, e.rng, e)
}

// OnLevelCleared drops a little confetti.
func (e *Effects) OnLevelCleared(loop.Event) {
	object.SpawnConfetti(e.screen, clearConfetti, e.rng, e)
}

// OnGameWon drops a lot of confetti.
func (e *Effects) OnGameWon(loop.Event) {
	object.SpawnConfetti(e.screen, winConfetti, e.rng, e)
}

// Update ages every particle and releases the expired ones.
func (e *Effects) Update(delta time.Duration) {
	ctx := object.UpdateContext{Delta: delta, Screen: e.screen, Spawner: e}
	kept := e.particles[:0]
	for _, p := range e.particles {
		p.Update(ctx)
		if p.Expired() {
			object.ReleaseObject(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(e.particles[len(kept):])
	e.particles = kept
}

// Draw renders the live particles.
func (e *Effects) Draw(s object.Surface) {
	for _, p := range e.particles {
		p.Draw(s)
	}
}

// Reset drops every particle, e.g. when a new round starts.
func (e *Effects) Reset() {
	for _, p := range e.particles {
		object.ReleaseObject(p)
	}
	clear(e.particles)
	e.particles = e.particles[:0]
}

// Len returns the number of live particles.
func (e *Effects) Len() int {
	return len(e.particles)
}

var _ loop.Hooks = (*Effects)(nil)
