package effects

import (
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/object"
)

type countingSurface struct{ circles int }

func (s *countingSurface) Width() int                                { return 800 }
func (s *countingSurface) Height() int                               { return 600 }
func (s *countingSurface) Clear()                                    {}
func (s *countingSurface) DrawCircle(_, _, _ float64, _ color.Color) { s.circles++ }

func newTestEffects() *Effects {
	return New(object.NewScreen(800, 600), rand.New(rand.NewSource(3)))
}

func TestKillBurstExpires(t *testing.T) {
	e := newTestEffects()
	e.OnEnemyKilled(loop.Event{X: 100, Y: 100, Radius: 8})
	if e.Len() != killParticles {
		t.Fatalf("%d particles, want %d", e.Len(), killParticles)
	}

	e.Update(100 * time.Millisecond)
	if e.Len() != killParticles {
		t.Fatal("particles expired too early")
	}

	var s countingSurface
	e.Draw(&s)
	if s.circles != killParticles {
		t.Fatalf("drew %d circles, want %d", s.circles, killParticles)
	}

	e.Update(time.Second)
	if e.Len() != 0 {
		t.Fatalf("%d particles left after their lifetime", e.Len())
	}
}

func TestEventSizes(t *testing.T) {
	tests := []struct {
		name string
		fire func(*Effects)
		want int
	}{
		{"damage", func(e *Effects) { e.OnEnemyDamaged(loop.Event{}) }, damageParticles},
		{"player", func(e *Effects) { e.OnPlayerHit(loop.Event{X: 400, Y: 300}) }, playerParticles},
		{"cleared", func(e *Effects) { e.OnLevelCleared(loop.Event{}) }, clearConfetti},
		{"won", func(e *Effects) { e.OnGameWon(loop.Event{}) }, winConfetti},
		{"shoot", func(e *Effects) { e.OnShoot(loop.Event{}) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEffects()
			tt.fire(e)
			if e.Len() != tt.want {
				t.Fatalf("%d particles, want %d", e.Len(), tt.want)
			}
		})
	}
}

func TestConfettiFalls(t *testing.T) {
	e := newTestEffects()
	e.OnGameWon(loop.Event{})

	before := make([]float64, e.Len())
	for i, p := range e.particles {
		before[i] = p.Y
	}
	e.Update(500 * time.Millisecond)
	for i, p := range e.particles {
		if p.Y <= before[i] {
			t.Fatalf("confetti %d did not fall: %f -> %f", i, before[i], p.Y)
		}
	}
}

func TestReset(t *testing.T) {
	e := newTestEffects()
	e.OnPlayerHit(loop.Event{})
	e.Reset()
	if e.Len() != 0 {
		t.Fatal("particles left after reset")
	}
	var s countingSurface
	e.Draw(&s)
	if s.circles != 0 {
		t.Fatal("drew particles after reset")
	}
}

func TestSpawnIgnoresOtherObjects(t *testing.T) {
	e := newTestEffects()
	e.Spawn(object.NewPlayer(0, 0))
	if e.Len() != 0 {
		t.Fatal("non-particle accepted")
	}
}
