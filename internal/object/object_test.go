package object

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"
)

// recordingSurface captures draw calls.
type recordingSurface struct {
	w, h    int
	cleared int
	circles []circle
}

type circle struct {
	x, y, r float64
	c       color.Color
}

func (s *recordingSurface) Width() int  { return s.w }
func (s *recordingSurface) Height() int { return s.h }
func (s *recordingSurface) Clear()      { s.cleared++ }
func (s *recordingSurface) DrawCircle(x, y, r float64, c color.Color) {
	s.circles = append(s.circles, circle{x, y, r, c})
}

// collector gathers spawned objects.
type collector struct {
	objects []Object
}

func (c *collector) Spawn(obj Object) { c.objects = append(c.objects, obj) }

func TestPlayerDoesNotMove(t *testing.T) {
	p := NewPlayer(400, 300)
	for i := 0; i < 10; i++ {
		p.Update(UpdateContext{Delta: time.Second / 60})
	}
	if x, y := p.GetPosition(); x != 400 || y != 300 {
		t.Fatalf("player moved to (%f, %f)", x, y)
	}
	if p.GetRadius() != PlayerRadius {
		t.Fatalf("radius = %f, want %f", p.GetRadius(), PlayerRadius)
	}
}

func TestProjectileAimsAtTarget(t *testing.T) {
	p := NewProjectile(400, 300, 400, 0)
	p.Update(UpdateContext{})
	if math.Abs(p.X-400) > 1e-9 || math.Abs(p.Y-295) > 1e-9 {
		t.Fatalf("projectile at (%f, %f), want (400, 295)", p.X, p.Y)
	}

	// Degenerate target fires along angle 0.
	p = NewProjectile(10, 10, 10, 10)
	if p.VX != ProjectileSpeed || p.VY != 0 {
		t.Fatalf("velocity = (%f, %f), want (%f, 0)", p.VX, p.VY, ProjectileSpeed)
	}
}

func TestProjectileOutOfBounds(t *testing.T) {
	screen := NewScreen(100, 100)
	p := NewProjectile(50, 50, 200, 50)
	for i := 0; i < 10; i++ {
		p.Update(UpdateContext{})
	}
	if p.OutOfBounds(screen) {
		t.Fatalf("projectile at x=%f reported out of bounds", p.X)
	}
	for i := 0; i < 2; i++ {
		p.Update(UpdateContext{})
	}
	if !p.OutOfBounds(screen) {
		t.Fatalf("projectile at x=%f not reported out of bounds", p.X)
	}
}

func TestEnemyHitDamagesThenKills(t *testing.T) {
	e := NewEnemy(0, 0, 25, 0, 0)

	if got := e.Hit(); got != HitDamaged {
		t.Fatalf("first hit = %v, want HitDamaged", got)
	}
	if e.TargetRadius != 15 {
		t.Fatalf("TargetRadius = %f, want 15", e.TargetRadius)
	}
	if e.Radius != 25 {
		t.Fatalf("radius jumped to %f before animating", e.Radius)
	}

	// A second hit before the animation moves retargets from the live radius.
	if got := e.Hit(); got != HitDamaged || e.TargetRadius != 15 {
		t.Fatalf("second hit = %v, target %f; want HitDamaged, 15", got, e.TargetRadius)
	}

	// Once settled at 15, 15 - 10 = 5 is not above the survival threshold.
	for e.Radius > e.TargetRadius {
		e.Update(UpdateContext{})
	}
	if got := e.Hit(); got != HitKilled {
		t.Fatalf("hit at radius %f = %v, want HitKilled", e.Radius, got)
	}
	if !e.IsDestroyed() {
		t.Fatal("enemy not destroyed after kill")
	}
	if got := e.Hit(); got != HitNone {
		t.Fatalf("hit on destroyed enemy = %v, want HitNone", got)
	}
}

func TestEnemyShrinksSmoothly(t *testing.T) {
	e := NewEnemy(0, 0, 25, 0, 0)
	e.Hit()

	prev := e.Radius
	ticks := 0
	for e.Radius > e.TargetRadius {
		e.Update(UpdateContext{})
		if e.Radius >= prev {
			t.Fatalf("radius did not decrease: %f -> %f", prev, e.Radius)
		}
		if prev-e.Radius > ShrinkPerTick+1e-9 {
			t.Fatalf("radius dropped by %f in one tick", prev-e.Radius)
		}
		prev = e.Radius
		ticks++
		if ticks > 1000 {
			t.Fatal("shrink never finished")
		}
	}
	if e.Radius != 15 {
		t.Fatalf("radius settled at %f, want 15", e.Radius)
	}
	if ticks < 2 {
		t.Fatalf("shrink completed in %d ticks, want an animation", ticks)
	}
}

func TestEnemySmallIsKilledOutright(t *testing.T) {
	e := NewEnemy(0, 0, 12, 0, 0)
	if got := e.Hit(); got != HitKilled {
		t.Fatalf("hit = %v, want HitKilled", got)
	}
}

func TestNewEnemyAtEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	screen := NewScreen(800, 600)

	for i := 0; i < 500; i++ {
		e := NewEnemyAtEdge(screen, rng)
		if e.Radius < EnemyMinRadius || e.Radius >= EnemyMaxRadius {
			t.Fatalf("radius %f outside [%f, %f)", e.Radius, EnemyMinRadius, EnemyMaxRadius)
		}

		// Fully off-screen on exactly one axis.
		offX := e.X == -e.Radius || e.X == 800+e.Radius
		offY := e.Y == -e.Radius || e.Y == 600+e.Radius
		if offX == offY {
			t.Fatalf("enemy at (%f, %f) r=%f is not on a single edge", e.X, e.Y, e.Radius)
		}

		if speed := math.Hypot(e.VX, e.VY); math.Abs(speed-EnemySpeed) > 1e-9 {
			t.Fatalf("speed = %f, want %f", speed, EnemySpeed)
		}

		// Velocity points at the center.
		dx, dy := 400-e.X, 300-e.Y
		d := math.Hypot(dx, dy)
		if math.Abs(e.VX-dx/d) > 1e-9 || math.Abs(e.VY-dy/d) > 1e-9 {
			t.Fatalf("velocity (%f, %f) not aimed at center", e.VX, e.VY)
		}
	}
}

func TestSpawnerStopsAtQuota(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewEnemySpawner(5, 100*time.Millisecond, rng)
	sink := &collector{}
	ctx := UpdateContext{Delta: 100 * time.Millisecond, Screen: NewScreen(800, 600), Spawner: sink}

	for i := 0; i < 50; i++ {
		s.Update(ctx)
	}
	if len(sink.objects) != 5 {
		t.Fatalf("spawned %d enemies, want 5", len(sink.objects))
	}
	if !s.Exhausted() || !s.Done() {
		t.Fatal("spawner not exhausted after quota")
	}
	if s.Generated() != s.Quota() {
		t.Fatalf("Generated = %d, want %d", s.Generated(), s.Quota())
	}
}

func TestSpawnerInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewEnemySpawner(10, time.Second, rng)
	sink := &collector{}
	ctx := UpdateContext{Delta: 400 * time.Millisecond, Screen: NewScreen(800, 600), Spawner: sink}

	s.Update(ctx) // 0.4s
	s.Update(ctx) // 0.8s
	if len(sink.objects) != 0 {
		t.Fatalf("spawned %d enemies before the first interval", len(sink.objects))
	}
	s.Update(ctx) // 1.2s
	if len(sink.objects) != 1 {
		t.Fatalf("spawned %d enemies after one interval, want 1", len(sink.objects))
	}

	// A long frame catches up without exceeding the elapsed intervals.
	s.Update(UpdateContext{Delta: 3 * time.Second, Screen: ctx.Screen, Spawner: sink})
	if len(sink.objects) != 4 {
		t.Fatalf("spawned %d enemies after 4.2s, want 4", len(sink.objects))
	}
}

func TestSpawnerCancel(t *testing.T) {
	s := NewEnemySpawner(5, time.Millisecond, rand.New(rand.NewSource(1)))
	sink := &collector{}
	s.Cancel()
	s.Cancel()
	s.Update(UpdateContext{Delta: time.Second, Screen: NewScreen(10, 10), Spawner: sink})
	if len(sink.objects) != 0 {
		t.Fatalf("cancelled spawner spawned %d enemies", len(sink.objects))
	}
	if !s.Done() || s.Exhausted() {
		t.Fatal("cancelled spawner should be done but not exhausted")
	}
}

func TestDrawIsRenderOnly(t *testing.T) {
	surface := &recordingSurface{w: 800, h: 600}
	e := NewEnemy(10, 20, 15, 1, 0)
	e.Draw(surface)
	e.Draw(surface)
	if e.X != 10 || e.Radius != 15 {
		t.Fatal("Draw mutated the enemy")
	}
	if len(surface.circles) != 2 {
		t.Fatalf("got %d circles, want 2", len(surface.circles))
	}
	if surface.circles[0].c != ColorEnemy {
		t.Fatalf("enemy drawn in %v, want %v", surface.circles[0].c, ColorEnemy)
	}
}

func TestParticlesExpireAndSpawn(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sink := &collector{}
	SpawnExplosion(50, 50, 12, 30, 0.5, ColorEnemy, rng, sink)
	SpawnConfetti(NewScreen(100, 100), 8, rng, sink)
	if len(sink.objects) != 20 {
		t.Fatalf("spawned %d particles, want 20", len(sink.objects))
	}

	SpawnExplosion(0, 0, 5, 1, 1, ColorEnemy, rng, nil)

	p := sink.objects[0].(*Particle)
	for i := 0; i < 60 && !p.Expired(); i++ {
		p.Update(UpdateContext{Delta: time.Second / 60})
	}
	if !p.Expired() {
		t.Fatal("explosion particle outlived its lifetime")
	}
	surface := &recordingSurface{}
	p.Draw(surface)
	if len(surface.circles) != 0 {
		t.Fatal("expired particle was drawn")
	}
	ReleaseObject(p)
}

func TestScreenCenter(t *testing.T) {
	if x, y := NewScreen(481, 320).Center(); x != 240.5 || y != 160 {
		t.Fatalf("Center = (%f, %f), want (240.5, 160)", x, y)
	}
}
