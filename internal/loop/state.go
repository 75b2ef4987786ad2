package loop

import (
	"math/rand"

	"github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/object"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateInit  GameState = iota // Title screen, nothing spawned yet
	GameStateStart                  // Active gameplay
	GameStateLost                   // Player was hit
	GameStateNext                   // Level cleared, waiting to continue
	GameStateWin                    // Final level cleared
)

// String returns a lower-case name for logs.
func (s GameState) String() string {
	switch s {
	case GameStateInit:
		return "init"
	case GameStateStart:
		return "start"
	case GameStateLost:
		return "lost"
	case GameStateNext:
		return "next"
	case GameStateWin:
		return "win"
	default:
		return "unknown"
	}
}

// Playing reports whether the simulation advances in this state.
func (s GameState) Playing() bool {
	return s == GameStateStart
}

// RoundState holds every entity of one round, from Start until a terminal state.
type RoundState struct {
	Screen      object.Screen
	Player      *object.Player
	Enemies     []*object.Enemy
	Projectiles []*object.Projectile
	Spawner     *object.EnemySpawner

	toSpawn []*object.Enemy // Enemies to add after the current update cycle
}

// NewRoundState creates a round with a player at the screen center and a
// spawner for the given level.
func NewRoundState(screen object.Screen, level config.Level, rng *rand.Rand) *RoundState {
	cx, cy := screen.Center()
	return &RoundState{
		Screen:  screen,
		Player:  object.NewPlayer(cx, cy),
		Spawner: object.NewEnemySpawner(level.NumberEnemy, level.EnemyGenerateTime, rng),
	}
}

// Spawn queues an enemy to be added after the current update cycle.
// Implements object.Spawner interface.
func (r *RoundState) Spawn(obj object.Object) {
	if e, ok := obj.(*object.Enemy); ok {
		r.toSpawn = append(r.toSpawn, e)
	}
}

// FlushSpawned adds all queued enemies to the round and clears the queue.
func (r *RoundState) FlushSpawned() {
	r.Enemies = append(r.Enemies, r.toSpawn...)
	r.toSpawn = r.toSpawn[:0]
}

// AddProjectile adds a projectile to the round.
func (r *RoundState) AddProjectile(p *object.Projectile) {
	r.Projectiles = append(r.Projectiles, p)
}

// Compact drops every entity marked destroyed. Reuses backing arrays.
func (r *RoundState) Compact() {
	enemies := r.Enemies[:0]
	for _, e := range r.Enemies {
		if !e.IsDestroyed() {
			enemies = append(enemies, e)
		}
	}
	clear(r.Enemies[len(enemies):])
	r.Enemies = enemies

	projectiles := r.Projectiles[:0]
	for _, p := range r.Projectiles {
		if !p.IsDestroyed() {
			projectiles = append(projectiles, p)
		}
	}
	clear(r.Projectiles[len(projectiles):])
	r.Projectiles = projectiles
}

// Cleared reports whether the level quota was fully spawned and no enemy remains.
func (r *RoundState) Cleared() bool {
	return r.Spawner.Exhausted() && len(r.Enemies) == 0 && len(r.toSpawn) == 0
}

// Update advances the spawner and every entity by one tick.
func (r *RoundState) Update(ctx object.UpdateContext) {
	ctx.Screen = r.Screen
	ctx.Spawner = r

	r.Spawner.Update(ctx)
	r.Player.Update(ctx)
	for _, e := range r.Enemies {
		e.Update(ctx)
	}
	for _, p := range r.Projectiles {
		p.Update(ctx)
	}

	r.FlushSpawned()
}

// Draw renders the player, enemies and projectiles.
func (r *RoundState) Draw(s object.Surface) {
	r.Player.Draw(s)
	for _, e := range r.Enemies {
		e.Draw(s)
	}
	for _, p := range r.Projectiles {
		p.Draw(s)
	}
}
