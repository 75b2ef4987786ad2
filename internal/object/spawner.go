package object

import (
	"math/rand"
	"time"
)

// EnemySpawner releases a fixed quota of enemies at a steady interval.
// It is driven by the frame loop through Update, accumulating frame time.
type EnemySpawner struct {
	quota     int
	interval  time.Duration
	elapsed   time.Duration
	generated int
	cancelled bool
	rng       *rand.Rand
}

// NewEnemySpawner creates a spawner for quota enemies, one every interval.
func NewEnemySpawner(quota int, interval time.Duration, rng *rand.Rand) *EnemySpawner {
	if quota < 0 {
		quota = 0
	}
	return &EnemySpawner{
		quota:    quota,
		interval: interval,
		rng:      rng,
	}
}

// Update spawns at the edges once per elapsed interval until the quota is reached.
// The first enemy appears one full interval after the spawner starts.
func (s *EnemySpawner) Update(ctx UpdateContext) {
	if s.Done() || ctx.Spawner == nil {
		return
	}

	s.elapsed += ctx.Delta
	for !s.Done() && s.elapsed >= s.interval {
		s.elapsed -= s.interval
		ctx.Spawner.Spawn(NewEnemyAtEdge(ctx.Screen, s.rng))
		s.generated++
	}
}

// Draw is a no-op; spawner is not visible.
func (s *EnemySpawner) Draw(_ Surface) {}

// Cancel stops the spawner. Safe to call more than once.
func (s *EnemySpawner) Cancel() {
	s.cancelled = true
}

// Done reports whether the spawner will produce no more enemies.
func (s *EnemySpawner) Done() bool {
	return s.cancelled || s.generated >= s.quota
}

// Exhausted reports whether the whole quota has been spawned.
func (s *EnemySpawner) Exhausted() bool {
	return s.generated >= s.quota
}

// Generated returns how many enemies have been spawned so far.
func (s *EnemySpawner) Generated() int {
	return s.generated
}

// Quota returns the total number of enemies this spawner will release.
func (s *EnemySpawner) Quota() int {
	return s.quota
}
