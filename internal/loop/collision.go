package loop

import (
	"github.com/tomz197/centerfire/internal/object"
	"github.com/tomz197/centerfire/internal/physics"
)

// Hit pairs an enemy with the projectile that struck it.
type Hit struct {
	Enemy      *object.Enemy
	Projectile *object.Projectile
}

// Resolution summarizes the collisions found in one tick.
type Resolution struct {
	PlayerHit *object.Enemy // Enemy that reached the player, nil if none
	Damaged   []Hit
	Killed    []Hit
	Escaped   int // Projectiles that left the screen
}

// Resolve runs the collision pass for one tick and compacts the round.
// A player hit ends resolution immediately; nothing else is applied that tick.
func Resolve(r *RoundState) Resolution {
	var res Resolution

	if e := checkPlayerCollisions(r); e != nil {
		res.PlayerHit = e
		return res
	}

	checkProjectileEnemyCollisions(r, &res)
	res.Escaped = checkProjectileBounds(r)

	r.Compact()
	return res
}

// checkPlayerCollisions returns the first enemy touching the player.
func checkPlayerCollisions(r *RoundState) *object.Enemy {
	px, py := r.Player.GetPosition()
	pr := r.Player.GetRadius()

	for _, e := range r.Enemies {
		if e.IsDestroyed() {
			continue
		}
		if physics.CirclesTouch(px, py, pr, e.X, e.Y, e.GetRadius()) {
			return e
		}
	}
	return nil
}

// checkProjectileEnemyCollisions handles projectile hits on enemies.
// Each projectile is spent on the first enemy it touches.
func checkProjectileEnemyCollisions(r *RoundState, res *Resolution) {
	for _, e := range r.Enemies {
		if e.IsDestroyed() {
			continue
		}
		for _, p := range r.Projectiles {
			if p.IsDestroyed() {
				continue
			}
			if !physics.CirclesTouch(p.X, p.Y, p.GetRadius(), e.X, e.Y, e.GetRadius()) {
				continue
			}

			p.MarkDestroyed()
			switch e.Hit() {
			case object.HitDamaged:
				res.Damaged = append(res.Damaged, Hit{Enemy: e, Projectile: p})
			case object.HitKilled:
				res.Killed = append(res.Killed, Hit{Enemy: e, Projectile: p})
			}

			if e.IsDestroyed() {
				break
			}
		}
	}
}

// checkProjectileBounds marks projectiles that have left the screen.
func checkProjectileBounds(r *RoundState) int {
	escaped := 0
	for _, p := range r.Projectiles {
		if p.IsDestroyed() {
			continue
		}
		if p.OutOfBounds(r.Screen) {
			p.MarkDestroyed()
			escaped++
		}
	}
	return escaped
}
