// Package loop provides the game simulation and its state machine.
package loop

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/object"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrRoundInProgress is returned when the viewport changes during a live round.
	ErrRoundInProgress = errors.New("round in progress")
)

// Option configures a Game.
type Option func(*Game)

// WithHooks sets the collaborator notified of game events.
func WithHooks(h Hooks) Option {
	return func(g *Game) {
		if h != nil {
			g.hooks = h
		}
	}
}

// WithRand sets the random source used for spawning.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithLogger sets the logger for state transitions and hook failures.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// Game owns the state machine, the score and level counters, and the current round.
// It is not safe for concurrent use; drive it from a single frame loop.
type Game struct {
	rules  config.Rules
	hooks  Hooks
	rng    *rand.Rand
	logger *log.Logger

	screen object.Screen
	state  GameState
	score  int
	level  int
	round  *RoundState
	ticks  uint64 // Ticks simulated in the current round
}

// NewGame creates a game in the Init state for a viewport of the given size.
func NewGame(rules config.Rules, screen object.Screen, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if screen.Width <= 0 || screen.Height <= 0 {
		return nil, fmt.Errorf("viewport must be positive, got %dx%d", screen.Width, screen.Height)
	}

	g := &Game{
		rules:  rules,
		hooks:  NopHooks{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: log.New(io.Discard),
		screen: screen,
		state:  GameStateInit,
		level:  1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// State returns the current game phase.
func (g *Game) State() GameState { return g.state }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Level returns the current 1-based level.
func (g *Game) Level() int { return g.level }

// MaxLevel returns the final level number.
func (g *Game) MaxLevel() int { return g.rules.MaxLevel() }

// Screen returns the viewport the next (or current) round uses.
func (g *Game) Screen() object.Screen { return g.screen }

// Round returns the current round, or nil before the first Start.
func (g *Game) Round() *RoundState { return g.round }

// SetViewport changes the viewport size. It is refused while a round is live
// because entities are positioned relative to the viewport they spawned in.
func (g *Game) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", width, height)
	}
	if width == g.screen.Width && height == g.screen.Height {
		return nil
	}
	if g.state.Playing() {
		return ErrRoundInProgress
	}
	g.screen = object.NewScreen(width, height)
	return nil
}

// Start begins the first round from the title screen.
func (g *Game) Start() error {
	if g.state != GameStateInit {
		return fmt.Errorf("start from %s: %w", g.state, ErrInvalidTransition)
	}
	return g.startRound()
}

// Continue begins the next level after a level clear.
func (g *Game) Continue() error {
	if g.state != GameStateNext {
		return fmt.Errorf("continue from %s: %w", g.state, ErrInvalidTransition)
	}
	return g.startRound()
}

// Restart resets score and level and begins a new round after a loss or a win.
func (g *Game) Restart() error {
	if g.state != GameStateLost && g.state != GameStateWin {
		return fmt.Errorf("restart from %s: %w", g.state, ErrInvalidTransition)
	}
	g.score = 0
	g.level = 1
	return g.startRound()
}

// Advance performs the single action available from a paused state:
// Init starts, Next continues, Lost and Win restart.
func (g *Game) Advance() error {
	switch g.state {
	case GameStateInit:
		return g.Start()
	case GameStateNext:
		return g.Continue()
	case GameStateLost, GameStateWin:
		return g.Restart()
	default:
		return fmt.Errorf("advance from %s: %w", g.state, ErrInvalidTransition)
	}
}

// Stop abandons the current round and returns to the title screen.
// Score and level reset; the spawner is cancelled.
func (g *Game) Stop() {
	if g.round != nil {
		g.round.Spawner.Cancel()
	}
	g.round = nil
	g.score = 0
	g.level = 1
	g.setState(GameStateInit)
}

// startRound builds fresh entities for the current level and starts playing.
func (g *Game) startRound() error {
	lv, err := g.rules.Level(g.level)
	if err != nil {
		return err
	}
	if g.round != nil {
		g.round.Spawner.Cancel()
	}
	g.round = NewRoundState(g.screen, lv, g.rng)
	g.ticks = 0
	g.setState(GameStateStart)
	g.logger.Info("round started",
		"level", g.level,
		"enemies", lv.NumberEnemy,
		"interval", lv.EnemyGenerateTime,
		"viewport", fmt.Sprintf("%dx%d", g.screen.Width, g.screen.Height))
	return nil
}

// Shoot fires a projectile from the player toward (x, y).
// Returns false when no round is being played.
func (g *Game) Shoot(x, y float64) bool {
	if !g.state.Playing() {
		return false
	}
	px, py := g.round.Player.GetPosition()
	p := object.NewProjectile(px, py, x, y)
	g.round.AddProjectile(p)
	g.notify("shoot", func(h Hooks) { h.OnShoot(g.event(p)) })
	return true
}

// Tick advances the simulation by one frame. delta drives the spawn timer;
// entity motion is a fixed step per tick. Does nothing outside the Start state.
func (g *Game) Tick(delta time.Duration) {
	if !g.state.Playing() {
		return
	}
	g.ticks++

	g.round.Update(object.UpdateContext{Delta: delta})
	g.apply(Resolve(g.round))
}

// apply turns a resolution into score changes, notifications and transitions.
func (g *Game) apply(res Resolution) {
	if res.PlayerHit != nil {
		g.lose(res.PlayerHit)
		return
	}

	for _, hit := range res.Damaged {
		g.score += g.rules.DamageScore
		ev := g.event(hit.Enemy)
		g.logger.Debug("enemy damaged", "radius", hit.Enemy.TargetRadius, "score", g.score)
		g.notify("enemy damaged", func(h Hooks) { h.OnEnemyDamaged(ev) })
	}
	for _, hit := range res.Killed {
		g.score += g.rules.DeadScore
		ev := g.event(hit.Enemy)
		g.logger.Debug("enemy killed", "score", g.score)
		g.notify("enemy killed", func(h Hooks) { h.OnEnemyKilled(ev) })
	}

	if len(res.Killed) > 0 && g.round.Cleared() {
		g.clearLevel()
	}
}

// lose ends the round after an enemy reached the player.
func (g *Game) lose(by *object.Enemy) {
	g.round.Spawner.Cancel()
	g.setState(GameStateLost)
	g.logger.Info("player hit",
		"level", g.level,
		"score", g.score,
		"ticks", g.ticks,
		"enemyX", by.X,
		"enemyY", by.Y)
	ev := g.event(g.round.Player)
	g.notify("player hit", func(h Hooks) { h.OnPlayerHit(ev) })
}

// clearLevel moves to Next, or to Win on the final level.
func (g *Game) clearLevel() {
	g.round.Spawner.Cancel()
	if g.level >= g.rules.MaxLevel() {
		g.setState(GameStateWin)
		g.logger.Info("game won", "score", g.score)
		ev := g.event(g.round.Player)
		g.notify("game won", func(h Hooks) { h.OnGameWon(ev) })
		return
	}

	g.level++
	g.setState(GameStateNext)
	g.logger.Info("level cleared", "next", g.level, "score", g.score)
	ev := g.event(g.round.Player)
	g.notify("level cleared", func(h Hooks) { h.OnLevelCleared(ev) })
}

func (g *Game) setState(s GameState) {
	if s != g.state {
		g.logger.Debug("state change", "from", g.state, "to", s)
	}
	g.state = s
}

// event builds a hook payload for a body.
func (g *Game) event(b object.Body) Event {
	x, y := b.GetPosition()
	return Event{
		X:      x,
		Y:      y,
		Radius: b.GetRadius(),
		Score:  g.score,
		Level:  g.level,
	}
}

// notify calls a hook on every collaborator. A panic is recovered per
// collaborator, so the others still hear about the event.
func (g *Game) notify(name string, fn func(Hooks)) {
	for _, h := range collaborators(g.hooks) {
		g.notifyOne(name, h, fn)
	}
}

func (g *Game) notifyOne(name string, h Hooks, fn func(Hooks)) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("hook panicked", "hook", name, "collaborator", fmt.Sprintf("%T", h), "panic", r)
		}
	}()
	fn(h)
}

// Draw renders the current round. Before the first round only the clear happens.
func (g *Game) Draw(s object.Surface) {
	s.Clear()
	if g.round != nil {
		g.round.Draw(s)
	}
}
