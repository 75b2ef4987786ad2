package desktop

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/object"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(Options{
		Rules: config.DefaultRules(),
		Rand:  rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return a
}

func TestPressStartsThenShoots(t *testing.T) {
	a := newTestApp(t)

	if err := a.apply(frame{presses: []point{{10, 10}}}); err != nil {
		t.Fatal(err)
	}
	if a.game.State() != loop.GameStateStart {
		t.Fatalf("state = %s, want start", a.game.State())
	}
	if n := len(a.game.Round().Projectiles); n != 0 {
		t.Fatalf("starting press fired %d projectiles", n)
	}

	if err := a.apply(frame{presses: []point{{10, 10}, {790, 590}}}); err != nil {
		t.Fatal(err)
	}
	ps := a.game.Round().Projectiles
	if len(ps) != 2 {
		t.Fatalf("%d projectiles, want 2", len(ps))
	}
	if ps[0].VX >= 0 || ps[0].VY >= 0 || ps[1].VX <= 0 || ps[1].VY <= 0 {
		t.Errorf("projectiles aimed wrong: (%f,%f) (%f,%f)", ps[0].VX, ps[0].VY, ps[1].VX, ps[1].VY)
	}
}

func TestEscapeStopsRound(t *testing.T) {
	a := newTestApp(t)
	_ = a.apply(frame{advance: true})
	_ = a.apply(frame{stop: true})
	if a.game.State() != loop.GameStateInit {
		t.Fatalf("state = %s, want init", a.game.State())
	}
}

func TestQuitTerminates(t *testing.T) {
	a := newTestApp(t)
	if err := a.apply(frame{quit: true}); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("apply(quit) = %v, want ebiten.Termination", err)
	}
}

func TestViewportFollowsWindowBetweenRounds(t *testing.T) {
	a := newTestApp(t)

	if w, h := a.Layout(1024, 768); w != 1024 || h != 768 {
		t.Fatalf("Layout = %dx%d", w, h)
	}
	_ = a.apply(frame{advance: true})
	if s := a.game.Screen(); s.Width != 1024 || s.Height != 768 {
		t.Fatalf("viewport = %dx%d, want 1024x768", s.Width, s.Height)
	}

	// While playing the layout keeps the round's viewport.
	if w, h := a.Layout(640, 480); w != 1024 || h != 768 {
		t.Fatalf("Layout during play = %dx%d", w, h)
	}
	_ = a.apply(frame{})
	if s := a.game.Screen(); s.Width != 1024 {
		t.Fatalf("viewport changed mid-round to %dx%d", s.Width, s.Height)
	}

	_ = a.apply(frame{stop: true})
	_ = a.apply(frame{})
	if s := a.game.Screen(); s.Width != 640 || s.Height != 480 {
		t.Fatalf("viewport = %dx%d after round, want 640x480", s.Width, s.Height)
	}
}

func TestModalPerState(t *testing.T) {
	a := newTestApp(t)

	m, ok := modalFor(a.game)
	if !ok || m.button != "Start" {
		t.Fatalf("init modal = %+v, %v", m, ok)
	}

	_ = a.apply(frame{advance: true})
	if _, ok := modalFor(a.game); ok {
		t.Fatal("modal shown while playing")
	}

	cx, cy := a.game.Screen().Center()
	a.game.Round().Enemies = append(a.game.Round().Enemies, object.NewEnemy(cx, cy, 20, 0, 0))
	a.game.Tick(0)
	if a.game.State() != loop.GameStateLost {
		t.Fatalf("state = %s, want lost", a.game.State())
	}

	m, ok = modalFor(a.game)
	if !ok || m.title != "GAME OVER" || !strings.Contains(m.detail, "level 1 of 3") {
		t.Fatalf("lost modal = %+v", m)
	}
}
