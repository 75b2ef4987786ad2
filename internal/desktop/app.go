// Package desktop runs the game in a window with ebiten.
package desktop

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/centerfire/internal/effects"
	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/object"
)

// maxDelta caps the frame delta so a stalled window does not dump a burst of spawns.
const maxDelta = 250 * time.Millisecond

// FrameObserver is told how long each frame took.
type FrameObserver interface {
	Frame(dt time.Duration)
}

// Options configures the desktop app.
type Options struct {
	Rules  config.Rules
	Rand   *rand.Rand
	Hooks  loop.Hooks // Extra collaborators, e.g. sound and telemetry
	Frames FrameObserver
	Logger *log.Logger
}

// App implements ebiten.Game.
type App struct {
	game    *loop.Game
	effects *effects.Effects
	logger  *log.Logger
	frames  FrameObserver
	face    text.Face

	field    *ebiten.Image // Persistent playfield; faded rather than cleared each frame
	touchIDs []ebiten.TouchID

	// Window size reported by the last Layout call.
	outsideWidth, outsideHeight int

	last time.Time
}

// NewApp creates the app with a viewport the size of the default window.
func NewApp(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	screen := object.NewScreen(config.DesktopWidth, config.DesktopHeight)
	fx := effects.New(screen, rng)
	game, err := loop.NewGame(opts.Rules, screen,
		loop.WithRand(rng),
		loop.WithLogger(logger),
		loop.WithHooks(loop.MultiHooks(fx, opts.Hooks)),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		game:          game,
		effects:       fx,
		logger:        logger,
		frames:        opts.Frames,
		face:          text.NewGoXFace(basicfont.Face7x13),
		outsideWidth:  config.DesktopWidth,
		outsideHeight: config.DesktopHeight,
		last:          time.Now(),
	}, nil
}

// Game returns the app's game.
func (a *App) Game() *loop.Game {
	return a.game
}

// Update runs one frame of input and simulation.
func (a *App) Update() error {
	now := time.Now()
	delta := min(now.Sub(a.last), maxDelta)
	a.last = now

	var f frame
	f, a.touchIDs = readFrame(a.touchIDs)
	if err := a.apply(f); err != nil {
		return err
	}

	a.game.Tick(delta)
	a.effects.Update(delta)

	if a.frames != nil {
		a.frames.Frame(delta)
	}
	return nil
}

// apply turns one frame of input into game actions. Returns ebiten.Termination on quit.
func (a *App) apply(f frame) error {
	if f.quit {
		return ebiten.Termination
	}
	a.syncViewport()

	if a.game.State().Playing() {
		if f.stop {
			a.game.Stop()
			a.effects.Reset()
			return nil
		}
		for _, p := range f.presses {
			a.game.Shoot(p.x, p.y)
		}
		return nil
	}

	if f.advance || len(f.presses) > 0 {
		if err := a.game.Advance(); err != nil {
			if !errors.Is(err, loop.ErrInvalidTransition) {
				a.logger.Error("advance failed", "state", a.game.State(), "err", err)
			}
			return nil
		}
		a.effects.Reset()
	}
	return nil
}

// syncViewport adopts the window size between rounds.
func (a *App) syncViewport() {
	if a.game.State().Playing() {
		return
	}
	s := a.game.Screen()
	if s.Width == a.outsideWidth && s.Height == a.outsideHeight {
		return
	}
	if err := a.game.SetViewport(a.outsideWidth, a.outsideHeight); err != nil {
		a.logger.Warn("viewport not changed", "width", a.outsideWidth, "height", a.outsideHeight, "err", err)
		return
	}
	a.effects.SetScreen(a.game.Screen())
	a.logger.Debug("viewport changed", "width", a.outsideWidth, "height", a.outsideHeight)
}

// Draw renders the playfield and the UI.
func (a *App) Draw(screen *ebiten.Image) {
	s := a.game.Screen()
	if a.field == nil || a.field.Bounds().Dx() != s.Width || a.field.Bounds().Dy() != s.Height {
		a.field = ebiten.NewImage(s.Width, s.Height)
	}

	surf := surface{img: a.field}
	a.game.Draw(surf)
	a.effects.Draw(surf)

	screen.DrawImage(a.field, nil)
	a.drawUI(screen)
}

// Layout keeps the round's viewport while playing, so a resize scales the
// field instead of moving its edges. Between rounds the viewport follows the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.outsideWidth = max(outsideWidth, 1)
	a.outsideHeight = max(outsideHeight, 1)
	if a.game.State().Playing() {
		s := a.game.Screen()
		return s.Width, s.Height
	}
	return a.outsideWidth, a.outsideHeight
}

var _ ebiten.Game = (*App)(nil)
