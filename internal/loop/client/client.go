package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/centerfire/internal/draw"
	"github.com/tomz197/centerfire/internal/effects"
	"github.com/tomz197/centerfire/internal/input"
	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/object"
)

// FrameObserver is told how long each frame took.
type FrameObserver interface {
	Frame(dt time.Duration)
}

// Client runs one game session in a terminal: input, simulation and rendering.
type Client struct {
	game         *loop.Game
	effects      *effects.Effects
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	frames       FrameObserver
	idle         bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Rules        config.Rules
	Rand         *rand.Rand
	Hooks        loop.Hooks    // Extra collaborators, e.g. sound and telemetry
	Frames       FrameObserver // Optional frame time observer
	Logger       *log.Logger
	// IdleDisconnect enables the inactivity warning and disconnect used for remote sessions.
	IdleDisconnect bool
}

// NewClient creates a client reading keys and mouse events from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	screen := object.NewScreen(config.ViewWidth, config.ViewHeight)
	state := NewClientState()
	fx := effects.New(screen, rng)
	popups := popupHooks{
		state:       state,
		damageScore: opts.Rules.DamageScore,
		deadScore:   opts.Rules.DeadScore,
	}

	game, err := loop.NewGame(opts.Rules, screen,
		loop.WithRand(rng),
		loop.WithLogger(logger),
		loop.WithHooks(loop.MultiHooks(fx, popups, opts.Hooks)),
	)
	if err != nil {
		return nil, err
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		game:         game,
		effects:      fx,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		frames:       opts.Frames,
		idle:         opts.IdleDisconnect,
	}, nil
}

// Game returns the session's game.
func (c *Client) Game() *loop.Game {
	return c.game
}

// Run starts the client loop. Blocks until the user quits, the input closes
// or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.EnterGameScreen(c.writer)
	defer draw.LeaveGameScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		if ctx.Err() != nil {
			break
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.updateScreen()

		c.game.Tick(c.state.delta)
		c.effects.Update(c.state.delta)
		c.state.agePopups(c.state.delta)

		if err := c.drawFrame(); err != nil {
			return err
		}

		if c.frames != nil {
			c.frames.Frame(time.Since(frameStart))
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.game.Stop()
	return nil
}

// processInput reads input and applies it to the game.
func (c *Client) processInput() {
	c.handleInput(input.ReadInput(c.inputStream))
}

// handleInput applies one frame of input.
func (c *Client) handleInput(in input.Input) {
	c.state.Input = in

	if in.Closed {
		c.state.Running = false
		return
	}

	if in.Active() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if c.idle && time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting idle session")
		c.state.Running = false
		return
	} else if c.idle && time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}

	if c.game.State().Playing() {
		if in.Escape {
			c.game.Stop()
			c.resetSession()
			return
		}
		for _, click := range in.Clicks {
			if x, y, ok := c.canvas.TerminalToLogical(click.Col, click.Row); ok {
				c.game.Shoot(x, y)
			}
		}
		return
	}

	if in.Space || in.Enter || len(in.Clicks) > 0 {
		c.advance()
	}
}

// advance performs the modal action for the current paused state.
func (c *Client) advance() {
	input.ResetKeyInput(c.inputStream)
	if err := c.game.Advance(); err != nil {
		if !errors.Is(err, loop.ErrInvalidTransition) {
			c.logger.Error("advance failed", "state", c.game.State(), "err", err)
		}
		return
	}
	c.resetSession()
}

// resetSession drops leftover effects when a round starts or is abandoned.
func (c *Client) resetSession() {
	c.effects.Reset()
	c.state.popups = c.state.popups[:0]
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString(draw.SeqClear)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the view into the terminal, capped at the max render
// resolution, keeping the view's aspect ratio. Each row holds two pixels.
// Returns the render size and the centering offset.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)

	aspect := float64(config.ViewWidth) / float64(config.ViewHeight)
	if float64(renderWidth) > float64(renderHeight*2)*aspect {
		renderWidth = int(float64(renderHeight*2) * aspect)
	} else {
		renderHeight = int(float64(renderWidth) / aspect / 2)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
