package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/tomz197/centerfire/internal/config"
	"github.com/tomz197/centerfire/internal/draw"
	"github.com/tomz197/centerfire/internal/logging"
	"github.com/tomz197/centerfire/internal/loop/client"
	gameconfig "github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Error("ssh server", "err", err)
		os.Exit(1)
	}
}

// run serves until a signal or a listener failure. Deferred cleanup, the final
// telemetry flush included, runs on both paths.
func run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, settings.LogLevel)
	if err != nil {
		return err
	}
	rules, err := settings.Rules()
	if err != nil {
		return err
	}

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config",
		"host", settings.SSHHost,
		"port", settings.SSHPort,
		"hostKeyPath", settings.SSHHostKey,
		"workingDir", workingDir,
		"levels", rules.MaxLevel())

	// One sink aggregates every session.
	sink := telemetry.NewSink(settings.TelemetryInterval, logger)
	defer sink.Close()

	sessions := &sessionGroup{}
	games := &gameHandler{
		settings: settings,
		rules:    rules,
		sink:     sink,
		logger:   logger,
		sessions: sessions,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if settings.SSHHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSHHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("Starting SSH server", "addr", net.JoinHostPort(settings.SSHHost, settings.SSHPort))
	go func() {
		serveErr <- serve(s)
	}()

	var result error
	select {
	case <-done:
		logger.Info("Shutting down server...")
	case result = <-serveErr:
		if result != nil {
			logger.Error("server error", "err", result)
		}
	}

	// End running games so their sessions can say goodbye, then close the listener.
	sessions.cancelAll()
	if !sessions.wait(15 * time.Second) {
		logger.Warn("sessions still open after grace period")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	totals := sink.Totals()
	logger.Info("server stopped", "shots", totals.Shots, "kills", totals.Kills, "wins", totals.Wins)
	return result
}

// serve runs the listener. A clean shutdown is not an error.
func serve(s *ssh.Server) error {
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// gameHandler runs an independent game for each SSH session.
type gameHandler struct {
	settings config.Settings
	rules    gameconfig.Rules
	sink     *telemetry.Sink
	logger   *log.Logger
	sessions *sessionGroup
}

// middleware handles SSH sessions and runs the game client.
func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("New game session",
			"terminal", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		release := h.sessions.add(cancel)
		defer release()

		c, err := client.NewClient(bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc:   sizeTracker.getSize,
			Rules:          h.rules,
			Rand:           h.settings.Rand(),
			Hooks:          h.sink,
			Frames:         h.sink,
			Logger:         logger,
			IdleDisconnect: true,
		})
		if err != nil {
			logger.Error("failed to create client", "err", err)
			return
		}

		if err := c.Run(ctx); err != nil {
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended", "score", c.Game().Score(), "level", c.Game().Level())
		next(sess)
	}
}

// sessionGroup tracks running sessions so shutdown can end them.
type sessionGroup struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	nextID  int
	cancels map[int]context.CancelFunc
}

// add registers a session. The returned func must be called when it ends.
func (g *sessionGroup) add(cancel context.CancelFunc) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancels == nil {
		g.cancels = make(map[int]context.CancelFunc)
	}
	id := g.nextID
	g.nextID++
	g.cancels[id] = cancel
	g.wg.Add(1)

	return func() {
		g.mu.Lock()
		delete(g.cancels, id)
		g.mu.Unlock()
		cancel()
		g.wg.Done()
	}
}

func (g *sessionGroup) cancelAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, cancel := range g.cancels {
		cancel()
	}
}

// wait blocks until every session has ended or the timeout passes.
func (g *sessionGroup) wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
