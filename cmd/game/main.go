package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/centerfire/internal/config"
	"github.com/tomz197/centerfire/internal/logging"
	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/loop/client"
	"github.com/tomz197/centerfire/internal/sound"
	"github.com/tomz197/centerfire/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	rules, err := settings.Rules()
	if err != nil {
		return err
	}

	// The terminal is busy rendering, so logs go to LOG_FILE or nowhere.
	logFile, err := logging.OpenFile(settings.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := logging.New(logFile, settings.LogLevel)
	if err != nil {
		return err
	}

	sink := telemetry.NewSink(settings.TelemetryInterval, logger)
	defer sink.Close()
	hooks := []loop.Hooks{sink}

	if settings.Sound {
		snd := sound.NewManager(0.5)
		if err := snd.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer snd.Cleanup()
			hooks = append(hooks, snd)
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c, err := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Rules:  rules,
		Rand:   settings.Rand(),
		Hooks:  loop.MultiHooks(hooks...),
		Frames: sink,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("game started", "levels", rules.MaxLevel())
	err = c.Run(ctx)
	logger.Info("game ended", "score", c.Game().Score(), "level", c.Game().Level())
	return err
}
