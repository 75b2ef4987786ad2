package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/centerfire/internal/config"
	"github.com/tomz197/centerfire/internal/desktop"
	"github.com/tomz197/centerfire/internal/logging"
	"github.com/tomz197/centerfire/internal/loop"
	gameconfig "github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/sound"
	"github.com/tomz197/centerfire/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Error("game error", "err", err)
		os.Exit(1)
	}
}

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

	app, err := desktop.NewApp(desktop.Options{
		Rules:  rules,
		Rand:   settings.Rand(),
		Hooks:  loop.MultiHooks(hooks...),
		Frames: sink,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(gameconfig.DesktopWidth, gameconfig.DesktopHeight)
	ebiten.SetWindowTitle("Centerfire")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("window opened", "levels", rules.MaxLevel())
	if err := ebiten.RunGame(app); err != nil {
		return err
	}
	logger.Info("window closed", "score", app.Game().Score(), "level", app.Game().Level())
	return nil
}
