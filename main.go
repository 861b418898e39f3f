package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jannetahkola/webgpu-game/config"
	"github.com/jannetahkola/webgpu-game/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	prefab := flag.String("prefab", "", "scene prefab file name, overrides the config")
	debug := flag.Bool("debug", false, "debug logging and wireframes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Apply(config.Overrides{Prefab: *prefab, Debug: *debug})

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	if cfg.Window.CaptureCursor {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal("game loop", zap.Error(err))
	}
}
