package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jannetahkola/webgpu-game/assets"
	"github.com/jannetahkola/webgpu-game/config"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/ecs/entity"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/jannetahkola/webgpu-game/input"
	"github.com/jannetahkola/webgpu-game/prefabs"
	"github.com/jannetahkola/webgpu-game/render"
	"github.com/jannetahkola/webgpu-game/scene"
	"go.uber.org/zap"
)

type Game struct {
	ctx    context.Context
	cfg    config.Config
	logger *zap.Logger

	input    *input.Input
	loader   *scene.Loader
	renderer *render.DebugRenderer
	scene    *scene.Scene
	watcher  *prefabs.Watcher

	// drawErr carries a render failure to the next Update, which can return it
	drawErr error
}

func NewGame(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Game, error) {
	prefabs.Dir = cfg.Scene.PrefabDir

	bindings, err := input.ParseBindings(cfg.Input.Bindings)
	if err != nil {
		return nil, err
	}
	in := input.New(input.EbitenSource{}, input.WithBindings(bindings), input.WithThreshold(cfg.Input.DoublePress))

	clearColor, err := cfg.Render.Clear()
	if err != nil {
		return nil, err
	}

	registry := ecs.NewComponentRegistry()
	entity.RegisterComponents(registry, logger)
	assetManager := assets.NewManager(logger.Named("assets"))

	g := &Game{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		input:  in,
		loader: scene.NewLoader(registry, assetManager, gpu.NewMemoryDevice(), in,
			scene.WithLogger(logger.Named("scene")),
			scene.WithDiagnostics(cfg.Diagnostics.MeshWireframes, cfg.Diagnostics.ColliderWireframes)),
		renderer: render.NewDebugRenderer(assetManager, clearColor),
	}

	if err := g.reload(); err != nil {
		return nil, err
	}

	if cfg.Scene.HotReload {
		w, err := prefabs.NewWatcher(cfg.Scene.PrefabDir)
		if err != nil {
			logger.Warn("prefab hot reload disabled", zap.String("dir", cfg.Scene.PrefabDir), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// reload replaces the scene with a fresh load of the configured prefab. The
// current scene is kept when loading fails.
func (g *Game) reload() error {
	prefab, err := prefabs.LoadPrefab(g.cfg.Scene.Prefab)
	if err != nil {
		return err
	}

	if g.scene != nil {
		if d, err := ecs.GetResource[component.Diagnostics](g.scene.Manager); err == nil {
			g.loader.SetDiagnostics(d.MeshWireframesEnabled, d.ColliderWireframesEnabled)
		}
	}

	next, err := g.loader.Load(g.ctx, prefab)
	if err != nil {
		return err
	}
	g.scene = next
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if filepath.Base(path) != filepath.Base(g.cfg.Scene.Prefab) {
				continue
			}
			if err := g.reload(); err != nil {
				g.logger.Error("prefab reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			g.logger.Info("prefab reloaded", zap.String("path", path), zap.Stringer("scene_id", g.scene.ID))
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

// toggleDiagnostics flips the wireframe overlays of the current scene.
func (g *Game) toggleDiagnostics(meshes, colliders bool) error {
	if !meshes && !colliders {
		return nil
	}
	d, err := ecs.GetResource[component.Diagnostics](g.scene.Manager)
	if err != nil {
		return err
	}
	if meshes {
		d.SetMeshWireframesEnabled(!d.MeshWireframesEnabled)
	}
	if colliders {
		d.SetColliderWireframesEnabled(!d.ColliderWireframesEnabled)
	}
	return nil
}

func (g *Game) Update() error {
	if g.drawErr != nil {
		return fmt.Errorf("render: %w", g.drawErr)
	}
	g.pollReload()

	if err := g.toggleDiagnostics(inpututil.IsKeyJustPressed(ebiten.KeyF1), inpututil.IsKeyJustPressed(ebiten.KeyF2)); err != nil {
		return err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if ebiten.CursorMode() == ebiten.CursorModeCaptured {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		}
	}

	g.input.Update()
	if err := g.scene.Update(1 / float64(ebiten.TPS())); err != nil {
		return err
	}
	g.logEvents()
	return nil
}

func (g *Game) logEvents() {
	events, err := ecs.GetResource[ecs.EventQueue](g.scene.Manager)
	if err != nil {
		return
	}
	for _, evt := range events.Drain() {
		g.logger.Debug("scene event",
			zap.String("type", string(evt.Type)),
			zap.Uint32("entity", uint32(evt.Entity)),
			zap.Any("data", evt.Data))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.renderer.Render(g.scene.Manager, screen); err != nil {
		g.drawErr = err
		return
	}
	if g.cfg.Render.ShowStats {
		render.DrawStats(g.scene.Manager, screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
