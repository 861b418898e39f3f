// Command prefab checks scene prefabs and prints them in canonical form.
//
//	prefab [-dir prefabs] [-json] main_scene.yaml ...
//
// Every prefab is fully loaded, assets included, before it is printed, so a
// zero exit status means the game can start from it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jannetahkola/webgpu-game/assets"
	"github.com/jannetahkola/webgpu-game/config"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/entity"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/jannetahkola/webgpu-game/input"
	"github.com/jannetahkola/webgpu-game/logger"
	"github.com/jannetahkola/webgpu-game/prefabs"
	"github.com/jannetahkola/webgpu-game/scene"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type idle struct{}

func (idle) IsPressed(input.Action) bool       { return false }
func (idle) IsJustPressed(input.Action) bool   { return false }
func (idle) IsDoublePressed(input.Action) bool { return false }
func (idle) PointerDeltaX() float32            { return 0 }
func (idle) PointerDeltaY() float32            { return 0 }

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("prefab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", prefabs.Dir, "directory checked before the embedded prefabs")
	asJSON := fs.Bool("json", false, "print JSON instead of YAML")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("prefab: no prefab names given")
	}
	prefabs.Dir = *dir

	logCfg := config.Default().Log
	logCfg.Level = "warn"
	if *verbose {
		logCfg.Level = "debug"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	registry := ecs.NewComponentRegistry()
	entity.RegisterComponents(registry, log)
	loader := scene.NewLoader(registry, assets.NewManager(log), gpu.NewMemoryDevice(), idle{}, scene.WithLogger(log))

	for _, name := range fs.Args() {
		prefab, err := prefabs.LoadPrefab(name)
		if err != nil {
			return err
		}
		if _, err := loader.Load(context.Background(), prefab); err != nil {
			return err
		}

		canonical, err := canonicalize(prefab, registry)
		if err != nil {
			return fmt.Errorf("prefab: %s: %w", name, err)
		}
		if err := write(stdout, canonical, *asJSON); err != nil {
			return err
		}
		log.Info("prefab ok", zap.String("name", prefab.Name), zap.Int("components", len(canonical.Snapshot.Components)))
	}
	return nil
}

// canonicalize restores p into an empty manager and serialises it back, which
// fills defaults and orders components by registration.
func canonicalize(p prefabs.Prefab, registry *ecs.ComponentRegistry) (prefabs.Prefab, error) {
	m := ecs.NewManager()
	if err := m.Deserialize(p.Snapshot, registry); err != nil {
		return prefabs.Prefab{}, err
	}
	snap, err := m.Serialize(registry)
	if err != nil {
		return prefabs.Prefab{}, err
	}
	return prefabs.Prefab{Name: p.Name, Snapshot: snap}, nil
}

func write(w io.Writer, p prefabs.Prefab, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
