// Package config loads runtime settings from YAML over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window      Window      `yaml:"window"`
	Scene       Scene       `yaml:"scene"`
	Log         Log         `yaml:"log"`
	Render      Render      `yaml:"render"`
	Diagnostics Diagnostics `yaml:"diagnostics"`
	Input       Input       `yaml:"input"`
}

type Window struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Title         string `yaml:"title"`
	CaptureCursor bool   `yaml:"capture_cursor"`
}

type Scene struct {
	Prefab    string `yaml:"prefab"`
	PrefabDir string `yaml:"prefab_dir"`
	HotReload bool   `yaml:"hot_reload"`
}

// Log configures the console logger and optional rotated file output.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type Render struct {
	ClearColor string `yaml:"clear_color"`
	ShowStats  bool   `yaml:"show_stats"`
}

type Diagnostics struct {
	MeshWireframes     bool `yaml:"mesh_wireframes"`
	ColliderWireframes bool `yaml:"collider_wireframes"`
}

type Input struct {
	// Bindings maps action names to ebiten key names.
	Bindings    map[string]string `yaml:"bindings"`
	DoublePress time.Duration     `yaml:"double_press"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:         1280,
			Height:        720,
			Title:         "webgpu-game",
			CaptureCursor: true,
		},
		Scene: Scene{
			Prefab:    "main_scene.yaml",
			PrefabDir: "prefabs",
			HotReload: true,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Render: Render{
			ClearColor: "#1e1e28",
			ShowStats:  true,
		},
		Input: Input{
			DoublePress: 250 * time.Millisecond,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Scene.Prefab == "" {
		return fmt.Errorf("%w: scene prefab is empty", ErrInvalid)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	if _, err := c.Render.Clear(); err != nil {
		return err
	}
	if c.Input.DoublePress < 0 {
		return fmt.Errorf("%w: double press %s", ErrInvalid, c.Input.DoublePress)
	}
	return nil
}

// Clear parses ClearColor as #rrggbb or #rrggbbaa.
func (r Render) Clear() (color.RGBA, error) {
	s := strings.TrimPrefix(r.ClearColor, "#")
	var c color.RGBA
	switch len(s) {
	case 6:
		c.A = 0xff
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return color.RGBA{}, fmt.Errorf("%w: clear color %q", ErrInvalid, r.ClearColor)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return color.RGBA{}, fmt.Errorf("%w: clear color %q", ErrInvalid, r.ClearColor)
		}
	default:
		return color.RGBA{}, fmt.Errorf("%w: clear color %q", ErrInvalid, r.ClearColor)
	}
	return c, nil
}

// Overrides are the command line settings that win over the file.
type Overrides struct {
	Prefab string
	Debug  bool
}

func (c *Config) Apply(o Overrides) {
	if o.Prefab != "" {
		c.Scene.Prefab = o.Prefab
	}
	if o.Debug {
		c.Log.Level = "debug"
		c.Diagnostics.MeshWireframes = true
		c.Diagnostics.ColliderWireframes = true
	}
}
