// Package config loads cubeengine settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubeengine/internal/interp"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "CUBEENGINE_CONFIG"

// Config is the root configuration.
type Config struct {
	Move     MoveConfig          `yaml:"move"`
	TickRate time.Duration       `yaml:"tick_rate"`
	Bindings []movetable.Binding `yaml:"bindings,omitempty"`
	Scene    SceneConfig         `yaml:"scene"`
	Storage  StorageConfig       `yaml:"storage"`
	Metrics  MetricsConfig       `yaml:"metrics"`
	Log      LogConfig           `yaml:"log"`
}

// MoveConfig controls move animation.
type MoveConfig struct {
	Duration time.Duration `yaml:"duration"`
	Easing   string        `yaml:"easing"`
}

// SceneConfig selects the geometry source. An empty path uses the
// generated cube.
type SceneConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig controls the move journal.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MetricsConfig controls the Prometheus endpoint. An empty address
// disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Move: MoveConfig{
			Duration: 200 * time.Millisecond,
			Easing:   "linear",
		},
		TickRate: 16 * time.Millisecond,
		Storage:  StorageConfig{Enabled: false},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Move.Duration < 0 {
		return fmt.Errorf("%w: move.duration must not be negative", ErrInvalid)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalid)
	}
	if _, err := interp.ParseEasing(c.Move.Easing); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Bindings) > 0 {
		if _, err := movetable.FromBindings(c.Bindings); err != nil {
			return fmt.Errorf("%w: bindings: %v", ErrInvalid, err)
		}
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json", ErrInvalid)
	}
	return nil
}

// Table returns the move table the config describes.
func (c Config) Table() (*movetable.Table, error) {
	if len(c.Bindings) == 0 {
		return movetable.Default(), nil
	}
	return movetable.FromBindings(c.Bindings)
}

// Easing returns the configured easing function.
func (c Config) Easing() (interp.Easing, error) {
	return interp.ParseEasing(c.Move.Easing)
}

// Load reads path over the defaults. An empty path falls back to
// $CUBEENGINE_CONFIG, and then to the defaults alone.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultDir returns ~/.cubeengine, creating it if needed.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubeengine")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}
