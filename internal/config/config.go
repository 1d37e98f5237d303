package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ingyamilmolinar/nodeflow/core/layout"
	"github.com/ingyamilmolinar/nodeflow/core/view"
)

var (
	ErrUnknownFormat = errors.New("config: unknown file format")
	ErrInvalid       = errors.New("config: invalid")
)

// Config is everything a host can tune without code: the node style sheet,
// zoom limits, editor behaviour and logging.
type Config struct {
	Layout layout.Constants `toml:"layout" yaml:"layout"`
	View   ViewConfig       `toml:"view" yaml:"view"`
	Editor EditorConfig     `toml:"editor" yaml:"editor"`
	Log    LogConfig        `toml:"log" yaml:"log"`
}

// ViewConfig bounds the pan/zoom transform.
type ViewConfig struct {
	MinZoom     float64 `toml:"min_zoom" yaml:"min_zoom"`
	MaxZoom     float64 `toml:"max_zoom" yaml:"max_zoom"`
	InitialZoom float64 `toml:"initial_zoom" yaml:"initial_zoom"`
	// WheelSensitivity scales mouse-wheel steps before they become zoom.
	WheelSensitivity float64 `toml:"wheel_sensitivity" yaml:"wheel_sensitivity"`
}

// EditorConfig controls interaction policy.
type EditorConfig struct {
	GridStep    float64 `toml:"grid_step" yaml:"grid_step"` // 0 disables snapping
	AllowCycles bool    `toml:"allow_cycles" yaml:"allow_cycles"`
}

// LogConfig selects verbosity.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"` // "debug", "info", "error", "none"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout: layout.Default(),
		View: ViewConfig{
			MinZoom:          view.DefaultMinZoom,
			MaxZoom:          view.DefaultMaxZoom,
			InitialZoom:      1,
			WheelSensitivity: 0.1,
		},
		Editor: EditorConfig{GridStep: 0, AllowCycles: false},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	v := c.View
	if v.MinZoom <= 0 || v.MaxZoom < v.MinZoom {
		return fmt.Errorf("%w: zoom limits [%v, %v]", ErrInvalid, v.MinZoom, v.MaxZoom)
	}
	if v.InitialZoom < v.MinZoom || v.InitialZoom > v.MaxZoom {
		return fmt.Errorf("%w: initial_zoom %v outside [%v, %v]", ErrInvalid, v.InitialZoom, v.MinZoom, v.MaxZoom)
	}
	if c.Editor.GridStep < 0 {
		return fmt.Errorf("%w: grid_step %v is negative", ErrInvalid, c.Editor.GridStep)
	}
	return nil
}

// Transform builds a view transform honouring the configured limits.
func (c *Config) Transform() *view.Transform {
	return view.New(view.WithZoomLimits(c.View.MinZoom, c.View.MaxZoom), view.WithZoom(c.View.InitialZoom))
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads path over the defaults, so a file only needs the keys it
// changes. The result is validated.
func Load(path string) (*Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := decode(f, data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(f format, data []byte) (*Config, error) {
	cfg := Default()
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Save writes cfg to path in the format implied by its extension.
func Save(path string, cfg *Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch f {
	case formatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
