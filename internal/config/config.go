// Package config loads the viewer's settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/export"
)

// FileName is the configuration file looked up by default.
const FileName = "mandel.toml"

// Config is the full application configuration.
type Config struct {
	Render       Render `toml:"render"`
	View         View   `toml:"view"`
	Window       Window `toml:"window"`
	Export       Export `toml:"export"`
	HistoryLimit int    `toml:"history_limit"`
	LogLevel     string `toml:"log_level"`
}

// Render configures the evaluator and the render loop.
type Render struct {
	MaxIterations    int             `toml:"max_iterations"`
	ThresholdSquared float64         `toml:"threshold_squared"`
	Strategy         mandel.Strategy `toml:"strategy"`
	Palette          string          `toml:"palette"`
	Interval         Duration        `toml:"interval"`
}

// View is the initial viewport.
type View struct {
	MinRe float64 `toml:"min_re"`
	MinIm float64 `toml:"min_im"`
	MaxRe float64 `toml:"max_re"`
	MaxIm float64 `toml:"max_im"`
}

// Window configures the desktop window.
type Window struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Title  string  `toml:"title"`
	Scale  float64 `toml:"scale"`
}

// Export configures snapshot files.
type Export struct {
	Dir      string `toml:"dir"`
	Format   string `toml:"format"`
	Annotate bool   `toml:"annotate"`
	Language string `toml:"language"`
}

// Duration is a time.Duration written as a string such as "20ms" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			MaxIterations:    mandel.DefaultMaxIterations,
			ThresholdSquared: mandel.DefaultThresholdSquared,
			Strategy:         mandel.LineByLine,
			Palette:          "banded",
			Interval:         Duration{mandel.DefaultInterval},
		},
		View: View{
			MinRe: mandel.DefaultMinRe,
			MinIm: mandel.DefaultMinIm,
			MaxRe: mandel.DefaultMaxRe,
			MaxIm: mandel.DefaultMaxIm,
		},
		Window: Window{
			Width:  640,
			Height: 640,
			Title:  "Mandelbrot",
			Scale:  1,
		},
		Export: Export{
			Dir:      ".",
			Format:   "png",
			Language: "en",
		},
		HistoryLimit: 0,
		LogLevel:     "info",
	}
}

// Load reads the file at path over the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: load %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "config: " + e.Field + ": " + e.Reason
}

// Validate checks every field and returns the first problem found as a
// *ValidationError.
func (c Config) Validate() error {
	switch {
	case c.Render.MaxIterations < 1:
		return &ValidationError{"render.max_iterations", "must be at least 1"}
	case c.Render.ThresholdSquared <= 0:
		return &ValidationError{"render.threshold_squared", "must be positive"}
	case !c.Render.Strategy.Valid():
		return &ValidationError{"render.strategy", "unknown strategy"}
	case c.Render.Interval.Duration <= 0:
		return &ValidationError{"render.interval", "must be positive"}
	case c.Window.Width < 1 || c.Window.Height < 1:
		return &ValidationError{"window", "width and height must be at least 1"}
	case c.Window.Scale <= 0:
		return &ValidationError{"window.scale", "must be positive"}
	case c.HistoryLimit < 0:
		return &ValidationError{"history_limit", "must not be negative"}
	}
	if _, ok := mandel.PaletteByName(c.Render.Palette); !ok {
		return &ValidationError{"render.palette", "unknown palette " + c.Render.Palette}
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return &ValidationError{"export.format", err.Error()}
	}
	if _, err := c.Level(); err != nil {
		return &ValidationError{"log_level", err.Error()}
	}
	return nil
}

// Viewport returns the configured initial view.
func (c Config) Viewport() mandel.Viewport {
	return mandel.NewViewport(
		mandel.C(c.View.MinRe, c.View.MinIm),
		mandel.C(c.View.MaxRe, c.View.MaxIm),
	)
}

// Evaluator returns the configured escape-time evaluator.
func (c Config) Evaluator() mandel.Evaluator {
	return mandel.Evaluator{
		MaxIterations:    c.Render.MaxIterations,
		ThresholdSquared: c.Render.ThresholdSquared,
	}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// Options translates the configuration into Controller options. The frame
// buffer size is not included; the window supplies it.
func (c Config) Options() ([]mandel.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	palette, _ := mandel.PaletteByName(c.Render.Palette)
	return []mandel.Option{
		mandel.WithEvaluator(c.Evaluator()),
		mandel.WithPalette(palette),
		mandel.WithStrategy(c.Render.Strategy),
		mandel.WithViewport(c.Viewport()),
		mandel.WithInterval(c.Render.Interval.Duration),
		mandel.WithHistoryLimit(c.HistoryLimit),
	}, nil
}
