// Command mandelview is an interactive Mandelbrot set viewer.
//
// Drag a rectangle with the left mouse button to zoom into it. Keys:
//
//	R              reset to the default view
//	Ctrl+Z         undo
//	Ctrl+Y         redo (also Ctrl+Shift+Z)
//	1, 2, 3        line-by-line, progressive, divide-and-conquer scan
//	S              save a snapshot
//	Esc            cancel the current drag
//	Ctrl+Q         quit
//
// The render subcommand draws a single image without opening a window.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/internal/app"
	"github.com/gogpu/mandel/internal/config"
)

// flags holds command-line overrides of the configuration file.
type flags struct {
	configPath    string
	strategy      string
	palette       string
	maxIterations int
	width         int
	height        int
	logLevel      string
	exportDir     string
	annotate      bool
}

func main() {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "mandelview",
		Short: "Interactive Mandelbrot set viewer",
		Long: `mandelview renders the Mandelbrot set in a window and lets you zoom by
dragging a rectangle. Every zoom can be undone and redone, and the current
view can be saved as an image.`,
		Example: `  # Open the viewer with the progressive scan
  mandelview --strategy progressive

  # Render a single image without a window
  mandelview render -o seahorse.png --width 1920 --height 1080`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runWindow(cmd.Context(), cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.FileName, "Path to the TOML configuration file")
	pf.StringVarP(&f.strategy, "strategy", "s", "", "Scan strategy: line, progressive or divide")
	pf.StringVar(&f.palette, "palette", "", "Palette: banded or gray")
	pf.IntVar(&f.maxIterations, "max-iterations", 0, "Iteration limit of the escape-time evaluator")
	pf.IntVar(&f.width, "width", 0, "Image width in pixels")
	pf.IntVar(&f.height, "height", 0, "Image height in pixels")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&f.exportDir, "export-dir", "", "Directory for snapshots")
	pf.BoolVar(&f.annotate, "annotate", false, "Caption snapshots with the view bounds")

	rootCmd.AddCommand(renderCmd(&f))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "mandelview:", err)
		os.Exit(1)
	}
}

func renderCmd(f *flags) *cobra.Command {
	var (
		output  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one image to a file and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				return err
			}
			path, err := app.Render(cmd.Context(), cfg, app.RenderRequest{
				Output:  output,
				Width:   cfg.Window.Width,
				Height:  cfg.Window.Height,
				Timeout: timeout,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "mandel.png", "Output file; the extension selects the format")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Give up if the render takes longer")
	return cmd
}

// loadConfig reads the configuration file, applies explicitly set flags and
// installs the logger.
func loadConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.LoadOptional(f.configPath)
	}
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("strategy") {
		s, err := mandel.ParseStrategy(f.strategy)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Render.Strategy = s
	}
	if changed("palette") {
		cfg.Render.Palette = f.palette
	}
	if changed("max-iterations") {
		cfg.Render.MaxIterations = f.maxIterations
	}
	if changed("width") {
		cfg.Window.Width = f.width
	}
	if changed("height") {
		cfg.Window.Height = f.height
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("export-dir") {
		cfg.Export.Dir = f.exportDir
	}
	if changed("annotate") {
		cfg.Export.Annotate = f.annotate
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	mandel.SetLogger(logger)
	return cfg, nil
}
