package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/output"
	"github.com/df07/go-wknder/pkg/renderer"
	"github.com/df07/go-wknder/pkg/scene"
)

// options holds the command line configuration
type options struct {
	sceneName string
	width     int
	height    int
	samples   int
	depth     int
	workers   int
	bands     int
	seed      int64
	gamma     bool
	out       string
	format    string
	verbose   bool
	help      bool
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("wknder", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := renderer.DefaultSamplingConfig()
	fs.StringVar(&opts.sceneName, "scene", "basic", "Scene to render (see -help for the list)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = derived from the scene aspect ratio)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Worker goroutines (0 = $"+renderer.WorkersEnvVar+" or CPU count)")
	fs.IntVar(&opts.bands, "bands", 0, "Row bands (0 = one per worker)")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Base random seed")
	fs.BoolVar(&opts.gamma, "gamma", defaults.GammaCorrect, "Apply square-root gamma before quantizing")
	fs.StringVar(&opts.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.format, "format", "png", "Output format when -out is not given: png, bmp or tiff")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	if opts.width < 0 || opts.height < 0 {
		return opts, fs, fmt.Errorf("image size must not be negative, got %dx%d", opts.width, opts.height)
	}
	return opts, fs, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Sphere Path Tracer")
	fmt.Fprintln(w, "Usage: wknder [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// createScene builds the requested scene with any image size overrides applied
func createScene(opts options) (*scene.Scene, error) {
	return scene.CreateForImage(opts.sceneName, opts.seed, opts.width, opts.height)
}

// imageSize returns the pixel dimensions to render s at
func imageSize(s *scene.Scene, opts options) (int, int) {
	width := s.CameraConfig.Width
	height := s.CameraConfig.ImageHeight()
	if opts.height > 0 {
		height = opts.height
	}
	return width, height
}

// samplingConfig merges the scene's recommendations with the command line
func samplingConfig(s *scene.Scene, opts options) renderer.SamplingConfig {
	config := renderer.DefaultSamplingConfig()
	if s.SamplingConfig.SamplesPerPixel > 0 {
		config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if s.SamplingConfig.MaxDepth > 0 {
		config.MaxDepth = s.SamplingConfig.MaxDepth
	}
	if opts.samples > 0 {
		config.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		config.MaxDepth = opts.depth
	}
	config.NumWorkers = opts.workers
	config.NumBands = opts.bands
	config.Seed = opts.seed
	config.GammaCorrect = opts.gamma
	return config
}

// outputPath returns where the render is written
func outputPath(opts options, now time.Time) (string, error) {
	if opts.out != "" {
		// Reject unsupported extensions before spending time on the render
		if _, err := output.FormatFromPath(opts.out); err != nil {
			return "", err
		}
		return opts.out, nil
	}
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return "", err
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", opts.sceneName, "render_"+timestamp+format.Extension()), nil
}

// run renders the configured scene and returns the saved file name
func run(opts options, logger *slog.Logger) (string, error) {
	selectedScene, err := createScene(opts)
	if err != nil {
		return "", err
	}
	filename, err := outputPath(opts, time.Now())
	if err != nil {
		return "", err
	}

	width, height := imageSize(selectedScene, opts)
	config := samplingConfig(selectedScene, opts)
	logger.Debug("scene ready", "scene", opts.sceneName, "spheres", selectedScene.GetPrimitiveCount(),
		"width", width, "height", height)

	raytracer := renderer.NewRaytracer(selectedScene, width, height, config, core.NewSlogLogger(logger))
	fb, stats, err := raytracer.Render()
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}

	logger.Info("render completed",
		"duration", stats.Duration.Round(time.Millisecond),
		"pixels", stats.TotalPixels,
		"samples", stats.TotalSamples,
		"bands", stats.Bands,
		"workers", stats.Workers)
	logger.Debug("image statistics", "meanLuminance", fb.AverageLuminance())

	if err := output.Save(filename, fb.ToImage(config.GammaCorrect)); err != nil {
		return "", fmt.Errorf("failed to save render: %w", err)
	}
	return filename, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if opts.help {
		printHelp(os.Stdout, fs)
		return
	}

	logger := newLogger(os.Stderr, opts.verbose)
	filename, err := run(opts, logger)
	if err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}
