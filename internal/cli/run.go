package cli

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joelhk/driftframe/internal/catalog"
	"github.com/joelhk/driftframe/internal/config"
	"github.com/joelhk/driftframe/internal/engine"
	"github.com/joelhk/driftframe/internal/logging"
	"github.com/joelhk/driftframe/internal/render"
	"github.com/joelhk/driftframe/internal/show"
	"github.com/joelhk/driftframe/internal/slide"
	"github.com/joelhk/driftframe/internal/term"
)

var (
	runConfigPath string
	runInterval   float64
	runTransition float64
	runNoShuffle  bool
	runSeed       int64
	runFPS        int
	runVerbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run [photos-dir]",
	Short: "Run the slideshow",
	Long: `Scans the photos directory, optionally shuffles the catalog, and runs
the presentation loop on the terminal until the user quits.

Keys: right/space next, left previous, p pause, f fullscreen toggle,
q/escape quit.

Example:
  driftframe run ~/Pictures
  driftframe run ~/Pictures --interval 5 --transition 1.5
  driftframe run --config driftframe.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML config file")
	runCmd.Flags().Float64VarP(&runInterval, "interval", "i", config.DefaultRotationSeconds, "seconds each slide stays before auto-advance")
	runCmd.Flags().Float64VarP(&runTransition, "transition", "t", config.DefaultTransitionSeconds, "crossfade duration in seconds")
	runCmd.Flags().BoolVar(&runNoShuffle, "no-shuffle", false, "keep catalog in sorted order")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "shuffle seed (0 uses the current time)")
	runCmd.Flags().IntVar(&runFPS, "fps", config.DefaultTargetFPS, "presentation loop tick rate")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
}

// loadRunConfig merges the config file, positional directory, and flag
// overrides into one immutable Config.
func loadRunConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.PhotosDir = args[0]
	}
	if cmd.Flags().Changed("interval") {
		cfg.RotationSeconds = runInterval
	}
	if cmd.Flags().Changed("transition") {
		cfg.TransitionSeconds = runTransition
	}
	if runNoShuffle {
		cfg.Shuffle = false
	}
	if cmd.Flags().Changed("seed") {
		cfg.ShuffleSeed = runSeed
	}
	if cmd.Flags().Changed("fps") {
		cfg.TargetFPS = runFPS
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if runVerbose {
		logging.SetLevel(logging.LevelDebug)
	}
	log := logging.With("component", "run")

	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}

	cat, err := catalog.Scan(cfg.PhotosDir, cfg.SupportedExtensions)
	if err != nil {
		return err
	}
	log.Info("catalog scanned", "dir", cfg.PhotosDir, "images", cat.Len())

	if cfg.Shuffle {
		seed := cfg.ShuffleSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		cat.Shuffle(rand.New(rand.NewSource(seed)))
	}

	surface, err := term.NewSurface(os.Stdout, log)
	if err != nil {
		return err
	}
	defer surface.Close()

	width, height := surface.Size()
	renderer := render.NewRenderer(cfg.BackgroundBlurRadius, cfg.CaptionFontSize)
	loader := slide.NewLoader(cat, renderer, width, height, log)

	eng := engine.New(engine.Options{
		Catalog:   cat,
		Loader:    loader,
		Preloader: slide.NewPreloader(loader),
		Rotation:  cfg.Rotation(),
		Duration:  cfg.Transition(),
		Log:       log,
	})

	loop := show.NewLoop(show.LoopOptions{
		Engine:  eng,
		Surface: surface,
		Tick:    cfg.TickInterval(),
		Log:     log,
	})

	if err := loop.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
