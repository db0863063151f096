package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joelhk/driftframe/internal/catalog"
	"github.com/joelhk/driftframe/internal/config"
	"github.com/joelhk/driftframe/internal/slide"
)

var checkConfigPath string

var checkCmd = &cobra.Command{
	Use:   "check [photos-dir]",
	Short: "Validate the config and scan the photos directory",
	Long: `Loads the configuration, scans the photos directory, and prints a
summary without starting the slideshow. Exits nonzero when the directory is
missing or contains no supported images.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "", "path to YAML config file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(checkConfigPath)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.PhotosDir = args[0]
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	cat, err := catalog.Scan(cfg.PhotosDir, cfg.SupportedExtensions)
	if err != nil {
		return err
	}

	paths := cat.Paths()
	captioned := 0
	for _, p := range paths {
		if slide.WantsCaption(p) {
			captioned++
		}
	}

	fmt.Printf("Photos directory: %s\n", cfg.PhotosDir)
	fmt.Printf("  Images: %d (%d with captions)\n", len(paths), captioned)
	fmt.Printf("  Rotation: %.1fs, transition: %.1fs, shuffle: %v\n",
		cfg.RotationSeconds, cfg.TransitionSeconds, cfg.Shuffle)

	const preview = 5
	for i, p := range paths {
		if i >= preview {
			fmt.Printf("  ... and %d more\n", len(paths)-preview)
			break
		}
		fmt.Printf("  %s\n", p)
	}
	return nil
}
