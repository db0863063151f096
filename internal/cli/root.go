package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "driftframe",
	Short: "Fullscreen photo slideshow with crossfade transitions",
	Long: `Driftframe rotates through a directory of photos with smooth
crossfade transitions, optional captions, timed auto-advance, and manual
navigation. Unreadable images are skipped and dropped from the rotation.`,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("driftframe version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
