package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelhk/driftframe/internal/catalog"
	"github.com/joelhk/driftframe/internal/config"
)

func writePhotos(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}

func TestRunCheck(t *testing.T) {
	dir := writePhotos(t, "a.jpg", "$beach.png", "notes.txt")

	checkConfigPath = ""
	err := runCheck(checkCmd, []string{dir})
	assert.NoError(t, err)
}

func TestRunCheck_MissingDir(t *testing.T) {
	checkConfigPath = ""
	err := runCheck(checkCmd, []string{filepath.Join(t.TempDir(), "absent")})
	assert.ErrorIs(t, err, catalog.ErrNoDirectory)
}

func TestRunCheck_NoImages(t *testing.T) {
	dir := writePhotos(t, "notes.txt")

	checkConfigPath = ""
	err := runCheck(checkCmd, []string{dir})
	assert.ErrorIs(t, err, catalog.ErrNoImages)
}

func TestLoadRunConfig_FlagOverrides(t *testing.T) {
	runConfigPath = ""
	require.NoError(t, runCmd.Flags().Set("interval", "5"))
	require.NoError(t, runCmd.Flags().Set("transition", "1.5"))
	require.NoError(t, runCmd.Flags().Set("seed", "42"))
	runNoShuffle = true
	defer func() { runNoShuffle = false }()

	cfg, err := loadRunConfig(runCmd, []string{"/tmp/pics"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pics", cfg.PhotosDir)
	assert.Equal(t, 5.0, cfg.RotationSeconds)
	assert.Equal(t, 1.5, cfg.TransitionSeconds)
	assert.Equal(t, int64(42), cfg.ShuffleSeed)
	assert.False(t, cfg.Shuffle)
}

func TestLoadRunConfig_Defaults(t *testing.T) {
	runConfigPath = ""
	// A bare command reports no changed flags, so file defaults stand.
	cfg, err := loadRunConfig(&cobra.Command{}, nil)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRotationSeconds, cfg.RotationSeconds)
	assert.Equal(t, config.DefaultTransitionSeconds, cfg.TransitionSeconds)
	assert.True(t, cfg.Shuffle)
}
