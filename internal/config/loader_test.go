package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPhotosDir, cfg.PhotosDir)
	assert.Equal(t, DefaultRotationSeconds, cfg.RotationSeconds)
	assert.True(t, cfg.Shuffle)
	assert.Equal(t, DefaultTransitionSeconds, cfg.TransitionSeconds)
	assert.Equal(t, DefaultExtensions(), cfg.SupportedExtensions)
	assert.Equal(t, DefaultTargetFPS, cfg.TargetFPS)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRotationSeconds, cfg.RotationSeconds)
}

func TestLoad_ValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "driftframe.yaml")
	content := `photos_dir: /srv/photos
rotation_seconds: 5
transition_seconds: 1.5
shuffle_seed: 42
target_fps: 30
supported_extensions: [jpg, PNG]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/photos", cfg.PhotosDir)
	assert.Equal(t, 5.0, cfg.RotationSeconds)
	assert.Equal(t, 1.5, cfg.TransitionSeconds)
	assert.Equal(t, int64(42), cfg.ShuffleSeed)
	assert.Equal(t, 30, cfg.TargetFPS)
	// Extensions are normalized: lowercased with a leading dot.
	assert.Equal(t, []string{".jpg", ".png"}, cfg.SupportedExtensions)
}

func TestLoad_PartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "driftframe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rotation_seconds: 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.RotationSeconds)
	assert.Equal(t, DefaultTransitionSeconds, cfg.TransitionSeconds)
	assert.Equal(t, DefaultCaptionFontSize, cfg.CaptionFontSize)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "driftframe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rotation_seconds: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "empty photos_dir",
			mutate: func(c *Config) { c.PhotosDir = "" },
			field:  "photos_dir",
		},
		{
			name:   "zero rotation",
			mutate: func(c *Config) { c.RotationSeconds = 0 },
			field:  "rotation_seconds",
		},
		{
			name:   "negative transition",
			mutate: func(c *Config) { c.TransitionSeconds = -1 },
			field:  "transition_seconds",
		},
		{
			name:   "zero caption font",
			mutate: func(c *Config) { c.CaptionFontSize = 0 },
			field:  "caption_font_size",
		},
		{
			name:   "negative blur radius",
			mutate: func(c *Config) { c.BackgroundBlurRadius = -1 },
			field:  "background_blur_radius",
		},
		{
			name:   "no extensions",
			mutate: func(c *Config) { c.SupportedExtensions = nil },
			field:  "supported_extensions",
		},
		{
			name:   "fps too high",
			mutate: func(c *Config) { c.TargetFPS = 500 },
			field:  "target_fps",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := Validate(&cfg)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDurations(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RotationSeconds = 2.5
	cfg.TransitionSeconds = 0.5
	cfg.TargetFPS = 50

	assert.Equal(t, 2500*time.Millisecond, cfg.Rotation())
	assert.Equal(t, 500*time.Millisecond, cfg.Transition())
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval())
}
