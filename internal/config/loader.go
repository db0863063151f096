package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultRotationSeconds      = 10.0
	DefaultTransitionSeconds    = 0.8
	DefaultCaptionFontSize      = 64
	DefaultBackgroundBlurRadius = 30
	DefaultTargetFPS            = 60
	DefaultPhotosDir            = "photos"
)

// DefaultExtensions returns the image file extensions loaded by default.
func DefaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		PhotosDir:            DefaultPhotosDir,
		RotationSeconds:      DefaultRotationSeconds,
		Shuffle:              true,
		TransitionSeconds:    DefaultTransitionSeconds,
		CaptionFontSize:      DefaultCaptionFontSize,
		BackgroundBlurRadius: DefaultBackgroundBlurRadius,
		SupportedExtensions:  DefaultExtensions(),
		TargetFPS:            DefaultTargetFPS,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Load reads and parses the YAML config file at path. If path is empty or the
// file doesn't exist, it returns the default config. Missing fields keep
// their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.SupportedExtensions = normalizeExtensions(cfg.SupportedExtensions)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that all config values are valid.
func Validate(cfg *Config) error {
	if cfg.PhotosDir == "" {
		return ValidationError{Field: "photos_dir", Message: "required field is empty"}
	}
	if cfg.RotationSeconds <= 0 {
		return ValidationError{Field: "rotation_seconds", Message: "must be positive"}
	}
	if cfg.TransitionSeconds <= 0 {
		return ValidationError{Field: "transition_seconds", Message: "must be positive"}
	}
	if cfg.CaptionFontSize <= 0 {
		return ValidationError{Field: "caption_font_size", Message: "must be positive"}
	}
	if cfg.BackgroundBlurRadius < 0 {
		return ValidationError{Field: "background_blur_radius", Message: "must not be negative"}
	}
	if len(cfg.SupportedExtensions) == 0 {
		return ValidationError{Field: "supported_extensions", Message: "must list at least one extension"}
	}
	if cfg.TargetFPS <= 0 || cfg.TargetFPS > 240 {
		return ValidationError{Field: "target_fps", Message: "must be between 1 and 240"}
	}
	return nil
}

// normalizeExtensions lowercases extensions and ensures a leading dot.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
