package config

import "time"

// Config holds the slideshow settings. It is constructed once at startup and
// passed read-only to every component.
type Config struct {
	PhotosDir            string   `yaml:"photos_dir"`
	RotationSeconds      float64  `yaml:"rotation_seconds"`
	Shuffle              bool     `yaml:"shuffle"`
	ShuffleSeed          int64    `yaml:"shuffle_seed"`
	TransitionSeconds    float64  `yaml:"transition_seconds"`
	CaptionFontSize      int      `yaml:"caption_font_size"`
	BackgroundBlurRadius int      `yaml:"background_blur_radius"`
	SupportedExtensions  []string `yaml:"supported_extensions"`
	TargetFPS            int      `yaml:"target_fps"`
}

// Rotation returns how long each slide stays on screen before auto-advance.
func (c *Config) Rotation() time.Duration {
	return time.Duration(c.RotationSeconds * float64(time.Second))
}

// Transition returns the crossfade duration.
func (c *Config) Transition() time.Duration {
	return time.Duration(c.TransitionSeconds * float64(time.Second))
}

// TickInterval returns the presentation loop tick period.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TargetFPS)
}
