// Package slide defines the rendered slide resource, the loader that repairs
// the catalog on decode failures, and the single-slot preload worker.
package slide

import (
	"errors"
	"image"
	"path/filepath"
	"strings"
)

// Sentinel errors surfaced by loading.
var (
	// ErrDecode marks a per-image decode failure. The loader recovers by
	// removing the entry and retrying the next surviving one.
	ErrDecode = errors.New("image decode failed")

	// ErrCatalogExhausted means every catalog entry has been removed.
	// Fatal at runtime.
	ErrCatalogExhausted = errors.New("catalog exhausted: no images remaining")
)

// Slide is a rendered image ready to composite: a screen-filling background
// layer, an aspect-fitted foreground layer, and an optional caption bar.
// A Slide is owned by exactly one slot (current, next, or the preload slot)
// and is released when evicted.
type Slide struct {
	Path       string
	Caption    string
	Background image.Image
	Foreground image.Image
	CaptionBar image.Image // nil unless the filename opts into a caption
}

// Release drops the layer references so the backing pixels can be reclaimed.
func (s *Slide) Release() {
	s.Background = nil
	s.Foreground = nil
	s.CaptionBar = nil
}

// Renderer produces a Slide for an image file, sized for the given display
// dimensions. Implementations are pure functions of their inputs and carry
// no retry policy; per-image failures wrap ErrDecode.
type Renderer interface {
	Render(path string, width, height int) (*Slide, error)
}

// CaptionFromPath derives a human-friendly caption from a file path:
// the stem with the '$' caption marker stripped and separators spaced.
func CaptionFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.TrimLeft(stem, "$")
	stem = strings.ReplaceAll(stem, "_", " ")
	return strings.ReplaceAll(stem, "-", " ")
}

// WantsCaption reports whether the file opts into a caption bar, signalled by
// a '$' prefix on the filename.
func WantsCaption(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "$")
}
