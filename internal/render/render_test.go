package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelhk/driftframe/internal/slide"
)

// writeTestPNG writes a small solid-color png and returns its path.
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTestPNG(t, dir, "sunset.png", 40, 30)

	r := NewRenderer(30, 64)
	s, err := r.Render(path, 200, 100)
	require.NoError(t, err)

	assert.Equal(t, path, s.Path)
	assert.Equal(t, "sunset", s.Caption)

	// The background always fills the display.
	require.NotNil(t, s.Background)
	assert.Equal(t, 200, s.Background.Bounds().Dx())
	assert.Equal(t, 100, s.Background.Bounds().Dy())

	// A 4:3 source fitted into 2:1 is height-bound.
	require.NotNil(t, s.Foreground)
	assert.Equal(t, 100, s.Foreground.Bounds().Dy())
	assert.LessOrEqual(t, s.Foreground.Bounds().Dx(), 200)

	// No dollar prefix, no caption bar.
	assert.Nil(t, s.CaptionBar)
}

func TestRender_CaptionBar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTestPNG(t, dir, "$beach_day.png", 40, 30)

	r := NewRenderer(30, 64)
	s, err := r.Render(path, 200, 100)
	require.NoError(t, err)

	assert.Equal(t, "beach day", s.Caption)
	require.NotNil(t, s.CaptionBar)
	assert.Equal(t, 200, s.CaptionBar.Bounds().Dx())
	assert.Greater(t, s.CaptionBar.Bounds().Dy(), 0)
}

func TestRender_MissingFile(t *testing.T) {
	t.Parallel()

	r := NewRenderer(30, 64)
	_, err := r.Render(filepath.Join(t.TempDir(), "nope.png"), 200, 100)
	assert.ErrorIs(t, err, slide.ErrDecode)
}

func TestRender_UndecodableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	r := NewRenderer(30, 64)
	_, err := r.Render(path, 200, 100)
	assert.ErrorIs(t, err, slide.ErrDecode)
}

func TestRender_ZeroBlurRadius(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTestPNG(t, dir, "plain.png", 40, 30)

	r := NewRenderer(0, 64)
	s, err := r.Render(path, 120, 80)
	require.NoError(t, err)
	assert.Equal(t, 120, s.Background.Bounds().Dx())
	assert.Equal(t, 80, s.Background.Bounds().Dy())
}

func TestFitImage_WideSource(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 100, 25))
	fitted := fitImage(src, 50, 50)

	assert.Equal(t, 50, fitted.Bounds().Dx())
	assert.Equal(t, 12, fitted.Bounds().Dy())
}
