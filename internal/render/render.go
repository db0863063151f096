// Package render produces composite-ready slides from image files: a
// blurred, darkened background stretched to the display, an aspect-fitted
// foreground, and an optional caption bar for files that opt in.
package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	// Codecs for the supported extension set.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/joelhk/driftframe/internal/slide"
)

const (
	captionPadY   = 18
	backgroundDim = 115 // alpha of the black overlay on the background (~45%)
)

var (
	captionBarColor  = color.RGBA{R: 40, G: 28, B: 16, A: 160}
	captionEdgeColor = color.RGBA{R: 255, G: 255, B: 255, A: 30}
	captionTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 245}
	captionShadow    = color.RGBA{A: 90}
)

// ImageRenderer implements slide.Renderer on top of the standard image codecs
// plus the x/image bmp and webp decoders.
type ImageRenderer struct {
	blurRadius      int
	captionFontSize int
}

// NewRenderer creates an ImageRenderer with the given background blur radius
// and caption font size in pixels.
func NewRenderer(blurRadius, captionFontSize int) *ImageRenderer {
	return &ImageRenderer{
		blurRadius:      blurRadius,
		captionFontSize: captionFontSize,
	}
}

// Render decodes the image at path and builds its layers for a width x height
// display. Unreadable or undecodable files wrap slide.ErrDecode.
func (r *ImageRenderer) Render(path string, width, height int) (*slide.Slide, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", slide.ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", slide.ErrDecode, path, err)
	}

	s := &slide.Slide{
		Path:       path,
		Caption:    slide.CaptionFromPath(path),
		Background: r.buildBackground(img, width, height),
		Foreground: fitImage(img, width, height),
	}
	if slide.WantsCaption(path) {
		s.CaptionBar = r.buildCaptionBar(s.Caption, width)
	}
	return s, nil
}

// fitImage scales img to fit the target dimensions, preserving aspect ratio.
func fitImage(img image.Image, targetW, targetH int) image.Image {
	b := img.Bounds()
	scale := minf(float64(targetW)/float64(b.Dx()), float64(targetH)/float64(b.Dy()))
	w := maxi(1, int(float64(b.Dx())*scale))
	h := maxi(1, int(float64(b.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// buildBackground stretches img to the full display, softens it, and darkens
// it so the foreground reads clearly. The blur is approximated by scaling
// through a reduced intermediate rather than a convolution kernel.
func (r *ImageRenderer) buildBackground(img image.Image, width, height int) image.Image {
	src := img
	if r.blurRadius > 0 {
		k := maxi(2, r.blurRadius/4)
		small := image.NewRGBA(image.Rect(0, 0, maxi(1, width/k), maxi(1, height/k)))
		draw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)
		src = small
	}

	bg := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(bg, bg.Bounds(), src, src.Bounds(), draw.Src, nil)
	draw.Draw(bg, bg.Bounds(), image.NewUniform(color.RGBA{A: backgroundDim}), image.Point{}, draw.Over)
	return bg
}

// buildCaptionBar renders the caption as a full-width translucent bar. Text
// is drawn with the basicfont face and scaled to the configured size.
func (r *ImageRenderer) buildCaptionBar(text string, screenW int) image.Image {
	face := basicfont.Face7x13
	scale := maxi(1, r.captionFontSize/face.Height)

	textW := maxi(1, font.MeasureString(face, text).Ceil())
	textH := face.Height

	drawText := func(c color.RGBA) image.Image {
		small := image.NewRGBA(image.Rect(0, 0, textW, textH))
		d := font.Drawer{
			Dst:  small,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.P(0, face.Ascent),
		}
		d.DrawString(text)

		big := image.NewRGBA(image.Rect(0, 0, textW*scale, textH*scale))
		draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)
		return big
	}

	scaledW := textW * scale
	scaledH := textH * scale
	barH := scaledH + 2*captionPadY

	bar := image.NewRGBA(image.Rect(0, 0, screenW, barH))
	draw.Draw(bar, bar.Bounds(), image.NewUniform(captionBarColor), image.Point{}, draw.Src)
	// 1px lighter top edge to separate the bar from the image.
	draw.Draw(bar, image.Rect(0, 0, screenW, 1), image.NewUniform(captionEdgeColor), image.Point{}, draw.Src)

	textX := (screenW - scaledW) / 2
	textY := captionPadY

	shadow := drawText(captionShadow)
	draw.Draw(bar, image.Rect(textX+scale, textY+scale, textX+scale+scaledW, textY+scale+scaledH),
		shadow, image.Point{}, draw.Over)
	body := drawText(captionTextColor)
	draw.Draw(bar, image.Rect(textX, textY, textX+scaledW, textY+scaledH),
		body, image.Point{}, draw.Over)

	return bar
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
