package favicon

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// Renderer produces a square pixel buffer of the source image at a given
// pixel size.
type Renderer interface {
	Render(size int) (image.Image, error)
}

// NewRenderer reads the source image at path and returns a renderer for it.
// SVG sources are rasterized per size; raster sources (PNG, JPEG, GIF) are
// rescaled from the decoded image.
func NewRenderer(path string) (Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source image: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return newSVGRenderer(data)
	}
	return newRasterRenderer(data)
}

// svgRenderer rasterizes a parsed SVG document at arbitrary sizes.
type svgRenderer struct {
	icon *oksvg.SvgIcon
}

func newSVGRenderer(data []byte) (*svgRenderer, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	return &svgRenderer{icon: icon}, nil
}

// Render rasterizes the SVG into a size×size buffer, scaled to fit and
// centered so non-square viewboxes keep their aspect ratio.
func (r *svgRenderer) Render(size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid render size %d", size)
	}

	w, h := r.icon.ViewBox.W, r.icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(size), float64(size)
	}
	scale := float64(size) / math.Max(w, h)
	outW := int(w * scale)
	outH := int(h * scale)
	offX := (size - outW) / 2
	offY := (size - outH) / 2
	r.icon.SetTarget(float64(offX), float64(offY), float64(outW), float64(outH))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	r.icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img, nil
}

// rasterRenderer rescales an already-decoded raster image.
type rasterRenderer struct {
	src image.Image
}

func newRasterRenderer(data []byte) (*rasterRenderer, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}
	return &rasterRenderer{src: src}, nil
}

// Render scales the source into a size×size buffer, preserving aspect
// ratio and centering the result.
func (r *rasterRenderer) Render(size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid render size %d", size)
	}

	srcBounds := r.src.Bounds()
	srcW := srcBounds.Dx()
	srcH := srcBounds.Dy()
	scale := math.Min(float64(size)/float64(srcW), float64(size)/float64(srcH))
	newW := int(math.Round(float64(srcW) * scale))
	newH := int(math.Round(float64(srcH) * scale))

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	offX := (size - newW) / 2
	offY := (size - newH) / 2
	dr := image.Rect(offX, offY, offX+newW, offY+newH)
	xdraw.CatmullRom.Scale(dst, dr, r.src, srcBounds, xdraw.Over, nil)
	return dst, nil
}
