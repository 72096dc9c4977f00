package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"git.sr.ht/~sbinet/gg"
)

var ErrInvalidSize = errors.New("surface: width and height must be positive")

// Raster draws into an RGBA image through gg.
type Raster struct {
	dc *gg.Context
}

// NewRaster allocates a w×h transparent image.
func NewRaster(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	return &Raster{dc: gg.NewContext(w, h)}, nil
}

// Clear resets every pixel to transparent. No trail is kept between frames.
func (r *Raster) Clear() {
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
}

func (r *Raster) FillCircle(x, y, radius float64, clr color.RGBA) {
	r.dc.SetColor(clr)
	r.dc.DrawCircle(x, y, radius)
	r.dc.Fill()
}

func (r *Raster) StrokeLine(x1, y1, x2, y2, width float64, clr color.RGBA, alpha float64) {
	r.dc.SetRGBA255(int(clr.R), int(clr.G), int(clr.B), int(clamp01(alpha)*255))
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) SavePNG(path string) error {
	return WritePNG(path, r.Image())
}

// WritePNG encodes img to path. A failed close is reported like a failed
// write.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
