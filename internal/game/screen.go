package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// screen adapts an ebiten image to field.Surface. The field draws on its own
// transparent layer, which is composed over the themed background.
type screen struct {
	img *ebiten.Image
}

func (s screen) Clear() { s.img.Clear() }

func (s screen) FillCircle(x, y, r float64, clr color.RGBA) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), clr, true)
}

func (s screen) StrokeLine(x1, y1, x2, y2, width float64, clr color.RGBA, alpha float64) {
	a := clamp01(alpha)
	// ebiten expects premultiplied colours.
	c := color.RGBA{
		R: uint8(float64(clr.R) * a),
		G: uint8(float64(clr.G) * a),
		B: uint8(float64(clr.B) * a),
		A: uint8(float64(clr.A) * a),
	}
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}
