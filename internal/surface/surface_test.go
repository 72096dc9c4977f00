package surface

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orange = color.RGBA{R: 0xff, G: 0x6b, A: 0xff}

func TestRecorderCountsAndReset(t *testing.T) {
	r := NewRecorder()
	r.Clear()
	r.FillCircle(1, 2, 3, orange)
	r.StrokeLine(0, 0, 10, 0, 0.6, orange, 0.25)

	require.Len(t, r.Ops(), 3)
	assert.Equal(t, 1, r.Count(OpClear))
	assert.Equal(t, 1, r.Count(OpCircle))

	lines := r.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 0.25, lines[0].Alpha)
	assert.Equal(t, 10.0, lines[0].X2)

	r.Reset()
	assert.Empty(t, r.Ops())
}

func TestNewRasterRejectsEmptySize(t *testing.T) {
	_, err := NewRaster(0, 10)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewRaster(10, -1)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestRasterDrawAndClear(t *testing.T) {
	r, err := NewRaster(40, 40)
	require.NoError(t, err)

	r.FillCircle(20, 20, 6, orange)
	_, _, _, a := r.Image().At(20, 20).RGBA()
	assert.NotZero(t, a)

	r.Clear()
	_, _, _, a = r.Image().At(20, 20).RGBA()
	assert.Zero(t, a, "clear leaves no trail")
}

func TestRasterSavePNG(t *testing.T) {
	r, err := NewRaster(32, 16)
	require.NoError(t, err)
	r.StrokeLine(0, 8, 32, 8, 2, orange, 1)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, r.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
	_, _, _, a := img.At(16, 8).RGBA()
	assert.NotZero(t, a)
}

func TestWritePNGReportsCreateError(t *testing.T) {
	r, err := NewRaster(4, 4)
	require.NoError(t, err)
	err = r.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png"))
	assert.ErrorContains(t, err, "create")
}
