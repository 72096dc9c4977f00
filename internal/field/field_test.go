package field

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/portfolio-field/internal/surface"
)

func newTestField(t *testing.T) *Field {
	t.Helper()
	return New(DefaultParams(), rand.New(rand.NewPCG(1, 2)))
}

func TestResizeParticleCount(t *testing.T) {
	f := newTestField(t)

	cases := []struct {
		w, h int
		want int
	}{
		{1500, 750, 75},
		{300, 300, 6},
		{1920, 1080, 138},
		{100, 100, 0},
		{0, 500, 0},
		{-10, 500, 0},
	}
	for _, tc := range cases {
		f.Resize(tc.w, tc.h)
		assert.Equal(t, tc.want, f.Len(), "%dx%d", tc.w, tc.h)
		w, h := f.Size()
		assert.Equal(t, tc.w, w)
		assert.Equal(t, tc.h, h)
	}
}

func TestResizeInitialRanges(t *testing.T) {
	f := newTestField(t)
	f.Resize(1500, 750)

	for i, p := range f.Particles() {
		assert.GreaterOrEqual(t, p.X, 0.0, "particle %d", i)
		assert.Less(t, p.X, 1500.0, "particle %d", i)
		assert.GreaterOrEqual(t, p.Y, 0.0, "particle %d", i)
		assert.Less(t, p.Y, 750.0, "particle %d", i)

		assert.GreaterOrEqual(t, p.Size, 0.0)
		assert.Less(t, p.Size, 3.0)

		for _, v := range []float64{p.SpeedX, p.SpeedY} {
			assert.GreaterOrEqual(t, v, -0.75)
			assert.Less(t, v, 0.25)
		}

		assert.GreaterOrEqual(t, p.Density, 1.0)
		assert.Less(t, p.Density, 21.0)
	}
}

func TestResizeDiscardsPreviousParticles(t *testing.T) {
	f := newTestField(t)
	f.Resize(1500, 750)
	require.Equal(t, 75, f.Len())
	before := f.Particles()

	f.Resize(300, 300)
	require.Equal(t, 6, f.Len())
	for _, p := range f.Particles() {
		assert.Less(t, p.X, 300.0)
		assert.Less(t, p.Y, 300.0)
		for _, old := range before {
			assert.NotEqual(t, old, p)
		}
	}
}

func TestTickWithoutPointerIsPureIntegration(t *testing.T) {
	f := newTestField(t)
	f.Resize(1500, 750)
	f.ClearPointer()
	before := f.Particles()

	f.Tick()

	for i, p := range f.Particles() {
		assert.InDelta(t, before[i].X+before[i].SpeedX, p.X, 1e-12)
		assert.InDelta(t, before[i].Y+before[i].SpeedY, p.Y, 1e-12)
	}
}

func TestClearPointerIsAbsentNotZero(t *testing.T) {
	f := newTestField(t)
	f.SetPointer(0, 0)
	assert.True(t, f.Pointer().Present)

	f.ClearPointer()
	assert.False(t, f.Pointer().Present)

	// A cleared pointer must not behave like a pointer at (0,0).
	f.width, f.height = 500, 500
	f.particles = []Particle{{X: 10, Y: 10, Density: 5}}
	f.Tick()
	assert.Equal(t, 10.0, f.particles[0].X)
	assert.Equal(t, 10.0, f.particles[0].Y)
}

func TestTickRepelsAwayFromPointer(t *testing.T) {
	f := newTestField(t)
	f.width, f.height = 1000, 1000
	f.particles = []Particle{{X: 100, Y: 100, Density: 10}}
	f.SetPointer(160, 100)

	f.Tick()

	// d=60, R=120: force=(120-60)/120*10=5, pushed left along x.
	assert.InDelta(t, 95.0, f.particles[0].X, 1e-12)
	assert.InDelta(t, 100.0, f.particles[0].Y, 1e-12)
}

func TestTickIgnoresPointerOutsideRadius(t *testing.T) {
	f := newTestField(t)
	f.width, f.height = 1000, 1000
	f.particles = []Particle{{X: 100, Y: 100, Density: 10, SpeedX: 0.1}}
	f.SetPointer(220, 100)

	f.Tick()

	assert.InDelta(t, 100.1, f.particles[0].X, 1e-12)
}

func TestTickPointerOnParticleDoesNotProduceNaN(t *testing.T) {
	f := newTestField(t)
	f.width, f.height = 1000, 1000
	f.particles = []Particle{{X: 100, Y: 100, Density: 10}}
	f.SetPointer(100, 100)

	f.Tick()

	assert.False(t, math.IsNaN(f.particles[0].X))
	assert.Equal(t, 100.0, f.particles[0].X)
}

func TestRepulsionForce(t *testing.T) {
	const r = 120.0

	got, ok := RepulsionForce(0, r, 4)
	require.True(t, ok)
	assert.InDelta(t, 4.0, got, 1e-12)

	got, ok = RepulsionForce(30, r, 4)
	require.True(t, ok)
	assert.InDelta(t, (r-30)/r*4, got, 1e-12)

	_, ok = RepulsionForce(r, r, 4)
	assert.False(t, ok)
	_, ok = RepulsionForce(r+1, r, 4)
	assert.False(t, ok)

	prev := math.Inf(1)
	for d := 0.0; d < r; d += 7.5 {
		f, ok := RepulsionForce(d, r, 3)
		require.True(t, ok)
		assert.Less(t, f, prev, "force must decrease with distance")
		prev = f
	}
}

func TestEdgeBounceFlipsOncePerCrossing(t *testing.T) {
	f := newTestField(t)
	f.width, f.height = 100, 100
	f.particles = []Particle{
		{X: 99.9, Y: 50, SpeedX: 0.2},
		{X: 50, Y: 0.1, SpeedY: -0.5},
	}

	f.Tick()
	right := f.particles[0]
	assert.Greater(t, right.X, 100.0, "rendered outside for one frame")
	assert.Equal(t, -0.2, right.SpeedX)

	top := f.particles[1]
	assert.Less(t, top.Y, 0.0)
	assert.Equal(t, 0.5, top.SpeedY)

	f.Tick()
	assert.Less(t, f.particles[0].X, 100.0)
	assert.Equal(t, -0.2, f.particles[0].SpeedX, "no second flip once back inside")
	assert.Greater(t, f.particles[1].Y, 0.0)
	assert.Equal(t, 0.5, f.particles[1].SpeedY)
}

func TestLinkAlpha(t *testing.T) {
	a, ok := LinkAlpha(0, 150)
	require.True(t, ok)
	assert.Equal(t, 1.0, a)

	a, ok = LinkAlpha(75, 150)
	require.True(t, ok)
	assert.InDelta(t, 0.5, a, 1e-12)

	_, ok = LinkAlpha(150, 150)
	assert.False(t, ok)
	_, ok = LinkAlpha(300, 150)
	assert.False(t, ok)
}

func TestRenderDrawsParticlesAndLinks(t *testing.T) {
	f := newTestField(t)
	f.width, f.height = 1000, 1000
	f.particles = []Particle{
		{X: 0, Y: 0, Size: 1},
		{X: 90, Y: 0, Size: 2},
		{X: 400, Y: 0, Size: 1.5},
	}
	rec := surface.NewRecorder()

	f.Render(rec)

	ops := rec.Ops()
	require.NotEmpty(t, ops)
	assert.Equal(t, surface.OpClear, ops[0].Kind, "frame starts with a hard clear")
	assert.Equal(t, 1, rec.Count(surface.OpClear))
	assert.Equal(t, 3, rec.Count(surface.OpCircle))

	// Three self-pairs plus the single close pair (0,1).
	lines := rec.Lines()
	require.Len(t, lines, 4)

	var linked int
	for _, l := range lines {
		d := math.Hypot(l.X1-l.X2, l.Y1-l.Y2)
		assert.Less(t, d, 150.0)
		assert.InDelta(t, 1-d/150, l.Alpha, 1e-12)
		assert.Equal(t, 0.6, l.Width)
		assert.Equal(t, DefaultParams().Accent, l.Color)
		if d > 0 {
			linked++
		}
	}
	assert.Equal(t, 1, linked)
}

func TestRenderNilSurfaceIsNoop(t *testing.T) {
	f := newTestField(t)
	f.Resize(300, 300)
	assert.NotPanics(t, func() { f.Render(nil) })
}

func TestFrameTicksThenRenders(t *testing.T) {
	f := newTestField(t)
	f.width, f.height = 1000, 1000
	f.particles = []Particle{{X: 10, Y: 10, SpeedX: 1, SpeedY: 1, Size: 1}}
	rec := surface.NewRecorder()

	f.Frame(rec)

	circles := 0
	for _, op := range rec.Ops() {
		if op.Kind == surface.OpCircle {
			circles++
			assert.Equal(t, 11.0, op.X1)
			assert.Equal(t, 11.0, op.Y1)
		}
	}
	assert.Equal(t, 1, circles)
}

func TestEndToEndResizeScenario(t *testing.T) {
	f := newTestField(t)
	rec := surface.NewRecorder()

	f.Resize(1500, 750)
	require.Equal(t, 75, f.Len())
	for i := 0; i < 120; i++ {
		rec.Reset()
		f.Frame(rec)
	}
	assert.Equal(t, 75, rec.Count(surface.OpCircle))
	// Every particle links to itself at least.
	assert.GreaterOrEqual(t, rec.Count(surface.OpLine), 75)

	f.Resize(300, 300)
	rec.Reset()
	f.Render(rec)
	assert.Equal(t, 6, rec.Count(surface.OpCircle))
}
