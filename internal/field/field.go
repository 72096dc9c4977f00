// Package field implements the particle background: a batch of drifting
// points that bounce off the viewport edges, flee the pointer and are linked
// by lines when close to each other.
package field

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Surface is the drawing target of Render.
type Surface interface {
	// Clear wipes the whole surface to transparent.
	Clear()
	FillCircle(x, y, r float64, clr color.RGBA)
	// StrokeLine draws a segment in clr with its alpha scaled by alpha (0..1).
	StrokeLine(x1, y1, x2, y2, width float64, clr color.RGBA, alpha float64)
}

// Field owns the particles of one viewport. It is not safe for concurrent
// use; callers drive it from a single goroutine.
type Field struct {
	params    Params
	rng       *rand.Rand
	width     int
	height    int
	particles []Particle
	pointer   Pointer
}

// New returns an empty field. Call Resize before the first frame.
func New(params Params, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{params: params, rng: rng}
}

// ParticleCount returns how many particles a w×h viewport holds.
func (p Params) ParticleCount(w, h int) int {
	if w <= 0 || h <= 0 || p.DensityDivisor <= 0 {
		return 0
	}
	return int(math.Floor(float64(w) * float64(h) / p.DensityDivisor))
}

// Resize sets the viewport and regenerates every particle. Nothing from the
// previous set survives.
func (f *Field) Resize(w, h int) {
	f.width, f.height = w, h
	n := f.params.ParticleCount(w, h)
	f.particles = make([]Particle, n)
	for i := range f.particles {
		f.particles[i] = newParticle(f.params, f.rng, float64(w), float64(h))
	}
}

func (f *Field) SetPointer(x, y float64) {
	f.pointer = Pointer{X: x, Y: y, Present: true}
}

func (f *Field) ClearPointer() {
	f.pointer = Pointer{}
}

// Tick advances the simulation by one frame.
func (f *Field) Tick() {
	w, h := float64(f.width), float64(f.height)
	r := f.params.RepulsionRadius
	for i := range f.particles {
		p := &f.particles[i]

		if f.pointer.Present {
			dx := f.pointer.X - p.X
			dy := f.pointer.Y - p.Y
			d := math.Hypot(dx, dy)
			if force, ok := RepulsionForce(d, r, p.Density); ok && d > 0 {
				p.X -= dx / d * force
				p.Y -= dy / d * force
			}
		}

		p.X += p.SpeedX
		p.Y += p.SpeedY

		// Reflection happens after the move, so a particle may sit outside
		// the viewport for one frame.
		if p.X > w || p.X < 0 {
			p.SpeedX = -p.SpeedX
		}
		if p.Y > h || p.Y < 0 {
			p.SpeedY = -p.SpeedY
		}
	}
}

// Render hard-clears s and draws the particles and their links.
// A nil surface draws nothing.
func (f *Field) Render(s Surface) {
	if s == nil {
		return
	}
	s.Clear()

	accent := f.params.Accent
	for _, p := range f.particles {
		s.FillCircle(p.X, p.Y, p.Size, accent)
	}

	// j starts at i: self-pairs produce a zero-length stroke.
	for i := range f.particles {
		a := f.particles[i]
		for j := i; j < len(f.particles); j++ {
			b := f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if alpha, ok := LinkAlpha(d, f.params.LinkDistance); ok {
				s.StrokeLine(a.X, a.Y, b.X, b.Y, f.params.LineWidth, accent, alpha)
			}
		}
	}
}

// Frame is Tick followed by Render.
func (f *Field) Frame(s Surface) {
	f.Tick()
	f.Render(s)
}

// Size returns the current viewport.
func (f *Field) Size() (int, int) { return f.width, f.height }

func (f *Field) Len() int { return len(f.particles) }

func (f *Field) Pointer() Pointer { return f.pointer }

func (f *Field) Params() Params { return f.params }

// Particles returns a copy of the current particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// RepulsionForce is the displacement magnitude applied to a particle at
// distance d from the pointer: (radius-d)/radius*density. ok is false when
// d is outside the radius.
func RepulsionForce(d, radius, density float64) (float64, bool) {
	if d >= radius || radius <= 0 {
		return 0, false
	}
	return (radius - d) / radius * density, true
}

// LinkAlpha is the opacity of a link between two particles d apart.
func LinkAlpha(d, threshold float64) (float64, bool) {
	if d >= threshold {
		return 0, false
	}
	return 1 - d/threshold, true
}
