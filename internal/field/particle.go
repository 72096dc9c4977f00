package field

import (
	"image/color"
	"math/rand/v2"
)

// Particle is a single moving point of the field. Size and Density are fixed
// at creation; position and velocity change every tick.
type Particle struct {
	X, Y           float64
	SpeedX, SpeedY float64
	Size           float64
	// Density scales how strongly the particle reacts to the pointer.
	Density float64
}

// Pointer is the cursor state seen by the simulation. Present is false when
// the cursor has left the viewport, in which case X and Y are meaningless.
type Pointer struct {
	X, Y    float64
	Present bool
}

// Params holds the tunables of a field.
type Params struct {
	DensityDivisor  float64
	RepulsionRadius float64
	LinkDistance    float64
	LineWidth       float64
	MaxSize         float64

	// Velocity components are drawn from [VelocityMin, VelocityMin+VelocitySpan).
	// The default range is deliberately asymmetric, so particles drift up-left.
	VelocityMin  float64
	VelocitySpan float64

	DensityMin  float64
	DensitySpan float64

	Accent color.RGBA
}

// DefaultParams returns the reference tuning of the portfolio background.
func DefaultParams() Params {
	return Params{
		DensityDivisor:  15000,
		RepulsionRadius: 120,
		LinkDistance:    150,
		LineWidth:       0.6,
		MaxSize:         3,
		VelocityMin:     -0.75,
		VelocitySpan:    1,
		DensityMin:      1,
		DensitySpan:     20,
		Accent:          color.RGBA{R: 0xff, G: 0x6b, B: 0x00, A: 0xff},
	}
}

func newParticle(p Params, rng *rand.Rand, w, h float64) Particle {
	return Particle{
		X:       rng.Float64() * w,
		Y:       rng.Float64() * h,
		Size:    rng.Float64() * p.MaxSize,
		SpeedX:  rng.Float64()*p.VelocitySpan + p.VelocityMin,
		SpeedY:  rng.Float64()*p.VelocitySpan + p.VelocityMin,
		Density: rng.Float64()*p.DensitySpan + p.DensityMin,
	}
}
