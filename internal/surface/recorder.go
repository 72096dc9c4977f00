// Package surface provides drawing targets for the particle field that do not
// need a window: an in-memory op recorder and a gg-backed raster image.
package surface

import "image/color"

type OpKind uint8

const (
	OpClear OpKind = iota + 1
	OpCircle
	OpLine
)

// Op is one recorded draw call. Circles use X1, Y1 and R; lines use both
// endpoints, Width and Alpha.
type Op struct {
	Kind   OpKind
	X1, Y1 float64
	X2, Y2 float64
	R      float64
	Width  float64
	Color  color.RGBA
	Alpha  float64
}

// Recorder keeps every draw call since the last Reset.
type Recorder struct {
	ops []Op
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear() {
	r.ops = append(r.ops, Op{Kind: OpClear})
}

func (r *Recorder) FillCircle(x, y, radius float64, clr color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpCircle, X1: x, Y1: y, R: radius, Color: clr, Alpha: 1})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, clr color.RGBA, alpha float64) {
	r.ops = append(r.ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: clr, Alpha: alpha})
}

// Ops returns the recorded calls. The slice is reused after Reset.
func (r *Recorder) Ops() []Op { return r.ops }

// Reset drops the recorded ops and keeps the backing array.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Lines returns only the recorded line ops.
func (r *Recorder) Lines() []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == OpLine {
			out = append(out, op)
		}
	}
	return out
}
