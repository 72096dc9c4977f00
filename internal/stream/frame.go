package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/iburimskiy/portfolio-field/internal/surface"
)

// Frame wire format, little-endian:
//
//	u32 op count
//	per op: u8 kind, then
//	  clear:  nothing
//	  circle: f32 x, y, r
//	  line:   f32 x1, y1, x2, y2, width, alpha
//
// Colours are not repeated per op; the accent is sent once in the hello message.

var ErrShortFrame = errors.New("stream: truncated frame")

// AppendFrame encodes ops onto dst.
func AppendFrame(dst []byte, ops []surface.Op) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(ops)))
	for _, op := range ops {
		dst = append(dst, byte(op.Kind))
		switch op.Kind {
		case surface.OpCircle:
			dst = appendFloats(dst, op.X1, op.Y1, op.R)
		case surface.OpLine:
			dst = appendFloats(dst, op.X1, op.Y1, op.X2, op.Y2, op.Width, op.Alpha)
		}
	}
	return dst
}

func appendFloats(dst []byte, vs ...float64) []byte {
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v)))
	}
	return dst
}

// DecodeFrame is the inverse of AppendFrame. Decoded values carry float32
// precision.
func DecodeFrame(b []byte) ([]surface.Op, error) {
	if len(b) < 4 {
		return nil, ErrShortFrame
	}
	n := binary.LittleEndian.Uint32(b)
	b = b[4:]
	// Every op takes at least its kind byte.
	if uint64(n) > uint64(len(b)) {
		return nil, ErrShortFrame
	}
	ops := make([]surface.Op, 0, n)

	readFloats := func(k int) ([]float64, error) {
		if len(b) < 4*k {
			return nil, ErrShortFrame
		}
		out := make([]float64, k)
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])))
		}
		b = b[4*k:]
		return out, nil
	}

	for i := uint32(0); i < n; i++ {
		if len(b) < 1 {
			return nil, ErrShortFrame
		}
		kind := surface.OpKind(b[0])
		b = b[1:]
		switch kind {
		case surface.OpClear:
			ops = append(ops, surface.Op{Kind: kind})
		case surface.OpCircle:
			v, err := readFloats(3)
			if err != nil {
				return nil, err
			}
			ops = append(ops, surface.Op{Kind: kind, X1: v[0], Y1: v[1], R: v[2], Alpha: 1})
		case surface.OpLine:
			v, err := readFloats(6)
			if err != nil {
				return nil, err
			}
			ops = append(ops, surface.Op{Kind: kind, X1: v[0], Y1: v[1], X2: v[2], Y2: v[3], Width: v[4], Alpha: v[5]})
		default:
			return nil, fmt.Errorf("stream: unknown op kind %d", kind)
		}
	}
	return ops, nil
}
