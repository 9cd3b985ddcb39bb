// seehuhn.de/go/vectess - vector scene tessellation
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package bezier implements cubic Bézier contours and their adaptive
// flattening into polylines.
//
// A contour is stored in the "chained" form used by vector scene graphs:
// every segment holds its start point and two control points, and the end
// point of a segment is the start point of the following one. For closed
// contours the last segment ends at the start of the first segment; for open
// contours the last segment only contributes its start point, which is the
// end point of the contour.
package bezier

import (
	"iter"

	"seehuhn.de/go/geom/vec"
)

// Segment is one link of a contour: the start point P0 and the control points
// P1 and P2 of a cubic Bézier curve. The end point is implied by the next
// segment.
type Segment struct {
	P0, P1, P2 vec.Vec2
}

// Line returns a segment which describes the straight line from a to b.
// The control points are placed at one and two thirds of the line, so that
// the curve is parametrised with constant speed.
func Line(a, b vec.Vec2) Segment {
	d := b.Sub(a)
	return Segment{
		P0: a,
		P1: a.Add(d.Mul(1.0 / 3)),
		P2: a.Add(d.Mul(2.0 / 3)),
	}
}

// Contour is a chain of segments.
type Contour struct {
	Segments []Segment
	Closed   bool
}

// NumCurves returns the number of cubic curves described by the contour.
func (c *Contour) NumCurves() int {
	n := len(c.Segments)
	if n == 0 {
		return 0
	}
	if c.Closed {
		return n
	}
	return n - 1
}

// Curves iterates over the cubic curves of the contour, in order.
func (c *Contour) Curves() iter.Seq[Cubic] {
	return func(yield func(Cubic) bool) {
		n := len(c.Segments)
		for i := range c.NumCurves() {
			s := &c.Segments[i]
			end := c.Segments[(i+1)%n].P0
			if !yield(Cubic{s.P0, s.P1, s.P2, end}) {
				return
			}
		}
	}
}

// Cubic holds the four control points of a cubic Bézier curve.
type Cubic [4]vec.Vec2

// Eval returns the point of the curve at parameter t.
func (c Cubic) Eval(t float64) vec.Vec2 {
	omt := 1 - t
	omt2 := omt * omt
	t2 := t * t
	return c[0].Mul(omt2 * omt).
		Add(c[1].Mul(3 * omt2 * t)).
		Add(c[2].Mul(3 * omt * t2)).
		Add(c[3].Mul(t2 * t))
}

// Split divides the curve at parameter t, using de Casteljau's algorithm.
func (c Cubic) Split(t float64) (Cubic, Cubic) {
	p01 := lerp(c[0], c[1], t)
	p12 := lerp(c[1], c[2], t)
	p23 := lerp(c[2], c[3], t)
	p012 := lerp(p01, p12, t)
	p123 := lerp(p12, p23, t)
	mid := lerp(p012, p123, t)
	return Cubic{c[0], p01, p012, mid}, Cubic{mid, p123, p23, c[3]}
}

// StartTangent returns the (unnormalised) direction of the curve at t=0.
// For degenerate curves the next distinct control point is used.
func (c Cubic) StartTangent() vec.Vec2 {
	for _, p := range c[1:] {
		if d := p.Sub(c[0]); d.Length() > zeroLength {
			return d
		}
	}
	return vec.Vec2{}
}

// EndTangent returns the (unnormalised) direction of the curve at t=1.
func (c Cubic) EndTangent() vec.Vec2 {
	for i := 2; i >= 0; i-- {
		if d := c[3].Sub(c[i]); d.Length() > zeroLength {
			return d
		}
	}
	return vec.Vec2{}
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// zeroLength is the distance below which two points are treated as equal
// when deriving directions.
const zeroLength = 1e-12
