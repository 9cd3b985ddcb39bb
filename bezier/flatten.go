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

package bezier

import (
	"iter"
	"math"

	"seehuhn.de/go/geom/vec"
)

// DefaultMaxDepth is the default recursion limit for curve subdivision.
// A curve is split into at most 2^DefaultMaxDepth pieces.
const DefaultMaxDepth = 16

// Flattener converts curves into polylines by adaptive subdivision.
// A curve piece is accepted once it satisfies all tolerances in Options;
// otherwise it is split at t=0.5 and both halves are examined in turn.
//
// A Flattener is not safe for concurrent use.
type Flattener struct {
	Options

	// MaxDepth limits the subdivision depth.  Zero selects DefaultMaxDepth.
	MaxDepth int

	// Capped counts the curve pieces which were accepted only because
	// MaxDepth was reached.  The caller may reset the counter at any time.
	Capped int
}

// NewFlattener returns a Flattener using the given tolerances.
func NewFlattener(opt Options) *Flattener {
	return &Flattener{Options: opt}
}

// Curve returns the flattened points of c, starting with c[0] and ending with
// c[3].  The sequence is computed lazily; ranging over it a second time
// restarts the subdivision from scratch.
func (f *Flattener) Curve(c Cubic) iter.Seq[vec.Vec2] {
	return func(yield func(vec.Vec2) bool) {
		if !yield(c[0]) {
			return
		}
		f.subdivide(c, 1, 0, yield)
	}
}

// subdivide emits the end points of the accepted pieces of c.
// The argument span is the parameter range covered by c, relative to
// the curve passed to Curve.
func (f *Flattener) subdivide(c Cubic, span float64, depth int, yield func(vec.Vec2) bool) bool {
	if f.flatEnough(c, span) {
		return yield(c[3])
	}
	if depth >= f.maxDepth() {
		f.Capped++
		return yield(c[3])
	}
	left, right := c.Split(0.5)
	return f.subdivide(left, span/2, depth+1, yield) &&
		f.subdivide(right, span/2, depth+1, yield)
}

func (f *Flattener) maxDepth() int {
	if f.MaxDepth > 0 {
		return f.MaxDepth
	}
	return DefaultMaxDepth
}

// flatEnough reports whether the chord c[0]→c[3] may replace the curve.
func (f *Flattener) flatEnough(c Cubic, span float64) bool {
	chord := c[3].Sub(c[0])
	chordLen := chord.Length()

	// Cord deviation.  The curve lies in the convex hull of its control
	// points, so their distance from the chord bounds the true deviation.
	var dev float64
	if chordLen <= zeroLength {
		dev = max(c[1].Sub(c[0]).Length(), c[2].Sub(c[0]).Length())
	} else {
		n := vec.Vec2{X: -chord.Y / chordLen, Y: chord.X / chordLen}
		dev = max(math.Abs(c[1].Sub(c[0]).Dot(n)), math.Abs(c[2].Sub(c[0]).Dot(n)))
	}
	if dev > f.MaxCordDeviation {
		return false
	}

	// Tangent angle.  Collinear control points describe a straight line,
	// which needs no further refinement for direction.
	if chordLen > zeroLength && dev > collinearTolerance*chordLen {
		if angleBetween(c.StartTangent(), chord) > f.MaxTanAngleDeviation ||
			angleBetween(c.EndTangent(), chord) > f.MaxTanAngleDeviation {
			return false
		}
	}

	// Step distance.  The control polygon is never shorter than the
	// curve, so the sampling below is only needed for long pieces.
	if math.IsInf(f.StepDistance, 1) {
		return true
	}
	hull := c[1].Sub(c[0]).Length() + c[2].Sub(c[1]).Length() + c[3].Sub(c[2]).Length()
	if hull <= f.StepDistance {
		return true
	}
	return estimateLength(c, span, f.samplingStep()) <= f.StepDistance
}

// estimateLength approximates the arc length of c by a polyline through
// points spaced step apart in the parameter of the original curve.
func estimateLength(c Cubic, span, step float64) float64 {
	n := int(math.Ceil(span / step))
	n = max(n, 1)
	var length float64
	prev := c[0]
	for i := 1; i <= n; i++ {
		p := c.Eval(float64(i) / float64(n))
		length += p.Sub(prev).Length()
		prev = p
	}
	return length
}

// angleBetween returns the unsigned angle between a and b, in radians.
// Zero vectors have no direction and yield zero.
func angleBetween(a, b vec.Vec2) float64 {
	if a.Length() <= zeroLength || b.Length() <= zeroLength {
		return 0
	}
	cross := a.X*b.Y - a.Y*b.X
	return math.Abs(math.Atan2(cross, a.Dot(b)))
}

// Contour returns the flattened outline of c.  Consecutive duplicate points
// are removed, and for closed contours the first point is not repeated at
// the end.
func (f *Flattener) Contour(c *Contour) []vec.Vec2 {
	return f.AppendContour(nil, c)
}

// AppendContour appends the flattened outline of c to dst and returns the
// extended slice.  See Contour for details.
func (f *Flattener) AppendContour(dst []vec.Vec2, c *Contour) []vec.Vec2 {
	start := len(dst)
	if c.NumCurves() == 0 {
		if len(c.Segments) > 0 {
			dst = append(dst, c.Segments[0].P0)
		}
		return dst
	}
	for cu := range c.Curves() {
		for p := range f.Curve(cu) {
			if len(dst) > start && dst[len(dst)-1] == p {
				continue
			}
			dst = append(dst, p)
		}
	}
	if c.Closed && len(dst)-start > 1 && dst[start] == dst[len(dst)-1] {
		dst = dst[:len(dst)-1]
	}
	return dst
}

// collinearTolerance is the relative distance of the control points from
// the chord below which a curve is treated as a straight line.
const collinearTolerance = 1e-9
