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

package vectess

import (
	"iter"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/vectess/bezier"
)

// strokeSegment is one line segment of a flattened contour.
type strokeSegment struct {
	A, B vec.Vec2 // end points
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// stroker converts flattened contours into stroke outlines.  Each outline
// is a closed polygon.  The union of all outlines, filled using the
// non-zero winding rule, is the stroked area.
//
// All buffers are reused between strokes.
type stroker struct {
	d          float64 // half thickness
	cap        graphics.LineCapStyle
	join       graphics.LineJoinStyle
	miterLimit float64
	pattern    []float64
	phase      float64
	opt        bezier.Options

	segs             []strokeSegment
	segsOffsets      []int
	subpathClosed    []bool
	degeneratePoints []vec.Vec2

	dashedSegs []strokeSegment
	dashes     [][2]int // index ranges into dashedSegs

	outline        []vec.Vec2
	outlineOffsets []int
}

// reset prepares the stroker for a new stroke.  Stroke styles with a miter
// limit below 1 use defaultMiter.
func (s *stroker) reset(st *Stroke, opt bezier.Options, defaultMiter float64) {
	s.d = st.HalfThickness
	s.cap = st.Cap
	s.join = st.Join
	s.miterLimit = st.MiterLimit
	if s.miterLimit < 1 {
		s.miterLimit = defaultMiter
	}
	s.pattern = st.Pattern
	s.phase = st.PatternOffset
	s.opt = opt

	s.segs = s.segs[:0]
	s.segsOffsets = s.segsOffsets[:0]
	s.subpathClosed = s.subpathClosed[:0]
	s.degeneratePoints = s.degeneratePoints[:0]
	s.outline = s.outline[:0]
	s.outlineOffsets = s.outlineOffsets[:0]
}

// addContour adds a flattened contour.  For closed contours, the segment
// from the last point back to the first point is implied.
func (s *stroker) addContour(pts []vec.Vec2, closed bool) {
	if len(pts) == 0 {
		return
	}
	start := len(s.segs)
	for i := 1; i < len(pts); i++ {
		s.addStrokeSegment(pts[i-1], pts[i])
	}
	if closed {
		s.addStrokeSegment(pts[len(pts)-1], pts[0])
	}
	if len(s.segs) == start {
		s.degeneratePoints = append(s.degeneratePoints, pts[0])
		return
	}
	s.segsOffsets = append(s.segsOffsets, start)
	s.subpathClosed = append(s.subpathClosed, closed)
}

func (s *stroker) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}
	s.segs = append(s.segs, strokeSegment{A: a, B: b, T: t, N: n})
}

// build computes the stroke outlines for all contours added since the last
// reset.
func (s *stroker) build() {
	if !(s.d > 0) {
		return
	}

	// Points have no direction.  Only round caps give them a shape.
	if s.cap == graphics.LineCapRound {
		for _, pt := range s.degeneratePoints {
			start := len(s.outline)
			s.addArc(pt, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
			s.endOutline(start)
		}
	}

	if s.dashed() {
		s.strokeDashedSubpaths()
	} else {
		for i := range s.segsOffsets {
			start := len(s.outline)
			s.strokeSubpath(subslice(s.segs, s.segsOffsets, i), s.subpathClosed[i])
			s.endOutline(start)
		}
	}
}

// outlines iterates over the polygons computed by build.
func (s *stroker) outlines() iter.Seq[[]vec.Vec2] {
	return func(yield func([]vec.Vec2) bool) {
		for i := range s.outlineOffsets {
			if !yield(subslice(s.outline, s.outlineOffsets, i)) {
				return
			}
		}
	}
}

// endOutline records the polygon starting at outline[start], or discards
// it if it has fewer than three vertices.
func (s *stroker) endOutline(start int) {
	if len(s.outline)-start >= 3 {
		s.outlineOffsets = append(s.outlineOffsets, start)
	} else {
		s.outline = s.outline[:start]
	}
}

// subslice returns part i of a buffer which is split at the given offsets.
func subslice[T any](buf []T, offsets []int, i int) []T {
	end := len(buf)
	if i+1 < len(offsets) {
		end = offsets[i+1]
	}
	return buf[offsets[i]:end]
}

func (s *stroker) dashed() bool {
	if len(s.pattern) == 0 {
		return false
	}
	total := 0.0
	for _, x := range s.pattern {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
		total += x
	}
	return total > 0
}

func (s *stroker) strokeDashedSubpaths() {
	s.applyDashPattern()

	for _, r := range s.dashes {
		segs := s.dashedSegs[r[0]:r[1]]

		// Zero-length dashes keep the direction of the contour.
		if len(segs) == 1 && segs[0].A == segs[0].B {
			seg := &segs[0]
			start := len(s.outline)
			switch s.cap {
			case graphics.LineCapRound:
				s.addArc(seg.A, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
			case graphics.LineCapSquare:
				s.addSquare(seg.A, seg.T)
			}
			s.endOutline(start)
			continue
		}

		start := len(s.outline)
		s.strokeSubpath(segs, false)
		s.endOutline(start)
	}
}

// strokeSubpath appends the outline of one subpath.  The outline runs
// forward along the +N side and back along the -N side.  Joins are added
// on the outer side of each corner; on the inner side the two offset lines
// are cut at their intersection.
func (s *stroker) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := s.d
	first := &segs[0]
	last := &segs[len(segs)-1]

	if closed {
		closing := cross(last.T, first.T)
		closingCusp := isCusp(last, first)

		s.outline = append(s.outline, first.A.Add(first.N.Mul(d)))
		for i := range segs {
			seg := &segs[i]
			next := first
			if i+1 < len(segs) {
				next = &segs[i+1]
			}
			sinTheta := cross(seg.T, next.T)
			switch {
			case !isCusp(seg, next) && math.Abs(sinTheta) < collinearityThreshold:
				s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)), next.A.Add(next.N.Mul(d)))
			case !isCusp(seg, next) && sinTheta > 0:
				s.addInnerCorner(seg.B, seg, next, true)
			default:
				s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
				s.addJoin(seg.B, seg.T, next.T, true)
				s.outline = append(s.outline, next.A.Add(next.N.Mul(d)))
			}
		}

		switch {
		case !closingCusp && math.Abs(closing) < collinearityThreshold:
			s.outline = append(s.outline, first.A.Sub(first.N.Mul(d)), last.B.Sub(last.N.Mul(d)))
		case closingCusp || closing > 0:
			s.outline = append(s.outline, first.A.Sub(first.N.Mul(d)))
			s.addJoin(first.A, last.T, first.T, false)
			s.outline = append(s.outline, last.B.Sub(last.N.Mul(d)))
		default:
			s.addInnerCorner(first.A, last, first, false)
		}
		for i := len(segs) - 1; i > 0; i-- {
			seg, prev := &segs[i], &segs[i-1]
			sinTheta := cross(prev.T, seg.T)
			switch {
			case !isCusp(prev, seg) && math.Abs(sinTheta) < collinearityThreshold:
				s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)), prev.B.Sub(prev.N.Mul(d)))
			case isCusp(prev, seg) || sinTheta > 0:
				s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
				s.addJoin(seg.A, prev.T, seg.T, false)
				s.outline = append(s.outline, prev.B.Sub(prev.N.Mul(d)))
			default:
				s.addInnerCorner(seg.A, prev, seg, false)
			}
		}
		s.outline = append(s.outline, first.A.Sub(first.N.Mul(d)))
		return
	}

	s.addCap(first.A, first.T.Mul(-1), s.cap)

	skip := false
	for i := range segs {
		seg := &segs[i]
		if !skip {
			s.outline = append(s.outline, seg.A.Add(seg.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		sinTheta := cross(seg.T, next.T)
		switch {
		case !isCusp(seg, next) && math.Abs(sinTheta) < collinearityThreshold:
			s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
		case !isCusp(seg, next) && sinTheta > 0:
			s.addInnerCorner(seg.B, seg, next, true)
			skip = true
		default:
			s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
			s.addJoin(seg.B, seg.T, next.T, true)
		}
	}

	s.addCap(last.B, last.T, s.cap)

	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skip {
			s.outline = append(s.outline, seg.B.Sub(seg.N.Mul(d)))
		}
		skip = false
		if i == 0 {
			s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		sinTheta := cross(prev.T, seg.T)
		switch {
		case !isCusp(prev, seg) && math.Abs(sinTheta) < collinearityThreshold:
			s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
		case isCusp(prev, seg) || sinTheta > 0:
			s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
			s.addJoin(seg.A, prev.T, seg.T, false)
		default:
			s.addInnerCorner(seg.A, prev, seg, false)
			skip = true
		}
	}
}

// isCusp reports whether the contour reverses direction between the two
// segments.  Both sides of a cusp are treated as outer corners.
func isCusp(seg, next *strokeSegment) bool {
	return seg.T.Dot(next.T) < cuspCosineThreshold
}

// addCap appends a cap of the given style at P.  T points away from the
// stroke.
func (s *stroker) addCap(P, T vec.Vec2, style graphics.LineCapStyle) {
	d := s.d
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch style {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		s.outline = append(s.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		// half circle from +N through T to -N
		s.addArc(P, N, -math.Pi, true)
	}
}

// innerCorner returns the point where the two offset lines on the inner
// side of the corner between seg and next intersect.  The intersection is
// only used if it lies within the extent of both segments.
func innerCorner(P vec.Vec2, seg, next *strokeSegment, d float64, positive bool) (vec.Vec2, bool) {
	T1, T2 := seg.T, next.T
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}
	cosHalf := math.Sqrt((1 + cosTheta) / 2)
	if cosHalf < 1e-9 {
		return vec.Vec2{}, false
	}

	dir := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
	if !positive {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	offset := dir.Mul(d / cosHalf / l)

	reach := min(seg.B.Sub(seg.A).Length(), next.B.Sub(next.A).Length())
	if math.Abs(offset.Dot(T1)) > reach || math.Abs(offset.Dot(T2)) > reach {
		return vec.Vec2{}, false
	}
	return P.Add(offset), true
}

// addInnerCorner appends the inner side of the corner at P, where seg is
// followed by next.  If the offset lines intersect close to P, only the
// intersection is added.  Otherwise the path runs from one offset point
// through P to the other, and the non-zero fill covers the overlap.  The
// last point added is always the offset point of the segment which comes
// next in outline order.
func (s *stroker) addInnerCorner(P vec.Vec2, seg, next *strokeSegment, positive bool) {
	if pt, ok := innerCorner(P, seg, next, s.d, positive); ok {
		s.outline = append(s.outline, pt)
		return
	}
	if positive {
		s.outline = append(s.outline, P.Add(seg.N.Mul(s.d)), P, P.Add(next.N.Mul(s.d)))
	} else {
		s.outline = append(s.outline, P.Sub(next.N.Mul(s.d)), P, P.Sub(seg.N.Mul(s.d)))
	}
}

// addJoin appends the outer side of the join at P, where the direction
// changes from T1 to T2.  The offset points on either side of the join are
// added by the caller.
func (s *stroker) addJoin(P, T1, T2 vec.Vec2, positive bool) {
	d := s.d
	cosTheta := T1.Dot(T2)
	sinTheta := cross(T1, T2)

	// The contour reverses direction.  Cusps are capped; round joins
	// always give a round end.
	if cosTheta < cuspCosineThreshold {
		style := s.cap
		if s.join == graphics.LineJoinRound {
			style = graphics.LineCapRound
		}
		s.addCap(P, T1, style)
		s.addCap(P, T2.Mul(-1), style)
		return
	}
	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold {
		return
	}

	switch s.join {
	case graphics.LineJoinMiter:
		// The miter length, relative to the stroke width, is 1/sin(φ/2)
		// where φ is the angle between the two segments.
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		if sinHalf > 0 && 1/sinHalf <= s.miterLimit+miterEpsilon {
			bisector := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
			if !positive {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				s.outline = append(s.outline, P.Add(bisector.Mul(d/sinHalf/l)))
			}
		}

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if positive {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sinTheta > 0 {
				s.addArc(P, N1, angle, false)
			} else {
				s.addArc(P, N1, -angle, false)
			}
		} else {
			N2 := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sinTheta > 0 {
				s.addArc(P, N2, -angle, false)
			} else {
				s.addArc(P, N2, angle, false)
			}
		}
	}
	// Bevel joins need no extra points.
}

// addArc appends points on the circle of radius s.d around center.  The
// arc starts in direction startDir (a unit vector) and sweeps by the given
// angle, counter-clockwise for positive angles.
func (s *stroker) addArc(center, startDir vec.Vec2, sweep float64, includeStart bool) {
	n := s.arcSteps(math.Abs(sweep))
	dt := sweep / float64(n)
	i0 := 0
	if !includeStart {
		i0 = 1
	}
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		s.outline = append(s.outline, center.Add(dir.Mul(s.d)))
	}
}

// arcSteps returns the number of chords used to approximate an arc with
// the given sweep angle.  The chords respect all flattening tolerances.
func (s *stroker) arcSteps(sweep float64) int {
	step := 2 * s.opt.MaxTanAngleDeviation
	if s.opt.MaxCordDeviation < s.d {
		// the sagitta of a chord spanning angle θ is d·(1-cos(θ/2))
		step = min(step, 2*math.Acos(1-s.opt.MaxCordDeviation/s.d))
	}
	if s.opt.StepDistance < 2*s.d {
		step = min(step, 2*math.Asin(s.opt.StepDistance/(2*s.d)))
	}
	if !(step > 0) {
		return maxArcSteps
	}
	n := int(math.Ceil(sweep / step))
	return max(1, min(n, maxArcSteps))
}

// addSquare appends a square centred at center, for a zero-length dash
// with square caps.
func (s *stroker) addSquare(center, T vec.Vec2) {
	d := s.d
	N := vec.Vec2{X: -T.Y, Y: T.X}
	s.outline = append(s.outline,
		center.Add(T.Mul(d)).Add(N.Mul(d)),
		center.Add(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Add(N.Mul(d)),
	)
}

// applyDashPattern splits the flattened subpaths into dashes.  The result
// is stored in s.dashedSegs and s.dashes.
func (s *stroker) applyDashPattern() {
	s.dashedSegs = s.dashedSegs[:0]
	s.dashes = s.dashes[:0]

	dash := s.pattern
	dashLen := len(dash)

	// odd-length patterns are repeated twice, so that dashes and gaps alternate
	patternLen := 0.0
	for _, d := range dash {
		patternLen += d
	}
	if dashLen%2 == 1 {
		patternLen *= 2
	}

	phase := math.Mod(s.phase, patternLen)
	if phase < 0 {
		phase += patternLen
	}

	for sp := range s.segsOffsets {
		segments := subslice(s.segs, s.segsOffsets, sp)
		closed := s.subpathClosed[sp]
		firstDash := len(s.dashes)

		dashIdx := 0
		dist := phase
		for dist >= dash[dashIdx%dashLen] && dash[dashIdx%dashLen] > 0 {
			dist -= dash[dashIdx%dashLen]
			dashIdx++
		}
		remaining := dash[dashIdx%dashLen] - dist
		isOn := dashIdx%2 == 0

		if isOn && remaining == 0 {
			seg := segments[0]
			s.dashedSegs = append(s.dashedSegs, strokeSegment{A: seg.A, B: seg.A, T: seg.T, N: seg.N})
			s.dashes = append(s.dashes, [2]int{len(s.dashedSegs) - 1, len(s.dashedSegs)})
			dashIdx++
			remaining = dash[dashIdx%dashLen]
			isOn = dashIdx%2 == 0
		}

		startedOn := isOn
		firstDashStart, firstDashEnd := -1, -1

		dashStart := len(s.dashedSegs)
		segIdx := 0
		segDist := 0.0
		for segIdx < len(segments) {
			seg := segments[segIdx]
			segLen := seg.B.Sub(seg.A).Length()
			segRemaining := segLen - segDist

			if remaining >= segRemaining {
				// the current dash or gap covers the rest of the segment
				if isOn {
					if segDist > 0 {
						startPt := seg.A.Add(seg.B.Sub(seg.A).Mul(segDist / segLen))
						s.dashedSegs = append(s.dashedSegs, strokeSegment{A: startPt, B: seg.B, T: seg.T, N: seg.N})
					} else {
						s.dashedSegs = append(s.dashedSegs, seg)
					}
				}
				remaining -= segRemaining
				segIdx++
				segDist = 0
				continue
			}

			endDist := segDist + remaining
			splitPt := seg.A.Add(seg.B.Sub(seg.A).Mul(endDist / segLen))
			if isOn {
				startPt := seg.A.Add(seg.B.Sub(seg.A).Mul(segDist / segLen))
				if splitPt.Sub(startPt).Length() > zeroLengthThreshold {
					s.dashedSegs = append(s.dashedSegs, strokeSegment{A: startPt, B: splitPt, T: seg.T, N: seg.N})
				} else if len(s.dashedSegs) == dashStart {
					s.dashedSegs = append(s.dashedSegs, strokeSegment{A: startPt, B: startPt, T: seg.T, N: seg.N})
				}

				if firstDashStart < 0 && len(s.dashedSegs) > dashStart {
					firstDashStart = dashStart
					firstDashEnd = len(s.dashedSegs)
				}
				if len(s.dashedSegs) > dashStart {
					s.dashes = append(s.dashes, [2]int{dashStart, len(s.dashedSegs)})
					dashStart = len(s.dashedSegs)
				}
			}

			segDist = endDist
			dashIdx++
			remaining = dash[dashIdx%dashLen]
			isOn = dashIdx%2 == 0
		}

		if len(s.dashedSegs) > dashStart {
			// On closed contours, the last dash continues into the first one.
			if closed && startedOn && isOn && firstDashStart >= 0 {
				s.dashedSegs = append(s.dashedSegs, s.dashedSegs[firstDashStart:firstDashEnd]...)
				if idx := slices.Index(s.dashes[firstDash:], [2]int{firstDashStart, firstDashEnd}); idx >= 0 {
					s.dashes = slices.Delete(s.dashes, firstDash+idx, firstDash+idx+1)
				}
			}
			s.dashes = append(s.dashes, [2]int{dashStart, len(s.dashedSegs)})
		}
	}
}

// Numerical tolerances for stroking.
const (
	// zeroLengthThreshold is the length below which a segment is ignored.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the |sin θ| below which two consecutive
	// segments are treated as collinear.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold is the cos θ below which the contour is treated
	// as reversing direction.  Cusps get caps on both sides instead of a
	// join.
	cuspCosineThreshold = -0.9999

	miterEpsilon = 1e-10

	// maxArcSteps bounds the number of chords for a single arc.
	maxArcSteps = 256
)
