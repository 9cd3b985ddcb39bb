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
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestStraightLineTwoPoints(t *testing.T) {
	a := vec.Vec2{X: 1, Y: 2}
	b := vec.Vec2{X: 31, Y: -8}
	seg := Line(a, b)
	c := Cubic{seg.P0, seg.P1, seg.P2, b}

	tolerances := []float64{1, 1e-3, 1e-9}
	for _, tol := range tolerances {
		f := NewFlattener(Options{
			StepDistance:         1000,
			MaxCordDeviation:     tol,
			MaxTanAngleDeviation: tol,
			SamplingStepSize:     0.01,
		})
		var pts []vec.Vec2
		for p := range f.Curve(c) {
			pts = append(pts, p)
		}
		if len(pts) != 2 {
			t.Fatalf("tol=%g: got %d points, want 2", tol, len(pts))
		}
		if pts[0] != a || pts[1] != b {
			t.Errorf("tol=%g: got %v, want [%v %v]", tol, pts, a, b)
		}
	}
}

func TestStepDistanceSplitsLines(t *testing.T) {
	seg := Line(vec.Vec2{}, vec.Vec2{X: 10})
	c := Cubic{seg.P0, seg.P1, seg.P2, vec.Vec2{X: 10}}
	f := NewFlattener(Options{
		StepDistance:         3,
		MaxCordDeviation:     1,
		MaxTanAngleDeviation: 1,
		SamplingStepSize:     0.01,
	})
	var pts []vec.Vec2
	for p := range f.Curve(c) {
		pts = append(pts, p)
	}
	// 10 → 5 → 2.5: four pieces
	if len(pts) != 5 {
		t.Fatalf("got %d points, want 5", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if d := pts[i].Sub(pts[i-1]).Length(); d > 3+1e-9 {
			t.Errorf("chord %d has length %g", i, d)
		}
	}
}

func TestFlattenTolerances(t *testing.T) {
	// quarter circle, radius 100
	const k = 0.5522847498
	c := Cubic{
		{X: 100, Y: 0},
		{X: 100, Y: 100 * k},
		{X: 100 * k, Y: 100},
		{X: 0, Y: 100},
	}
	opt := Options{
		StepDistance:         20,
		MaxCordDeviation:     0.05,
		MaxTanAngleDeviation: 0.05,
		SamplingStepSize:     0.01,
	}
	f := NewFlattener(opt)
	var pts []vec.Vec2
	for p := range f.Curve(c) {
		pts = append(pts, p)
	}
	if f.Capped != 0 {
		t.Errorf("depth cap hit %d times", f.Capped)
	}
	if pts[0] != c[0] || pts[len(pts)-1] != c[3] {
		t.Errorf("end points not preserved")
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if d := b.Sub(a).Length(); d > opt.StepDistance+1e-9 {
			t.Errorf("chord %d: length %g", i, d)
		}
		// all points lie on the circle, so the sagitta is the deviation
		mid := a.Add(b).Mul(0.5)
		if dev := 100 - mid.Length(); dev > opt.MaxCordDeviation {
			t.Errorf("chord %d: deviation %g", i, dev)
		}
		if i > 1 {
			prev := pts[i-1].Sub(pts[i-2])
			if ang := angleBetween(prev, b.Sub(a)); ang > 2*opt.MaxTanAngleDeviation {
				t.Errorf("chord %d: turn angle %g", i, ang)
			}
		}
	}
}

func TestCurveIsRestartable(t *testing.T) {
	c := Cubic{{X: 0, Y: 0}, {X: 0, Y: 50}, {X: 50, Y: 50}, {X: 50, Y: 0}}
	f := NewFlattener(DefaultOptions())
	seq := f.Curve(c)

	var first, second []vec.Vec2
	for p := range seq {
		first = append(first, p)
	}
	for p := range seq {
		second = append(second, p)
	}
	if len(first) != len(second) {
		t.Fatalf("got %d and %d points", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs: %v vs %v", i, first[i], second[i])
		}
	}

	// early exit must not panic
	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
}

func TestDepthCap(t *testing.T) {
	// A loop: start and end coincide, far away control points.
	c := Cubic{{X: 0, Y: 0}, {X: 1e6, Y: 1e6}, {X: -1e6, Y: 1e6}, {X: 0, Y: 0}}
	f := &Flattener{
		Options: Options{
			StepDistance:         math.Inf(1),
			MaxCordDeviation:     1e-12,
			MaxTanAngleDeviation: 1e-12,
			SamplingStepSize:     0.01,
		},
		MaxDepth: 4,
	}
	n := 0
	for range f.Curve(c) {
		n++
	}
	if n != 1+1<<4 {
		t.Errorf("got %d points, want %d", n, 1+1<<4)
	}
	if f.Capped == 0 {
		t.Error("depth cap not reported")
	}
}

func TestDegenerateCurve(t *testing.T) {
	p := vec.Vec2{X: 3, Y: 4}
	f := NewFlattener(DefaultOptions())
	n := 0
	for range f.Curve(Cubic{p, p, p, p}) {
		n++
	}
	if n != 2 {
		t.Errorf("got %d points, want 2", n)
	}
	if f.Capped != 0 {
		t.Error("degenerate curve must not hit the depth cap")
	}
}

func TestContourSquare(t *testing.T) {
	corners := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	c := &Contour{Closed: true}
	for i, a := range corners {
		c.Segments = append(c.Segments, Line(a, corners[(i+1)%4]))
	}
	f := NewFlattener(Options{
		StepDistance:         1000,
		MaxCordDeviation:     0.05,
		MaxTanAngleDeviation: 0.05,
		SamplingStepSize:     0.01,
	})
	pts := f.Contour(c)
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4: %v", len(pts), pts)
	}
	for i := range corners {
		if pts[i] != corners[i] {
			t.Errorf("point %d: got %v, want %v", i, pts[i], corners[i])
		}
	}
}

func TestOpenContour(t *testing.T) {
	// Two segments of an open contour describe one curve.
	c := &Contour{Segments: []Segment{
		{P0: vec.Vec2{X: 0}, P1: vec.Vec2{X: 1, Y: 2}, P2: vec.Vec2{X: 3, Y: 2}},
		{P0: vec.Vec2{X: 4}},
	}}
	if n := c.NumCurves(); n != 1 {
		t.Fatalf("got %d curves, want 1", n)
	}
	pts := NewFlattener(DefaultOptions()).Contour(c)
	if pts[0] != (vec.Vec2{}) || pts[len(pts)-1] != (vec.Vec2{X: 4}) {
		t.Errorf("unexpected end points %v, %v", pts[0], pts[len(pts)-1])
	}

	single := &Contour{Segments: []Segment{{P0: vec.Vec2{X: 7}}}}
	if pts := NewFlattener(DefaultOptions()).Contour(single); len(pts) != 1 {
		t.Errorf("single point contour: got %v", pts)
	}
}

func TestSplit(t *testing.T) {
	c := Cubic{{X: 0, Y: 0}, {X: 1, Y: 3}, {X: 4, Y: 3}, {X: 5, Y: 0}}
	left, right := c.Split(0.5)
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		want := c.Eval(tt / 2)
		if d := left.Eval(tt).Sub(want).Length(); d > 1e-12 {
			t.Errorf("left half at %g: off by %g", tt, d)
		}
		want = c.Eval(0.5 + tt/2)
		if d := right.Eval(tt).Sub(want).Length(); d > 1e-12 {
			t.Errorf("right half at %g: off by %g", tt, d)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatal(err)
	}
	inf := DefaultOptions()
	inf.StepDistance = math.Inf(1)
	if err := inf.Validate(); err != nil {
		t.Errorf("infinite step distance rejected: %v", err)
	}

	bad := []Options{
		{StepDistance: 0, MaxCordDeviation: 1, MaxTanAngleDeviation: 1, SamplingStepSize: 1},
		{StepDistance: 1, MaxCordDeviation: -1, MaxTanAngleDeviation: 1, SamplingStepSize: 1},
		{StepDistance: 1, MaxCordDeviation: 1, MaxTanAngleDeviation: math.NaN(), SamplingStepSize: 1},
		{StepDistance: 1, MaxCordDeviation: 1, MaxTanAngleDeviation: 1},
	}
	for i, o := range bad {
		if err := o.Validate(); !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("%d: got %v, want ErrInvalidOptions", i, err)
		}
	}
}
