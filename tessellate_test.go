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
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess/bezier"
)

var testOptions = TessellationOptions{
	StepDistance:         math.MaxFloat64,
	MaxCordDeviation:     0.01,
	MaxTanAngleDeviation: math.Pi / 2,
	SamplingStepSize:     0.01,
}

func square(x0, y0, x1, y1 float64, c Color) Rectangle {
	return Rectangle{
		Rect: rect.Rect{LLx: x0, LLy: y0, URx: x1, URy: y1},
		Fill: SolidFill{Color: c},
	}
}

func TestFilledAndStrokedSquare(t *testing.T) {
	r := square(0, 0, 10, 10, Red)
	r.Stroke = &Stroke{Color: Blue, HalfThickness: 0.5}
	s := &Scene{Root: (&Node{}).Add(r)}

	geoms, err := TessellateScene(s, testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 2 {
		t.Fatalf("got %d geometries, want 2", len(geoms))
	}

	fill, stroke := &geoms[0], &geoms[1]
	if fill.Fill == nil || fill.Stroke != nil || fill.Color != Red {
		t.Errorf("first geometry is not the fill: %+v", fill)
	}
	if len(fill.Vertices) != 4 || fill.NumTriangles() != 2 {
		t.Errorf("fill: %d vertices, %d triangles", len(fill.Vertices), fill.NumTriangles())
	}
	if a := fill.Area(); math.Abs(a-100) > 1e-9 {
		t.Errorf("fill area = %g, want 100", a)
	}
	if fill.UVs != nil {
		t.Errorf("solid fill has UVs")
	}

	if stroke.Stroke == nil || stroke.Color != Blue {
		t.Errorf("second geometry is not the stroke: %+v", stroke)
	}
	if a := stroke.Area(); math.Abs(a-40) > 1e-9 {
		t.Errorf("stroke area = %g, want 40", a)
	}
	b := stroke.Bounds()
	if math.Abs(b.LLx+0.5) > 1e-9 || math.Abs(b.URy-10.5) > 1e-9 {
		t.Errorf("stroke bounds = %v", b)
	}
	for _, g := range geoms {
		if g.Shape != s.Root.Shapes[0] {
			t.Errorf("wrong source shape")
		}
		if g.WorldTransform != matrix.Identity {
			t.Errorf("world transform = %v", g.WorldTransform)
		}
	}
}

func TestNearlyReversingStroke(t *testing.T) {
	// The contour turns back by slightly less than 180°.  The outline must
	// stay within half the thickness of the contour.
	s := &Scene{Root: (&Node{}).Add(Polygon{
		Points: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0.0001}},
		Stroke: &Stroke{Color: Black, HalfThickness: 1},
	})}
	geoms, err := TessellateScene(s, testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
	g := &geoms[0]
	want := rect.Rect{LLx: 0, LLy: -1, URx: 10, URy: 1}
	b := g.Bounds()
	if math.Abs(b.LLx-want.LLx) > 0.01 || math.Abs(b.LLy-want.LLy) > 0.01 ||
		math.Abs(b.URx-want.URx) > 0.01 || math.Abs(b.URy-want.URy) > 0.01 {
		t.Errorf("bounds = %v, want %v", b, want)
	}
	if a := g.Area(); math.Abs(a-20) > 0.01 {
		t.Errorf("area = %g, want 20", a)
	}
}

func TestTrianglesPositivelyOriented(t *testing.T) {
	sh := &Shape{
		Contours: []bezier.Contour{
			EllipseContour(vec.Vec2{X: 0, Y: 0}, 5, 3),
			EllipseContour(vec.Vec2{X: 1, Y: 0}, 1, 1),
		},
		Fill:   SolidFill{Color: Black, Mode: EvenOdd},
		Stroke: &Stroke{Color: Black, HalfThickness: 0.2},
	}
	s := &Scene{Root: (&Node{}).Add(sh)}
	geoms, err := TessellateScene(s, testOptions)
	if err != nil {
		t.Fatal(err)
	}
	for i := range geoms {
		g := &geoms[i]
		for k := range g.NumTriangles() {
			a, b, c := g.triangle(k)
			if cross(b.Sub(a), c.Sub(a)) <= 0 {
				t.Fatalf("geometry %d: triangle %d is not positively oriented", i, k)
			}
		}
		for _, idx := range g.Indices {
			if int(idx) >= len(g.Vertices) {
				t.Fatalf("geometry %d: index %d out of range", i, idx)
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	build := func() *Scene {
		child := &Node{Transform: matrix.RotateDeg(30)}
		child.Add(Circle{Center: vec.Vec2{X: 3, Y: 1}, Radius: 2, Fill: SolidFill{Color: Green}})
		root := (&Node{}).Add(
			Polygon{
				Points: []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 1}, {X: 1, Y: 5}, {X: 3, Y: -2}},
				Closed: true,
				Fill:   SolidFill{Color: Red},
				Stroke: &Stroke{Color: Black, HalfThickness: 0.3, Pattern: []float64{1, 0.5}},
			},
		)
		return root.AddChild(child).scene()
	}

	tess := NewTessellator(testOptions)
	a, err := tess.Tessellate(build())
	if err != nil {
		t.Fatal(err)
	}
	b, err := tess.Tessellate(build())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(a, b); d != "" {
		t.Errorf("results differ between runs (-first +second):\n%s", d)
	}
}

// scene wraps n into a scene, for use in tests.
func (n *Node) scene() *Scene {
	return &Scene{Root: n}
}

func TestTraversalOrder(t *testing.T) {
	c1 := Color{R: 0.1, A: 1}
	c2 := Color{R: 0.2, A: 1}
	c3 := Color{R: 0.3, A: 1}
	c4 := Color{R: 0.4, A: 1}

	grandchild := (&Node{}).Add(square(0, 0, 1, 1, c3))
	child := (&Node{}).Add(square(0, 0, 1, 1, c2)).AddChild(grandchild)
	sibling := (&Node{}).Add(square(0, 0, 1, 1, c4))
	root := (&Node{}).Add(square(0, 0, 1, 1, c1)).AddChild(child, nil, sibling)

	geoms, err := TessellateScene(root.scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	var got []Color
	for _, g := range geoms {
		got = append(got, g.Color)
	}
	want := []Color{c1, c2, c3, c4}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong order (-want +got):\n%s", d)
	}
}

func TestNodeTransforms(t *testing.T) {
	inner := &Node{Transform: matrix.Identity.Translate(5, 0)}
	inner.Add(square(0, 0, 1, 1, Red))
	outer := &Node{Transform: matrix.Scale(2, 3)}
	outer.AddChild(inner)
	root := (&Node{}).AddChild(outer)

	geoms, err := TessellateScene(root.scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
	g := &geoms[0]
	want := rect.Rect{LLx: 10, LLy: 0, URx: 12, URy: 3}
	if b := g.Bounds(); b != want {
		t.Errorf("bounds = %v, want %v", b, want)
	}
	if a := g.Area(); math.Abs(a-6) > 1e-9 {
		t.Errorf("area = %g, want 6", a)
	}
	if p := apply(g.WorldTransform, vec.Vec2{X: 1, Y: 1}); p != (vec.Vec2{X: 12, Y: 3}) {
		t.Errorf("world transform maps (1,1) to %v", p)
	}
}

func TestSharedChild(t *testing.T) {
	shared := (&Node{}).Add(square(0, 0, 1, 1, Red))
	a := (&Node{}).AddChild(shared)
	b := (&Node{Transform: matrix.Identity.Translate(10, 0)}).AddChild(shared)
	root := (&Node{}).AddChild(a, b)

	geoms, err := TessellateScene(root.scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 2 {
		t.Fatalf("got %d geometries, want 2", len(geoms))
	}
	if geoms[0].Bounds().LLx != 0 || geoms[1].Bounds().LLx != 10 {
		t.Errorf("bounds %v and %v", geoms[0].Bounds(), geoms[1].Bounds())
	}
}

func TestGradientUVs(t *testing.T) {
	gf := &GradientFill{
		Type:  Linear,
		Stops: []GradientStop{{Color: Red, Percentage: 0}, {Color: Blue, Percentage: 1}},
	}
	r := Rectangle{Rect: rect.Rect{LLx: 2, LLy: 4, URx: 12, URy: 8}, Fill: gf}
	geoms, err := TessellateScene((&Node{}).Add(r).scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
	g := &geoms[0]
	if g.Gradient() != gf || g.Color != White {
		t.Errorf("gradient geometry: %+v", g)
	}
	if len(g.UVs) != len(g.Vertices) {
		t.Fatalf("%d UVs for %d vertices", len(g.UVs), len(g.Vertices))
	}
	for i, p := range g.Vertices {
		want := vec.Vec2{X: (p.X - 2) / 10, Y: (p.Y - 4) / 4}
		if g.UVs[i].Sub(want).Length() > 1e-12 {
			t.Errorf("vertex %v: uv = %v, want %v", p, g.UVs[i], want)
		}
	}

	// The fill transform is applied after normalisation.
	r.FillTransform = matrix.Scale(2, 2)
	geoms, err = TessellateScene((&Node{}).Add(r).scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range geoms[0].Vertices {
		want := vec.Vec2{X: (p.X - 2) / 5, Y: (p.Y - 4) / 2}
		if geoms[0].UVs[i].Sub(want).Length() > 1e-12 {
			t.Errorf("vertex %v: uv = %v, want %v", p, geoms[0].UVs[i], want)
		}
	}
}

func TestErrors(t *testing.T) {
	cyclic := &Node{}
	cyclic.AddChild((&Node{}).AddChild(cyclic))

	clipper := &Node{}
	clipper.AddChild(clipper)
	clipCycle := &Node{Clipper: clipper}

	cases := []struct {
		name  string
		scene *Scene
		opt   TessellationOptions
		want  error
	}{
		{"nil scene", nil, testOptions, ErrInvalidSceneGraph},
		{"nil root", &Scene{}, testOptions, ErrInvalidSceneGraph},
		{"cycle", cyclic.scene(), testOptions, ErrInvalidSceneGraph},
		{"clipper cycle", clipCycle.scene(), testOptions, ErrInvalidSceneGraph},
		{"zero options", (&Node{}).scene(), TessellationOptions{}, ErrInvalidOptions},
		{"NaN option", (&Node{}).scene(), TessellationOptions{
			StepDistance:         1,
			MaxCordDeviation:     math.NaN(),
			MaxTanAngleDeviation: 1,
			SamplingStepSize:     1,
		}, ErrInvalidOptions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			geoms, err := TessellateScene(tc.scene, tc.opt)
			if !errors.Is(err, tc.want) {
				t.Errorf("got error %v, want %v", err, tc.want)
			}
			if geoms != nil {
				t.Errorf("got %d geometries", len(geoms))
			}
		})
	}
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tess := NewTessellator(testOptions)
	s := (&Node{}).Add(square(0, 0, 1, 1, Red)).scene()
	_, err := tess.TessellateContext(ctx, s)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}

	// the tessellator can be used again afterwards
	geoms, err := tess.Tessellate(s)
	if err != nil || len(geoms) != 1 {
		t.Errorf("got %d geometries, error %v", len(geoms), err)
	}
}

func TestWarnings(t *testing.T) {
	degenerate := &Shape{
		Contours: []bezier.Contour{PolygonContour([]vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}, true)},
		Fill:     SolidFill{Color: Red},
		Stroke:   &Stroke{Color: Red, HalfThickness: 0},
	}

	emptyClip := (&Node{}).Add(square(0, 0, 1, 1, Red))
	emptyClip.Clipper = (&Node{}).Add(&Shape{
		Contours: []bezier.Contour{PolygonContour([]vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}, true)},
	})

	root := (&Node{}).Add(degenerate).AddChild(emptyClip)
	tess := NewTessellator(testOptions)
	geoms, err := tess.Tessellate(root.scene())
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 0 {
		t.Errorf("got %d geometries, want 0", len(geoms))
	}

	var kinds []WarningKind
	for _, w := range tess.Warnings() {
		kinds = append(kinds, w.Kind)
	}
	want := []WarningKind{DegenerateInputIgnored, DegenerateInputIgnored, InvalidClipConfiguration}
	if !slices.Equal(kinds, want) {
		t.Errorf("got warnings %v, want %v", kinds, want)
	}
	if ws := tess.Warnings(); len(ws) > 0 && ws[0].Shape != degenerate {
		t.Errorf("warning refers to the wrong shape")
	}

	// warnings are reset by the next call
	if _, err := tess.Tessellate((&Node{}).scene()); err != nil {
		t.Fatal(err)
	}
	if n := len(tess.Warnings()); n != 0 {
		t.Errorf("got %d stale warnings", n)
	}
}

func TestToleranceUnreachable(t *testing.T) {
	opt := testOptions
	opt.MaxCordDeviation = 1e-9
	opt.MaxTanAngleDeviation = 1e-6
	tess := NewTessellator(opt, WithMaxDepth(2))

	s := (&Node{}).Add(Circle{Radius: 10, Fill: SolidFill{Color: Red}}).scene()
	geoms, err := tess.Tessellate(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 {
		t.Errorf("got %d geometries, want 1", len(geoms))
	}
	ws := tess.Warnings()
	if len(ws) != 1 || ws[0].Kind != ToleranceUnreachable {
		t.Errorf("got warnings %v", ws)
	}
}

func TestDefaultMiterLimit(t *testing.T) {
	// A 60° corner has a miter ratio of 2.  It is mitred by default, but
	// bevelled with a default limit of 1.5.
	pts := []vec.Vec2{{X: -10, Y: 0}, {X: 0, Y: 0}, {X: -5, Y: 5 * math.Sqrt(3)}}
	d := Polygon{Points: pts, Stroke: &Stroke{Color: Black, HalfThickness: 1}}
	s := (&Node{}).Add(d).scene()

	areas := make([]float64, 2)
	for i, limit := range []float64{0, 1.5} {
		geoms, err := NewTessellator(testOptions, WithMiterLimit(limit)).Tessellate(s)
		if err != nil {
			t.Fatal(err)
		}
		areas[i] = geoms[0].Area()
	}
	if !(areas[0] > areas[1]+0.1) {
		t.Errorf("areas %v: miter join not larger than bevel join", areas)
	}
}

func TestMirroredNode(t *testing.T) {
	n := &Node{Transform: matrix.Scale(-1, 1)}
	n.Add(Polygon{
		Points: []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}},
		Closed: true,
		Fill:   SolidFill{Color: Red},
	})
	geoms, err := TessellateScene((&Node{}).AddChild(n).scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
	g := &geoms[0]
	if b := g.Bounds(); b.LLx != -4 || b.URx != 0 {
		t.Errorf("bounds = %v", b)
	}
	for k := range g.NumTriangles() {
		a, b, c := g.triangle(k)
		if cross(b.Sub(a), c.Sub(a)) <= 0 {
			t.Errorf("triangle %d is not positively oriented", k)
		}
	}
}

func TestSquareExample(t *testing.T) {
	opt := TessellationOptions{
		StepDistance:         1000,
		MaxCordDeviation:     0.05,
		MaxTanAngleDeviation: 0.1,
		SamplingStepSize:     0.01,
	}
	sq := square(0, 0, 10, 10, Black).Shape()

	tess := NewTessellator(opt)
	tess.flattener = bezier.Flattener{Options: opt}
	tess.flattenShape(sq)
	if len(tess.points) != 4 || len(tess.contours) != 1 {
		t.Errorf("got %d points in %d contours, want 4 in 1", len(tess.points), len(tess.contours))
	}

	geoms, err := tess.Tessellate((&Node{}).Add(sq).scene())
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
	if n := geoms[0].NumTriangles(); n != 2 {
		t.Errorf("got %d triangles, want 2", n)
	}
	if a := geoms[0].Area(); math.Abs(a-100) > 1e-9 {
		t.Errorf("area = %g, want 100", a)
	}
}
