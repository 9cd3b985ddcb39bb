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
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess/bezier"
)

// clipped returns a node which draws d, clipped by the given drawables.
func clipped(d Drawable, clip ...Drawable) *Node {
	n := (&Node{}).Add(d)
	n.Clipper = (&Node{}).Add(clip...)
	return n
}

func totalArea(geoms []Geometry) float64 {
	var a float64
	for i := range geoms {
		a += geoms[i].Area()
	}
	return a
}

func TestClipArea(t *testing.T) {
	ring := &Shape{
		Contours: []bezier.Contour{
			RectangleContour(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}, Radii{}),
			RectangleContour(rect.Rect{LLx: 2, LLy: 2, URx: 8, URy: 8}, Radii{}),
		},
		Fill: SolidFill{Mode: EvenOdd},
	}

	cases := []struct {
		name string
		node *Node
		area float64
	}{
		{
			name: "contained",
			node: clipped(square(2, 2, 4, 4, Red), square(0, 0, 10, 10, Black)),
			area: 4,
		},
		{
			name: "disjoint",
			node: clipped(square(20, 20, 30, 30, Red), square(0, 0, 10, 10, Black)),
			area: 0,
		},
		{
			name: "partial",
			node: clipped(square(0, 0, 10, 10, Red), square(5, -5, 15, 5, Black)),
			area: 25,
		},
		{
			name: "union of clip shapes",
			node: clipped(square(0, 0, 10, 10, Red),
				square(0, 0, 2, 10, Black), square(8, 0, 10, 10, Black)),
			area: 40,
		},
		{
			name: "overlapping clip shapes",
			node: clipped(square(0, 0, 10, 10, Red),
				square(0, 0, 6, 10, Black), square(4, 0, 10, 10, Black)),
			area: 100,
		},
		{
			name: "triangle",
			node: clipped(square(0, 0, 10, 10, Red), Polygon{
				Points: []vec.Vec2{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 0, Y: 20}},
				Closed: true,
			}),
			area: 100,
		},
		{
			name: "diagonal",
			node: clipped(square(0, 0, 10, 10, Red), Polygon{
				Points: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}},
				Closed: true,
			}),
			area: 50,
		},
		{
			name: "even-odd ring",
			node: clipped(square(0, 0, 10, 10, Red), ring),
			area: 64,
		},
		{
			name: "stroke",
			node: clipped(Polygon{
				Points: []vec.Vec2{{X: -5, Y: 5}, {X: 15, Y: 5}},
				Stroke: &Stroke{Color: Red, HalfThickness: 1},
			}, square(0, 0, 10, 10, Black)),
			area: 20,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tess := NewTessellator(testOptions)
			geoms, err := tess.Tessellate(tc.node.scene())
			if err != nil {
				t.Fatal(err)
			}
			if got := totalArea(geoms); math.Abs(got-tc.area) > 1e-9 {
				t.Errorf("area = %g, want %g", got, tc.area)
			}
			if tc.area == 0 && len(geoms) != 0 {
				t.Errorf("got %d empty geometries", len(geoms))
			}
			if n := len(tess.Warnings()); n != 0 {
				t.Errorf("got %d warnings", n)
			}
		})
	}
}

func TestClipContainedUnchanged(t *testing.T) {
	circle := Circle{Center: vec.Vec2{X: 5, Y: 5}, Radius: 3, Fill: SolidFill{Color: Red}}
	plain, err := TessellateScene((&Node{}).Add(circle).scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	clip, err := TessellateScene(clipped(circle, square(0, 0, 10, 10, Black)).scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(plain) != 1 || len(clip) != 1 {
		t.Fatalf("got %d and %d geometries", len(plain), len(clip))
	}
	if !slices.Equal(plain[0].Vertices, clip[0].Vertices) || !slices.Equal(plain[0].Indices, clip[0].Indices) {
		t.Errorf("geometry inside the clip region was modified")
	}
}

func TestClipNested(t *testing.T) {
	inner := clipped(square(0, 0, 10, 10, Red), square(5, 0, 20, 20, Black))
	outer := (&Node{}).AddChild(inner)
	outer.Clipper = (&Node{}).Add(square(0, 5, 20, 20, Black))
	root := (&Node{}).AddChild(outer)

	geoms, err := TessellateScene(root.scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if got := totalArea(geoms); math.Abs(got-25) > 1e-9 {
		t.Errorf("area = %g, want 25", got)
	}
	for i := range geoms {
		b := geoms[i].Bounds()
		if b.LLx < 5-1e-9 || b.LLy < 5-1e-9 {
			t.Errorf("bounds %v extend outside the clip region", b)
		}
	}
}

func TestClipperTransform(t *testing.T) {
	// The clipper is positioned relative to the clipped node, and moves
	// together with it.
	n := clipped(square(0, 0, 10, 10, Red), square(0, 0, 4, 4, Black))
	n.Transform = matrix.Identity.Translate(100, 0)
	n.Clipper.Transform = matrix.Identity.Translate(3, 3)
	root := (&Node{}).AddChild(n)

	geoms, err := TessellateScene(root.scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
	b := geoms[0].Bounds()
	want := rect.Rect{LLx: 103, LLy: 3, URx: 107, URy: 7}
	if math.Abs(b.LLx-want.LLx)+math.Abs(b.LLy-want.LLy)+
		math.Abs(b.URx-want.URx)+math.Abs(b.URy-want.URy) > 1e-9 {
		t.Errorf("bounds = %v, want %v", b, want)
	}
}

func TestClipInterpolatesUVs(t *testing.T) {
	gf := &GradientFill{
		Type:  Linear,
		Stops: []GradientStop{{Color: Red, Percentage: 0}, {Color: Blue, Percentage: 1}},
	}
	r := Rectangle{Rect: rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}, Fill: gf}
	geoms, err := TessellateScene(clipped(r, square(0, 0, 5, 10, Black)).scene(), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
	g := &geoms[0]
	if len(g.UVs) != len(g.Vertices) {
		t.Fatalf("%d UVs for %d vertices", len(g.UVs), len(g.Vertices))
	}
	for i, p := range g.Vertices {
		want := vec.Vec2{X: p.X / 10, Y: p.Y / 10}
		if g.UVs[i].Sub(want).Length() > 1e-9 {
			t.Errorf("vertex %v: uv = %v, want %v", p, g.UVs[i], want)
		}
	}
}

func TestClipRegionApply(t *testing.T) {
	tess := NewTessellator(testOptions)
	clipper := (&Node{}).Add(square(0, 0, 1, 1, Black))
	r, err := tess.newClipRegion(clipper, matrix.Identity)
	if err != nil {
		t.Fatal(err)
	}
	if r.empty() {
		t.Fatal("clip region is empty")
	}

	// a triangle with one vertex inside the region
	g := &Geometry{
		Vertices: []vec.Vec2{{X: 0.5, Y: 0.5}, {X: 3, Y: 0.5}, {X: 0.5, Y: 3}},
		Indices:  []uint32{0, 1, 2},
	}
	r.apply(g)
	if got := g.Area(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("area = %g, want 0.25", got)
	}
	for k := range g.NumTriangles() {
		a, b, c := g.triangle(k)
		if cross(b.Sub(a), c.Sub(a)) <= 0 {
			t.Errorf("triangle %d is not positively oriented", k)
		}
	}
}
