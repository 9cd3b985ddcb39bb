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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Geometry is a triangle mesh produced by tessellating the fill or the
// stroke of one shape.  Vertices are in scene coordinates.
type Geometry struct {
	Vertices []vec.Vec2

	// UVs holds one gradient-space coordinate per vertex, for gradient
	// fills.  For solid fills and strokes, UVs is nil.
	UVs []vec.Vec2

	// Indices lists the triangles, three vertex indices per triangle.
	// All triangles are positively oriented.
	Indices []uint32

	// Color is the vertex colour.  For gradient fills this is White, and
	// the colours are taken from the gradient atlas.
	Color Color

	// Fill is the fill of the source shape, for fill geometries.
	Fill Fill

	// Stroke is the stroke of the source shape, for stroke geometries.
	Stroke *Stroke

	// Shape is the shape this geometry was generated from.
	Shape *Shape

	// WorldTransform is the transform of the node which owns Shape.
	WorldTransform matrix.Matrix
}

// NumTriangles returns the number of triangles in g.
func (g *Geometry) NumTriangles() int {
	return len(g.Indices) / 3
}

// Gradient returns the gradient fill of g, or nil if g is not filled with
// a gradient.
func (g *Geometry) Gradient() *GradientFill {
	gf, _ := g.Fill.(*GradientFill)
	return gf
}

func (g *Geometry) triangle(k int) (a, b, c vec.Vec2) {
	return g.Vertices[g.Indices[3*k]], g.Vertices[g.Indices[3*k+1]], g.Vertices[g.Indices[3*k+2]]
}

// Area returns the total area covered by the triangles of g.  Overlapping
// triangles are counted multiple times.
func (g *Geometry) Area() float64 {
	var area float64
	for k := range g.NumTriangles() {
		a, b, c := g.triangle(k)
		area += abs(cross(b.Sub(a), c.Sub(a))) / 2
	}
	return area
}

// Bounds returns the bounding box of the vertices of g.  The result is the
// zero rectangle if g has no vertices.
func (g *Geometry) Bounds() rect.Rect {
	if len(g.Vertices) == 0 {
		return rect.Rect{}
	}
	p := g.Vertices[0]
	r := rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
	for _, p := range g.Vertices[1:] {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return r
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
