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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// clipRegion is the visible area defined by a clipper node, in scene
// coordinates.  The area is stored both as a set of outlines (for point
// and crossing tests) and as a decomposition into convex pieces (for
// clipping).
type clipRegion struct {
	tz     trapezoider
	pieces []piece
	bbox   rect.Rect
}

// newClipRegion computes the union of the filled areas of all shapes of
// the clipper subtree.  world is the transform of the clipped node.
func (t *Tessellator) newClipRegion(clipper *Node, world matrix.Matrix) (*clipRegion, error) {
	r := &clipRegion{}
	err := walkNodes(clipper, world, make(map[*Node]bool), func(n *Node, m matrix.Matrix) error {
		for _, sh := range n.Shapes {
			if sh == nil {
				continue
			}
			rule := NonZero
			if sh.Fill != nil {
				rule = sh.Fill.fillMode()
			}
			t.flattenShape(sh)
			owner := r.tz.addOwner(rule)
			for _, c := range t.contours {
				pts := t.points[c.start:c.end]
				for i := range pts {
					pts[i] = apply(m, pts[i])
				}
				r.tz.addPolygon(pts, owner)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.pieces = append([]piece(nil), r.tz.decompose()...)
	first := true
	for i := range r.pieces {
		for _, p := range r.pieces[i].verts() {
			if first {
				r.bbox = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
				first = false
				continue
			}
			r.bbox.LLx = min(r.bbox.LLx, p.X)
			r.bbox.LLy = min(r.bbox.LLy, p.Y)
			r.bbox.URx = max(r.bbox.URx, p.X)
			r.bbox.URy = max(r.bbox.URy, p.Y)
		}
	}
	return r, nil
}

// empty reports whether the region has no area.
func (r *clipRegion) empty() bool {
	return len(r.pieces) == 0
}

// clipVertex is a mesh vertex together with its texture coordinates.
type clipVertex struct {
	P, UV vec.Vec2
}

func (a clipVertex) lerp(b clipVertex, t float64) clipVertex {
	return clipVertex{
		P:  a.P.Add(b.P.Sub(a.P).Mul(t)),
		UV: a.UV.Add(b.UV.Sub(a.UV).Mul(t)),
	}
}

// apply restricts g to the region.  Triangles fully inside the region are
// kept unchanged, triangles outside are dropped, and triangles crossing
// the boundary are cut into pieces.  If every triangle is inside, g is not
// modified at all.
func (r *clipRegion) apply(g *Geometry) {
	if r.empty() {
		g.Vertices, g.UVs, g.Indices = nil, nil, nil
		return
	}

	n := len(g.Indices) / 3
	status := make([]clipStatus, n)
	allInside := true
	for k := range n {
		a, b, c := g.triangle(k)
		status[k] = r.classify(a, b, c)
		if status[k] != clipInside {
			allInside = false
		}
	}
	if allInside {
		return
	}

	hasUV := len(g.UVs) == len(g.Vertices)
	out := &clipBuilder{lookup: make(map[clipVertex]uint32)}
	poly := make([]clipVertex, 3)
	for k := range n {
		if status[k] == clipOutside {
			continue
		}
		for j := range 3 {
			i := g.Indices[3*k+j]
			poly[j] = clipVertex{P: g.Vertices[i]}
			if hasUV {
				poly[j].UV = g.UVs[i]
			}
		}
		if status[k] == clipInside {
			out.fan(poly)
			continue
		}

		tb := triangleBBox(poly[0].P, poly[1].P, poly[2].P)
		for i := range r.pieces {
			pc := &r.pieces[i]
			if !overlaps(tb, pieceBBox(pc)) {
				continue
			}
			out.fan(clipConvex(poly, pc))
		}
	}

	g.Vertices = out.verts
	g.Indices = out.idx
	if hasUV {
		g.UVs = out.uvs
	} else {
		g.UVs = nil
	}
}

type clipStatus int

const (
	clipCrossing clipStatus = iota
	clipInside
	clipOutside
)

// classify determines the position of the triangle abc relative to the
// region.  Triangles which cannot be proven to lie on one side are
// reported as crossing.
func (r *clipRegion) classify(a, b, c vec.Vec2) clipStatus {
	tb := triangleBBox(a, b, c)
	if !overlaps(tb, r.bbox) {
		return clipOutside
	}
	if !r.tz.contains(a) || !r.tz.contains(b) || !r.tz.contains(c) {
		return clipCrossing
	}
	tri := [3]vec.Vec2{a, b, c}
	for _, s := range r.tz.bounds {
		if !overlaps(tb, segmentBBox(s[0], s[1])) {
			continue
		}
		// A boundary point inside the triangle means a hole or a notch.
		if strictlyInside(s[0], tri) || strictlyInside(s[1], tri) {
			return clipCrossing
		}
		for j := range 3 {
			if properCrossing(tri[j], tri[(j+1)%3], s[0], s[1]) {
				return clipCrossing
			}
		}
	}
	return clipInside
}

// clipConvex intersects the polygon poly with the convex piece pc
// (Sutherland-Hodgman).  Texture coordinates are interpolated linearly.
func clipConvex(poly []clipVertex, pc *piece) []clipVertex {
	in := poly
	verts := pc.verts()
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		e := b.Sub(a)
		out := make([]clipVertex, 0, len(in)+2)
		for j := range in {
			cur, next := in[j], in[(j+1)%len(in)]
			dc := cross(e, cur.P.Sub(a))
			dn := cross(e, next.P.Sub(a))
			if dc >= 0 {
				out = append(out, cur)
			}
			if (dc >= 0) != (dn >= 0) {
				out = append(out, cur.lerp(next, dc/(dc-dn)))
			}
		}
		if len(out) < 3 {
			return nil
		}
		in = out
	}
	return in
}

// clipBuilder collects the clipped triangles.  Vertices with identical
// position and texture coordinates are shared.
type clipBuilder struct {
	verts  []vec.Vec2
	uvs    []vec.Vec2
	idx    []uint32
	lookup map[clipVertex]uint32
}

func (b *clipBuilder) vertex(v clipVertex) uint32 {
	if i, ok := b.lookup[v]; ok {
		return i
	}
	i := uint32(len(b.verts))
	b.verts = append(b.verts, v.P)
	b.uvs = append(b.uvs, v.UV)
	b.lookup[v] = i
	return i
}

func (b *clipBuilder) fan(poly []clipVertex) {
	for i := 2; i < len(poly); i++ {
		p0, p1, p2 := poly[0], poly[i-1], poly[i]
		if math.Abs(cross(p1.P.Sub(p0.P), p2.P.Sub(p0.P))) <= 2*degenerateArea {
			continue
		}
		b.idx = append(b.idx, b.vertex(p0), b.vertex(p1), b.vertex(p2))
	}
}

// properCrossing reports whether the segments pq and ab cross at a single
// point which is interior to both.
func properCrossing(p, q, a, b vec.Vec2) bool {
	d1 := cross(q.Sub(p), a.Sub(p))
	d2 := cross(q.Sub(p), b.Sub(p))
	d3 := cross(b.Sub(a), p.Sub(a))
	d4 := cross(b.Sub(a), q.Sub(a))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// strictlyInside reports whether p lies in the interior of the triangle.
func strictlyInside(p vec.Vec2, tri [3]vec.Vec2) bool {
	var pos, neg bool
	for j := range 3 {
		d := cross(tri[(j+1)%3].Sub(tri[j]), p.Sub(tri[j]))
		switch {
		case d > 0:
			pos = true
		case d < 0:
			neg = true
		default:
			return false
		}
	}
	return pos != neg
}

func triangleBBox(a, b, c vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: min(a.X, b.X, c.X),
		LLy: min(a.Y, b.Y, c.Y),
		URx: max(a.X, b.X, c.X),
		URy: max(a.Y, b.Y, c.Y),
	}
}

func segmentBBox(a, b vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: min(a.X, b.X),
		LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X),
		URy: max(a.Y, b.Y),
	}
}

func pieceBBox(pc *piece) rect.Rect {
	v := pc.verts()
	r := segmentBBox(v[0], v[1])
	for _, p := range v[2:] {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return r
}

// overlaps reports whether two closed rectangles have a point in common.
func overlaps(a, b rect.Rect) bool {
	return a.LLx <= b.URx && b.LLx <= a.URx && a.LLy <= b.URy && b.LLy <= a.URy
}
