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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// The fill triangulation uses the same edge representation as a scanline
// rasteriser.  All y-coordinates where an edge starts, ends or crosses
// another edge are collected as events.  Between two consecutive events
// ("slab") no two edges cross, so the edges crossing the slab can be sorted
// by x and the fill rule selects the spans between them which are inside.
// Each span is a trapezoid.  Spans which continue in the next slab with the
// same pair of edges are merged, so that convex shapes give very few
// pieces.  The trapezoids tile the filled area exactly once.

// edge is a non-horizontal polygon edge, oriented so that y0 < y1.
type edge struct {
	x0, y0  float64
	x1, y1  float64
	dxdy    float64 // (x1-x0)/(y1-y0)
	winding int     // +1 if the edge was drawn towards increasing y, -1 otherwise
	owner   int     // index of the outline group (see addOwner)
}

// xAt returns the x-coordinate of the edge at height y.  The result is
// clamped to the end points.
func (e *edge) xAt(y float64) float64 {
	if y <= e.y0 {
		return e.x0
	}
	if y >= e.y1 {
		return e.x1
	}
	return e.x0 + (y-e.y0)*e.dxdy
}

// piece is a convex polygon with three or four vertices, in order of
// positive orientation (positive shoelace area).
type piece struct {
	n int
	v [4]vec.Vec2
}

func (p *piece) verts() []vec.Vec2 {
	return p.v[:p.n]
}

type span struct {
	l, r int // edge indices
}

type trap struct {
	l, r   int // edge indices, l < 0 marks a consumed entry
	ya, yb float64
}

// trapezoider decomposes the interior of a set of polygons into convex
// pieces.  Polygons are grouped by owner; a point is inside if it is inside
// the polygons of at least one owner, according to that owner's fill rule.
//
// Internal buffers are reused between calls.
type trapezoider struct {
	rules  []FillMode
	edges  []edge
	bounds [][2]vec.Vec2 // all outline segments, including horizontal ones

	ys      []float64
	order   []int // edge indices, sorted by y0
	active  []int
	winding []int
	spans   []span
	open    []trap
	next    []trap
	pieces  []piece
}

func (tz *trapezoider) reset() {
	tz.rules = tz.rules[:0]
	tz.edges = tz.edges[:0]
	tz.bounds = tz.bounds[:0]
	tz.pieces = tz.pieces[:0]
}

// addOwner starts a new group of polygons, filled using the given rule.
func (tz *trapezoider) addOwner(rule FillMode) int {
	tz.rules = append(tz.rules, rule)
	return len(tz.rules) - 1
}

// addPolygon adds the closed polygon through pts.
func (tz *trapezoider) addPolygon(pts []vec.Vec2, owner int) {
	n := len(pts)
	if n < 2 {
		return
	}
	for i := range n {
		a, b := pts[i], pts[(i+1)%n]
		if a == b {
			continue
		}
		tz.bounds = append(tz.bounds, [2]vec.Vec2{a, b})
		tz.addEdge(a, b, owner)
	}
}

func (tz *trapezoider) addEdge(a, b vec.Vec2, owner int) {
	dy := b.Y - a.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	winding := 1
	if dy < 0 {
		a, b = b, a
		winding = -1
	}
	tz.edges = append(tz.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy:    (b.X - a.X) / (b.Y - a.Y),
		winding: winding,
		owner:   owner,
	})
}

// decompose returns the convex pieces covering the filled area.  The
// returned slice is valid until the next call to reset.
func (tz *trapezoider) decompose() []piece {
	tz.pieces = tz.pieces[:0]
	if len(tz.edges) == 0 {
		return nil
	}

	tz.order = tz.order[:0]
	for i := range tz.edges {
		tz.order = append(tz.order, i)
	}
	slices.SortFunc(tz.order, func(i, j int) int {
		if c := cmp.Compare(tz.edges[i].y0, tz.edges[j].y0); c != 0 {
			return c
		}
		return cmp.Compare(i, j)
	})
	tz.collectEvents()

	tz.winding = slices.Grow(tz.winding[:0], len(tz.rules))[:len(tz.rules)]
	tz.active = tz.active[:0]
	tz.open = tz.open[:0]
	next := 0
	for k := 1; k < len(tz.ys); k++ {
		ya, yb := tz.ys[k-1], tz.ys[k]
		ym := (ya + yb) / 2

		tz.active = slices.DeleteFunc(tz.active, func(i int) bool {
			return tz.edges[i].y1 <= ym
		})
		for next < len(tz.order) && tz.edges[tz.order[next]].y0 < ym {
			i := tz.order[next]
			next++
			if tz.edges[i].y1 > ym {
				tz.active = append(tz.active, i)
			}
		}
		slices.SortFunc(tz.active, func(i, j int) int {
			if c := cmp.Compare(tz.edges[i].xAt(ym), tz.edges[j].xAt(ym)); c != 0 {
				return c
			}
			return cmp.Compare(i, j)
		})

		tz.findSpans()
		tz.mergeSpans(ya, yb)
	}
	for _, t := range tz.open {
		tz.emit(t)
	}
	tz.open = tz.open[:0]
	return tz.pieces
}

// collectEvents fills tz.ys with the sorted, de-duplicated y-coordinates of
// all edge end points and edge crossings.  tz.order must be up to date.
func (tz *trapezoider) collectEvents() {
	tz.ys = tz.ys[:0]
	for i := range tz.edges {
		tz.ys = append(tz.ys, tz.edges[i].y0, tz.edges[i].y1)
	}
	for a := range tz.order {
		ei := &tz.edges[tz.order[a]]
		for b := a + 1; b < len(tz.order); b++ {
			ej := &tz.edges[tz.order[b]]
			if ej.y0 >= ei.y1 {
				break
			}
			ya, yb := ej.y0, min(ei.y1, ej.y1)
			if yb <= ya {
				continue
			}
			da := ei.xAt(ya) - ej.xAt(ya)
			db := ei.xAt(yb) - ej.xAt(yb)
			if (da < 0 && db > 0) || (da > 0 && db < 0) {
				tz.ys = append(tz.ys, ya+(yb-ya)*da/(da-db))
			}
		}
	}
	slices.Sort(tz.ys)

	out := tz.ys[:0]
	for _, y := range tz.ys {
		if len(out) > 0 && y-out[len(out)-1] <= eventMergeThreshold*(1+math.Abs(y)) {
			continue
		}
		out = append(out, y)
	}
	tz.ys = out
}

// findSpans applies the fill rules to the sorted active edges.
func (tz *trapezoider) findSpans() {
	tz.spans = tz.spans[:0]
	clear(tz.winding)
	inside := false
	left := -1
	for _, i := range tz.active {
		e := &tz.edges[i]
		tz.winding[e.owner] += e.winding
		now := tz.isInside()
		if now && !inside {
			left = i
		} else if !now && inside {
			tz.spans = append(tz.spans, span{l: left, r: i})
		}
		inside = now
	}
}

func (tz *trapezoider) isInside() bool {
	for o, w := range tz.winding {
		if tz.rules[o].inside(w) {
			return true
		}
	}
	return false
}

// mergeSpans extends the open trapezoids which continue with the same pair
// of edges, opens new ones for the other spans, and emits the trapezoids
// which end at ya.
func (tz *trapezoider) mergeSpans(ya, yb float64) {
	tz.next = tz.next[:0]
	for _, s := range tz.spans {
		idx := slices.IndexFunc(tz.open, func(t trap) bool {
			return t.l == s.l && t.r == s.r
		})
		if idx >= 0 {
			t := tz.open[idx]
			t.yb = yb
			tz.next = append(tz.next, t)
			tz.open[idx].l = -1
		} else {
			tz.next = append(tz.next, trap{l: s.l, r: s.r, ya: ya, yb: yb})
		}
	}
	for _, t := range tz.open {
		if t.l >= 0 {
			tz.emit(t)
		}
	}
	tz.open, tz.next = tz.next, tz.open
}

// emit converts a trapezoid into a piece.  Trapezoids with a vanishing
// top or bottom side become triangles; empty trapezoids are dropped.
func (tz *trapezoider) emit(t trap) {
	l, r := &tz.edges[t.l], &tz.edges[t.r]
	tl := vec.Vec2{X: l.xAt(t.ya), Y: t.ya}
	tr := vec.Vec2{X: r.xAt(t.ya), Y: t.ya}
	br := vec.Vec2{X: r.xAt(t.yb), Y: t.yb}
	bl := vec.Vec2{X: l.xAt(t.yb), Y: t.yb}

	wTop := tr.X - tl.X
	wBot := br.X - bl.X
	if (max(wTop, 0)+max(wBot, 0))*(t.yb-t.ya) <= 2*degenerateArea {
		return
	}
	switch {
	case wTop <= spanWidthThreshold:
		tz.pieces = append(tz.pieces, piece{n: 3, v: [4]vec.Vec2{tl, br, bl}})
	case wBot <= spanWidthThreshold:
		tz.pieces = append(tz.pieces, piece{n: 3, v: [4]vec.Vec2{tl, tr, br}})
	default:
		tz.pieces = append(tz.pieces, piece{n: 4, v: [4]vec.Vec2{tl, tr, br, bl}})
	}
}

// contains reports whether p lies inside the filled area.
func (tz *trapezoider) contains(p vec.Vec2) bool {
	tz.winding = slices.Grow(tz.winding[:0], len(tz.rules))[:len(tz.rules)]
	clear(tz.winding)
	for i := range tz.edges {
		e := &tz.edges[i]
		if p.Y < e.y0 || p.Y >= e.y1 {
			continue
		}
		if e.xAt(p.Y) > p.X {
			tz.winding[e.owner] += e.winding
		}
	}
	return tz.isInside()
}

// meshBuilder collects triangles.  Vertices with identical positions are
// shared.
type meshBuilder struct {
	verts  []vec.Vec2
	idx    []uint32
	lookup map[vec.Vec2]uint32
}

// reset starts a new mesh.  Slices returned by earlier meshes are not
// modified.
func (m *meshBuilder) reset() {
	m.verts = nil
	m.idx = nil
	if m.lookup == nil {
		m.lookup = make(map[vec.Vec2]uint32)
	}
	clear(m.lookup)
}

func (m *meshBuilder) vertex(p vec.Vec2) uint32 {
	if i, ok := m.lookup[p]; ok {
		return i
	}
	i := uint32(len(m.verts))
	m.verts = append(m.verts, p)
	m.lookup[p] = i
	return i
}

// triangle adds the triangle abc, unless it has zero area.
func (m *meshBuilder) triangle(a, b, c vec.Vec2) {
	if math.Abs(cross(b.Sub(a), c.Sub(a))) <= 2*degenerateArea {
		return
	}
	m.idx = append(m.idx, m.vertex(a), m.vertex(b), m.vertex(c))
}

// convex adds the convex polygon pts as a triangle fan.
func (m *meshBuilder) convex(pts []vec.Vec2) {
	for i := 2; i < len(pts); i++ {
		m.triangle(pts[0], pts[i-1], pts[i])
	}
}

// cross returns the z-component of the cross product of a and b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Numerical tolerances for triangulation.
const (
	// horizontalEdgeThreshold is the minimal vertical extent of an edge.
	// Flatter edges do not change the winding number of any slab.
	horizontalEdgeThreshold = 1e-10

	// eventMergeThreshold is the relative distance below which two event
	// y-coordinates are merged into one.
	eventMergeThreshold = 1e-12

	// spanWidthThreshold is the width below which a trapezoid side is
	// treated as a single point.
	spanWidthThreshold = 1e-9

	// degenerateArea is the area below which a triangle or trapezoid is
	// dropped.
	degenerateArea = 1e-12
)
