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

// Package vectess converts vector scenes into triangle meshes.
//
// A scene is a tree of nodes, each with a transform, a list of shapes and
// an optional clipper.  Shapes are made of cubic Bézier contours and carry
// an optional fill (solid or gradient) and an optional stroke.  The
// [Tessellator] flattens the contours, triangulates fills and strokes,
// applies the clippers and returns one [Geometry] per fill and per stroke.
//
// Gradient fills are resolved by the atlas sub-package, and the mesh
// sub-package packs geometries into renderable vertex buffers.
package vectess

import (
	"context"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess/bezier"
)

// TessellationOptions holds the flattening tolerances.
type TessellationOptions = bezier.Options

// Tessellator converts scenes into triangle meshes.  Internal buffers are
// reused between calls.
//
// A Tessellator is not safe for concurrent use.
type Tessellator struct {
	Options TessellationOptions

	// MaxDepth limits the curve subdivision depth.  Zero selects
	// bezier.DefaultMaxDepth.
	MaxDepth int

	// MiterLimit is used for strokes which do not specify a miter limit.
	// Values below 1 select DefaultMiterLimit.
	MiterLimit float64

	ctx       context.Context
	flattener bezier.Flattener
	tz        trapezoider
	st        stroker
	mb        meshBuilder
	points    []vec.Vec2
	contours  []flatContour
	warnings  []Warning
}

// flatContour locates a flattened contour in Tessellator.points.
type flatContour struct {
	start, end int
	closed     bool
}

// Option configures a Tessellator.
type Option func(*Tessellator)

// WithMaxDepth sets the maximal curve subdivision depth.
func WithMaxDepth(depth int) Option {
	return func(t *Tessellator) {
		t.MaxDepth = depth
	}
}

// WithMiterLimit sets the default miter limit for strokes.
func WithMiterLimit(limit float64) Option {
	return func(t *Tessellator) {
		t.MiterLimit = limit
	}
}

// NewTessellator returns a Tessellator using the given tolerances.
func NewTessellator(opt TessellationOptions, opts ...Option) *Tessellator {
	t := &Tessellator{Options: opt}
	for _, o := range opts {
		o(t)
	}
	return t
}

// TessellateScene is a shorthand for NewTessellator(opt).Tessellate(s).
func TessellateScene(s *Scene, opt TessellationOptions) ([]Geometry, error) {
	return NewTessellator(opt).Tessellate(s)
}

// Tessellate converts all shapes of the scene into geometries.  For every
// shape, the fill geometry (if any) comes before the stroke geometry (if
// any).  Shapes are visited in pre-order, children in list order.
// Geometries which are empty, for example because they are clipped away,
// are omitted.
//
// Errors are returned for invalid options (ErrInvalidOptions) and for
// scene graphs which cannot be traversed (ErrInvalidSceneGraph).  Problems
// which do not prevent tessellation are recorded as warnings, see
// [Tessellator.Warnings].
func (t *Tessellator) Tessellate(s *Scene) ([]Geometry, error) {
	return t.TessellateContext(context.Background(), s)
}

// TessellateContext is like Tessellate, but stops early if ctx is
// cancelled.  In this case, ctx.Err() is returned.
func (t *Tessellator) TessellateContext(ctx context.Context, s *Scene) ([]Geometry, error) {
	if err := t.Options.Validate(); err != nil {
		return nil, err
	}
	if s == nil || s.Root == nil {
		return nil, fmt.Errorf("%w: scene has no root", ErrInvalidSceneGraph)
	}

	t.ctx = ctx
	t.warnings = t.warnings[:0]
	t.flattener = bezier.Flattener{Options: t.Options, MaxDepth: t.MaxDepth}

	var out []Geometry
	err := t.visit(s.Root, matrix.Identity, nil, make(map[*Node]bool), &out)
	t.ctx = nil
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Warnings returns the warnings of the most recent call to Tessellate.
// The returned slice is valid until the next call.
func (t *Tessellator) Warnings() []Warning {
	return t.warnings
}

func (t *Tessellator) visit(n *Node, parent matrix.Matrix, clips []*clipRegion, onPath map[*Node]bool, out *[]Geometry) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}
	if onPath[n] {
		return fmt.Errorf("%w: node is its own ancestor", ErrInvalidSceneGraph)
	}
	onPath[n] = true
	defer delete(onPath, n)

	world := n.local().Mul(parent)

	if n.Clipper != nil {
		r, err := t.newClipRegion(n.Clipper, world)
		if err != nil {
			return err
		}
		if r.empty() {
			t.warn(InvalidClipConfiguration, nil, "clipper has an empty area")
		}
		// do not modify the parent's clip stack
		clips = append(clips[:len(clips):len(clips)], r)
	}

	for _, sh := range n.Shapes {
		if sh == nil {
			continue
		}
		t.shape(sh, world, clips, out)
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := t.visit(c, world, clips, onPath, out); err != nil {
			return err
		}
	}
	return nil
}

// shape appends the fill and stroke geometries of sh.
func (t *Tessellator) shape(sh *Shape, world matrix.Matrix, clips []*clipRegion, out *[]Geometry) {
	t.flattenShape(sh)

	if sh.Fill != nil {
		if g, ok := t.fill(sh); ok {
			t.emit(g, world, clips, out)
		} else {
			t.warn(DegenerateInputIgnored, sh, "fill has no area")
		}
	}
	if sh.Stroke != nil {
		if g, ok := t.stroke(sh); ok {
			t.emit(g, world, clips, out)
		} else {
			t.warn(DegenerateInputIgnored, sh, "stroke has no area")
		}
	}
}

// flattenShape converts the contours of sh into polygons, stored in
// t.points and t.contours.
func (t *Tessellator) flattenShape(sh *Shape) {
	t.points = t.points[:0]
	t.contours = t.contours[:0]
	capped := t.flattener.Capped
	for i := range sh.Contours {
		c := &sh.Contours[i]
		start := len(t.points)
		t.points = t.flattener.AppendContour(t.points, c)
		if len(t.points) > start {
			t.contours = append(t.contours, flatContour{start: start, end: len(t.points), closed: c.Closed})
		}
	}
	if n := t.flattener.Capped - capped; n > 0 {
		depth := t.MaxDepth
		if depth <= 0 {
			depth = bezier.DefaultMaxDepth
		}
		t.warn(ToleranceUnreachable, sh,
			"%d curve pieces reached the subdivision limit %d", n, depth)
	}
}

// fill triangulates the interior of the flattened contours.  Coordinates
// are local to the shape.
func (t *Tessellator) fill(sh *Shape) (Geometry, bool) {
	t.tz.reset()
	owner := t.tz.addOwner(sh.Fill.fillMode())
	for _, c := range t.contours {
		t.tz.addPolygon(t.points[c.start:c.end], owner)
	}

	t.mb.reset()
	pieces := t.tz.decompose()
	for i := range pieces {
		t.mb.convex(pieces[i].verts())
	}
	if len(t.mb.idx) == 0 {
		return Geometry{}, false
	}

	g := Geometry{
		Vertices: t.mb.verts,
		Indices:  t.mb.idx,
		Fill:     sh.Fill,
		Shape:    sh,
	}
	switch f := sh.Fill.(type) {
	case SolidFill:
		g.Color = f.Color
	case *GradientFill:
		g.Color = White
		g.UVs = t.gradientUVs(g.Vertices, sh.FillTransform)
	}
	return g, true
}

// gradientUVs maps the bounding box of the flattened contours to the unit
// square and then applies the fill transform.
func (t *Tessellator) gradientUVs(verts []vec.Vec2, fillTransform matrix.Matrix) []vec.Vec2 {
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, p := range t.points {
		x0, x1 = min(x0, p.X), max(x1, p.X)
		y0, y1 = min(y0, p.Y), max(y1, p.Y)
	}
	sx, sy := 0.0, 0.0
	if x1 > x0 {
		sx = 1 / (x1 - x0)
	}
	if y1 > y0 {
		sy = 1 / (y1 - y0)
	}
	m := matrix.Identity
	if !fillTransform.IsZero() {
		m = fillTransform
	}

	uvs := make([]vec.Vec2, len(verts))
	for i, p := range verts {
		uvs[i] = apply(m, vec.Vec2{X: (p.X - x0) * sx, Y: (p.Y - y0) * sy})
	}
	return uvs
}

// stroke triangulates the stroke of the flattened contours.  Overlapping
// parts of the stroke are covered only once.
func (t *Tessellator) stroke(sh *Shape) (Geometry, bool) {
	st := sh.Stroke
	if !(st.HalfThickness > 0) {
		return Geometry{}, false
	}

	miter := t.MiterLimit
	if miter < 1 {
		miter = DefaultMiterLimit
	}
	t.st.reset(st, t.Options, miter)
	for _, c := range t.contours {
		t.st.addContour(t.points[c.start:c.end], c.closed)
	}
	t.st.build()

	t.tz.reset()
	owner := t.tz.addOwner(NonZero)
	for poly := range t.st.outlines() {
		t.tz.addPolygon(poly, owner)
	}

	t.mb.reset()
	pieces := t.tz.decompose()
	for i := range pieces {
		t.mb.convex(pieces[i].verts())
	}
	if len(t.mb.idx) == 0 {
		return Geometry{}, false
	}
	return Geometry{
		Vertices: t.mb.verts,
		Indices:  t.mb.idx,
		Color:    st.Color,
		Stroke:   st,
		Shape:    sh,
	}, true
}

// emit transforms g into scene coordinates, applies the clip regions and
// appends the result to out.
func (t *Tessellator) emit(g Geometry, world matrix.Matrix, clips []*clipRegion, out *[]Geometry) {
	if world != matrix.Identity {
		for i, p := range g.Vertices {
			g.Vertices[i] = apply(world, p)
		}
		if world[0]*world[3]-world[1]*world[2] < 0 {
			// keep the triangles positively oriented
			for k := 0; k+2 < len(g.Indices); k += 3 {
				g.Indices[k+1], g.Indices[k+2] = g.Indices[k+2], g.Indices[k+1]
			}
		}
	}
	g.WorldTransform = world

	for _, r := range clips {
		r.apply(&g)
		if len(g.Indices) == 0 {
			Logger().Debug("geometry clipped away")
			return
		}
	}
	*out = append(*out, g)
}
