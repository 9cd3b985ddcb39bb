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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess/bezier"
)

// Drawable is anything which can be converted into a Shape.  The
// implementations in this package are *Shape, Rectangle, Circle, Ellipse,
// Polygon and Path.
type Drawable interface {
	Shape() *Shape
}

// Rectangle is an axis-aligned rectangle with optionally rounded corners.
type Rectangle struct {
	Rect          rect.Rect
	Radii         Radii
	Fill          Fill
	FillTransform matrix.Matrix
	Stroke        *Stroke
}

// Radii gives the radii of the four corners of a rectangle.  The corner
// names refer to a coordinate system where the y-axis points down, so
// TopLeft is the corner at (LLx, LLy).
type Radii struct {
	TopLeft, TopRight, BottomRight, BottomLeft vec.Vec2
}

// UniformRadii returns radii which are r in both directions for all corners.
func UniformRadii(r float64) Radii {
	v := vec.Vec2{X: r, Y: r}
	return Radii{v, v, v, v}
}

// Shape implements the Drawable interface.
func (r Rectangle) Shape() *Shape {
	return &Shape{
		Contours:      []bezier.Contour{RectangleContour(r.Rect, r.Radii)},
		Fill:          r.Fill,
		FillTransform: r.FillTransform,
		Stroke:        r.Stroke,
	}
}

// Circle is a circle given by centre and radius.
type Circle struct {
	Center vec.Vec2
	Radius float64
	Fill   Fill
	Stroke *Stroke
}

// Shape implements the Drawable interface.
func (c Circle) Shape() *Shape {
	return &Shape{
		Contours: []bezier.Contour{EllipseContour(c.Center, c.Radius, c.Radius)},
		Fill:     c.Fill,
		Stroke:   c.Stroke,
	}
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	Center vec.Vec2
	RX, RY float64
	Fill   Fill
	Stroke *Stroke
}

// Shape implements the Drawable interface.
func (e Ellipse) Shape() *Shape {
	return &Shape{
		Contours: []bezier.Contour{EllipseContour(e.Center, e.RX, e.RY)},
		Fill:     e.Fill,
		Stroke:   e.Stroke,
	}
}

// Polygon is a polyline, closed or open.
type Polygon struct {
	Points []vec.Vec2
	Closed bool
	Fill   Fill
	Stroke *Stroke
}

// Shape implements the Drawable interface.
func (p Polygon) Shape() *Shape {
	return &Shape{
		Contours: []bezier.Contour{PolygonContour(p.Points, p.Closed)},
		Fill:     p.Fill,
		Stroke:   p.Stroke,
	}
}

// Path is a single stroked contour.
type Path struct {
	Contour bezier.Contour
	Stroke  *Stroke
}

// Shape implements the Drawable interface.
func (p Path) Shape() *Shape {
	return &Shape{
		Contours: []bezier.Contour{p.Contour},
		Stroke:   p.Stroke,
	}
}

// kappa is the control point distance for approximating a quarter circle
// of radius 1 by a cubic Bézier curve.
const kappa = 0.5522847498307936

// RectangleContour returns the closed outline of r.  Corners with a zero
// radius are sharp; the other corners are elliptic arcs.
func RectangleContour(r rect.Rect, radii Radii) bezier.Contour {
	x0, y0 := min(r.LLx, r.URx), min(r.LLy, r.URy)
	x1, y1 := max(r.LLx, r.URx), max(r.LLy, r.URy)
	tl, tr, br, bl := radii.TopLeft, radii.TopRight, radii.BottomRight, radii.BottomLeft

	b := &contourBuilder{}
	b.moveTo(vec.Vec2{X: x0 + tl.X, Y: y0})
	b.lineTo(vec.Vec2{X: x1 - tr.X, Y: y0})
	b.corner(vec.Vec2{X: x1, Y: y0}, vec.Vec2{X: x1, Y: y0 + tr.Y})
	b.lineTo(vec.Vec2{X: x1, Y: y1 - br.Y})
	b.corner(vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x1 - br.X, Y: y1})
	b.lineTo(vec.Vec2{X: x0 + bl.X, Y: y1})
	b.corner(vec.Vec2{X: x0, Y: y1}, vec.Vec2{X: x0, Y: y1 - bl.Y})
	b.lineTo(vec.Vec2{X: x0, Y: y0 + tl.Y})
	b.corner(vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x0 + tl.X, Y: y0})
	return b.close()
}

// EllipseContour returns the closed outline of an axis-aligned ellipse,
// made of four cubic arcs.
func EllipseContour(center vec.Vec2, rx, ry float64) bezier.Contour {
	kx, ky := kappa*rx, kappa*ry
	cx, cy := center.X, center.Y

	b := &contourBuilder{}
	b.moveTo(vec.Vec2{X: cx + rx, Y: cy})
	b.cubeTo(vec.Vec2{X: cx + rx, Y: cy + ky}, vec.Vec2{X: cx + kx, Y: cy + ry}, vec.Vec2{X: cx, Y: cy + ry})
	b.cubeTo(vec.Vec2{X: cx - kx, Y: cy + ry}, vec.Vec2{X: cx - rx, Y: cy + ky}, vec.Vec2{X: cx - rx, Y: cy})
	b.cubeTo(vec.Vec2{X: cx - rx, Y: cy - ky}, vec.Vec2{X: cx - kx, Y: cy - ry}, vec.Vec2{X: cx, Y: cy - ry})
	b.cubeTo(vec.Vec2{X: cx + kx, Y: cy - ry}, vec.Vec2{X: cx + rx, Y: cy - ky}, vec.Vec2{X: cx + rx, Y: cy})
	return b.close()
}

// PolygonContour returns a contour made of straight lines through pts.
func PolygonContour(pts []vec.Vec2, closed bool) bezier.Contour {
	c := bezier.Contour{Closed: closed}
	for i, p := range pts {
		if i+1 < len(pts) {
			c.Segments = append(c.Segments, bezier.Line(p, pts[i+1]))
		} else if closed {
			c.Segments = append(c.Segments, bezier.Line(p, pts[0]))
		} else {
			c.Segments = append(c.Segments, bezier.Segment{P0: p, P1: p, P2: p})
		}
	}
	return c
}

// PathContours converts a path into contours.  Quadratic segments are
// represented by the equivalent cubic curves.  Subpaths which consist of a
// single point are kept, so that they can be drawn as dots by a stroke.
func PathContours(p path.Path) []bezier.Contour {
	var res []bezier.Contour
	b := &contourBuilder{}
	started := false
	flush := func() {
		if started {
			res = append(res, b.open())
		}
		started = false
	}
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			b.moveTo(pts[0])
			started = true
		case path.CmdLineTo:
			b.lineTo(pts[0])
			started = true
		case path.CmdQuadTo:
			b.quadTo(pts[0], pts[1])
			started = true
		case path.CmdCubeTo:
			b.cubeTo(pts[0], pts[1], pts[2])
			started = true
		case path.CmdClose:
			if started {
				res = append(res, b.close())
				b.moveTo(b.start)
				started = false
			}
		}
	}
	flush()
	return res
}

// contourBuilder assembles a contour from drawing commands.
type contourBuilder struct {
	segs    []bezier.Segment
	start   vec.Vec2
	current vec.Vec2
}

func (b *contourBuilder) moveTo(p vec.Vec2) {
	b.segs = nil
	b.start = p
	b.current = p
}

func (b *contourBuilder) lineTo(p vec.Vec2) {
	if p == b.current {
		return
	}
	b.segs = append(b.segs, bezier.Line(b.current, p))
	b.current = p
}

func (b *contourBuilder) cubeTo(c1, c2, p vec.Vec2) {
	b.segs = append(b.segs, bezier.Segment{P0: b.current, P1: c1, P2: c2})
	b.current = p
}

func (b *contourBuilder) quadTo(c, p vec.Vec2) {
	c1 := b.current.Add(c.Sub(b.current).Mul(2.0 / 3))
	c2 := p.Add(c.Sub(p).Mul(2.0 / 3))
	b.cubeTo(c1, c2, p)
}

// corner adds a quarter-ellipse from the current point to p, whose tangents
// point towards the sharp corner c.
func (b *contourBuilder) corner(c, p vec.Vec2) {
	if p == b.current {
		return
	}
	c1 := b.current.Add(c.Sub(b.current).Mul(kappa))
	c2 := p.Add(c.Sub(p).Mul(kappa))
	b.cubeTo(c1, c2, p)
}

func (b *contourBuilder) close() bezier.Contour {
	b.lineTo(b.start)
	if len(b.segs) == 0 {
		b.segs = append(b.segs, bezier.Segment{P0: b.start, P1: b.start, P2: b.start})
	}
	return bezier.Contour{Segments: b.segs, Closed: true}
}

// open finishes an open contour at the current point.
func (b *contourBuilder) open() bezier.Contour {
	p := b.current
	segs := append(b.segs, bezier.Segment{P0: p, P1: p, P2: p})
	return bezier.Contour{Segments: segs}
}
