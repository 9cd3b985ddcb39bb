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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/vectess/bezier"
)

// Shape is the canonical form of everything which can be drawn: a set of
// contours together with an optional fill and an optional stroke.
type Shape struct {
	Contours []bezier.Contour

	// Fill is used to paint the interior of the contours.  If Fill is nil,
	// the shape is not filled.
	Fill Fill

	// FillTransform maps the gradient space of the shape (its bounding box,
	// normalised to the unit square) to gradient coordinates.  The zero
	// matrix is treated as the identity.
	FillTransform matrix.Matrix

	// Stroke describes the outline of the contours.  If Stroke is nil, no
	// outline is drawn.
	Stroke *Stroke
}

// Shape returns s itself, so that shapes can be used as drawables.
func (s *Shape) Shape() *Shape {
	return s
}

// Path returns the contours of s as a path.  Closed contours end with a
// close command.
func (s *Shape) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := range s.Contours {
			c := &s.Contours[i]
			if len(c.Segments) == 0 {
				continue
			}
			if !yield(path.CmdMoveTo, []vec.Vec2{c.Segments[0].P0}) {
				return
			}
			for cu := range c.Curves() {
				if !yield(path.CmdCubeTo, []vec.Vec2{cu[1], cu[2], cu[3]}) {
					return
				}
			}
			if c.Closed && !yield(path.CmdClose, nil) {
				return
			}
		}
	}
}

// FillMode selects the rule which decides which regions of a set of
// contours are inside.
type FillMode int

// These are the supported fill modes.  NonZero is the default, matching the
// usual convention of vector graphics hosts.
const (
	NonZero FillMode = iota
	EvenOdd
)

func (m FillMode) inside(winding int) bool {
	if m == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// Fill describes how the interior of a shape is painted.
// The implementations are SolidFill and *GradientFill.
type Fill interface {
	fillMode() FillMode
}

// SolidFill paints a shape in a single colour.
type SolidFill struct {
	Color Color
	Mode  FillMode
}

func (f SolidFill) fillMode() FillMode { return f.Mode }

// GradientType selects the geometry of a gradient.
type GradientType int

// These are the supported gradient types.
const (
	// Linear gradients vary along the horizontal axis of gradient space.
	Linear GradientType = iota

	// Radial gradients vary with the distance from the centre of gradient
	// space.  The unit circle touches the edges of the shape's bounding box.
	Radial
)

// AddressMode selects how a gradient continues outside the range [0, 1].
type AddressMode int

// These are the supported address modes.
const (
	// Clamp extends the colours of the first and last stop.
	Clamp AddressMode = iota
	// Repeat restarts the gradient.
	Repeat
	// Mirror reverses every other repetition.
	Mirror
)

// GradientStop is a colour at a given position of a gradient.
type GradientStop struct {
	Color Color

	// Percentage is the position of the stop, in the range [0, 1].
	Percentage float64
}

// GradientFill paints a shape with a colour gradient.  Gradient fills are
// identified by pointer: geometries which share a *GradientFill share the
// same atlas entry.
type GradientFill struct {
	Type       GradientType
	Stops      []GradientStop
	Addressing AddressMode
	Mode       FillMode
}

func (g *GradientFill) fillMode() FillMode { return g.Mode }

// Param returns the gradient parameter at the point p of gradient space,
// before the address mode is applied.
func (g *GradientFill) Param(p vec.Vec2) float64 {
	if g.Type == Radial {
		return p.Sub(vec.Vec2{X: 0.5, Y: 0.5}).Length() * 2
	}
	return p.X
}

// Address maps a gradient parameter into the range [0, 1] according to the
// address mode of g.
func (g *GradientFill) Address(t float64) float64 {
	switch g.Addressing {
	case Repeat:
		t -= math.Floor(t)
	case Mirror:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

// ColorAt returns the colour of the gradient at parameter t.  The address
// mode is applied first.  Stops need not be sorted.
func (g *GradientFill) ColorAt(t float64) Color {
	if len(g.Stops) == 0 {
		return Transparent
	}
	t = g.Address(t)

	stops := g.Stops
	if !slices.IsSortedFunc(stops, cmpStops) {
		stops = slices.Clone(stops)
		slices.SortStableFunc(stops, cmpStops)
	}

	if t <= stops[0].Percentage {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Percentage {
			continue
		}
		w := b.Percentage - a.Percentage
		if w <= 0 {
			return b.Color
		}
		return a.Color.Lerp(b.Color, (t-a.Percentage)/w)
	}
	return stops[len(stops)-1].Color
}

func cmpStops(a, b GradientStop) int {
	switch {
	case a.Percentage < b.Percentage:
		return -1
	case a.Percentage > b.Percentage:
		return 1
	}
	return 0
}

// Stroke describes the outline of a shape.
type Stroke struct {
	Color Color

	// HalfThickness is half the width of the stroke.  Strokes with a
	// non-positive half thickness are not drawn.
	HalfThickness float64

	// Cap is the style used at the end points of open contours.
	Cap graphics.LineCapStyle

	// Join is the style used where two segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit is the maximal ratio of miter length to stroke width, as
	// in PDF.  Miter joins exceeding the limit are drawn as bevel joins.
	// Values below 1 select the tessellator's default.
	MiterLimit float64

	// Pattern specifies alternating dash and gap lengths.
	// If Pattern is empty, the stroke is solid.
	Pattern []float64

	// PatternOffset shifts the start of the dash pattern.
	PatternOffset float64
}

// DefaultMiterLimit is used for strokes which do not set a miter limit.
const DefaultMiterLimit = 4.0
