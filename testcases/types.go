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

// Package testcases contains example scenes, used by the tests and the
// command line tools of this module.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/vectess"
)

// TestCase defines a single example scene.
type TestCase struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Width  int    // canvas width in pixels
	Height int    // canvas height in pixels

	// Scene builds a new copy of the scene.
	Scene func() *vectess.Scene

	// Options are the tessellation tolerances.  The zero value selects
	// PreviewOptions.
	Options vectess.TessellationOptions

	// CTM maps scene coordinates to pixel coordinates.  The zero value
	// means identity.
	CTM matrix.Matrix
}

// PreviewOptions are tolerances suitable for scenes measured in pixels.
var PreviewOptions = vectess.TessellationOptions{
	StepDistance:         100,
	MaxCordDeviation:     0.05,
	MaxTanAngleDeviation: 0.05,
	SamplingStepSize:     0.01,
}

// TessellationOptions returns the tolerances for tc.
func (tc *TestCase) TessellationOptions() vectess.TessellationOptions {
	if tc.Options == (vectess.TessellationOptions{}) {
		return PreviewOptions
	}
	return tc.Options
}

// Transform returns the map from scene coordinates to pixel coordinates.
func (tc *TestCase) Transform() matrix.Matrix {
	if tc.CTM.IsZero() {
		return matrix.Identity
	}
	return tc.CTM
}

// Tessellate builds and tessellates the scene of tc.
func (tc *TestCase) Tessellate() ([]vectess.Geometry, error) {
	return vectess.TessellateScene(tc.Scene(), tc.TessellationOptions())
}

// single returns a scene builder for a scene with the given drawables at
// the root.
func single(ds ...vectess.Drawable) func() *vectess.Scene {
	return func() *vectess.Scene {
		return &vectess.Scene{Root: (&vectess.Node{}).Add(ds...)}
	}
}

// filled returns a shape which fills the path p.
func filled(p path.Path, c vectess.Color, mode vectess.FillMode) *vectess.Shape {
	return &vectess.Shape{
		Contours: vectess.PathContours(p),
		Fill:     vectess.SolidFill{Color: c, Mode: mode},
	}
}

// stroked returns a shape which strokes the path p.
func stroked(p path.Path, st *vectess.Stroke) *vectess.Shape {
	return &vectess.Shape{
		Contours: vectess.PathContours(p),
		Stroke:   st,
	}
}

// pen returns a solid black stroke with the given total width.
func pen(width float64, lc graphics.LineCapStyle, lj graphics.LineJoinStyle) *vectess.Stroke {
	return &vectess.Stroke{
		Color:         vectess.Black,
		HalfThickness: width / 2,
		Cap:           lc,
		Join:          lj,
		MiterLimit:    10,
	}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
