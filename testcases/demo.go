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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess"
	"seehuhn.de/go/vectess/bezier"
)

// Tolerances used by the demo scenes.
var (
	// GradientDemoOptions are used for scenes measured in hundreds of units.
	GradientDemoOptions = vectess.TessellationOptions{
		StepDistance:         100,
		MaxCordDeviation:     0.5,
		MaxTanAngleDeviation: 0.1,
		SamplingStepSize:     0.01,
	}

	// SplineOptions are used for the interactive spline scene.
	SplineOptions = vectess.TessellationOptions{
		StepDistance:         1000,
		MaxCordDeviation:     0.05,
		MaxTanAngleDeviation: 0.05,
		SamplingStepSize:     0.01,
	}

	// ClipperOptions are used for the clipped rectangle scene.  Only the
	// step distance limits the subdivision.
	ClipperOptions = vectess.TessellationOptions{
		StepDistance:         1,
		MaxCordDeviation:     math.MaxFloat64,
		MaxTanAngleDeviation: math.Pi / 2,
		SamplingStepSize:     0.01,
	}
)

var demoCases = []TestCase{
	{
		Name:    "runtime_gradient",
		Width:   128,
		Height:  128,
		Scene:   RuntimeGradientScene,
		Options: GradientDemoOptions,
		CTM:     matrix.Identity.Translate(14, 14),
	},
	{
		Name:    "svg_curve",
		Width:   200,
		Height:  150,
		Scene:   SVGCurveScene,
		Options: GradientDemoOptions,
		CTM:     matrix.Matrix{2, 0, 0, 2, -320, -370},
	},
	{
		Name:   "spline",
		Width:  128,
		Height: 96,
		Scene: func() *vectess.Scene {
			return SplineScene(vec.Vec2{X: -4, Y: 0}, vec.Vec2{X: -2, Y: 4}, vec.Vec2{X: 2, Y: -4}, vec.Vec2{X: 4, Y: 0})
		},
		Options: SplineOptions,
		CTM:     matrix.Scale(12, 12).Translate(64, 48),
	},
	{
		Name:   "shape_clipper",
		Width:  72,
		Height: 72,
		Scene: func() *vectess.Scene {
			return ShapeClipperScene(vec.Vec2{X: 6, Y: 6}, 1, true)
		},
		Options: ClipperOptions,
		CTM:     matrix.Scale(6, 6).Translate(6, 6),
	},
	{
		Name:   "shape_clipper_unclipped",
		Width:  72,
		Height: 72,
		Scene: func() *vectess.Scene {
			return ShapeClipperScene(vec.Vec2{X: 6, Y: 6}, 1, false)
		},
		Options: ClipperOptions,
		CTM:     matrix.Scale(6, 6).Translate(6, 6),
	},
}

// RuntimeGradientScene returns a 100x100 rectangle with rounded corners,
// filled with a linear gradient from blue to red.
func RuntimeGradientScene() *vectess.Scene {
	fill := &vectess.GradientFill{
		Type: vectess.Linear,
		Stops: []vectess.GradientStop{
			{Color: vectess.Blue, Percentage: 0},
			{Color: vectess.Red, Percentage: 1},
		},
	}
	root := &vectess.Node{}
	root.Add(vectess.Rectangle{
		Rect:  rect.Rect{URx: 100, URy: 100},
		Radii: vectess.UniformRadii(10),
		Fill:  fill,
	})
	return &vectess.Scene{Root: root}
}

// SVGCurveScene returns a smooth cubic curve, its control polygon and its
// control points.
func SVGCurveScene() *vectess.Scene {
	grey := &vectess.Stroke{Color: vectess.Color{R: 0x88 / 255.0, G: 0x88 / 255.0, B: 0x88 / 255.0, A: 1}, HalfThickness: 0.5}
	line := func(x1, y1, x2, y2 float64) vectess.Drawable {
		return vectess.Path{Contour: vectess.PolygonContour([]vec.Vec2{pt(x1, y1), pt(x2, y2)}, false), Stroke: grey}
	}
	dot := func(x, y, r float64, c vectess.Color) vectess.Drawable {
		return vectess.Circle{Center: pt(x, y), Radius: r, Fill: vectess.SolidFill{Color: c}}
	}

	curve := &vectess.Node{Transform: matrix.Identity.Translate(0.22, 0.22)}
	curve.Add(vectess.Path{
		Contour: bezier.Contour{Segments: []bezier.Segment{
			{P0: pt(170.08, 226.77), P1: pt(177.17, 198.43), P2: pt(205.51, 198.43)},
			{P0: pt(212.6, 226.77), P1: pt(219.69, 255.11), P2: pt(248.03, 255.12)},
			{P0: pt(255.12, 226.77), P1: pt(255.12, 226.77), P2: pt(255.12, 226.77)},
		}},
		Stroke: &vectess.Stroke{Color: vectess.Red, HalfThickness: 0.6},
	})

	root := &vectess.Node{}
	root.Add(
		line(170.3, 226.99, 177.38, 198.64),
		line(205.73, 198.64, 212.81, 226.99),
		line(212.81, 226.99, 219.9, 255.33),
		line(248.25, 255.33, 255.33, 226.99),
	)
	root.AddChild(curve)
	root.AddChild((&vectess.Node{}).Add(
		dot(170.3, 226.99, 1.2, vectess.Blue),
		dot(212.81, 226.99, 1.2, vectess.Blue),
		dot(255.33, 226.99, 1.2, vectess.Blue),
		dot(177.38, 198.64, 1, vectess.Black),
		dot(205.73, 198.64, 1, vectess.Black),
		dot(248.25, 255.33, 1, vectess.Black),
		dot(219.9, 255.33, 1, vectess.Black),
	))
	return &vectess.Scene{Root: root}
}

// SplineScene returns a single cubic curve with the given control points,
// stroked with a thin line.
func SplineScene(p0, p1, p2, p3 vec.Vec2) *vectess.Scene {
	root := &vectess.Node{}
	root.Add(vectess.Path{
		Contour: bezier.Contour{Segments: []bezier.Segment{
			{P0: p0, P1: p1, P2: p2},
			{P0: p3},
		}},
		Stroke: &vectess.Stroke{Color: vectess.Black, HalfThickness: 0.1},
	})
	return &vectess.Scene{Root: root}
}

// ShapeClipperScene returns a 10x10 square with a mirrored radial gradient
// and a red border of the given width.  If clip is true, the square is
// clipped by a circle of radius 4 centred at clipCenter.
func ShapeClipperScene(clipCenter vec.Vec2, borderWidth float64, clip bool) *vectess.Scene {
	fill := &vectess.GradientFill{
		Type:       vectess.Radial,
		Addressing: vectess.Mirror,
		Stops: []vectess.GradientStop{
			{Color: vectess.Red, Percentage: 0.05},
			{Color: vectess.Blue, Percentage: 0.95},
		},
	}
	root := &vectess.Node{Transform: matrix.Identity}
	root.Add(vectess.Rectangle{
		Rect:          rect.Rect{URx: 10, URy: 10},
		Fill:          fill,
		FillTransform: matrix.Identity,
		Stroke:        &vectess.Stroke{Color: vectess.Red, HalfThickness: borderWidth / 2},
	})
	if clip {
		root.Clipper = &vectess.Node{
			Transform: matrix.Identity.Translate(clipCenter.X, clipCenter.Y),
		}
		root.Clipper.Add(vectess.Circle{Radius: 4})
	}
	return &vectess.Scene{Root: root}
}
