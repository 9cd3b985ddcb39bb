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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/vectess"
)

var curveCases = []TestCase{
	{
		Name:   "quadratic",
		Width:  64,
		Height: 64,
		Scene:  single(filled(quadraticCurve(10, 50, 32, 0, 54, 50), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "quadratic_s_shape",
		Width:  64,
		Height: 64,
		Scene:  single(filled(sCurveQuadratic(8, 32, 56, 32), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "cubic",
		Width:  64,
		Height: 64,
		Scene:  single(filled(cubicCurve(10, 50, 10, 5, 54, 5, 54, 50), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "cubic_loop",
		Width:  64,
		Height: 64,
		Scene:  single(filled(cubicCurve(10, 40, 70, 0, -6, 0, 54, 40), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "cubic_cusp",
		Width:  64,
		Height: 64,
		Scene:  single(filled(cubicCurve(10, 50, 54, 10, 10, 10, 54, 50), vectess.Black, vectess.EvenOdd)),
	},
	{
		Name:   "cubic_degenerate",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(cubicCurve(10, 32, 10, 32, 54, 32, 54, 32), pen(4, graphics.LineCapButt, graphics.LineJoinMiter))),
	},
	{
		Name:   "quadratic_stroked",
		Width:  64,
		Height: 64,
		Scene: single(stroked((&path.Data{}).MoveTo(pt(8, 52)).QuadTo(pt(32, -8), pt(56, 52)).Iter(),
			pen(5, graphics.LineCapRound, graphics.LineJoinRound))),
	},
	{
		Name:   "cubic_scurve_stroked",
		Width:  64,
		Height: 64,
		Scene: single(stroked((&path.Data{}).MoveTo(pt(8, 32)).CubeTo(pt(24, -10), pt(40, 74), pt(56, 32)).Iter(),
			pen(6, graphics.LineCapButt, graphics.LineJoinMiter))),
	},
	{
		Name:   "circle_stroked",
		Width:  64,
		Height: 64,
		Scene: single(vectess.Circle{
			Center: pt(32, 32),
			Radius: 22,
			Stroke: pen(4, graphics.LineCapButt, graphics.LineJoinMiter),
		}),
	},
	{
		Name:   "circle_small",
		Width:  16,
		Height: 16,
		Scene:  single(vectess.Circle{Center: pt(8, 8), Radius: 2.5, Fill: vectess.SolidFill{Color: vectess.Black}}),
	},
	{
		Name:   "circle_large",
		Width:  256,
		Height: 256,
		Scene:  single(vectess.Circle{Center: pt(128, 128), Radius: 120, Fill: vectess.SolidFill{Color: vectess.Black}}),
	},
	{
		Name:   "pie_slice",
		Width:  64,
		Height: 64,
		Scene:  single(filled(pieSlice(32, 32, 26, 3), vectess.Black, vectess.NonZero)),
	},
}

// quadraticCurve builds a closed shape with a quadratic Bézier curve.
func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) path.Path {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(cx, cy), pt(x2, y2)).
		Close().
		Iter()
}

// cubicCurve builds a closed shape with a cubic Bézier curve.
func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) path.Path {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2)).
		Close().
		Iter()
}

// sCurveQuadratic builds a closed S-shaped path from two quadratic curves.
func sCurveQuadratic(x1, y1, x2, y2 float64) path.Path {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt((x1+midX)/2, y1-20), pt(midX, midY)).
		QuadTo(pt((midX+x2)/2, y2+20), pt(x2, y2)).
		Close().
		Iter()
}

// pieSlice builds a circle sector made of the given number of quarter
// circles.
func pieSlice(cx, cy, r float64, quadrants int) path.Path {
	const kappa = 0.5522847498307936
	k := r * kappa
	p := (&path.Data{}).
		MoveTo(pt(cx, cy)).
		LineTo(pt(cx+r, cy))
	arcs := [][3][2]float64{
		{{r, -k}, {k, -r}, {0, -r}},
		{{-k, -r}, {-r, -k}, {-r, 0}},
		{{-r, k}, {-k, r}, {0, r}},
		{{k, r}, {r, k}, {r, 0}},
	}
	for _, a := range arcs[:min(max(quadrants, 1), 4)] {
		p = p.CubeTo(pt(cx+a[0][0], cy+a[0][1]), pt(cx+a[1][0], cy+a[1][1]), pt(cx+a[2][0], cy+a[2][1]))
	}
	return p.Close().Iter()
}
