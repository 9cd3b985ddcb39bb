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

var strokeCases = []TestCase{
	{
		Name:   "line_butt",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(10, 32, 54), pen(8, graphics.LineCapButt, graphics.LineJoinMiter))),
	},
	{
		Name:   "line_round",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(10, 32, 54), pen(8, graphics.LineCapRound, graphics.LineJoinMiter))),
	},
	{
		Name:   "line_square",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(10, 32, 54), pen(8, graphics.LineCapSquare, graphics.LineJoinMiter))),
	},
	{
		Name:   "corner_miter",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(corner(), pen(6, graphics.LineCapButt, graphics.LineJoinMiter))),
	},
	{
		Name:   "corner_round",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(corner(), pen(6, graphics.LineCapButt, graphics.LineJoinRound))),
	},
	{
		Name:   "corner_bevel",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(corner(), pen(6, graphics.LineCapButt, graphics.LineJoinBevel))),
	},
	{
		Name:   "miter_limit_exceeded",
		Width:  64,
		Height: 64,
		Scene: single(stroked(polyline(false, pt(8, 56), pt(32, 8), pt(40, 56)), &vectess.Stroke{
			Color:         vectess.Black,
			HalfThickness: 3,
			Join:          graphics.LineJoinMiter,
			MiterLimit:    2,
		})),
	},
	{
		Name:   "closed_square",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(square(32, 32, 20, false), pen(6, graphics.LineCapButt, graphics.LineJoinMiter))),
	},
	{
		Name:   "zigzag_thick",
		Width:  64,
		Height: 64,
		Scene: single(stroked(
			polyline(false, pt(6, 40), pt(18, 20), pt(30, 44), pt(42, 18), pt(58, 42)),
			pen(9, graphics.LineCapRound, graphics.LineJoinRound))),
	},
	{
		Name:   "dot_round",
		Width:  32,
		Height: 32,
		Scene:  single(stroked(polyline(false, pt(16, 16)), pen(10, graphics.LineCapRound, graphics.LineJoinRound))),
	},
	{
		Name:   "filled_and_stroked",
		Width:  64,
		Height: 64,
		Scene: single(vectess.Circle{
			Center: pt(32, 32),
			Radius: 22,
			Fill:   vectess.SolidFill{Color: vectess.Color{R: 1, G: 0.8, B: 0.2, A: 1}},
			Stroke: &vectess.Stroke{Color: vectess.Red, HalfThickness: 3},
		}),
	},
}

// horizontalLine builds a horizontal line from (x1, y) to (x2, y).
func horizontalLine(x1, y, x2 float64) path.Path {
	return polyline(false, pt(x1, y), pt(x2, y))
}

// corner builds an open path with one sharp corner.
func corner() path.Path {
	return polyline(false, pt(10, 50), pt(32, 14), pt(54, 50))
}
