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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/vectess"
)

var gradientCases = []TestCase{
	{
		Name:   "linear_clamp",
		Width:  64,
		Height: 64,
		Scene:  single(gradientSquare(vectess.Linear, vectess.Clamp, matrix.Matrix{})),
	},
	{
		Name:   "linear_repeat",
		Width:  64,
		Height: 64,
		Scene:  single(gradientSquare(vectess.Linear, vectess.Repeat, matrix.Scale(3, 1))),
	},
	{
		Name:   "linear_mirror_rotated",
		Width:  64,
		Height: 64,
		Scene:  single(gradientSquare(vectess.Linear, vectess.Mirror, matrix.Scale(2.5, 2.5).RotateDeg(30))),
	},
	{
		Name:   "radial_clamp",
		Width:  64,
		Height: 64,
		Scene:  single(gradientSquare(vectess.Radial, vectess.Clamp, matrix.Matrix{})),
	},
	{
		Name:   "radial_repeat",
		Width:  64,
		Height: 64,
		Scene:  single(gradientSquare(vectess.Radial, vectess.Repeat, matrix.Scale(3, 3).Translate(-1, -1))),
	},
	{
		Name:   "shared_gradient",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			g := blueRed(vectess.Linear, vectess.Clamp)
			return &vectess.Scene{Root: (&vectess.Node{}).Add(
				vectess.Circle{Center: pt(18, 18), Radius: 14, Fill: g},
				vectess.Circle{Center: pt(46, 46), Radius: 14, Fill: g},
			)}
		},
	},
}

func blueRed(tp vectess.GradientType, mode vectess.AddressMode) *vectess.GradientFill {
	return &vectess.GradientFill{
		Type: tp,
		Stops: []vectess.GradientStop{
			{Color: vectess.Blue, Percentage: 0},
			{Color: vectess.Color{R: 1, G: 1, B: 1, A: 1}, Percentage: 0.5},
			{Color: vectess.Red, Percentage: 1},
		},
		Addressing: mode,
	}
}

func gradientSquare(tp vectess.GradientType, mode vectess.AddressMode, fillTransform matrix.Matrix) vectess.Rectangle {
	return vectess.Rectangle{
		Rect:          rect.Rect{LLx: 6, LLy: 6, URx: 58, URy: 58},
		Fill:          blueRed(tp, mode),
		FillTransform: fillTransform,
	}
}
