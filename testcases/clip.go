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
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/vectess"
)

var clipCases = []TestCase{
	{
		Name:   "clip_circle",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			root := (&vectess.Node{}).Add(blackSquare(8, 8, 56, 56))
			root.Clipper = (&vectess.Node{}).Add(vectess.Circle{Center: pt(40, 40), Radius: 20})
			return &vectess.Scene{Root: root}
		},
	},
	{
		Name:   "clip_translated",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			root := (&vectess.Node{}).Add(blackSquare(8, 8, 56, 56))
			root.Clipper = &vectess.Node{
				Transform: matrix.Identity.Translate(20, 12),
				Shapes:    []*vectess.Shape{vectess.Circle{Radius: 18}.Shape()},
			}
			return &vectess.Scene{Root: root}
		},
	},
	{
		Name:   "clip_star_evenodd",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			root := (&vectess.Node{}).Add(blackSquare(4, 4, 60, 60))
			root.Clipper = (&vectess.Node{}).Add(filled(fivePointStar(32, 32, 28), vectess.Black, vectess.EvenOdd))
			return &vectess.Scene{Root: root}
		},
	},
	{
		Name:   "clip_nested",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			inner := (&vectess.Node{}).Add(blackSquare(0, 0, 64, 64))
			inner.Clipper = (&vectess.Node{}).Add(vectess.Rectangle{Rect: rect.Rect{LLx: 24, LLy: 0, URx: 64, URy: 64}})
			root := (&vectess.Node{}).AddChild(inner)
			root.Clipper = (&vectess.Node{}).Add(vectess.Circle{Center: pt(32, 32), Radius: 26})
			return &vectess.Scene{Root: root}
		},
	},
	{
		Name:   "clip_union",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			root := (&vectess.Node{}).Add(blackSquare(4, 4, 60, 60))
			root.Clipper = (&vectess.Node{}).Add(
				vectess.Circle{Center: pt(22, 22), Radius: 14},
				vectess.Circle{Center: pt(42, 42), Radius: 14},
			)
			return &vectess.Scene{Root: root}
		},
	},
	{
		Name:   "clip_stroke",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			root := (&vectess.Node{}).Add(stroked(corner(), pen(8, graphics.LineCapRound, graphics.LineJoinRound)))
			root.Clipper = (&vectess.Node{}).Add(vectess.Rectangle{Rect: rect.Rect{LLx: 0, LLy: 24, URx: 64, URy: 64}})
			return &vectess.Scene{Root: root}
		},
	},
}

func blackSquare(x0, y0, x1, y1 float64) vectess.Rectangle {
	return vectess.Rectangle{
		Rect: rect.Rect{LLx: x0, LLy: y0, URx: x1, URy: y1},
		Fill: vectess.SolidFill{Color: vectess.Black},
	}
}
