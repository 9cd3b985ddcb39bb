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

var transformCases = []TestCase{
	{
		Name:   "node_scale_2x",
		Width:  128,
		Height: 128,
		Scene:  transformed(matrix.Scale(2, 2).Translate(24, 24), blackSquare(0, 0, 40, 40)),
	},
	{
		Name:   "node_rotate_45deg",
		Width:  64,
		Height: 64,
		Scene:  transformed(matrix.RotateDeg(45).Translate(32, 32), blackSquare(-14, -14, 14, 14)),
	},
	{
		Name:   "node_shear",
		Width:  64,
		Height: 64,
		Scene:  transformed(matrix.Matrix{1, 0, 0.5, 1, 0, 0}.Translate(24, 32), blackSquare(-16, -16, 16, 16)),
	},
	{
		Name:   "node_circle_to_ellipse",
		Width:  128,
		Height: 64,
		Scene: transformed(matrix.Scale(2, 1).Translate(64, 32), vectess.Circle{
			Radius: 24,
			Fill:   vectess.SolidFill{Color: vectess.Black},
		}),
	},
	{
		Name:   "node_nested",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			leaf := &vectess.Node{Transform: matrix.RotateDeg(30)}
			leaf.Add(blackSquare(-6, -6, 6, 6))
			mid := &vectess.Node{Transform: matrix.Scale(2, 2)}
			mid.AddChild(leaf)
			root := &vectess.Node{Transform: matrix.Identity.Translate(32, 32)}
			root.AddChild(mid)
			return &vectess.Scene{Root: root}
		},
	},
	{
		Name:   "node_shared_child",
		Width:  64,
		Height: 64,
		Scene: func() *vectess.Scene {
			child := (&vectess.Node{}).Add(vectess.Circle{Radius: 8, Fill: vectess.SolidFill{Color: vectess.Black}})
			a := (&vectess.Node{Transform: matrix.Identity.Translate(16, 16)}).AddChild(child)
			b := (&vectess.Node{Transform: matrix.Identity.Translate(48, 48)}).AddChild(child)
			return &vectess.Scene{Root: (&vectess.Node{}).AddChild(a, b)}
		},
	},
	{
		Name:   "stroke_nonuniform_scale",
		Width:  128,
		Height: 64,
		Scene: transformed(matrix.Scale(2, 1).Translate(64, 32), vectess.Rectangle{
			Rect:   rect.Rect{LLx: -20, LLy: -20, URx: 20, URy: 20},
			Stroke: pen(4, graphics.LineCapButt, graphics.LineJoinRound),
		}),
	},
	{
		Name:    "device_scale",
		Width:   128,
		Height:  128,
		Scene:   single(vectess.Circle{Center: pt(32, 32), Radius: 24, Fill: vectess.SolidFill{Color: vectess.Black}}),
		Options: vectess.TessellationOptions{StepDistance: 100, MaxCordDeviation: 0.025, MaxTanAngleDeviation: 0.05, SamplingStepSize: 0.01},
		CTM:     matrix.Scale(2, 2),
	},
}

// transformed returns a scene builder for a single node with the given
// transform.
func transformed(m matrix.Matrix, ds ...vectess.Drawable) func() *vectess.Scene {
	return func() *vectess.Scene {
		n := &vectess.Node{Transform: m}
		return &vectess.Scene{Root: (&vectess.Node{}).AddChild(n.Add(ds...))}
	}
}
