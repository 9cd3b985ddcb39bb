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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess"
)

var fillCases = []TestCase{
	{
		Name:   "triangle",
		Width:  64,
		Height: 64,
		Scene:  single(filled(polygon(pt(10, 50), pt(32, 10), pt(54, 50)), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "star_nonzero",
		Width:  64,
		Height: 64,
		Scene:  single(filled(fivePointStar(32, 32, 25), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "star_evenodd",
		Width:  64,
		Height: 64,
		Scene:  single(filled(fivePointStar(32, 32, 25), vectess.Black, vectess.EvenOdd)),
	},
	{
		Name:   "rectangle",
		Width:  64,
		Height: 64,
		Scene: single(vectess.Rectangle{
			Rect: rect.Rect{LLx: 10, LLy: 10, URx: 54, URy: 54},
			Fill: vectess.SolidFill{Color: vectess.Black},
		}),
	},
	{
		Name:   "rounded_rectangle",
		Width:  64,
		Height: 64,
		Scene: single(vectess.Rectangle{
			Rect:  rect.Rect{LLx: 6, LLy: 12, URx: 58, URy: 52},
			Radii: vectess.Radii{TopLeft: pt(12, 12), TopRight: pt(4, 4), BottomRight: pt(20, 10)},
			Fill:  vectess.SolidFill{Color: vectess.Black},
		}),
	},
	{
		Name:   "overlapping_rect_nonzero",
		Width:  64,
		Height: 64,
		Scene:  single(filled(overlappingRectangles(), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "overlapping_rect_evenodd",
		Width:  64,
		Height: 64,
		Scene:  single(filled(overlappingRectangles(), vectess.Black, vectess.EvenOdd)),
	},
	{
		Name:   "ring_evenodd",
		Width:  64,
		Height: 64,
		Scene:  single(filled(ring(32, 32, 24, 12, false), vectess.Black, vectess.EvenOdd)),
	},
	{
		Name:   "ring_nonzero_reversed",
		Width:  64,
		Height: 64,
		Scene:  single(filled(ring(32, 32, 24, 12, true), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "ring_nonzero_same_direction",
		Width:  64,
		Height: 64,
		Scene:  single(filled(ring(32, 32, 24, 12, false), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "circle",
		Width:  64,
		Height: 64,
		Scene:  single(vectess.Circle{Center: pt(32, 32), Radius: 25, Fill: vectess.SolidFill{Color: vectess.Black}}),
	},
	{
		Name:   "ellipse",
		Width:  64,
		Height: 64,
		Scene:  single(vectess.Ellipse{Center: pt(32, 32), RX: 28, RY: 14, Fill: vectess.SolidFill{Color: vectess.Black}}),
	},
	{
		Name:   "many_small_shapes",
		Width:  128,
		Height: 128,
		Scene:  single(filled(manySmallShapes(8, 8), vectess.Black, vectess.NonZero)),
	},
	{
		Name:   "subpixel_offset",
		Width:  32,
		Height: 32,
		Scene: single(vectess.Rectangle{
			Rect: rect.Rect{LLx: 8.25, LLy: 8.75, URx: 23.5, URy: 20.125},
			Fill: vectess.SolidFill{Color: vectess.Black},
		}),
	},
}

// polygon builds a closed polygon through the given points.
func polygon(pts ...vec.Vec2) path.Path {
	return polyline(true, pts...)
}

// polyline builds a path made of straight lines through the given points.
func polyline(closed bool, pts ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i, p := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, []vec.Vec2{p}) {
				return
			}
		}
		if closed {
			yield(path.CmdClose, nil)
		}
	}
}

// concat joins the subpaths of several paths.
func concat(ps ...path.Path) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, p := range ps {
			for cmd, pts := range p {
				if !yield(cmd, pts) {
					return
				}
			}
		}
	}
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) path.Path {
	pts := make([]vec.Vec2, 5)
	for i := range 5 {
		// connect every second point
		angle := float64(2*i)*2*math.Pi/5 - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return polygon(pts...)
}

func square(cx, cy, r float64, reverse bool) path.Path {
	if reverse {
		return polygon(pt(cx-r, cy-r), pt(cx-r, cy+r), pt(cx+r, cy+r), pt(cx+r, cy-r))
	}
	return polygon(pt(cx-r, cy-r), pt(cx+r, cy-r), pt(cx+r, cy+r), pt(cx-r, cy+r))
}

// ring builds an outer square with an inner square cut-out.
func ring(cx, cy, outer, inner float64, reverseInner bool) path.Path {
	return concat(square(cx, cy, outer, false), square(cx, cy, inner, reverseInner))
}

func overlappingRectangles() path.Path {
	return concat(
		polygon(pt(8, 8), pt(40, 8), pt(40, 40), pt(8, 40)),
		polygon(pt(24, 24), pt(56, 24), pt(56, 56), pt(24, 56)),
	)
}

// manySmallShapes builds a grid of small triangles.
func manySmallShapes(rows, cols int) path.Path {
	const size, spacing = 5.0, 14.0
	var ps []path.Path
	for row := range rows {
		for col := range cols {
			cx := 10 + float64(col)*spacing
			cy := 10 + float64(row)*spacing
			ps = append(ps, polygon(pt(cx, cy-size), pt(cx+size, cy+size), pt(cx-size, cy+size)))
		}
	}
	return concat(ps...)
}
