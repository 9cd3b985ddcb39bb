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
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/vectess"
)

var dashCases = []TestCase{
	{
		Name:   "dash_equal",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(5, 32, 59), dashes(4, graphics.LineCapButt, 0, 6, 6))),
	},
	{
		Name:   "dash_three_element",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(5, 32, 59), dashes(4, graphics.LineCapButt, 0, 5, 3, 8))),
	},
	{
		Name:   "dash_phase_half",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(5, 32, 59), dashes(4, graphics.LineCapButt, 5, 10, 10))),
	},
	{
		Name:   "dash_phase_negative",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(5, 32, 59), dashes(4, graphics.LineCapButt, -3, 10, 5))),
	},
	{
		Name:   "dash_zero_round",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(8, 32, 56), dashes(6, graphics.LineCapRound, 0, 0, 12))),
	},
	{
		Name:   "dash_zero_square",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(horizontalLine(8, 32, 56), dashes(6, graphics.LineCapSquare, 0, 0, 12))),
	},
	{
		Name:   "dash_corner_in_dash",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(corner(), dashes(4, graphics.LineCapButt, 0, 30, 4))),
	},
	{
		Name:   "dash_closed_square",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(square(32, 32, 20, false), dashes(4, graphics.LineCapButt, 0, 12, 8))),
	},
	{
		Name:   "dash_closed_same_dash",
		Width:  64,
		Height: 64,
		Scene:  single(stroked(square(32, 32, 20, false), dashes(4, graphics.LineCapRound, 30, 40, 8))),
	},
}

// dashes returns a black dashed stroke with miter joins.
func dashes(width float64, lc graphics.LineCapStyle, offset float64, pattern ...float64) *vectess.Stroke {
	st := pen(width, lc, graphics.LineJoinMiter)
	st.Pattern = pattern
	st.PatternOffset = offset
	return st
}
