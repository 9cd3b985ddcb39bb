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
	"errors"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/vectess"
)

// All contains all test cases, grouped by category.
// The category name is used as a prefix in output file names.
var All = map[string][]TestCase{
	"fill":      fillCases,
	"stroke":    strokeCases,
	"curve":     curveCases,
	"dash":      dashCases,
	"clip":      clipCases,
	"gradient":  gradientCases,
	"transform": transformCases,
	"demo":      demoCases,
}

// FillOnly reports whether the scene of tc only contains fills, without
// strokes or clipping.  For such scenes, the tessellated mesh covers the
// same area as the filled outlines.
func (tc *TestCase) FillOnly() bool {
	errNotFill := errors.New("not fill-only")
	err := tc.Scene().Walk(func(n *vectess.Node, _ matrix.Matrix) error {
		if n.Clipper != nil {
			return errNotFill
		}
		for _, sh := range n.Shapes {
			if sh.Fill == nil || sh.Stroke != nil && sh.Stroke.HalfThickness > 0 {
				return errNotFill
			}
		}
		return nil
	})
	return err == nil
}
