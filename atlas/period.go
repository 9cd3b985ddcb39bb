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

package atlas

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess"
)

// maxCutsPerTriangle limits the number of period boundaries a single
// triangle is split at.  Triangles crossing more boundaries are addressed
// per vertex.
const maxCutsPerTriangle = 4096

// periodSplitter cuts the triangles of a linear gradient geometry along
// the lines where the gradient parameter crosses a period boundary.  Inside
// each piece the addressed parameter is an affine function of the
// position, so it can be interpolated linearly between the vertices.
type periodSplitter struct {
	g  *vectess.Geometry
	gf *vectess.GradientFill

	verts   []vec.Vec2
	params  []float64 // addressed gradient parameter, in [0, 1]
	indices []uint32
	index   map[periodVertex]uint32

	poly  []periodVertex
	cuts  []float64
	pos   []vec.Vec2
	uvPar []float64
}

// periodVertex identifies an output vertex.  Original vertices have a == b.
// Vertices created by a cut lie on the edge from a to b, where the
// parameter equals cut.
type periodVertex struct {
	a, b   uint32
	cut    float64
	period float64
}

// split replaces the vertices and indices of the geometry by the cut
// pieces.  The result has one addressed parameter per vertex.
func (s *periodSplitter) split(g *vectess.Geometry) (verts []vec.Vec2, params []float64, indices []uint32) {
	s.g = g
	s.gf = g.Gradient()
	s.verts = make([]vec.Vec2, 0, len(g.Vertices))
	s.params = make([]float64, 0, len(g.Vertices))
	s.indices = make([]uint32, 0, len(g.Indices))
	s.index = make(map[periodVertex]uint32, len(g.Vertices))

	s.uvPar = s.uvPar[:0]
	for _, uv := range g.UVs {
		s.uvPar = append(s.uvPar, s.gf.Param(uv))
	}

	for k := 0; k+2 < len(g.Indices); k += 3 {
		s.triangle(g.Indices[k : k+3])
	}
	return s.verts, s.params, s.indices
}

func (s *periodSplitter) triangle(tri []uint32) {
	t0, t1, t2 := s.uvPar[tri[0]], s.uvPar[tri[1]], s.uvPar[tri[2]]
	tMin, tMax := min(t0, t1, t2), max(t0, t1, t2)

	s.cuts = s.cuts[:0]
	switch s.gf.Addressing {
	case vectess.Repeat, vectess.Mirror:
		first, last := math.Floor(tMin)+1, math.Ceil(tMax)-1
		if last-first >= maxCutsPerTriangle {
			vectess.Logger().Debug("gradient triangle spans too many periods",
				"periods", last-first+1)
			for _, i := range tri {
				s.emit(s.vertex(i, math.Floor(s.uvPar[i])))
			}
			return
		}
		for c := first; c <= last; c++ {
			s.cuts = append(s.cuts, c)
		}
	default:
		for _, c := range []float64{0, 1} {
			if c > tMin && c < tMax {
				s.cuts = append(s.cuts, c)
			}
		}
	}

	lo := tMin
	for i := 0; i <= len(s.cuts); i++ {
		hi := tMax
		if i < len(s.cuts) {
			hi = s.cuts[i]
		}
		s.piece(tri, lo, hi)
		lo = hi
	}
}

// piece emits the part of the triangle where the parameter lies between
// lo and hi, as a triangle fan.
func (s *periodSplitter) piece(tri []uint32, lo, hi float64) {
	period := math.Floor((lo + hi) / 2)

	s.poly = s.poly[:0]
	for j := range 3 {
		a, b := tri[j], tri[(j+1)%3]
		ta, tb := s.uvPar[a], s.uvPar[b]
		if ta >= lo && ta <= hi {
			s.poly = append(s.poly, periodVertex{a: a, b: a, period: period})
		}
		// boundary crossings in the order they occur along the edge
		bounds := [2]float64{lo, hi}
		if tb < ta {
			bounds[0], bounds[1] = hi, lo
		}
		for _, c := range bounds {
			if (ta < c && c < tb) || (tb < c && c < ta) {
				s.poly = append(s.poly, periodVertex{a: min(a, b), b: max(a, b), cut: c, period: period})
			}
		}
	}
	if len(s.poly) < 3 {
		return
	}

	s.pos = s.pos[:0]
	for _, v := range s.poly {
		s.pos = append(s.pos, s.position(v))
	}
	if area(s.pos) == 0 {
		return
	}

	first := s.lookup(s.poly[0])
	for j := 1; j+1 < len(s.poly); j++ {
		s.indices = append(s.indices, first, s.lookup(s.poly[j]), s.lookup(s.poly[j+1]))
	}
}

// vertex returns the key of an original vertex in the given period.
func (s *periodSplitter) vertex(i uint32, period float64) periodVertex {
	return periodVertex{a: i, b: i, period: period}
}

func (s *periodSplitter) emit(v periodVertex) {
	s.indices = append(s.indices, s.lookup(v))
}

// lookup returns the output index of v, adding the vertex if needed.
func (s *periodSplitter) lookup(v periodVertex) uint32 {
	if idx, ok := s.index[v]; ok {
		return idx
	}
	idx := uint32(len(s.verts))
	s.index[v] = idx

	var t float64
	if v.a == v.b {
		t = s.uvPar[v.a]
	} else {
		t = v.cut
	}
	s.verts = append(s.verts, s.position(v))
	s.params = append(s.params, addressInPeriod(s.gf.Addressing, t, v.period))
	return idx
}

func (s *periodSplitter) position(v periodVertex) vec.Vec2 {
	pa := s.g.Vertices[v.a]
	if v.a == v.b {
		return pa
	}
	ta, tb := s.uvPar[v.a], s.uvPar[v.b]
	w := (v.cut - ta) / (tb - ta)
	return pa.Add(s.g.Vertices[v.b].Sub(pa).Mul(w))
}

// addressInPeriod applies the address mode to the parameter t, for a point
// inside the period [period, period+1].  Unlike GradientFill.Address, the
// end points of the period map to the values of the period's own ramp.
func addressInPeriod(mode vectess.AddressMode, t, period float64) float64 {
	var u float64
	switch mode {
	case vectess.Repeat:
		u = t - period
	case vectess.Mirror:
		u = t - period
		if math.Mod(math.Abs(period), 2) == 1 {
			u = 1 - u
		}
	default:
		u = t
	}
	return clamp01(u)
}

// area returns twice the signed area of the polygon.
func area(poly []vec.Vec2) float64 {
	var a float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.X*q.Y - p.Y*q.X
	}
	return a
}
