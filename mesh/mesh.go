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

// Package mesh packs tessellated geometries into a single vertex buffer.
package mesh

import (
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess"
)

// Mesh is an indexed triangle list with per-vertex colours and texture
// coordinates.
type Mesh struct {
	Vertices []vec.Vec2

	// UVs has one entry per vertex if any of the packed geometries has
	// texture coordinates, and is nil otherwise.  Vertices of geometries
	// without texture coordinates get (0, 0).
	UVs []vec.Vec2

	Colors  []vectess.Color
	Indices []uint32
}

// Pack concatenates the geometries into a new mesh.  Vertex positions are
// multiplied by scale.
func Pack(geoms []vectess.Geometry, scale float64) *Mesh {
	m := &Mesh{}
	m.Fill(geoms, scale)
	return m
}

// Fill replaces the contents of m by the given geometries, reusing the
// existing buffers where possible.  This is useful for meshes which are
// updated every frame.
func (m *Mesh) Fill(geoms []vectess.Geometry, scale float64) {
	var nv, ni int
	hasUV := false
	for i := range geoms {
		nv += len(geoms[i].Vertices)
		ni += len(geoms[i].Indices)
		if geoms[i].UVs != nil {
			hasUV = true
		}
	}

	m.Vertices = slices.Grow(m.Vertices[:0], nv)
	m.Colors = slices.Grow(m.Colors[:0], nv)
	m.Indices = slices.Grow(m.Indices[:0], ni)
	if hasUV {
		m.UVs = slices.Grow(m.UVs[:0], nv)
	} else {
		m.UVs = nil
	}

	for i := range geoms {
		g := &geoms[i]
		base := uint32(len(m.Vertices))
		for _, p := range g.Vertices {
			m.Vertices = append(m.Vertices, p.Mul(scale))
			m.Colors = append(m.Colors, g.Color)
		}
		if hasUV {
			if len(g.UVs) == len(g.Vertices) {
				m.UVs = append(m.UVs, g.UVs...)
			} else {
				m.UVs = append(m.UVs, make([]vec.Vec2, len(g.Vertices))...)
			}
		}
		for _, idx := range g.Indices {
			m.Indices = append(m.Indices, base+idx)
		}
	}
}

// NumTriangles returns the number of triangles in m.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Bounds returns the bounding box of the vertices.  The result is the zero
// rectangle for an empty mesh.
func (m *Mesh) Bounds() rect.Rect {
	if len(m.Vertices) == 0 {
		return rect.Rect{}
	}
	p := m.Vertices[0]
	r := rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
	for _, p := range m.Vertices[1:] {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return r
}
