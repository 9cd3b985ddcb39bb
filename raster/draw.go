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

package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess"
	"seehuhn.de/go/vectess/mesh"
)

// DrawMesh paints m onto dst, using source-over compositing.  The matrix
// ctm maps mesh coordinates to pixel coordinates of dst.
//
// The colour of each pixel is taken from the last triangle containing the
// pixel centre, interpolating the vertex colours.  If the mesh has texture
// coordinates and tex is not nil, the interpolated colour is multiplied by
// the texel at the interpolated texture coordinate.  The alpha channel is
// scaled by the exact coverage of the mesh, so the outer edges of the mesh
// are anti-aliased.
func DrawMesh(dst *image.NRGBA, m *mesh.Mesh, tex image.Image, ctm matrix.Matrix) {
	b := dst.Bounds()
	if b.Empty() || len(m.Indices) < 3 {
		return
	}

	d := &meshDrawer{
		dst:  dst,
		m:    m,
		tex:  tex,
		dev:  make([]vec.Vec2, len(m.Vertices)),
		tri:  make([]int32, b.Dx()*b.Dy()),
		dist: make([]float64, b.Dx()*b.Dy()),
	}
	for i, p := range m.Vertices {
		x, y := ctm.Apply(p.X, p.Y)
		d.dev[i] = vec.Vec2{X: x, Y: y}
	}
	for i := range d.tri {
		d.tri[i] = -1
	}
	for k := 0; k+2 < len(m.Indices); k += 3 {
		d.assign(k / 3)
	}

	r := NewRasterizer(rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	})
	r.CTM = ctm
	r.FillTriangles(m.Vertices, m.Indices, d.shadeRow)
}

type meshDrawer struct {
	dst *image.NRGBA
	m   *mesh.Mesh
	tex image.Image
	dev []vec.Vec2

	// tri holds the triangle used for each pixel, or -1.  dist is 0 if the
	// pixel centre is inside the triangle, and the barycentric distance to
	// the triangle otherwise.
	tri  []int32
	dist []float64
}

// assign records triangle k for all pixels whose centre lies inside the
// triangle.  Pixels next to the triangle which are not yet covered by any
// other triangle are assigned to the closest one.
func (d *meshDrawer) assign(k int) {
	a, b, c := d.corners(k)
	det := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if math.Abs(det) < 1e-12 {
		return
	}

	bounds := d.dst.Bounds()
	x0 := max(int(math.Floor(min(a.X, b.X, c.X)))-1, bounds.Min.X)
	x1 := min(int(math.Ceil(max(a.X, b.X, c.X)))+1, bounds.Max.X)
	y0 := max(int(math.Floor(min(a.Y, b.Y, c.Y)))-1, bounds.Min.Y)
	y1 := min(int(math.Ceil(max(a.Y, b.Y, c.Y)))+1, bounds.Max.Y)

	w := bounds.Dx()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			l := barycentric(a, b, c, det, p)
			m := min(l[0], l[1], l[2])
			idx := (y-bounds.Min.Y)*w + (x - bounds.Min.X)
			switch {
			case m >= -1e-9:
				d.tri[idx] = int32(k)
				d.dist[idx] = 0
			case d.tri[idx] < 0 || -m < d.dist[idx]:
				d.tri[idx] = int32(k)
				d.dist[idx] = -m
			}
		}
	}
}

func (d *meshDrawer) corners(k int) (a, b, c vec.Vec2) {
	idx := d.m.Indices[3*k : 3*k+3]
	return d.dev[idx[0]], d.dev[idx[1]], d.dev[idx[2]]
}

// shadeRow composites one row of coverage values onto the image.
func (d *meshDrawer) shadeRow(y, xMin int, coverage []float32) {
	bounds := d.dst.Bounds()
	w := bounds.Dx()
	for i, cov := range coverage {
		if cov <= 0 {
			continue
		}
		x := xMin + i
		k := d.tri[(y-bounds.Min.Y)*w+(x-bounds.Min.X)]
		if k < 0 {
			continue
		}
		col := d.shade(int(k), vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5})
		blend(d.dst, x, y, col, float64(cov))
	}
}

// shade returns the colour of triangle k at the device point p.
func (d *meshDrawer) shade(k int, p vec.Vec2) vectess.Color {
	a, b, c := d.corners(k)
	det := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	l := barycentric(a, b, c, det, p)

	// clamp to the triangle, for pixels outside all triangles
	var sum float64
	for i := range l {
		l[i] = max(l[i], 0)
		sum += l[i]
	}
	for i := range l {
		l[i] /= sum
	}

	idx := d.m.Indices[3*k : 3*k+3]
	var col vectess.Color
	var uv vec.Vec2
	for i, vi := range idx {
		ci := d.m.Colors[vi]
		col.R += l[i] * ci.R
		col.G += l[i] * ci.G
		col.B += l[i] * ci.B
		col.A += l[i] * ci.A
		if d.m.UVs != nil {
			uv = uv.Add(d.m.UVs[vi].Mul(l[i]))
		}
	}
	if d.m.UVs != nil && d.tex != nil {
		t := sample(d.tex, uv)
		col.R *= t.R
		col.G *= t.G
		col.B *= t.B
		col.A *= t.A
	}
	return col
}

// barycentric returns the barycentric coordinates of p with respect to the
// triangle abc, whose doubled signed area is det.
func barycentric(a, b, c vec.Vec2, det float64, p vec.Vec2) [3]float64 {
	l1 := ((p.X-a.X)*(c.Y-a.Y) - (p.Y-a.Y)*(c.X-a.X)) / det
	l2 := ((b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)) / det
	return [3]float64{1 - l1 - l2, l1, l2}
}

// sample returns the texel of tex at the normalised texture coordinate uv,
// using nearest-neighbour lookup.
func sample(tex image.Image, uv vec.Vec2) vectess.Color {
	b := tex.Bounds()
	x := b.Min.X + min(max(int(math.Floor(uv.X*float64(b.Dx()))), 0), b.Dx()-1)
	y := b.Min.Y + min(max(int(math.Floor(uv.Y*float64(b.Dy()))), 0), b.Dy()-1)
	c := color.NRGBAModel.Convert(tex.At(x, y)).(color.NRGBA)
	return vectess.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// blend composites col with the given coverage over the pixel (x, y).
func blend(dst *image.NRGBA, x, y int, col vectess.Color, coverage float64) {
	if col.A <= 0 {
		return
	}
	mask := image.NewUniform(color.Alpha16{A: uint16(min(coverage, 1)*0xffff + 0.5)})
	draw.DrawMask(dst, image.Rect(x, y, x+1, y+1), image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}
