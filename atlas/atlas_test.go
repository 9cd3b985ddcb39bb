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
	"errors"
	"image"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess"
)

func gradientGeometry(g *vectess.GradientFill, uvs ...vec.Vec2) vectess.Geometry {
	verts := make([]vec.Vec2, len(uvs))
	copy(verts, uvs)
	return vectess.Geometry{
		Vertices: verts,
		UVs:      uvs,
		Indices:  []uint32{0, 1, 2},
		Color:    vectess.White,
		Fill:     g,
	}
}

func blackToWhite(tp vectess.GradientType, mode vectess.AddressMode) *vectess.GradientFill {
	return &vectess.GradientFill{
		Type: tp,
		Stops: []vectess.GradientStop{
			{Color: vectess.Black, Percentage: 0},
			{Color: vectess.White, Percentage: 1},
		},
		Addressing: mode,
	}
}

func TestShelfAllocator(t *testing.T) {
	a := newShelfAllocator(10, 10)

	r1, ok := a.allocate(6, 4)
	if !ok || r1 != image.Rect(0, 0, 6, 4) {
		t.Fatalf("first: %v %v", r1, ok)
	}
	r2, ok := a.allocate(4, 3)
	if !ok || r2 != image.Rect(6, 0, 10, 3) {
		t.Fatalf("second: %v %v", r2, ok)
	}
	r3, ok := a.allocate(5, 2)
	if !ok || r3 != image.Rect(0, 4, 5, 6) {
		t.Fatalf("third: %v %v", r3, ok)
	}
	// the last shelf may grow
	r4, ok := a.allocate(5, 3)
	if !ok || r4 != image.Rect(5, 4, 10, 7) {
		t.Fatalf("fourth: %v %v", r4, ok)
	}
	if _, ok := a.allocate(1, 4); ok {
		t.Error("allocation beyond the bottom edge succeeded")
	}
	if _, ok := a.allocate(11, 1); ok {
		t.Error("too wide allocation succeeded")
	}
	if a.usedW != 10 || a.usedH != 7 {
		t.Errorf("used area %dx%d, want 10x7", a.usedW, a.usedH)
	}
}

func TestShelfNoOverlap(t *testing.T) {
	a := newShelfAllocator(64, 64)
	var rects []image.Rectangle
	for i := range 40 {
		w, h := 3+i%7, 1+(i*5)%9
		r, ok := a.allocate(w, h)
		if !ok {
			continue
		}
		if r.Dx() != w || r.Dy() != h {
			t.Fatalf("got %v for %dx%d", r, w, h)
		}
		for _, s := range rects {
			if r.Overlaps(s) {
				t.Fatalf("%v overlaps %v", r, s)
			}
		}
		rects = append(rects, r)
	}
}

func TestGenerateNoGradients(t *testing.T) {
	geoms := []vectess.Geometry{{
		Vertices: []vec.Vec2{{}, {X: 1}, {Y: 1}},
		Indices:  []uint32{0, 1, 2},
		Fill:     vectess.SolidFill{Color: vectess.Red},
	}}
	a, err := Generate(geoms, 128)
	if err != nil {
		t.Fatal(err)
	}
	if a != nil {
		t.Errorf("expected no atlas, got %v", a.Image.Bounds())
	}
	a.FillUVs(geoms) // must be a no-op for the nil atlas
}

func TestGenerateShared(t *testing.T) {
	lin := blackToWhite(vectess.Linear, vectess.Clamp)
	rad := blackToWhite(vectess.Radial, vectess.Clamp)
	tri := []vec.Vec2{{}, {X: 1}, {Y: 1}}
	geoms := []vectess.Geometry{
		gradientGeometry(lin, tri...),
		gradientGeometry(rad, tri...),
		gradientGeometry(lin, tri...),
	}

	a, err := Generate(geoms, 128, WithRampSize(16), WithPadding(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(a.Entries))
	}
	el, ok := a.Lookup(lin)
	if !ok || el.Rect.Dx() != 16 || el.Rect.Dy() != 1 {
		t.Errorf("linear entry %v %v", el.Rect, ok)
	}
	er, ok := a.Lookup(rad)
	if !ok || er.Rect.Dx() != 16 || er.Rect.Dy() != 16 {
		t.Errorf("radial entry %v %v", er.Rect, ok)
	}
	if el.Rect.Overlaps(er.Rect.Inset(-1)) {
		t.Errorf("entries %v and %v overlap", el.Rect, er.Rect)
	}
	if !el.Rect.In(a.Image.Bounds()) || !er.Rect.In(a.Image.Bounds()) {
		t.Error("entry outside atlas image")
	}

	// ramp end points
	first := a.Image.NRGBAAt(el.Rect.Min.X, el.Rect.Min.Y)
	last := a.Image.NRGBAAt(el.Rect.Max.X-1, el.Rect.Min.Y)
	if first.R != 0 || first.A != 255 || last.R != 255 {
		t.Errorf("ramp from %v to %v", first, last)
	}

	// the padding repeats the edge pixels
	if got := a.Image.NRGBAAt(el.Rect.Min.X-1, el.Rect.Min.Y-1); got != first {
		t.Errorf("corner padding %v, want %v", got, first)
	}
	if got := a.Image.NRGBAAt(el.Rect.Max.X, el.Rect.Min.Y+1); got != last {
		t.Errorf("side padding %v, want %v", got, last)
	}
}

func TestGenerateOverflow(t *testing.T) {
	var geoms []vectess.Geometry
	tri := []vec.Vec2{{}, {X: 1}, {Y: 1}}
	for range 5 {
		geoms = append(geoms, gradientGeometry(blackToWhite(vectess.Radial, vectess.Clamp), tri...))
	}

	// each radial entry needs 20x20 pixels, only four fit
	a, err := Generate(geoms, 40, WithRampSize(16))
	if err == nil {
		t.Fatal("expected an overflow error")
	}
	if !errors.Is(err, ErrAtlasOverflow) {
		t.Errorf("error %v does not wrap ErrAtlasOverflow", err)
	}
	var oe *OverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("error %v is not an *OverflowError", err)
	}
	if oe.Width != 20 || oe.Height != 20 || oe.MaxDim != 40 {
		t.Errorf("unexpected error details %+v", oe)
	}
	if a == nil || len(a.Entries) != 4 {
		t.Fatalf("expected a partial atlas with four entries")
	}
	if _, ok := a.Lookup(oe.Fill); ok {
		t.Error("overflowing gradient has an atlas entry")
	}
}

func TestFillUVs(t *testing.T) {
	lin := blackToWhite(vectess.Linear, vectess.Mirror)
	rad := blackToWhite(vectess.Radial, vectess.Clamp)
	geoms := []vectess.Geometry{
		gradientGeometry(lin, vec.Vec2{X: 0}, vec.Vec2{X: 1.5}, vec.Vec2{X: -3, Y: 7}),
		gradientGeometry(rad, vec.Vec2{X: -1, Y: -1}, vec.Vec2{X: 0.5, Y: 0.5}, vec.Vec2{X: 2, Y: 1}),
	}
	orig := geoms[0].UVs

	a, err := Generate(geoms, 256)
	if err != nil {
		t.Fatal(err)
	}
	a.FillUVs(geoms)

	size := a.Image.Bounds().Size()
	for i := range geoms {
		e, _ := a.Lookup(geoms[i].Gradient())
		for _, uv := range geoms[i].UVs {
			x, y := uv.X*float64(size.X), uv.Y*float64(size.Y)
			if x < float64(e.Rect.Min.X) || x > float64(e.Rect.Max.X) ||
				y < float64(e.Rect.Min.Y) || y > float64(e.Rect.Max.Y) {
				t.Errorf("geometry %d: uv %v maps to (%g, %g) outside %v", i, uv, x, y, e.Rect)
			}
		}
	}

	// mirrored parameter 1.5 maps to the middle of the ramp
	e, _ := a.Lookup(lin)
	mid := float64(e.Rect.Min.X) + 0.5 + 0.5*float64(e.Rect.Dx()-1)
	k := slices.Index(geoms[0].Vertices, vec.Vec2{X: 1.5})
	if k < 0 {
		t.Fatal("vertex (1.5, 0) is missing")
	}
	if got := geoms[0].UVs[k].X * float64(size.X); abs(got-mid) > 1e-9 {
		t.Errorf("mirrored u = %g, want %g", got, mid)
	}

	if orig[1] != (vec.Vec2{X: 1.5}) {
		t.Error("FillUVs modified the original UV slice")
	}
}

func TestFillUVsLinearPeriods(t *testing.T) {
	// A 10x10 square where the gradient parameter runs from -1 to 2.
	for _, mode := range []vectess.AddressMode{vectess.Clamp, vectess.Repeat, vectess.Mirror} {
		gf := blackToWhite(vectess.Linear, mode)
		geoms := []vectess.Geometry{{
			Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
			UVs:      []vec.Vec2{{X: -1}, {X: 2}, {X: 2, Y: 1}, {X: -1, Y: 1}},
			Indices:  []uint32{0, 1, 2, 0, 2, 3},
			Color:    vectess.White,
			Fill:     gf,
		}}
		a, err := Generate(geoms, 256, WithRampSize(16))
		if err != nil {
			t.Fatal(err)
		}
		a.FillUVs(geoms)

		g := &geoms[0]
		if len(g.UVs) != len(g.Vertices) {
			t.Fatalf("mode %d: %d UVs for %d vertices", mode, len(g.UVs), len(g.Vertices))
		}
		if area := g.Area(); math.Abs(area-100) > 1e-9 {
			t.Errorf("mode %d: area = %g, want 100", mode, area)
		}

		// Inside every triangle, interpolated texture coordinates must
		// match the addressed gradient parameter.
		e, _ := a.Lookup(gf)
		tw := float64(a.Image.Bounds().Dx())
		for k := 0; k+2 < len(g.Indices); k += 3 {
			i0, i1, i2 := g.Indices[k], g.Indices[k+1], g.Indices[k+2]
			p0, p1, p2 := g.Vertices[i0], g.Vertices[i1], g.Vertices[i2]
			if (p1.X-p0.X)*(p2.Y-p0.Y)-(p1.Y-p0.Y)*(p2.X-p0.X) <= 0 {
				t.Errorf("mode %d: triangle %d is not positively oriented", mode, k/3)
			}
			for _, w := range [][3]float64{{1. / 3, 1. / 3, 1. / 3}, {0.6, 0.2, 0.2}, {0.1, 0.1, 0.8}} {
				x := w[0]*p0.X + w[1]*p1.X + w[2]*p2.X
				u := w[0]*g.UVs[i0].X + w[1]*g.UVs[i1].X + w[2]*g.UVs[i2].X
				want := texel(e.Rect.Min.X, e.Rect.Dx(), gf.Address(-1+0.3*x)) / tw
				if math.Abs(u-want) > 1e-9 {
					t.Errorf("mode %d: at x=%g got u=%g, want %g", mode, x, u, want)
				}
			}
		}
	}
}

func TestFillUVsRepeatSamplesRamp(t *testing.T) {
	// Three periods of a repeated gradient across the square.
	gf := blackToWhite(vectess.Linear, vectess.Repeat)
	geoms := []vectess.Geometry{{
		Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		UVs:      []vec.Vec2{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 0, Y: 1}},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
		Color:    vectess.White,
		Fill:     gf,
	}}
	a, err := Generate(geoms, 256)
	if err != nil {
		t.Fatal(err)
	}
	a.FillUVs(geoms)

	distinct := make(map[float64]bool)
	for _, uv := range geoms[0].UVs {
		distinct[uv.X] = true
	}
	if len(distinct) < 2 {
		t.Errorf("all vertices use the same texel: %v", geoms[0].UVs)
	}
	if n := geoms[0].NumTriangles(); n < 6 {
		t.Errorf("got %d triangles, want at least one pair per period", n)
	}
}

func TestFillUVsRadialDomain(t *testing.T) {
	gf := blackToWhite(vectess.Radial, vectess.Repeat)
	geoms := []vectess.Geometry{
		gradientGeometry(gf, vec.Vec2{X: -1, Y: -1}, vec.Vec2{X: 2, Y: -1}, vec.Vec2{X: 2, Y: 2}),
	}
	a, err := Generate(geoms, 256, WithRampSize(16))
	if err != nil {
		t.Fatal(err)
	}
	e, _ := a.Lookup(gf)
	if e.Domain.LLx != -1 || e.Domain.LLy != -1 || e.Domain.URx != 2 || e.Domain.URy != 2 {
		t.Fatalf("domain %v, want [-1, 2]x[-1, 2]", e.Domain)
	}
	a.FillUVs(geoms)

	// The corner (2, 2) is outside the unit square.  Its texel holds the
	// repeated gradient there.
	size := a.Image.Bounds().Size()
	uv := geoms[0].UVs[2]
	x := int(math.Floor(uv.X * float64(size.X)))
	y := int(math.Floor(uv.Y * float64(size.Y)))
	want := gf.ColorAt(gf.Param(vec.Vec2{X: 2, Y: 2})).NRGBA()
	if got := a.Image.NRGBAAt(x, y); got != want {
		t.Errorf("texel (%d, %d) = %v, want %v", x, y, got, want)
	}
	if want.R == 255 {
		t.Error("test point must not be at the end of the ramp")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
