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

// Command genpdf writes preview images of the tessellated test cases.
// For every test case, a PDF file shows the triangles as a wireframe,
// and a PNG file shows the mesh rendered with the gradient atlas.
// Run from the module root directory.
package main

import (
	"fmt"
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/vectess"
	"seehuhn.de/go/vectess/atlas"
	"seehuhn.de/go/vectess/mesh"
	"seehuhn.de/go/vectess/raster"
	"seehuhn.de/go/vectess/testcases"
)

const outDir = "testdata/preview"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			geoms, err := tc.Tessellate()
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			pdfPath := filepath.Join(outDir, name+".pdf")
			if err := generatePDF(&tc, geoms, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			pngPath := filepath.Join(outDir, name+".png")
			if err := renderPNG(&tc, geoms, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

// generatePDF draws every triangle, filled with the grey value of its
// geometry colour and outlined with a thin line.
func generatePDF(tc *testcases.TestCase, geoms []vectess.Geometry, pdfPath string) error {
	// Page size in points (1 point = 1 pixel at 72 DPI)
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left; test cases assume top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(tc.Height)})
	if ctm := tc.Transform(); ctm != matrix.Identity {
		page.Transform(ctm)
	}

	// a hairline of a quarter pixel, independent of the CTM
	scale := tc.Transform()
	lw := 0.25 / max(abs(scale[0])+abs(scale[1]), abs(scale[2])+abs(scale[3]), 1e-6)
	page.SetLineWidth(lw)
	page.SetLineJoin(graphics.LineJoinBevel)
	page.SetStrokeColor(color.DeviceGray(0))

	for i := range geoms {
		g := &geoms[i]
		page.SetFillColor(color.DeviceGray(grey(g.Color)))
		for k := 0; k+2 < len(g.Indices); k += 3 {
			a, b, c := g.Vertices[g.Indices[k]], g.Vertices[g.Indices[k+1]], g.Vertices[g.Indices[k+2]]
			page.MoveTo(a.X, a.Y)
			page.LineTo(b.X, b.Y)
			page.LineTo(c.X, c.Y)
			page.ClosePath()
		}
		page.Fill()

		for k := 0; k+2 < len(g.Indices); k += 3 {
			a, b, c := g.Vertices[g.Indices[k]], g.Vertices[g.Indices[k+1]], g.Vertices[g.Indices[k+2]]
			page.MoveTo(a.X, a.Y)
			page.LineTo(b.X, b.Y)
			page.LineTo(c.X, c.Y)
			page.ClosePath()
		}
		page.Stroke()
	}

	return page.Close()
}

// renderPNG renders the mesh in colour, using the gradient atlas.
func renderPNG(tc *testcases.TestCase, geoms []vectess.Geometry, pngPath string) error {
	a, err := atlas.Generate(geoms, 1024)
	if err != nil {
		return err
	}
	a.FillUVs(geoms)
	m := mesh.Pack(geoms, 1)

	img := image.NewNRGBA(image.Rect(0, 0, tc.Width, tc.Height))
	var tex image.Image
	if a != nil {
		tex = a.Image
	}
	raster.DrawMesh(img, m, tex, tc.Transform())

	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// grey returns the luminance of c, composited over white.
func grey(c vectess.Color) float64 {
	y := 0.299*c.R + 0.587*c.G + 0.114*c.B
	return c.A*y + (1 - c.A)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
