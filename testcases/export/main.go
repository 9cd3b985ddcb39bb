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

// Command export tessellates all test cases and writes the resulting
// meshes to JSON, for inspection with external tools.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/vectess"
	"seehuhn.de/go/vectess/testcases"
)

const outFile = "testdata/meshes.json"

func main() {
	vectess.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, &tc)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s_%s: %v\n", category, tc.Name, err)
				os.Exit(1)
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name       string         `json:"name"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	CTM        [6]float64     `json:"ctm"`
	Geometries []jsonGeometry `json:"geometries"`
	Warnings   []string       `json:"warnings,omitempty"`
}

type jsonGeometry struct {
	Kind     string       `json:"kind"` // "fill" or "stroke"
	Color    [4]float64   `json:"color"`
	Vertices [][2]float64 `json:"vertices"`
	UVs      [][2]float64 `json:"uvs,omitempty"`
	Indices  []uint32     `json:"indices"`
	Area     float64      `json:"area"`
}

func toJSON(category string, tc *testcases.TestCase) (jsonTestCase, error) {
	jtc := jsonTestCase{
		Name:   category + "_" + tc.Name,
		Width:  tc.Width,
		Height: tc.Height,
		CTM:    [6]float64(tc.Transform()),
	}

	t := vectess.NewTessellator(tc.TessellationOptions())
	geoms, err := t.Tessellate(tc.Scene())
	if err != nil {
		return jtc, err
	}
	for _, w := range t.Warnings() {
		jtc.Warnings = append(jtc.Warnings, w.String())
	}

	for i := range geoms {
		g := &geoms[i]
		jg := jsonGeometry{
			Kind:    "fill",
			Color:   [4]float64{g.Color.R, g.Color.G, g.Color.B, g.Color.A},
			Indices: g.Indices,
			Area:    g.Area(),
		}
		if g.Stroke != nil {
			jg.Kind = "stroke"
		}
		for _, p := range g.Vertices {
			jg.Vertices = append(jg.Vertices, [2]float64{p.X, p.Y})
		}
		for _, uv := range g.UVs {
			jg.UVs = append(jg.UVs, [2]float64{uv.X, uv.Y})
		}
		jtc.Geometries = append(jtc.Geometries, jg)
	}
	return jtc, nil
}
