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

// Package atlas packs the gradients used by a tessellated scene into a
// single texture.
//
// Every distinct *vectess.GradientFill gets one entry.  Linear gradients
// are stored as a one-pixel high colour ramp covering one period, radial
// gradients as a square image of the part of gradient space used by their
// geometries.  Each entry is surrounded by a border
// of repeated edge pixels, so that bilinear sampling near the edge of an
// entry does not pick up colours from its neighbours.
package atlas

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"slices"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess"
)

// ErrAtlasOverflow indicates that a gradient did not fit into the atlas.
var ErrAtlasOverflow = errors.New("gradient does not fit into atlas")

// OverflowError describes a gradient which could not be placed.
type OverflowError struct {
	Fill *vectess.GradientFill

	// Width and Height give the space required, including padding.
	Width, Height int

	// MaxDim is the maximal width and height of the atlas.
	MaxDim int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("atlas: %dx%d region does not fit into %dx%d atlas",
		e.Width, e.Height, e.MaxDim, e.MaxDim)
}

func (e *OverflowError) Unwrap() error {
	return ErrAtlasOverflow
}

// Entry locates one gradient in the atlas image.
type Entry struct {
	Fill *vectess.GradientFill

	// Rect is the area of the gradient data, without padding.
	Rect image.Rectangle

	// Domain is the region of gradient space stored in Rect.  For linear
	// gradients this is the unit square.
	Domain rect.Rect
}

// Atlas is a texture containing all gradients of a set of geometries.
type Atlas struct {
	Image   *image.NRGBA
	Entries []Entry

	index map[*vectess.GradientFill]int
}

// Lookup returns the atlas entry for the given gradient.
func (a *Atlas) Lookup(g *vectess.GradientFill) (Entry, bool) {
	if a == nil {
		return Entry{}, false
	}
	i, ok := a.index[g]
	if !ok {
		return Entry{}, false
	}
	return a.Entries[i], true
}

// Option configures Generate.
type Option func(*config)

type config struct {
	rampSize int
	padding  int
}

// WithRampSize sets the resolution of the gradient ramps.  Linear
// gradients use size×1 pixels, radial gradients size×size pixels.
func WithRampSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.rampSize = size
		}
	}
}

// WithPadding sets the width of the border around each entry.
func WithPadding(pixels int) Option {
	return func(c *config) {
		if pixels >= 0 {
			c.padding = pixels
		}
	}
}

// Default values for the Generate options.
const (
	DefaultRampSize = 64
	DefaultPadding  = 2
)

// Generate renders all gradients used by geoms into an atlas whose width
// and height do not exceed maxDim.  If no geometry uses a gradient, the
// result is nil.
//
// Gradients which do not fit are left out, and an *OverflowError is
// reported for each of them.  In this case both the (partial) atlas and
// the joined errors are returned.
func Generate(geoms []vectess.Geometry, maxDim int, opts ...Option) (*Atlas, error) {
	cfg := config{rampSize: DefaultRampSize, padding: DefaultPadding}
	for _, o := range opts {
		o(&cfg)
	}

	var fills []*vectess.GradientFill
	domains := make(map[*vectess.GradientFill]rect.Rect)
	for i := range geoms {
		g := geoms[i].Gradient()
		if g == nil {
			continue
		}
		dom, seen := domains[g]
		if !seen {
			fills = append(fills, g)
			dom = unitSquare
		}
		if g.Type == vectess.Radial {
			for _, uv := range geoms[i].UVs {
				dom.Add(uv.X, uv.Y)
			}
		}
		domains[g] = dom
	}
	if len(fills) == 0 {
		return nil, nil
	}

	// Place tall items first, then keep the order of first use.
	order := make([]int, len(fills))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		return cmp.Compare(cfg.height(fills[j]), cfg.height(fills[i]))
	})

	alloc := newShelfAllocator(maxDim, maxDim)
	placed := make([]image.Rectangle, len(fills))
	ok := make([]bool, len(fills))
	var errs []error
	for _, i := range order {
		w := cfg.rampSize + 2*cfg.padding
		h := cfg.height(fills[i]) + 2*cfg.padding
		r, fits := alloc.allocate(w, h)
		if !fits {
			err := &OverflowError{Fill: fills[i], Width: w, Height: h, MaxDim: maxDim}
			vectess.Logger().Warn("gradient does not fit into atlas",
				slog.Int("width", w), slog.Int("height", h), slog.Int("max", maxDim))
			errs = append(errs, err)
			continue
		}
		placed[i] = r.Inset(cfg.padding)
		ok[i] = true
	}

	a := &Atlas{
		Image: image.NewNRGBA(image.Rect(0, 0, max(alloc.usedW, 1), max(alloc.usedH, 1))),
		index: make(map[*vectess.GradientFill]int),
	}
	for i, g := range fills {
		if !ok[i] {
			continue
		}
		r := placed[i]
		dom := domains[g]
		renderGradient(a.Image, r, g, dom)
		extrude(a.Image, r, cfg.padding)
		a.index[g] = len(a.Entries)
		a.Entries = append(a.Entries, Entry{Fill: g, Rect: r, Domain: dom})
	}
	return a, errors.Join(errs...)
}

func (c *config) height(g *vectess.GradientFill) int {
	if g.Type == vectess.Radial {
		return c.rampSize
	}
	return 1
}

var unitSquare = rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 1}

// renderGradient draws g into the rectangle r of img.  The first and last
// pixel centres of r correspond to the edges of dom.
func renderGradient(img *image.NRGBA, r image.Rectangle, g *vectess.GradientFill, dom rect.Rect) {
	w, h := r.Dx(), r.Dy()
	if g.Type != vectess.Radial {
		for i := range w {
			c := g.ColorAt(pixelParam(i, w)).NRGBA()
			for y := r.Min.Y; y < r.Max.Y; y++ {
				img.SetNRGBA(r.Min.X+i, y, c)
			}
		}
		return
	}
	for j := range h {
		for i := range w {
			p := vec.Vec2{
				X: dom.LLx + pixelParam(i, w)*dom.Dx(),
				Y: dom.LLy + pixelParam(j, h)*dom.Dy(),
			}
			img.SetNRGBA(r.Min.X+i, r.Min.Y+j, g.ColorAt(g.Param(p)).NRGBA())
		}
	}
}

// pixelParam is the inverse of texel.
func pixelParam(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

// extrude fills a border of the given width around r by repeating the
// edge pixels of r.
func extrude(img *image.NRGBA, r image.Rectangle, pad int) {
	if pad <= 0 {
		return
	}
	nn := draw.NearestNeighbor
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y

	// sides
	nn.Scale(img, image.Rect(x0-pad, y0, x0, y1), img, image.Rect(x0, y0, x0+1, y1), draw.Src, nil)
	nn.Scale(img, image.Rect(x1, y0, x1+pad, y1), img, image.Rect(x1-1, y0, x1, y1), draw.Src, nil)
	nn.Scale(img, image.Rect(x0, y0-pad, x1, y0), img, image.Rect(x0, y0, x1, y0+1), draw.Src, nil)
	nn.Scale(img, image.Rect(x0, y1, x1, y1+pad), img, image.Rect(x0, y1-1, x1, y1), draw.Src, nil)

	// corners
	nn.Scale(img, image.Rect(x0-pad, y0-pad, x0, y0), img, image.Rect(x0, y0, x0+1, y0+1), draw.Src, nil)
	nn.Scale(img, image.Rect(x1, y0-pad, x1+pad, y0), img, image.Rect(x1-1, y0, x1, y0+1), draw.Src, nil)
	nn.Scale(img, image.Rect(x0-pad, y1, x0, y1+pad), img, image.Rect(x0, y1-1, x0+1, y1), draw.Src, nil)
	nn.Scale(img, image.Rect(x1, y1, x1+pad, y1+pad), img, image.Rect(x1-1, y1-1, x1, y1), draw.Src, nil)
}

// FillUVs replaces the gradient-space coordinates of all gradient
// geometries by texture coordinates in the atlas, in the range [0, 1].
// Geometries whose gradient has no atlas entry are left unchanged.
//
// Triangles of linear gradient geometries are cut where the gradient
// parameter crosses a period boundary, or leaves the range [0, 1] for
// Clamp, so that the vertices and indices of these geometries may change.
// Radial gradients are stored for the whole region of gradient space
// used, and their coordinates are mapped directly.  In both cases,
// linear interpolation of the texture coordinates across a triangle
// samples the correct colours.  The slices of the original geometries are
// not modified.
func (a *Atlas) FillUVs(geoms []vectess.Geometry) {
	if a == nil {
		return
	}
	size := a.Image.Bounds().Size()
	tw, th := float64(size.X), float64(size.Y)
	var split periodSplitter
	for i := range geoms {
		g := &geoms[i]
		gf := g.Gradient()
		e, ok := a.Lookup(gf)
		if !ok || len(g.UVs) != len(g.Vertices) {
			continue
		}

		if gf.Type == vectess.Radial {
			dom := e.Domain
			uvs := make([]vec.Vec2, len(g.UVs))
			for k, uv := range g.UVs {
				u := clamp01((uv.X - dom.LLx) / dom.Dx())
				v := clamp01((uv.Y - dom.LLy) / dom.Dy())
				uvs[k] = vec.Vec2{
					X: texel(e.Rect.Min.X, e.Rect.Dx(), u) / tw,
					Y: texel(e.Rect.Min.Y, e.Rect.Dy(), v) / th,
				}
			}
			g.UVs = uvs
			continue
		}

		verts, params, indices := split.split(g)
		uvs := make([]vec.Vec2, len(params))
		for k, u := range params {
			uvs[k] = vec.Vec2{
				X: texel(e.Rect.Min.X, e.Rect.Dx(), u) / tw,
				Y: texel(e.Rect.Min.Y, e.Rect.Dy(), 0.5) / th,
			}
		}
		g.Vertices, g.UVs, g.Indices = verts, uvs, indices
	}
}

// texel maps t ∈ [0, 1] to the range from the first to the last pixel
// centre of a run of n pixels starting at x0.
func texel(x0, n int, t float64) float64 {
	return float64(x0) + 0.5 + t*float64(n-1)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
