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

package mesh

import (
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectess"
	"seehuhn.de/go/vectess/atlas"
)

// Alignment selects the point of a sprite which is placed at the origin.
type Alignment int

// These are the supported alignments.  Top refers to the largest
// y-coordinate, after FlipY has been applied.
const (
	Center Alignment = iota
	TopLeft
	TopCenter
	TopRight
	LeftCenter
	RightCenter
	BottomLeft
	BottomCenter
	BottomRight
	// Custom uses SpriteOptions.Pivot.
	Custom
	// Origin keeps the scene origin.
	Origin
)

// SpriteOptions controls BuildSprite.
type SpriteOptions struct {
	// PixelsPerUnit converts scene units into sprite units.  Values <= 0
	// select DefaultPixelsPerUnit.
	PixelsPerUnit float64

	Alignment Alignment

	// Pivot is the origin of the sprite for the Custom alignment, relative
	// to the bounding box: (0, 0) is the lower left corner and (1, 1) the
	// upper right corner.
	Pivot vec.Vec2

	// GradientResolution is the ramp size of the gradient atlas.  Values
	// <= 0 select atlas.DefaultRampSize.
	GradientResolution int

	// MaxAtlasSize bounds the size of the gradient atlas.  Values <= 0
	// select DefaultMaxAtlasSize.
	MaxAtlasSize int

	// FlipY negates all y-coordinates.
	FlipY bool
}

// Default values for SpriteOptions.
const (
	DefaultPixelsPerUnit = 100
	DefaultMaxAtlasSize  = 1024
)

// Sprite is a mesh together with the texture used by its gradients.
type Sprite struct {
	Mesh *Mesh

	// Atlas is nil if no geometry uses a gradient.
	Atlas *atlas.Atlas
}

// BuildSprite converts tessellated geometries into a sprite.  If gradients
// are used, the gradient atlas is generated and the texture coordinates
// are converted to atlas coordinates.  The geometries passed in are not
// modified.
//
// If some gradients do not fit into the atlas, both the sprite and the
// atlas error are returned.
func BuildSprite(geoms []vectess.Geometry, opt SpriteOptions) (*Sprite, error) {
	ppu := opt.PixelsPerUnit
	if ppu <= 0 {
		ppu = DefaultPixelsPerUnit
	}
	maxAtlas := opt.MaxAtlasSize
	if maxAtlas <= 0 {
		maxAtlas = DefaultMaxAtlasSize
	}
	var atlasOpts []atlas.Option
	if opt.GradientResolution > 0 {
		atlasOpts = append(atlasOpts, atlas.WithRampSize(opt.GradientResolution))
	}

	geoms = slices.Clone(geoms)
	a, err := atlas.Generate(geoms, maxAtlas, atlasOpts...)
	a.FillUVs(geoms)

	m := Pack(geoms, 1/ppu)
	if opt.FlipY {
		m.flipY()
	}
	m.translate(m.pivot(opt.Alignment, opt.Pivot).Mul(-1))

	return &Sprite{Mesh: m, Atlas: a}, err
}

// flipY negates the y-coordinates.  The triangle orientation is preserved
// by reversing the vertex order of each triangle.
func (m *Mesh) flipY() {
	for i := range m.Vertices {
		m.Vertices[i].Y = -m.Vertices[i].Y
	}
	for k := 0; k+2 < len(m.Indices); k += 3 {
		m.Indices[k+1], m.Indices[k+2] = m.Indices[k+2], m.Indices[k+1]
	}
}

func (m *Mesh) translate(d vec.Vec2) {
	if d == (vec.Vec2{}) {
		return
	}
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(d)
	}
}

// pivot returns the point of the bounding box selected by the alignment.
func (m *Mesh) pivot(align Alignment, custom vec.Vec2) vec.Vec2 {
	if align == Origin {
		return vec.Vec2{}
	}
	b := m.Bounds()
	rel := custom
	switch align {
	case Center:
		rel = vec.Vec2{X: 0.5, Y: 0.5}
	case TopLeft:
		rel = vec.Vec2{X: 0, Y: 1}
	case TopCenter:
		rel = vec.Vec2{X: 0.5, Y: 1}
	case TopRight:
		rel = vec.Vec2{X: 1, Y: 1}
	case LeftCenter:
		rel = vec.Vec2{X: 0, Y: 0.5}
	case RightCenter:
		rel = vec.Vec2{X: 1, Y: 0.5}
	case BottomLeft:
		rel = vec.Vec2{X: 0, Y: 0}
	case BottomCenter:
		rel = vec.Vec2{X: 0.5, Y: 0}
	case BottomRight:
		rel = vec.Vec2{X: 1, Y: 0}
	}
	return vec.Vec2{
		X: b.LLx + rel.X*(b.URx-b.LLx),
		Y: b.LLy + rel.Y*(b.URy-b.LLy),
	}
}
