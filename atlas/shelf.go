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

import "image"

// shelf is a horizontal strip of the atlas.  Items are placed left to right.
type shelf struct {
	y      int // top of the shelf
	height int // height of the tallest item so far
	nextX  int // next free x position
}

// shelfAllocator places rectangles into a fixed-size area, using shelf
// packing.  Items should be allocated in order of decreasing height for
// good results.
type shelfAllocator struct {
	width, height int
	shelves       []shelf

	// usedW and usedH give the extent of the allocated area.
	usedW, usedH int
}

func newShelfAllocator(width, height int) *shelfAllocator {
	return &shelfAllocator{width: width, height: height}
}

// allocate reserves a w×h rectangle.  The second return value is false if
// there is not enough space.
func (a *shelfAllocator) allocate(w, h int) (image.Rectangle, bool) {
	if w <= 0 || h <= 0 || w > a.width || h > a.height {
		return image.Rectangle{}, false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		last := i == len(a.shelves)-1
		if s.nextX+w > a.width {
			continue
		}
		if h > s.height {
			// only the last shelf can grow
			if !last || s.y+h > a.height {
				continue
			}
			s.height = h
		}
		return a.place(s, w, h), true
	}

	y := 0
	if n := len(a.shelves); n > 0 {
		y = a.shelves[n-1].y + a.shelves[n-1].height
	}
	if y+h > a.height {
		return image.Rectangle{}, false
	}
	a.shelves = append(a.shelves, shelf{y: y, height: h})
	return a.place(&a.shelves[len(a.shelves)-1], w, h), true
}

func (a *shelfAllocator) place(s *shelf, w, h int) image.Rectangle {
	r := image.Rect(s.nextX, s.y, s.nextX+w, s.y+h)
	s.nextX += w
	a.usedW = max(a.usedW, r.Max.X)
	a.usedH = max(a.usedH, r.Max.Y)
	return r
}
