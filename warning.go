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

package vectess

import (
	"fmt"
	"log/slog"

	"seehuhn.de/go/vectess/bezier"
)

// ErrInvalidOptions is returned when tessellation options have
// non-positive or NaN fields.
var ErrInvalidOptions = bezier.ErrInvalidOptions

// WarningKind classifies non-fatal problems found during tessellation.
type WarningKind int

// These are the possible warning kinds.
const (
	// ToleranceUnreachable indicates that the subdivision depth limit was
	// reached before a curve piece met the flattening tolerances.
	ToleranceUnreachable WarningKind = iota + 1

	// InvalidClipConfiguration indicates a clipper with an empty area.
	// Everything clipped by it is invisible.
	InvalidClipConfiguration

	// DegenerateInputIgnored indicates a shape which produced no triangles.
	DegenerateInputIgnored
)

func (k WarningKind) String() string {
	switch k {
	case ToleranceUnreachable:
		return "tolerance unreachable"
	case InvalidClipConfiguration:
		return "invalid clip configuration"
	case DegenerateInputIgnored:
		return "degenerate input ignored"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning describes a problem which did not stop tessellation.
type Warning struct {
	Kind WarningKind

	// Shape is the shape which caused the warning, if any.
	Shape *Shape

	Msg string
}

func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Msg
}

// warn records a warning and logs it.  Degenerate input is common and
// harmless, so it is only logged at debug level.
func (t *Tessellator) warn(kind WarningKind, sh *Shape, format string, args ...any) {
	w := Warning{Kind: kind, Shape: sh, Msg: fmt.Sprintf(format, args...)}
	t.warnings = append(t.warnings, w)

	level := slog.LevelWarn
	if kind == DegenerateInputIgnored {
		level = slog.LevelDebug
	}
	Logger().Log(t.ctx, level, w.Msg, slog.String("kind", kind.String()))
}
