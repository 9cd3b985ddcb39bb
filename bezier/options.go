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

package bezier

import (
	"errors"
	"fmt"
	"math"
)

// Options are the tolerances which control curve flattening.
type Options struct {
	// StepDistance is the maximal length of a curve piece before it is
	// subdivided.  Use math.Inf(1) to disable distance-based subdivision.
	StepDistance float64

	// MaxCordDeviation is the maximal distance between a flattened chord
	// and the curve it replaces.
	MaxCordDeviation float64

	// MaxTanAngleDeviation is the maximal angle, in radians, between a
	// flattened chord and the curve tangents at its end points.
	MaxTanAngleDeviation float64

	// SamplingStepSize is the parametric step used when estimating the
	// length of a curve piece.  Values above 1 are treated as 1.
	SamplingStepSize float64
}

// DefaultOptions returns moderate tolerances for shapes measured in pixels.
func DefaultOptions() Options {
	return Options{
		StepDistance:         100,
		MaxCordDeviation:     0.5,
		MaxTanAngleDeviation: 0.1,
		SamplingStepSize:     0.01,
	}
}

// ErrInvalidOptions is returned when tessellation options are out of range.
var ErrInvalidOptions = errors.New("invalid tessellation options")

// Validate checks that all tolerances are positive.
func (o Options) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"StepDistance", o.StepDistance},
		{"MaxCordDeviation", o.MaxCordDeviation},
		{"MaxTanAngleDeviation", o.MaxTanAngleDeviation},
		{"SamplingStepSize", o.SamplingStepSize},
	}
	for _, f := range fields {
		if !(f.val > 0) { // also catches NaN
			return fmt.Errorf("%w: %s must be positive, got %g",
				ErrInvalidOptions, f.name, f.val)
		}
	}
	return nil
}

// samplingStep returns the effective parametric sampling step.
func (o Options) samplingStep() float64 {
	return math.Min(o.SamplingStepSize, 1)
}
