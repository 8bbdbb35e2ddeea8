// Step system for composing per-image adjustments
package algorithms

import (
	"fmt"
	"math"

	"aesthetic-filters/internal/core"
)

// Step defines one stage of a filter. Apply must not modify its input
// and must return a freshly allocated buffer of the same size.
type Step interface {
	Apply(input *core.PixelBuffer) (*core.PixelBuffer, error)
	GetName() string
	GetDescription() string
}

// Chain threads input through steps in order, each consuming the
// previous step's output.
func Chain(input *core.PixelBuffer, steps ...Step) (*core.PixelBuffer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current := input
	for i, step := range steps {
		next, err := step.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.GetName(), err)
		}
		if !next.SameSize(input) {
			return nil, fmt.Errorf("step %d (%s): output %dx%d does not match input %dx%d",
				i+1, step.GetName(), next.Width, next.Height, input.Width, input.Height)
		}
		current = next
	}

	if current == input {
		return input.Clone(), nil
	}
	return current, nil
}

// clampFloat saturates v into the channel range and truncates
func clampFloat(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// clampFloat32 is clampFloat for single precision blending
func clampFloat32(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func validateFactor(name string, factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%s factor must be finite, got %v", name, factor)
	}
	return nil
}
