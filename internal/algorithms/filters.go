// Enhancement steps: colour, contrast, brightness and sharpness
package algorithms

import (
	"fmt"

	"aesthetic-filters/internal/core"
)

// Enhancement kinds. Each one blends the image with a degenerate version
// of itself: factor 0 yields the degenerate image, 1 the original.
const (
	KindColor      = "color"
	KindContrast   = "contrast"
	KindBrightness = "brightness"
	KindSharpness  = "sharpness"
)

// Enhance implements a factor-scaled global adjustment
type Enhance struct {
	Kind   string
	Factor float64
}

// NewColor creates a saturation adjustment. Factors below 1 move toward
// grey, above 1 oversaturate.
func NewColor(factor float64) *Enhance {
	return &Enhance{Kind: KindColor, Factor: factor}
}

// NewContrast creates a contrast adjustment pivoting on mean luminance
func NewContrast(factor float64) *Enhance {
	return &Enhance{Kind: KindContrast, Factor: factor}
}

// NewBrightness creates a brightness adjustment
func NewBrightness(factor float64) *Enhance {
	return &Enhance{Kind: KindBrightness, Factor: factor}
}

// NewSharpness creates an edge accentuation against a smoothed copy
func NewSharpness(factor float64) *Enhance {
	return &Enhance{Kind: KindSharpness, Factor: factor}
}

func (e *Enhance) Apply(input *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	var degenerate *core.PixelBuffer
	switch e.Kind {
	case KindColor:
		degenerate = Grayscale(input)
	case KindContrast:
		mean := MeanLuminance(input)
		v := uint8(int(mean + 0.5))
		degenerate = core.NewUniform(input.Width, input.Height, v, v, v)
	case KindBrightness:
		degenerate = core.NewPixelBuffer(input.Width, input.Height)
	case KindSharpness:
		degenerate = Convolve3x3(input, SmoothKernel)
	}

	return Blend(degenerate, input, e.Factor), nil
}

func (e *Enhance) Validate() error {
	switch e.Kind {
	case KindColor, KindContrast, KindBrightness, KindSharpness:
	default:
		return fmt.Errorf("unknown enhancement: %q", e.Kind)
	}
	return validateFactor(e.Kind, e.Factor)
}

func (e *Enhance) GetName() string {
	return fmt.Sprintf("%s×%g", e.Kind, e.Factor)
}

func (e *Enhance) GetDescription() string {
	switch e.Kind {
	case KindColor:
		return "Blend with the grayscale image to scale saturation"
	case KindContrast:
		return "Blend with a uniform mean-grey image to scale contrast"
	case KindBrightness:
		return "Blend with black to scale brightness"
	case KindSharpness:
		return "Blend with a smoothed copy to accentuate edges"
	}
	return ""
}

// Blend returns degenerate + alpha*(img-degenerate) per channel. The
// arithmetic runs in single precision and truncates; alpha outside [0,1]
// extrapolates and saturates.
func Blend(degenerate, img *core.PixelBuffer, alpha float64) *core.PixelBuffer {
	out := core.NewPixelBuffer(img.Width, img.Height)
	a := float32(alpha)

	for i, hi := range img.Pix {
		lo := float32(degenerate.Pix[i])
		// explicit conversion blocks fused multiply-add so every GOARCH
		// produces the same bytes
		out.Pix[i] = clampFloat32(lo + float32(a*(float32(hi)-lo)))
	}

	return out
}
