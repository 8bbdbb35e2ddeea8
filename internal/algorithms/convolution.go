// Grayscale conversion and fixed 3x3 convolutions
package algorithms

import (
	"aesthetic-filters/internal/core"
)

// Kernel3 is a 3x3 integer kernel applied as sum(w*p)/Divisor + Offset
type Kernel3 struct {
	Weights [9]int
	Divisor int
	Offset  int
}

var (
	// SharpenKernel emphasises the centre pixel against its neighbours
	SharpenKernel = Kernel3{
		Weights: [9]int{
			-2, -2, -2,
			-2, 32, -2,
			-2, -2, -2,
		},
		Divisor: 16,
	}

	// SmoothKernel is the low-pass reference used by sharpness
	SmoothKernel = Kernel3{
		Weights: [9]int{
			1, 1, 1,
			1, 5, 1,
			1, 1, 1,
		},
		Divisor: 13,
	}
)

// Convolve3x3 filters each channel independently. The one-pixel border
// is copied unchanged; interior values are rounded half up and clamped.
func Convolve3x3(input *core.PixelBuffer, k Kernel3) *core.PixelBuffer {
	out := input.Clone()
	if input.Width < 3 || input.Height < 3 {
		return out
	}

	divisor := float64(k.Divisor)
	if divisor == 0 {
		divisor = 1
	}

	stride := input.Stride()
	for y := 1; y < input.Height-1; y++ {
		for x := 1; x < input.Width-1; x++ {
			base := input.PixOffset(x, y)
			for c := 0; c < core.Channels; c++ {
				sum := 0
				w := 0
				for dy := -1; dy <= 1; dy++ {
					row := base + dy*stride + c
					for dx := -1; dx <= 1; dx++ {
						sum += k.Weights[w] * int(input.Pix[row+dx*core.Channels])
						w++
					}
				}
				out.Pix[base+c] = clampFloat(float64(sum)/divisor + float64(k.Offset) + 0.5)
			}
		}
	}

	return out
}

// Luminance returns the 8-bit luma of one RGB triple using 16-bit fixed
// point ITU-R 601-2 weights.
func Luminance(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 0x8000) >> 16)
}

// Grayscale converts to single-channel luminance replicated to RGB
func Grayscale(input *core.PixelBuffer) *core.PixelBuffer {
	out := core.NewPixelBuffer(input.Width, input.Height)
	for i := 0; i < len(input.Pix); i += core.Channels {
		l := Luminance(input.Pix[i], input.Pix[i+1], input.Pix[i+2])
		out.Pix[i] = l
		out.Pix[i+1] = l
		out.Pix[i+2] = l
	}
	return out
}

// MeanLuminance averages the luma over every pixel
func MeanLuminance(input *core.PixelBuffer) float64 {
	n := len(input.Pix) / core.Channels
	if n == 0 {
		return 0
	}

	var sum uint64
	for i := 0; i < len(input.Pix); i += core.Channels {
		sum += uint64(Luminance(input.Pix[i], input.Pix[i+1], input.Pix[i+2]))
	}
	return float64(sum) / float64(n)
}

// Convolution applies a fixed kernel as a Step
type Convolution struct {
	Name   string
	Kernel Kernel3
}

// NewSharpen creates the discrete 3x3 sharpen pre-step
func NewSharpen() *Convolution {
	return &Convolution{Name: "sharpen", Kernel: SharpenKernel}
}

func (c *Convolution) Apply(input *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return Convolve3x3(input, c.Kernel), nil
}

func (c *Convolution) GetName() string {
	return c.Name
}

func (c *Convolution) GetDescription() string {
	return "Fixed 3x3 convolution"
}

// GrayscaleStep converts to luminance replicated on three channels
type GrayscaleStep struct{}

func NewGrayscale() *GrayscaleStep {
	return &GrayscaleStep{}
}

func (g *GrayscaleStep) Apply(input *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return Grayscale(input), nil
}

func (g *GrayscaleStep) GetName() string {
	return "grayscale"
}

func (g *GrayscaleStep) GetDescription() string {
	return "Luminance replicated to RGB"
}
