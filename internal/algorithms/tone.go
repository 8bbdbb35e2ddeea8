// Per-pixel channel arithmetic: affine tone curves and colour matrices
package algorithms

import (
	"fmt"
	"math"

	"aesthetic-filters/internal/core"
)

// Affine maps a channel value v to floor(v*Scale + Offset)
type Affine struct {
	Scale  float64
	Offset float64
}

// Identity leaves a channel untouched
var Identity = Affine{Scale: 1}

// Map applies the transform and saturates to [0, 255]. Both bounds are
// clamped so negative offsets cannot wrap. Products are rounded before
// the add so results do not depend on FMA availability.
func (a Affine) Map(v uint8) uint8 {
	return clampFloat(math.Floor(float64(float64(v)*a.Scale) + a.Offset))
}

// ChannelAffine applies an independent affine transform to each channel
type ChannelAffine struct {
	Name    string
	R, G, B Affine
}

// NewChannelAffine creates a pointwise RGB remap
func NewChannelAffine(name string, r, g, b Affine) *ChannelAffine {
	return &ChannelAffine{Name: name, R: r, G: g, B: b}
}

func (c *ChannelAffine) Apply(input *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// lookup tables: 256 entries per channel instead of a float op per sample
	var lutR, lutG, lutB [256]uint8
	for v := 0; v < 256; v++ {
		lutR[v] = c.R.Map(uint8(v))
		lutG[v] = c.G.Map(uint8(v))
		lutB[v] = c.B.Map(uint8(v))
	}

	out := core.NewPixelBuffer(input.Width, input.Height)
	for i := 0; i < len(input.Pix); i += core.Channels {
		out.Pix[i] = lutR[input.Pix[i]]
		out.Pix[i+1] = lutG[input.Pix[i+1]]
		out.Pix[i+2] = lutB[input.Pix[i+2]]
	}

	return out, nil
}

func (c *ChannelAffine) Validate() error {
	for _, a := range []Affine{c.R, c.G, c.B} {
		if err := validateFactor("scale", a.Scale); err != nil {
			return err
		}
		if err := validateFactor("offset", a.Offset); err != nil {
			return err
		}
	}
	return nil
}

func (c *ChannelAffine) GetName() string {
	return c.Name
}

func (c *ChannelAffine) GetDescription() string {
	return fmt.Sprintf("R×%.2f%+g G×%.2f%+g B×%.2f%+g",
		c.R.Scale, c.R.Offset, c.G.Scale, c.G.Offset, c.B.Scale, c.B.Offset)
}

// ColorMatrix mixes channels: out[i] = sum_j M[i][j]*in[j], clamped and
// truncated.
type ColorMatrix struct {
	Name string
	M    [3][3]float64
}

// NewSepia creates the warm brown-tone matrix
func NewSepia() *ColorMatrix {
	return &ColorMatrix{
		Name: "sepia",
		M: [3][3]float64{
			{0.393, 0.769, 0.189},
			{0.349, 0.686, 0.168},
			{0.272, 0.534, 0.131},
		},
	}
}

func (m *ColorMatrix) Apply(input *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(input.Width, input.Height)
	for i := 0; i < len(input.Pix); i += core.Channels {
		r := float64(input.Pix[i])
		g := float64(input.Pix[i+1])
		b := float64(input.Pix[i+2])
		for c := 0; c < core.Channels; c++ {
			row := m.M[c]
			out.Pix[i+c] = clampFloat(float64(row[0]*r) + float64(row[1]*g) + float64(row[2]*b))
		}
	}

	return out, nil
}

func (m *ColorMatrix) GetName() string {
	return m.Name
}

func (m *ColorMatrix) GetDescription() string {
	return "3x3 colour matrix"
}
