package algorithms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aesthetic-filters/internal/core"
)

func TestAffine_Map(t *testing.T) {
	tests := []struct {
		name string
		a    Affine
		in   uint8
		want uint8
	}{
		{name: "identity", a: Identity, in: 123, want: 123},
		{name: "truncates", a: Affine{Scale: 0.9}, in: 255, want: 229},
		{name: "offset", a: Affine{Scale: 1.05, Offset: 5}, in: 100, want: 110},
		{name: "upper clamp", a: Affine{Scale: 1.1, Offset: 10}, in: 255, want: 255},
		{name: "lower clamp", a: Affine{Scale: 1, Offset: -40}, in: 30, want: 0},
		{name: "negative scale", a: Affine{Scale: -1}, in: 30, want: 0},
		{name: "floor not round", a: Affine{Scale: 1, Offset: 0.99}, in: 10, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Map(tt.in))
		})
	}
}

func TestChannelAffine_Apply(t *testing.T) {
	step := NewChannelAffine("warm",
		Affine{Scale: 1.10, Offset: 10},
		Affine{Scale: 1.05, Offset: 5},
		Affine{Scale: 0.90})

	out, err := step.Apply(core.NewUniform(2, 2, 255, 255, 255))
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			r, g, b := out.At(x, y)
			assert.Equal(t, [3]uint8{255, 255, 229}, [3]uint8{r, g, b})
		}
	}

	out, err = step.Apply(core.NewUniform(1, 1, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []uint8{10, 5, 0}, out.Pix)

	assert.Equal(t, "warm", step.GetName())
	assert.Contains(t, step.GetDescription(), "R×1.10+10")
}

func TestChannelAffine_Validate(t *testing.T) {
	bad := NewChannelAffine("bad", Affine{Scale: math.NaN()}, Identity, Identity)
	_, err := bad.Apply(core.NewUniform(1, 1, 1, 2, 3))
	assert.Error(t, err)
}

func TestSepia(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    [3]uint8
	}{
		{name: "black", want: [3]uint8{0, 0, 0}},
		// .272+.534+.131 = .937; .937*255 = 238.9
		{name: "white", r: 255, g: 255, b: 255, want: [3]uint8{255, 255, 238}},
		// r = 39.3, g = 34.9, b = 27.2
		{name: "pure red", r: 100, want: [3]uint8{39, 34, 27}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewSepia().Apply(core.NewUniform(1, 1, tt.r, tt.g, tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want[:], out.Pix)
		})
	}
}
