// Package filters holds the fixed, ordered bank of aesthetic presets.
package filters

import (
	"fmt"

	"aesthetic-filters/internal/algorithms"
	"aesthetic-filters/internal/core"
)

// Spec is one named preset: an ordered list of steps applied to a copy
// of the base image.
type Spec struct {
	Ordinal     int
	Name        string
	Title       string
	Description string
	Steps       []algorithms.Step
}

// ID returns the zero-padded identifier used in output file names
func (s Spec) ID() string {
	return fmt.Sprintf("%02d_%s", s.Ordinal, s.Name)
}

// Apply runs the preset against base without modifying it
func (s Spec) Apply(base *core.PixelBuffer) (*core.PixelBuffer, error) {
	return algorithms.Chain(base, s.Steps...)
}

// Tone curves used by the channel-arithmetic presets
var (
	WarmGlowTone = algorithms.NewChannelAffine("warm_tone",
		algorithms.Affine{Scale: 1.10, Offset: 10},
		algorithms.Affine{Scale: 1.05, Offset: 5},
		algorithms.Affine{Scale: 0.90})

	CoolBlueTone = algorithms.NewChannelAffine("cool_tone",
		algorithms.Affine{Scale: 0.90},
		algorithms.Affine{Scale: 0.95},
		algorithms.Affine{Scale: 1.15, Offset: 10})

	MutedTone = algorithms.NewChannelAffine("muted_tone",
		algorithms.Affine{Scale: 0.95, Offset: 15},
		algorithms.Affine{Scale: 0.95, Offset: 15},
		algorithms.Affine{Scale: 0.95, Offset: 15})

	SunsetTone = algorithms.NewChannelAffine("sunset_tone",
		algorithms.Affine{Scale: 1.15, Offset: 15},
		algorithms.Affine{Scale: 1.05, Offset: 8},
		algorithms.Affine{Scale: 0.85})
)

// Bank returns the ten presets in output order. A fresh slice is
// returned on every call.
func Bank() []Spec {
	return []Spec{
		{
			Ordinal:     1,
			Name:        "vibrant",
			Title:       "Vibrant",
			Description: "Enhanced colors and contrast",
			Steps: []algorithms.Step{
				algorithms.NewColor(1.4),
				algorithms.NewContrast(1.2),
				algorithms.NewBrightness(1.05),
			},
		},
		{
			Ordinal:     2,
			Name:        "vintage",
			Title:       "Vintage",
			Description: "Warm sepia with retro feel",
			Steps: []algorithms.Step{
				algorithms.NewColor(0.6),
				algorithms.NewContrast(0.9),
				algorithms.NewSepia(),
			},
		},
		{
			Ordinal:     3,
			Name:        "black_white",
			Title:       "Black & White",
			Description: "High contrast monochrome",
			Steps: []algorithms.Step{
				algorithms.NewGrayscale(),
				algorithms.NewContrast(1.3),
			},
		},
		{
			Ordinal:     4,
			Name:        "warm_glow",
			Title:       "Warm Glow",
			Description: "Golden warm tones",
			Steps: []algorithms.Step{
				WarmGlowTone,
				algorithms.NewBrightness(1.05),
			},
		},
		{
			Ordinal:     5,
			Name:        "cool_blue",
			Title:       "Cool Blue",
			Description: "Blue tinted atmosphere",
			Steps: []algorithms.Step{
				CoolBlueTone,
			},
		},
		{
			Ordinal:     6,
			Name:        "dramatic",
			Title:       "Dramatic",
			Description: "Deep contrast and saturation",
			Steps: []algorithms.Step{
				algorithms.NewContrast(1.5),
				algorithms.NewColor(1.3),
				algorithms.NewBrightness(0.95),
			},
		},
		{
			Ordinal:     7,
			Name:        "soft_pastel",
			Title:       "Soft Pastel",
			Description: "Dreamy desaturated look",
			Steps: []algorithms.Step{
				algorithms.NewColor(0.7),
				algorithms.NewContrast(0.85),
				algorithms.NewBrightness(1.1),
			},
		},
		{
			Ordinal:     8,
			Name:        "sharp_crisp",
			Title:       "Sharp & Crisp",
			Description: "HDR-style clarity",
			Steps: []algorithms.Step{
				algorithms.NewSharpen(),
				algorithms.NewSharpness(2.0),
				algorithms.NewContrast(1.15),
			},
		},
		{
			Ordinal:     9,
			Name:        "muted_aesthetic",
			Title:       "Muted Aesthetic",
			Description: "Modern Instagram style",
			Steps: []algorithms.Step{
				algorithms.NewColor(0.75),
				algorithms.NewContrast(0.95),
				MutedTone,
			},
		},
		{
			Ordinal:     10,
			Name:        "sunset_vibes",
			Title:       "Sunset Vibes",
			Description: "Golden hour effect",
			Steps: []algorithms.Step{
				SunsetTone,
				algorithms.NewBrightness(1.05),
			},
		},
	}
}

// GetName returns the human-readable title
func (s Spec) GetName() string {
	return s.Title
}

// Filters returns the bank as generator input
func Filters() []core.Filter {
	bank := Bank()
	out := make([]core.Filter, len(bank))
	for i, spec := range bank {
		out[i] = spec
	}
	return out
}
