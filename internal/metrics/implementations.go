// Concrete implementations of comparison metrics
package metrics

import (
	"fmt"
	"math"

	"aesthetic-filters/internal/algorithms"
	"aesthetic-filters/internal/core"
)

func checkPair(original, processed *core.PixelBuffer) error {
	if err := original.Validate(); err != nil {
		return err
	}
	if err := processed.Validate(); err != nil {
		return err
	}
	if !original.SameSize(processed) {
		return fmt.Errorf("image dimensions mismatch")
	}
	return nil
}

// meanSquaredError averages squared differences over every channel
func meanSquaredError(original, processed *core.PixelBuffer) float64 {
	sumSquaredDiff := 0.0
	for i := range original.Pix {
		diff := float64(original.Pix[i]) - float64(processed.Pix[i])
		sumSquaredDiff += diff * diff
	}
	return sumSquaredDiff / float64(len(original.Pix))
}

// MSE implements Mean Squared Error across all channels
type MSE struct{}

// NewMSE creates a new MSE metric
func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed *core.PixelBuffer) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(original, processed), nil
}

func (m *MSE) GetName() string {
	return "MSE"
}

func (m *MSE) GetDescription() string {
	return "Mean Squared Error over RGB channels"
}

func (m *MSE) IsHigherBetter() bool {
	return false
}

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

// NewPSNR creates a new PSNR metric
func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(original, processed *core.PixelBuffer) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}

	mse := meanSquaredError(original, processed)
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}

	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string {
	return "PSNR"
}

func (p *PSNR) GetDescription() string {
	return "Peak Signal-to-Noise Ratio in dB"
}

func (p *PSNR) IsHigherBetter() bool {
	return true
}

// MeanLumaShift reports how far the average luminance moved
type MeanLumaShift struct{}

func NewMeanLumaShift() *MeanLumaShift {
	return &MeanLumaShift{}
}

func (m *MeanLumaShift) Calculate(original, processed *core.PixelBuffer) (float64, error) {
	if err := checkPair(original, processed); err != nil {
		return 0, err
	}
	return algorithms.MeanLuminance(processed) - algorithms.MeanLuminance(original), nil
}

func (m *MeanLumaShift) GetName() string {
	return "Mean luma shift"
}

func (m *MeanLumaShift) GetDescription() string {
	return "Signed change of mean luminance (positive is brighter)"
}

func (m *MeanLumaShift) IsHigherBetter() bool {
	return false
}
