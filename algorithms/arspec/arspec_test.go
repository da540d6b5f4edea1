package arspec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate"

	"github.com/quantneuro/spectra/internal/testutil"
)

const (
	fitOrder = 8
	psdBins  = 1024
)

// onesidedPower integrates the half-axis PSD back to average signal power
func onesidedPower(freqs, psd []float64) float64 {
	return 2 * integrate.Trapezoidal(freqs, psd)
}

func TestYuleWalkerPowerIntegration(t *testing.T) {
	for _, seed := range []int64{1, 42, 123} {
		x := testutil.ARSignal(512, testutil.ARCoeffs, 1.0, seed)

		freqs, psd, err := YuleWalkerPSD(x, fitOrder, psdBins)
		require.NoError(t, err)
		require.Len(t, psd, psdBins)
		require.Len(t, freqs, psdBins)

		assert.InDeltaf(t, testutil.AvgPower(x), onesidedPower(freqs, psd), 0.015, "seed %d", seed)
	}
}

func TestLevinsonPowerIntegration(t *testing.T) {
	for _, seed := range []int64{1, 42, 123} {
		x := testutil.ARSignal(512, testutil.ARCoeffs, 1.0, seed)

		freqs, psd, err := LevinsonPSD(x, fitOrder, psdBins)
		require.NoError(t, err)

		assert.InDeltaf(t, testutil.AvgPower(x), onesidedPower(freqs, psd), 0.015, "seed %d", seed)
	}
}

// Both estimators solve the same Toeplitz system, so their fits agree to
// numerical precision.
func TestLevinsonMatchesYuleWalker(t *testing.T) {
	x := testutil.ARSignal(512, testutil.ARCoeffs, 1.0, 42)

	yw, err := FitYuleWalker(x, fitOrder)
	require.NoError(t, err)
	ld, err := FitLevinson(x, fitOrder)
	require.NoError(t, err)

	require.Len(t, yw.Coeffs, fitOrder)
	require.Len(t, ld.Coeffs, fitOrder)
	for k := range yw.Coeffs {
		assert.InDeltaf(t, yw.Coeffs[k], ld.Coeffs[k], 1e-8, "coefficient %d", k)
	}
	assert.InDelta(t, yw.Sigma2, ld.Sigma2, 1e-8)
}

func TestLevinsonReflectionBounded(t *testing.T) {
	x := testutil.ARSignal(512, testutil.ARCoeffs, 1.0, 7)

	model, err := FitLevinson(x, fitOrder)
	require.NoError(t, err)

	require.Len(t, model.Reflection, fitOrder)
	for i, k := range model.Reflection {
		assert.Lessf(t, math.Abs(k), 1.0, "reflection %d", i)
	}
}

func TestFitOrderErrors(t *testing.T) {
	x := testutil.ARSignal(64, testutil.ARCoeffs, 1.0, 1)

	_, err := FitYuleWalker(x, 0)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = FitYuleWalker(x, len(x))
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = FitLevinson(x, -1)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestFitDegenerateInput(t *testing.T) {
	zeros := make([]float64, 128)

	_, err := FitYuleWalker(zeros, 4)
	assert.ErrorIs(t, err, ErrDegenerateSpectrum)

	_, err = FitLevinson(zeros, 4)
	assert.ErrorIs(t, err, ErrDegenerateSpectrum)
}

func TestModelPSDInvalidNFFT(t *testing.T) {
	x := testutil.ARSignal(256, testutil.ARCoeffs, 1.0, 1)

	model, err := FitYuleWalker(x, 4)
	require.NoError(t, err)

	_, _, err = model.PSD(0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
