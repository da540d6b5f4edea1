package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate"

	"github.com/quantneuro/spectra/internal/testutil"
)

func TestFreqs(t *testing.T) {
	freqs := Freqs(2*math.Pi, 256)

	require.Len(t, freqs, 129)
	assert.Equal(t, 0.0, freqs[0])
	assert.InDelta(t, math.Pi, freqs[128], 1e-12)

	step := freqs[1] - freqs[0]
	for i := 1; i < len(freqs); i++ {
		assert.InDelta(t, step, freqs[i]-freqs[i-1], 1e-12)
	}
}

func TestCSDHermitian(t *testing.T) {
	x := testutil.MultiSine([]float64{8, 16, 24}, 1024)
	noise := testutil.UniformNoise(1, 0.1, 1024)
	y := make([]float64, len(x))
	for i := range y {
		x[i] += noise[i]
		y[i] = x[i] + noise[len(noise)-1-i]
	}

	configs := map[string]CSDConfig{
		"welch":      {Method: MethodWelch, NFFT: 256, Fs: 2 * math.Pi, Overlap: 128},
		"multitaper": {Method: MethodMultitaper, Fs: 2 * math.Pi},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			freqsXY, csdXY, err := CSD(x, y, cfg)
			require.NoError(t, err)
			_, csdYX, err := CSD(y, x, cfg)
			require.NoError(t, err)

			require.Len(t, csdXY, len(freqsXY))
			for k := range csdXY {
				assert.InDelta(t, real(csdXY[k]), real(cmplx.Conj(csdYX[k])), 1e-9)
				assert.InDelta(t, imag(csdXY[k]), imag(cmplx.Conj(csdYX[k])), 1e-9)
			}

			// Auto-spectra are real and non-negative.
			_, auto, err := CSD(x, x, cfg)
			require.NoError(t, err)
			for k := range auto {
				assert.InDelta(t, 0.0, imag(auto[k]), 1e-12)
				assert.GreaterOrEqual(t, real(auto[k]), 0.0)
			}
		})
	}
}

func TestCSDConfigErrors(t *testing.T) {
	x := testutil.MultiSine([]float64{4}, 512)
	y := testutil.MultiSine([]float64{8}, 512)

	cases := []struct {
		name string
		x, y []float64
		cfg  CSDConfig
		want error
	}{
		{"negative nfft", x, y, CSDConfig{Method: MethodWelch, NFFT: -1, Fs: 1}, ErrInvalidConfiguration},
		{"negative fs", x, y, CSDConfig{Method: MethodWelch, NFFT: 64, Fs: -1}, ErrInvalidConfiguration},
		{"overlap too large", x, y, CSDConfig{Method: MethodWelch, NFFT: 64, Fs: 1, Overlap: 64}, ErrInvalidConfiguration},
		{"multitaper nfft below record", x, y, CSDConfig{Method: MethodMultitaper, NFFT: 256, Fs: 1}, ErrInvalidConfiguration},
		{"record shorter than segment", x[:100], y[:100], CSDConfig{Method: MethodWelch, NFFT: 256, Fs: 1}, ErrInsufficientData},
		{"length mismatch", x, y[:256], CSDConfig{Method: MethodWelch, NFFT: 64, Fs: 1}, ErrInvalidConfiguration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := CSD(tc.x, tc.y, tc.cfg)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPeriodogramSinePower(t *testing.T) {
	x := testutil.MultiSine([]float64{32}, 256)

	freqs, psd, err := Periodogram(x, 0)
	require.NoError(t, err)
	require.Len(t, psd, 129)

	// A unit sinusoid on an exact bin carries average power 1/2.
	power := integrate.Trapezoidal(freqs, psd)
	assert.InDelta(t, testutil.AvgPower(x), power, 1e-9)
	assert.InDelta(t, 0.5, power, 1e-9)
}

func TestPeriodogramPowerIntegration(t *testing.T) {
	x := testutil.ARSignal(512, testutil.ARCoeffs, 1.0, 42)
	avgPower := testutil.AvgPower(x)

	freqs, psd, err := Periodogram(x, 2048)
	require.NoError(t, err)
	require.Len(t, psd, 1025)

	power := integrate.Trapezoidal(freqs, psd)
	assert.InDelta(t, avgPower, power, 0.1)
}

func TestPeriodogramErrors(t *testing.T) {
	_, _, err := Periodogram(nil, 256)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, _, err = Periodogram(make([]float64, 512), 256)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
