package arspec

import (
	"errors"
	"fmt"
	"math"

	"github.com/quantneuro/spectra/algorithms/stats"
)

// Estimator errors
var (
	// ErrInvalidOrder signals an AR order below 1 or at least the channel length
	ErrInvalidOrder = errors.New("arspec: invalid model order")

	// ErrInvalidConfiguration signals bad PSD evaluation parameters
	ErrInvalidConfiguration = errors.New("arspec: invalid configuration")

	// ErrDegenerateSpectrum signals an autocovariance sequence the Toeplitz
	// solvers cannot work with (zero energy or loss of positive definiteness)
	ErrDegenerateSpectrum = errors.New("arspec: degenerate autocovariance")
)

// ARModel is a fitted autoregressive model
//
//	x[n] = sum_k Coeffs[k] * x[n-k-1] + e[n]
//
// with driving-noise variance Sigma2. Reflection holds the intermediate
// reflection coefficients when the model came from the Levinson-Durbin
// recursion.
type ARModel struct {
	Order      int       `json:"order"`
	Coeffs     []float64 `json:"coeffs"`
	Sigma2     float64   `json:"sigma2"`
	Reflection []float64 `json:"reflection,omitempty"`
}

// PSD evaluates the model spectrum
//
//	S(w) = Sigma2 / |1 - sum_k Coeffs[k] * exp(-i*w*(k+1))|^2
//
// at nfft points over [0, pi). The axis is in normalized frequency (cycles
// per sample, bin spacing 1/(2*nfft)), so the trapezoidal integral of the
// PSD with dx = 1/nfft recovers the lag-zero autocovariance the model was
// fitted to.
func (m *ARModel) PSD(nfft int) ([]float64, []float64, error) {
	if nfft <= 0 {
		return nil, nil, fmt.Errorf("%w: nfft must be positive, got %d", ErrInvalidConfiguration, nfft)
	}

	freqs := make([]float64, nfft)
	psd := make([]float64, nfft)
	for k := range psd {
		w := math.Pi * float64(k) / float64(nfft)
		re, im := 1.0, 0.0
		for j, c := range m.Coeffs {
			angle := float64(j+1) * w
			re -= c * math.Cos(angle)
			im += c * math.Sin(angle)
		}
		psd[k] = m.Sigma2 / (re*re + im*im)
		freqs[k] = w / (2 * math.Pi)
	}

	return freqs, psd, nil
}

// lagCov validates the order against the channel and returns the biased
// autocovariance sequence both fitting strategies consume
func lagCov(x []float64, order int) ([]float64, error) {
	if order < 1 || order >= len(x) {
		return nil, fmt.Errorf("%w: order %d for channel of %d samples", ErrInvalidOrder, order, len(x))
	}

	r, err := stats.Autocovariance(x, order, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	if r[0] == 0 {
		return nil, fmt.Errorf("%w: zero-energy channel", ErrDegenerateSpectrum)
	}
	return r, nil
}
