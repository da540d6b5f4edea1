package spectral

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Periodogram estimates the PSD of one channel directly from the squared
// magnitude of its zero-padded transform, normalized by the channel length,
// with one-sided folding (non-DC, non-Nyquist bins doubled).
//
// The axis is in normalized frequency (cycles per sample, bin spacing
// 1/nfft), so the trapezoidal integral of the PSD over [0, 1/2] recovers the
// channel's average power. nfft of zero selects the channel length; nfft
// must otherwise be at least the channel length.
func Periodogram(x []float64, nfft int) ([]float64, []float64, error) {
	n := len(x)
	if n == 0 {
		return nil, nil, fmt.Errorf("%w: empty channel", ErrInsufficientData)
	}
	if nfft == 0 {
		nfft = n
	}
	if nfft < n {
		return nil, nil, fmt.Errorf("%w: nfft %d shorter than channel length %d",
			ErrInvalidConfiguration, nfft, n)
	}

	buf := make([]float64, nfft)
	copy(buf, x)
	spectrum := fft.FFTReal(buf)

	bins := nfft/2 + 1
	nyquist := bins - 1
	psd := make([]float64, bins)
	for k := range psd {
		mag := cmplx.Abs(spectrum[k])
		psd[k] = mag * mag / float64(n)
		if k != 0 && !(k == nyquist && nfft%2 == 0) {
			psd[k] *= 2
		}
	}

	return Freqs(1.0, nfft), psd, nil
}
