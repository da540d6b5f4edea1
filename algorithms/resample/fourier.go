package resample

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// Fourier resamples x to num points through the frequency domain: the
// spectrum is truncated (downsampling) or zero-padded (upsampling) around
// the Nyquist bin, the shared Nyquist component is split or folded to keep
// the result real, and the inverse transform is rescaled by num/len(x).
//
// The method is exact for band-limited periodic records whose content lies
// below the smaller of the two Nyquist frequencies; for anything else it is
// the usual Fourier interpolation.
func Fourier(x []float64, num int) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("resample: empty input")
	}
	if num <= 0 {
		return nil, fmt.Errorf("resample: target length must be positive, got %d", num)
	}
	if num == n {
		out := make([]float64, n)
		copy(out, x)
		return out, nil
	}

	spectrum := fft.FFTReal(x)
	resized := make([]complex128, num)

	kept := min(n, num)
	nyquist := kept/2 + 1

	copy(resized[:nyquist], spectrum[:nyquist])
	for k := 1; k <= kept-nyquist; k++ {
		resized[num-k] = spectrum[n-k]
	}

	if kept%2 == 0 {
		if num < n {
			// Fold the matching negative-frequency component onto the new
			// Nyquist bin so the inverse transform stays real.
			resized[kept/2] += spectrum[n-kept/2]
		} else {
			// Split the old Nyquist bin across both halves of the longer
			// spectrum.
			resized[kept/2] /= 2
			resized[num-kept/2] = resized[kept/2]
		}
	}

	out := fft.IFFT(resized)
	scale := float64(num) / float64(n)
	result := make([]float64, num)
	for i := range result {
		result[i] = real(out[i]) * scale
	}
	return result, nil
}
