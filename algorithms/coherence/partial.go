package coherence

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/quantneuro/spectra/algorithms/spectral"
	"github.com/quantneuro/spectra/logging"
)

// CoherencePartial computes pairwise coherence with the linear influence of
// the conditioning channel z regressed out at each frequency:
//
//	C_xy|z = (C_xy - C_xz * C_zy) / sqrt((1 - |C_xz|^2) * (1 - |C_zy|^2))
//
// and the partial coherence is |C_xy|z|^2. The returned matrix covers the
// original channels only, is symmetric in (x, y), and has unit diagonal.
//
// Fails with ErrDegenerateSpectrum when z is perfectly coherent with a
// channel at some frequency, which zeroes a denominator term.
func (a *Analyzer) CoherencePartial(signal [][]float64, z []float64) (*CoherenceResult, error) {
	if err := validateSignal(signal, 2); err != nil {
		return nil, err
	}
	if len(z) != len(signal[0]) {
		return nil, fmt.Errorf("%w: conditioning channel has %d samples, record has %d",
			spectral.ErrInvalidConfiguration, len(z), len(signal[0]))
	}

	// Coherency over the record with z appended as the last channel.
	extended := make([][]float64, 0, len(signal)+1)
	extended = append(extended, signal...)
	extended = append(extended, z)

	coherency, err := a.Coherency(extended)
	if err != nil {
		return nil, err
	}

	n := len(signal)
	zi := n
	bins := len(coherency.Freqs)
	a.logger.Debug("computing partial coherence", logging.Fields{
		"channels": n,
		"bins":     bins,
	})

	matrix := make([][][]float64, n)
	for i := range matrix {
		matrix[i] = make([][]float64, n)
	}

	for i := range n {
		for j := i; j < n; j++ {
			rxy := coherency.Matrix[i][j]
			rxz := coherency.Matrix[i][zi]
			rzy := coherency.Matrix[zi][j]

			row := make([]float64, bins)
			for k := range row {
				dx := 1 - magSquared(rxz[k])
				dy := 1 - magSquared(rzy[k])
				if dx <= 0 || dy <= 0 {
					return nil, fmt.Errorf("%w: conditioning channel fully coherent with pair (%d,%d) at bin %d",
						ErrDegenerateSpectrum, i, j, k)
				}

				partial := (rxy[k] - rxz[k]*rzy[k]) / complex(math.Sqrt(dx*dy), 0)
				row[k] = magSquared(partial)
			}

			matrix[i][j] = row
			if i != j {
				mirror := make([]float64, bins)
				copy(mirror, row)
				matrix[j][i] = mirror
			}
		}
	}

	return &CoherenceResult{
		Freqs:    coherency.Freqs,
		Matrix:   matrix,
		Channels: n,
	}, nil
}

func magSquared(c complex128) float64 {
	mag := cmplx.Abs(c)
	return mag * mag
}
