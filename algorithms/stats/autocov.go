package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Autocovariance returns the biased sample autocovariance of x at lags
// 0..maxLag:
//
//	r[k] = (1/N) * sum_n x[n] * x[n+k]
//
// With demean set, the channel mean is removed first. The biased 1/N
// normalization keeps the lag matrix positive semidefinite, which the AR
// solvers rely on.
func Autocovariance(x []float64, maxLag int, demean bool) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("stats: autocovariance of empty channel")
	}
	if maxLag < 0 || maxLag >= n {
		return nil, fmt.Errorf("stats: max lag %d outside [0, %d)", maxLag, n)
	}

	samples := x
	if demean {
		mean := stat.Mean(x, nil)
		samples = make([]float64, n)
		for i, v := range x {
			samples[i] = v - mean
		}
	}

	r := make([]float64, maxLag+1)
	for k := range r {
		var acc float64
		for i := 0; i < n-k; i++ {
			acc += samples[i] * samples[i+k]
		}
		r[k] = acc / float64(n)
	}
	return r, nil
}
