package testutil

import (
	"math"
	"math/rand"
)

// ARCoeffs is a classic stable fourth-order resonant process used as the
// standard fixture for AR estimator validation.
var ARCoeffs = []float64{2.7607, -3.8106, 2.6535, -0.9238}

// ARSignal generates an autoregressive process
//
//	x[n] = sum_k coeffs[k] * x[n-k-1] + v[n]
//
// driven by seeded Gaussian noise of standard deviation sigma.
func ARSignal(n int, coeffs []float64, sigma float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	for i := range x {
		acc := rng.NormFloat64() * sigma
		for k, c := range coeffs {
			if i-k-1 >= 0 {
				acc += c * x[i-k-1]
			}
		}
		x[i] = acc
	}
	return x
}

// MultiSine sums unit-amplitude sinusoids completing the given whole cycle
// counts over num samples (endpoint excluded), so each component sits
// exactly on a frequency bin of a num-point transform.
func MultiSine(cycles []float64, num int) []float64 {
	out := make([]float64, num)
	for _, c := range cycles {
		for i := range out {
			out[i] += math.Sin(2 * math.Pi * c * float64(i) / float64(num))
		}
	}
	return out
}

// UniformNoise generates seeded noise uniform on [0, amplitude)
func UniformNoise(seed int64, amplitude float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64() * amplitude
	}
	return out
}

// GaussianNoise generates seeded zero-mean Gaussian noise with standard
// deviation sigma
func GaussianNoise(seed int64, sigma float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// AvgPower returns the mean squared sample value of x
func AvgPower(x []float64) float64 {
	var acc float64
	for _, v := range x {
		acc += v * v
	}
	return acc / float64(len(x))
}
