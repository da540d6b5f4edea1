package arspec

import (
	"fmt"
)

// FitLevinson fits an AR model by the Levinson-Durbin recursion, solving
// the same Toeplitz system as FitYuleWalker in O(order^2) while exposing the
// intermediate reflection coefficients. The recursion is the numerically
// preferred route for high orders.
func FitLevinson(x []float64, order int) (*ARModel, error) {
	r, err := lagCov(x, order)
	if err != nil {
		return nil, err
	}

	// a[0] = 1 by convention; a[1..i] are the order-i coefficients.
	a := make([]float64, order+1)
	a[0] = 1.0
	reflection := make([]float64, order)
	residual := r[0]

	for i := 1; i <= order; i++ {
		if residual <= 0 {
			return nil, fmt.Errorf("%w: prediction error vanished at order %d", ErrDegenerateSpectrum, i-1)
		}

		acc := r[i]
		for j := 1; j < i; j++ {
			acc -= a[j] * r[i-j]
		}
		k := acc / residual
		reflection[i-1] = k

		// Order update reads the previous iteration's coefficients, so the
		// in-place sweep works on a snapshot.
		prev := append([]float64(nil), a[:i]...)
		a[i] = k
		for j := 1; j < i; j++ {
			a[j] = prev[j] - k*prev[i-j]
		}

		residual *= 1 - k*k
	}

	if residual <= 0 {
		return nil, fmt.Errorf("%w: non-positive residual variance %v", ErrDegenerateSpectrum, residual)
	}

	return &ARModel{
		Order:      order,
		Coeffs:     a[1:],
		Sigma2:     residual,
		Reflection: reflection,
	}, nil
}

// LevinsonPSD fits an AR model of the given order by the Levinson-Durbin
// recursion and evaluates its PSD at nfft points
func LevinsonPSD(x []float64, order, nfft int) ([]float64, []float64, error) {
	model, err := FitLevinson(x, order)
	if err != nil {
		return nil, nil, err
	}
	return model.PSD(nfft)
}
