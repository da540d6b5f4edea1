package arspec

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FitYuleWalker fits an AR model by solving the Yule-Walker normal
// equations directly: the order-p Toeplitz system R a = r is factorized by
// Cholesky decomposition, and the residual variance follows as
// r[0] - a . r[1:].
func FitYuleWalker(x []float64, order int) (*ARModel, error) {
	r, err := lagCov(x, order)
	if err != nil {
		return nil, err
	}

	toeplitz := mat.NewSymDense(order, nil)
	for i := range order {
		for j := i; j < order; j++ {
			toeplitz.SetSym(i, j, r[j-i])
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(toeplitz) {
		return nil, fmt.Errorf("%w: lag matrix is not positive definite", ErrDegenerateSpectrum)
	}

	rhs := mat.NewVecDense(order, r[1:order+1])
	var solution mat.VecDense
	if err := chol.SolveVecTo(&solution, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateSpectrum, err)
	}

	coeffs := make([]float64, order)
	copy(coeffs, solution.RawVector().Data)

	sigma2 := r[0] - floats.Dot(coeffs, r[1:order+1])
	if sigma2 <= 0 {
		return nil, fmt.Errorf("%w: non-positive residual variance %v", ErrDegenerateSpectrum, sigma2)
	}

	return &ARModel{Order: order, Coeffs: coeffs, Sigma2: sigma2}, nil
}

// YuleWalkerPSD fits an AR model of the given order by the direct
// Yule-Walker solve and evaluates its PSD at nfft points. The contract
// matches LevinsonPSD; the two variants are interchangeable strategies over
// the same normal equations.
func YuleWalkerPSD(x []float64, order, nfft int) ([]float64, []float64, error) {
	model, err := FitYuleWalker(x, order)
	if err != nil {
		return nil, nil, err
	}
	return model.PSD(nfft)
}
