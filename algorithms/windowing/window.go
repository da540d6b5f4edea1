package windowing

import (
	"fmt"
)

// Window is the contract the spectral estimators need from a taper: the raw
// coefficients, applied sample-wise to each segment, and their energy
// (sum of squared coefficients), which sets the density normalization of
// averaged cross-products.
type Window interface {
	// Coefficients returns a copy of the window coefficients
	Coefficients() []float64

	// Energy returns the sum of squared coefficients
	Energy() float64

	// Len returns the window size
	Len() int

	// Type returns the window type name
	Type() string
}

// window carries the state shared by the concrete window types
type window struct {
	size         int
	symmetric    bool
	coefficients []float64
	kind         string
}

func (w *window) Coefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

func (w *window) Energy() float64 {
	var energy float64
	for _, c := range w.coefficients {
		energy += c * c
	}
	return energy
}

func (w *window) Len() int {
	return w.size
}

func (w *window) Type() string {
	return w.kind
}

// Apply applies the window to a signal (creates new array)
func (w *window) Apply(signal []float64) ([]float64, error) {
	if len(signal) != w.size {
		return nil, fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), w.size)
	}

	windowed := make([]float64, w.size)
	for i := range windowed {
		windowed[i] = signal[i] * w.coefficients[i]
	}

	return windowed, nil
}

// ApplyInPlace applies the window to a signal in-place
func (w *window) ApplyInPlace(signal []float64) error {
	if len(signal) != w.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), w.size)
	}

	for i := range signal {
		signal[i] *= w.coefficients[i]
	}

	return nil
}

// denominator returns the phase denominator: size-1 for symmetric windows
// (filter design), size for periodic windows (spectral averaging).
func (w *window) denominator() float64 {
	if w.symmetric {
		return float64(w.size - 1)
	}
	return float64(w.size)
}
