package windowing

import (
	"math"
)

// Hann represents a Hann window function
type Hann struct {
	window
}

// NewHann creates a new Hann window. Periodic (symmetric=false) windows are
// the right choice for averaged spectral estimates; symmetric ones for
// filter design.
func NewHann(size int, symmetric bool) *Hann {
	h := &Hann{window{size: size, symmetric: symmetric, kind: "hann"}}
	h.generate()
	return h
}

// generate creates Hann window coefficients
func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)

	denominator := h.denominator()
	for i := range h.size {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}
