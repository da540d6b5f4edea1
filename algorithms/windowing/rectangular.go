package windowing

// Rectangular represents a rectangular (boxcar) window function
type Rectangular struct {
	window
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int) *Rectangular {
	r := &Rectangular{window{size: size, symmetric: true, kind: "rectangular"}}
	r.generate()
	return r
}

func (r *Rectangular) generate() {
	r.coefficients = make([]float64, r.size)
	for i := range r.coefficients {
		r.coefficients[i] = 1.0
	}
}
