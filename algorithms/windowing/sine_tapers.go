package windowing

import (
	"math"
)

// SineTapers is the Riedel-Sidorenko orthonormal sine taper family used for
// multitaper spectral estimation. Taper k (0-based) is
//
//	w_k[n] = sqrt(2/(N+1)) * sin(pi*(k+1)*(n+1)/(N+1))
//
// The family is orthonormal, so multitaper cross-products average with
// uniform weights and each taper has unit energy.
//
// References:
// - Riedel, K.S., Sidorenko, A. (1995). "Minimum bias multiple taper
//   spectral estimation"
type SineTapers struct {
	size   int
	count  int
	tapers [][]float64
}

// NewSineTapers generates count orthonormal sine tapers of the given size
func NewSineTapers(size, count int) *SineTapers {
	st := &SineTapers{size: size, count: count}
	st.generate()
	return st
}

func (st *SineTapers) generate() {
	st.tapers = make([][]float64, st.count)
	norm := math.Sqrt(2.0 / float64(st.size+1))

	for k := range st.count {
		taper := make([]float64, st.size)
		for n := range taper {
			taper[n] = norm * math.Sin(math.Pi*float64(k+1)*float64(n+1)/float64(st.size+1))
		}
		st.tapers[k] = taper
	}
}

// Taper returns taper k. The returned slice is owned by the SineTapers
// instance; callers must not mutate it.
func (st *SineTapers) Taper(k int) []float64 {
	return st.tapers[k]
}

// Count returns the number of tapers in the family
func (st *SineTapers) Count() int {
	return st.count
}

// Len returns the taper length
func (st *SineTapers) Len() int {
	return st.size
}
