package spectral

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/quantneuro/spectra/algorithms/windowing"
)

// SegmentSpectra holds the one-sided spectra of the windowed segments
// (Welch) or tapered copies (multitaper) of a single channel, together with
// the density normalization every cross-spectrum built from it shares.
//
// Computing these once per channel is what lets an n-channel coherency
// matrix reuse n transforms for n*(n+1)/2 spectra, and it is the unit the
// coherence FFT cache stores: cached and direct estimates consume the same
// numbers through CrossSpectrum, so they agree exactly.
type SegmentSpectra struct {
	// Spectra is indexed segment (or taper) first, frequency bin second
	Spectra [][]complex128

	// NFFT is the transform length actually used
	NFFT int

	// Fs is the sampling frequency actually used
	Fs float64

	// scale converts averaged cross-products into density units
	scale float64
}

// Bins returns the number of one-sided frequency bins
func (s *SegmentSpectra) Bins() int {
	return s.NFFT/2 + 1
}

// ChannelSpectra computes the per-segment or per-taper spectra of one
// channel under cfg, dispatching on the configured method.
func ChannelSpectra(x []float64, cfg CSDConfig) (*SegmentSpectra, error) {
	cfg = cfg.withDefaults(len(x))
	if err := cfg.validate(len(x)); err != nil {
		return nil, err
	}

	switch cfg.Method {
	case MethodWelch:
		return welchSpectra(x, cfg), nil
	case MethodMultitaper:
		return multitaperSpectra(x, cfg), nil
	default:
		return nil, fmt.Errorf("%w: unknown method %d", ErrInvalidConfiguration, int(cfg.Method))
	}
}

// welchSpectra transforms Hann-windowed (by default), overlapping segments
// of x. The density scale is 1/(Fs * window energy); segment averaging
// happens later in CrossSpectrum.
func welchSpectra(x []float64, cfg CSDConfig) *SegmentSpectra {
	win := cfg.Window
	if win == nil {
		win = windowing.NewHann(cfg.NFFT, false)
	}
	w := win.Coefficients()

	step := cfg.NFFT - cfg.Overlap
	numSegments := (len(x)-cfg.NFFT)/step + 1
	bins := cfg.NFFT/2 + 1

	spectra := make([][]complex128, numSegments)
	buf := make([]float64, cfg.NFFT)

	for s := range numSegments {
		offset := s * step
		for i := range buf {
			buf[i] = x[offset+i] * w[i]
		}
		spectrum := fft.FFTReal(buf)
		spectra[s] = append([]complex128(nil), spectrum[:bins]...)
	}

	return &SegmentSpectra{
		Spectra: spectra,
		NFFT:    cfg.NFFT,
		Fs:      cfg.Fs,
		scale:   1.0 / (cfg.Fs * win.Energy()),
	}
}

// multitaperSpectra transforms sine-tapered copies of the whole record,
// zero-padded to NFFT. The tapers are orthonormal (unit energy), so the
// density scale is 1/Fs and the taper average needs no weights.
func multitaperSpectra(x []float64, cfg CSDConfig) *SegmentSpectra {
	numTapers := int(2*cfg.NW) - 1
	tapers := windowing.NewSineTapers(len(x), numTapers)
	bins := cfg.NFFT/2 + 1

	spectra := make([][]complex128, numTapers)
	buf := make([]float64, cfg.NFFT)

	for k := range numTapers {
		taper := tapers.Taper(k)
		for i := range x {
			buf[i] = x[i] * taper[i]
		}
		for i := len(x); i < cfg.NFFT; i++ {
			buf[i] = 0
		}
		spectrum := fft.FFTReal(buf)
		spectra[k] = append([]complex128(nil), spectrum[:bins]...)
	}

	return &SegmentSpectra{
		Spectra: spectra,
		NFFT:    cfg.NFFT,
		Fs:      cfg.Fs,
		scale:   1.0 / cfg.Fs,
	}
}

// CrossSpectrum averages conj(Fx)*Fy across segments and applies density
// scaling with one-sided doubling (DC and Nyquist bins are not doubled).
// Both arguments must come from ChannelSpectra calls with the same
// configuration on records of the same length.
func CrossSpectrum(fx, fy *SegmentSpectra) ([]complex128, error) {
	if fx.NFFT != fy.NFFT || len(fx.Spectra) != len(fy.Spectra) {
		return nil, fmt.Errorf("%w: mismatched segment spectra (nfft %d vs %d, segments %d vs %d)",
			ErrInvalidConfiguration, fx.NFFT, fy.NFFT, len(fx.Spectra), len(fy.Spectra))
	}

	bins := fx.Bins()
	csd := make([]complex128, bins)

	for s := range fx.Spectra {
		fxs, fys := fx.Spectra[s], fy.Spectra[s]
		for k := range bins {
			csd[k] += cmplx.Conj(fxs[k]) * fys[k]
		}
	}

	norm := complex(fx.scale/float64(len(fx.Spectra)), 0)
	nyquist := bins - 1
	for k := range csd {
		csd[k] *= norm
		if k != 0 && !(k == nyquist && fx.NFFT%2 == 0) {
			csd[k] *= 2
		}
	}

	return csd, nil
}
