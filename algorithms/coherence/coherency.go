package coherence

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/quantneuro/spectra/algorithms/spectral"
	"github.com/quantneuro/spectra/logging"
)

// ErrDegenerateSpectrum signals a zero or non-finite auto-spectral value in
// a normalization denominator. Estimates never silently propagate NaN/Inf;
// the offending frequency bin is named in the wrapped message.
var ErrDegenerateSpectrum = errors.New("coherence: degenerate spectrum")

// Analyzer computes coherency-family statistics for multichannel records
// under one cross-spectral density configuration.
//
// Coherency is the normalized complex cross-spectrum
//
//	C_ij(f) = S_ij(f) / sqrt(S_ii(f) * S_jj(f))
//
// so its magnitude is bounded by 1 and its squared magnitude (coherence)
// measures linear frequency-domain association between channels.
//
// References:
// - Wei, W.W.S. (1990). "Time Series Analysis: Univariate and Multivariate
//   Methods", ch. 14
// - Percival, D.B., Walden, A.T. (1993). "Spectral Analysis for Physical
//   Applications"
type Analyzer struct {
	cfg    spectral.CSDConfig
	logger logging.Logger
}

// CoherencyResult contains the pairwise complex coherency matrix
type CoherencyResult struct {
	Freqs    []float64        `json:"freqs"`
	Matrix   [][][]complex128 `json:"-"` // channel x channel x frequency
	Channels int              `json:"channels"`
}

// CoherenceResult contains a real-valued pairwise spectral matrix
// (coherence or partial coherence)
type CoherenceResult struct {
	Freqs    []float64     `json:"freqs"`
	Matrix   [][][]float64 `json:"matrix"` // channel x channel x frequency
	Channels int           `json:"channels"`
}

// NewAnalyzer creates an analyzer with the given CSD configuration
func NewAnalyzer(cfg spectral.CSDConfig) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		logger: logging.GetGlobalLogger().WithFields(logging.Fields{"component": "coherence"}),
	}
}

// WithLogger replaces the analyzer's logger and returns the analyzer
func (a *Analyzer) WithLogger(logger logging.Logger) *Analyzer {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Coherency computes the full pairwise coherency matrix of the record.
// The diagonal is 1+0i at every frequency and the matrix is Hermitian:
// only the upper triangle is computed, the lower is mirrored by conjugation.
func (a *Analyzer) Coherency(signal [][]float64) (*CoherencyResult, error) {
	if err := validateSignal(signal, 2); err != nil {
		return nil, err
	}

	spectra, autos, err := a.channelSpectra(signal)
	if err != nil {
		return nil, err
	}

	n := len(signal)
	bins := spectra[0].Bins()
	a.logger.Debug("computing coherency matrix", logging.Fields{
		"method":   a.cfg.Method.String(),
		"channels": n,
		"bins":     bins,
	})

	matrix := make([][][]complex128, n)
	for i := range matrix {
		matrix[i] = make([][]complex128, n)
	}

	for i := range n {
		for j := i; j < n; j++ {
			cross, err := spectral.CrossSpectrum(spectra[i], spectra[j])
			if err != nil {
				return nil, err
			}

			row := make([]complex128, bins)
			for k := range row {
				row[k] = cross[k] / complex(math.Sqrt(autos[i][k]*autos[j][k]), 0)
			}
			matrix[i][j] = row

			if i != j {
				mirror := make([]complex128, bins)
				for k := range mirror {
					mirror[k] = cmplx.Conj(row[k])
				}
				matrix[j][i] = mirror
			}
		}
	}

	return &CoherencyResult{
		Freqs:    spectral.Freqs(spectra[0].Fs, spectra[0].NFFT),
		Matrix:   matrix,
		Channels: n,
	}, nil
}

// Coherence computes the real pairwise coherence matrix, the squared
// magnitude of coherency. Values lie in [0, 1] and the matrix is symmetric.
func (a *Analyzer) Coherence(signal [][]float64) (*CoherenceResult, error) {
	coherency, err := a.Coherency(signal)
	if err != nil {
		return nil, err
	}

	n := coherency.Channels
	matrix := make([][][]float64, n)
	for i := range matrix {
		matrix[i] = make([][]float64, n)
		for j := range matrix[i] {
			row := make([]float64, len(coherency.Freqs))
			for k, c := range coherency.Matrix[i][j] {
				mag := cmplx.Abs(c)
				row[k] = mag * mag
			}
			matrix[i][j] = row
		}
	}

	return &CoherenceResult{
		Freqs:    coherency.Freqs,
		Matrix:   matrix,
		Channels: n,
	}, nil
}

// channelSpectra computes segment spectra and validated auto-spectra for
// every channel of the record
func (a *Analyzer) channelSpectra(signal [][]float64) ([]*spectral.SegmentSpectra, [][]float64, error) {
	spectra := make([]*spectral.SegmentSpectra, len(signal))
	autos := make([][]float64, len(signal))

	for i, channel := range signal {
		s, err := spectral.ChannelSpectra(channel, a.cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("channel %d: %w", i, err)
		}
		auto, err := autoSpectrum(s)
		if err != nil {
			return nil, nil, fmt.Errorf("channel %d: %w", i, err)
		}
		spectra[i] = s
		autos[i] = auto
	}

	return spectra, autos, nil
}

// autoSpectrum extracts the real auto-spectral density of one channel and
// rejects values that would poison a normalization denominator
func autoSpectrum(s *spectral.SegmentSpectra) ([]float64, error) {
	cross, err := spectral.CrossSpectrum(s, s)
	if err != nil {
		return nil, err
	}

	auto := make([]float64, len(cross))
	for k, v := range cross {
		p := real(v)
		if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: auto-spectrum is %v at bin %d", ErrDegenerateSpectrum, p, k)
		}
		auto[k] = p
	}
	return auto, nil
}

// validateSignal checks channel count and equal channel lengths
func validateSignal(signal [][]float64, minChannels int) error {
	if len(signal) < minChannels {
		return fmt.Errorf("%w: need at least %d channels, have %d",
			spectral.ErrInsufficientData, minChannels, len(signal))
	}
	for i := 1; i < len(signal); i++ {
		if len(signal[i]) != len(signal[0]) {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				spectral.ErrInvalidConfiguration, i, len(signal[i]), len(signal[0]))
		}
	}
	return nil
}
