package coherence

import (
	"fmt"
	"math"

	"github.com/quantneuro/spectra/algorithms/spectral"
	"github.com/quantneuro/spectra/logging"
)

// Pair identifies an ordered channel pair in a multichannel record
type Pair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Cache holds per-channel windowed segment spectra so repeated coherency
// queries against the same record reuse the expensive transforms. A cache is
// built for one record under one configuration and discarded with the
// analysis session; a single instance must not be shared across goroutines.
type Cache struct {
	freqs    []float64
	spectra  map[int]*spectral.SegmentSpectra
	autos    map[int][]float64
	channels int
}

// Freqs returns a copy of the frequency axis shared by every cached spectrum
func (c *Cache) Freqs() []float64 {
	freqs := make([]float64, len(c.freqs))
	copy(freqs, c.freqs)
	return freqs
}

// Channels returns the channel count of the record the cache was built from
func (c *Cache) Channels() int {
	return c.channels
}

// BuildCache computes and stores segment spectra and auto-spectra for every
// channel named by pairs. Only the named channels are transformed.
func (a *Analyzer) BuildCache(signal [][]float64, pairs []Pair) (*Cache, error) {
	if err := validateSignal(signal, 2); err != nil {
		return nil, err
	}

	needed := make(map[int]struct{})
	for _, p := range pairs {
		if p.I < 0 || p.I >= len(signal) || p.J < 0 || p.J >= len(signal) {
			return nil, fmt.Errorf("%w: pair (%d,%d) outside %d channels",
				spectral.ErrInvalidConfiguration, p.I, p.J, len(signal))
		}
		needed[p.I] = struct{}{}
		needed[p.J] = struct{}{}
	}
	if len(needed) == 0 {
		return nil, fmt.Errorf("%w: empty pair list", spectral.ErrInvalidConfiguration)
	}

	cache := &Cache{
		spectra:  make(map[int]*spectral.SegmentSpectra, len(needed)),
		autos:    make(map[int][]float64, len(needed)),
		channels: len(signal),
	}

	for idx := range needed {
		s, err := spectral.ChannelSpectra(signal[idx], a.cfg)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", idx, err)
		}
		auto, err := autoSpectrum(s)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", idx, err)
		}
		cache.spectra[idx] = s
		cache.autos[idx] = auto
		if cache.freqs == nil {
			cache.freqs = spectral.Freqs(s.Fs, s.NFFT)
		}
	}

	a.logger.Debug("built spectral cache", logging.Fields{
		"channels_cached": len(needed),
		"pairs":           len(pairs),
	})

	return cache, nil
}

// CoherencyFromCache assembles coherency sequences for the requested pairs
// from cached spectra. Entries for pairs not requested are left nil. The
// result matches Analyzer.Coherency on the same record and configuration
// exactly: both paths consume identical segment spectra through
// spectral.CrossSpectrum.
func (a *Analyzer) CoherencyFromCache(cache *Cache, pairs []Pair) ([][][]complex128, error) {
	n := cache.channels
	matrix := make([][][]complex128, n)
	for i := range matrix {
		matrix[i] = make([][]complex128, n)
	}

	for _, p := range pairs {
		si, ok := cache.spectra[p.I]
		if !ok {
			return nil, fmt.Errorf("%w: channel %d not cached", spectral.ErrInvalidConfiguration, p.I)
		}
		sj, ok := cache.spectra[p.J]
		if !ok {
			return nil, fmt.Errorf("%w: channel %d not cached", spectral.ErrInvalidConfiguration, p.J)
		}

		cross, err := spectral.CrossSpectrum(si, sj)
		if err != nil {
			return nil, err
		}

		autoI, autoJ := cache.autos[p.I], cache.autos[p.J]
		row := make([]complex128, len(cross))
		for k := range row {
			row[k] = cross[k] / complex(math.Sqrt(autoI[k]*autoJ[k]), 0)
		}
		matrix[p.I][p.J] = row
	}

	return matrix, nil
}
