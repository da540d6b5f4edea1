package spectral

import (
	"fmt"

	"github.com/quantneuro/spectra/algorithms/windowing"
)

// Method selects the cross-spectral density estimator variant
type Method int

const (
	// MethodWelch averages windowed, overlapping periodogram segments
	// (the mlab/Welch convention)
	MethodWelch Method = iota

	// MethodMultitaper averages spectra taken through a family of
	// orthonormal sine tapers spanning the whole record
	MethodMultitaper
)

func (m Method) String() string {
	switch m {
	case MethodWelch:
		return "welch"
	case MethodMultitaper:
		return "multitaper"
	default:
		return "unknown"
	}
}

// CSDConfig holds the parameters of a cross-spectral density estimate.
// Zero values select defaults: NFFT 64 (Welch) or the record length
// (multitaper), Fs 1.0, NW 4. Overlap is in samples; the zero value means
// non-overlapping segments.
type CSDConfig struct {
	Method  Method           `json:"method"`
	NFFT    int              `json:"nfft"`
	Fs      float64          `json:"fs"`
	Overlap int              `json:"overlap"`
	NW      float64          `json:"nw"`
	Window  windowing.Window `json:"-"`
}

// DefaultCSDConfig returns the Welch configuration used when a caller has no
// opinion: 64-point Hann segments with 50% overlap at unit sampling rate.
func DefaultCSDConfig() CSDConfig {
	return CSDConfig{
		Method:  MethodWelch,
		NFFT:    64,
		Fs:      1.0,
		Overlap: 32,
		NW:      4,
	}
}

// withDefaults fills zero-valued fields for a record of length n
func (c CSDConfig) withDefaults(n int) CSDConfig {
	if c.NFFT == 0 {
		switch c.Method {
		case MethodMultitaper:
			c.NFFT = n
		default:
			c.NFFT = 64
		}
	}
	if c.Fs == 0 {
		c.Fs = 1.0
	}
	if c.NW == 0 {
		c.NW = 4
	}
	return c
}

// validate rejects configurations the estimators cannot honor for a record
// of length n. Parameter errors wrap ErrInvalidConfiguration; records too
// short for the method wrap ErrInsufficientData.
func (c CSDConfig) validate(n int) error {
	if c.NFFT <= 0 {
		return fmt.Errorf("%w: nfft must be positive, got %d", ErrInvalidConfiguration, c.NFFT)
	}
	if c.Fs <= 0 {
		return fmt.Errorf("%w: sampling frequency must be positive, got %v", ErrInvalidConfiguration, c.Fs)
	}
	if n < 2 {
		return fmt.Errorf("%w: record of %d samples", ErrInsufficientData, n)
	}

	switch c.Method {
	case MethodWelch:
		if c.Overlap < 0 || c.Overlap >= c.NFFT {
			return fmt.Errorf("%w: overlap %d outside [0, nfft)", ErrInvalidConfiguration, c.Overlap)
		}
		if c.Window != nil && c.Window.Len() != c.NFFT {
			return fmt.Errorf("%w: window length %d does not match nfft %d",
				ErrInvalidConfiguration, c.Window.Len(), c.NFFT)
		}
		if n < c.NFFT {
			return fmt.Errorf("%w: record of %d samples is shorter than one %d-point segment",
				ErrInsufficientData, n, c.NFFT)
		}
	case MethodMultitaper:
		if c.NW < 1 {
			return fmt.Errorf("%w: time-bandwidth product %v below 1", ErrInvalidConfiguration, c.NW)
		}
		if tapers := int(2*c.NW) - 1; tapers > n {
			return fmt.Errorf("%w: record of %d samples cannot carry %d tapers",
				ErrInsufficientData, n, tapers)
		}
		if c.NFFT < n {
			return fmt.Errorf("%w: multitaper nfft %d shorter than record length %d",
				ErrInvalidConfiguration, c.NFFT, n)
		}
	default:
		return fmt.Errorf("%w: unknown method %d", ErrInvalidConfiguration, int(c.Method))
	}

	return nil
}

// Freqs returns the one-sided frequency axis of an nfft-point transform at
// sampling frequency fs: nfft/2+1 bin centers spanning [0, fs/2].
func Freqs(fs float64, nfft int) []float64 {
	freqs := make([]float64, nfft/2+1)
	for i := range freqs {
		freqs[i] = fs * float64(i) / float64(nfft)
	}
	return freqs
}

// CSD computes the cross-spectral density of x against y under cfg and the
// matching one-sided frequency axis. CSD(y, x) is the complex conjugate of
// CSD(x, y); CSD(x, x) is real and non-negative.
func CSD(x, y []float64, cfg CSDConfig) ([]float64, []complex128, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: channel lengths differ (%d vs %d)",
			ErrInvalidConfiguration, len(x), len(y))
	}

	fx, err := ChannelSpectra(x, cfg)
	if err != nil {
		return nil, nil, err
	}
	fy, err := ChannelSpectra(y, cfg)
	if err != nil {
		return nil, nil, err
	}

	csd, err := CrossSpectrum(fx, fy)
	if err != nil {
		return nil, nil, err
	}

	return Freqs(fx.Fs, fx.NFFT), csd, nil
}
