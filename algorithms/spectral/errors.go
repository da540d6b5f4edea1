package spectral

import "errors"

// Estimator errors. Every failure is detected eagerly and wrapped around one
// of these sentinels so callers can match the category with errors.Is.
var (
	// ErrInvalidConfiguration signals bad estimator parameters (non-positive
	// FFT length or sampling rate, inconsistent taper setup).
	ErrInvalidConfiguration = errors.New("spectral: invalid configuration")

	// ErrInsufficientData signals a signal too short for the chosen method.
	ErrInsufficientData = errors.New("spectral: insufficient data")
)
