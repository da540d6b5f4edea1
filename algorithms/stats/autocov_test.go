package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantneuro/spectra/internal/testutil"
)

func TestAutocovarianceRaw(t *testing.T) {
	r, err := Autocovariance([]float64{1, 2, 3, 4}, 2, false)
	require.NoError(t, err)
	require.Len(t, r, 3)

	assert.InDelta(t, 7.5, r[0], 1e-12)
	assert.InDelta(t, 5.0, r[1], 1e-12)
	assert.InDelta(t, 2.75, r[2], 1e-12)
}

func TestAutocovarianceDemeaned(t *testing.T) {
	r, err := Autocovariance([]float64{1, 2, 3, 4}, 1, true)
	require.NoError(t, err)
	require.Len(t, r, 2)

	assert.InDelta(t, 1.25, r[0], 1e-12)
	assert.InDelta(t, 0.3125, r[1], 1e-12)
}

func TestAutocovarianceLagZeroIsPower(t *testing.T) {
	x := testutil.ARSignal(512, testutil.ARCoeffs, 1.0, 42)

	r, err := Autocovariance(x, 0, false)
	require.NoError(t, err)
	assert.InDelta(t, testutil.AvgPower(x), r[0], 1e-9)
}

func TestAutocovarianceErrors(t *testing.T) {
	_, err := Autocovariance(nil, 0, false)
	assert.Error(t, err)

	_, err = Autocovariance([]float64{1, 2, 3}, 3, false)
	assert.Error(t, err)

	_, err = Autocovariance([]float64{1, 2, 3}, -1, false)
	assert.Error(t, err)
}
