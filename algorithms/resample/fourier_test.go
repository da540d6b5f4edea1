package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantneuro/spectra/internal/testutil"
)

var bandCycles = []float64{3, 7, 9, 12, 14}

func TestFourierUpsampleInterpolates(t *testing.T) {
	x := testutil.MultiSine(bandCycles, 64)

	up, err := Fourier(x, 128)
	require.NoError(t, err)
	require.Len(t, up, 128)

	// Every other output sample lands on an original sample.
	for i := range x {
		assert.InDeltaf(t, x[i], up[2*i], 1e-6, "sample %d", i)
	}
}

func TestFourierDownsampleDecimates(t *testing.T) {
	x := testutil.MultiSine(bandCycles, 64)

	down, err := Fourier(x, 32)
	require.NoError(t, err)
	require.Len(t, down, 32)

	for i := range down {
		assert.InDeltaf(t, x[2*i], down[i], 1e-6, "sample %d", i)
	}
}

func TestFourierDownsampleNonInteger(t *testing.T) {
	x := testutil.MultiSine(bandCycles, 64)
	want := testutil.MultiSine(bandCycles, 48)

	down, err := Fourier(x, 48)
	require.NoError(t, err)
	require.Len(t, down, 48)

	for i := range down {
		assert.InDeltaf(t, want[i], down[i], 1e-6, "sample %d", i)
	}
}

func TestFourierIdentity(t *testing.T) {
	x := testutil.MultiSine(bandCycles, 64)

	same, err := Fourier(x, 64)
	require.NoError(t, err)
	assert.Equal(t, x, same)
}

func TestFourierRoundTrip(t *testing.T) {
	x := testutil.MultiSine(bandCycles, 64)

	up, err := Fourier(x, 128)
	require.NoError(t, err)
	back, err := Fourier(up, 64)
	require.NoError(t, err)

	for i := range x {
		assert.InDeltaf(t, x[i], back[i], 1e-6, "sample %d", i)
	}
}

func TestFourierErrors(t *testing.T) {
	_, err := Fourier(nil, 32)
	assert.Error(t, err)

	_, err = Fourier([]float64{1, 2, 3}, 0)
	assert.Error(t, err)
}
