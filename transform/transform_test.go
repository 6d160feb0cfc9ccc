package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	values := []float64{12.5, 90.0, 250.75, 499.99, 640.1, 875.3, 999.0}
	b := Bounds{Lower: 0, Upper: 1000, Offset: 1}

	transformed, params, err := Apply(values, b)
	require.NoError(t, err)

	recovered := Invert(transformed, params)
	for i, x := range values {
		assert.InEpsilon(t, x, recovered[i], 1e-9, "round trip at index %d", i)
	}
}

func TestKnownValue(t *testing.T) {
	// x=500 lies at the midpoint of (0, 1000): the bounded-log value is
	// log(501/501) = 0 exactly.
	transformed, params, err := Apply([]float64{500}, Bounds{Lower: 0, Upper: 1000, Offset: 1})
	require.NoError(t, err)

	assert.Equal(t, 0.0, transformed[0])
	assert.Equal(t, 0.0, params.Mean)
	assert.InDelta(t, 500.0, InvertOne(transformed[0], params), 1e-9)
}

func TestDomainError(t *testing.T) {
	_, _, err := Apply([]float64{10, 1000, 20}, Bounds{Lower: 0, Upper: 1000, Offset: 1})
	require.Error(t, err)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Index)
	assert.Equal(t, 1000.0, de.Value)
}

func TestUpperEstimatedFromData(t *testing.T) {
	values := []float64{100, 200, 710.5}
	_, params, err := Apply(values, Bounds{Lower: 0, Offset: 1})
	require.NoError(t, err)

	assert.InDelta(t, 710.5*1.2, params.Upper, 1e-9)

	recovered := Invert(mustApply(t, values, params), params)
	for i, x := range values {
		assert.InEpsilon(t, x, recovered[i], 1e-9, "round trip at index %d", i)
	}
}

func TestStandardizationUsesCapturedMoments(t *testing.T) {
	values := []float64{50, 150, 300, 450}
	transformed, params, err := Apply(values, Bounds{Lower: 0, Upper: 1000, Offset: 1})
	require.NoError(t, err)

	// Standardized output has zero mean and unit sample variance.
	sum := 0.0
	for _, z := range transformed {
		sum += z
	}
	assert.InDelta(t, 0.0, sum/float64(len(transformed)), 1e-12)

	sumSq := 0.0
	for _, z := range transformed {
		sumSq += z * z
	}
	assert.InDelta(t, 1.0, sumSq/float64(len(transformed)-1), 1e-12)

	assert.Greater(t, params.Std, 0.0)
}

// mustApply re-runs the forward composition with frozen parameters, the way
// future rows are handled after the historical fit.
func mustApply(t *testing.T, values []float64, p Params) []float64 {
	t.Helper()
	out := make([]float64, len(values))
	for i, v := range values {
		require.Greater(t, v, p.Lower)
		require.Less(t, v, p.Upper)
		g := math.Log((v - p.Lower + p.Offset) / (p.Upper - v + p.Offset))
		out[i] = (g - p.Mean) / p.Std
	}
	return out
}
