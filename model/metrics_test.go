package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePerfectFit(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	m, err := Evaluate(actual, actual)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.MAE)
	assert.Equal(t, 0.0, m.RMSE)
	assert.Equal(t, 1.0, m.R2)
	assert.Equal(t, 0.0, m.MAPE)
}

func TestEvaluateKnownErrors(t *testing.T) {
	actual := []float64{10, 20, 30, 40}
	predicted := []float64{12, 18, 33, 36}
	m, err := Evaluate(actual, predicted)
	require.NoError(t, err)

	assert.InDelta(t, 2.75, m.MAE, 1e-12)
	assert.InDelta(t, math.Sqrt((4.0+4+9+16)/4), m.RMSE, 1e-12)
	// Mean 25, so SS_tot = 225+25+25+225 = 500; SS_res = 33.
	assert.InDelta(t, 1-33.0/500, m.R2, 1e-12)
	assert.InDelta(t, 100*(0.2+0.1+0.1+0.1)/4, m.MAPE, 1e-12)
}

func TestEvaluateZeroActualDisablesMAPE(t *testing.T) {
	m, err := Evaluate([]float64{0, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m.MAPE))
}

func TestEvaluateLengthMismatch(t *testing.T) {
	_, err := Evaluate([]float64{1}, []float64{1, 2})
	require.Error(t, err)

	_, err = Evaluate(nil, nil)
	require.Error(t, err)
}
