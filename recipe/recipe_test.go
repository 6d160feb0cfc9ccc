package recipe

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantora/stockcast/features"
)

func rowsFrom(start time.Time, n int) []features.Row {
	rows := make([]features.Row, n)
	for i := range rows {
		rows[i] = features.Row{
			Date:    start.AddDate(0, 0, i),
			Close:   float64(i),
			Lag:     float64(i) / 2,
			Rolling: []float64{float64(i) / 3},
		}
	}
	return rows
}

func TestFitAndTransformShape(t *testing.T) {
	start := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC) // a Monday
	training := rowsFrom(start, 60)

	spec := Spec{FourierPeriods: []int{30, 60}, FourierOrder: 1, Windows: []int{30}}
	rec, err := Fit(training, spec)
	require.NoError(t, err)

	names := rec.Names()
	// 3 numeric + 7 wday + 12 month + 2 periods * 1 harmonic * 2 + lag + 1 rolling.
	assert.Len(t, names, 3+7+12+4+1+1)

	matrix := rec.Transform(training)
	require.Len(t, matrix, 60)
	for _, v := range matrix {
		assert.Len(t, v, len(names))
	}
}

func TestNormalizationFrozenFromTraining(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	training := rowsFrom(start, 100)
	assessment := rowsFrom(start.AddDate(0, 0, 100), 20)

	rec, err := Fit(training, Spec{FourierPeriods: []int{30}, FourierOrder: 1, Windows: []int{30}})
	require.NoError(t, err)

	trainM := rec.Transform(training)

	// The standardized index has zero mean over training...
	sum := 0.0
	for _, v := range trainM {
		sum += v[0]
	}
	assert.InDelta(t, 0.0, sum/float64(len(trainM)), 1e-9)

	// ...and keeps growing past the training range for later rows, proving
	// the statistics were not refitted.
	assessM := rec.Transform(assessment)
	lastTrain := trainM[len(trainM)-1][0]
	for _, v := range assessM {
		assert.Greater(t, v[0], lastTrain)
	}
}

func TestOneHotEncoding(t *testing.T) {
	// 2020-01-06 is a Monday in January.
	rows := []features.Row{{Date: time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC), Rolling: []float64{}}}
	rec, err := Fit(rows, Spec{})
	require.NoError(t, err)

	v := rec.Transform(rows)[0]
	names := rec.Names()

	byName := map[string]float64{}
	for i, n := range names {
		byName[n] = v[i]
	}

	assert.Equal(t, 1.0, byName["wday_Mon"])
	assert.Equal(t, 0.0, byName["wday_Tue"])
	assert.Equal(t, 1.0, byName["month_Jan"])
	assert.Equal(t, 0.0, byName["month_Feb"])
}

func TestFourierTerms(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := rowsFrom(start, 61)

	rec, err := Fit(rows, Spec{FourierPeriods: []int{30}, FourierOrder: 1, Windows: []int{30}})
	require.NoError(t, err)

	m := rec.Transform(rows)
	names := rec.Names()
	sinIdx, cosIdx := -1, -1
	for i, n := range names {
		switch n {
		case "sin30_K1":
			sinIdx = i
		case "cos30_K1":
			cosIdx = i
		}
	}
	require.GreaterOrEqual(t, sinIdx, 0)
	require.GreaterOrEqual(t, cosIdx, 0)

	// At the origin the phase is zero; one full period later it wraps.
	assert.InDelta(t, 0.0, m[0][sinIdx], 1e-12)
	assert.InDelta(t, 1.0, m[0][cosIdx], 1e-12)
	assert.InDelta(t, 0.0, m[30][sinIdx], 1e-9)
	assert.InDelta(t, 1.0, m[30][cosIdx], 1e-9)

	for _, v := range m {
		assert.InDelta(t, 1.0, v[sinIdx]*v[sinIdx]+v[cosIdx]*v[cosIdx], 1e-9)
	}
}

func TestMissingInputsPropagate(t *testing.T) {
	rows := []features.Row{{
		Date:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Close:   1,
		Lag:     math.NaN(),
		Rolling: []float64{math.NaN()},
	}}
	rec, err := Fit(rows, Spec{Windows: []int{30}})
	require.NoError(t, err)

	v := rec.Transform(rows)[0]
	assert.False(t, Complete(v))
}
