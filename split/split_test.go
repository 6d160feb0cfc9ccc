package split

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantora/stockcast/features"
)

func labeledRows(n int) []features.Row {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]features.Row, n)
	for i := range rows {
		rows[i] = features.Row{Date: base.AddDate(0, 0, i), Close: float64(i)}
	}
	return rows
}

func TestTrailingWindowCounts(t *testing.T) {
	// 400 daily rows, 8-week assessment: 344 training + 56 assessment.
	sp, err := TrailingWindow(labeledRows(400), Options{AssessmentDays: 56})
	require.NoError(t, err)

	assert.Len(t, sp.Training, 344)
	assert.Len(t, sp.Assessment, 56)

	// Jointly covering and disjoint in time.
	assert.Equal(t, 400, len(sp.Training)+len(sp.Assessment))
	maxTrain := sp.Training[len(sp.Training)-1].Date
	minAssess := sp.Assessment[0].Date
	assert.True(t, maxTrain.Before(minAssess))

	// The assessment window ends on the last historical date.
	assert.Equal(t, labeledRows(400)[399].Date, sp.Assessment[55].Date)
}

func TestTrailingWindowRejectsUnlabeledRows(t *testing.T) {
	rows := labeledRows(100)
	rows[50].Future = true
	_, err := TrailingWindow(rows, Options{AssessmentDays: 14})
	require.Error(t, err)
}

func TestTrailingWindowInsufficientData(t *testing.T) {
	_, err := TrailingWindow(labeledRows(60), Options{AssessmentDays: 56})
	require.Error(t, err)

	var ie *InsufficientDataError
	require.True(t, errors.As(err, &ie))
}

func TestRollingTrainingWidth(t *testing.T) {
	sp, err := TrailingWindow(labeledRows(400), Options{AssessmentDays: 56, RollingDays: 100})
	require.NoError(t, err)

	assert.Len(t, sp.Assessment, 56)
	assert.Len(t, sp.Training, 100)
	assert.True(t, sp.Training[len(sp.Training)-1].Date.Before(sp.Assessment[0].Date))
}

func TestPlanFolds(t *testing.T) {
	folds, err := PlanFolds(labeledRows(400), Options{AssessmentDays: 56}, 4)
	require.NoError(t, err)
	require.Len(t, folds, 4)

	for i, f := range folds {
		assert.Equal(t, i, f.Index)
		assert.True(t, f.TrainEnd.Before(f.AssessStart))
		if i > 0 {
			// Each further fold shifts the assessment window back.
			assert.True(t, f.AssessEnd.Before(folds[i-1].AssessStart))
		}
	}
}

func TestPlanFoldsStopsWhenExhausted(t *testing.T) {
	folds, err := PlanFolds(labeledRows(150), Options{AssessmentDays: 56}, 5)
	require.NoError(t, err)
	assert.Less(t, len(folds), 5)
	assert.GreaterOrEqual(t, len(folds), 1)
}
