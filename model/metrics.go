package model

import (
	"fmt"
	"math"
)

// Metrics are the accuracy measures reported per model on the assessment
// window.
type Metrics struct {
	MAE  float64
	RMSE float64
	R2   float64
	MAPE float64 // percentage; NaN when any actual value is zero
}

// Evaluate computes the accuracy metrics of predictions against actuals.
func Evaluate(actual, predicted []float64) (Metrics, error) {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		return Metrics{}, fmt.Errorf("model: need equal non-empty actual/predicted, got %d and %d", n, len(predicted))
	}

	var m Metrics
	mean := 0.0
	for _, a := range actual {
		mean += a
	}
	mean /= float64(n)

	var sumAbs, sumSq, ssTot, sumPct float64
	pctOK := true
	for i := 0; i < n; i++ {
		err := actual[i] - predicted[i]
		sumAbs += math.Abs(err)
		sumSq += err * err
		d := actual[i] - mean
		ssTot += d * d
		if actual[i] == 0 {
			pctOK = false
		} else {
			sumPct += math.Abs(err / actual[i])
		}
	}

	m.MAE = sumAbs / float64(n)
	m.RMSE = math.Sqrt(sumSq / float64(n))
	if ssTot == 0 {
		m.R2 = math.NaN()
	} else {
		m.R2 = 1 - sumSq/ssTot
	}
	if pctOK {
		m.MAPE = 100 * sumPct / float64(n)
	} else {
		m.MAPE = math.NaN()
	}
	return m, nil
}
