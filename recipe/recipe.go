package recipe

import (
	"fmt"
	"math"
	"time"

	"github.com/quantora/stockcast/features"
)

// Spec configures the derived covariates.
type Spec struct {
	FourierPeriods []int // seasonal periods, in observations
	FourierOrder   int   // harmonic pairs per period (K)
	Windows        []int // rolling window sizes carried through from features.Spec
}

// Recipe is a fitted, frozen covariate transformation.
type Recipe struct {
	spec   Spec
	origin time.Time // index zero point: first training date

	indexMean, indexStd float64
	ydayMean, ydayStd   float64
	yearMean, yearStd   float64

	names []string
}

// Fit captures the transformation parameters from the training rows only.
func Fit(training []features.Row, spec Spec) (*Recipe, error) {
	if len(training) == 0 {
		return nil, fmt.Errorf("recipe: no training rows")
	}
	if spec.FourierOrder < 0 {
		return nil, fmt.Errorf("recipe: negative fourier order %d", spec.FourierOrder)
	}

	r := &Recipe{spec: spec, origin: training[0].Date}

	idx := make([]float64, len(training))
	yday := make([]float64, len(training))
	year := make([]float64, len(training))
	for i, row := range training {
		idx[i] = r.dayIndex(row.Date)
		yday[i] = float64(row.Date.YearDay())
		year[i] = float64(row.Date.Year())
	}
	r.indexMean, r.indexStd = meanStd(idx)
	r.ydayMean, r.ydayStd = meanStd(yday)
	r.yearMean, r.yearStd = meanStd(year)

	r.names = buildNames(spec)
	return r, nil
}

// Names returns the derived column names, aligned with Transform's output.
func (r *Recipe) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Transform applies the frozen recipe to any row set and returns one
// covariate vector per row. Missing lag or rolling inputs propagate as NaN;
// the caller decides how to treat incomplete rows.
func (r *Recipe) Transform(rows []features.Row) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = r.transformRow(row)
	}
	return out
}

func (r *Recipe) transformRow(row features.Row) []float64 {
	v := make([]float64, 0, len(r.names))

	t := r.dayIndex(row.Date)
	v = append(v,
		standardize(t, r.indexMean, r.indexStd),
		standardize(float64(row.Date.YearDay()), r.ydayMean, r.ydayStd),
		standardize(float64(row.Date.Year()), r.yearMean, r.yearStd),
	)

	// One-hot day-of-week and month over the fixed calendar levels.
	wday := int(row.Date.Weekday())
	for d := 0; d < 7; d++ {
		v = append(v, indicator(wday == d))
	}
	month := int(row.Date.Month())
	for m := 1; m <= 12; m++ {
		v = append(v, indicator(month == m))
	}

	for _, period := range r.spec.FourierPeriods {
		for k := 1; k <= r.spec.FourierOrder; k++ {
			angle := 2 * math.Pi * float64(k) * t / float64(period)
			v = append(v, math.Sin(angle), math.Cos(angle))
		}
	}

	v = append(v, row.Lag)
	v = append(v, row.Rolling...)
	return v
}

// dayIndex measures days since the recipe origin.
func (r *Recipe) dayIndex(d time.Time) float64 {
	return d.Sub(r.origin).Hours() / 24
}

func buildNames(spec Spec) []string {
	names := []string{"index_num", "yday", "year"}
	for d := 0; d < 7; d++ {
		names = append(names, "wday_"+time.Weekday(d).String()[:3])
	}
	for m := 1; m <= 12; m++ {
		names = append(names, "month_"+time.Month(m).String()[:3])
	}
	for _, period := range spec.FourierPeriods {
		for k := 1; k <= spec.FourierOrder; k++ {
			names = append(names,
				fmt.Sprintf("sin%d_K%d", period, k),
				fmt.Sprintf("cos%d_K%d", period, k))
		}
	}
	names = append(names, "close_lag")
	for _, w := range spec.Windows {
		names = append(names, fmt.Sprintf("lag_roll_%d", w))
	}
	return names
}

// Complete reports whether a covariate vector has no missing entries.
func Complete(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return false
		}
	}
	return true
}

func standardize(v, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (v - mean) / std
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func meanStd(values []float64) (float64, float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n
	if len(values) < 2 {
		return mean, 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / (n - 1))
}
