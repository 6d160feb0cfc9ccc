package features

import (
	"fmt"
	"math"
	"time"
)

// Spec configures feature engineering. By convention Lag equals Horizon in
// this pipeline, but the two are independent parameters.
type Spec struct {
	Horizon int   // number of future rows to append
	Lag     int   // lag depth K in periods
	Windows []int // centered rolling window sizes, in periods
}

// Row is one engineered observation. Close is NaN for future rows; Lag and
// Rolling entries are NaN where undefined. Rolling is aligned with
// Spec.Windows.
type Row struct {
	Date    time.Time
	Close   float64
	Future  bool
	Lag     float64
	Rolling []float64
}

// LeakageError reports a feature whose inputs reference data the row must
// not see.
type LeakageError struct {
	Index  int
	Window int
	Reason string
}

func (e *LeakageError) Error() string {
	return fmt.Sprintf("features: leakage at row %d (window %d): %s", e.Index, e.Window, e.Reason)
}

// IsMissing reports whether v carries the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// missing is the explicit missing-value marker.
func missing() float64 { return math.NaN() }

// Build produces the engineered feature rows: len(closes) historical rows
// followed by exactly Spec.Horizon future rows. Dates of the future block
// continue the calendar at the spacing of the last two historical dates.
func Build(dates []time.Time, closes []float64, spec Spec) ([]Row, error) {
	n := len(closes)
	if n == 0 || len(dates) != n {
		return nil, fmt.Errorf("features: need equal-length dates and closes, got %d and %d", len(dates), n)
	}
	if spec.Horizon < 0 || spec.Lag <= 0 {
		return nil, fmt.Errorf("features: invalid spec: horizon=%d lag=%d", spec.Horizon, spec.Lag)
	}
	if n <= spec.Lag {
		return nil, fmt.Errorf("features: history of %d rows is shorter than lag depth %d", n, spec.Lag)
	}

	total := n + spec.Horizon
	rows := make([]Row, total)

	step := 24 * time.Hour
	if n >= 2 {
		step = dates[n-1].Sub(dates[n-2])
	}

	for t := 0; t < total; t++ {
		if t < n {
			rows[t].Date = dates[t]
			rows[t].Close = closes[t]
		} else {
			rows[t].Date = dates[n-1].Add(time.Duration(t-n+1) * step)
			rows[t].Close = missing()
			rows[t].Future = true
		}

		// lag_K references only data at or before t-K.
		if src := t - spec.Lag; src >= 0 && src < n {
			rows[t].Lag = closes[src]
		} else {
			rows[t].Lag = missing()
		}
	}

	for t := range rows {
		rows[t].Rolling = make([]float64, len(spec.Windows))
		for wi, w := range spec.Windows {
			rows[t].Rolling[wi] = centeredMean(rows, t, w, n)
		}
	}

	return rows, nil
}

// centeredMean averages the defined lag values in [t-w/2, t+w/2],
// shrinking the window at the series boundaries. Historical rows (t < n)
// never read past the last historical row; the future block is reserved
// for prediction inputs only.
func centeredMean(rows []Row, t, w, n int) float64 {
	half := w / 2
	lo := t - half
	hi := t + half
	if lo < 0 {
		lo = 0
	}
	if t < n && hi > n-1 {
		hi = n - 1
	}
	if hi > len(rows)-1 {
		hi = len(rows) - 1
	}

	sum, count := 0.0, 0
	for i := lo; i <= hi; i++ {
		if IsMissing(rows[i].Lag) {
			continue
		}
		sum += rows[i].Lag
		count++
	}
	if count == 0 {
		return missing()
	}
	return sum / float64(count)
}

// Verify recomputes every historical rolling value from historical rows
// only and fails if a stored feature could only have been produced by
// consuming the future block. nHistorical is the number of non-future rows.
func Verify(rows []Row, nHistorical int, spec Spec) error {
	for t := 0; t < nHistorical && t < len(rows); t++ {
		if rows[t].Future {
			return &LeakageError{Index: t, Reason: "future row inside the historical range"}
		}
		for wi, w := range spec.Windows {
			want := centeredMean(rows, t, w, nHistorical)
			got := rows[t].Rolling[wi]
			if IsMissing(want) && IsMissing(got) {
				continue
			}
			if math.Abs(want-got) > 1e-12 {
				return &LeakageError{
					Index:  t,
					Window: w,
					Reason: fmt.Sprintf("stored %g, historical-only recomputation %g", got, want),
				}
			}
		}
	}
	return nil
}
