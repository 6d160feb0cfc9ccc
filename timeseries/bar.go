package timeseries

import (
	"fmt"
	"sort"
	"time"
)

// Bar is one daily OHLCV record for a single symbol. Bars are immutable
// once loaded.
type Bar struct {
	Date   time.Time
	Symbol string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// History is a sequence of bars for one symbol, strictly ordered by date
// with no duplicate dates.
type History []Bar

// DataLoadError reports a missing or malformed input file.
type DataLoadError struct {
	Path   string
	Line   int // 0 when the error is not tied to a specific line
	Reason string
}

func (e *DataLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

// Len returns the number of bars.
func (h History) Len() int { return len(h) }

// Closes extracts the close-price column.
func (h History) Closes() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Close
	}
	return out
}

// Dates extracts the date column.
func (h History) Dates() []time.Time {
	out := make([]time.Time, len(h))
	for i, b := range h {
		out[i] = b.Date
	}
	return out
}

// First returns the earliest bar. Panics on empty history.
func (h History) First() Bar { return h[0] }

// Last returns the latest bar. Panics on empty history.
func (h History) Last() Bar { return h[len(h)-1] }

// sortAndVerify orders bars by date and rejects duplicate dates.
func (h History) sortAndVerify(path string) error {
	sort.Slice(h, func(i, j int) bool { return h[i].Date.Before(h[j].Date) })
	for i := 1; i < len(h); i++ {
		if h[i].Date.Equal(h[i-1].Date) {
			return &DataLoadError{
				Path:   path,
				Reason: fmt.Sprintf("duplicate date %s for symbol %s", h[i].Date.Format("2006-01-02"), h[i].Symbol),
			}
		}
	}
	return nil
}
