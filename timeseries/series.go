package timeseries

import "math"

// Series is a plain univariate value sequence. The model packages operate
// on Series rather than on full OHLCV bars.
type Series struct {
	Values []float64
}

// NewSeries creates a series from values. The slice is not copied.
func NewSeries(values []float64) *Series {
	return &Series{Values: values}
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.Values) }

// Mean returns the arithmetic mean, or 0 for an empty series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance returns the sample variance (n-1 denominator).
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std returns the sample standard deviation.
func (s *Series) Std() float64 { return math.Sqrt(s.Variance()) }

// Min returns the minimum value, or NaN for an empty series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value, or NaN for an empty series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Diff returns the first difference of the series.
func (s *Series) Diff() *Series { return s.DiffN(1) }

// DiffN returns the n-th order difference of the series.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Values: []float64{}}
	}
	out := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		out[i-n] = s.Values[i] - s.Values[i-n]
	}
	return &Series{Values: out}
}

// Copy returns a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return &Series{Values: values}
}
