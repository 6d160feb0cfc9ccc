package stats

import (
	"math"

	"github.com/quantora/stockcast/timeseries"
)

// ACF returns sample autocorrelations for lags 0..maxLag.
func ACF(s *timeseries.Series, maxLag int) []float64 {
	n := s.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := s.Mean()
	denom := 0.0
	for _, v := range s.Values {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		num := 0.0
		for i := k; i < n; i++ {
			num += (s.Values[i] - mean) * (s.Values[i-k] - mean)
		}
		acf[k] = num / denom
	}
	return acf
}

// PACF returns partial autocorrelations for lags 0..maxLag via the
// Durbin-Levinson recursion. The value at lag 0 is 1.
func PACF(s *timeseries.Series, maxLag int) []float64 {
	n := s.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 1 {
		return nil
	}

	acf := ACF(s, maxLag)
	if acf == nil {
		return nil
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1
	pacf[1] = acf[1]

	prev := make([]float64, maxLag+1)
	curr := make([]float64, maxLag+1)
	prev[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= prev[j] * acf[k-j]
			den -= prev[j] * acf[j]
		}
		if den == 0 {
			pacf[k] = 0
			continue
		}
		curr[k] = num / den
		for j := 1; j < k; j++ {
			curr[j] = prev[j] - curr[k]*prev[k-j]
		}
		pacf[k] = curr[k]
		copy(prev, curr)
	}
	return pacf
}

// ConfidenceBound returns the 95% white-noise bound for (P)ACF values of a
// series with n observations.
func ConfidenceBound(n int) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return 1.96 / math.Sqrt(float64(n))
}
