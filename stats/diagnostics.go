package stats

import (
	"math"

	"github.com/quantora/stockcast/timeseries"
)

// LjungBoxResult holds the Ljung-Box portmanteau test outcome. The null
// hypothesis is no autocorrelation up to the tested lag.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// LjungBox tests residuals for remaining autocorrelation. fitdf is the
// number of parameters estimated by the model (p+q for ARIMA).
func LjungBox(s *timeseries.Series, lags, fitdf int) *LjungBoxResult {
	n := s.Len()
	if n < 10 || lags < 1 {
		return nil
	}
	if lags >= n {
		lags = n - 1
	}

	acf := ACF(s, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k] / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    1 - chiSquaredCDF(q, dof),
		Lags:      lags,
		DOF:       dof,
	}
}

// DiffOrder picks the differencing order in 0..maxD that minimizes the
// standard deviation of the differenced series, a cheap stationarity
// heuristic that matches auto-selection behavior on trending price data.
func DiffOrder(s *timeseries.Series, maxD int) int {
	if maxD <= 0 {
		maxD = 2
	}

	best := 0
	bestStd := s.Std()
	current := s
	for d := 1; d <= maxD; d++ {
		current = current.Diff()
		if current.Len() < 10 {
			break
		}
		if std := current.Std(); std < bestStd {
			best = d
			bestStd = std
		}
	}
	return best
}

// chiSquaredCDF evaluates the chi-squared CDF via the regularized lower
// incomplete gamma function.
func chiSquaredCDF(x float64, k int) float64 {
	if x < 0 {
		return 0
	}
	return regularizedGammaP(float64(k)/2, x/2)
}

// regularizedGammaP computes P(a, x) = γ(a, x)/Γ(a) using the series
// expansion for x < a+1 and the continued fraction otherwise.
func regularizedGammaP(a, x float64) float64 {
	if x <= 0 || a <= 0 {
		return 0
	}
	if x < a+1 {
		return gammaSeries(a, x)
	}
	return 1 - gammaContinuedFraction(a, x)
}

func gammaSeries(a, x float64) float64 {
	const (
		maxIter = 200
		eps     = 1e-12
	)
	ap := a
	sum := 1.0 / a
	del := sum
	for i := 0; i < maxIter; i++ {
		ap++
		del *= x / ap
		sum += del
		if math.Abs(del) < math.Abs(sum)*eps {
			break
		}
	}
	lg, _ := math.Lgamma(a)
	return sum * math.Exp(-x+a*math.Log(x)-lg)
}

func gammaContinuedFraction(a, x float64) float64 {
	const (
		maxIter = 200
		eps     = 1e-12
		tiny    = 1e-30
	)
	b := x + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i <= maxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	lg, _ := math.Lgamma(a)
	return math.Exp(-x+a*math.Log(x)-lg) * h
}
