package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/quantora/stockcast/timeseries"
)

// ar1Series generates an AR(1) process driven by seeded white noise, so
// its population PACF truly cuts off after lag 1.
func ar1Series(n int, phi float64) *timeseries.Series {
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + rng.NormFloat64()
	}
	return timeseries.NewSeries(values)
}

func TestACFLagZeroIsOne(t *testing.T) {
	s := ar1Series(200, 0.7)
	acf := ACF(s, 10)
	if acf == nil {
		t.Fatal("Expected ACF values")
	}
	if math.Abs(acf[0]-1) > 1e-12 {
		t.Errorf("ACF at lag 0 should be 1, got %f", acf[0])
	}
}

func TestACFDecaysForAR1(t *testing.T) {
	s := ar1Series(400, 0.8)
	acf := ACF(s, 5)
	if acf[1] <= acf[3] {
		t.Errorf("AR(1) ACF should decay: lag1=%f lag3=%f", acf[1], acf[3])
	}
	if acf[1] < 0.3 {
		t.Errorf("AR(1) with phi=0.8 should have substantial lag-1 ACF, got %f", acf[1])
	}
}

func TestPACFCutsOffForAR1(t *testing.T) {
	s := ar1Series(400, 0.8)
	pacf := PACF(s, 6)
	if pacf == nil {
		t.Fatal("Expected PACF values")
	}

	bound := ConfidenceBound(s.Len())
	if math.Abs(pacf[1]) < bound {
		t.Errorf("AR(1) PACF at lag 1 should be significant: %f vs bound %f", pacf[1], bound)
	}
	// Higher lags should be much smaller than the first.
	for k := 3; k <= 6; k++ {
		if math.Abs(pacf[k]) > math.Abs(pacf[1])/2 {
			t.Errorf("PACF at lag %d unexpectedly large: %f", k, pacf[k])
		}
	}
}

func TestLjungBoxFlagsCorrelatedSeries(t *testing.T) {
	correlated := ar1Series(300, 0.9)
	result := LjungBox(correlated, 10, 0)
	if result == nil {
		t.Fatal("Expected a Ljung-Box result")
	}
	if result.PValue > 0.05 {
		t.Errorf("Strongly autocorrelated series should reject the null, p=%f", result.PValue)
	}
}

func TestDiffOrderOnRandomWalk(t *testing.T) {
	n := 300
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = values[i-1] + 1 + float64(i%5-2)/10
	}
	s := timeseries.NewSeries(values)

	if d := DiffOrder(s, 2); d != 1 {
		t.Errorf("Trending series should want one difference, got %d", d)
	}
}

func TestDiffOrderOnStationarySeries(t *testing.T) {
	s := ar1Series(300, 0.3)
	if d := DiffOrder(s, 2); d != 0 {
		t.Errorf("Stationary series should want no differencing, got %d", d)
	}
}

func TestChiSquaredCDFKnownValues(t *testing.T) {
	// Median of chi-squared with k=2 is 2*ln(2).
	p := chiSquaredCDF(2*math.Ln2, 2)
	if math.Abs(p-0.5) > 1e-9 {
		t.Errorf("Expected CDF 0.5 at the k=2 median, got %f", p)
	}
	if chiSquaredCDF(-1, 3) != 0 {
		t.Error("Negative argument should give 0")
	}
}
