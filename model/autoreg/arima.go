package autoreg

import (
	"errors"
	"fmt"
	"math"

	"github.com/quantora/stockcast/model"
	"github.com/quantora/stockcast/stats"
	"github.com/quantora/stockcast/timeseries"
)

// Order is the (p,d,q) specification of an ARIMA model.
type Order struct {
	P int // autoregressive terms
	D int // differencing order
	Q int // moving-average terms
}

func (o Order) String() string { return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q) }

// Config controls fitting. A nil Order triggers an AICc grid search up to
// MaxP/MaxQ at the heuristic differencing order.
type Config struct {
	Order *Order
	MaxP  int     // search bound for p (default 3)
	MaxQ  int     // search bound for q (default 3)
	Level float64 // interval confidence level (default 0.95)
}

// ARIMA implements model.Model for one univariate target series.
type ARIMA struct {
	cfg Config

	order     Order
	ar        []float64
	ma        []float64
	intercept float64
	variance  float64
	aic       float64
	aicc      float64
	bic       float64
	logLik    float64

	target    *timeseries.Series
	diffed    *timeseries.Series
	residuals []float64
	fitted    bool
}

// New creates an unfitted ARIMA model.
func New(cfg Config) *ARIMA {
	if cfg.MaxP <= 0 {
		cfg.MaxP = 3
	}
	if cfg.MaxQ <= 0 {
		cfg.MaxQ = 3
	}
	if cfg.Level <= 0 || cfg.Level >= 1 {
		cfg.Level = 0.95
	}
	return &ARIMA{cfg: cfg}
}

// Name implements model.Model.
func (a *ARIMA) Name() string { return "arima" }

// FittedOrder returns the order selected or pinned at fit time.
func (a *ARIMA) FittedOrder() Order { return a.order }

// AICc returns the corrected Akaike criterion of the fit.
func (a *ARIMA) AICc() float64 { return a.aicc }

// Fit estimates the model on the target. The design matrix is ignored
// beyond a length consistency check; the model is univariate.
func (a *ARIMA) Fit(design [][]float64, target []float64) error {
	if len(design) != 0 && len(design) != len(target) {
		return fmt.Errorf("autoreg: design has %d rows for %d targets", len(design), len(target))
	}
	series := timeseries.NewSeries(target)

	if a.cfg.Order != nil {
		return a.fitOrder(series, *a.cfg.Order)
	}

	d := stats.DiffOrder(series, 2)
	type candidate struct {
		order Order
		aicc  float64
	}
	best := candidate{aicc: math.Inf(1)}
	for p := 0; p <= a.cfg.MaxP; p++ {
		for q := 0; q <= a.cfg.MaxQ; q++ {
			trial := New(Config{Level: a.cfg.Level})
			if err := trial.fitOrder(series, Order{P: p, D: d, Q: q}); err != nil {
				continue
			}
			if trial.aicc < best.aicc {
				best = candidate{order: trial.order, aicc: trial.aicc}
			}
		}
	}
	if math.IsInf(best.aicc, 1) {
		return errors.New("autoreg: no candidate order could be fitted")
	}
	return a.fitOrder(series, best.order)
}

func (a *ARIMA) fitOrder(series *timeseries.Series, order Order) error {
	minLen := order.P + order.Q + order.D + 10
	if series.Len() < minLen {
		return fmt.Errorf("autoreg: %s needs at least %d observations, have %d", order, minLen, series.Len())
	}

	a.order = order
	a.target = series
	a.ar = make([]float64, order.P)
	a.ma = make([]float64, order.Q)

	diffed := series
	for i := 0; i < order.D; i++ {
		diffed = diffed.Diff()
		if diffed.Len() == 0 {
			return errors.New("autoreg: differencing exhausted the series")
		}
	}
	a.diffed = diffed

	a.estimateCSS()
	a.informationCriteria()
	a.fitted = true
	return nil
}

// estimateCSS initializes the AR terms by Levinson-Durbin and refines all
// coefficients by gradient descent on the conditional sum of squares.
func (a *ARIMA) estimateCSS() {
	y := a.diffed.Values
	n := len(y)
	p, q := a.order.P, a.order.Q

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	a.intercept = mean / float64(n)

	if p == 0 && q == 0 {
		a.residuals = make([]float64, n)
		sumSq := 0.0
		for i, v := range y {
			a.residuals[i] = v - a.intercept
			sumSq += a.residuals[i] * a.residuals[i]
		}
		if n > 1 {
			a.variance = sumSq / float64(n-1)
		}
		return
	}

	if p > 0 {
		if init := levinsonDurbin(stats.ACF(a.diffed, p), p); init != nil {
			copy(a.ar, init)
		}
	}
	for i := range a.ma {
		a.ma[i] = 0.1
	}

	const (
		maxIter      = 100
		tolerance    = 1e-6
		learningRate = 0.01
	)

	start := p
	if q > start {
		start = q
	}

	prevSSE := math.Inf(1)
	for iter := 0; iter < maxIter; iter++ {
		resid, sse := a.conditionalResiduals(y, start)

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		for t := start; t < n; t++ {
			for i := 0; i < p; i++ {
				arGrad[i] -= 2 * resid[t] * (y[t-i-1] - a.intercept)
			}
			for i := 0; i < q; i++ {
				maGrad[i] -= 2 * resid[t] * resid[t-i-1]
			}
		}

		for i := 0; i < p; i++ {
			a.ar[i] = clamp(a.ar[i]-learningRate*arGrad[i]/float64(n), -0.99, 0.99)
		}
		for i := 0; i < q; i++ {
			a.ma[i] = clamp(a.ma[i]-learningRate*maGrad[i]/float64(n), -0.99, 0.99)
		}

		if math.Abs(prevSSE-sse) < tolerance {
			break
		}
		prevSSE = sse
	}

	resid, _ := a.conditionalResiduals(y, start)
	a.residuals = resid

	sse, count := 0.0, 0
	for t := start; t < n; t++ {
		sse += resid[t] * resid[t]
		count++
	}
	params := p + q + 1
	if count > params {
		a.variance = sse / float64(count-params)
	} else if count > 0 {
		a.variance = sse / float64(count)
	}
}

// conditionalResiduals computes one-step residuals with pre-sample
// residuals fixed at zero.
func (a *ARIMA) conditionalResiduals(y []float64, start int) ([]float64, float64) {
	n := len(y)
	resid := make([]float64, n)
	sse := 0.0
	for t := 0; t < n; t++ {
		pred := a.intercept
		if t >= start {
			for i := 0; i < a.order.P; i++ {
				pred += a.ar[i] * (y[t-i-1] - a.intercept)
			}
			for i := 0; i < a.order.Q; i++ {
				pred += a.ma[i] * resid[t-i-1]
			}
		}
		resid[t] = y[t] - pred
		if t >= start {
			sse += resid[t] * resid[t]
		}
	}
	return resid, sse
}

func (a *ARIMA) informationCriteria() {
	n := len(a.residuals)
	k := a.order.P + a.order.Q + 1

	sse := 0.0
	for _, r := range a.residuals {
		sse += r * r
	}

	if a.variance > 0 {
		nf := float64(n)
		a.logLik = -nf/2*math.Log(2*math.Pi) - nf/2*math.Log(a.variance) - sse/(2*a.variance)
	} else {
		a.logLik = math.Inf(-1)
	}

	kf, nf := float64(k), float64(n)
	a.aic = -2*a.logLik + 2*kf
	if nf-kf-1 > 0 {
		a.aicc = a.aic + 2*kf*(kf+1)/(nf-kf-1)
	} else {
		a.aicc = math.Inf(1)
	}
	a.bic = -2*a.logLik + kf*math.Log(nf)
}

// Predict implements model.Model: it forecasts len(design) steps ahead
// from the end of the fitted series.
func (a *ARIMA) Predict(design [][]float64) ([]model.Prediction, error) {
	return a.Forecast(len(design))
}

// Forecast produces steps-ahead predictions with confidence intervals.
func (a *ARIMA) Forecast(steps int) ([]model.Prediction, error) {
	if !a.fitted {
		return nil, errors.New("autoreg: model not fitted")
	}
	if steps < 1 {
		return nil, fmt.Errorf("autoreg: forecast steps must be positive, got %d", steps)
	}

	y := a.diffed.Values
	n := len(y)
	p, q, d := a.order.P, a.order.Q, a.order.D

	extY := make([]float64, n+steps)
	copy(extY, y)
	extResid := make([]float64, n+steps)
	copy(extResid, a.residuals)

	for h := 0; h < steps; h++ {
		t := n + h
		pred := a.intercept
		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += a.ar[i] * (extY[t-i-1] - a.intercept)
		}
		for i := 0; i < q && t-i-1 >= 0 && t-i-1 < n; i++ {
			pred += a.ma[i] * extResid[t-i-1]
		}
		extY[t] = pred
	}

	points := extY[n:]
	if d > 0 {
		points = a.integrate(points)
	}

	z := normalQuantile((1 + a.cfg.Level) / 2)
	psi := a.psiWeights(steps)
	out := make([]model.Prediction, steps)
	cumVar := 0.0
	for h := 0; h < steps; h++ {
		cumVar += psi[h] * psi[h]
		half := z * math.Sqrt(a.variance*cumVar)
		out[h] = model.Prediction{Point: points[h], Lower: points[h] - half, Upper: points[h] + half}
	}
	return out, nil
}

// integrate undoes d rounds of differencing. Each undo pass seeds from
// the last value of the series at that differencing depth, innermost
// first.
func (a *ARIMA) integrate(points []float64) []float64 {
	out := make([]float64, len(points))
	copy(out, points)

	tails := make([]float64, a.order.D)
	s := a.target
	for i := 0; i < a.order.D; i++ {
		tails[i] = s.Values[s.Len()-1]
		s = s.Diff()
	}

	for i := a.order.D - 1; i >= 0; i-- {
		prev := tails[i]
		for j := range out {
			out[j] += prev
			prev = out[j]
		}
	}
	return out
}

// psiWeights expands the fitted model into its MA(inf) weights, integrated
// once per differencing order so interval widths are on the original scale.
func (a *ARIMA) psiWeights(steps int) []float64 {
	p, q := a.order.P, a.order.Q
	psi := make([]float64, steps)
	psi[0] = 1
	for j := 1; j < steps; j++ {
		v := 0.0
		if j <= q {
			v = a.ma[j-1]
		}
		for i := 1; i <= p && i <= j; i++ {
			v += a.ar[i-1] * psi[j-i]
		}
		psi[j] = v
	}

	for i := 0; i < a.order.D; i++ {
		for j := 1; j < steps; j++ {
			psi[j] += psi[j-1]
		}
	}
	return psi
}

// Residuals returns a copy of the one-step residuals.
func (a *ARIMA) Residuals() []float64 {
	if !a.fitted {
		return nil
	}
	out := make([]float64, len(a.residuals))
	copy(out, a.residuals)
	return out
}

// Summary reports the fitted coefficients, information criteria and a
// Ljung-Box residual diagnostic.
type Summary struct {
	Order     Order
	AR        []float64
	MA        []float64
	Intercept float64
	Variance  float64
	AIC       float64
	AICc      float64
	BIC       float64
	LogLik    float64
	NObs      int
	LjungBox  *stats.LjungBoxResult
}

// Summary returns nil before Fit.
func (a *ARIMA) Summary() *Summary {
	if !a.fitted {
		return nil
	}
	return &Summary{
		Order:     a.order,
		AR:        a.ar,
		MA:        a.ma,
		Intercept: a.intercept,
		Variance:  a.variance,
		AIC:       a.aic,
		AICc:      a.aicc,
		BIC:       a.bic,
		LogLik:    a.logLik,
		NObs:      a.target.Len(),
		LjungBox:  stats.LjungBox(timeseries.NewSeries(a.residuals), 10, a.order.P+a.order.Q),
	}
}

// levinsonDurbin solves the Yule-Walker equations for the AR coefficients
// given the sample autocorrelations.
func levinsonDurbin(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = acf[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		lambda := acf[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * acf[i-j]
		}
		lambda /= v

		next := make([]float64, i+1)
		for j := 0; j < i; j++ {
			next[j] = phi[j] - lambda*phi[i-1-j]
		}
		next[i] = lambda
		copy(phi, next)

		v *= 1 - lambda*lambda
		if v <= 0 {
			break
		}
	}
	return phi
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// normalQuantile inverts the standard normal CDF (Acklam's rational
// approximation, adequate for interval z-scores).
func normalQuantile(p float64) float64 {
	if p <= 0 || p >= 1 {
		return math.NaN()
	}

	a := []float64{-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00}
	b := []float64{-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01}
	c := []float64{-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00}
	d := []float64{7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00,
		3.754408661907416e+00}

	const (
		low  = 0.02425
		high = 1 - low
	)

	switch {
	case p < low:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p > high:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	}
}
