package transform

import (
	"fmt"
	"math"
)

// Bounds configures the bounded-log mapping. Upper may be zero, in which
// case it is estimated from the data as max(x) * Headroom.
type Bounds struct {
	Lower    float64
	Upper    float64
	Offset   float64
	Headroom float64 // multiplier for the estimated upper limit (default 1.2)
}

// Params carries everything needed to invert a transformed series. The
// parameters are data, not constants: the same Params value produced by
// Apply must reach Invert, or forecast units are silently wrong.
type Params struct {
	Lower  float64
	Upper  float64
	Offset float64
	Mean   float64
	Std    float64
}

// DomainError reports a value outside the transform's valid open interval.
type DomainError struct {
	Index int
	Value float64
	Lower float64
	Upper float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("transform: value %g at row %d outside (%g, %g)", e.Value, e.Index, e.Lower, e.Upper)
}

// Apply runs the bounded-log mapping followed by standardization over the
// historical values and returns the transformed series with the captured
// parameters. The input slice is not modified.
func Apply(values []float64, b Bounds) ([]float64, Params, error) {
	p := Params{Lower: b.Lower, Upper: b.Upper, Offset: b.Offset}
	if p.Upper == 0 {
		headroom := b.Headroom
		if headroom == 0 {
			headroom = 1.2
		}
		max := math.Inf(-1)
		for _, v := range values {
			if v > max {
				max = v
			}
		}
		p.Upper = max * headroom
	}

	logged := make([]float64, len(values))
	for i, v := range values {
		if v <= p.Lower || v >= p.Upper {
			return nil, Params{}, &DomainError{Index: i, Value: v, Lower: p.Lower, Upper: p.Upper}
		}
		logged[i] = math.Log((v - p.Lower + p.Offset) / (p.Upper - v + p.Offset))
	}

	p.Mean, p.Std = meanStd(logged)

	out := make([]float64, len(logged))
	for i, v := range logged {
		if p.Std == 0 {
			out[i] = 0
			continue
		}
		out[i] = (v - p.Mean) / p.Std
	}
	return out, p, nil
}

// Invert reverses standardization then the bounded-log mapping, in that
// order, returning values in original units.
func Invert(values []float64, p Params) []float64 {
	out := make([]float64, len(values))
	for i, z := range values {
		out[i] = InvertOne(z, p)
	}
	return out
}

// InvertOne inverts a single transformed value.
func InvertOne(z float64, p Params) float64 {
	g := z*p.Std + p.Mean
	e := math.Exp(g)
	return (e*(p.Upper+p.Offset) + p.Lower - p.Offset) / (1 + e)
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
