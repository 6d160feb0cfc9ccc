package model

// Prediction is one point estimate with its confidence interval, in the
// units the model was trained in.
type Prediction struct {
	Point float64
	Lower float64
	Upper float64
}

// Model is the capability interface every forecasting variant implements.
// Fit trains on a design matrix and aligned target; Predict scores new
// design rows in input order. An autoregressive variant may ignore the
// covariate values and use only the number of requested rows as its
// forecast horizon.
type Model interface {
	Name() string
	Fit(design [][]float64, target []float64) error
	Predict(design [][]float64) ([]Prediction, error)
}

// Points extracts the point estimates from predictions.
func Points(preds []Prediction) []float64 {
	out := make([]float64, len(preds))
	for i, p := range preds {
		out[i] = p.Point
	}
	return out
}
