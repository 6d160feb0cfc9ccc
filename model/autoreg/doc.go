// Package autoreg implements an ARIMA(p,d,q) forecaster behind the
// model.Model interface.
//
// Estimation follows the conditional-sum-of-squares approach: AR
// coefficients are initialized by Levinson-Durbin over the sample
// autocorrelations, then AR and MA terms are refined jointly by gradient
// descent on the conditional residual sum of squares. Differencing is
// applied before estimation and integrated back for forecasts.
//
// When no order is pinned, Fit searches a small (p,q) grid at the
// variance-minimizing differencing order and keeps the AICc-best candidate.
//
// Forecast intervals come from the psi-weight representation: the h-step
// variance is the residual variance times the cumulative sum of squared
// psi weights, with the weights integrated once per differencing order.
//
// The design matrix passed to Fit and Predict is ignored except for its
// row count; the model is univariate and uses Predict's row count as the
// forecast horizon.
package autoreg
