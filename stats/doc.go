// Package stats provides the autocorrelation and diagnostic functions the
// autoregressive model consumes.
//
// ACF and PACF compute sample (partial) autocorrelations, LjungBox tests
// residuals for remaining autocorrelation, and DiffOrder picks a
// differencing order by variance minimization.
package stats
