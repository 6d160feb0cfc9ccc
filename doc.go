// Package stockcast provides an equity close-price forecasting pipeline.
//
// Stockcast loads daily OHLCV history for one symbol, engineers features
// (a bounded-log + standardization transform, lag and centered rolling-window
// features, calendar and Fourier covariates), backtests two model families
// on a trailing assessment window, and produces an H-step-ahead forecast
// with confidence intervals in original price units.
//
// # Pipeline
//
// A run flows through the stages in order:
//
//	history, _ := timeseries.LoadOHLCV(path, opts)       // raw daily bars
//	ts, params, _ := transform.Apply(closes, bounds)     // bounded-log + z-score
//	rows, _ := features.Build(dates, ts, spec)           // lag + rolling means
//	sp, _ := split.TrailingWindow(labeled, assessDays)   // train / assessment
//	rec, _ := recipe.Fit(sp.Training, recipeSpec)        // calendar + Fourier
//	// fit, calibrate, forecast, invert ...
//
// The forecast package ties the stages together for a single run; the cmd/stockcast
// command exposes it as a CLI.
//
// # Packages
//
//   - timeseries: OHLCV bars, ordered history, delimited-file loading
//   - transform: invertible bounded-log + standardization with explicit parameters
//   - features: future-block extension, lags, centered partial rolling windows
//   - split: time-ordered train/assessment partitioning and CV plans
//   - recipe: calendar signature, Fourier harmonics, frozen normalization
//   - stats: ACF/PACF, Ljung-Box, differencing heuristics
//   - model: the Model interface and accuracy metrics
//   - model/forest: bagged regression trees
//   - model/autoreg: ARIMA estimated by conditional sum of squares
//   - forecast: the run orchestrator
//   - report, charts: tabular and chart outputs
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Box, G. E. P., & Jenkins, G. M. (1976). Time Series Analysis: Forecasting and Control
package stockcast
