// Package charts renders the run's presentation charts into a single HTML
// page: close-price line, candlestick, lag overlay, cross-validation plan,
// accuracy bars, and the forecast overlay with interval bounds.
//
// The charts are presentation-only; nothing downstream consumes them.
package charts
