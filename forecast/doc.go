// Package forecast orchestrates one analysis run end to end.
//
// Run wires the pipeline stages in order: transform the close series,
// engineer features, split off the trailing assessment window, fit the
// covariate recipe on training rows only, calibrate each model family on
// the assessment window, then refit on the full prepared history and
// forecast the future block. Predictions and interval bounds are inverted
// back to price units with the exact transform parameters captured at the
// start of the run.
//
// Every run is stamped with a UUID and logged stage by stage; any stage
// error aborts the run.
package forecast
