// Package model defines the capability interface the pipeline uses to fit
// and query forecasting models, plus the shared accuracy metrics.
//
// Two concrete families implement the interface: model/forest (a bagged
// regression-tree ensemble) and model/autoreg (ARIMA). The pipeline is
// agnostic to which family scores better; it calibrates and reports both.
package model
