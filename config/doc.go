// Package config loads and validates the pipeline configuration.
//
// Configuration is a YAML file; every numeric pipeline parameter that the
// analysis hard-codes conceptually (horizon, lag depth, window sizes,
// assessment length, Fourier periods, transform bounds) is exposed here and
// defaulted to the standard run. Struct defaults are applied after
// unmarshalling and the result is validated before use.
package config
