// Package transform maps a bounded price series into an unbounded,
// standardized domain and back.
//
// The forward transform composes a bounded-log mapping
//
//	f(x) = log((x - L + O) / (U - x + O))
//
// with z-score standardization, where the mean and standard deviation are
// computed over the historical observations only. All five parameters
// (L, U, O, mean, sd) are captured in a Params value that must travel with
// the transformed series: Invert applied with the same Params recovers the
// original values to floating-point tolerance.
//
// Values outside the open interval (L, U) fail with *DomainError before any
// output is produced.
package transform
