// Package recipe derives model covariates from engineered feature rows.
//
// A recipe is fitted once on the training rows and then applied, frozen, to
// training, assessment and future rows alike. Fitting captures the
// normalization statistics of the numeric index-like fields from the
// training data only, so no information from the assessment window or the
// future block can reach the model through the covariates.
//
// The derived columns are:
//
//   - a linear date index and day-of-year, both standardized with training
//     statistics
//   - the calendar year, standardized likewise
//   - day-of-week and month as one-hot indicators over the fixed calendar
//     levels
//   - sin/cos Fourier pairs for each configured period and harmonic order
//   - the lag and rolling-mean columns carried through from the feature rows
//
// Timezone, sub-day and quarter components of the date are dropped by
// policy.
package recipe
