// Package forest implements a random forest regressor: bagged CART trees
// with per-split feature subsampling.
//
// Each tree is grown on a bootstrap sample of the training rows, choosing
// at every node the variance-minimizing split among a random subset of the
// covariates. Point predictions average the trees; the confidence interval
// is the 5th/95th percentile spread of the individual tree predictions.
//
// Fitting is deterministic for a fixed Config.Seed.
package forest
