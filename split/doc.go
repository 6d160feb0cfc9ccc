// Package split partitions prepared feature rows into time-ordered
// training and assessment sets.
//
// TrailingWindow reserves a trailing calendar window as the assessment set
// and uses everything strictly before it as training, either cumulatively
// from the start of the data or as a fixed rolling width. The two sets are
// disjoint, jointly cover the input, and every assessment date is later
// than every training date.
//
// PlanFolds builds a multi-fold cross-validation plan with a cumulative
// origin and fixed assessment length, mainly for visualizing the backtest
// layout.
package split
