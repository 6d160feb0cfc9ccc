package split

import (
	"fmt"
	"sort"
	"time"

	"github.com/quantora/stockcast/features"
)

// Options controls the partitioning. AssessmentDays is measured in calendar
// days. RollingDays limits the training window to a fixed trailing width;
// zero means cumulative training from the start of the data.
type Options struct {
	AssessmentDays int
	RollingDays    int
}

// Split holds the two disjoint, time-ordered subsets.
type Split struct {
	Training   []features.Row
	Assessment []features.Row
}

// InsufficientDataError reports a history too short for the configured
// assessment window.
type InsufficientDataError struct {
	Have   int
	Assess int
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("split: %s (%d rows available, %d in assessment)", e.Reason, e.Have, e.Assess)
}

// TrailingWindow partitions labeled rows (the caller excludes the future
// block) into training and a trailing assessment window.
func TrailingWindow(rows []features.Row, opts Options) (*Split, error) {
	if opts.AssessmentDays <= 0 {
		return nil, fmt.Errorf("split: assessment window must be positive, got %d days", opts.AssessmentDays)
	}
	if len(rows) == 0 {
		return nil, &InsufficientDataError{Reason: "no labeled rows"}
	}

	ordered := make([]features.Row, len(rows))
	copy(ordered, rows)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	for i, r := range ordered {
		if r.Future || features.IsMissing(r.Close) {
			return nil, fmt.Errorf("split: row %d (%s) has no label", i, r.Date.Format("2006-01-02"))
		}
	}

	last := ordered[len(ordered)-1].Date
	cutoff := last.AddDate(0, 0, -opts.AssessmentDays)

	boundary := sort.Search(len(ordered), func(i int) bool { return ordered[i].Date.After(cutoff) })
	training := ordered[:boundary]
	assessment := ordered[boundary:]

	if len(training) == 0 || len(training) < len(assessment) {
		return nil, &InsufficientDataError{
			Have:   len(ordered),
			Assess: len(assessment),
			Reason: "assessment window exhausts the available history",
		}
	}

	if opts.RollingDays > 0 {
		trainCutoff := cutoff.AddDate(0, 0, -opts.RollingDays)
		start := sort.Search(len(training), func(i int) bool { return training[i].Date.After(trainCutoff) })
		training = training[start:]
	}

	return &Split{Training: training, Assessment: assessment}, nil
}

// Fold describes one fold of a cross-validation plan by its date spans.
type Fold struct {
	Index       int
	TrainStart  time.Time
	TrainEnd    time.Time
	AssessStart time.Time
	AssessEnd   time.Time
}

// PlanFolds lays out a cumulative-origin cross-validation plan: fold 0 is
// the trailing assessment window, each further fold shifts the window back
// by one assessment length. Folds that would leave no training data are
// dropped.
func PlanFolds(rows []features.Row, opts Options, folds int) ([]Fold, error) {
	if folds <= 0 {
		return nil, fmt.Errorf("split: fold count must be positive, got %d", folds)
	}

	var out []Fold
	remaining := rows
	for i := 0; i < folds; i++ {
		sp, err := TrailingWindow(remaining, Options{AssessmentDays: opts.AssessmentDays, RollingDays: opts.RollingDays})
		if err != nil {
			if i == 0 {
				return nil, err
			}
			break
		}
		out = append(out, Fold{
			Index:       i,
			TrainStart:  sp.Training[0].Date,
			TrainEnd:    sp.Training[len(sp.Training)-1].Date,
			AssessStart: sp.Assessment[0].Date,
			AssessEnd:   sp.Assessment[len(sp.Assessment)-1].Date,
		})
		remaining = remaining[:len(remaining)-len(sp.Assessment)]
	}
	return out, nil
}
