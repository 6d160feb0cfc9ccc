package forest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/quantora/stockcast/model"
)

// Config controls forest growth. Zero values fall back to the defaults
// noted per field.
type Config struct {
	Trees    int   // number of trees (default 300)
	MaxDepth int   // maximum tree depth (default 12)
	MinLeaf  int   // minimum rows per leaf (default 3)
	MTry     int   // covariates tried per split (default p/3, min 1)
	Seed     int64 // RNG seed (default 1)
}

// Forest is a bagged regression-tree ensemble implementing model.Model.
type Forest struct {
	cfg   Config
	trees []*node
}

type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	value     float64
	leaf      bool
}

// New creates an unfitted forest.
func New(cfg Config) *Forest {
	if cfg.Trees <= 0 {
		cfg.Trees = 300
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 12
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 3
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	return &Forest{cfg: cfg}
}

// Name implements model.Model.
func (f *Forest) Name() string { return "random_forest" }

// Fit grows the ensemble on the design matrix and aligned target.
func (f *Forest) Fit(design [][]float64, target []float64) error {
	n := len(design)
	if n == 0 || n != len(target) {
		return fmt.Errorf("forest: need equal non-empty design/target, got %d and %d", n, len(target))
	}
	p := len(design[0])
	if p == 0 {
		return errors.New("forest: design matrix has no covariates")
	}

	mtry := f.cfg.MTry
	if mtry <= 0 {
		mtry = p / 3
	}
	if mtry < 1 {
		mtry = 1
	}
	if mtry > p {
		mtry = p
	}

	rng := rand.New(rand.NewSource(f.cfg.Seed))
	f.trees = make([]*node, f.cfg.Trees)
	for i := range f.trees {
		sample := make([]int, n)
		for j := range sample {
			sample[j] = rng.Intn(n)
		}
		f.trees[i] = f.grow(design, target, sample, mtry, 0, rng)
	}
	return nil
}

// Predict averages the trees per row; the interval is the 5th/95th
// percentile of the per-tree predictions.
func (f *Forest) Predict(design [][]float64) ([]model.Prediction, error) {
	if len(f.trees) == 0 {
		return nil, errors.New("forest: model not fitted")
	}

	out := make([]model.Prediction, len(design))
	votes := make([]float64, len(f.trees))
	for i, row := range design {
		for j, t := range f.trees {
			votes[j] = t.predict(row)
		}
		sorted := make([]float64, len(votes))
		copy(sorted, votes)
		sort.Float64s(sorted)

		sum := 0.0
		for _, v := range votes {
			sum += v
		}
		out[i] = model.Prediction{
			Point: sum / float64(len(votes)),
			Lower: quantile(sorted, 0.05),
			Upper: quantile(sorted, 0.95),
		}
	}
	return out, nil
}

func (f *Forest) grow(design [][]float64, target []float64, rows []int, mtry, depth int, rng *rand.Rand) *node {
	if depth >= f.cfg.MaxDepth || len(rows) < 2*f.cfg.MinLeaf || constant(target, rows) {
		return &node{leaf: true, value: meanAt(target, rows)}
	}

	feature, threshold, ok := f.bestSplit(design, target, rows, mtry, rng)
	if !ok {
		return &node{leaf: true, value: meanAt(target, rows)}
	}

	var left, right []int
	for _, r := range rows {
		if design[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) < f.cfg.MinLeaf || len(right) < f.cfg.MinLeaf {
		return &node{leaf: true, value: meanAt(target, rows)}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      f.grow(design, target, left, mtry, depth+1, rng),
		right:     f.grow(design, target, right, mtry, depth+1, rng),
	}
}

// bestSplit scans a random subset of covariates for the SSE-minimizing
// threshold, using prefix sums over the sorted column.
func (f *Forest) bestSplit(design [][]float64, target []float64, rows []int, mtry int, rng *rand.Rand) (int, float64, bool) {
	p := len(design[0])
	perm := rng.Perm(p)

	bestSSE := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	type pair struct{ x, y float64 }
	pairs := make([]pair, len(rows))

	for _, feature := range perm[:mtry] {
		for i, r := range rows {
			pairs[i] = pair{design[r][feature], target[r]}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].x < pairs[j].x })

		total, totalSq := 0.0, 0.0
		for _, q := range pairs {
			total += q.y
			totalSq += q.y * q.y
		}

		leftSum, leftSq := 0.0, 0.0
		n := float64(len(pairs))
		for i := 0; i < len(pairs)-1; i++ {
			leftSum += pairs[i].y
			leftSq += pairs[i].y * pairs[i].y
			if pairs[i].x == pairs[i+1].x {
				continue
			}
			nl := float64(i + 1)
			nr := n - nl
			sse := (leftSq - leftSum*leftSum/nl) + ((totalSq - leftSq) - (total-leftSum)*(total-leftSum)/nr)
			if sse < bestSSE {
				bestSSE = sse
				bestFeature = feature
				bestThreshold = (pairs[i].x + pairs[i+1].x) / 2
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func (nd *node) predict(row []float64) float64 {
	for !nd.leaf {
		if row[nd.feature] <= nd.threshold {
			nd = nd.left
		} else {
			nd = nd.right
		}
	}
	return nd.value
}

func meanAt(target []float64, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rows {
		sum += target[r]
	}
	return sum / float64(len(rows))
}

func constant(target []float64, rows []int) bool {
	for _, r := range rows[1:] {
		if target[r] != target[rows[0]] {
			return false
		}
	}
	return true
}

// quantile reads the q-th quantile from an ascending-sorted slice using
// nearest-rank interpolation.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
