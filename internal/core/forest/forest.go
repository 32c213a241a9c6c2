package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"wine-backend/internal/core/utils"
)

type Options struct {
	NEstimators int
	// MaxFeatures is the number of features considered per split. Zero
	// selects all features for regression and sqrt(n) for classification.
	MaxFeatures int
	Seed        int64
	Workers     int
	// OnTreeBuilt is called once per finished tree, possibly from several
	// goroutines.
	OnTreeBuilt func()
}

func DefaultOptions() Options {
	return Options{
		NEstimators: 200,
		Seed:        42,
		Workers:     4,
	}
}

type RandomForestRegressor struct {
	Trees []*DecisionTree
}

type RandomForestClassifier struct {
	NClasses int
	Trees    []*DecisionTree
}

func validateInput(x [][]float64, n int) error {
	if len(x) == 0 {
		return errors.New("cannot fit forest on empty input")
	}
	if len(x) != n {
		return fmt.Errorf("features and targets size mismatch: %d != %d", len(x), n)
	}
	width := len(x[0])
	if width == 0 {
		return errors.New("cannot fit forest on zero features")
	}
	for i, row := range x {
		if len(row) != width {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(row), width)
		}
	}
	return nil
}

// treeSeeds draws one seed per tree from the forest seed up front so that the
// forest is identical no matter how trees are scheduled across workers.
func treeSeeds(opts Options) []int64 {
	rng := rand.New(rand.NewSource(opts.Seed))
	seeds := make([]int64, opts.NEstimators)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	return seeds
}

func growForest(ctx context.Context, x [][]float64, y []float64, crit criterion, nClasses, maxFeatures int, opts Options) ([]*DecisionTree, error) {
	if opts.NEstimators <= 0 {
		return nil, fmt.Errorf("n_estimators must be positive, got %d", opts.NEstimators)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	grow := func(ctx context.Context, seed int64) (*DecisionTree, error) {
		rng := rand.New(rand.NewSource(seed))
		samples := make([]int, len(x))
		for i := range samples {
			samples[i] = rng.Intn(len(x))
		}
		tree, err := growTree(x, y, samples, crit, nClasses, maxFeatures, rng)
		if err != nil {
			return nil, err
		}
		if opts.OnTreeBuilt != nil {
			opts.OnTreeBuilt()
		}
		return tree, nil
	}

	return utils.RunInPool(ctx, treeSeeds(opts), grow, workers)
}

func FitRegressor(ctx context.Context, x [][]float64, y []float64, opts Options) (*RandomForestRegressor, error) {
	if err := validateInput(x, len(y)); err != nil {
		return nil, err
	}
	trees, err := growForest(ctx, x, y, squaredError, 0, opts.MaxFeatures, opts)
	if err != nil {
		return nil, fmt.Errorf("error growing regression forest: %w", err)
	}
	return &RandomForestRegressor{Trees: trees}, nil
}

func (f *RandomForestRegressor) Predict(x []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, ErrNotFitted
	}
	sum := 0.0
	for _, t := range f.Trees {
		leaf, err := t.leaf(x)
		if err != nil {
			return 0, err
		}
		sum += leaf.Value[0]
	}
	return sum / float64(len(f.Trees)), nil
}

func FitClassifier(ctx context.Context, x [][]float64, codes []int, opts Options) (*RandomForestClassifier, error) {
	if err := validateInput(x, len(codes)); err != nil {
		return nil, err
	}
	nClasses := 0
	y := make([]float64, len(codes))
	for i, c := range codes {
		if c < 0 {
			return nil, fmt.Errorf("negative class code %d at row %d", c, i)
		}
		nClasses = max(nClasses, c+1)
		y[i] = float64(c)
	}

	maxFeatures := opts.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(len(x[0])))))
	}

	trees, err := growForest(ctx, x, y, gini, nClasses, maxFeatures, opts)
	if err != nil {
		return nil, fmt.Errorf("error growing classification forest: %w", err)
	}
	return &RandomForestClassifier{NClasses: nClasses, Trees: trees}, nil
}

// PredictProba averages the leaf class distributions of all trees.
func (f *RandomForestClassifier) PredictProba(x []float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, ErrNotFitted
	}
	proba := make([]float64, f.NClasses)
	for _, t := range f.Trees {
		leaf, err := t.leaf(x)
		if err != nil {
			return nil, err
		}
		for k, p := range leaf.Value {
			proba[k] += p
		}
	}
	for k := range proba {
		proba[k] /= float64(len(f.Trees))
	}
	return proba, nil
}

// Predict returns the class code with the highest mean probability; ties go
// to the lowest code.
func (f *RandomForestClassifier) Predict(x []float64) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for k, p := range proba {
		if p > proba[best] {
			best = k
		}
	}
	return best, nil
}
