package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wine-backend/internal/core/forest"
)

type TrainerOptions struct {
	NEstimators int
	Seed        int64
	Workers     int
	OnTreeBuilt func()
}

func DefaultTrainerOptions() TrainerOptions {
	opts := forest.DefaultOptions()
	return TrainerOptions{
		NEstimators: opts.NEstimators,
		Seed:        opts.Seed,
		Workers:     opts.Workers,
	}
}

type Trainer struct {
	opts TrainerOptions
}

func NewTrainer(opts TrainerOptions) *Trainer {
	return &Trainer{opts: opts}
}

// Train fits the regression pipeline on the raw quality score and the
// classification pipeline on the bucketed quality labels.
func (t *Trainer) Train(ctx context.Context, ds *Dataset) (*ModelContext, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: no dataset to train on", ErrDatasetNotFound)
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%w: cannot train on empty dataset", ErrInvalidDataset)
	}

	start := time.Now()
	opts := forest.Options{
		NEstimators: t.opts.NEstimators,
		Seed:        t.opts.Seed,
		Workers:     t.opts.Workers,
		OnTreeBuilt: t.opts.OnTreeBuilt,
	}

	labels := make([]string, ds.Len())
	counts := make(map[QualityLabel]int)
	for i, q := range ds.Quality {
		label := LabelForQuality(q)
		labels[i] = string(label)
		counts[label]++
	}

	slog.Info("training regression model", "rows", ds.Len(), "n_estimators", opts.NEstimators, "seed", opts.Seed)
	regression, err := forest.FitRegressionPipeline(ctx, ds.Features, ds.Quality, opts)
	if err != nil {
		return nil, fmt.Errorf("error training regression model: %w", err)
	}

	slog.Info("training classification model", "rows", ds.Len(), "label_counts", counts)
	classification, err := forest.FitClassificationPipeline(ctx, ds.Features, labels, opts)
	if err != nil {
		return nil, fmt.Errorf("error training classification model: %w", err)
	}

	model := &ModelContext{
		regression:     regression,
		classification: classification,
		summary: ModelSummary{
			NEstimators:  opts.NEstimators,
			Seed:         opts.Seed,
			TrainingRows: ds.Len(),
			Classes:      classification.Classes(),
			LabelCounts:  counts,
			TrainedAt:    time.Now().UTC(),
			Duration:     time.Since(start),
		},
	}

	slog.Info("models trained successfully", "duration", model.summary.Duration, "classes", model.summary.Classes)
	return model, nil
}
