package core

import (
	"fmt"
	"time"

	"wine-backend/internal/core/forest"
)

type Prediction struct {
	Quality float64
	Label   QualityLabel
}

type ModelSummary struct {
	NEstimators  int
	Seed         int64
	TrainingRows int
	Classes      []string
	LabelCounts  map[QualityLabel]int
	TrainedAt    time.Time
	Duration     time.Duration
}

// ModelContext is the trained regression/classification pair. It is built
// once and only read afterwards, so it is safe to share between requests.
type ModelContext struct {
	regression     *forest.RegressionPipeline
	classification *forest.ClassificationPipeline
	summary        ModelSummary
}

func (m *ModelContext) Predict(v FeatureVector) (Prediction, error) {
	if len(v) != len(FeatureNames) {
		return Prediction{}, fmt.Errorf("expected %d features, got %d", len(FeatureNames), len(v))
	}

	quality, err := m.regression.Predict(v)
	if err != nil {
		return Prediction{}, fmt.Errorf("regression failed: %w", err)
	}

	label, err := m.classification.Predict(v)
	if err != nil {
		return Prediction{}, fmt.Errorf("classification failed: %w", err)
	}

	return Prediction{Quality: quality, Label: QualityLabel(label)}, nil
}

func (m *ModelContext) Summary() ModelSummary {
	s := m.summary
	s.Classes = append([]string(nil), m.summary.Classes...)
	s.LabelCounts = make(map[QualityLabel]int, len(m.summary.LabelCounts))
	for k, v := range m.summary.LabelCounts {
		s.LabelCounts[k] = v
	}
	return s
}
