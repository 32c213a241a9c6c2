package core

import (
	"fmt"
	"math"
	"math/rand"
)

type EvaluationReport struct {
	Rows int
	MAE  float64
	RMSE float64
	// Accuracy compares the classifier output with the bucketed true quality.
	Accuracy float64
	// Disagreement is the share of rows where the label derived from the
	// regression estimate differs from the classifier label.
	Disagreement float64
}

// SplitDataset shuffles row indices with the given seed and holds out
// testRatio of them.
func SplitDataset(ds *Dataset, testRatio float64, seed int64) (*Dataset, *Dataset, error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio must be in (0, 1), got %v", testRatio)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(ds.Len())
	split := int(math.Round(float64(ds.Len()) * (1 - testRatio)))
	if split == 0 || split == ds.Len() {
		return nil, nil, fmt.Errorf("dataset with %d rows is too small for test ratio %v", ds.Len(), testRatio)
	}
	return ds.Subset(perm[:split]), ds.Subset(perm[split:]), nil
}

func Evaluate(model *ModelContext, ds *Dataset) (EvaluationReport, error) {
	report := EvaluationReport{Rows: ds.Len()}
	if ds.Len() == 0 {
		return report, nil
	}

	var absErr, sqErr float64
	var correct, disagree int
	for i, row := range ds.Features {
		p, err := model.Predict(row)
		if err != nil {
			return report, fmt.Errorf("row %d: %w", i, err)
		}
		diff := p.Quality - ds.Quality[i]
		absErr += math.Abs(diff)
		sqErr += diff * diff
		if p.Label == LabelForQuality(ds.Quality[i]) {
			correct++
		}
		if p.Label != LabelForQuality(math.Round(p.Quality)) {
			disagree++
		}
	}

	n := float64(ds.Len())
	report.MAE = absErr / n
	report.RMSE = math.Sqrt(sqErr / n)
	report.Accuracy = float64(correct) / n
	report.Disagreement = float64(disagree) / n
	return report, nil
}
