package core_test

import (
	"context"
	"sync/atomic"
	"testing"

	"wine-backend/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Quality is fully determined by alcohol: ~9 is Low, ~11 is Medium, ~13 is High.
func separableDataset(rows int) *core.Dataset {
	ds := &core.Dataset{}
	for i := 0; i < rows; i++ {
		bucket := i % 3
		ds.Features = append(ds.Features, []float64{7.4, 0.7, 0, 1.9, 0.076, 11, 34, 0.9978, 3.51, 0.56, 9 + 2*float64(bucket) + 0.01*float64(i)})
		ds.Quality = append(ds.Quality, float64(4+2*bucket))
	}
	return ds
}

func testTrainer() *core.Trainer {
	return core.NewTrainer(core.TrainerOptions{NEstimators: 10, Seed: 42, Workers: 3})
}

func TestTrainAndPredict(t *testing.T) {
	ds := separableDataset(60)
	model, err := testTrainer().Train(context.Background(), ds)
	require.NoError(t, err)

	for i, row := range ds.Features {
		p, err := model.Predict(row)
		require.NoError(t, err)
		assert.Equal(t, core.LabelForQuality(ds.Quality[i]), p.Label, "row %d", i)
		assert.InDelta(t, ds.Quality[i], p.Quality, 0.5, "row %d", i)
	}

	summary := model.Summary()
	assert.Equal(t, 10, summary.NEstimators)
	assert.Equal(t, int64(42), summary.Seed)
	assert.Equal(t, 60, summary.TrainingRows)
	assert.Equal(t, []string{"High", "Low", "Medium"}, summary.Classes)
	assert.Equal(t, map[core.QualityLabel]int{core.LabelLow: 20, core.LabelMedium: 20, core.LabelHigh: 20}, summary.LabelCounts)

	summary.Classes[0] = "changed"
	assert.Equal(t, "High", model.Summary().Classes[0])
}

func TestPredictIsDeterministic(t *testing.T) {
	ds := separableDataset(60)
	input := core.FeatureVector{7.4, 0.7, 0, 1.9, 0.076, 11, 34, 0.9978, 3.51, 0.56, 10.1}

	model, err := testTrainer().Train(context.Background(), ds)
	require.NoError(t, err)
	first, err := model.Predict(input)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := model.Predict(input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	retrained, err := core.NewTrainer(core.TrainerOptions{NEstimators: 10, Seed: 42, Workers: 1}).Train(context.Background(), ds)
	require.NoError(t, err)
	other, err := retrained.Predict(input)
	require.NoError(t, err)
	assert.Equal(t, first, other)
}

func TestPredictWrongLength(t *testing.T) {
	model, err := testTrainer().Train(context.Background(), separableDataset(30))
	require.NoError(t, err)

	_, err = model.Predict(core.FeatureVector{1, 2, 3})
	assert.Error(t, err)
}

func TestTrainReportsProgress(t *testing.T) {
	var built atomic.Int64
	trainer := core.NewTrainer(core.TrainerOptions{
		NEstimators: 4,
		Seed:        1,
		Workers:     2,
		OnTreeBuilt: func() { built.Add(1) },
	})
	_, err := trainer.Train(context.Background(), separableDataset(30))
	require.NoError(t, err)
	assert.Equal(t, int64(8), built.Load())
}

func TestTrainEmptyDataset(t *testing.T) {
	_, err := testTrainer().Train(context.Background(), &core.Dataset{})
	assert.ErrorIs(t, err, core.ErrInvalidDataset)

	_, err = testTrainer().Train(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrDatasetNotFound)
	assert.NotErrorIs(t, err, core.ErrInvalidDataset)
}

func TestModelHolder(t *testing.T) {
	holder := core.NewModelHolder()
	assert.Equal(t, core.ModelUninitialized, holder.State())

	_, err := holder.Get()
	assert.ErrorIs(t, err, core.ErrModelsNotReady)

	model, err := holder.Train(context.Background(), testTrainer(), separableDataset(30))
	require.NoError(t, err)
	assert.Equal(t, core.ModelReady, holder.State())
	assert.NoError(t, holder.Err())

	got, err := holder.Get()
	require.NoError(t, err)
	assert.Same(t, model, got)

	_, err = holder.Train(context.Background(), testTrainer(), separableDataset(30))
	assert.Error(t, err)
	assert.Equal(t, core.ModelReady, holder.State())
}

func TestModelHolderFailedTraining(t *testing.T) {
	holder := core.NewModelHolder()
	_, err := holder.Train(context.Background(), testTrainer(), &core.Dataset{})
	require.Error(t, err)

	assert.Equal(t, core.ModelFailed, holder.State())
	assert.Error(t, holder.Err())
	_, err = holder.Get()
	assert.ErrorIs(t, err, core.ErrModelsNotReady)
}

func TestModelHolderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	holder := core.NewModelHolder()
	_, err := holder.Train(ctx, testTrainer(), separableDataset(30))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, core.ModelFailed, holder.State())
}

func TestSplitDataset(t *testing.T) {
	ds := separableDataset(60)

	train, test, err := core.SplitDataset(ds, 0.25, 7)
	require.NoError(t, err)
	assert.Equal(t, 45, train.Len())
	assert.Equal(t, 15, test.Len())

	train2, test2, err := core.SplitDataset(ds, 0.25, 7)
	require.NoError(t, err)
	assert.Equal(t, train.Quality, train2.Quality)
	assert.Equal(t, test.Features, test2.Features)

	for _, ratio := range []float64{0, 1, -0.5} {
		_, _, err := core.SplitDataset(ds, ratio, 7)
		assert.Error(t, err)
	}
	_, _, err = core.SplitDataset(separableDataset(1), 0.2, 7)
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	train, test, err := core.SplitDataset(separableDataset(90), 0.2, 3)
	require.NoError(t, err)

	model, err := testTrainer().Train(context.Background(), train)
	require.NoError(t, err)

	report, err := core.Evaluate(model, test)
	require.NoError(t, err)
	assert.Equal(t, test.Len(), report.Rows)
	assert.Equal(t, 1.0, report.Accuracy)
	assert.Less(t, report.MAE, 0.5)
	assert.GreaterOrEqual(t, report.RMSE, report.MAE)
	assert.Zero(t, report.Disagreement)
}
