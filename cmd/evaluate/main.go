package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"wine-backend/cmd"
	"wine-backend/internal/core"

	"github.com/caarlos0/env/v11"
	"github.com/schollz/progressbar/v3"
)

func main() {
	datasetPath := flag.String("dataset", "winequality-red.csv", "local path or s3://bucket/key of the training csv")
	testRatio := flag.Float64("test-ratio", 0.2, "fraction of rows held out for evaluation")
	seed := flag.Int64("seed", 42, "seed for the split and the forests")
	trees := flag.Int("trees", 200, "trees per forest")
	workers := flag.Int("workers", 4, "trees grown in parallel")
	cmd.LoadEnvFile()

	var s3cfg cmd.S3Config
	if err := env.Parse(&s3cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	provider, bucket, key, err := cmd.NewDatasetProvider(*datasetPath, s3cfg)
	if err != nil {
		log.Fatalf("error creating dataset provider: %v", err)
	}

	ctx := context.Background()
	dataset, err := core.ReadDataset(ctx, provider, bucket, key)
	if err != nil {
		log.Fatalf("error loading dataset: %v", err)
	}

	train, test, err := core.SplitDataset(dataset, *testRatio, *seed)
	if err != nil {
		log.Fatalf("error splitting dataset: %v", err)
	}

	bar := progressbar.Default(int64(2**trees), "training forests")
	trainer := core.NewTrainer(core.TrainerOptions{
		NEstimators: *trees,
		Seed:        *seed,
		Workers:     *workers,
		OnTreeBuilt: func() { _ = bar.Add(1) },
	})

	start := time.Now()
	model, err := trainer.Train(ctx, train)
	if err != nil {
		log.Fatalf("error training models: %v", err)
	}
	_ = bar.Finish()

	report, err := core.Evaluate(model, test)
	if err != nil {
		log.Fatalf("error evaluating models: %v", err)
	}

	fmt.Fprintf(os.Stdout, "\ntrain rows:    %d\n", train.Len())
	fmt.Fprintf(os.Stdout, "test rows:     %d\n", report.Rows)
	fmt.Fprintf(os.Stdout, "train time:    %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stdout, "mae:           %.4f\n", report.MAE)
	fmt.Fprintf(os.Stdout, "rmse:          %.4f\n", report.RMSE)
	fmt.Fprintf(os.Stdout, "accuracy:      %.4f\n", report.Accuracy)
	fmt.Fprintf(os.Stdout, "disagreement:  %.4f\n", report.Disagreement)
}
