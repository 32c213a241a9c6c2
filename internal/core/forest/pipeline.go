package forest

import (
	"context"
	"fmt"
)

// RegressionPipeline standardizes features and feeds them to a random forest
// regressor.
type RegressionPipeline struct {
	Scaler *StandardScaler
	Forest *RandomForestRegressor
}

func FitRegressionPipeline(ctx context.Context, x [][]float64, y []float64, opts Options) (*RegressionPipeline, error) {
	scaler := &StandardScaler{}
	if err := scaler.Fit(x); err != nil {
		return nil, err
	}
	scaled, err := scaler.TransformAll(x)
	if err != nil {
		return nil, err
	}
	f, err := FitRegressor(ctx, scaled, y, opts)
	if err != nil {
		return nil, err
	}
	return &RegressionPipeline{Scaler: scaler, Forest: f}, nil
}

func (p *RegressionPipeline) Predict(x []float64) (float64, error) {
	scaled, err := p.Scaler.Transform(x)
	if err != nil {
		return 0, err
	}
	return p.Forest.Predict(scaled)
}

// ClassificationPipeline owns the label encoder its forest was trained with.
// Class codes never leave the pipeline; callers only see decoded labels.
type ClassificationPipeline struct {
	Scaler  *StandardScaler
	Forest  *RandomForestClassifier
	Encoder *LabelEncoder
}

func FitClassificationPipeline(ctx context.Context, x [][]float64, labels []string, opts Options) (*ClassificationPipeline, error) {
	encoder := &LabelEncoder{}
	if err := encoder.Fit(labels); err != nil {
		return nil, err
	}
	codes, err := encoder.Transform(labels)
	if err != nil {
		return nil, err
	}

	scaler := &StandardScaler{}
	if err := scaler.Fit(x); err != nil {
		return nil, err
	}
	scaled, err := scaler.TransformAll(x)
	if err != nil {
		return nil, err
	}
	f, err := FitClassifier(ctx, scaled, codes, opts)
	if err != nil {
		return nil, err
	}
	return &ClassificationPipeline{Scaler: scaler, Forest: f, Encoder: encoder}, nil
}

func (p *ClassificationPipeline) Predict(x []float64) (string, error) {
	scaled, err := p.Scaler.Transform(x)
	if err != nil {
		return "", err
	}
	code, err := p.Forest.Predict(scaled)
	if err != nil {
		return "", err
	}
	label, err := p.Encoder.Inverse(code)
	if err != nil {
		return "", fmt.Errorf("error decoding class %d: %w", code, err)
	}
	return label, nil
}

func (p *ClassificationPipeline) Classes() []string {
	return append([]string(nil), p.Encoder.Classes...)
}
