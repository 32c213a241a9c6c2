package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrMissingFeature      = errors.New("missing feature")
	ErrInvalidNumericValue = errors.New("invalid numeric value")
)

// FeatureNames is the canonical input order. Every vector handed to a model
// uses exactly this order.
var FeatureNames = []string{
	"fixed_acidity",
	"volatile_acidity",
	"citric_acid",
	"residual_sugar",
	"chlorides",
	"free_sulfur_dioxide",
	"total_sulfur_dioxide",
	"density",
	"ph",
	"sulphates",
	"alcohol",
}

// DatasetColumns holds the CSV header for each entry of FeatureNames, by position.
var DatasetColumns = []string{
	"fixed acidity",
	"volatile acidity",
	"citric acid",
	"residual sugar",
	"chlorides",
	"free sulfur dioxide",
	"total sulfur dioxide",
	"density",
	"pH",
	"sulphates",
	"alcohol",
}

const QualityColumn = "quality"

type FeatureVector []float64

type FeatureError struct {
	Feature string
	Value   string
	Err     error
}

func (e *FeatureError) Error() string {
	if errors.Is(e.Err, ErrInvalidNumericValue) {
		return fmt.Sprintf("invalid numeric value for %s: %s", e.Feature, e.Value)
	}
	return fmt.Sprintf("missing value for %s", e.Feature)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}

// ExtractFeatures builds a FeatureVector from a request payload keyed by the
// canonical feature names. Values may be numbers or numeric strings.
func ExtractFeatures(raw map[string]any) (FeatureVector, error) {
	vector := make(FeatureVector, 0, len(FeatureNames))
	for _, name := range FeatureNames {
		value, err := parseFeature(name, raw[name])
		if err != nil {
			return nil, err
		}
		vector = append(vector, value)
	}
	return vector, nil
}

func parseFeature(name string, raw any) (float64, error) {
	var text string
	switch v := raw.(type) {
	case nil:
		return 0, &FeatureError{Feature: name, Err: ErrMissingFeature}
	case float64:
		return checkFinite(name, v, strconv.FormatFloat(v, 'g', -1, 64))
	case float32:
		return checkFinite(name, float64(v), strconv.FormatFloat(float64(v), 'g', -1, 32))
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		text = v.String()
	case string:
		text = v
	case []string:
		if len(v) == 0 {
			return 0, &FeatureError{Feature: name, Err: ErrMissingFeature}
		}
		text = v[0]
	default:
		return 0, &FeatureError{Feature: name, Value: fmt.Sprint(raw), Err: ErrInvalidNumericValue}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, &FeatureError{Feature: name, Err: ErrMissingFeature}
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &FeatureError{Feature: name, Value: text, Err: ErrInvalidNumericValue}
	}
	return checkFinite(name, value, text)
}

func checkFinite(name string, value float64, text string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &FeatureError{Feature: name, Value: text, Err: ErrInvalidNumericValue}
	}
	return value, nil
}
