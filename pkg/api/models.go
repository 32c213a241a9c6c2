package api

import (
	"time"

	"github.com/google/uuid"
)

type PredictResponse struct {
	Success          bool    `json:"success"`
	PredictedQuality float64 `json:"predicted_quality"`
	QualityLabel     string  `json:"quality_label"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HistoryItem struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt string    `json:"created_at"`

	FixedAcidity       float64 `json:"fixed_acidity"`
	VolatileAcidity    float64 `json:"volatile_acidity"`
	CitricAcid         float64 `json:"citric_acid"`
	ResidualSugar      float64 `json:"residual_sugar"`
	Chlorides          float64 `json:"chlorides"`
	FreeSulfurDioxide  float64 `json:"free_sulfur_dioxide"`
	TotalSulfurDioxide float64 `json:"total_sulfur_dioxide"`
	Density            float64 `json:"density"`
	Ph                 float64 `json:"ph"`
	Sulphates          float64 `json:"sulphates"`
	Alcohol            float64 `json:"alcohol"`

	PredictedQuality float64 `json:"predicted_quality"`
	QualityLabel     string  `json:"quality_label"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	ModelState string `json:"model_state"`
}

type ModelInfo struct {
	State        string         `json:"state"`
	Error        string         `json:"error,omitempty"`
	NEstimators  int            `json:"n_estimators,omitempty"`
	Seed         int64          `json:"seed,omitempty"`
	TrainingRows int            `json:"training_rows,omitempty"`
	Classes      []string       `json:"classes,omitempty"`
	LabelCounts  map[string]int `json:"label_counts,omitempty"`
	TrainedAt    *time.Time     `json:"trained_at,omitempty"`
	Features     []string       `json:"features"`
}
