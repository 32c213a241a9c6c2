package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Prediction is one served prediction. Rows are only ever inserted.
type Prediction struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreationTime time.Time `gorm:"index;not null"`

	FixedAcidity       float64
	VolatileAcidity    float64
	CitricAcid         float64
	ResidualSugar      float64
	Chlorides          float64
	FreeSulfurDioxide  float64
	TotalSulfurDioxide float64
	Density            float64
	Ph                 float64
	Sulphates          float64
	Alcohol            float64

	PredictedQuality float64
	QualityLabel     string `gorm:"size:20;not null"`
}

const featureCount = 11

// NewPrediction builds a record from a feature vector in canonical order:
// fixed_acidity, volatile_acidity, citric_acid, residual_sugar, chlorides,
// free_sulfur_dioxide, total_sulfur_dioxide, density, ph, sulphates, alcohol.
func NewPrediction(features []float64, quality float64, label string) (Prediction, error) {
	if len(features) != featureCount {
		return Prediction{}, fmt.Errorf("expected %d features, got %d", featureCount, len(features))
	}
	return Prediction{
		FixedAcidity:       features[0],
		VolatileAcidity:    features[1],
		CitricAcid:         features[2],
		ResidualSugar:      features[3],
		Chlorides:          features[4],
		FreeSulfurDioxide:  features[5],
		TotalSulfurDioxide: features[6],
		Density:            features[7],
		Ph:                 features[8],
		Sulphates:          features[9],
		Alcohol:            features[10],
		PredictedQuality:   quality,
		QualityLabel:       label,
	}, nil
}

// Features returns the stored inputs in canonical order.
func (p *Prediction) Features() []float64 {
	return []float64{
		p.FixedAcidity,
		p.VolatileAcidity,
		p.CitricAcid,
		p.ResidualSugar,
		p.Chlorides,
		p.FreeSulfurDioxide,
		p.TotalSulfurDioxide,
		p.Density,
		p.Ph,
		p.Sulphates,
		p.Alcohol,
	}
}
