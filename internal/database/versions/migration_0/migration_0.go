package migration_0

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Prediction struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreationTime time.Time `gorm:"not null"`

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

func Migration(db *gorm.DB) error {
	return db.AutoMigrate(&Prediction{})
}
