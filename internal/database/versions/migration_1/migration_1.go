package migration_1

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const creationTimeIndex = "idx_predictions_creation_time"

type Prediction struct {
	CreationTime time.Time `gorm:"index;not null"`
}

func Migration(db *gorm.DB) error {
	if db.Migrator().HasIndex(&Prediction{}, creationTimeIndex) {
		return nil
	}
	if err := db.Migrator().CreateIndex(&Prediction{}, creationTimeIndex); err != nil {
		return fmt.Errorf("error creating creation_time index: %w", err)
	}
	return nil
}

func Rollback(db *gorm.DB) error {
	if err := db.Migrator().DropIndex(&Prediction{}, creationTimeIndex); err != nil {
		return fmt.Errorf("error dropping creation_time index: %w", err)
	}
	return nil
}
