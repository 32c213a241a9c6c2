package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavePrediction appends a record, assigning an id and creation time when
// they are unset.
func SavePrediction(ctx context.Context, db *gorm.DB, p *Prediction) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	if p.CreationTime.IsZero() {
		p.CreationTime = time.Now().UTC()
	}

	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("error saving prediction: %w", err)
	}
	return nil
}

// ListRecentPredictions returns at most limit records, newest first.
func ListRecentPredictions(ctx context.Context, db *gorm.DB, limit int) ([]Prediction, error) {
	var rows []Prediction
	if err := db.WithContext(ctx).
		Order("creation_time DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error listing predictions: %w", err)
	}
	return rows, nil
}

func CountPredictions(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&Prediction{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting predictions: %w", err)
	}
	return count, nil
}
