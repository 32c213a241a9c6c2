package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wine-backend/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "predictions.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.GetMigrator(db).Migrate())

	return db
}

func features(alcohol float64) []float64 {
	return []float64{7.4, 0.7, 0, 1.9, 0.076, 11, 34, 0.9978, 3.51, 0.56, alcohol}
}

func TestNewPrediction(t *testing.T) {
	p, err := database.NewPrediction(features(9.4), 5.12345, "Low")
	require.NoError(t, err)
	assert.Equal(t, 7.4, p.FixedAcidity)
	assert.Equal(t, 3.51, p.Ph)
	assert.Equal(t, 9.4, p.Alcohol)
	assert.Equal(t, features(9.4), p.Features())

	_, err = database.NewPrediction([]float64{1, 2}, 5, "Low")
	assert.Error(t, err)
}

func TestSavePredictionAssignsIdAndTime(t *testing.T) {
	db := createDB(t)

	p, err := database.NewPrediction(features(10), 6.1, "Medium")
	require.NoError(t, err)
	require.NoError(t, database.SavePrediction(context.Background(), db, &p))

	assert.NotEqual(t, uuid.Nil, p.Id)
	assert.False(t, p.CreationTime.IsZero())

	count, err := database.CountPredictions(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListRecentPredictionsNewestFirst(t *testing.T) {
	db := createDB(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p, err := database.NewPrediction(features(float64(9+i)), float64(5+i), "Low")
		require.NoError(t, err)
		p.CreationTime = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, database.SavePrediction(context.Background(), db, &p))
	}

	rows, err := database.ListRecentPredictions(context.Background(), db, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 13.0, rows[0].Alcohol)
	assert.Equal(t, 12.0, rows[1].Alcohol)
	assert.Equal(t, 11.0, rows[2].Alcohol)
	assert.True(t, rows[0].CreationTime.Equal(base.Add(4*time.Minute)))
}

func TestListRecentPredictionsEmpty(t *testing.T) {
	db := createDB(t)

	rows, err := database.ListRecentPredictions(context.Background(), db, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
