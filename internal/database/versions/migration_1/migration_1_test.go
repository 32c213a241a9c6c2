package migration_1

import (
	"path/filepath"
	"testing"
	"time"

	"wine-backend/internal/database/versions/migration_0"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrationAddsCreationTimeIndex(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "predictions.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migration_0.Migration(db))
	require.NoError(t, db.Create(&migration_0.Prediction{
		Id:               uuid.New(),
		CreationTime:     time.Now().UTC(),
		Alcohol:          9.4,
		PredictedQuality: 5.2,
		QualityLabel:     "Low",
	}).Error)

	assert.False(t, db.Migrator().HasIndex(&Prediction{}, creationTimeIndex))

	require.NoError(t, Migration(db))
	assert.True(t, db.Migrator().HasIndex(&Prediction{}, creationTimeIndex))

	var count int64
	require.NoError(t, db.Table("predictions").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, Rollback(db))
	assert.False(t, db.Migrator().HasIndex(&Prediction{}, creationTimeIndex))
}
