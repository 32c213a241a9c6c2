package cmd

import (
	"path/filepath"
	"testing"

	"wine-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatasetProviderLocal(t *testing.T) {
	provider, bucket, key, err := NewDatasetProvider(filepath.Join("data", "winequality-red.csv"), S3Config{})
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalProvider{}, provider)
	assert.Equal(t, "", bucket)
	assert.Equal(t, "winequality-red.csv", key)
}

func TestNewDatasetProviderS3(t *testing.T) {
	provider, bucket, key, err := NewDatasetProvider("s3://datasets/wine/winequality-red.csv", S3Config{
		S3EndpointURL: "http://localhost:9000",
		S3Region:      "us-east-1",
	})
	require.NoError(t, err)
	assert.IsType(t, &storage.S3Provider{}, provider)
	assert.Equal(t, "datasets", bucket)
	assert.Equal(t, "wine/winequality-red.csv", key)

	_, _, _, err = NewDatasetProvider("s3://datasets", S3Config{})
	assert.Error(t, err)
}

func TestOpenDatabaseDefaultsToSqlite(t *testing.T) {
	root := t.TempDir()
	db, err := OpenDatabase(root, "")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())
	assert.FileExists(t, filepath.Join(root, "db", "predictions.db"))
}
