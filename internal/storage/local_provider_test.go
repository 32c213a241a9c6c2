package storage_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"wine-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProviderPutGet(t *testing.T) {
	dir := t.TempDir()
	provider := storage.NewLocalProvider(dir)

	require.NoError(t, provider.CreateBucket(context.Background(), "datasets"))
	require.NoError(t, provider.PutObject(context.Background(), "datasets", "wine.csv", bytes.NewReader([]byte("a;b\n1;2\n"))))

	data, err := provider.GetObject(context.Background(), "datasets", "wine.csv")
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;2\n", string(data))

	objs, err := provider.ListObjects(context.Background(), "datasets", "wine")
	require.NoError(t, err)
	assert.Equal(t, []storage.Object{{Name: "wine.csv", Size: 8}}, objs)
}

func TestLocalProviderListNestedKeys(t *testing.T) {
	ctx := context.Background()
	provider := storage.NewLocalProvider(t.TempDir())

	require.NoError(t, provider.PutObject(ctx, "datasets", "red/a.csv", bytes.NewReader([]byte("a"))))
	require.NoError(t, provider.PutObject(ctx, "datasets", "red/b.csv", bytes.NewReader([]byte("bb"))))
	require.NoError(t, provider.PutObject(ctx, "datasets", "white/c.csv", bytes.NewReader([]byte("ccc"))))

	objs, err := provider.ListObjects(ctx, "datasets", "red/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []storage.Object{{Name: "red/a.csv", Size: 1}, {Name: "red/b.csv", Size: 2}}, objs)

	objs, err = provider.ListObjects(ctx, "datasets", "")
	require.NoError(t, err)
	assert.Len(t, objs, 3)

	_, err = provider.ListObjects(ctx, "missing-bucket", "")
	assert.Error(t, err)
}

func TestLocalProviderPlainPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winequality-red.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	data, err := storage.NewLocalProvider("").GetObject(context.Background(), "", path)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestLocalProviderMissingObject(t *testing.T) {
	provider := storage.NewLocalProvider(t.TempDir())

	_, err := provider.GetObject(context.Background(), "datasets", "missing.csv")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestParseLocation(t *testing.T) {
	bucket, key, isS3 := storage.ParseLocation("s3://wine-data/red/winequality-red.csv")
	assert.True(t, isS3)
	assert.Equal(t, "wine-data", bucket)
	assert.Equal(t, "red/winequality-red.csv", key)

	bucket, key, isS3 = storage.ParseLocation("data/winequality-red.csv")
	assert.False(t, isS3)
	assert.Equal(t, "", bucket)
	assert.Equal(t, "data/winequality-red.csv", key)

	assert.Equal(t, "s3://b/k.csv", storage.Location("b", "k.csv"))
	assert.Equal(t, "k.csv", storage.Location("", "k.csv"))
}
