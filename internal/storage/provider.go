package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

var ErrObjectNotFound = errors.New("object not found")

type Object struct {
	Name string
	Size int64
}

// Provider is the object store the training dataset is read from.
type Provider interface {
	CreateBucket(ctx context.Context, bucket string) error

	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	PutObject(ctx context.Context, bucket, key string, data io.Reader) error

	ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error)
}

// ParseLocation splits "s3://bucket/key" into its parts. Any other path is
// treated as local and returned as the key with an empty bucket.
func ParseLocation(path string) (bucket, key string, isS3 bool) {
	rest, ok := strings.CutPrefix(path, "s3://")
	if !ok {
		return "", path, false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, true
}

func Location(bucket, key string) string {
	if bucket == "" {
		return key
	}
	return "s3://" + bucket + "/" + key
}
