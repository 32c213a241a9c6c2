package cmd

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"wine-backend/internal/database"
	"wine-backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	loadEnvFile(configPath)
}

func loadEnvFile(configPath string) {
	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	log.Printf("loading env from file %s", configPath)
	if err := godotenv.Load(configPath); err != nil {
		log.Fatalf("error loading .env file '%s': %v", configPath, err)
	}
}

type S3Config struct {
	S3EndpointURL     string `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
}

// NewDatasetProvider resolves a dataset path to a storage provider plus the
// bucket and key to read. "s3://bucket/key" paths go to the object store,
// anything else is read from the local filesystem.
func NewDatasetProvider(path string, s3cfg S3Config) (storage.Provider, string, string, error) {
	bucket, key, isS3 := storage.ParseLocation(path)
	if !isS3 {
		dir, file := filepath.Split(key)
		return storage.NewLocalProvider(dir), "", file, nil
	}

	if bucket == "" || key == "" {
		return nil, "", "", fmt.Errorf("invalid s3 dataset path %q, expected s3://bucket/key", path)
	}

	provider, err := storage.NewS3Provider(&storage.S3ProviderConfig{
		S3EndpointURL:     s3cfg.S3EndpointURL,
		S3AccessKeyID:     s3cfg.S3AccessKeyID,
		S3SecretAccessKey: s3cfg.S3SecretAccessKey,
		S3Region:          s3cfg.S3Region,
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("error creating s3 provider: %w", err)
	}
	return provider, bucket, key, nil
}

// OpenDatabase connects to databaseURL, or to a sqlite file under root when
// no URL is configured.
func OpenDatabase(root, databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		databaseURL = filepath.Join(root, "db", "predictions.db")
	}
	return database.NewDatabase(databaseURL)
}
