package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"wine-backend/cmd"
	"wine-backend/internal/api"
	"wine-backend/internal/core"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Config struct {
	Root           string `env:"ROOT" envDefault:"./wine-quality"`
	Port           int    `env:"PORT" envDefault:"5000"`
	DatabaseURL    string `env:"DATABASE_URL"`
	DatasetPath    string `env:"DATASET_PATH" envDefault:"winequality-red.csv"`
	NEstimators    int    `env:"N_ESTIMATORS" envDefault:"200"`
	RandomSeed     int64  `env:"RANDOM_SEED" envDefault:"42"`
	TrainWorkers   int    `env:"TRAIN_WORKERS" envDefault:"4"`
	AsyncTraining  bool   `env:"ASYNC_TRAINING" envDefault:"false"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	S3 cmd.S3Config
}

func createServer(service *api.BackendService, port int, allowedOrigins []string) *http.Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	service.AddRoutes(r)

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func main() {
	cmd.LoadEnvFile()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := os.MkdirAll(cfg.Root, os.ModePerm); err != nil {
		log.Fatalf("error creating directory for log file: %v", err)
	}

	f, err := os.OpenFile(filepath.Join(cfg.Root, "backend.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	log.SetOutput(io.MultiWriter(f, os.Stderr))

	slog.Info("starting backend", "root", cfg.Root, "port", cfg.Port, "dataset", cfg.DatasetPath, "n_estimators", cfg.NEstimators, "async_training", cfg.AsyncTraining)

	provider, bucket, key, err := cmd.NewDatasetProvider(cfg.DatasetPath, cfg.S3)
	if err != nil {
		log.Fatalf("error creating dataset provider: %v", err)
	}

	dataset, err := core.ReadDataset(context.Background(), provider, bucket, key)
	if err != nil {
		log.Fatalf("error loading dataset: %v", err)
	}

	db, err := cmd.OpenDatabase(cfg.Root, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	trainer := core.NewTrainer(core.TrainerOptions{
		NEstimators: cfg.NEstimators,
		Seed:        cfg.RandomSeed,
		Workers:     cfg.TrainWorkers,
	})
	models := core.NewModelHolder()

	trainCtx, cancelTraining := context.WithCancel(context.Background())
	defer cancelTraining()

	if cfg.AsyncTraining {
		go func() {
			if _, err := models.Train(trainCtx, trainer, dataset); err != nil {
				slog.Error("model training failed", "error", err)
			}
		}()
	} else if _, err := models.Train(trainCtx, trainer, dataset); err != nil {
		log.Fatalf("error training models: %v", err)
	}

	server := createServer(api.NewBackendService(db, models), cfg.Port, splitOrigins(cfg.AllowedOrigins))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down server")
		cancelTraining()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	slog.Info("server started", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %d: %v\n", cfg.Port, err)
	}

	slog.Info("server stopped")
}
