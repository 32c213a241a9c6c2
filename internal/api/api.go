package api

import (
	"log/slog"
	"math"
	"net/http"

	"wine-backend/internal/core"
	"wine-backend/internal/database"
	"wine-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

const (
	landingHistoryLimit = 10
	defaultHistoryLimit = 30
	maxHistoryLimit     = 100

	createdAtLayout = "2006-01-02 15:04"
)

type BackendService struct {
	db     *gorm.DB
	models *core.ModelHolder
}

func NewBackendService(db *gorm.DB, models *core.ModelHolder) *BackendService {
	return &BackendService{db: db, models: models}
}

func (s *BackendService) AddRoutes(r chi.Router) {
	r.Get("/", s.Landing)
	r.Get("/health", RestHandler(s.Health))
	r.Get("/model", RestHandler(s.GetModel))
	r.Post("/predict", PredictionHandler(s.Predict))
	r.Get("/history", RestHandler(s.History))
}

// PredictionHandler reports failures as {"success": false, "error": ...}
// instead of a plain text body.
func PredictionHandler(handler func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			code := errorCode(err)
			if code == http.StatusInternalServerError {
				slog.Error("internal server error received in endpoint", "error", err)
			} else {
				slog.Info("rejected prediction request", "code", code, "error", err)
			}
			WriteJsonResponse(w, code, api.ErrorResponse{Success: false, Error: err.Error()})
			return
		}
		WriteJsonResponse(w, http.StatusOK, res)
	}
}

func roundQuality(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *BackendService) Health(r *http.Request) (any, error) {
	return api.HealthResponse{Status: "ok", ModelState: string(s.models.State())}, nil
}

func (s *BackendService) GetModel(r *http.Request) (any, error) {
	info := api.ModelInfo{
		State:    string(s.models.State()),
		Features: core.FeatureNames,
	}

	model, err := s.models.Get()
	if err != nil {
		if trainErr := s.models.Err(); trainErr != nil {
			info.Error = trainErr.Error()
		}
		return info, nil
	}

	summary := model.Summary()
	info.NEstimators = summary.NEstimators
	info.Seed = summary.Seed
	info.TrainingRows = summary.TrainingRows
	info.Classes = summary.Classes
	info.LabelCounts = make(map[string]int, len(summary.LabelCounts))
	for label, count := range summary.LabelCounts {
		info.LabelCounts[string(label)] = count
	}
	info.TrainedAt = &summary.TrainedAt
	return info, nil
}

func (s *BackendService) Predict(r *http.Request) (any, error) {
	payload, err := ParsePayload(r)
	if err != nil {
		return nil, err
	}

	model, err := s.models.Get()
	if err != nil {
		return nil, CodedError(http.StatusServiceUnavailable, err)
	}

	features, err := core.ExtractFeatures(payload)
	if err != nil {
		return nil, CodedError(http.StatusBadRequest, err)
	}

	prediction, err := model.Predict(features)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "prediction failed: %w", err)
	}

	record, err := database.NewPrediction(features, prediction.Quality, string(prediction.Label))
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error building prediction record: %w", err)
	}
	if err := database.SavePrediction(r.Context(), s.db, &record); err != nil {
		slog.Error("error saving prediction", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to save prediction")
	}

	slog.Info("served prediction", "id", record.Id, "quality", prediction.Quality, "label", prediction.Label)

	return api.PredictResponse{
		Success:          true,
		PredictedQuality: roundQuality(prediction.Quality),
		QualityLabel:     string(prediction.Label),
	}, nil
}

type HistoryParams struct {
	Limit int `schema:"limit"`
}

func (s *BackendService) History(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[HistoryParams](r)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	if limit < 0 || limit > maxHistoryLimit {
		return nil, CodedErrorf(http.StatusBadRequest, "limit must be between 1 and %d", maxHistoryLimit)
	}

	return s.recentHistory(r, limit)
}

func (s *BackendService) recentHistory(r *http.Request, limit int) ([]api.HistoryItem, error) {
	rows, err := database.ListRecentPredictions(r.Context(), s.db, limit)
	if err != nil {
		slog.Error("error listing predictions", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving prediction history")
	}

	items := make([]api.HistoryItem, 0, len(rows))
	for _, p := range rows {
		items = append(items, convertPrediction(p))
	}
	return items, nil
}

func convertPrediction(p database.Prediction) api.HistoryItem {
	return api.HistoryItem{
		Id:                 p.Id,
		CreatedAt:          p.CreationTime.UTC().Format(createdAtLayout),
		FixedAcidity:       p.FixedAcidity,
		VolatileAcidity:    p.VolatileAcidity,
		CitricAcid:         p.CitricAcid,
		ResidualSugar:      p.ResidualSugar,
		Chlorides:          p.Chlorides,
		FreeSulfurDioxide:  p.FreeSulfurDioxide,
		TotalSulfurDioxide: p.TotalSulfurDioxide,
		Density:            p.Density,
		Ph:                 p.Ph,
		Sulphates:          p.Sulphates,
		Alcohol:            p.Alcohol,
		PredictedQuality:   roundQuality(p.PredictedQuality),
		QualityLabel:       p.QualityLabel,
	}
}
