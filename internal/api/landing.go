package api

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"wine-backend/internal/core"
	"wine-backend/pkg/api"
)

//go:embed templates/index.html
var templateFS embed.FS

var landingTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type landingPage struct {
	Features   []string
	History    []api.HistoryItem
	ModelState string
}

// Landing renders the input form together with the most recent predictions.
func (s *BackendService) Landing(w http.ResponseWriter, r *http.Request) {
	history, err := s.recentHistory(r, landingHistoryLimit)
	if err != nil {
		http.Error(w, err.Error(), errorCode(err))
		return
	}

	var buf bytes.Buffer
	page := landingPage{
		Features:   core.FeatureNames,
		History:    history,
		ModelState: string(s.models.State()),
	}
	if err := landingTemplate.Execute(&buf, page); err != nil {
		slog.Error("error rendering landing page", "error", err)
		http.Error(w, "error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("error writing landing page", "error", err)
	}
}
