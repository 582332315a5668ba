package frontend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mikey/scam-triage/internal/core"
	"github.com/mikey/scam-triage/internal/ports"
)

// HTTPFrontend exposes the analysis pipeline over a JSON HTTP API
type HTTPFrontend struct {
	service *core.AnalyzerService
	cache   ports.AnalysisCache
	store   ports.ReportStore
	logger  *zap.Logger
	server  *http.Server
}

// NewHTTPFrontend creates a new HTTP front end
func NewHTTPFrontend(
	addr string,
	service *core.AnalyzerService,
	cache ports.AnalysisCache,
	store ports.ReportStore,
	logger *zap.Logger,
) *HTTPFrontend {
	f := &HTTPFrontend{
		service: service,
		cache:   cache,
		store:   store,
		logger:  logger,
	}
	f.server = &http.Server{
		Addr:    addr,
		Handler: f.routes(),
	}
	return f
}

// routes sets up the Chi router with all routes and middleware
func (f *HTTPFrontend) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/", f.handleIndex)
	router.Get("/health", f.handleHealth)

	router.Route("/api/v1", func(api chi.Router) {
		api.Post("/analyze", f.handleAnalyze)
		api.Post("/report", f.handleReport)
		api.Get("/reports/recent", f.handleRecentReports)
	})

	return router
}

// Start starts the HTTP listener
func (f *HTTPFrontend) Start() error {
	f.logger.Info("Starting HTTP front end", zap.String("addr", f.server.Addr))
	go func() {
		if err := f.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the HTTP listener down gracefully
func (f *HTTPFrontend) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return f.server.Shutdown(ctx)
}

type analyzeRequest struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

type analyzeResponse struct {
	Analysis *core.AnalysisRecord `json:"analysis"`
	Advice   string               `json:"advice"`
}

type reportRequest struct {
	ConversationID string `json:"conversation_id"`
}

// handleAnalyze handles POST /api/v1/analyze
func (f *HTTPFrontend) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "please send a non-empty message to analyze")
		return
	}

	record := f.service.Analyze(r.Context(), req.Text)

	if req.ConversationID != "" {
		f.cache.Set(r.Context(), req.ConversationID, record)
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Analysis: record,
		Advice:   Advice(record.Verdict),
	})
}

// handleReport handles POST /api/v1/report. It persists the last analysis
// of the conversation as an anonymized report.
func (f *HTTPFrontend) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ConversationID == "" {
		writeError(w, http.StatusBadRequest, "conversation_id is required")
		return
	}

	record, ok := f.cache.Get(r.Context(), req.ConversationID)
	if !ok {
		writeError(w, http.StatusNotFound, "no recent message analyzed to report; send the suspicious message first")
		return
	}

	if err := f.store.Save(r.Context(), record.ToReport()); err != nil {
		f.logger.Error("Failed to save report", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record the report")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "recorded",
		"id":     record.ID.String(),
	})
}

// handleRecentReports handles GET /api/v1/reports/recent
func (f *HTTPFrontend) handleRecentReports(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	reports, err := f.store.Recent(r.Context(), limit)
	if err != nil {
		f.logger.Error("Failed to load recent reports", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load reports")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reports),
		"reports": reports,
	})
}

// handleHealth handles GET /health
func (f *HTTPFrontend) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleIndex handles GET /
func (f *HTTPFrontend) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("scam-triage is running\n"))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
