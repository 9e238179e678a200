package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/syllablegame/backend/internal/models"
	"github.com/syllablegame/backend/internal/services"
	"go.uber.org/zap"
)

// WordsService is the interface that wraps methods for word selection.
type WordsService interface {
	// Method GetWord picks a random word of "difficulty" (easy when empty), restricted to "category" when given.
	//
	// When nothing matches, the whole catalog is used. services.ErrEmptyCatalog is returned when the catalog has no words.
	GetWord(ctx context.Context, difficulty string, category string) (*models.WordResponse, error)
	// Method GetDifficulties retrieve distinct difficulties in catalog order.
	GetDifficulties(ctx context.Context) []string
	// Method GetCategories retrieve distinct categories in catalog order.
	GetCategories(ctx context.Context) []string
}

// ProgressService is the interface that wraps methods for progress recording and statistics.
type ProgressService interface {
	// Method RecordProgress validates "submission" and persists it.
	//
	// Errors wrapping services.ErrInvalidProgress mean nothing was written.
	RecordProgress(ctx context.Context, submission *models.ProgressSubmission) error
	// Method GetStatistics retrieve the running totals.
	GetStatistics(ctx context.Context) (*models.StatisticsResponse, error)
}

// GameHandler handles the JSON game API
type GameHandler struct {
	BaseHandler
	words    WordsService
	progress ProgressService
}

// NewGameHandler creates a new game handler
func NewGameHandler(words WordsService, progress ProgressService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		BaseHandler: BaseHandler{logger: logger},
		words:       words,
		progress:    progress,
	}
}

// RegisterRoutes registers all game API routes
func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Get("/get_difficulties", h.GetDifficulties)
	r.Get("/get_categories", h.GetCategories)
	r.Get("/get_word", h.GetWord)
	r.Post("/record_progress", h.RecordProgress)
	r.Get("/get_statistics", h.GetStatistics)
}

// recordProgressRequest distinguishes absent fields from zero values
type recordProgressRequest struct {
	Word       *string `json:"word"`
	Difficulty *string `json:"difficulty"`
	Score      *int    `json:"score"`
}

// GetDifficulties handles GET /get_difficulties
// @Summary Get difficulties
// @Description Get the distinct difficulties of the word catalog in catalog order
// @Tags words
// @Produce json
// @Success 200 {array} string
// @Router /get_difficulties [get]
func (h *GameHandler) GetDifficulties(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.words.GetDifficulties(r.Context()))
}

// GetCategories handles GET /get_categories
// @Summary Get categories
// @Description Get the distinct categories of the word catalog in catalog order
// @Tags words
// @Produce json
// @Success 200 {array} string
// @Router /get_categories [get]
func (h *GameHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.words.GetCategories(r.Context()))
}

// GetWord handles GET /get_word
// @Summary Get a random word
// @Description Pick a random word of the given difficulty and category, falling back to the whole catalog
// @Tags words
// @Produce json
// @Param difficulty query string false "Difficulty: easy, medium or hard, default: easy"
// @Param category query string false "Category filter"
// @Success 200 {object} models.WordResponse
// @Failure 500 {object} ErrorResponse
// @Router /get_word [get]
func (h *GameHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	category := r.URL.Query().Get("category")

	word, err := h.words.GetWord(r.Context(), difficulty, category)
	if err != nil {
		h.requestLogger(r).Error("failed to get word", zap.Error(err))
		if errors.Is(err, services.ErrEmptyCatalog) {
			h.respondError(w, http.StatusInternalServerError, "no words available")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "failed to get word")
		return
	}

	h.respondJSON(w, http.StatusOK, word)
}

// RecordProgress handles POST /record_progress
// @Summary Record progress
// @Description Record a completed word and update the running statistics
// @Tags progress
// @Accept json
// @Produce json
// @Param request body models.ProgressSubmission true "Completed word"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /record_progress [post]
func (h *GameHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	var req recordProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.requestLogger(r).Debug("invalid record progress body", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Word == nil || req.Difficulty == nil || req.Score == nil {
		h.respondError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	submission := &models.ProgressSubmission{
		Word:       *req.Word,
		Difficulty: *req.Difficulty,
		Score:      *req.Score,
	}

	if err := h.progress.RecordProgress(r.Context(), submission); err != nil {
		if errors.Is(err, services.ErrInvalidProgress) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.requestLogger(r).Error("failed to record progress", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to record progress")
		return
	}

	h.respondJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// GetStatistics handles GET /get_statistics
// @Summary Get statistics
// @Description Get the running totals of all recorded progress
// @Tags progress
// @Produce json
// @Success 200 {object} models.StatisticsResponse
// @Failure 500 {object} ErrorResponse
// @Router /get_statistics [get]
func (h *GameHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.progress.GetStatistics(r.Context())
	if err != nil {
		h.requestLogger(r).Error("failed to get statistics", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get statistics")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}
