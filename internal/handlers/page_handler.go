package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFiles embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

type indexPage struct {
	Title        string
	APIBase      string
	Difficulties []string
	Categories   []string
}

// PageHandler renders the game page
type PageHandler struct {
	BaseHandler
	words WordsService
}

// NewPageHandler creates a new page handler
func NewPageHandler(words WordsService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		BaseHandler: BaseHandler{logger: logger},
		words:       words,
	}
}

// RegisterRoutes registers the page route
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Title:        "Syllable Game",
		APIBase:      "/",
		Difficulties: h.words.GetDifficulties(r.Context()),
		Categories:   h.words.GetCategories(r.Context()),
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		h.requestLogger(r).Error("failed to render index page", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
