package http

import (
	"log/slog"
	"net/http"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/internal/service"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/httputil"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/validator"
)

// maxTrendingLimit caps ?limit= on the trending endpoint.
const maxTrendingLimit = 100

// AssistantHandler handles HTTP requests for the assistant endpoints.
type AssistantHandler struct {
	service       *service.AssistantService
	trendingLimit int
	logger        *slog.Logger
}

// NewAssistantHandler creates a new assistant HTTP handler. trendingLimit is
// the number of trending queries returned when ?limit= is absent.
func NewAssistantHandler(svc *service.AssistantService, trendingLimit int, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{
		service:       svc,
		trendingLimit: trendingLimit,
		logger:        logger,
	}
}

// --- Request DTOs ---

// QueryRequest is the JSON request body for ask and similar.
type QueryRequest struct {
	Query string `json:"query" validate:"required,notblank,max=500"`
}

// --- Response DTOs ---

// TrendingResponse lists the most frequent queries.
type TrendingResponse struct {
	TrendingSearches []domain.TrendingQuery `json:"trending_searches"`
}

// WelcomeResponse is served on GET /.
type WelcomeResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// --- Handlers ---

// Welcome handles GET /
func (h *AssistantHandler) Welcome(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteData(w, http.StatusOK, WelcomeResponse{
		Message: "👋 Welcome to SmartCart AI Assistant!",
		Endpoints: []string{
			"/api/v1/assistant/ask",
			"/api/v1/assistant/similar",
			"/api/v1/assistant/trending",
			"/api/v1/notifications",
		},
	})
}

// Ask handles POST /api/v1/assistant/ask
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	answer := h.service.Ask(r.Context(), req.Query)
	httputil.WriteData(w, http.StatusOK, answer)
}

// Similar handles POST /api/v1/assistant/similar
func (h *AssistantHandler) Similar(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	answer, err := h.service.Similar(r.Context(), req.Query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, answer)
}

// Trending handles GET /api/v1/assistant/trending
func (h *AssistantHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.ParseLimit(r, "limit", h.trendingLimit, maxTrendingLimit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, TrendingResponse{
		TrendingSearches: h.service.Trending(limit),
	})
}
