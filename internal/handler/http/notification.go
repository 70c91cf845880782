package http

import (
	"log/slog"
	"net/http"

	"github.com/San2021331091/Smart-Cart-Backend/internal/service"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/httputil"
)

const maxNotificationLimit = 50

// NotificationHandler serves the latest-products notification feed.
type NotificationHandler struct {
	service *service.NotificationService
	logger  *slog.Logger
}

// NewNotificationHandler creates a new notification HTTP handler.
func NewNotificationHandler(svc *service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.ParseLimit(r, "limit", service.DefaultNotificationLimit, maxNotificationLimit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.service.Latest(r.Context(), limit))
}
