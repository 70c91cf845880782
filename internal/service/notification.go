package service

import (
	"context"
	"time"

	"github.com/San2021331091/Smart-Cart-Backend/internal/catalog"
	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
)

// DefaultNotificationLimit is how many products the feed shows by default.
const DefaultNotificationLimit = 5

// NotificationService turns the newest catalog products into feed cards.
type NotificationService struct {
	catalog *catalog.Client
	now     func() time.Time
}

// NewNotificationService creates a new notification service.
func NewNotificationService(cat *catalog.Client) *NotificationService {
	return &NotificationService{
		catalog: cat,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Latest returns one notification per product for the limit newest products.
// Every card carries the time of the request.
func (s *NotificationService) Latest(ctx context.Context, limit int) []domain.Notification {
	products := s.catalog.Latest(ctx, limit)
	now := s.now()

	out := make([]domain.Notification, 0, len(products))
	for _, p := range products {
		out = append(out, domain.Notification{
			Type:      domain.NotificationTypeProduct,
			Title:     "New Product: " + p.Title,
			Message:   p.Description + " (" + p.Category + ")",
			Timestamp: now,
		})
	}
	return out
}
