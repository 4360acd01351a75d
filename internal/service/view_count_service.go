package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bahafit/bahafit/internal/catalog"
	"github.com/bahafit/bahafit/internal/events"
)

// ViewCountService performs the best-effort listing view-count increment.
// Failures are logged and discarded; the counter is not correctness-critical
// and must never surface to the viewer.
type ViewCountService struct {
	client     catalog.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewViewCountService creates the service.
func NewViewCountService(client catalog.Client, dispatcher events.Dispatcher, logger *zap.Logger) *ViewCountService {
	return &ViewCountService{client: client, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to listing view events.
func (v *ViewCountService) RegisterHandlers() {
	if v.dispatcher == nil {
		return
	}
	v.dispatcher.Subscribe(events.EventListingViewed, v.handleListingViewed)
}

func (v *ViewCountService) handleListingViewed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ListingViewedPayload)
	if !ok {
		return nil
	}
	if err := v.client.Patch(ctx, payload.ListingID, nil, map[string]int{"viewCount": 1}); err != nil {
		v.logger.Debug("view count increment failed",
			zap.String("listing_id", payload.ListingID),
			zap.Error(err))
	}
	return nil
}
