package worker

import (
	"github.com/bahafit/bahafit/internal/service"
)

// StartViewCountWorker registers the best-effort view-count handler.
func StartViewCountWorker(viewCountService *service.ViewCountService) {
	if viewCountService == nil {
		return
	}
	viewCountService.RegisterHandlers()
}
