package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bahafit/bahafit/internal/api/dto"
	"github.com/bahafit/bahafit/internal/auth"
	"github.com/bahafit/bahafit/internal/service"
)

// DashboardHandler aggregates the authenticated member's activity.
type DashboardHandler struct {
	directory     *service.DirectoryService
	registrations *service.RegistrationService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(directory *service.DirectoryService, registrations *service.RegistrationService) *DashboardHandler {
	return &DashboardHandler{directory: directory, registrations: registrations}
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireSession(session); err != nil {
		return err
	}

	summary, err := h.registrations.Dashboard(c.Context(), session)
	if err != nil {
		return err
	}
	user, err := h.directory.GetUser(c.Context(), session.UserID)
	if err != nil {
		return err
	}

	recent := make([]dto.RegistrationDetail, 0, len(summary.Recent))
	for i := range summary.Recent {
		recent = append(recent, dto.NewRegistrationDetail(&summary.Recent[i]))
	}
	return c.JSON(fiber.Map{
		"user":                dto.NewUserDetail(user),
		"registrationCounts":  summary.Counts,
		"recentRegistrations": recent,
	})
}
