package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bahafit/bahafit/internal/api/dto"
	"github.com/bahafit/bahafit/internal/auth"
	"github.com/bahafit/bahafit/internal/service"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

// RegistrationsHandler exposes event-registration endpoints.
type RegistrationsHandler struct {
	registrations *service.RegistrationService
}

// NewRegistrationsHandler constructs handler.
func NewRegistrationsHandler(registrationService *service.RegistrationService) *RegistrationsHandler {
	return &RegistrationsHandler{registrations: registrationService}
}

// Create handles POST /api/registrations.
func (h *RegistrationsHandler) Create(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)

	var req dto.CreateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Price == nil {
		return apperrors.NewValidationError("price required", nil)
	}

	reg, paymentURL, err := h.registrations.Register(c.Context(), session, service.RegistrationInput{
		EventID:    req.EventID,
		EventTitle: req.EventTitle,
		EventDate:  req.EventDate,
		TicketType: req.TicketType,
		Price:      *req.Price,
		Currency:   req.Currency,
	})
	if err != nil {
		return err
	}

	response := fiber.Map{"registration": dto.NewRegistrationDetail(reg)}
	if paymentURL != "" {
		response["paymentUrl"] = paymentURL
	}
	return c.Status(http.StatusCreated).JSON(response)
}

// ListMine handles GET /api/registrations/user.
func (h *RegistrationsHandler) ListMine(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)

	regs, err := h.registrations.ListForUser(c.Context(), session,
		parseIntQuery(c, "limit", 20), parseIntQuery(c, "offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.RegistrationDetail, 0, len(regs))
	for i := range regs {
		items = append(items, dto.NewRegistrationDetail(&regs[i]))
	}
	return c.JSON(fiber.Map{"registrations": items})
}
