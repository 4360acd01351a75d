package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bahafit/bahafit/internal/api/dto"
	"github.com/bahafit/bahafit/internal/auth"
	"github.com/bahafit/bahafit/internal/domain"
	"github.com/bahafit/bahafit/internal/service"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

// AdminCatalogHandler exposes catalog moderation endpoints. Patches go
// through typed allow-lists; anything outside them never reaches the
// content store.
type AdminCatalogHandler struct {
	catalog *service.CatalogService
}

// NewAdminCatalogHandler constructs handler.
func NewAdminCatalogHandler(catalogService *service.CatalogService) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalog: catalogService}
}

// ListEvents handles GET /api/admin/events.
func (h *AdminCatalogHandler) ListEvents(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	docs, err := h.catalog.AdminListEvents(c.Context(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": docs})
}

// GetEvent handles GET /api/admin/events/:id.
func (h *AdminCatalogHandler) GetEvent(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	doc, err := h.catalog.AdminGetEvent(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"event": doc})
}

// UpdateEvent handles PATCH /api/admin/events/:id.
func (h *AdminCatalogHandler) UpdateEvent(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	var req dto.EventPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.EventPatch{
		Featured:   req.Featured,
		ApprovedAt: req.ApprovedAt,
	}
	if req.Status != nil {
		status := domain.DocumentStatus(*req.Status)
		patch.Status = &status
	}

	doc, err := h.catalog.UpdateEvent(c.Context(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"event": doc})
}

// DeleteEvent handles DELETE /api/admin/events/:id.
func (h *AdminCatalogHandler) DeleteEvent(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	if err := h.catalog.DeleteEvent(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListListings handles GET /api/admin/listings.
func (h *AdminCatalogHandler) ListListings(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	docs, err := h.catalog.AdminListListings(c.Context(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"listings": docs})
}

// GetListing handles GET /api/admin/listings/:id.
func (h *AdminCatalogHandler) GetListing(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	doc, err := h.catalog.AdminGetListing(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"listing": doc})
}

// UpdateListing handles PATCH /api/admin/listings/:id.
func (h *AdminCatalogHandler) UpdateListing(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	var req dto.ListingPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.ListingPatch{
		Featured:   req.Featured,
		Verified:   req.Verified,
		ApprovedAt: req.ApprovedAt,
	}
	if req.Status != nil {
		status := domain.DocumentStatus(*req.Status)
		patch.Status = &status
	}

	doc, err := h.catalog.UpdateListing(c.Context(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"listing": doc})
}

// DeleteListing handles DELETE /api/admin/listings/:id.
func (h *AdminCatalogHandler) DeleteListing(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	if err := h.catalog.DeleteListing(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
