package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bahafit/bahafit/internal/service"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

// CatalogHandler exposes the public event and listing read endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService}
}

// ListEvents handles GET /api/events.
func (h *CatalogHandler) ListEvents(c *fiber.Ctx) error {
	query := service.EventQuery{
		Category: c.Query("category"),
		City:     c.Query("city"),
		Search:   c.Query("q"),
		Upcoming: c.QueryBool("upcoming"),
		Limit:    parseIntQuery(c, "limit", 0),
	}
	if featured := c.Query("featured"); featured != "" {
		parsed, err := strconv.ParseBool(featured)
		if err != nil {
			return apperrors.NewValidationError("invalid featured filter", nil)
		}
		query.Featured = &parsed
	}

	docs, err := h.catalog.ListEvents(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": docs})
}

// GetEvent handles GET /api/events/:slug.
func (h *CatalogHandler) GetEvent(c *fiber.Ctx) error {
	doc, related, err := h.catalog.GetEventBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"event": doc, "related": related})
}

// ListListings handles GET /api/listings.
func (h *CatalogHandler) ListListings(c *fiber.Ctx) error {
	query := service.ListingQuery{
		Category: c.Query("category"),
		City:     c.Query("city"),
		Search:   c.Query("q"),
		Limit:    parseIntQuery(c, "limit", 0),
	}
	if featured := c.Query("featured"); featured != "" {
		parsed, err := strconv.ParseBool(featured)
		if err != nil {
			return apperrors.NewValidationError("invalid featured filter", nil)
		}
		query.Featured = &parsed
	}
	if verified := c.Query("verified"); verified != "" {
		parsed, err := strconv.ParseBool(verified)
		if err != nil {
			return apperrors.NewValidationError("invalid verified filter", nil)
		}
		query.Verified = &parsed
	}

	docs, err := h.catalog.ListListings(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"listings": docs})
}

// GetListing handles GET /api/listings/:slug. Viewing a listing also bumps
// its view counter best-effort.
func (h *CatalogHandler) GetListing(c *fiber.Ctx) error {
	doc, related, err := h.catalog.GetListingBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"listing": doc, "related": related})
}
