package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bahafit/bahafit/internal/api/dto"
	"github.com/bahafit/bahafit/internal/auth"
	"github.com/bahafit/bahafit/internal/domain"
	"github.com/bahafit/bahafit/internal/repository"
	"github.com/bahafit/bahafit/internal/service"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

// AdminUsersHandler exposes the admin user-directory endpoints. Every
// handler re-checks the admin role itself; it must stay safe to invoke
// without the page gate in front of it.
type AdminUsersHandler struct {
	directory *service.DirectoryService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(directory *service.DirectoryService) *AdminUsersHandler {
	return &AdminUsersHandler{directory: directory}
}

// List handles GET /api/admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	filter := repository.UserFilter{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if role := c.Query("role"); role != "" {
		r := domain.Role(role)
		filter.Role = &r
	}
	if active := c.Query("active"); active != "" {
		parsed, err := strconv.ParseBool(active)
		if err != nil {
			return apperrors.NewValidationError("invalid active filter", nil)
		}
		filter.Active = &parsed
	}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}

	users, err := h.directory.ListUsers(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.UserDetail, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserDetail(&users[i]))
	}
	return c.JSON(fiber.Map{"users": items})
}

// Get handles GET /api/admin/users/:id.
func (h *AdminUsersHandler) Get(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	user, err := h.directory.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserDetail(user)})
}

// Update handles PATCH /api/admin/users/:id.
func (h *AdminUsersHandler) Update(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := service.UserUpdate{
		Name:     req.Name,
		Phone:    req.Phone,
		Bio:      req.Bio,
		Location: req.Location,
		Active:   req.Active,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.directory.UpdateUser(c.Context(), c.Params("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserDetail(user)})
}

// Delete handles DELETE /api/admin/users/:id.
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	if err := auth.RequireRole(session, domain.RoleAdmin); err != nil {
		return err
	}

	if err := h.directory.DeleteUser(c.Context(), session, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
