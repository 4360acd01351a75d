package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bahafit/bahafit/internal/auth"
)

func setSessionCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Expires:  exp,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
