package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bahafit/bahafit/internal/domain"
)

// Redirect targets used by the gate.
const (
	SignInPath          = "/auth/signin"
	SignUpPath          = "/auth/signup"
	AdminHomePath       = "/admin"
	DashboardPath       = "/dashboard"
	UnauthorizedPath    = "/unauthorized"
	AccountInactivePath = "/account-inactive"
)

// Gate classifies inbound page paths and enforces role/active-status policy
// before handlers run. It only ever redirects; API paths under /api/admin
// are deliberately passed through so the handlers can answer with 401/403
// JSON instead of a redirect.
type Gate struct{}

// NewGate constructs the gate.
func NewGate() *Gate {
	return &Gate{}
}

// Handle applies the first matching rule and otherwise lets the request
// through unchanged. Rule order: auth pages, then admin pages, then the
// dashboard; prefixes are disjoint so at most one rule can match.
func (g *Gate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	session, _ := SessionFromContext(c)

	if isAuthPage(path) {
		if session == nil {
			return c.Next()
		}
		if session.Role == domain.RoleAdmin {
			return c.Redirect(AdminHomePath, fiber.StatusFound)
		}
		return c.Redirect(DashboardPath, fiber.StatusFound)
	}

	if isAdminPage(path) {
		if session == nil {
			return redirectToSignIn(c, path)
		}
		if session.Role != domain.RoleAdmin {
			return c.Redirect(UnauthorizedPath, fiber.StatusFound)
		}
		if !session.Active {
			return c.Redirect(AccountInactivePath, fiber.StatusFound)
		}
		return c.Next()
	}

	if isDashboardPage(path) {
		if session == nil {
			return redirectToSignIn(c, path)
		}
		if !session.Active {
			return c.Redirect(AccountInactivePath, fiber.StatusFound)
		}
		return c.Next()
	}

	return c.Next()
}

func redirectToSignIn(c *fiber.Ctx, callback string) error {
	target := SignInPath + "?callbackUrl=" + url.QueryEscape(callback)
	return c.Redirect(target, fiber.StatusFound)
}

func isAuthPage(path string) bool {
	return hasPathPrefix(path, SignInPath) || hasPathPrefix(path, SignUpPath)
}

func isAdminPage(path string) bool {
	return hasPathPrefix(path, "/admin")
}

func isDashboardPage(path string) bool {
	return hasPathPrefix(path, "/dashboard")
}

// hasPathPrefix matches whole path segments, so /administration is public.
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
