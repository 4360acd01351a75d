package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/bahafit/bahafit/internal/domain"
	"github.com/bahafit/bahafit/internal/repository"
)

const sessionKey = "session"

// SessionCookie is the cookie consulted when no bearer header is present.
const SessionCookie = "bahafit_session"

// SessionMiddleware resolves the caller's session from a bearer token or the
// session cookie. It never rejects a request: a missing or invalid token
// simply yields no session, and each handler decides what that means.
// Role and active flags are read fresh from the directory, not the token,
// so deactivation takes effect before token expiry.
type SessionMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, users: users}
}

// Handle attaches the session to the request when a valid token is present.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		tokenStr = c.Cookies(SessionCookie)
	}
	if tokenStr == "" {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return c.Next()
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Next()
		}
		return err
	}

	c.Locals(sessionKey, &domain.Session{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Active: user.Active,
	})
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// SessionFromContext retrieves the authenticated caller, if any.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}

// WithSession stores a session on the request. Exposed for tests that drive
// handlers without the full middleware chain.
func WithSession(c *fiber.Ctx, session *domain.Session) {
	c.Locals(sessionKey, session)
}
