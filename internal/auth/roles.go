package auth

import (
	"github.com/bahafit/bahafit/internal/domain"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

// RequireSession fails with Unauthorized when no session is present.
func RequireSession(session *domain.Session) error {
	if session == nil {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	return nil
}

// RequireActive fails when the session is absent or the account is flagged
// inactive. Used by workflows that mutate on behalf of the caller.
func RequireActive(session *domain.Session) error {
	if session == nil {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	if !session.Active {
		return apperrors.NewForbidden("Account is inactive")
	}
	return nil
}

// RequireRole fails with Unauthorized when no session is present, or
// Forbidden when the session's role is not in the allowed set. Every
// admin-scoped handler re-applies this check independently of the gate,
// because handlers must be safe to invoke directly.
func RequireRole(session *domain.Session, allowed ...domain.Role) error {
	if session == nil {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	for _, role := range allowed {
		if session.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("Forbidden")
}
