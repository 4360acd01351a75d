package auth

import (
	"errors"
	"testing"

	"github.com/bahafit/bahafit/internal/domain"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name       string
		session    *domain.Session
		allowed    []domain.Role
		wantStatus int
	}{
		{"no session", nil, []domain.Role{domain.RoleAdmin}, 401},
		{"wrong role", &domain.Session{Role: domain.RoleUser}, []domain.Role{domain.RoleAdmin}, 403},
		{"allowed role", &domain.Session{Role: domain.RoleAdmin}, []domain.Role{domain.RoleAdmin}, 0},
		{"one of several", &domain.Session{Role: domain.RoleEventOrganizer}, []domain.Role{domain.RoleAdmin, domain.RoleEventOrganizer}, 0},
		{"empty allowed set", &domain.Session{Role: domain.RoleUser}, nil, 403},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireRole(tc.session, tc.allowed...)
			if tc.wantStatus == 0 {
				if err != nil {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			assertStatus(t, err, tc.wantStatus)
		})
	}
}

func TestRequireActive(t *testing.T) {
	if err := RequireActive(nil); err == nil {
		t.Fatal("expected unauthorized for nil session")
	} else {
		assertStatus(t, err, 401)
	}

	inactive := &domain.Session{UserID: "u1", Role: domain.RoleUser, Active: false}
	assertStatus(t, RequireActive(inactive), 403)

	active := &domain.Session{UserID: "u1", Role: domain.RoleUser, Active: true}
	if err := RequireActive(active); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if domainErr.HTTPStatus != status {
		t.Fatalf("expected status %d, got %d", status, domainErr.HTTPStatus)
	}
}
