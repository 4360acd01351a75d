package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bahafit/bahafit/internal/domain"
)

func seededDirectory(t *testing.T) (*DirectoryService, *stubUserRepo, *domain.User) {
	t.Helper()
	repo := newStubUserRepo()
	admin := &domain.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleAdmin, Active: true}
	if err := repo.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return NewDirectoryService(repo), repo, admin
}

func TestDeleteUserSelfDeletionGuard(t *testing.T) {
	svc, repo, admin := seededDirectory(t)
	session := &domain.Session{UserID: admin.ID, Role: domain.RoleAdmin, Active: true}

	err := svc.DeleteUser(context.Background(), session, admin.ID)
	assertHTTPStatus(t, err, 400)
	if len(repo.deleted) != 0 {
		t.Fatalf("self-deletion must never remove the record, deleted %v", repo.deleted)
	}

	other := &domain.User{Name: "Member", Email: "m@example.com", PasswordHash: "x", Role: domain.RoleUser, Active: true}
	if err := repo.Create(context.Background(), other); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), session, other.ID); err != nil {
		t.Fatalf("deleting another user should succeed: %v", err)
	}
}

func TestDeleteUserMissing(t *testing.T) {
	svc, _, admin := seededDirectory(t)
	session := &domain.Session{UserID: admin.ID, Role: domain.RoleAdmin, Active: true}

	err := svc.DeleteUser(context.Background(), session, "ghost")
	assertHTTPStatus(t, err, 404)
}

func TestDeleteUserReferentialConflict(t *testing.T) {
	svc, repo, admin := seededDirectory(t)
	session := &domain.Session{UserID: admin.ID, Role: domain.RoleAdmin, Active: true}

	repo.deleteErr = &pgconn.PgError{Code: "23503", ConstraintName: "registrations_user_id_fkey"}
	err := svc.DeleteUser(context.Background(), session, "u-2")
	assertHTTPStatus(t, err, 409)
}

func TestUpdateUserAllowList(t *testing.T) {
	svc, repo, _ := seededDirectory(t)
	member := &domain.User{Name: "Member", Email: "m@example.com", PasswordHash: "original-hash", Role: domain.RoleUser, Active: true}
	if err := repo.Create(context.Background(), member); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	role := domain.RoleEventOrganizer
	inactive := false
	phone := "+97312345678"
	updated, err := svc.UpdateUser(context.Background(), member.ID, UserUpdate{Role: &role, Active: &inactive, Phone: &phone})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleEventOrganizer || updated.Active || updated.Phone == nil || *updated.Phone != phone {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.PasswordHash != "original-hash" {
		t.Fatal("administrative update must never touch the credential hash")
	}

	bad := domain.Role("owner")
	_, err = svc.UpdateUser(context.Background(), member.ID, UserUpdate{Role: &bad})
	assertHTTPStatus(t, err, 400)
}
