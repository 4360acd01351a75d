package service

import (
	"context"

	"github.com/bahafit/bahafit/internal/domain"
	"github.com/bahafit/bahafit/internal/repository"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

// DirectoryService implements administrative user-directory operations.
type DirectoryService struct {
	users repository.UserRepository
}

// NewDirectoryService builds the service.
func NewDirectoryService(users repository.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

// UserUpdate is the allow-list of administratively editable fields. The
// credential hash is deliberately absent: passwords change only through the
// auth flow, never through an admin update.
type UserUpdate struct {
	Name     *string
	Phone    *string
	Bio      *string
	Location *string
	Role     *domain.Role
	Active   *bool
}

// ListUsers returns directory members matching the filter.
func (s *DirectoryService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	if filter.Role != nil && !domain.ValidRole(*filter.Role) {
		return nil, apperrors.NewValidationError("invalid role filter", map[string]any{"role": *filter.Role})
	}
	return s.users.ListWithFilter(ctx, filter)
}

// GetUser fetches a single member by id.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateUser merges the allowed fields onto the stored record. Role changes
// and active toggles run through here, so only operators reach them.
func (s *DirectoryService) UpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if update.Role != nil {
		if !domain.ValidRole(*update.Role) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *update.Role})
		}
		user.Role = *update.Role
	}
	if update.Name != nil && *update.Name != "" {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.Bio != nil {
		user.Bio = update.Bio
	}
	if update.Location != nil {
		user.Location = update.Location
	}
	if update.Active != nil {
		user.Active = *update.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes a member. The caller can never delete the account
// bound to their own session.
func (s *DirectoryService) DeleteUser(ctx context.Context, session *domain.Session, id string) error {
	if session != nil && session.UserID == id {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewConflict("user is referenced by other records")
		}
		return apperrors.MapError(err)
	}
	return nil
}
