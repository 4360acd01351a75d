package dto

import (
	"time"

	"github.com/bahafit/bahafit/internal/domain"
)

// UserUpdateRequest is the admin PATCH payload. Absent fields stay
// untouched; the credential hash is not patchable here.
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// UserDetail is the admin-facing shape of an account.
type UserDetail struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	Phone     *string     `json:"phone,omitempty"`
	Bio       *string     `json:"bio,omitempty"`
	Location  *string     `json:"location,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewUserDetail maps a domain user to its admin shape.
func NewUserDetail(user *domain.User) UserDetail {
	return UserDetail{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		Phone:     user.Phone,
		Bio:       user.Bio,
		Location:  user.Location,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
