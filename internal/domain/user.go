package domain

import "time"

// Role determines a user's authorization scope.
type Role string

const (
	RoleUser           Role = "user"
	RoleBusinessOwner  Role = "business_owner"
	RoleEventOrganizer Role = "event_organizer"
	RoleAdmin          Role = "admin"
)

// ValidRole reports whether the value is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleBusinessOwner, RoleEventOrganizer, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignableRole reports whether a role may be chosen at signup.
// Admin is granted only by an operator action, never self-service.
func SelfAssignableRole(r Role) bool {
	return ValidRole(r) && r != RoleAdmin
}

// User is the domain model for directory members.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	Phone        *string
	Bio          *string
	Location     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
