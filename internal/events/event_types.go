package events

import (
	"time"

	"github.com/bahafit/bahafit/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventRegistrationCreated EventType = "registration_created"
	EventListingViewed       EventType = "listing_viewed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// RegistrationCreatedPayload payload.
type RegistrationCreatedPayload struct {
	RegistrationID string  `json:"registration_id"`
	EventID        string  `json:"event_id"`
	EventTitle     string  `json:"event_title"`
	UserID         string  `json:"user_id"`
	UserEmail      string  `json:"user_email"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	PaymentURL     string  `json:"payment_url,omitempty"`
}

// ListingViewedPayload payload.
type ListingViewedPayload struct {
	ListingID string `json:"listing_id"`
	Slug      string `json:"slug"`
}
