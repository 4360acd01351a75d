package domain

import "time"

// RegistrationStatus tracks attendance lifecycle.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
	RegistrationCheckedIn RegistrationStatus = "checked_in"
)

// PaymentStatus tracks the payment axis independently of attendance.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Registration is an event-attendance record in the ledger. User name and
// email are denormalized at registration time; Metadata carries a fallback
// event title/date in case the catalog document becomes unavailable.
type Registration struct {
	ID            string
	EventID       string
	UserID        string
	UserName      string
	UserEmail     string
	TicketType    *string
	Price         float64
	Currency      string
	Status        RegistrationStatus
	PaymentStatus PaymentStatus
	PaymentRef    *string
	Metadata      map[string]string
	RegisteredAt  time.Time
	CheckedInAt   *time.Time
}
