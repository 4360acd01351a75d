package dto

import (
	"time"

	"github.com/bahafit/bahafit/internal/domain"
)

// CreateRegistrationRequest is the attendance request payload. Price is a
// pointer so a missing price is distinguishable from a free event.
type CreateRegistrationRequest struct {
	EventID    string   `json:"eventId"`
	EventTitle string   `json:"eventTitle"`
	EventDate  string   `json:"eventDate,omitempty"`
	TicketType *string  `json:"ticketType,omitempty"`
	Price      *float64 `json:"price"`
	Currency   string   `json:"currency"`
}

// RegistrationDetail is the ledger record shape returned to callers.
type RegistrationDetail struct {
	ID            string                    `json:"id"`
	EventID       string                    `json:"eventId"`
	UserID        string                    `json:"userId"`
	UserName      string                    `json:"userName"`
	UserEmail     string                    `json:"userEmail"`
	TicketType    *string                   `json:"ticketType,omitempty"`
	Price         float64                   `json:"price"`
	Currency      string                    `json:"currency"`
	Status        domain.RegistrationStatus `json:"status"`
	PaymentStatus domain.PaymentStatus      `json:"paymentStatus"`
	PaymentRef    *string                   `json:"paymentRef,omitempty"`
	Metadata      map[string]string         `json:"metadata,omitempty"`
	RegisteredAt  time.Time                 `json:"registeredAt"`
	CheckedInAt   *time.Time                `json:"checkedInAt,omitempty"`
}

// NewRegistrationDetail maps a ledger record to its response shape.
func NewRegistrationDetail(reg *domain.Registration) RegistrationDetail {
	return RegistrationDetail{
		ID:            reg.ID,
		EventID:       reg.EventID,
		UserID:        reg.UserID,
		UserName:      reg.UserName,
		UserEmail:     reg.UserEmail,
		TicketType:    reg.TicketType,
		Price:         reg.Price,
		Currency:      reg.Currency,
		Status:        reg.Status,
		PaymentStatus: reg.PaymentStatus,
		PaymentRef:    reg.PaymentRef,
		Metadata:      reg.Metadata,
		RegisteredAt:  reg.RegisteredAt,
		CheckedInAt:   reg.CheckedInAt,
	}
}
