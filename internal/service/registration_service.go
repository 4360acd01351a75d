package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bahafit/bahafit/internal/auth"
	"github.com/bahafit/bahafit/internal/config"
	"github.com/bahafit/bahafit/internal/domain"
	"github.com/bahafit/bahafit/internal/events"
	"github.com/bahafit/bahafit/internal/payment"
	"github.com/bahafit/bahafit/internal/repository"
	apperrors "github.com/bahafit/bahafit/pkg/util"
)

// RegistrationService orchestrates the registration and payment-link flow.
type RegistrationService struct {
	regs       repository.RegistrationRepository
	dispatcher events.Dispatcher
	payment    config.PaymentConfig
	logger     *zap.Logger
}

// NewRegistrationService builds the service.
func NewRegistrationService(regs repository.RegistrationRepository, dispatcher events.Dispatcher, paymentCfg config.PaymentConfig, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{regs: regs, dispatcher: dispatcher, payment: paymentCfg, logger: logger}
}

// RegistrationInput carries the attendance request fields.
type RegistrationInput struct {
	EventID    string
	EventTitle string
	EventDate  string
	TicketType *string
	Price      float64
	Currency   string
}

// Register persists a pending registration for the caller and builds the
// payment redirect URL when the payment page is configured. Each call
// creates a fresh record; repeated submissions for the same event are
// treated as additional ticket purchases, not duplicates.
func (s *RegistrationService) Register(ctx context.Context, session *domain.Session, in RegistrationInput) (*domain.Registration, string, error) {
	if err := auth.RequireActive(session); err != nil {
		return nil, "", err
	}
	if in.EventID == "" || in.EventTitle == "" || in.Currency == "" {
		return nil, "", apperrors.NewValidationError("eventId, eventTitle, currency required", nil)
	}
	if in.Price < 0 {
		return nil, "", apperrors.NewValidationError("price must be non-negative", map[string]any{"price": in.Price})
	}

	metadata := map[string]string{"eventTitle": in.EventTitle}
	if in.EventDate != "" {
		metadata["eventDate"] = in.EventDate
	}

	reg := &domain.Registration{
		EventID:       in.EventID,
		UserID:        session.UserID,
		UserName:      session.Name,
		UserEmail:     session.Email,
		TicketType:    in.TicketType,
		Price:         in.Price,
		Currency:      in.Currency,
		Status:        domain.RegistrationPending,
		PaymentStatus: domain.PaymentPending,
		Metadata:      metadata,
	}
	if err := s.regs.Create(ctx, reg); err != nil {
		return nil, "", apperrors.MapError(err)
	}

	paymentURL := payment.BuildLink(s.payment, payment.LinkParams{
		RegistrationID: reg.ID,
		Amount:         reg.Price,
		Currency:       reg.Currency,
		EventTitle:     in.EventTitle,
		Email:          reg.UserEmail,
		Name:           reg.UserName,
	})

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRegistrationCreated,
			Timestamp: time.Now(),
			Payload: events.RegistrationCreatedPayload{
				RegistrationID: reg.ID,
				EventID:        reg.EventID,
				EventTitle:     in.EventTitle,
				UserID:         reg.UserID,
				UserEmail:      reg.UserEmail,
				Price:          reg.Price,
				Currency:       reg.Currency,
				PaymentURL:     paymentURL,
			},
		})
	}

	s.logger.Info("registration created",
		zap.String("registration_id", reg.ID),
		zap.String("event_id", reg.EventID),
		zap.String("user_id", reg.UserID),
		zap.Bool("payment_link", paymentURL != ""))
	return reg, paymentURL, nil
}

// ListForUser returns the caller's registrations, newest first.
func (s *RegistrationService) ListForUser(ctx context.Context, session *domain.Session, limit, offset int) ([]domain.Registration, error) {
	if err := auth.RequireSession(session); err != nil {
		return nil, err
	}
	regs, err := s.regs.ListByUser(ctx, session.UserID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return regs, nil
}

// DashboardSummary aggregates the caller's registration activity.
type DashboardSummary struct {
	Counts map[domain.RegistrationStatus]int
	Recent []domain.Registration
}

// Dashboard builds the authenticated dashboard aggregation.
func (s *RegistrationService) Dashboard(ctx context.Context, session *domain.Session) (*DashboardSummary, error) {
	if err := auth.RequireSession(session); err != nil {
		return nil, err
	}
	counts, err := s.regs.CountByStatusForUser(ctx, session.UserID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	recent, err := s.regs.ListByUser(ctx, session.UserID, 5, 0)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &DashboardSummary{Counts: counts, Recent: recent}, nil
}
