package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bahafit/bahafit/internal/config"
	"github.com/bahafit/bahafit/internal/domain"
)

type stubRegistrationRepo struct {
	created []*domain.Registration
	nextID  int
}

func (s *stubRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	s.nextID++
	reg.ID = fmt.Sprintf("reg-%d", s.nextID)
	reg.RegisteredAt = time.Now()
	stored := *reg
	s.created = append(s.created, &stored)
	return nil
}

func (s *stubRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	for _, reg := range s.created {
		if reg.ID == id {
			return reg, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubRegistrationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Registration, error) {
	var result []domain.Registration
	for _, reg := range s.created {
		if reg.UserID == userID {
			result = append(result, *reg)
		}
	}
	return result, nil
}

func (s *stubRegistrationRepo) CountByStatusForUser(ctx context.Context, userID string) (map[domain.RegistrationStatus]int, error) {
	counts := make(map[domain.RegistrationStatus]int)
	for _, reg := range s.created {
		if reg.UserID == userID {
			counts[reg.Status]++
		}
	}
	return counts, nil
}

var activeSession = &domain.Session{
	UserID: "u-1",
	Name:   "Jane Doe",
	Email:  "jane@example.com",
	Role:   domain.RoleUser,
	Active: true,
}

func testRegistrationService(repo *stubRegistrationRepo, paymentCfg config.PaymentConfig) *RegistrationService {
	return NewRegistrationService(repo, nil, paymentCfg, zap.NewNop())
}

func validInput() RegistrationInput {
	return RegistrationInput{
		EventID:    "event-1",
		EventTitle: "Beach 5K Run",
		EventDate:  "2026-09-12",
		Price:      15,
		Currency:   "BHD",
	}
}

func TestRegisterRequiresActiveSession(t *testing.T) {
	repo := &stubRegistrationRepo{}
	svc := testRegistrationService(repo, config.PaymentConfig{})

	_, _, err := svc.Register(context.Background(), nil, validInput())
	assertHTTPStatus(t, err, 401)

	inactive := &domain.Session{UserID: "u-1", Role: domain.RoleUser, Active: false}
	_, _, err = svc.Register(context.Background(), inactive, validInput())
	assertHTTPStatus(t, err, 403)

	if len(repo.created) != 0 {
		t.Fatalf("rejected requests must not persist, got %d records", len(repo.created))
	}
}

func TestRegisterValidation(t *testing.T) {
	repo := &stubRegistrationRepo{}
	svc := testRegistrationService(repo, config.PaymentConfig{})

	cases := []struct {
		name   string
		mutate func(*RegistrationInput)
	}{
		{"missing event id", func(in *RegistrationInput) { in.EventID = "" }},
		{"missing title", func(in *RegistrationInput) { in.EventTitle = "" }},
		{"missing currency", func(in *RegistrationInput) { in.Currency = "" }},
		{"negative price", func(in *RegistrationInput) { in.Price = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, _, err := svc.Register(context.Background(), activeSession, input)
			assertHTTPStatus(t, err, 400)
		})
	}

	if len(repo.created) != 0 {
		t.Fatalf("validation failures must reject before persistence, got %d records", len(repo.created))
	}
}

func TestRegisterCreatesPendingRecord(t *testing.T) {
	repo := &stubRegistrationRepo{}
	svc := testRegistrationService(repo, config.PaymentConfig{})

	reg, paymentURL, err := svc.Register(context.Background(), activeSession, validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if reg.Status != domain.RegistrationPending || reg.PaymentStatus != domain.PaymentPending {
		t.Fatalf("expected pending/pending, got %s/%s", reg.Status, reg.PaymentStatus)
	}
	if reg.UserName != "Jane Doe" || reg.UserEmail != "jane@example.com" {
		t.Fatalf("expected denormalized session identity, got %s/%s", reg.UserName, reg.UserEmail)
	}
	if reg.Metadata["eventTitle"] != "Beach 5K Run" || reg.Metadata["eventDate"] != "2026-09-12" {
		t.Fatalf("expected fallback metadata, got %v", reg.Metadata)
	}
	if paymentURL != "" {
		t.Fatalf("unconfigured payment must yield no URL, got %q", paymentURL)
	}
}

func TestRegisterNoDeduplication(t *testing.T) {
	// Duplicate submissions intentionally create new records; multiple
	// ticket purchases for the same event are allowed.
	repo := &stubRegistrationRepo{}
	svc := testRegistrationService(repo, config.PaymentConfig{})

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Register(context.Background(), activeSession, validInput()); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if len(repo.created) != 3 {
		t.Fatalf("expected 3 independent records, got %d", len(repo.created))
	}
	ids := map[string]bool{}
	for _, reg := range repo.created {
		ids[reg.ID] = true
	}
	if len(ids) != 3 {
		t.Fatalf("expected distinct ids, got %v", ids)
	}
}

func TestRegisterBuildsPaymentLink(t *testing.T) {
	repo := &stubRegistrationRepo{}
	svc := testRegistrationService(repo, config.PaymentConfig{
		PageURL:    "https://pay.example.com/checkout",
		MerchantID: "bahafit-001",
	})

	reg, paymentURL, err := svc.Register(context.Background(), activeSession, validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if paymentURL == "" {
		t.Fatal("expected a payment URL with configured merchant")
	}
	if !strings.Contains(paymentURL, "reference="+reg.ID) {
		t.Fatalf("payment URL must reference the registration id: %q", paymentURL)
	}
	if !strings.Contains(paymentURL, "amount=15.00") {
		t.Fatalf("payment URL must carry a two-decimal amount: %q", paymentURL)
	}
}

func TestDashboardAggregation(t *testing.T) {
	repo := &stubRegistrationRepo{}
	svc := testRegistrationService(repo, config.PaymentConfig{})

	for i := 0; i < 2; i++ {
		if _, _, err := svc.Register(context.Background(), activeSession, validInput()); err != nil {
			t.Fatalf("seed registration: %v", err)
		}
	}

	summary, err := svc.Dashboard(context.Background(), activeSession)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if summary.Counts[domain.RegistrationPending] != 2 {
		t.Fatalf("expected 2 pending, got %v", summary.Counts)
	}
	if len(summary.Recent) != 2 {
		t.Fatalf("expected 2 recent records, got %d", len(summary.Recent))
	}

	_, err = svc.Dashboard(context.Background(), nil)
	assertHTTPStatus(t, err, 401)
}
