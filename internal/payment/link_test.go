package payment

import (
	"net/url"
	"testing"

	"github.com/bahafit/bahafit/internal/config"
)

func TestBuildLinkUnconfigured(t *testing.T) {
	params := LinkParams{
		RegistrationID: "reg-1",
		Amount:         25,
		Currency:       "BHD",
		EventTitle:     "Beach 5K Run",
		Email:          "jane@example.com",
		Name:           "Jane Doe",
	}

	cases := []struct {
		name string
		cfg  config.PaymentConfig
	}{
		{"no base url", config.PaymentConfig{MerchantID: "m-42"}},
		{"no merchant id", config.PaymentConfig{PageURL: "https://pay.example.com/checkout"}},
		{"neither", config.PaymentConfig{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if link := BuildLink(tc.cfg, params); link != "" {
				t.Fatalf("expected no link, got %q", link)
			}
		})
	}
}

func TestBuildLinkQueryParams(t *testing.T) {
	cfg := config.PaymentConfig{
		PageURL:    "https://pay.example.com/checkout/",
		MerchantID: "m-42",
	}
	link := BuildLink(cfg, LinkParams{
		RegistrationID: "reg-123",
		Amount:         12.5,
		Currency:       "BHD",
		EventTitle:     "Beach 5K Run",
		Email:          "jane@example.com",
		Name:           "Jane Doe",
	})

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if parsed.Path != "/checkout/m-42" {
		t.Fatalf("expected merchant id path segment, got %q", parsed.Path)
	}

	want := map[string]string{
		"amount":      "12.50",
		"currency":    "BHD",
		"reference":   "reg-123",
		"description": "Beach 5K Run",
		"email":       "jane@example.com",
		"name":        "Jane Doe",
	}
	query := parsed.Query()
	if len(query) != len(want) {
		t.Fatalf("expected %d query params, got %d (%v)", len(want), len(query), query)
	}
	for key, expected := range want {
		if got := query.Get(key); got != expected {
			t.Errorf("param %s: expected %q, got %q", key, expected, got)
		}
	}
}

func TestBuildLinkDeterministic(t *testing.T) {
	cfg := config.PaymentConfig{PageURL: "https://pay.example.com", MerchantID: "m-1"}
	params := LinkParams{RegistrationID: "r", Amount: 0, Currency: "USD", EventTitle: "Free Yoga", Email: "a@b.c", Name: "A"}

	first := BuildLink(cfg, params)
	second := BuildLink(cfg, params)
	if first != second {
		t.Fatalf("expected identical links, got %q and %q", first, second)
	}
	if url.Values(mustParse(t, first).Query()).Get("amount") != "0.00" {
		t.Fatalf("free events still carry a two-decimal amount: %q", first)
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return parsed
}
