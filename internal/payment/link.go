package payment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bahafit/bahafit/internal/config"
)

// LinkParams carries the values encoded into a payment redirect URL.
type LinkParams struct {
	RegistrationID string
	Amount         float64
	Currency       string
	EventTitle     string
	Email          string
	Name           string
}

// BuildLink constructs the external payment-page URL for a registration.
// The merchant id is appended as a path segment and the registration id
// becomes the payment reference. Returns "" when either the page URL or the
// merchant id is unconfigured; payment then happens out-of-band.
func BuildLink(cfg config.PaymentConfig, p LinkParams) string {
	if cfg.PageURL == "" || cfg.MerchantID == "" {
		return ""
	}

	base, err := url.Parse(strings.TrimRight(cfg.PageURL, "/") + "/" + url.PathEscape(cfg.MerchantID))
	if err != nil {
		return ""
	}

	values := url.Values{}
	values.Set("amount", fmt.Sprintf("%.2f", p.Amount))
	values.Set("currency", p.Currency)
	values.Set("reference", p.RegistrationID)
	values.Set("description", p.EventTitle)
	values.Set("email", p.Email)
	values.Set("name", p.Name)
	base.RawQuery = values.Encode()

	return base.String()
}
