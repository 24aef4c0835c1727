package publisher

import (
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
)

const EventBookingConfirmed = "BookingConfirmed"

// BookingConfirmed is published once per confirmed checkout. Downstream
// consumers key on Reference.
type BookingConfirmed struct {
	Reference     string          `json:"reference"`
	SessionID     string          `json:"session_id"`
	PackageID     int64           `json:"package_id"`
	PackageName   string          `json:"package_name"`
	Destination   string          `json:"destination"`
	Travelers     int             `json:"travelers"`
	CheckIn       string          `json:"check_in,omitempty"`
	Totals        d.Totals        `json:"totals"`
	Currency      string          `json:"currency"`
	PaymentMethod d.PaymentMethod `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	ConfirmedAt   time.Time       `json:"confirmed_at"`
}
