package payment

import (
	"context"
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
)

// Charge is one authorization request sent to a gateway.
type Charge struct {
	Reference string
	Amount    int64
	Currency  string
	Payment   d.PaymentData
}

type Receipt struct {
	TransactionID string          `json:"transaction_id"`
	Reference     string          `json:"reference"`
	Method        d.PaymentMethod `json:"method"`
	Amount        int64           `json:"amount"`
	Currency      string          `json:"currency"`
	AuthorizedAt  time.Time       `json:"authorized_at"`
}

// Gateway authorizes charges with an external payment provider. A definite
// decline is returned as *RejectionError. Implementations must honour ctx.
type Gateway interface {
	Authorize(ctx context.Context, charge Charge) (Receipt, error)
}
