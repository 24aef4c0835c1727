package wizard

import (
	"context"
	"time"

	"github.com/fjod/go_travel/checkout-service/internal/payment"
)

type mockGateway struct {
	err     error
	calls   int
	charges []payment.Charge
}

func (m *mockGateway) Authorize(_ context.Context, charge payment.Charge) (payment.Receipt, error) {
	m.calls++
	m.charges = append(m.charges, charge)
	if m.err != nil {
		return payment.Receipt{}, m.err
	}
	return payment.Receipt{
		TransactionID: "TXN-TEST",
		Reference:     charge.Reference,
		Method:        charge.Payment.Method(),
		Amount:        charge.Amount,
		Currency:      charge.Currency,
		AuthorizedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}, nil
}
