package service

import (
	"context"
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/fjod/go_travel/checkout-service/internal/publisher"
	"github.com/fjod/go_travel/checkout-service/internal/wizard"
)

// enqueueBookingConfirmed hands the confirmed booking to the outbox. A
// failure is logged; the booking itself is already confirmed.
func (s *CheckoutServiceImpl) enqueueBookingConfirmed(ctx context.Context, c *wizard.Checkout, receipt payment.Receipt) {
	if s.outbox == nil {
		return
	}
	handoff, _ := c.Handoff()
	confirmedAt := receipt.AuthorizedAt
	if confirmedAt.IsZero() {
		confirmedAt = time.Now().UTC()
	}
	pkg := c.Package()
	event := publisher.BookingConfirmed{
		Reference:     handoff.Reference,
		SessionID:     c.ID(),
		PackageID:     pkg.ID,
		PackageName:   pkg.Name,
		Destination:   pkg.Destination,
		Travelers:     c.Travelers(),
		CheckIn:       c.CheckIn(),
		Totals:        c.Totals(),
		Currency:      d.Currency,
		PaymentMethod: c.PaymentView().Method,
		TransactionID: receipt.TransactionID,
		ConfirmedAt:   confirmedAt,
	}
	if _, err := s.outbox.Add(publisher.EventBookingConfirmed, event.Reference, event); err != nil {
		s.log.ErrorContext(ctx, "failed to enqueue booking event", "session_id", c.ID(), "reference", event.Reference, "error", err)
	}
}
