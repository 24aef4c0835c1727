package service

import (
	"context"
	"fmt"
	"maps"
	"slices"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/confirmation"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/fjod/go_travel/checkout-service/internal/wizard"
)

const cvvField = "cvv"

// UpdatePayment edits the payment form. The CVV is never persisted, so it
// is refused here and accepted only by SubmitPayment.
func (s *CheckoutServiceImpl) UpdatePayment(ctx context.Context, id string, update PaymentUpdate) (wizard.View, error) {
	if _, ok := update.Fields[cvvField]; ok {
		return wizard.View{}, ErrCVVNotStored
	}
	return s.update(ctx, id, func(c *wizard.Checkout) error {
		return applyPayment(c, update)
	})
}

// SubmitPayment runs one payment attempt. The session is marked processing
// before the gateway is called, so a concurrent submit for the same session
// fails with payment.ErrPaymentInProgress instead of charging twice.
func (s *CheckoutServiceImpl) SubmitPayment(ctx context.Context, id string, update *PaymentUpdate) (PaymentResult, error) {
	var cvv string
	if !update.empty() {
		cvv = update.Fields[cvvField]
		rest := PaymentUpdate{Method: update.Method, SaveCard: update.SaveCard, Fields: maps.Clone(update.Fields)}
		delete(rest.Fields, cvvField)
		if !rest.empty() {
			if _, err := s.UpdatePayment(ctx, id, rest); err != nil {
				return PaymentResult{}, err
			}
		}
	}

	var charge payment.Charge
	_, err := s.store.Update(ctx, id, func(c *wizard.Checkout) error {
		if cvv != "" {
			if err := c.UpdatePaymentField(cvvField, cvv); err != nil {
				return err
			}
		}
		var err error
		charge, err = c.BeginPayment()
		return err
	})
	if err != nil {
		return PaymentResult{}, err
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.track(id, cancel)
	defer s.untrack(id)

	s.log.InfoContext(ctx, "payment submitted",
		"session_id", id, "reference", charge.Reference, "amount", charge.Amount,
		"method", charge.Payment.Method())

	receipt, authErr := s.payments.Authorize(attemptCtx, charge)

	// the outcome must be recorded even when the caller has gone away
	saveCtx := context.WithoutCancel(ctx)
	if authErr != nil {
		s.recordFailure(saveCtx, id, authErr)
		s.log.WarnContext(ctx, "payment failed",
			"session_id", id, "reference", charge.Reference, "error", authErr)
		return PaymentResult{}, authErr
	}

	var handoff confirmation.Handoff
	c, err := s.store.Update(saveCtx, id, func(c *wizard.Checkout) error {
		var err error
		handoff, err = c.CompletePayment(receipt)
		return err
	})
	if err != nil {
		s.log.ErrorContext(ctx, "payment authorized but checkout not confirmed",
			"session_id", id, "reference", charge.Reference, "transaction_id", receipt.TransactionID, "error", err)
		return PaymentResult{}, fmt.Errorf("failed to confirm checkout %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "booking confirmed",
		"session_id", id, "reference", handoff.Reference, "transaction_id", receipt.TransactionID)
	s.enqueueBookingConfirmed(ctx, c, receipt)

	redirect, err := handoff.URL(s.confirmationURL)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("failed to build confirmation url: %w", err)
	}
	return PaymentResult{
		Reference:     handoff.Reference,
		RedirectURL:   redirect,
		Total:         handoff.Total,
		TransactionID: receipt.TransactionID,
		Handoff:       handoff,
	}, nil
}

// CancelPayment aborts the attempt this instance is running for the session.
func (s *CheckoutServiceImpl) CancelPayment(ctx context.Context, id string) error {
	s.mu.Lock()
	cancel, ok := s.inflight[id]
	s.mu.Unlock()
	if !ok {
		if _, err := s.store.Get(ctx, id); err != nil {
			return err
		}
		return wizard.ErrNoPaymentInFlight
	}

	cancel()
	s.log.InfoContext(ctx, "payment cancelled by user", "session_id", id)
	return nil
}

func (s *CheckoutServiceImpl) track(id string, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[id] = cancel
}

func (s *CheckoutServiceImpl) untrack(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

func applyPayment(c *wizard.Checkout, update PaymentUpdate) error {
	if update.Method != nil {
		if err := c.SetPaymentMethod(*update.Method); err != nil {
			return err
		}
	}
	// sorted so the same bad input always reports the same field
	for _, field := range slices.Sorted(maps.Keys(update.Fields)) {
		if err := c.UpdatePaymentField(field, update.Fields[field]); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	if update.SaveCard != nil {
		return c.SetSaveCard(*update.SaveCard)
	}
	return nil
}

// ParseMethod is a helper for transports that receive the method as text.
func ParseMethod(s string) (*d.PaymentMethod, error) {
	if s == "" {
		return nil, nil
	}
	m, err := d.ParsePaymentMethod(s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// recordFailure saves a failed attempt, trying the store a second time
// before giving up. A session left processing refuses every later submit
// until it expires.
func (s *CheckoutServiceImpl) recordFailure(ctx context.Context, id string, authErr error) {
	var err error
	for attempt := 1; attempt <= failureSaveAttempts; attempt++ {
		_, err = s.store.Update(ctx, id, func(c *wizard.Checkout) error {
			c.FailPayment(authErr)
			return nil
		})
		if err == nil {
			return
		}
		s.log.WarnContext(ctx, "failed to record payment failure",
			"session_id", id, "attempt", attempt, "error", err)
	}
	s.log.ErrorContext(ctx, "payment failure not recorded, session stays processing",
		"session_id", id, "error", err)
}
