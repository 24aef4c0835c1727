package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjod/go_travel/pkg/circuitbreaker"
)

const DefaultTimeout = 15 * time.Second

// Processor guards a Gateway with a per-attempt timeout and a circuit
// breaker. It never retries: a charge whose outcome is unclear must be
// resolved by the user, not by resubmission.
type Processor struct {
	gateway Gateway
	timeout time.Duration
	breaker *circuitbreaker.Breaker[Receipt]
	log     *slog.Logger
}

func NewProcessor(gateway Gateway, timeout time.Duration, log *slog.Logger) *Processor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Processor{gateway: gateway, timeout: timeout, log: log}
	p.breaker = circuitbreaker.New[Receipt](circuitbreaker.Settings{
		Name:                "payment-gateway",
		ConsecutiveFailures: 5,
		Timeout:             30 * time.Second,
		IsSuccessful: func(err error) bool {
			// declines and user cancels say nothing about gateway health
			return err == nil || errors.Is(err, ErrPaymentRejected) || errors.Is(err, ErrPaymentCancelled)
		},
		OnStateChange: func(name, from, to string) {
			log.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		},
	})
	return p
}

// Authorize sends charge to the gateway. The result is a Receipt or one of
// ErrPaymentRejected (as *RejectionError), ErrPaymentTimeout,
// ErrPaymentCancelled or ErrGatewayUnavailable.
func (p *Processor) Authorize(ctx context.Context, charge Charge) (Receipt, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	receipt, err := p.breaker.Execute(func() (Receipt, error) {
		return p.call(attemptCtx, charge)
	})
	if err == nil {
		return receipt, nil
	}

	switch {
	case errors.Is(err, circuitbreaker.ErrOpen):
		return Receipt{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	case errors.Is(err, ErrPaymentRejected), errors.Is(err, ErrPaymentCancelled), errors.Is(err, ErrPaymentTimeout):
		return Receipt{}, err
	default:
		return Receipt{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
}

// call returns as soon as ctx ends even if the gateway does not honour it.
func (p *Processor) call(ctx context.Context, charge Charge) (Receipt, error) {
	type result struct {
		receipt Receipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		r, err := p.gateway.Authorize(ctx, charge)
		done <- result{r, err}
	}()

	select {
	case res := <-done:
		if res.err != nil && ctx.Err() != nil {
			return Receipt{}, contextError(ctx)
		}
		return res.receipt, res.err
	case <-ctx.Done():
		p.log.Warn("payment gateway call abandoned", "reference", charge.Reference, "error", ctx.Err())
		return Receipt{}, contextError(ctx)
	}
}

func contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrPaymentTimeout
	}
	return ErrPaymentCancelled
}
