package payment

import (
	"context"
	"math/rand"
	"time"

	"github.com/segmentio/ksuid"
)

type Refusal string

const (
	RefusalUnknown           Refusal = "unknown"
	RefusalInsufficientFunds Refusal = "insufficient_funds"
	RefusalCardDeclined      Refusal = "card_declined"
	RefusalExpiredCard       Refusal = "expired_card"
	RefusalSuspectedFraud    Refusal = "suspected_fraud"
	RefusalLimitExceeded     Refusal = "limit_exceeded"
)

var refusals = []Refusal{
	RefusalInsufficientFunds,
	RefusalCardDeclined,
	RefusalExpiredCard,
	RefusalSuspectedFraud,
	RefusalLimitExceeded,
}

var refusalReasons = map[Refusal]string{
	RefusalUnknown:           "unknown reason",
	RefusalInsufficientFunds: "insufficient funds",
	RefusalCardDeclined:      "declined by issuer",
	RefusalExpiredCard:       "card has expired",
	RefusalSuspectedFraud:    "flagged as suspected fraud",
	RefusalLimitExceeded:     "account limit exceeded",
}

// OutcomeSource decides whether the mock gateway approves a charge.
type OutcomeSource interface {
	Outcome() (approved bool, refusal Refusal)
}

// RandomOutcome approves 95% of charges.
type RandomOutcome struct{}

func (RandomOutcome) Outcome() (bool, Refusal) {
	return calcOutcome(rand.Intn(101)) // 101 because Intn is exclusive of the upper bound
}

func calcOutcome(n int) (bool, Refusal) {
	if n < 95 {
		return true, ""
	}
	other := n - 95
	if other == 0 || other > len(refusals) {
		return false, RefusalUnknown
	}
	return false, refusals[other-1]
}

// MockGateway simulates a provider that answers after a fixed latency.
type MockGateway struct {
	latency  time.Duration
	outcomes OutcomeSource
	now      func() time.Time
}

func NewMockGateway(latency time.Duration, outcomes OutcomeSource) *MockGateway {
	if outcomes == nil {
		outcomes = RandomOutcome{}
	}
	return &MockGateway{latency: latency, outcomes: outcomes, now: time.Now}
}

func (g *MockGateway) Authorize(ctx context.Context, charge Charge) (Receipt, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	approved, refusal := g.outcomes.Outcome()
	if !approved {
		return Receipt{}, &RejectionError{Code: refusal, Reason: refusalReasons[refusal]}
	}

	return Receipt{
		TransactionID: "TXN-" + ksuid.New().String(),
		Reference:     charge.Reference,
		Method:        charge.Payment.Method(),
		Amount:        charge.Amount,
		Currency:      charge.Currency,
		AuthorizedAt:  g.now().UTC(),
	}, nil
}
