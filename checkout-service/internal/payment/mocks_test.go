package payment

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// stubGateway returns a fixed answer and records the last charge.
type stubGateway struct {
	receipt Receipt
	err     error
	calls   atomic.Int32
	last    Charge
	mu      sync.Mutex
}

func (g *stubGateway) Authorize(_ context.Context, charge Charge) (Receipt, error) {
	g.calls.Add(1)
	g.mu.Lock()
	g.last = charge
	g.mu.Unlock()
	if g.err != nil {
		return Receipt{}, g.err
	}
	r := g.receipt
	r.Reference = charge.Reference
	r.Amount = charge.Amount
	return r, nil
}

// blockingGateway holds every call until release is closed or ctx ends.
type blockingGateway struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func newBlockingGateway() *blockingGateway {
	return &blockingGateway{entered: make(chan struct{}, 10), release: make(chan struct{})}
}

func (g *blockingGateway) Authorize(ctx context.Context, charge Charge) (Receipt, error) {
	g.calls.Add(1)
	g.entered <- struct{}{}
	select {
	case <-g.release:
		return Receipt{TransactionID: "TXN-1", Reference: charge.Reference, AuthorizedAt: time.Now()}, nil
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	}
}

// deafGateway ignores ctx entirely.
type deafGateway struct {
	delay time.Duration
}

func (g deafGateway) Authorize(_ context.Context, _ Charge) (Receipt, error) {
	time.Sleep(g.delay)
	return Receipt{TransactionID: "late"}, nil
}

type fixedOutcome struct {
	approved bool
	refusal  Refusal
}

func (f fixedOutcome) Outcome() (bool, Refusal) {
	return f.approved, f.refusal
}
