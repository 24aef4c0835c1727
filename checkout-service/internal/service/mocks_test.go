package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/catalog"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/fjod/go_travel/checkout-service/internal/session"
	"github.com/fjod/go_travel/checkout-service/internal/wizard"
)

// MockCatalog implements PackageCatalog for testing
type MockCatalog struct {
	Packages map[int64]d.Package
}

func (m *MockCatalog) GetPackage(_ context.Context, id int64) (d.Package, error) {
	p, ok := m.Packages[id]
	if !ok {
		return d.Package{}, catalog.ErrPackageNotFound
	}
	return p, nil
}

func (m *MockCatalog) ListPackages(context.Context) ([]d.Package, error) {
	out := make([]d.Package, 0, len(m.Packages))
	for _, p := range m.Packages {
		out = append(out, p)
	}
	return out, nil
}

// MockAuthorizer implements Authorizer. When Release is set every call
// reports on Entered and then waits for Release or its context.
type MockAuthorizer struct {
	mu      sync.Mutex
	Err     error
	Charges []payment.Charge

	Entered chan struct{}
	Release chan struct{}
}

func (m *MockAuthorizer) Authorize(ctx context.Context, charge payment.Charge) (payment.Receipt, error) {
	m.mu.Lock()
	m.Charges = append(m.Charges, charge)
	err := m.Err
	m.mu.Unlock()

	if m.Release != nil {
		m.Entered <- struct{}{}
		select {
		case <-m.Release:
		case <-ctx.Done():
			return payment.Receipt{}, payment.ErrPaymentCancelled
		}
	}
	if err != nil {
		return payment.Receipt{}, err
	}
	return payment.Receipt{
		TransactionID: "TXN-TEST",
		Reference:     charge.Reference,
		Method:        charge.Payment.Method(),
		Amount:        charge.Amount,
		Currency:      charge.Currency,
		AuthorizedAt:  time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (m *MockAuthorizer) charges() []payment.Charge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]payment.Charge(nil), m.Charges...)
}

// FlakyStore wraps a session.Store and fails the next FailUpdates calls to
// Update without touching the session.
type FlakyStore struct {
	session.Store
	FailUpdates atomic.Int32
}

func (f *FlakyStore) Update(ctx context.Context, id string, fn func(*wizard.Checkout) error) (*wizard.Checkout, error) {
	if f.FailUpdates.Add(-1) >= 0 {
		return nil, errors.New("redis: connection reset")
	}
	f.FailUpdates.Store(0)
	return f.Store.Update(ctx, id, fn)
}
