package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
)

// MockRepository implements RepoInterface for testing
type MockRepository struct {
	Packages map[int64]d.Package
	Delay    time.Duration
	GetCalls atomic.Int32
	Err      error
}

func (m *MockRepository) ListPackages(_ context.Context) ([]d.Package, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []d.Package
	for _, p := range m.Packages {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockRepository) GetPackage(_ context.Context, id int64) (d.Package, error) {
	m.GetCalls.Add(1)
	time.Sleep(m.Delay)
	if m.Err != nil {
		return d.Package{}, m.Err
	}
	p, ok := m.Packages[id]
	if !ok {
		return d.Package{}, fmt.Errorf("package %d: %w", id, ErrPackageNotFound)
	}
	return p, nil
}

func (m *MockRepository) Close() error {
	return nil
}
