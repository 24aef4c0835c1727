// Package session persists checkout wizards between requests.
package session

import (
	"context"
	"errors"

	"github.com/fjod/go_travel/checkout-service/internal/wizard"
)

// Common errors returned by the stores
var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrSessionExists   = errors.New("checkout session already exists")
	ErrConflict        = errors.New("checkout session changed concurrently, giving up")
)

// Store defines the storage operations for checkout sessions. Sessions are
// stored as JSON snapshots, so a Get always returns an independent copy.
type Store interface {
	// Create saves a new session. It fails with ErrSessionExists if the id is taken.
	Create(ctx context.Context, c *wizard.Checkout) error

	// Get loads a session or returns ErrSessionNotFound
	Get(ctx context.Context, id string) (*wizard.Checkout, error)

	// Update loads the session, applies fn and saves the result as one atomic
	// step. When fn fails nothing is saved and its error is returned. fn may
	// run more than once if the session changes concurrently.
	Update(ctx context.Context, id string, fn func(*wizard.Checkout) error) (*wizard.Checkout, error)

	Delete(ctx context.Context, id string) error

	// Ping reports whether the backing storage is reachable
	Ping(ctx context.Context) error

	// Close shuts down the store and any background processes
	Close() error
}
