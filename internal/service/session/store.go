package session

import (
	"context"

	"github.com/kapu/social-growth-advisor/internal/domain"
)

// MutateFunc edits a session state in place. Returning an error aborts the update
// and leaves the stored state untouched.
type MutateFunc func(state *domain.SessionState) error

// Store keeps per-session form state for a bounded time.
type Store interface {
	// Get returns the stored state, or a zero state when the session is unknown.
	Get(ctx context.Context, id string) (*domain.SessionState, error)
	// Update applies fn atomically with respect to other updates of the same session.
	Update(ctx context.Context, id string, fn MutateFunc) (*domain.SessionState, error)
	Ping(ctx context.Context) error
	Close() error
	Kind() string
}
