package session

import (
	"context"
	"net/http"
	"time"

	"github.com/kapu/social-growth-advisor/internal/domain"
	"github.com/kapu/social-growth-advisor/pkg/errors"
	"go.uber.org/zap"
)

// ErrBusy is returned by Begin while a suggestion request is already outstanding.
var ErrBusy = errors.NewAppError("A suggestion request is already in progress.", errors.CodeBusy, http.StatusConflict, nil)

// Manager owns the bundle/error/busy triple of every session.
type Manager struct {
	store       Store
	busyTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

func NewManager(store Store, busyTimeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		store:       store,
		busyTimeout: busyTimeout,
		now:         time.Now,
		logger:      logger,
	}
}

func (m *Manager) StoreKind() string {
	return m.store.Kind()
}

// Begin marks the session busy and records the submitted input.
// Previous results are cleared so a stale bundle never sits next to new input.
func (m *Manager) Begin(ctx context.Context, id string, input domain.SuggestionInput) (*domain.SessionState, error) {
	state, err := m.store.Update(ctx, id, func(s *domain.SessionState) error {
		now := m.now()
		if s.IsBusyAt(now, m.busyTimeout) {
			return ErrBusy
		}
		if s.Busy {
			m.logger.Warn("Stale busy flag overridden",
				zap.String("session", id),
				zap.Time("busy_since", s.BusySince),
			)
		}

		s.Input = input
		s.FormError = ""
		s.Bundle = nil
		s.Error = ""
		s.ErrorKind = ""
		s.Busy = true
		s.BusySince = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Complete clears busy and stores the outcome. A non-empty errMsg wins over bundle.
func (m *Manager) Complete(ctx context.Context, id string, bundle *domain.SuggestionBundle, errMsg, errKind string) (*domain.SessionState, error) {
	return m.store.Update(ctx, id, func(s *domain.SessionState) error {
		s.Busy = false
		s.BusySince = time.Time{}
		if errMsg != "" {
			s.Bundle = nil
			s.Error = errMsg
			s.ErrorKind = errKind
			return nil
		}
		s.Bundle = bundle
		s.Error = ""
		s.ErrorKind = ""
		return nil
	})
}

// SetProfile stores the fetched account and, when prefill is given, replaces the form input.
func (m *Manager) SetProfile(ctx context.Context, id string, profile *domain.AccountProfile, prefill *domain.SuggestionInput) (*domain.SessionState, error) {
	return m.store.Update(ctx, id, func(s *domain.SessionState) error {
		s.Profile = profile
		s.FormError = ""
		if prefill != nil {
			s.Input = *prefill
		}
		return nil
	})
}

// State returns a snapshot for rendering. A stale busy flag is reported as not busy.
func (m *Manager) State(ctx context.Context, id string) (*domain.SessionState, error) {
	state, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	state.Busy = state.IsBusyAt(m.now(), m.busyTimeout)
	return state, nil
}

// RejectInput keeps what the user typed and shows msg next to the form.
// Suggestion results are left untouched.
func (m *Manager) RejectInput(ctx context.Context, id string, input *domain.SuggestionInput, msg string) (*domain.SessionState, error) {
	return m.store.Update(ctx, id, func(s *domain.SessionState) error {
		if input != nil {
			s.Input = *input
		}
		s.FormError = msg
		return nil
	})
}
