package http

import (
	"context"
	"time"

	"github.com/kapu/social-growth-advisor/internal/constants"
	"github.com/kapu/social-growth-advisor/internal/domain"
	"github.com/kapu/social-growth-advisor/internal/util"
	"github.com/kapu/social-growth-advisor/pkg/errors"
	"go.uber.org/zap"
)

// SuggestionRequester is the part of the suggestion service the handlers use.
type SuggestionRequester interface {
	RequestSuggestions(ctx context.Context, accountDescription, accountGoals, trainingData string) (*domain.SuggestionBundle, error)
}

// SessionManager owns per-session form state and the busy gate.
type SessionManager interface {
	Begin(ctx context.Context, id string, input domain.SuggestionInput) (*domain.SessionState, error)
	Complete(ctx context.Context, id string, bundle *domain.SuggestionBundle, errMsg, errKind string) (*domain.SessionState, error)
	SetProfile(ctx context.Context, id string, profile *domain.AccountProfile, prefill *domain.SuggestionInput) (*domain.SessionState, error)
	RejectInput(ctx context.Context, id string, input *domain.SuggestionInput, msg string) (*domain.SessionState, error)
	State(ctx context.Context, id string) (*domain.SessionState, error)
}

// ProfileFetcher resolves an account handle to a profile and form prefill.
type ProfileFetcher interface {
	Fetch(ctx context.Context, handle string) (*domain.AccountProfile, *domain.SuggestionInput, error)
}

// Handler serves both the HTML page and the JSON API on top of the same services.
type Handler struct {
	suggestions    SuggestionRequester
	sessions       SessionManager
	profiles       ProfileFetcher
	requestTimeout time.Duration
	storeTimeout   time.Duration
	logger         *zap.Logger
}

func NewHandler(suggestions SuggestionRequester, sessions SessionManager, profiles ProfileFetcher, logger *zap.Logger) *Handler {
	return &Handler{
		suggestions:    suggestions,
		sessions:       sessions,
		profiles:       profiles,
		requestTimeout: constants.AIConfig.RequestTimeout,
		storeTimeout:   constants.RedisConfig.ReadyTimeout,
		logger:         logger,
	}
}

// validateInput checks what the user typed before anything is marked busy.
func validateInput(input domain.SuggestionInput) error {
	limits := constants.SuggestionLimits

	switch {
	case util.IsBlank(input.AccountDescription):
		return errors.NewValidationError("Account description is required. Fetch an account or fill it in manually.", "accountDescription", "")
	case util.RuneCount(input.AccountDescription) > limits.MaxDescriptionRunes:
		return errors.NewValidationError("Account description is too long.", "accountDescription", util.RuneCount(input.AccountDescription))
	case util.RuneCount(input.AccountGoals) > limits.MaxGoalsRunes:
		return errors.NewValidationError("Account goals are too long.", "accountGoals", util.RuneCount(input.AccountGoals))
	case util.RuneCount(input.TrainingData) > limits.MaxTrainingRunes:
		return errors.NewValidationError("Training data is too long.", "trainingData", util.RuneCount(input.TrainingData))
	}
	return nil
}

// runSuggestion is the single completion path: Begin, one outbound request, Complete.
// The outbound call is detached from the client request so a closed tab does not abort it,
// and busy is cleared whatever the outcome.
func (h *Handler) runSuggestion(ctx context.Context, sid string, input domain.SuggestionInput) (*domain.SuggestionBundle, error) {
	if _, err := h.sessions.Begin(ctx, sid, input); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.requestTimeout)
	defer cancel()

	bundle, reqErr := h.suggestions.RequestSuggestions(callCtx, input.AccountDescription, input.AccountGoals, input.TrainingData)

	var errMsg, errKind string
	if reqErr != nil {
		errMsg, errKind = describeError(reqErr)
		bundle = nil
		h.logger.Warn("Suggestion request failed",
			zap.String("request_id", GetRequestID(ctx)),
			zap.String("session", sid),
			zap.String("kind", errKind),
		)
	}

	// callCtx may already be expired here; the result must still be recorded.
	storeCtx, storeCancel := context.WithTimeout(context.WithoutCancel(ctx), h.storeTimeout)
	defer storeCancel()

	if _, err := h.sessions.Complete(storeCtx, sid, bundle, errMsg, errKind); err != nil {
		h.logger.Error("Failed to record suggestion result",
			zap.String("request_id", GetRequestID(ctx)),
			zap.String("session", sid),
			zap.Error(err),
		)
		if reqErr == nil {
			return nil, err
		}
	}

	return bundle, reqErr
}
