package profile

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kapu/social-growth-advisor/internal/constants"
	"github.com/kapu/social-growth-advisor/internal/domain"
	"github.com/kapu/social-growth-advisor/internal/util"
	"github.com/kapu/social-growth-advisor/pkg/errors"
	"go.uber.org/zap"
)

// Provider looks up a social account and proposes form content for it.
type Provider interface {
	Fetch(ctx context.Context, handle string) (*domain.AccountProfile, *domain.SuggestionInput, error)
}

// MockProvider simulates a profile lookup. It never calls out; it waits and returns sample data.
type MockProvider struct {
	delay         time.Duration
	avatarBaseURL string
	logger        *zap.Logger
}

func NewMockProvider(delay time.Duration, logger *zap.Logger) *MockProvider {
	return &MockProvider{
		delay:         delay,
		avatarBaseURL: constants.ProfileConfig.AvatarBaseURL,
		logger:        logger,
	}
}

func (p *MockProvider) Fetch(ctx context.Context, handle string) (*domain.AccountProfile, *domain.SuggestionInput, error) {
	handle = NormalizeHandle(handle)
	if handle == "" {
		return nil, nil, errors.NewValidationError("Instagram handle is required.", "handle", handle)
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-timer.C:
		}
	}

	profile := &domain.AccountProfile{
		Name:     "Demo Photographer",
		Handle:   handle,
		ImageURL: p.avatarURL(handle),
	}
	prefill := samplePrefill(handle)

	p.logger.Info("Account fetched (simulated)",
		zap.String("handle", handle),
		zap.Duration("delay", p.delay),
	)

	return profile, prefill, nil
}

func (p *MockProvider) avatarURL(handle string) string {
	return fmt.Sprintf("%s/%s.png?text=%s",
		p.avatarBaseURL,
		url.PathEscape(handle),
		url.QueryEscape(util.FirstRunes(handle, 2)),
	)
}

// NormalizeHandle trims whitespace and a leading '@'.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	handle = strings.TrimPrefix(handle, "@")
	return strings.TrimSpace(handle)
}

func samplePrefill(handle string) *domain.SuggestionInput {
	return &domain.SuggestionInput{
		AccountDescription: fmt.Sprintf(`A travel photography account (@%s) showcasing landscapes from Southeast Asia. Focus on vibrant colors and drone shots. Current bio: "Exploring Asia one photo at a time 🌏 | Drone pilot | Coffee enthusiast"`, handle),
		AccountGoals:       "Grow my audience of travel lovers, collaborate with travel brands, and increase engagement on my posts to over 10%.",
		TrainingData:       fmt.Sprintf(`Recent posts from @%s include: 'Sunrise over Ha Long Bay', 'Bangkok Street Food Tour', 'Bali's Rice Terraces'. I like the style of @chrisburkard and @shortstache. My captions are usually short and inspirational.`, handle),
	}
}
