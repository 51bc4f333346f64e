package ai

import (
	"context"
	"strings"

	"github.com/kapu/social-growth-advisor/internal/constants"
	"github.com/kapu/social-growth-advisor/internal/domain"
	"github.com/kapu/social-growth-advisor/internal/prompt"
	"github.com/kapu/social-growth-advisor/internal/util"
	apperrors "github.com/kapu/social-growth-advisor/pkg/errors"
	"go.uber.org/zap"
)

// Generator is the subset of ModelManager the suggestion service depends on.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, *GenerateMetadata, error)
}

// SuggestionService turns an account description into hashtag and growth-idea suggestions.
// It is stateless: no caching, no retries.
type SuggestionService struct {
	generator     Generator
	promptBuilder *prompt.PromptBuilder
	logger        *zap.Logger
}

func NewSuggestionService(generator Generator, builder *prompt.PromptBuilder, logger *zap.Logger) *SuggestionService {
	if builder == nil {
		builder = prompt.DefaultPromptBuilder()
	}
	return &SuggestionService{
		generator:     generator,
		promptBuilder: builder,
		logger:        logger,
	}
}

// RequestSuggestions issues exactly one generation call and returns a validated bundle.
// Every failure is a *errors.SuggestionError, except a blank description which is a
// *errors.ValidationError raised before any outbound call.
func (s *SuggestionService) RequestSuggestions(ctx context.Context, accountDescription, accountGoals, trainingData string) (*domain.SuggestionBundle, error) {
	if util.IsBlank(accountDescription) {
		return nil, apperrors.NewValidationError("Account description is required. Fetch an account or fill it in manually.", "accountDescription", accountDescription)
	}

	userPrompt, err := s.promptBuilder.BuildSuggestionPrompt(prompt.SuggestionPromptData{
		AccountDescription: accountDescription,
		AccountGoals:       accountGoals,
		TrainingData:       trainingData,
	})
	if err != nil {
		s.logger.Error("Failed to build suggestion prompt", zap.Error(err))
		return nil, apperrors.NewSuggestionError(apperrors.KindUnknown, err)
	}

	text, metadata, err := s.generator.Generate(ctx, GenerateRequest{
		SystemInstruction: prompt.GrowthStrategistInstruction,
		Prompt:            userPrompt,
		Schema:            SuggestionBundleSchema,
		SchemaName:        "suggestion_bundle",
		Temperature:       constants.AIConfig.Temperature,
	})
	if err != nil {
		classified := classifyProviderError(err)
		s.logger.Error("Error fetching suggestions",
			zap.String("kind", string(classified.Kind)),
			zap.Error(err),
		)
		return nil, classified
	}
	if metadata == nil {
		metadata = &GenerateMetadata{Provider: "unknown"}
	}

	bundle, err := ParseSuggestionBundle(text)
	if err != nil {
		s.logger.Error("Invalid suggestion response",
			zap.String("kind", string(apperrors.KindOf(err))),
			zap.String("provider", metadata.Provider),
			zap.String("response_preview", util.TruncateString(strings.TrimSpace(text), constants.AIConfig.ResponsePreview)),
			zap.Error(err),
		)
		return nil, err
	}

	if len(bundle.Hashtags) < constants.SuggestionLimits.MinHashtags || len(bundle.GrowthIdeas) < constants.SuggestionLimits.MinGrowthIdeas {
		s.logger.Warn("Suggestion bundle shorter than requested",
			zap.Int("hashtags", len(bundle.Hashtags)),
			zap.Int("growth_ideas", len(bundle.GrowthIdeas)),
		)
	}

	s.logger.Info("Suggestions generated",
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Int("hashtags", len(bundle.Hashtags)),
		zap.Int("growth_ideas", len(bundle.GrowthIdeas)),
	)

	return bundle, nil
}
