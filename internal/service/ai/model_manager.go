package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ModelManager owns the single configured provider. There is no fallback chain:
// every Generate call maps to exactly one outbound request.
type ModelManager struct {
	provider JSONProvider
	logger   *zap.Logger
}

type ModelManagerConfig struct {
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
}

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	var (
		provider JSONProvider
		err      error
	)

	switch cfg.Provider {
	case "", ProviderGemini:
		provider, err = NewGeminiProvider(ctx, GeminiProviderConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		}, logger)
	case ProviderOpenAI:
		provider, err = NewOpenAIProvider(OpenAIProviderConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("AI provider configured",
		zap.String("provider", provider.Name()),
		zap.String("model", provider.DefaultModel()),
	)

	return NewModelManagerWithProvider(provider, logger), nil
}

// NewModelManagerWithProvider wraps an already constructed provider.
func NewModelManagerWithProvider(provider JSONProvider, logger *zap.Logger) *ModelManager {
	return &ModelManager{
		provider: provider,
		logger:   logger,
	}
}

func (mm *ModelManager) ProviderName() string {
	return mm.provider.Name()
}

func (mm *ModelManager) DefaultModel() string {
	return mm.provider.DefaultModel()
}

// Generate performs one provider call and returns its raw text.
func (mm *ModelManager) Generate(ctx context.Context, req GenerateRequest) (string, *GenerateMetadata, error) {
	start := time.Now()

	result, err := mm.provider.Generate(ctx, req)
	if err != nil {
		mm.logger.Warn("AI generation failed",
			zap.String("provider", mm.provider.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", nil, err
	}

	metadata := &GenerateMetadata{
		Provider: mm.provider.Name(),
		Model:    result.Model,
	}

	mm.logger.Info("AI generation completed",
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Int("length", len(result.Text)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result.Text, metadata, nil
}
