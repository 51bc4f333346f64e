package app

import (
	"context"
	"fmt"

	httpapi "github.com/kapu/social-growth-advisor/internal/api/http"
	"github.com/kapu/social-growth-advisor/internal/config"
	"github.com/kapu/social-growth-advisor/internal/constants"
	"github.com/kapu/social-growth-advisor/internal/prompt"
	"github.com/kapu/social-growth-advisor/internal/service/ai"
	"github.com/kapu/social-growth-advisor/internal/service/profile"
	"github.com/kapu/social-growth-advisor/internal/service/session"
	"github.com/kapu/social-growth-advisor/pkg/errors"
	"go.uber.org/zap"
)

const (
	ServiceName = "social-growth-advisor"
	Version     = "1.0.0"
)

// Container bundles assembled services for constructing the HTTP server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	server  *Server
	closers []func()
}

// Server returns the assembled HTTP server.
func (c *Container) Server() (*Server, error) {
	if c == nil || c.server == nil {
		return nil, fmt.Errorf("server not initialized")
	}
	return c.server, nil
}

// Close releases infrastructure in reverse construction order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles session storage, the AI stack and the HTTP router.
// A missing credential or unreachable Redis fails here, before the listener opens.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Session storage
	store, err := newSessionStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() {
		_ = store.Close()
	})
	sessions := session.NewManager(store, constants.SessionConfig.BusyTimeout, logger)

	// AI stack
	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		Provider:     cfg.LLM.Provider,
		GeminiAPIKey: cfg.Gemini.APIKey,
		GeminiModel:  cfg.Gemini.Model,
		OpenAIAPIKey: cfg.OpenAI.APIKey,
		OpenAIModel:  cfg.OpenAI.Model,
	}, logger)
	if err != nil {
		return nil, errors.NewServiceError("failed to create model manager", cfg.LLM.Provider, "init", err)
	}
	suggestions := ai.NewSuggestionService(modelManager, prompt.NewPromptBuilder(), logger)

	profiles := profile.NewMockProvider(cfg.Profile.FetchDelay, logger)

	// HTTP
	handler := httpapi.NewHandler(suggestions, sessions, profiles, logger)
	health := httpapi.NewHealthHandler(ServiceName, Version, modelManager, store)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		GinMode:        cfg.Server.GinMode,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Session: httpapi.SessionConfig{
			CookieName: constants.SessionConfig.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Server.SecureCookie,
		},
	}, handler, health, logger)

	logger.Info("Application assembled",
		zap.String("provider", modelManager.ProviderName()),
		zap.String("model", modelManager.DefaultModel()),
		zap.String("session_store", store.Kind()),
	)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		server:  NewServer(cfg.Server.Addr, router, logger),
		closers: closers,
	}, nil
}

func newSessionStore(cfg *config.Config, logger *zap.Logger) (session.Store, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		store, err := session.NewRedisStore(session.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Session.TTL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		return store, nil
	default:
		return session.NewMemoryStore(cfg.Session.TTL, constants.SessionConfig.SweepEvery, logger), nil
	}
}
