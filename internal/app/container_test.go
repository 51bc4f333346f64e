package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	httpapi "github.com/kapu/social-growth-advisor/internal/api/http"
	"github.com/kapu/social-growth-advisor/internal/config"
	apperrors "github.com/kapu/social-growth-advisor/pkg/errors"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Addr: "127.0.0.1:0", GinMode: "test"},
		LLM:     config.LLMConfig{Provider: config.ProviderGemini},
		Gemini:  config.GeminiConfig{APIKey: "test-key", Model: "gemini-2.5-flash"},
		Session: config.SessionConfig{Store: config.SessionStoreMemory, TTL: time.Hour},
		Profile: config.ProfileConfig{FetchDelay: 0},
	}
}

func TestBuildRejectsNilInputs(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), testConfig(), nil)
	assert.Error(t, err)
}

func TestBuildWithMemoryStore(t *testing.T) {
	container, err := Build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer container.Close()

	server, err := container.Server()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health httpapi.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, ServiceName, health.Service)
	assert.Equal(t, "Gemini", health.Provider)
	assert.Equal(t, "memory", health.SessionStore)
}

func TestBuildWithRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Session.Store = config.SessionStoreRedis
	cfg.Redis = config.RedisConfig{Host: host, Port: portNum}

	container, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer container.Close()

	server, err := container.Server()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var health httpapi.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "redis", health.SessionStore)
	assert.Equal(t, "up", health.Store)
}

func TestBuildFailsWhenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)
	mr.Close()

	cfg := testConfig()
	cfg.Session.Store = config.SessionStoreRedis
	cfg.Redis = config.RedisConfig{Host: host, Port: portNum}

	_, err = Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestServerServeAndShutdown(t *testing.T) {
	container, err := Build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer container.Close()

	server, err := container.Server()
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var wg conc.WaitGroup
	var serveErr error
	wg.Go(func() {
		serveErr = server.Serve(context.Background(), ln)
	})

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	wg.Wait()
	assert.NoError(t, serveErr)
}

func TestBuildWrapsProviderFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Gemini.APIKey = ""

	_, err := Build(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)

	var serviceErr *apperrors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, config.ProviderGemini, serviceErr.Service)
	assert.Equal(t, "init", serviceErr.Operation)
}
