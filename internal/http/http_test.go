package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/containertoken/internal/config"
	"github.com/allisson/containertoken/internal/container/repository/memory"
	containerUseCase "github.com/allisson/containertoken/internal/container/usecase"
	"github.com/allisson/containertoken/internal/token/service"
	tokenUseCase "github.com/allisson/containertoken/internal/token/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		ServerHost:       "localhost",
		ServerPort:       8080,
		NodeAddress:      "127.0.0.1:45454",
		TokenTTL:         10 * time.Minute,
		MetricsNamespace: "containertoken",
	}
}

func newTestAPIServer(t *testing.T, cfg *config.Config) *APIServer {
	t.Helper()

	keys, err := service.NewKeyStore(2, nil)
	require.NoError(t, err)
	t.Cleanup(keys.Close)

	tokens := tokenUseCase.NewTokenUseCase(service.NewSecretManager(keys), keys, cfg.TokenTTL)
	containers := containerUseCase.NewContainerUseCase(memory.NewContainerRepository())

	return NewAPIServer(cfg, newTestLogger(), tokens, containers, nil)
}

func TestHealthHandler(t *testing.T) {
	server := newTestAPIServer(t, newTestConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("Success_Ready", func(t *testing.T) {
		server := newTestAPIServer(t, newTestConfig())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotReadyAfterShutdown", func(t *testing.T) {
		server := newTestAPIServer(t, newTestConfig())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, server.Shutdown(shutdownCtx))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAPIServer_Routes(t *testing.T) {
	t.Run("Success_IssueEndpointRegistered", func(t *testing.T) {
		server := newTestAPIServer(t, newTestConfig())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/tokens", nil)
		server.GetHandler().ServeHTTP(w, req)

		// Empty body fails binding, not routing.
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success_ContainerRoutesRequireSession", func(t *testing.T) {
		server := newTestAPIServer(t, newTestConfig())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/containers/start", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success_RequestIDHeaderSet", func(t *testing.T) {
		server := newTestAPIServer(t, newTestConfig())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})
}

func TestMetricsServer(t *testing.T) {
	t.Run("Success_WithoutProvider", func(t *testing.T) {
		server := NewMetricsServer("localhost", 8081, newTestLogger(), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
