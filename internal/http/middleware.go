package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/containertoken/internal/httputil"
)

// CustomLoggerMiddleware logs each request with slog after the handler chain
// runs, including the request ID when present.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}

		if rid := requestid.Get(c); rid != "" {
			attrs = append(attrs, slog.String("request_id", rid))
		}

		logger.Info("http request", attrs...)
	}
}

// HealthHandler returns a simple health check handler.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.MakeJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
}

// ReadinessHandler returns a readiness check handler. It reports not ready
// once the given context is cancelled, so load balancers drain traffic
// during shutdown.
func ReadinessHandler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-ctx.Done():
			httputil.MakeJSONResponse(
				w,
				http.StatusServiceUnavailable,
				map[string]string{"status": "not ready"},
			)
			return
		default:
		}

		httputil.MakeJSONResponse(w, http.StatusOK, map[string]string{"status": "ready"})
	})
}
