package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"facets_backend/internal/api"
	"facets_backend/internal/platform/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestHealth は/healthzがメソッドごとに正しいステータスと本文を返すことを検証します。
func TestHealth(t *testing.T) {
	t.Parallel()

	r := gin.New()
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		r.Handle(m, "/healthz", Health)
	}

	tests := []struct {
		method     string
		wantStatus int
		wantBody   *api.HealthResponse
	}{
		{method: http.MethodGet, wantStatus: http.StatusOK, wantBody: &api.HealthResponse{Status: "ok"}},
		{method: http.MethodHead, wantStatus: http.StatusOK},
		{method: http.MethodOptions, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.wantBody == nil {
				assert.Zero(t, w.Body.Len())
				return
			}
			var got api.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, *tt.wantBody, got)
		})
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		check          func(ctx context.Context) error
		expectedStatus int
		expectedBody   string
		expectedLogs   int
	}{
		{
			name:           "ready",
			check:          func(ctx context.Context) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ready"}`,
		},
		{
			name:           "database down",
			check:          func(ctx context.Context) error { return errors.New("dial tcp: connection refused") },
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"unavailable"}`,
			expectedLogs:   1,
		},
		{
			name: "check receives a deadline",
			check: func(ctx context.Context) error {
				deadline, ok := ctx.Deadline()
				if !ok || time.Until(deadline) > readinessTimeout {
					return errors.New("missing or too long deadline")
				}
				return nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ready"}`,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.DebugLevel)
			r := gin.New()
			r.GET("/readyz", Readiness(tt.check, logger.FromZap(zap.New(core))))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			assert.Equal(t, tt.expectedLogs, logs.Len())
		})
	}
}
