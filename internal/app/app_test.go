package app

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/buildinfo"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/config"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/models"
)

// stubService отвечает одной строкой на каждый URL без запуска браузера
type stubService struct {
	pingErr error
}

func (s *stubService) ProcessBatch(_ context.Context, urls []string) []models.Row {
	rows := make([]models.Row, 0, len(urls))
	for _, u := range urls {
		rows = append(rows, models.Row{{Key: models.KeyURL, Value: u}, {Key: "seo", Value: "1"}})
	}
	return rows
}

func (s *stubService) CheckConnection(context.Context) error {
	return s.pingErr
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ServerAddress = "127.0.0.1:0"
	cfg.StaticURLs = []string{"https://central.xero.com/s/"}
	return cfg
}

func TestNewApp(t *testing.T) {
	app := NewApp(testConfig(), buildinfo.DefaultInfo(), zap.NewNop())

	assert.NotNil(t, app)
	assert.NotNil(t, app.router)
	assert.NotNil(t, app.logger)
	assert.NotNil(t, app.handler)
	assert.NotNil(t, app.registry)
}

func TestGetServer(t *testing.T) {
	cfg := testConfig()
	cfg.WriteTimeout = 5 * time.Minute
	app := NewApp(cfg, buildinfo.DefaultInfo(), zap.NewNop())

	server := app.GetServer()

	assert.Equal(t, cfg.ServerAddress, server.Addr)
	assert.Equal(t, 5*time.Minute, server.WriteTimeout)
	assert.NotNil(t, server.Handler)
}

func TestAppRoutes(t *testing.T) {
	app := NewAppWithService(testConfig(), &stubService{}, prometheus.NewRegistry(), zap.NewNop())

	tests := []struct {
		name            string
		method          string
		path            string
		wantStatus      int
		wantContentType string
	}{
		{"GET /run-lighthouse", http.MethodGet, "/run-lighthouse", http.StatusOK, "text/csv"},
		{"GET /api/run-lighthouse", http.MethodGet, "/api/run-lighthouse", http.StatusOK, "text/csv"},
		{"DELETE /run-lighthouse", http.MethodDelete, "/run-lighthouse", http.StatusMethodNotAllowed, "application/json"},
		{"POST /run-lighthouse in static mode", http.MethodPost, "/run-lighthouse", http.StatusMethodNotAllowed, "application/json"},
		{"GET /ping", http.MethodGet, "/ping", http.StatusOK, ""},
		{"GET /unknown", http.MethodGet, "/unknown", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			app.router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantContentType != "" {
				assert.Equal(t, tt.wantContentType, rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestAppMethodNotAllowedBody(t *testing.T) {
	app := NewAppWithService(testConfig(), &stubService{}, prometheus.NewRegistry(), zap.NewNop())

	req := httptest.NewRequest(http.MethodDelete, "/run-lighthouse", nil)
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Method not allowed. Please use GET.", body["error"])
}

func TestAppCORS(t *testing.T) {
	tests := []struct {
		name       string
		enableCORS bool
		wantOrigin string
	}{
		{"CORS enabled", true, "*"},
		{"CORS disabled", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.EnableCORS = tt.enableCORS
			app := NewAppWithService(cfg, &stubService{}, prometheus.NewRegistry(), zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/run-lighthouse", nil)
			req.Header.Set("Origin", "https://reports.example")
			rr := httptest.NewRecorder()
			app.router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAppCORSPreflight(t *testing.T) {
	app := NewAppWithService(testConfig(), &stubService{}, prometheus.NewRegistry(), zap.NewNop())

	req := httptest.NewRequest(http.MethodOptions, "/run-lighthouse", nil)
	req.Header.Set("Origin", "https://reports.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodGet, rr.Header().Get("Access-Control-Allow-Methods"))
}

func TestAppPingFailure(t *testing.T) {
	svc := &stubService{pingErr: assert.AnError}
	app := NewAppWithService(testConfig(), svc, prometheus.NewRegistry(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAppMetricsEndpoint(t *testing.T) {
	app := NewApp(testConfig(), buildinfo.DefaultInfo(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
	assert.Contains(t, rr.Body.String(), "lighthouse_runner_audit_retries_total")
	assert.Contains(t, rr.Body.String(), `lighthouse_runner_build_info{commit="N/A",date="N/A",version="N/A"} 1`)
}

func TestAppMetricsEndpointGzip(t *testing.T) {
	app := NewApp(testConfig(), buildinfo.DefaultInfo(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	app.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	// Один слой сжатия: после распаковки сразу текст метрик
	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "# HELP"), "unexpected body start: %q", string(body[:min(len(body), 16)]))
	assert.Contains(t, string(body), "lighthouse_runner_audit_retries_total")
}

func TestAppRunStopsOnCancel(t *testing.T) {
	app := NewAppWithService(testConfig(), &stubService{}, prometheus.NewRegistry(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}
