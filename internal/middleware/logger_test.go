package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{"Success is logged at info", http.StatusOK, zapcore.InfoLevel},
		{"Client error is logged at info", http.StatusMethodNotAllowed, zapcore.InfoLevel},
		{"Server error is logged at error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})

			req := httptest.NewRequest(http.MethodGet, "/run-lighthouse", nil)
			w := httptest.NewRecorder()

			chimiddleware.RequestID(LoggerMiddleware(zap.New(core))(handler)).ServeHTTP(w, req)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, "Request processed", entry.Message)

			fields := entry.ContextMap()
			assert.Equal(t, "/run-lighthouse", fields["path"])
			assert.Equal(t, "GET", fields["method"])
			assert.EqualValues(t, tt.status, fields["status"])
			assert.EqualValues(t, 4, fields["size"])
			assert.NotEmpty(t, fields["request_id"])
		})
	}
}
