package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func TestLoggerMiddleware(t *testing.T) {
	capture := &captureHandler{}
	m := NewLoggerMiddleware(slog.New(capture))

	var fromCtx *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	chimiddleware.RequestID(m.LoggerMiddleware(next)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/wallets", nil))

	if fromCtx == nil || fromCtx == slog.Default() {
		t.Fatal("request logger not placed in context")
	}
	if len(capture.records) != 1 {
		t.Fatalf("records = %d, want 1", len(capture.records))
	}
	rec := capture.records[0]
	if rec.Message != "request completed" || rec.Level != slog.LevelInfo {
		t.Fatalf("unexpected record: %s %s", rec.Level, rec.Message)
	}
	var status int64
	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == "status" {
			status = a.Value.Int64()
		}
		return true
	})
	if status != http.StatusTeapot {
		t.Fatalf("status attr = %d", status)
	}
}
