package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewNotFoundError("wallet not found"), http.StatusNotFound, "not_found"},
		{"already exists", errs.NewAlreadyExistsError("dup"), http.StatusConflict, "already_exists"},
		{"validation", errs.NewValidationError("bad"), http.StatusBadRequest, "invalid_input"},
		{"invalid amount", errs.NewInvalidAmountError("amount"), http.StatusBadRequest, "invalid_amount"},
		{"conflict", errs.NewConflictError("retry"), http.StatusConflict, "conflict"},
		{"partial failure", errs.NewPartialFailureError("reconcile", []string{"w1"}), http.StatusInternalServerError, "partial_failure"},
		{"database", errs.NewDatabaseError("get", "boom", errors.New("driver")), http.StatusInternalServerError, "internal_error"},
		{"wrapped not found", fmt.Errorf("load: %w", errs.NewNotFoundError("gone")), http.StatusNotFound, "not_found"},
		{"deadline", fmt.Errorf("ledger retry stopped: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "timeout"},
		{"canceled", fmt.Errorf("ledger retry stopped: %w", context.Canceled), statusClientClosedRequest, "canceled"},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError, "internal_error"},
	}

	h := New(logger.New("error", logger.NewTestHandler))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			h.HandleError(rr, req, tc.err)

			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tc.code {
				t.Fatalf("code = %q, want %q", body.Code, tc.code)
			}
		})
	}
}

func TestHandleErrorHidesDatabaseDetail(t *testing.T) {
	h := New(logger.New("error", logger.NewTestHandler))
	rr := httptest.NewRecorder()
	h.HandleError(rr, httptest.NewRequest(http.MethodGet, "/", nil), errs.NewDatabaseError("get", "failed to read users/abc", errors.New("rpc error")))

	var body ErrorResponse
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body.Message != "An error occurred" {
		t.Fatalf("database detail leaked: %q", body.Message)
	}
}

func TestHandleErrorPartialFailureListsFailed(t *testing.T) {
	h := New(logger.New("error", logger.NewTestHandler))
	rr := httptest.NewRecorder()
	h.HandleError(rr, httptest.NewRequest(http.MethodPost, "/", nil), errs.NewPartialFailureError("reconcile", []string{"a", "b"}))

	var body ErrorResponse
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if len(body.Failed) != 2 || body.Failed[0] != "a" {
		t.Fatalf("failed = %v", body.Failed)
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	h := New(logger.New("error", logger.NewTestHandler))
	rr := httptest.NewRecorder()
	h.WriteSuccess(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, map[string]int64{"balance": 42})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var env struct {
		Success bool             `json:"success"`
		Data    map[string]int64 `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data["balance"] != 42 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
