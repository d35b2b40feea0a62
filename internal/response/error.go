package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

// statusClientClosedRequest reports a request the client abandoned.
const statusClientClosedRequest = 499

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Failed  []string `json:"failed,omitempty"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeError(w, r, status, ErrorResponse{Code: code, Message: message})
}

func (h *responseHandler) writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Use context logger if encoding fails
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", body.Code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		notFound      *errs.NotFoundError
		alreadyExists *errs.AlreadyExistsError
		validation    *errs.ValidationError
		invalidAmount *errs.InvalidAmountError
		conflict      *errs.ConflictError
		partial       *errs.PartialFailureError
		database      *errs.DatabaseError
	)

	switch {
	case errors.As(err, &notFound):
		log.Warn("resource not found", "error", notFound.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", notFound.Message)

	case errors.As(err, &alreadyExists):
		log.Warn("resource already exists", "error", alreadyExists.Message)
		h.WriteError(w, r, http.StatusConflict, "already_exists", alreadyExists.Message)

	case errors.As(err, &validation):
		log.Warn("validation failed", "error", validation.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validation.Message)

	case errors.As(err, &invalidAmount):
		log.Warn("invalid amount", "error", invalidAmount.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_amount", invalidAmount.Message)

	case errors.As(err, &conflict):
		log.Warn("concurrent modification", "error", conflict.Message)
		h.WriteError(w, r, http.StatusConflict, "conflict", conflict.Message)

	case errors.As(err, &partial):
		log.Error("partial failure",
			"operation", partial.Operation,
			"failed", partial.Failed)
		h.writeError(w, r, http.StatusInternalServerError, ErrorResponse{
			Code:    "partial_failure",
			Message: partial.Message,
			Failed:  partial.Failed,
		})

	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("request timed out", "error", err)
		h.WriteError(w, r, http.StatusGatewayTimeout, "timeout", "The request timed out")

	case errors.Is(err, context.Canceled):
		log.Info("request canceled", "error", err)
		h.WriteError(w, r, statusClientClosedRequest, "canceled", "The request was canceled")

	case errors.As(err, &database):
		log.Error("database error",
			"operation", database.Operation,
			"error", database.Message,
			"cause", database.Err)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
