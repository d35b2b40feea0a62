package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/middleware"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/internal/response"
)

const (
	dateLayout       = "2006-01-02"
	maxListLimit     = 500
	defaultListLimit = 100
)

type transactionService interface {
	CreateTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error)
	GetTransaction(ctx context.Context, uid, txID string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error)
	UpdateTransaction(ctx context.Context, uid, txID string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, uid, txID string) error
	Transfer(ctx context.Context, uid string, req dto.TransferRequest) (*dto.TransferResult, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTransactions)
	r.Post("/", h.CreateTransaction)
	r.Get("/{transactionId}", h.GetTransaction)
	r.Put("/{transactionId}", h.UpdateTransaction)
	r.Delete("/{transactionId}", h.DeleteTransaction)
	return r
}

func (h *transactionHandlers) TransferRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Transfer)
	return r
}

// parseTransactionQuery reads the list filters. startDate and endDate are
// calendar days in UTC and both are inclusive.
func parseTransactionQuery(values url.Values) (dto.TransactionQuery, error) {
	q := dto.TransactionQuery{Limit: defaultListLimit}

	if v := values.Get("walletId"); v != "" {
		q.WalletID = &v
	}
	if v := values.Get("type"); v != "" {
		kind := models.TransactionKind(v)
		if !kind.Valid() {
			return q, errs.NewValidationError("type must be one of income, expense, bill")
		}
		q.Kind = &kind
	}
	if v := values.Get("category"); v != "" {
		q.Category = &v
	}
	if v := values.Get("startDate"); v != "" {
		start, err := time.Parse(dateLayout, v)
		if err != nil {
			return q, errs.NewValidationError("startDate must be YYYY-MM-DD")
		}
		q.From = &start
	}
	if v := values.Get("endDate"); v != "" {
		end, err := time.Parse(dateLayout, v)
		if err != nil {
			return q, errs.NewValidationError("endDate must be YYYY-MM-DD")
		}
		until := end.AddDate(0, 0, 1)
		q.Until = &until
	}
	if q.From != nil && q.Until != nil && !q.From.Before(*q.Until) {
		return q, errs.NewValidationError("startDate must not be after endDate")
	}
	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxListLimit {
			return q, errs.NewValidationError("limit must be between 1 and " + strconv.Itoa(maxListLimit))
		}
		q.Limit = limit
	}
	return q, nil
}

func (h *transactionHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q, err := parseTransactionQuery(r.URL.Query())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	txs, err := h.TransactionSvc.ListTransactions(r.Context(), uid, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.CreateTransaction(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.GetTransaction(r.Context(), uid, txID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionId")
	var req dto.UpdateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.UpdateTransaction(r.Context(), uid, txID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	if err := h.TransactionSvc.DeleteTransaction(r.Context(), uid, txID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *transactionHandlers) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.TransactionSvc.Transfer(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, res)
}
