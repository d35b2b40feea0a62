package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/middleware"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/internal/response"
)

type debtService interface {
	CreateDebt(ctx context.Context, uid string, req dto.CreateDebtRequest) (*models.Debt, error)
	GetDebt(ctx context.Context, uid, debtID string) (*models.Debt, error)
	ListDebts(ctx context.Context, uid string) ([]*models.Debt, error)
	UpdateDebt(ctx context.Context, uid, debtID string, req dto.UpdateDebtRequest) (*models.Debt, error)
	DeleteDebt(ctx context.Context, uid, debtID string) error
	RecordPayment(ctx context.Context, uid, debtID string, req dto.PaymentRequest) (*dto.PaymentResult, error)
}

type debtHandlers struct {
	ResponseHandler response.ResponseHandler
	DebtSvc         debtService
}

func NewDebtHandlers(deps *Deps) *debtHandlers {
	return &debtHandlers{
		ResponseHandler: deps.ResponseHandler,
		DebtSvc:         deps.DebtSvc,
	}
}

func (h *debtHandlers) DebtRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListDebts)
	r.Post("/", h.CreateDebt)
	r.Get("/{debtId}", h.GetDebt)
	r.Put("/{debtId}", h.UpdateDebt)
	r.Delete("/{debtId}", h.DeleteDebt)
	r.Post("/{debtId}/payments", h.RecordPayment)
	return r
}

func (h *debtHandlers) ListDebts(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	debts, err := h.DebtSvc.ListDebts(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, debts)
}

func (h *debtHandlers) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	debt, err := h.DebtSvc.CreateDebt(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, debt)
}

func (h *debtHandlers) GetDebt(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	uid := middleware.UID(r.Context())
	debt, err := h.DebtSvc.GetDebt(r.Context(), uid, debtID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, debt)
}

func (h *debtHandlers) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	var req dto.UpdateDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	debt, err := h.DebtSvc.UpdateDebt(r.Context(), uid, debtID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, debt)
}

func (h *debtHandlers) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	uid := middleware.UID(r.Context())
	if err := h.DebtSvc.DeleteDebt(r.Context(), uid, debtID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *debtHandlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	var req dto.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DebtSvc.RecordPayment(r.Context(), uid, debtID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}
