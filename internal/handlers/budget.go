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

type budgetService interface {
	ReplaceAllocations(ctx context.Context, uid, month string, allocations []models.BudgetAllocation) (*models.Budget, error)
	ListBudgets(ctx context.Context, uid string) ([]*models.Budget, error)
	GetAllocationsWithSpent(ctx context.Context, uid, month string) (*dto.BudgetSummary, error)
}

type budgetHandlers struct {
	ResponseHandler response.ResponseHandler
	BudgetSvc       budgetService
}

func NewBudgetHandlers(deps *Deps) *budgetHandlers {
	return &budgetHandlers{
		ResponseHandler: deps.ResponseHandler,
		BudgetSvc:       deps.BudgetSvc,
	}
}

func (h *budgetHandlers) BudgetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListBudgets)
	r.Get("/{month}", h.GetBudget)
	r.Put("/{month}", h.ReplaceBudget)
	return r
}

func (h *budgetHandlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	budgets, err := h.BudgetSvc.ListBudgets(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, budgets)
}

// GetBudget returns the month's allocations with spent amounts derived from
// the month's expense transactions.
func (h *budgetHandlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	uid := middleware.UID(r.Context())
	summary, err := h.BudgetSvc.GetAllocationsWithSpent(r.Context(), uid, month)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

func (h *budgetHandlers) ReplaceBudget(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	var req dto.ReplaceBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	budget, err := h.BudgetSvc.ReplaceAllocations(r.Context(), uid, month, req.Allocations)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, budget)
}
