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

type goalService interface {
	CreateGoal(ctx context.Context, uid string, req dto.CreateGoalRequest) (*models.SavingsGoal, error)
	ListGoals(ctx context.Context, uid string) ([]*models.SavingsGoal, error)
	UpdateGoal(ctx context.Context, uid, goalID string, req dto.UpdateGoalRequest) (*models.SavingsGoal, error)
	DeleteGoal(ctx context.Context, uid, goalID string) error
}

type goalHandlers struct {
	ResponseHandler response.ResponseHandler
	GoalSvc         goalService
}

func NewGoalHandlers(deps *Deps) *goalHandlers {
	return &goalHandlers{
		ResponseHandler: deps.ResponseHandler,
		GoalSvc:         deps.GoalSvc,
	}
}

func (h *goalHandlers) GoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListGoals)
	r.Post("/", h.CreateGoal)
	r.Put("/{goalId}", h.UpdateGoal)
	r.Delete("/{goalId}", h.DeleteGoal)
	return r
}

func (h *goalHandlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	goals, err := h.GoalSvc.ListGoals(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goals)
}

func (h *goalHandlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	goal, err := h.GoalSvc.CreateGoal(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, goal)
}

func (h *goalHandlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalId")
	var req dto.UpdateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	goal, err := h.GoalSvc.UpdateGoal(r.Context(), uid, goalID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalId")
	uid := middleware.UID(r.Context())
	if err := h.GoalSvc.DeleteGoal(r.Context(), uid, goalID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
