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

type categoryService interface {
	CreateCategory(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context, uid string, kind *models.TransactionKind) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, uid, categoryID string) error
}

type categoryHandlers struct {
	ResponseHandler response.ResponseHandler
	CategorySvc     categoryService
}

func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		CategorySvc:     deps.CategorySvc,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCategories)
	r.Post("/", h.CreateCategory)
	r.Delete("/{categoryId}", h.DeleteCategory)
	return r
}

func (h *categoryHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	var kind *models.TransactionKind
	if v := r.URL.Query().Get("type"); v != "" {
		k := models.TransactionKind(v)
		kind = &k
	}
	uid := middleware.UID(r.Context())
	categories, err := h.CategorySvc.ListCategories(r.Context(), uid, kind)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, categories)
}

func (h *categoryHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	category, err := h.CategorySvc.CreateCategory(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, category)
}

func (h *categoryHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	uid := middleware.UID(r.Context())
	if err := h.CategorySvc.DeleteCategory(r.Context(), uid, categoryID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
