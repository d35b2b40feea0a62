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

type walletService interface {
	CreateWallet(ctx context.Context, uid string, req dto.CreateWalletRequest) (*models.Wallet, error)
	GetWallet(ctx context.Context, uid, walletID string) (*models.Wallet, error)
	ListWallets(ctx context.Context, uid string) ([]*models.Wallet, error)
	UpdateWallet(ctx context.Context, uid, walletID string, req dto.UpdateWalletRequest) (*models.Wallet, error)
	DeleteWallet(ctx context.Context, uid, walletID string) error
}

type reconcileService interface {
	ReconcileWallet(ctx context.Context, uid, walletID string) (*dto.ReconcileResult, error)
	ReconcileAll(ctx context.Context, uid string) ([]dto.ReconcileResult, error)
}

type walletHandlers struct {
	ResponseHandler response.ResponseHandler
	WalletSvc       walletService
	ReconcileSvc    reconcileService
}

func NewWalletHandlers(deps *Deps) *walletHandlers {
	return &walletHandlers{
		ResponseHandler: deps.ResponseHandler,
		WalletSvc:       deps.WalletSvc,
		ReconcileSvc:    deps.ReconcileSvc,
	}
}

func (h *walletHandlers) WalletRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListWallets)
	r.Post("/", h.CreateWallet)
	r.Post("/reconcile", h.ReconcileAll) // must be before /{walletId}
	r.Get("/{walletId}", h.GetWallet)
	r.Put("/{walletId}", h.UpdateWallet)
	r.Delete("/{walletId}", h.DeleteWallet)
	r.Post("/{walletId}/reconcile", h.ReconcileWallet)
	return r
}

func (h *walletHandlers) ListWallets(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	wallets, err := h.WalletSvc.ListWallets(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, wallets)
}

func (h *walletHandlers) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	wallet, err := h.WalletSvc.CreateWallet(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, wallet)
}

func (h *walletHandlers) GetWallet(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletId")
	uid := middleware.UID(r.Context())
	wallet, err := h.WalletSvc.GetWallet(r.Context(), uid, walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, wallet)
}

func (h *walletHandlers) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletId")
	var req dto.UpdateWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	wallet, err := h.WalletSvc.UpdateWallet(r.Context(), uid, walletID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, wallet)
}

func (h *walletHandlers) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletId")
	uid := middleware.UID(r.Context())
	if err := h.WalletSvc.DeleteWallet(r.Context(), uid, walletID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *walletHandlers) ReconcileWallet(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletId")
	uid := middleware.UID(r.Context())
	res, err := h.ReconcileSvc.ReconcileWallet(r.Context(), uid, walletID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *walletHandlers) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	results, err := h.ReconcileSvc.ReconcileAll(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, results)
}
