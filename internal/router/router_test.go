package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/handlers"
	"github.com/GregMSThompson/wallet-ledger/internal/middleware"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/internal/response"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

type rejectAll struct{}

func (rejectAll) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return nil, errors.New("no")
}

type acceptAll struct{}

func (acceptAll) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return &auth.Token{UID: "uid-1"}, nil
}

type stubWallets struct {
	uid, id string
}

func (s *stubWallets) CreateWallet(context.Context, string, dto.CreateWalletRequest) (*models.Wallet, error) {
	return nil, nil
}

func (s *stubWallets) GetWallet(_ context.Context, uid, walletID string) (*models.Wallet, error) {
	s.uid, s.id = uid, walletID
	return &models.Wallet{WalletID: walletID}, nil
}

func (s *stubWallets) ListWallets(context.Context, string) ([]*models.Wallet, error) {
	return nil, nil
}

func (s *stubWallets) UpdateWallet(context.Context, string, string, dto.UpdateWalletRequest) (*models.Wallet, error) {
	return nil, nil
}

func (s *stubWallets) DeleteWallet(context.Context, string, string) error { return nil }

func newDeps(wallets *stubWallets) *handlers.Deps {
	log := logger.New("error", logger.NewTestHandler)
	return &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		WalletSvc:       wallets,
	}
}

func TestHealthzIsPublic(t *testing.T) {
	r := NewRouter(newDeps(&stubWallets{}), middleware.NewMiddleware(rejectAll{}), 0)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	r := NewRouter(newDeps(&stubWallets{}), middleware.NewMiddleware(rejectAll{}), 0)

	for _, path := range []string{"/wallets", "/transactions", "/budgets/2024-03", "/debts", "/categories", "/savings-goals", "/users/me"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer bad")
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", path, rr.Code)
		}
	}
}

func TestWalletRouteScopedToToken(t *testing.T) {
	wallets := &stubWallets{}
	r := NewRouter(newDeps(wallets), middleware.NewMiddleware(acceptAll{}), 0)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/wallets/w9", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if wallets.uid != "uid-1" || wallets.id != "w9" {
		t.Fatalf("service called with uid=%q id=%q", wallets.uid, wallets.id)
	}
}
