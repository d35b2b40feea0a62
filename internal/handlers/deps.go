package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
	WalletSvc       walletService
	ReconcileSvc    reconcileService
	TransactionSvc  transactionService
	BudgetSvc       budgetService
	DebtSvc         debtService
	CategorySvc     categoryService
	GoalSvc         goalService
	Firebase        *auth.Client
}

// decodeJSON reads the request body into v. A malformed body is the
// caller's fault, so it is reported as a validation error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
