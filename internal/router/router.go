package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/wallet-ledger/internal/handlers"
	"github.com/GregMSThompson/wallet-ledger/internal/middleware"
)

// NewRouter wires every handler group. Everything except /healthz requires a
// Firebase ID token.
func NewRouter(deps *handlers.Deps, auth *middleware.Middleware, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(chimiddleware.Timeout(requestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	ush := handlers.NewUserHandlers(deps)
	wh := handlers.NewWalletHandlers(deps)
	th := handlers.NewTransactionHandlers(deps)
	bh := handlers.NewBudgetHandlers(deps)
	dh := handlers.NewDebtHandlers(deps)
	ch := handlers.NewCategoryHandlers(deps)
	gh := handlers.NewGoalHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		r.Mount("/users", ush.UserRoutes())
		r.Mount("/wallets", wh.WalletRoutes())
		r.Mount("/transactions", th.TransactionRoutes())
		r.Mount("/transfers", th.TransferRoutes())
		r.Mount("/budgets", bh.BudgetRoutes())
		r.Mount("/debts", dh.DebtRoutes())
		r.Mount("/categories", ch.CategoryRoutes())
		r.Mount("/savings-goals", gh.GoalRoutes())
	})
	return r
}
