package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/wallet-ledger/internal/bootstrap"
	"github.com/GregMSThompson/wallet-ledger/internal/config"
	"github.com/GregMSThompson/wallet-ledger/internal/handlers"
	"github.com/GregMSThompson/wallet-ledger/internal/ledger"
	"github.com/GregMSThompson/wallet-ledger/internal/middleware"
	"github.com/GregMSThompson/wallet-ledger/internal/response"
	"github.com/GregMSThompson/wallet-ledger/internal/router"
	"github.com/GregMSThompson/wallet-ledger/internal/services"
	"github.com/GregMSThompson/wallet-ledger/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	wstore := store.NewWalletStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	bstore := store.NewBudgetStore(bs.Firestore)
	dstore := store.NewDebtStore(bs.Firestore)
	cstore := store.NewCategoryStore(bs.Firestore)
	gstore := store.NewGoalStore(bs.Firestore)
	runner := ledger.NewRunner(store.NewLedgerStore(bs.Firestore), cfg.LedgerMaxAttempts, cfg.LedgerRetryBackoff)

	// services
	userv := services.NewUserService(ustore)
	wserv := services.NewWalletService(runner, wstore)
	rserv := services.NewReconcileService(runner, wstore)
	tserv := services.NewTransactionService(runner, tstore)
	bserv := services.NewBudgetService(bstore, tstore)
	dserv := services.NewDebtService(dstore)
	cserv := services.NewCategoryService(cstore)
	gserv := services.NewGoalService(gstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.WalletSvc = wserv
	deps.ReconcileSvc = rserv
	deps.TransactionSvc = tserv
	deps.BudgetSvc = bserv
	deps.DebtSvc = dserv
	deps.CategorySvc = cserv
	deps.GoalSvc = gserv

	// router
	r := router.NewRouter(deps, middleware.NewMiddleware(bs.Firebase), cfg.RequestTimeout)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
