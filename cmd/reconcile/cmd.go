// Command reconcile recomputes every wallet balance for the given users from
// their transaction history and corrects any drift.
//
//	reconcile <uid> [uid...]
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/GregMSThompson/wallet-ledger/internal/bootstrap"
	"github.com/GregMSThompson/wallet-ledger/internal/config"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/ledger"
	"github.com/GregMSThompson/wallet-ledger/internal/services"
	"github.com/GregMSThompson/wallet-ledger/internal/store"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	flag.Parse()
	uids := flag.Args()

	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	if len(uids) == 0 {
		slog.Error("usage: reconcile <uid> [uid...]")
		os.Exit(2)
	}
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)

	wstore := store.NewWalletStore(bs.Firestore)
	runner := ledger.NewRunner(store.NewLedgerStore(bs.Firestore), cfg.LedgerMaxAttempts, cfg.LedgerRetryBackoff)
	rserv := services.NewReconcileService(runner, wstore)

	failed := false
	for _, uid := range uids {
		log, ctx := logger.With(logger.ToContext(context.Background(), bs.Log), "uid", uid)

		results, err := rserv.ReconcileAll(ctx, uid)
		corrected := 0
		for _, r := range results {
			if r.Corrected {
				corrected++
			}
		}

		var partial *errs.PartialFailureError
		switch {
		case errors.As(err, &partial):
			log.Error("reconcile incomplete", "wallets", len(results), "corrected", corrected, "failed", partial.Failed)
			failed = true
		case err != nil:
			log.Error("reconcile failed", "error", err)
			failed = true
		default:
			log.Info("reconcile finished", "wallets", len(results), "corrected", corrected)
		}
	}
	// os.Exit skips deferred calls
	bs.Close()
	if failed {
		os.Exit(1)
	}
}
