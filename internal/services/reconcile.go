package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/ledger"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

const defaultReconcileConcurrency = 4

type reconcileRSStore interface {
	ListWallets(ctx context.Context, uid string) ([]*models.Wallet, error)
}

type reconcileService struct {
	runner      ledgerRunner
	wallets     reconcileRSStore
	concurrency int
}

func NewReconcileService(runner ledgerRunner, wallets reconcileRSStore) *reconcileService {
	return &reconcileService{
		runner:      runner,
		wallets:     wallets,
		concurrency: defaultReconcileConcurrency,
	}
}

// ReconcileWallet recomputes the wallet balance from its transactions and
// rewrites the stored balance when the two disagree.
func (s *reconcileService) ReconcileWallet(ctx context.Context, uid, walletID string) (*dto.ReconcileResult, error) {
	log := logger.FromContext(ctx)

	var result dto.ReconcileResult
	err := s.runner.Run(ctx, uid, func(ctx context.Context, tx ledger.Tx) error {
		w, err := tx.GetWallet(walletID)
		if err != nil {
			return err
		}
		txs, err := tx.WalletTransactions(walletID)
		if err != nil {
			return err
		}

		computed := ledger.Sum(txs)
		result = dto.ReconcileResult{
			WalletID: walletID,
			Stored:   w.Balance,
			Computed: computed,
			Drift:    w.Balance - computed,
		}
		if result.Drift == 0 {
			return nil
		}

		w.Balance = computed
		w.UpdatedAt = time.Now().UTC()
		if err := tx.PutWallet(w); err != nil {
			return err
		}
		result.Corrected = true
		return nil
	})
	if err != nil {
		log.Error("wallet reconciliation failed", "wallet_id", walletID, "error", err)
		return nil, err
	}

	if result.Corrected {
		log.Warn("wallet balance drift corrected", "wallet_id", walletID, "stored", result.Stored, "computed", result.Computed, "drift", result.Drift)
	} else {
		log.Info("wallet reconciled", "wallet_id", walletID, "balance", result.Computed)
	}
	return &result, nil
}

// ReconcileAll sweeps every wallet of the user. Wallets that fail do not stop
// the sweep; they are reported together in a PartialFailureError alongside
// the results that succeeded.
func (s *reconcileService) ReconcileAll(ctx context.Context, uid string) ([]dto.ReconcileResult, error) {
	wallets, err := s.wallets.ListWallets(ctx, uid)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results = make([]*dto.ReconcileResult, len(wallets))
		failed  []string
	)

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, w := range wallets {
		g.Go(func() error {
			res, err := s.ReconcileWallet(ctx, uid, w.WalletID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, w.WalletID)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	out := make([]dto.ReconcileResult, 0, len(wallets))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	if len(failed) > 0 {
		sort.Strings(failed)
		return out, errs.NewPartialFailureError("reconcile", failed)
	}
	return out, nil
}
