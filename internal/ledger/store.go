package ledger

import (
	"context"

	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

// Tx is one atomic unit of work over a user's wallets and transactions.
// Reads observe the unit's own staged writes. Nothing is visible to other
// readers until the unit commits, and a unit whose function returns an error
// commits nothing.
type Tx interface {
	GetWallet(walletID string) (*models.Wallet, error)
	PutWallet(w *models.Wallet) error
	DeleteWallet(walletID string) error
	GetTransaction(txID string) (*models.Transaction, error)
	PutTransaction(t *models.Transaction) error
	DeleteTransaction(txID string) error
	WalletTransactions(walletID string) ([]*models.Transaction, error)
}

// Store runs ledger units of work. A unit that lost a race with a concurrent
// writer fails with *errs.ConflictError and may be retried from scratch.
type Store interface {
	RunTx(ctx context.Context, uid string, fn func(ctx context.Context, tx Tx) error) error
}

// Reader is the raw, uncached read surface a backend hands to a StagedTx.
// Missing documents are reported as *errs.NotFoundError.
type Reader interface {
	ReadWallet(ctx context.Context, walletID string) (*models.Wallet, error)
	ReadTransaction(ctx context.Context, txID string) (*models.Transaction, error)
	ReadWalletTransactions(ctx context.Context, walletID string) ([]*models.Transaction, error)
}
