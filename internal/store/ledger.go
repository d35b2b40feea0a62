package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/ledger"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

// ledgerStore commits ledger units as single Firestore transactions. The
// transaction is given one attempt; contention is reported as a conflict and
// retried by ledger.Runner, which owns the retry budget.
type ledgerStore struct {
	client *firestore.Client
}

func NewLedgerStore(client *firestore.Client) *ledgerStore {
	return &ledgerStore{client: client}
}

func (s *ledgerStore) wallets(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("wallets")
}

func (s *ledgerStore) txs(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *ledgerStore) RunTx(ctx context.Context, uid string, fn func(ctx context.Context, tx ledger.Tx) error) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, ftx *firestore.Transaction) error {
		staged := ledger.NewStagedTx(ctx, &firestoreReader{
			ftx:     ftx,
			wallets: s.wallets(uid),
			txs:     s.txs(uid),
		})
		if err := fn(ctx, staged); err != nil {
			return err
		}
		return s.flush(ftx, uid, staged)
	}, firestore.MaxAttempts(1))
	return classifyTxError("ledger", err)
}

func (s *ledgerStore) flush(ftx *firestore.Transaction, uid string, staged *ledger.StagedTx) error {
	for _, e := range staged.WalletEntries() {
		if !e.Dirty {
			continue
		}
		ref := s.wallets(uid).Doc(e.WalletID)
		var err error
		if e.Wallet == nil {
			err = ftx.Delete(ref)
		} else {
			err = ftx.Set(ref, e.Wallet)
		}
		if err != nil {
			return errs.NewDatabaseError("write", "failed to stage wallet write", err)
		}
	}
	for _, e := range staged.TransactionEntries() {
		if !e.Dirty {
			continue
		}
		ref := s.txs(uid).Doc(e.TransactionID)
		var err error
		if e.Transaction == nil {
			err = ftx.Delete(ref)
		} else {
			err = ftx.Set(ref, e.Transaction)
		}
		if err != nil {
			return errs.NewDatabaseError("write", "failed to stage transaction write", err)
		}
	}
	return nil
}

type firestoreReader struct {
	ftx     *firestore.Transaction
	wallets *firestore.CollectionRef
	txs     *firestore.CollectionRef
}

func (r *firestoreReader) ReadWallet(_ context.Context, walletID string) (*models.Wallet, error) {
	snap, err := r.ftx.Get(r.wallets.Doc(walletID))
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("wallet not found")
		}
		return nil, err
	}
	var w models.Wallet
	if err := snap.DataTo(&w); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse wallet data", err)
	}
	return &w, nil
}

func (r *firestoreReader) ReadTransaction(_ context.Context, txID string) (*models.Transaction, error) {
	snap, err := r.ftx.Get(r.txs.Doc(txID))
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, err
	}
	var t models.Transaction
	if err := snap.DataTo(&t); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return &t, nil
}

func (r *firestoreReader) ReadWalletTransactions(_ context.Context, walletID string) ([]*models.Transaction, error) {
	docs, err := r.ftx.Documents(r.txs.Where("walletId", "==", walletID)).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*models.Transaction, 0, len(docs))
	for _, d := range docs {
		var t models.Transaction
		if err := d.DataTo(&t); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		out = append(out, &t)
	}
	return out, nil
}
