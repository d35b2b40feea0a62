package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type fakeReader struct {
	wallets     map[string]*models.Wallet
	txs         map[string]*models.Transaction
	walletReads int
	err         error
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		wallets: make(map[string]*models.Wallet),
		txs:     make(map[string]*models.Transaction),
	}
}

func (f *fakeReader) ReadWallet(_ context.Context, walletID string) (*models.Wallet, error) {
	f.walletReads++
	if f.err != nil {
		return nil, f.err
	}
	w, ok := f.wallets[walletID]
	if !ok {
		return nil, errs.NewNotFoundError("wallet not found")
	}
	cp := *w
	return &cp, nil
}

func (f *fakeReader) ReadTransaction(_ context.Context, txID string) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.txs[txID]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	cp := *t
	return &cp, nil
}

func (f *fakeReader) ReadWalletTransactions(_ context.Context, walletID string) ([]*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Transaction
	for _, t := range f.txs {
		if t.WalletID == walletID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func TestStagedTxCachesReads(t *testing.T) {
	r := newFakeReader()
	r.wallets["w1"] = &models.Wallet{WalletID: "w1", Balance: 10}
	tx := NewStagedTx(t.Context(), r)

	for i := 0; i < 3; i++ {
		if _, err := tx.GetWallet("w1"); err != nil {
			t.Fatalf("GetWallet: %v", err)
		}
	}
	if r.walletReads != 1 {
		t.Fatalf("backend read %d times, want 1", r.walletReads)
	}
}

func TestStagedTxReadYourWrites(t *testing.T) {
	r := newFakeReader()
	r.wallets["w1"] = &models.Wallet{WalletID: "w1", Balance: 10, Version: 2}
	tx := NewStagedTx(t.Context(), r)

	w, _ := tx.GetWallet("w1")
	w.Balance = 99
	if err := tx.PutWallet(w); err != nil {
		t.Fatalf("PutWallet: %v", err)
	}

	got, _ := tx.GetWallet("w1")
	if got.Balance != 99 || got.Version != 3 {
		t.Fatalf("staged wallet = %+v, want balance 99 version 3", got)
	}
	if r.wallets["w1"].Balance != 10 {
		t.Fatalf("backend was written before commit")
	}

	// a second write in the same unit still bumps from the read version
	got.Balance = 100
	_ = tx.PutWallet(got)
	again, _ := tx.GetWallet("w1")
	if again.Version != 3 {
		t.Fatalf("version = %d, want 3", again.Version)
	}
}

func TestStagedTxReturnsCopies(t *testing.T) {
	r := newFakeReader()
	r.wallets["w1"] = &models.Wallet{WalletID: "w1", Balance: 10}
	tx := NewStagedTx(t.Context(), r)

	w, _ := tx.GetWallet("w1")
	w.Balance = 5000

	again, _ := tx.GetWallet("w1")
	if again.Balance != 10 {
		t.Fatalf("mutating a returned wallet leaked into the unit: %d", again.Balance)
	}
}

func TestStagedTxDelete(t *testing.T) {
	r := newFakeReader()
	r.txs["t1"] = &models.Transaction{TransactionID: "t1", WalletID: "w1", Version: 1}
	tx := NewStagedTx(t.Context(), r)

	if err := tx.DeleteTransaction("t1"); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, err := tx.GetTransaction("t1"); !errs.IsNotFound(err) {
		t.Fatalf("deleted transaction still visible: %v", err)
	}
	if err := tx.DeleteTransaction("t1"); !errs.IsNotFound(err) {
		t.Fatalf("second delete = %v, want NotFound", err)
	}
	if err := tx.DeleteWallet("nope"); !errs.IsNotFound(err) {
		t.Fatalf("DeleteWallet on missing wallet = %v, want NotFound", err)
	}

	entries := tx.TransactionEntries()
	if len(entries) != 1 || !entries[0].Dirty || entries[0].Transaction != nil || !entries[0].Existed {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestStagedTxWalletTransactionsMergesStaged(t *testing.T) {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	r := newFakeReader()
	r.txs["old"] = &models.Transaction{TransactionID: "old", WalletID: "w1", Kind: models.KindIncome, Amount: 100, OccurredAt: base}
	r.txs["gone"] = &models.Transaction{TransactionID: "gone", WalletID: "w1", Kind: models.KindIncome, Amount: 7, OccurredAt: base.Add(time.Hour)}
	r.txs["moved"] = &models.Transaction{TransactionID: "moved", WalletID: "w1", Kind: models.KindExpense, Amount: 5, OccurredAt: base.Add(2 * time.Hour)}
	r.txs["other"] = &models.Transaction{TransactionID: "other", WalletID: "w2", Kind: models.KindIncome, Amount: 1, OccurredAt: base}
	tx := NewStagedTx(t.Context(), r)

	_ = tx.DeleteTransaction("gone")
	moved, _ := tx.GetTransaction("moved")
	moved.WalletID = "w2"
	_ = tx.PutTransaction(moved)
	_ = tx.PutTransaction(&models.Transaction{TransactionID: "new", WalletID: "w1", Kind: models.KindExpense, Amount: 30, OccurredAt: base.Add(-time.Hour)})

	got, err := tx.WalletTransactions("w1")
	if err != nil {
		t.Fatalf("WalletTransactions: %v", err)
	}
	if len(got) != 2 || got[0].TransactionID != "new" || got[1].TransactionID != "old" {
		ids := make([]string, 0, len(got))
		for _, g := range got {
			ids = append(ids, g.TransactionID)
		}
		t.Fatalf("WalletTransactions = %v, want [new old]", ids)
	}
	if Sum(got) != 70 {
		t.Fatalf("Sum = %d, want 70", Sum(got))
	}
}

func TestStagedTxPropagatesBackendErrors(t *testing.T) {
	r := newFakeReader()
	r.err = errors.New("backend down")
	tx := NewStagedTx(t.Context(), r)

	if _, err := tx.GetWallet("w1"); !errors.Is(err, r.err) {
		t.Fatalf("GetWallet err = %v, want backend error", err)
	}
	if _, err := tx.GetTransaction("t1"); !errors.Is(err, r.err) {
		t.Fatalf("GetTransaction err = %v, want backend error", err)
	}
}
