package ledger

import (
	"context"
	"sort"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

// WalletEntry is the state of one wallet as seen by a staged unit: what was
// read from the backend and, if Dirty, what should be committed. A nil Wallet
// on a dirty entry is a delete.
type WalletEntry struct {
	WalletID    string
	Existed     bool
	ReadVersion int64
	Dirty       bool
	Wallet      *models.Wallet
}

type TransactionEntry struct {
	TransactionID string
	Existed       bool
	ReadVersion   int64
	Dirty         bool
	Transaction   *models.Transaction
}

// StagedTx implements Tx by caching reads and buffering writes in memory.
// Backends commit the result by walking WalletEntries and TransactionEntries.
// Buffering keeps every backend read ahead of every backend write, which
// Firestore transactions require.
type StagedTx struct {
	ctx     context.Context
	reader  Reader
	wallets map[string]*WalletEntry
	txs     map[string]*TransactionEntry
	order   []string // transaction ids in first-seen order
}

func NewStagedTx(ctx context.Context, reader Reader) *StagedTx {
	return &StagedTx{
		ctx:     ctx,
		reader:  reader,
		wallets: make(map[string]*WalletEntry),
		txs:     make(map[string]*TransactionEntry),
	}
}

func (s *StagedTx) loadWallet(walletID string) (*WalletEntry, error) {
	if e, ok := s.wallets[walletID]; ok {
		return e, nil
	}
	e := &WalletEntry{WalletID: walletID}
	w, err := s.reader.ReadWallet(s.ctx, walletID)
	switch {
	case err == nil:
		e.Existed = true
		e.ReadVersion = w.Version
		e.Wallet = w
	case errs.IsNotFound(err):
	default:
		return nil, err
	}
	s.wallets[walletID] = e
	return e, nil
}

func (s *StagedTx) cacheTransaction(t *models.Transaction) *TransactionEntry {
	if e, ok := s.txs[t.TransactionID]; ok {
		return e
	}
	e := &TransactionEntry{
		TransactionID: t.TransactionID,
		Existed:       true,
		ReadVersion:   t.Version,
		Transaction:   t,
	}
	s.txs[t.TransactionID] = e
	s.order = append(s.order, t.TransactionID)
	return e
}

func (s *StagedTx) loadTransaction(txID string) (*TransactionEntry, error) {
	if e, ok := s.txs[txID]; ok {
		return e, nil
	}
	t, err := s.reader.ReadTransaction(s.ctx, txID)
	switch {
	case err == nil:
		return s.cacheTransaction(t), nil
	case errs.IsNotFound(err):
		e := &TransactionEntry{TransactionID: txID}
		s.txs[txID] = e
		s.order = append(s.order, txID)
		return e, nil
	default:
		return nil, err
	}
}

func (s *StagedTx) GetWallet(walletID string) (*models.Wallet, error) {
	e, err := s.loadWallet(walletID)
	if err != nil {
		return nil, err
	}
	if e.Wallet == nil {
		return nil, errs.NewNotFoundError("wallet not found")
	}
	w := *e.Wallet
	return &w, nil
}

func (s *StagedTx) PutWallet(w *models.Wallet) error {
	e, err := s.loadWallet(w.WalletID)
	if err != nil {
		return err
	}
	staged := *w
	staged.Version = e.ReadVersion + 1
	e.Wallet = &staged
	e.Dirty = true
	return nil
}

func (s *StagedTx) DeleteWallet(walletID string) error {
	e, err := s.loadWallet(walletID)
	if err != nil {
		return err
	}
	if e.Wallet == nil {
		return errs.NewNotFoundError("wallet not found")
	}
	e.Wallet = nil
	e.Dirty = true
	return nil
}

func (s *StagedTx) GetTransaction(txID string) (*models.Transaction, error) {
	e, err := s.loadTransaction(txID)
	if err != nil {
		return nil, err
	}
	if e.Transaction == nil {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	t := *e.Transaction
	return &t, nil
}

func (s *StagedTx) PutTransaction(t *models.Transaction) error {
	e, err := s.loadTransaction(t.TransactionID)
	if err != nil {
		return err
	}
	staged := *t
	staged.Version = e.ReadVersion + 1
	e.Transaction = &staged
	e.Dirty = true
	return nil
}

func (s *StagedTx) DeleteTransaction(txID string) error {
	e, err := s.loadTransaction(txID)
	if err != nil {
		return err
	}
	if e.Transaction == nil {
		return errs.NewNotFoundError("transaction not found")
	}
	e.Transaction = nil
	e.Dirty = true
	return nil
}

// WalletTransactions returns the wallet's transactions as they will look after
// commit, oldest first.
func (s *StagedTx) WalletTransactions(walletID string) ([]*models.Transaction, error) {
	stored, err := s.reader.ReadWalletTransactions(s.ctx, walletID)
	if err != nil {
		return nil, err
	}
	for _, t := range stored {
		s.cacheTransaction(t)
	}

	out := make([]*models.Transaction, 0, len(stored))
	for _, id := range s.order {
		e := s.txs[id]
		if e.Transaction == nil || e.Transaction.WalletID != walletID {
			continue
		}
		t := *e.Transaction
		out = append(out, &t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}

func (s *StagedTx) WalletEntries() []WalletEntry {
	out := make([]WalletEntry, 0, len(s.wallets))
	for _, e := range s.wallets {
		out = append(out, *e)
	}
	return out
}

func (s *StagedTx) TransactionEntries() []TransactionEntry {
	out := make([]TransactionEntry, 0, len(s.txs))
	for _, id := range s.order {
		out = append(out, *s.txs[id])
	}
	return out
}
