// Package memory is an in-process ledger store. It enforces the same
// optimistic-concurrency contract as the Firestore store: every unit records
// the versions it read and its commit fails with a conflict when any of them
// changed underneath it.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/ledger"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type userData struct {
	wallets map[string]models.Wallet
	txs     map[string]models.Transaction
}

type Store struct {
	mu    sync.RWMutex
	users map[string]*userData

	// beforeCommit, when set, runs after a unit's function returns and before
	// its commit is validated. Tests use it to interleave writers.
	beforeCommit func(uid string)
}

func New() *Store {
	return &Store{users: make(map[string]*userData)}
}

// BeforeCommit installs a hook that runs between a unit's reads and its commit.
func (s *Store) BeforeCommit(hook func(uid string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeCommit = hook
}

func (s *Store) user(uid string) *userData {
	u, ok := s.users[uid]
	if !ok {
		u = &userData{
			wallets: make(map[string]models.Wallet),
			txs:     make(map[string]models.Transaction),
		}
		s.users[uid] = u
	}
	return u
}

func (s *Store) RunTx(ctx context.Context, uid string, fn func(ctx context.Context, tx ledger.Tx) error) error {
	staged := ledger.NewStagedTx(ctx, &reader{store: s, uid: uid})
	if err := fn(ctx, staged); err != nil {
		return err
	}

	s.mu.RLock()
	hook := s.beforeCommit
	s.mu.RUnlock()
	if hook != nil {
		hook(uid)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(uid, staged)
}

func (s *Store) commit(uid string, staged *ledger.StagedTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(uid)

	walletEntries := staged.WalletEntries()
	txEntries := staged.TransactionEntries()

	for _, e := range walletEntries {
		cur, ok := u.wallets[e.WalletID]
		if ok != e.Existed || (ok && cur.Version != e.ReadVersion) {
			return errs.NewConflictError("wallet " + e.WalletID + " was modified concurrently")
		}
	}
	for _, e := range txEntries {
		cur, ok := u.txs[e.TransactionID]
		if ok != e.Existed || (ok && cur.Version != e.ReadVersion) {
			return errs.NewConflictError("transaction " + e.TransactionID + " was modified concurrently")
		}
	}

	for _, e := range walletEntries {
		if !e.Dirty {
			continue
		}
		if e.Wallet == nil {
			delete(u.wallets, e.WalletID)
			continue
		}
		u.wallets[e.WalletID] = *e.Wallet
	}
	for _, e := range txEntries {
		if !e.Dirty {
			continue
		}
		if e.Transaction == nil {
			delete(u.txs, e.TransactionID)
			continue
		}
		u.txs[e.TransactionID] = *e.Transaction
	}
	return nil
}

type reader struct {
	store *Store
	uid   string
}

func (r *reader) ReadWallet(_ context.Context, walletID string) (*models.Wallet, error) {
	return r.store.GetWallet(context.Background(), r.uid, walletID)
}

func (r *reader) ReadTransaction(_ context.Context, txID string) (*models.Transaction, error) {
	return r.store.GetTransaction(context.Background(), r.uid, txID)
}

func (r *reader) ReadWalletTransactions(_ context.Context, walletID string) ([]*models.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[r.uid]
	if !ok {
		return nil, nil
	}
	var out []*models.Transaction
	for _, t := range u.txs {
		if t.WalletID == walletID {
			t := t
			out = append(out, &t)
		}
	}
	return out, nil
}

func (s *Store) GetWallet(_ context.Context, uid, walletID string) (*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[uid]
	if !ok {
		return nil, errs.NewNotFoundError("wallet not found")
	}
	w, ok := u.wallets[walletID]
	if !ok {
		return nil, errs.NewNotFoundError("wallet not found")
	}
	return &w, nil
}

// ListWallets returns the user's wallets, newest first.
func (s *Store) ListWallets(_ context.Context, uid string) ([]*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[uid]
	if !ok {
		return []*models.Wallet{}, nil
	}
	out := make([]*models.Wallet, 0, len(u.wallets))
	for _, w := range u.wallets {
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].WalletID < out[j].WalletID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, uid, txID string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[uid]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	t, ok := u.txs[txID]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	return &t, nil
}

// QueryTransactions streams matching transactions newest first, the same order
// the Firestore store uses.
func (s *Store) QueryTransactions(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error {
	s.mu.RLock()
	u, ok := s.users[uid]
	var matched []models.Transaction
	if ok {
		for _, t := range u.txs {
			if q.Matches(&t) {
				matched = append(matched, t)
			}
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].OccurredAt.Equal(matched[j].OccurredAt) {
			return matched[i].TransactionID < matched[j].TransactionID
		}
		return matched[i].OccurredAt.After(matched[j].OccurredAt)
	})
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	for i := range matched {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := handle(&matched[i]); err != nil {
			return err
		}
	}
	return nil
}

// Corrupt overwrites a stored wallet balance without touching its version or
// transactions. It exists to simulate drift left behind by a crashed writer.
func (s *Store) Corrupt(uid, walletID string, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(uid)
	w, ok := u.wallets[walletID]
	if !ok {
		return
	}
	w.Balance = balance
	u.wallets[walletID] = w
}

var _ ledger.Store = (*Store)(nil)
