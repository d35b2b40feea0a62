package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

// walletStore serves wallet reads outside ledger units. All wallet writes go
// through ledgerStore.
type walletStore struct {
	client *firestore.Client
}

func NewWalletStore(client *firestore.Client) *walletStore {
	return &walletStore{client: client}
}

func (s *walletStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("wallets")
}

func (s *walletStore) ListWallets(ctx context.Context, uid string) ([]*models.Wallet, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list wallets", err)
	}
	wallets := make([]*models.Wallet, 0, len(docs))
	for _, d := range docs {
		var w models.Wallet
		if err := d.DataTo(&w); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse wallet data", err)
		}
		wallets = append(wallets, &w)
	}
	return wallets, nil
}

func (s *walletStore) GetWallet(ctx context.Context, uid, walletID string) (*models.Wallet, error) {
	doc, err := s.collection(uid).Doc(walletID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("wallet not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get wallet", err)
	}
	var w models.Wallet
	if err := doc.DataTo(&w); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse wallet data", err)
	}
	return &w, nil
}
