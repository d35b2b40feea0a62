package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

// transactionStore serves transaction reads outside ledger units.
type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) txCollection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *transactionStore) GetTransaction(ctx context.Context, uid, txID string) (*models.Transaction, error) {
	doc, err := s.txCollection(uid).Doc(txID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}
	var t models.Transaction
	if err := doc.DataTo(&t); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return &t, nil
}

// QueryTransactions streams matching transactions to handle, newest first.
// Combined filters need the composite indexes on (walletId|kind|category, occurredAt).
func (s *transactionStore) QueryTransactions(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error {
	query := s.txCollection(uid).Query
	if q.WalletID != nil {
		query = query.Where("walletId", "==", *q.WalletID)
	}
	if q.Kind != nil {
		query = query.Where("kind", "==", string(*q.Kind))
	}
	if q.Category != nil {
		query = query.Where("category", "==", *q.Category)
	}
	if q.From != nil {
		query = query.Where("occurredAt", ">=", *q.From)
	}
	if q.Until != nil {
		query = query.Where("occurredAt", "<", *q.Until)
	}
	query = query.OrderBy("occurredAt", firestore.Desc)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errs.NewDatabaseError("read", "failed to query transactions", err)
		}
		var t models.Transaction
		if err := doc.DataTo(&t); err != nil {
			return errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		if err := handle(&t); err != nil {
			return err
		}
	}
}
