package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type budgetStore struct {
	client *firestore.Client
}

func NewBudgetStore(client *firestore.Client) *budgetStore {
	return &budgetStore{client: client}
}

func (s *budgetStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("budgets")
}

func (s *budgetStore) Get(ctx context.Context, uid, month string) (*models.Budget, error) {
	doc, err := s.collection(uid).Doc(month).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("budget not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get budget", err)
	}
	var b models.Budget
	if err := doc.DataTo(&b); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse budget data", err)
	}
	return &b, nil
}

func (s *budgetStore) List(ctx context.Context, uid string) ([]*models.Budget, error) {
	docs, err := s.collection(uid).OrderBy("month", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list budgets", err)
	}
	budgets := make([]*models.Budget, 0, len(docs))
	for _, d := range docs {
		var b models.Budget
		if err := d.DataTo(&b); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse budget data", err)
		}
		budgets = append(budgets, &b)
	}
	return budgets, nil
}

// Replace overwrites the month's budget document, keeping the original
// creation time when one exists.
func (s *budgetStore) Replace(ctx context.Context, uid string, b *models.Budget) error {
	ref := s.collection(uid).Doc(b.Month)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()
		b.CreatedAt = now
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing models.Budget
			if err := snap.DataTo(&existing); err == nil && !existing.CreatedAt.IsZero() {
				b.CreatedAt = existing.CreatedAt
			}
		case isNotFound(err):
		default:
			return err
		}
		b.UpdatedAt = now
		return tx.Set(ref, b)
	})
	if err != nil {
		return errs.NewDatabaseError("update", "failed to replace budget", err)
	}
	return nil
}
