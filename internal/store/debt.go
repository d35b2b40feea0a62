package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type debtStore struct {
	client *firestore.Client
}

func NewDebtStore(client *firestore.Client) *debtStore {
	return &debtStore{client: client}
}

func (s *debtStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("debts")
}

func (s *debtStore) Create(ctx context.Context, uid string, d *models.Debt) error {
	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	_, err := s.collection(uid).Doc(d.DebtID).Create(ctx, d)
	if err != nil {
		if isAlreadyExists(err) {
			return errs.NewAlreadyExistsError("debt already exists")
		}
		return errs.NewDatabaseError("create", "failed to create debt", err)
	}
	return nil
}

func (s *debtStore) Get(ctx context.Context, uid, debtID string) (*models.Debt, error) {
	doc, err := s.collection(uid).Doc(debtID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("debt not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get debt", err)
	}
	var d models.Debt
	if err := doc.DataTo(&d); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse debt data", err)
	}
	return &d, nil
}

// List returns the user's debts, soonest due first.
func (s *debtStore) List(ctx context.Context, uid string) ([]*models.Debt, error) {
	docs, err := s.collection(uid).OrderBy("dueDate", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list debts", err)
	}
	debts := make([]*models.Debt, 0, len(docs))
	for _, d := range docs {
		var debt models.Debt
		if err := d.DataTo(&debt); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse debt data", err)
		}
		debts = append(debts, &debt)
	}
	return debts, nil
}

// Update runs mutate against the current document inside a transaction and
// writes the result. An error from mutate aborts the write and is returned
// unchanged.
func (s *debtStore) Update(ctx context.Context, uid, debtID string, mutate func(d *models.Debt) error) (*models.Debt, error) {
	ref := s.collection(uid).Doc(debtID)
	var out *models.Debt
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return errs.NewNotFoundError("debt not found")
			}
			return err
		}
		var d models.Debt
		if err := snap.DataTo(&d); err != nil {
			return errs.NewDatabaseError("read", "failed to parse debt data", err)
		}
		if err := mutate(&d); err != nil {
			return err
		}
		d.UpdatedAt = time.Now()
		out = &d
		return tx.Set(ref, &d)
	})
	if err != nil {
		return nil, classifyTxError("update", err)
	}
	return out, nil
}

func (s *debtStore) Delete(ctx context.Context, uid, debtID string) error {
	_, err := s.collection(uid).Doc(debtID).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return errs.NewNotFoundError("debt not found")
		}
		return errs.NewDatabaseError("delete", "failed to delete debt", err)
	}
	return nil
}
