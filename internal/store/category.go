package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("categories")
}

// Create fails with AlreadyExistsError when the ID is taken. Callers derive
// the ID from (kind, name) so duplicates collide.
func (s *categoryStore) Create(ctx context.Context, uid string, c *models.Category) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := s.collection(uid).Doc(c.CategoryID).Create(ctx, c)
	if err != nil {
		if isAlreadyExists(err) {
			return errs.NewAlreadyExistsError("category already exists")
		}
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *categoryStore) List(ctx context.Context, uid string, kind *models.TransactionKind) ([]*models.Category, error) {
	query := s.collection(uid).Query
	if kind != nil {
		query = query.Where("kind", "==", string(*kind))
	}
	docs, err := query.OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	out := make([]*models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		c.Custom = true
		out = append(out, &c)
	}
	return out, nil
}

func (s *categoryStore) Delete(ctx context.Context, uid, categoryID string) error {
	_, err := s.collection(uid).Doc(categoryID).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return errs.NewNotFoundError("category not found")
		}
		return errs.NewDatabaseError("delete", "failed to delete category", err)
	}
	return nil
}
