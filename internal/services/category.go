package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

const maxCategoryNameLen = 50

var categoryNamespace = uuid.MustParse("0b7e4f6e-2a9c-4c1d-8e55-91d3a6f0c2b4")

var categoryKinds = []models.TransactionKind{models.KindIncome, models.KindExpense, models.KindBill}

type categoryCSStore interface {
	Create(ctx context.Context, uid string, c *models.Category) error
	List(ctx context.Context, uid string, kind *models.TransactionKind) ([]*models.Category, error)
	Delete(ctx context.Context, uid, categoryID string) error
}

type categoryService struct {
	store categoryCSStore
}

func NewCategoryService(store categoryCSStore) *categoryService {
	return &categoryService{store: store}
}

// categoryID is stable per (kind, case-folded name) so that a duplicate
// create collides on the document id.
func categoryID(kind models.TransactionKind, name string) string {
	key := string(kind) + ":" + strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(categoryNamespace, []byte(key)).String()
}

func isDefaultCategory(kind models.TransactionKind, name string) bool {
	for _, d := range models.DefaultCategories[kind] {
		if strings.EqualFold(d, name) {
			return true
		}
	}
	return false
}

func (s *categoryService) CreateCategory(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.NewValidationError("name is required")
	}
	if len(name) > maxCategoryNameLen {
		return nil, errs.NewValidationError(fmt.Sprintf("name must be at most %d characters", maxCategoryNameLen))
	}
	if !req.Kind.Valid() {
		return nil, errs.NewValidationError("type must be one of income, expense, bill")
	}
	if strings.EqualFold(name, models.CategoryTransfer) {
		return nil, errs.NewValidationError("category Transfer is reserved for transfers")
	}
	if isDefaultCategory(req.Kind, name) {
		return nil, errs.NewAlreadyExistsError("category already exists")
	}

	c := &models.Category{
		CategoryID: categoryID(req.Kind, name),
		Name:       name,
		Kind:       req.Kind,
		Icon:       req.Icon,
		Color:      req.Color,
		Custom:     true,
	}
	if err := s.store.Create(ctx, uid, c); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("category created", "category_id", c.CategoryID, "kind", c.Kind)
	return c, nil
}

// ListCategories returns the built-in categories followed by the user's own,
// for one kind or for every kind when kind is nil.
func (s *categoryService) ListCategories(ctx context.Context, uid string, kind *models.TransactionKind) ([]*models.Category, error) {
	if kind != nil && !kind.Valid() {
		return nil, errs.NewValidationError("type must be one of income, expense, bill")
	}

	custom, err := s.store.List(ctx, uid, kind)
	if err != nil {
		return nil, err
	}

	kinds := categoryKinds
	if kind != nil {
		kinds = []models.TransactionKind{*kind}
	}

	var out []*models.Category
	for _, k := range kinds {
		for _, name := range models.DefaultCategories[k] {
			out = append(out, &models.Category{
				CategoryID: categoryID(k, name),
				Name:       name,
				Kind:       k,
			})
		}
		for _, c := range custom {
			if c.Kind == k {
				c.Custom = true
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, uid, categoryID string) error {
	if err := s.store.Delete(ctx, uid, categoryID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("category deleted", "category_id", categoryID)
	return nil
}
