package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/pkg/helpers"
)

type fakeCategoryStore struct {
	categories map[string]*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[string]*models.Category)}
}

func (f *fakeCategoryStore) Create(_ context.Context, _ string, c *models.Category) error {
	if _, ok := f.categories[c.CategoryID]; ok {
		return errs.NewAlreadyExistsError("category already exists")
	}
	f.categories[c.CategoryID] = c
	return nil
}

func (f *fakeCategoryStore) List(_ context.Context, _ string, kind *models.TransactionKind) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range f.categories {
		if kind == nil || c.Kind == *kind {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, _, categoryID string) error {
	if _, ok := f.categories[categoryID]; !ok {
		return errs.NewNotFoundError("category not found")
	}
	delete(f.categories, categoryID)
	return nil
}

func TestCreateCategory(t *testing.T) {
	store := newFakeCategoryStore()
	svc := NewCategoryService(store)

	c, err := svc.CreateCategory(helpers.TestCtx(), testUID, dto.CreateCategoryRequest{Name: " Pets ", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if c.Name != "Pets" || !c.Custom {
		t.Fatalf("unexpected category: %+v", c)
	}

	// same name, different case, same kind
	_, err = svc.CreateCategory(helpers.TestCtx(), testUID, dto.CreateCategoryRequest{Name: "pets", Kind: models.KindExpense})
	var exists *errs.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("duplicate: expected AlreadyExistsError, got %v", err)
	}

	// same name under another kind is a different category
	if _, err := svc.CreateCategory(helpers.TestCtx(), testUID, dto.CreateCategoryRequest{Name: "Pets", Kind: models.KindIncome}); err != nil {
		t.Fatalf("other kind: %v", err)
	}

	_, err = svc.CreateCategory(helpers.TestCtx(), testUID, dto.CreateCategoryRequest{Name: "salary", Kind: models.KindIncome})
	if !errors.As(err, &exists) {
		t.Fatalf("built-in clash: expected AlreadyExistsError, got %v", err)
	}

	var validationErr *errs.ValidationError
	for _, req := range []dto.CreateCategoryRequest{
		{Name: "", Kind: models.KindExpense},
		{Name: "Tips", Kind: "refund"},
		{Name: "transfer", Kind: models.KindExpense},
	} {
		if _, err := svc.CreateCategory(helpers.TestCtx(), testUID, req); !errors.As(err, &validationErr) {
			t.Fatalf("CreateCategory(%+v) = %v, want ValidationError", req, err)
		}
	}
}

func TestListCategoriesMergesDefaults(t *testing.T) {
	store := newFakeCategoryStore()
	svc := NewCategoryService(store)
	if _, err := svc.CreateCategory(helpers.TestCtx(), testUID, dto.CreateCategoryRequest{Name: "Pets", Kind: models.KindExpense}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	kind := models.KindExpense
	got, err := svc.ListCategories(helpers.TestCtx(), testUID, &kind)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	want := len(models.DefaultCategories[models.KindExpense]) + 1
	if len(got) != want {
		t.Fatalf("categories = %d, want %d", len(got), want)
	}
	last := got[len(got)-1]
	if last.Name != "Pets" || !last.Custom {
		t.Fatalf("custom category not appended: %+v", last)
	}
	if got[0].Custom {
		t.Fatalf("built-in category flagged custom: %+v", got[0])
	}

	all, err := svc.ListCategories(helpers.TestCtx(), testUID, nil)
	if err != nil {
		t.Fatalf("ListCategories(all): %v", err)
	}
	total := 1
	for _, names := range models.DefaultCategories {
		total += len(names)
	}
	if len(all) != total {
		t.Fatalf("all categories = %d, want %d", len(all), total)
	}
}

func TestDeleteCategory(t *testing.T) {
	store := newFakeCategoryStore()
	svc := NewCategoryService(store)
	c, _ := svc.CreateCategory(helpers.TestCtx(), testUID, dto.CreateCategoryRequest{Name: "Pets", Kind: models.KindExpense})

	if err := svc.DeleteCategory(helpers.TestCtx(), testUID, c.CategoryID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := svc.DeleteCategory(helpers.TestCtx(), testUID, c.CategoryID); !errs.IsNotFound(err) {
		t.Fatalf("second delete = %v, want NotFound", err)
	}
}
