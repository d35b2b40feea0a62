package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type stubCategoryService struct {
	lastKind   *models.TransactionKind
	lastCreate dto.CreateCategoryRequest
	lastID     string
	err        error
}

func (s *stubCategoryService) CreateCategory(_ context.Context, _ string, req dto.CreateCategoryRequest) (*models.Category, error) {
	s.lastCreate = req
	return &models.Category{Name: req.Name, Kind: req.Kind}, s.err
}

func (s *stubCategoryService) ListCategories(_ context.Context, _ string, kind *models.TransactionKind) ([]*models.Category, error) {
	s.lastKind = kind
	return nil, s.err
}

func (s *stubCategoryService) DeleteCategory(_ context.Context, _, categoryID string) error {
	s.lastID = categoryID
	return s.err
}

func TestListCategories_TypeFilter(t *testing.T) {
	svc := &stubCategoryService{}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	req := withUID(httptest.NewRequest(http.MethodGet, "/categories?type=bill", nil), "uid1")
	h.ListCategories(httptest.NewRecorder(), req)
	if svc.lastKind == nil || *svc.lastKind != models.KindBill {
		t.Fatalf("kind = %v, want bill", svc.lastKind)
	}

	req = withUID(httptest.NewRequest(http.MethodGet, "/categories", nil), "uid1")
	h.ListCategories(httptest.NewRecorder(), req)
	if svc.lastKind != nil {
		t.Fatalf("kind = %v, want nil", *svc.lastKind)
	}
}

func TestCreateCategory_OK(t *testing.T) {
	svc := &stubCategoryService{}
	resp := &stubResponseHandler{}
	h := NewCategoryHandlers(&Deps{ResponseHandler: resp, CategorySvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Pets","type":"expense"}`))
	req = withUID(req, "uid1")
	h.CreateCategory(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatal("expected WriteSuccess 201")
	}
	if svc.lastCreate.Kind != models.KindExpense {
		t.Fatalf("kind = %s", svc.lastCreate.Kind)
	}
}
