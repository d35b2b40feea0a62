package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/pkg/helpers"
)

type stubUserStore struct {
	user            *models.User
	createUserCalls int
	err             error
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.user = user
	s.createUserCalls++
	return s.err
}

func (s *stubUserStore) GetUser(_ context.Context, uid string) (*models.User, error) {
	if s.user == nil || s.user.UID != uid {
		return nil, errs.NewNotFoundError("user not found")
	}
	return s.user, nil
}

func TestUserServiceCreateUser(t *testing.T) {
	store := &stubUserStore{}
	svc := NewUserService(store)

	ctx := helpers.TestCtx()
	now := time.Now()

	user, err := svc.CreateUser(ctx, "uid-123", "user@example.com", dto.RegisterUserRequest{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if store.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createUserCalls)
	}

	if store.user == nil || store.user != user {
		t.Fatalf("store received unexpected user: %+v", store.user)
	}

	if store.user.UID != "uid-123" || store.user.Email != "user@example.com" {
		t.Fatalf("unexpected user identifiers: %+v", store.user)
	}

	if store.user.FirstName != "Jane" || store.user.LastName != "Doe" {
		t.Fatalf("unexpected user name: %+v", store.user)
	}

	if store.user.Currency != defaultCurrency {
		t.Fatalf("currency = %q, want %q", store.user.Currency, defaultCurrency)
	}

	if store.user.CreatedAt.IsZero() || store.user.UpdatedAt.IsZero() {
		t.Fatalf("timestamps were not set: %+v", store.user)
	}

	if store.user.CreatedAt.Before(now) {
		t.Fatalf("CreatedAt set earlier than call time: %v before %v", store.user.CreatedAt, now)
	}
}

func TestUserServiceCreateUserStoreError(t *testing.T) {
	store := &stubUserStore{err: errors.New("store failure")}
	svc := NewUserService(store)

	ctx := helpers.TestCtx()
	_, err := svc.CreateUser(ctx, "uid-456", "user2@example.com", dto.RegisterUserRequest{FirstName: "John", LastName: "Smith"})

	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	if store.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createUserCalls)
	}

	if store.user == nil || store.user.UID != "uid-456" {
		t.Fatalf("store did not receive expected user payload: %+v", store.user)
	}
}

func TestUserServiceCreateUserBadCurrency(t *testing.T) {
	store := &stubUserStore{}
	svc := NewUserService(store)

	_, err := svc.CreateUser(helpers.TestCtx(), "uid-1", "a@example.com", dto.RegisterUserRequest{Currency: "dollars"})

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.createUserCalls != 0 {
		t.Fatalf("store should not be called on invalid input")
	}
}

func TestUserServiceGetUser(t *testing.T) {
	store := &stubUserStore{user: &models.User{UID: "uid-1", Email: "a@example.com"}}
	svc := NewUserService(store)

	user, err := svc.GetUser(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if user.Email != "a@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.GetUser(helpers.TestCtx(), "other"); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown uid, got %v", err)
	}
}
