package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

const defaultCurrency = "USD"

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	Store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store: store,
	}
}

func (s *userService) CreateUser(ctx context.Context, uid, email string, req dto.RegisterUserRequest) (*models.User, error) {
	// Get logger from context - already has uid, request_id, method, path
	log := logger.FromContext(ctx)

	if uid == "" {
		return nil, errs.NewValidationError("missing user id")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if len(currency) != 3 {
		return nil, errs.NewValidationError("currency must be an ISO 4217 code")
	}

	now := time.Now()
	user := &models.User{
		UID:       uid,
		Email:     email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.CreateUser(ctx, user)
	if err != nil {
		log.Error("failed to create user in store", "error", err)
		return nil, err
	}

	log.Info("user created successfully", "first_name", user.FirstName, "last_name", user.LastName)
	log.Debug("user created with full details", "user", user)

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}
