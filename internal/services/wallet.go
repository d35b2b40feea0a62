package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/wallet-ledger/internal/dto"
	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/ledger"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

const (
	maxWalletNameLen   = 60
	defaultWalletIcon  = "wallet"
	defaultWalletColor = "#3b82f6"
)

type walletWSStore interface {
	ListWallets(ctx context.Context, uid string) ([]*models.Wallet, error)
	GetWallet(ctx context.Context, uid, walletID string) (*models.Wallet, error)
}

type walletService struct {
	runner ledgerRunner
	store  walletWSStore
	now    func() time.Time
}

func NewWalletService(runner ledgerRunner, store walletWSStore) *walletService {
	return &walletService{
		runner: runner,
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func validateWalletName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValidationError("name is required")
	}
	if len(name) > maxWalletNameLen {
		return errs.NewValidationError(fmt.Sprintf("name must be at most %d characters", maxWalletNameLen))
	}
	return nil
}

func validateWalletKind(kind models.WalletKind) error {
	if !kind.Valid() {
		return errs.NewValidationError("type must be one of cash, bank, e-wallet")
	}
	return nil
}

// CreateWallet creates a wallet with a zero balance. A non-zero initial
// balance is booked as an opening-balance transaction in the same unit.
func (s *walletService) CreateWallet(ctx context.Context, uid string, req dto.CreateWalletRequest) (*models.Wallet, error) {
	log := logger.FromContext(ctx)

	if err := validateWalletName(req.Name); err != nil {
		return nil, err
	}
	if err := validateWalletKind(req.Kind); err != nil {
		return nil, err
	}

	var (
		openingKind   models.TransactionKind
		openingAmount int64
	)
	switch {
	case req.InitialBalance > 0:
		openingKind, openingAmount = models.KindIncome, req.InitialBalance
	case req.InitialBalance < 0:
		openingKind, openingAmount = models.KindExpense, -req.InitialBalance
	}
	if openingAmount != 0 {
		if err := ledger.ValidateAmount(openingAmount); err != nil {
			return nil, err
		}
	}

	walletID := uuid.New().String()
	openingID := uuid.New().String()

	var out *models.Wallet
	err := s.runner.Run(ctx, uid, func(ctx context.Context, tx ledger.Tx) error {
		now := s.now()
		w := &models.Wallet{
			WalletID:  walletID,
			UserID:    uid,
			Name:      strings.TrimSpace(req.Name),
			Kind:      req.Kind,
			Balance:   0,
			Icon:      orDefault(req.Icon, defaultWalletIcon),
			Color:     orDefault(req.Color, defaultWalletColor),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.PutWallet(w); err != nil {
			return err
		}

		if openingAmount != 0 {
			opening := &models.Transaction{
				TransactionID: openingID,
				UserID:        uid,
				WalletID:      walletID,
				Kind:          openingKind,
				Category:      models.CategoryOpeningBalance,
				Amount:        openingAmount,
				Description:   models.CategoryOpeningBalance,
				OccurredAt:    now,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.PutTransaction(opening); err != nil {
				return err
			}
			if _, err := ledger.ApplyEffect(tx, walletID, openingKind, openingAmount); err != nil {
				return err
			}
		}

		var err error
		out, err = tx.GetWallet(walletID)
		return err
	})
	if err != nil {
		log.Error("failed to create wallet", "error", err)
		return nil, err
	}

	log.Info("wallet created", "wallet_id", walletID, "kind", out.Kind, "balance", out.Balance)
	return out, nil
}

func (s *walletService) GetWallet(ctx context.Context, uid, walletID string) (*models.Wallet, error) {
	return s.store.GetWallet(ctx, uid, walletID)
}

func (s *walletService) ListWallets(ctx context.Context, uid string) ([]*models.Wallet, error) {
	return s.store.ListWallets(ctx, uid)
}

// UpdateWallet changes presentation fields. The balance is only ever moved by
// transactions.
func (s *walletService) UpdateWallet(ctx context.Context, uid, walletID string, req dto.UpdateWalletRequest) (*models.Wallet, error) {
	if req.Name != nil {
		if err := validateWalletName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Kind != nil {
		if err := validateWalletKind(*req.Kind); err != nil {
			return nil, err
		}
	}

	var out *models.Wallet
	err := s.runner.Run(ctx, uid, func(ctx context.Context, tx ledger.Tx) error {
		w, err := tx.GetWallet(walletID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			w.Name = strings.TrimSpace(*req.Name)
		}
		if req.Kind != nil {
			w.Kind = *req.Kind
		}
		if req.Icon != nil {
			w.Icon = orDefault(*req.Icon, defaultWalletIcon)
		}
		if req.Color != nil {
			w.Color = orDefault(*req.Color, defaultWalletColor)
		}
		w.UpdatedAt = s.now()
		if err := tx.PutWallet(w); err != nil {
			return err
		}
		out, err = tx.GetWallet(walletID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("wallet updated", "wallet_id", walletID)
	return out, nil
}

// DeleteWallet removes the wallet only. Its transactions are left in place
// and are treated as orphans by later updates and deletes.
func (s *walletService) DeleteWallet(ctx context.Context, uid, walletID string) error {
	err := s.runner.Run(ctx, uid, func(ctx context.Context, tx ledger.Tx) error {
		return tx.DeleteWallet(walletID)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("wallet deleted", "wallet_id", walletID)
	return nil
}

func orDefault(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
