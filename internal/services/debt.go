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

const maxCreditorLen = 100

type debtDSStore interface {
	Create(ctx context.Context, uid string, d *models.Debt) error
	Get(ctx context.Context, uid, debtID string) (*models.Debt, error)
	List(ctx context.Context, uid string) ([]*models.Debt, error)
	Update(ctx context.Context, uid, debtID string, mutate func(d *models.Debt) error) (*models.Debt, error)
	Delete(ctx context.Context, uid, debtID string) error
}

type debtService struct {
	store debtDSStore
	now   func() time.Time
}

func NewDebtService(store debtDSStore) *debtService {
	return &debtService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func validateDebtFields(creditor string, dueDate time.Time, description string) error {
	creditor = strings.TrimSpace(creditor)
	if creditor == "" {
		return errs.NewValidationError("creditor is required")
	}
	if len(creditor) > maxCreditorLen {
		return errs.NewValidationError(fmt.Sprintf("creditor must be at most %d characters", maxCreditorLen))
	}
	if dueDate.IsZero() {
		return errs.NewValidationError("dueDate is required")
	}
	return validateDescription(description)
}

// debtStatus is paid at zero, partial below the principal and unpaid otherwise.
func debtStatus(amount, principal int64) models.DebtStatus {
	switch {
	case amount == 0:
		return models.DebtPaid
	case amount < principal:
		return models.DebtPartial
	default:
		return models.DebtUnpaid
	}
}

func (s *debtService) CreateDebt(ctx context.Context, uid string, req dto.CreateDebtRequest) (*models.Debt, error) {
	if err := validateDebtFields(req.Creditor, req.DueDate, req.Description); err != nil {
		return nil, err
	}
	if err := ledger.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}

	d := &models.Debt{
		DebtID:      uuid.New().String(),
		UserID:      uid,
		Creditor:    strings.TrimSpace(req.Creditor),
		Amount:      req.Amount,
		Principal:   req.Amount,
		DueDate:     req.DueDate.UTC(),
		Status:      models.DebtUnpaid,
		Description: req.Description,
	}
	if err := s.store.Create(ctx, uid, d); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("debt created", "debt_id", d.DebtID, "amount", d.Amount)
	return d, nil
}

func (s *debtService) GetDebt(ctx context.Context, uid, debtID string) (*models.Debt, error) {
	return s.store.Get(ctx, uid, debtID)
}

func (s *debtService) ListDebts(ctx context.Context, uid string) ([]*models.Debt, error) {
	return s.store.List(ctx, uid)
}

func (s *debtService) DeleteDebt(ctx context.Context, uid, debtID string) error {
	if err := s.store.Delete(ctx, uid, debtID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("debt deleted", "debt_id", debtID)
	return nil
}

// RecordPayment reduces the remaining amount by a payment that must satisfy
// 0 < amount <= remaining. A rejected payment leaves the debt untouched.
func (s *debtService) RecordPayment(ctx context.Context, uid, debtID string, req dto.PaymentRequest) (*dto.PaymentResult, error) {
	log := logger.FromContext(ctx)

	if req.Amount <= 0 {
		return nil, errs.NewInvalidAmountError("payment amount must be greater than zero")
	}
	if err := validateDescription(req.Note); err != nil {
		return nil, err
	}
	paidAt := s.now()
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}

	d, err := s.store.Update(ctx, uid, debtID, func(d *models.Debt) error {
		if d.Amount <= 0 || d.Status == models.DebtPaid {
			return errs.NewInvalidAmountError("debt has no remaining balance to pay")
		}
		if req.Amount > d.Amount {
			return errs.NewInvalidAmountError(fmt.Sprintf("payment %d exceeds remaining balance %d", req.Amount, d.Amount))
		}

		d.Amount -= req.Amount
		d.Status = debtStatus(d.Amount, d.Principal)
		d.Payments = append(d.Payments, models.DebtPayment{
			Amount:    req.Amount,
			Remaining: d.Amount,
			Note:      req.Note,
			PaidAt:    paidAt,
		})
		return nil
	})
	if err != nil {
		log.Warn("debt payment rejected", "debt_id", debtID, "amount", req.Amount, "error", err)
		return nil, err
	}

	log.Info("debt payment recorded", "debt_id", debtID, "amount", req.Amount, "remaining", d.Amount, "status", d.Status)
	return &dto.PaymentResult{DebtID: d.DebtID, Remaining: d.Amount, Status: d.Status}, nil
}

// UpdateDebt is a full edit. It writes the remaining amount directly; when
// the amount changes the principal is reset to it. Recorded payments are kept
// as history but no longer reconcile with the new principal.
func (s *debtService) UpdateDebt(ctx context.Context, uid, debtID string, req dto.UpdateDebtRequest) (*models.Debt, error) {
	if err := validateDebtFields(req.Creditor, req.DueDate, req.Description); err != nil {
		return nil, err
	}
	if req.Amount < 0 {
		return nil, errs.NewInvalidAmountError("amount must not be negative")
	}
	if req.Amount > ledger.MaxAmount {
		return nil, errs.NewInvalidAmountError(fmt.Sprintf("amount must not exceed %d", ledger.MaxAmount))
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, errs.NewValidationError("status must be one of unpaid, partial, paid")
		}
		if req.Status == models.DebtPaid && req.Amount != 0 {
			return nil, errs.NewValidationError("a paid debt must have amount 0")
		}
		if req.Status != models.DebtPaid && req.Amount == 0 {
			return nil, errs.NewValidationError("a debt with amount 0 must be paid")
		}
	}

	d, err := s.store.Update(ctx, uid, debtID, func(d *models.Debt) error {
		amountChanged := req.Amount != d.Amount

		d.Creditor = strings.TrimSpace(req.Creditor)
		d.DueDate = req.DueDate.UTC()
		d.Description = req.Description
		if amountChanged {
			d.Amount = req.Amount
			d.Principal = req.Amount
		}

		status := debtStatus(d.Amount, d.Principal)
		if req.Status != "" && req.Status != status {
			return errs.NewValidationError(fmt.Sprintf("status %s does not match remaining %d of principal %d", req.Status, d.Amount, d.Principal))
		}
		d.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("debt updated", "debt_id", debtID, "amount", d.Amount, "status", d.Status)
	return d, nil
}
