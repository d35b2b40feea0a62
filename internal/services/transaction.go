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
	"github.com/GregMSThompson/wallet-ledger/pkg/helpers"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

const maxDescriptionLen = 200

// requestNamespace seeds the ids derived from client request ids.
var requestNamespace = uuid.MustParse("6f1c3a52-8f0e-4d7b-9a41-3e2b7c9d5f10")

// ledgerRunner runs one atomic ledger unit, retrying it on conflict.
type ledgerRunner interface {
	Run(ctx context.Context, uid string, fn func(ctx context.Context, tx ledger.Tx) error) error
}

type transactionTSStore interface {
	GetTransaction(ctx context.Context, uid, txID string) (*models.Transaction, error)
	QueryTransactions(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error
}

type transactionService struct {
	runner ledgerRunner
	store  transactionTSStore
	now    func() time.Time
}

func NewTransactionService(runner ledgerRunner, store transactionTSStore) *transactionService {
	return &transactionService{
		runner: runner,
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// newID returns a random id, or a stable one derived from the caller's
// request id so that a replayed request lands on the same document.
func newID(uid, requestID string) string {
	if requestID == "" {
		return uuid.New().String()
	}
	return uuid.NewSHA1(requestNamespace, []byte(uid+":"+requestID)).String()
}

func outgoingLegID(transferID string) string { return transferID + "-out" }
func incomingLegID(transferID string) string { return transferID + "-in" }

func counterpartLegID(t *models.Transaction) string {
	if t.TransactionID == outgoingLegID(t.TransferID) {
		return incomingLegID(t.TransferID)
	}
	return outgoingLegID(t.TransferID)
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return errs.NewValidationError("category is required")
	}
	if category == models.CategoryTransfer {
		return errs.NewValidationError("category Transfer is reserved for transfers")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return errs.NewValidationError(fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	return nil
}

func validateCreateTransaction(req dto.CreateTransactionRequest) error {
	if req.WalletID == "" {
		return errs.NewValidationError("walletId is required")
	}
	if !req.Kind.Valid() {
		return errs.NewValidationError("type must be one of income, expense, bill")
	}
	if err := ledger.ValidateAmount(req.Amount); err != nil {
		return err
	}
	if err := validateCategory(req.Category); err != nil {
		return err
	}
	if req.Recurring != "" && !req.Recurring.Valid() {
		return errs.NewValidationError("recurringPattern must be one of daily, weekly, monthly, yearly")
	}
	return validateDescription(req.Description)
}

func validateUpdateTransaction(req dto.UpdateTransactionRequest) error {
	if req.WalletID != nil && *req.WalletID == "" {
		return errs.NewValidationError("walletId must not be empty")
	}
	if req.Kind != nil && !req.Kind.Valid() {
		return errs.NewValidationError("type must be one of income, expense, bill")
	}
	if req.Amount != nil {
		if err := ledger.ValidateAmount(*req.Amount); err != nil {
			return err
		}
	}
	if req.Category != nil {
		if err := validateCategory(*req.Category); err != nil {
			return err
		}
	}
	if req.Recurring != nil && *req.Recurring != "" && !req.Recurring.Valid() {
		return errs.NewValidationError("recurringPattern must be one of daily, weekly, monthly, yearly")
	}
	if req.Description != nil {
		return validateDescription(*req.Description)
	}
	return nil
}

// CreateTransaction records a transaction and applies its effect to the
// wallet in one unit.
func (s *transactionService) CreateTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if err := validateCreateTransaction(req); err != nil {
		return nil, err
	}

	id := newID(uid, req.RequestID)
	occurredAt := s.now()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	var (
		out      *models.Transaction
		replayed bool
	)
	err := s.runner.Run(ctx, uid, func(ctx context.Context, tx ledger.Tx) error {
		out, replayed = nil, false

		existing, err := tx.GetTransaction(id)
		if err == nil {
			out, replayed = existing, true
			return nil
		}
		if !errs.IsNotFound(err) {
			return err
		}

		now := s.now()
		t := &models.Transaction{
			TransactionID: id,
			UserID:        uid,
			WalletID:      req.WalletID,
			Kind:          req.Kind,
			Category:      req.Category,
			Amount:        req.Amount,
			Description:   req.Description,
			OccurredAt:    occurredAt,
			Recurring:     req.Recurring,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if _, err := ledger.ApplyEffect(tx, t.WalletID, t.Kind, t.Amount); err != nil {
			return err
		}
		if err := tx.PutTransaction(t); err != nil {
			return err
		}
		out, err = tx.GetTransaction(id)
		return err
	})
	if err != nil {
		log.Error("failed to create transaction", "wallet_id", req.WalletID, "error", err)
		return nil, err
	}

	if replayed {
		log.Info("transaction create replayed", "transaction_id", id)
		return out, nil
	}
	log.Info("transaction created", "transaction_id", id, "wallet_id", out.WalletID, "kind", out.Kind, "amount", out.Amount)
	return out, nil
}

// UpdateTransaction reverses the old effect on the old wallet and applies the
// new effect on the new wallet inside the same unit. Transfer legs only accept
// description and date changes.
func (s *transactionService) UpdateTransaction(ctx context.Context, uid, txID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if err := validateUpdateTransaction(req); err != nil {
		return nil, err
	}

	var out *models.Transaction
	err := s.runner.Run(ctx, uid, func(ctx context.Context, tx ledger.Tx) error {
		old, err := tx.GetTransaction(txID)
		if err != nil {
			return err
		}
		if old.IsTransferLeg() {
			out, err = s.updateTransferLeg(tx, old, req)
			return err
		}

		updated := *old
		updated.WalletID = helpers.ValueOr(req.WalletID, old.WalletID)
		updated.Kind = helpers.ValueOr(req.Kind, old.Kind)
		updated.Category = helpers.ValueOr(req.Category, old.Category)
		updated.Amount = helpers.ValueOr(req.Amount, old.Amount)
		updated.Description = helpers.ValueOr(req.Description, old.Description)
		updated.OccurredAt = helpers.ValueOr(req.OccurredAt, old.OccurredAt).UTC()
		updated.Recurring = helpers.ValueOr(req.Recurring, old.Recurring)
		updated.UpdatedAt = s.now()

		if req.TouchesLedger() {
			if _, err := ledger.ReverseEffect(tx, old.WalletID, old.Kind, old.Amount); err != nil {
				if !errs.IsNotFound(err) {
					return err
				}
				log.Warn("wallet missing, skipping reversal", "transaction_id", txID, "wallet_id", old.WalletID)
			}
			if _, err := ledger.ApplyEffect(tx, updated.WalletID, updated.Kind, updated.Amount); err != nil {
				return err
			}
		}

		if err := tx.PutTransaction(&updated); err != nil {
			return err
		}
		out, err = tx.GetTransaction(txID)
		return err
	})
	if err != nil {
		log.Error("failed to update transaction", "transaction_id", txID, "error", err)
		return nil, err
	}

	log.Info("transaction updated", "transaction_id", txID, "wallet_id", out.WalletID)
	return out, nil
}

func (s *transactionService) updateTransferLeg(tx ledger.Tx, leg *models.Transaction, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	if req.TouchesLedger() || req.Category != nil || req.Recurring != nil {
		return nil, errs.NewValidationError("transfer legs only allow description and date changes")
	}

	now := s.now()
	updated := *leg
	updated.Description = helpers.ValueOr(req.Description, leg.Description)
	if req.OccurredAt != nil {
		updated.OccurredAt = req.OccurredAt.UTC()

		// both legs carry the same date
		other, err := tx.GetTransaction(counterpartLegID(leg))
		switch {
		case err == nil:
			other.OccurredAt = updated.OccurredAt
			other.UpdatedAt = now
			if err := tx.PutTransaction(other); err != nil {
				return nil, err
			}
		case errs.IsNotFound(err):
		default:
			return nil, err
		}
	}
	updated.UpdatedAt = now

	if err := tx.PutTransaction(&updated); err != nil {
		return nil, err
	}
	return tx.GetTransaction(updated.TransactionID)
}

// DeleteTransaction reverses the transaction's effect and removes it. Deleting
// either transfer leg removes both.
func (s *transactionService) DeleteTransaction(ctx context.Context, uid, txID string) error {
	log := logger.FromContext(ctx)

	var removed []string
	err := s.runner.Run(ctx, uid, func(ctx context.Context, tx ledger.Tx) error {
		removed = removed[:0]

		t, err := tx.GetTransaction(txID)
		if err != nil {
			return err
		}
		targets := []*models.Transaction{t}
		if t.IsTransferLeg() {
			other, err := tx.GetTransaction(counterpartLegID(t))
			switch {
			case err == nil:
				targets = append(targets, other)
			case errs.IsNotFound(err):
				log.Warn("transfer counterpart missing", "transaction_id", txID, "transfer_id", t.TransferID)
			default:
				return err
			}
		}

		for _, target := range targets {
			if _, err := ledger.ReverseEffect(tx, target.WalletID, target.Kind, target.Amount); err != nil {
				if !errs.IsNotFound(err) {
					return err
				}
				log.Warn("wallet missing, skipping reversal", "transaction_id", target.TransactionID, "wallet_id", target.WalletID)
			}
			if err := tx.DeleteTransaction(target.TransactionID); err != nil {
				return err
			}
			removed = append(removed, target.TransactionID)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to delete transaction", "transaction_id", txID, "error", err)
		return err
	}

	log.Info("transaction deleted", "transaction_ids", removed)
	return nil
}

// Transfer moves amount between two of the user's wallets as a pair of legs
// committed together.
func (s *transactionService) Transfer(ctx context.Context, uid string, req dto.TransferRequest) (*dto.TransferResult, error) {
	log := logger.FromContext(ctx)

	if req.FromWalletID == "" || req.ToWalletID == "" {
		return nil, errs.NewValidationError("fromWalletId and toWalletId are required")
	}
	if req.FromWalletID == req.ToWalletID {
		return nil, errs.NewValidationError("source and destination wallets must differ")
	}
	if err := ledger.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}

	transferID := newID(uid, req.RequestID)
	occurredAt := s.now()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	var (
		result   *dto.TransferResult
		replayed bool
	)
	err := s.runner.Run(ctx, uid, func(ctx context.Context, tx ledger.Tx) error {
		result, replayed = nil, false

		out, err := tx.GetTransaction(outgoingLegID(transferID))
		if err == nil {
			in, err := tx.GetTransaction(incomingLegID(transferID))
			if err != nil {
				return err
			}
			result = &dto.TransferResult{TransferID: transferID, Outgoing: out, Incoming: in}
			replayed = true
			return nil
		}
		if !errs.IsNotFound(err) {
			return err
		}

		from, err := tx.GetWallet(req.FromWalletID)
		if err != nil {
			return err
		}
		to, err := tx.GetWallet(req.ToWalletID)
		if err != nil {
			return err
		}

		now := s.now()
		legs := []*models.Transaction{
			{
				TransactionID: outgoingLegID(transferID),
				WalletID:      from.WalletID,
				Kind:          models.KindExpense,
				Description:   transferDescription("Transfer to "+to.Name, req.Description),
			},
			{
				TransactionID: incomingLegID(transferID),
				WalletID:      to.WalletID,
				Kind:          models.KindIncome,
				Description:   transferDescription("Transfer from "+from.Name, req.Description),
			},
		}
		for _, leg := range legs {
			leg.UserID = uid
			leg.Category = models.CategoryTransfer
			leg.Amount = req.Amount
			leg.OccurredAt = occurredAt
			leg.TransferID = transferID
			leg.CreatedAt = now
			leg.UpdatedAt = now

			if _, err := ledger.ApplyEffect(tx, leg.WalletID, leg.Kind, leg.Amount); err != nil {
				return err
			}
			if err := tx.PutTransaction(leg); err != nil {
				return err
			}
		}

		result = &dto.TransferResult{TransferID: transferID}
		if result.Outgoing, err = tx.GetTransaction(outgoingLegID(transferID)); err != nil {
			return err
		}
		result.Incoming, err = tx.GetTransaction(incomingLegID(transferID))
		return err
	})
	if err != nil {
		log.Error("transfer failed", "from_wallet_id", req.FromWalletID, "to_wallet_id", req.ToWalletID, "error", err)
		return nil, err
	}

	if replayed {
		log.Info("transfer replayed", "transfer_id", transferID)
		return result, nil
	}
	log.Info("transfer completed", "transfer_id", transferID, "from_wallet_id", req.FromWalletID, "to_wallet_id", req.ToWalletID, "amount", req.Amount)
	return result, nil
}

func transferDescription(base, note string) string {
	if note == "" {
		return base
	}
	return base + ": " + note
}

func (s *transactionService) GetTransaction(ctx context.Context, uid, txID string) (*models.Transaction, error) {
	return s.store.GetTransaction(ctx, uid, txID)
}

func (s *transactionService) ListTransactions(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	out := make([]*models.Transaction, 0)
	err := s.store.QueryTransactions(ctx, uid, q, func(t *models.Transaction) error {
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
