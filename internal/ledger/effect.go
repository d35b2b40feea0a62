package ledger

import (
	"fmt"
	"time"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

// MaxAmount bounds a single transaction so that balances stay far from int64
// overflow.
const MaxAmount int64 = 1_000_000_000_000_000

func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewInvalidAmountError("amount must be greater than zero")
	}
	if amount > MaxAmount {
		return errs.NewInvalidAmountError(fmt.Sprintf("amount must not exceed %d", MaxAmount))
	}
	return nil
}

// Effect is the signed contribution of a transaction to its wallet balance.
func Effect(kind models.TransactionKind, amount int64) int64 {
	switch kind {
	case models.KindIncome:
		return amount
	case models.KindExpense, models.KindBill:
		return -amount
	default:
		return 0
	}
}

// Apply returns balance with the effect of (kind, amount) added.
func Apply(balance int64, kind models.TransactionKind, amount int64) int64 {
	return balance + Effect(kind, amount)
}

// Reverse is the exact inverse of Apply.
func Reverse(balance int64, kind models.TransactionKind, amount int64) int64 {
	return balance - Effect(kind, amount)
}

// Sum is the balance a wallet holding txs must have.
func Sum(txs []*models.Transaction) int64 {
	var total int64
	for _, t := range txs {
		total += Effect(t.Kind, t.Amount)
	}
	return total
}

// ApplyEffect adds the effect of (kind, amount) to the wallet inside tx and
// returns the new balance.
func ApplyEffect(tx Tx, walletID string, kind models.TransactionKind, amount int64) (int64, error) {
	return adjust(tx, walletID, kind, amount, Apply)
}

// ReverseEffect removes the effect of (kind, amount) from the wallet inside tx
// and returns the new balance.
func ReverseEffect(tx Tx, walletID string, kind models.TransactionKind, amount int64) (int64, error) {
	return adjust(tx, walletID, kind, amount, Reverse)
}

func adjust(tx Tx, walletID string, kind models.TransactionKind, amount int64, op func(int64, models.TransactionKind, int64) int64) (int64, error) {
	if !kind.Valid() {
		return 0, errs.NewValidationError("unknown transaction kind: " + string(kind))
	}
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}
	w, err := tx.GetWallet(walletID)
	if err != nil {
		return 0, err
	}
	w.Balance = op(w.Balance, kind, amount)
	w.UpdatedAt = time.Now().UTC()
	if err := tx.PutWallet(w); err != nil {
		return 0, err
	}
	return w.Balance, nil
}
