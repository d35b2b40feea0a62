package dto

import (
	"time"

	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type CreateDebtRequest struct {
	Creditor    string    `json:"creditor"`
	Amount      int64     `json:"amount"`
	DueDate     time.Time `json:"dueDate"`
	Description string    `json:"description,omitempty"`
}

// UpdateDebtRequest is a full edit. It overwrites the remaining amount
// directly, so it is independent of recorded payments.
type UpdateDebtRequest struct {
	Creditor    string            `json:"creditor"`
	Amount      int64             `json:"amount"`
	DueDate     time.Time         `json:"dueDate"`
	Status      models.DebtStatus `json:"status,omitempty"`
	Description string            `json:"description,omitempty"`
}

type PaymentRequest struct {
	Amount int64      `json:"amount"`
	PaidAt *time.Time `json:"paidAt,omitempty"`
	Note   string     `json:"note,omitempty"`
}

type PaymentResult struct {
	DebtID    string            `json:"debtId"`
	Remaining int64             `json:"remaining"`
	Status    models.DebtStatus `json:"status"`
}
