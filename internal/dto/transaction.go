package dto

import (
	"time"

	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

// TransactionQuery filters transactions. From is inclusive, Until exclusive.
type TransactionQuery struct {
	WalletID *string
	Kind     *models.TransactionKind
	Category *string
	From     *time.Time
	Until    *time.Time
	Limit    int
}

func (q TransactionQuery) Matches(t *models.Transaction) bool {
	if q.WalletID != nil && t.WalletID != *q.WalletID {
		return false
	}
	if q.Kind != nil && t.Kind != *q.Kind {
		return false
	}
	if q.Category != nil && t.Category != *q.Category {
		return false
	}
	if q.From != nil && t.OccurredAt.Before(*q.From) {
		return false
	}
	if q.Until != nil && !t.OccurredAt.Before(*q.Until) {
		return false
	}
	return true
}

type CreateTransactionRequest struct {
	WalletID    string                   `json:"walletId"`
	Kind        models.TransactionKind   `json:"type"`
	Category    string                   `json:"category"`
	Amount      int64                    `json:"amount"`
	Description string                   `json:"description,omitempty"`
	OccurredAt  *time.Time               `json:"date,omitempty"`
	Recurring   models.RecurrencePattern `json:"recurringPattern,omitempty"`
	RequestID   string                   `json:"requestId,omitempty"` // replays with the same id return the first result
}

// UpdateTransactionRequest is a partial update; nil fields are left unchanged.
type UpdateTransactionRequest struct {
	WalletID    *string                   `json:"walletId,omitempty"`
	Kind        *models.TransactionKind   `json:"type,omitempty"`
	Category    *string                   `json:"category,omitempty"`
	Amount      *int64                    `json:"amount,omitempty"`
	Description *string                   `json:"description,omitempty"`
	OccurredAt  *time.Time                `json:"date,omitempty"`
	Recurring   *models.RecurrencePattern `json:"recurringPattern,omitempty"`
}

// TouchesLedger reports whether the update changes a field the wallet
// balance is computed from.
func (r UpdateTransactionRequest) TouchesLedger() bool {
	return r.WalletID != nil || r.Kind != nil || r.Amount != nil
}

type TransferRequest struct {
	FromWalletID string     `json:"fromWalletId"`
	ToWalletID   string     `json:"toWalletId"`
	Amount       int64      `json:"amount"`
	Description  string     `json:"description,omitempty"`
	OccurredAt   *time.Time `json:"date,omitempty"`
	RequestID    string     `json:"requestId,omitempty"`
}

type TransferResult struct {
	TransferID string              `json:"transferId"`
	Outgoing   *models.Transaction `json:"outgoing"`
	Incoming   *models.Transaction `json:"incoming"`
}
