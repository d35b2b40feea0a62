package models

import (
	"time"
)

type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
	KindBill    TransactionKind = "bill"
)

type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
	RecurYearly  RecurrencePattern = "yearly"
)

// CategoryTransfer tags both legs of a wallet-to-wallet transfer.
const CategoryTransfer = "Transfer"

// CategoryOpeningBalance tags the transaction that seeds a new wallet's balance.
const CategoryOpeningBalance = "Opening Balance"

type Transaction struct {
	TransactionID string            `firestore:"transactionId" json:"transactionId"`
	UserID        string            `firestore:"userId" json:"userId"`
	WalletID      string            `firestore:"walletId" json:"walletId"`
	Kind          TransactionKind   `firestore:"kind" json:"kind"`
	Category      string            `firestore:"category" json:"category"`
	Amount        int64             `firestore:"amount" json:"amount"` // always positive, minor units
	Description   string            `firestore:"description,omitempty" json:"description,omitempty"`
	OccurredAt    time.Time         `firestore:"occurredAt" json:"occurredAt"`
	Recurring     RecurrencePattern `firestore:"recurring,omitempty" json:"recurring,omitempty"`
	TransferID    string            `firestore:"transferId,omitempty" json:"transferId,omitempty"` // shared by both legs of a transfer
	Version       int64             `firestore:"version" json:"version"`
	CreatedAt     time.Time         `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time         `firestore:"updatedAt" json:"updatedAt"`
}

func (k TransactionKind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindBill:
		return true
	default:
		return false
	}
}

func (p RecurrencePattern) Valid() bool {
	switch p {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	default:
		return false
	}
}

func (t *Transaction) IsTransferLeg() bool {
	return t.TransferID != ""
}
