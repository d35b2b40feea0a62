package models

import (
	"time"
)

type DebtStatus string

const (
	DebtUnpaid  DebtStatus = "unpaid"
	DebtPartial DebtStatus = "partial"
	DebtPaid    DebtStatus = "paid"
)

type Debt struct {
	DebtID      string        `firestore:"debtId" json:"debtId"`
	UserID      string        `firestore:"userId" json:"userId"`
	Creditor    string        `firestore:"creditor" json:"creditor"`
	Amount      int64         `firestore:"amount" json:"amount"`       // remaining
	Principal   int64         `firestore:"principal" json:"principal"` // amount at creation or last full edit
	DueDate     time.Time     `firestore:"dueDate" json:"dueDate"`
	Status      DebtStatus    `firestore:"status" json:"status"`
	Description string        `firestore:"description,omitempty" json:"description,omitempty"`
	Payments    []DebtPayment `firestore:"payments,omitempty" json:"payments,omitempty"`
	CreatedAt   time.Time     `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `firestore:"updatedAt" json:"updatedAt"`
}

type DebtPayment struct {
	Amount    int64     `firestore:"amount" json:"amount"`
	Remaining int64     `firestore:"remaining" json:"remaining"`
	Note      string    `firestore:"note,omitempty" json:"note,omitempty"`
	PaidAt    time.Time `firestore:"paidAt" json:"paidAt"`
}

func (s DebtStatus) Valid() bool {
	switch s {
	case DebtUnpaid, DebtPartial, DebtPaid:
		return true
	default:
		return false
	}
}
