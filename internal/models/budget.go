package models

import (
	"time"
)

// Budget is the allocation plan for one calendar month. Spent amounts are not
// stored; they are derived from transactions whenever the budget is read.
type Budget struct {
	UserID      string             `firestore:"userId" json:"userId"`
	Month       string             `firestore:"month" json:"month"` // YYYY-MM, doc ID
	TotalBudget int64              `firestore:"totalBudget" json:"totalBudget"`
	Allocations []BudgetAllocation `firestore:"allocations" json:"allocations"`
	CreatedAt   time.Time          `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `firestore:"updatedAt" json:"updatedAt"`
}

type BudgetAllocation struct {
	Category    string `firestore:"category" json:"category"`
	Amount      int64  `firestore:"amount" json:"amount"`
	Description string `firestore:"description,omitempty" json:"description,omitempty"`
}
