package dto

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/wallet-ledger/internal/models"
)

type ReplaceBudgetRequest struct {
	Allocations []models.BudgetAllocation `json:"allocations"`
}

type AllocationWithSpent struct {
	Category    string          `json:"category"`
	Allocated   int64           `json:"allocated"`
	Spent       int64           `json:"spent"`
	Remaining   int64           `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	Description string          `json:"description,omitempty"`
}

type BudgetSummary struct {
	Month            string                `json:"month"`
	Allocations      []AllocationWithSpent `json:"allocations"`
	TotalAllocated   int64                 `json:"totalAllocated"`
	TotalSpent       int64                 `json:"totalSpent"`
	Remaining        int64                 `json:"remaining"`
	UnallocatedSpent int64                 `json:"unallocatedSpent"`
}
