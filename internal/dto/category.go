package dto

import "github.com/GregMSThompson/wallet-ledger/internal/models"

type CreateCategoryRequest struct {
	Name  string                 `json:"name"`
	Kind  models.TransactionKind `json:"type"`
	Icon  string                 `json:"icon,omitempty"`
	Color string                 `json:"color,omitempty"`
}
