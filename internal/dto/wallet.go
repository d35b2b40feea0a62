package dto

import "github.com/GregMSThompson/wallet-ledger/internal/models"

type CreateWalletRequest struct {
	Name           string            `json:"name"`
	Kind           models.WalletKind `json:"type"`
	InitialBalance int64             `json:"initialBalance,omitempty"`
	Icon           string            `json:"icon,omitempty"`
	Color          string            `json:"color,omitempty"`
}

// UpdateWalletRequest carries presentation fields only. Balances change
// through transactions.
type UpdateWalletRequest struct {
	Name  *string            `json:"name,omitempty"`
	Kind  *models.WalletKind `json:"type,omitempty"`
	Icon  *string            `json:"icon,omitempty"`
	Color *string            `json:"color,omitempty"`
}

type ReconcileResult struct {
	WalletID  string `json:"walletId"`
	Stored    int64  `json:"stored"`
	Computed  int64  `json:"computed"`
	Drift     int64  `json:"drift"`
	Corrected bool   `json:"corrected"`
}
