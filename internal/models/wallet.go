package models

import (
	"time"
)

type WalletKind string

const (
	WalletCash    WalletKind = "cash"
	WalletBank    WalletKind = "bank"
	WalletEWallet WalletKind = "e-wallet"
)

// Wallet holds a balance in minor currency units. Balance is derived state:
// it must always equal the sum of the ledger effects of the wallet's
// transactions and is only written through the ledger.
type Wallet struct {
	WalletID  string     `firestore:"walletId" json:"walletId"`
	UserID    string     `firestore:"userId" json:"userId"`
	Name      string     `firestore:"name" json:"name"`
	Kind      WalletKind `firestore:"kind" json:"kind"`
	Balance   int64      `firestore:"balance" json:"balance"`
	Icon      string     `firestore:"icon" json:"icon"`
	Color     string     `firestore:"color" json:"color"`
	Version   int64      `firestore:"version" json:"version"`
	CreatedAt time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

func (k WalletKind) Valid() bool {
	switch k {
	case WalletCash, WalletBank, WalletEWallet:
		return true
	default:
		return false
	}
}
