package models

import "time"

// Category is a user-defined transaction category. Built-in categories are not
// stored; see DefaultCategories.
type Category struct {
	CategoryID string          `firestore:"categoryId" json:"categoryId"`
	Name       string          `firestore:"name" json:"name"`
	Kind       TransactionKind `firestore:"kind" json:"kind"`
	Icon       string          `firestore:"icon,omitempty" json:"icon,omitempty"`
	Color      string          `firestore:"color,omitempty" json:"color,omitempty"`
	Custom     bool            `firestore:"-" json:"custom"`
	CreatedAt  time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time       `firestore:"updatedAt" json:"updatedAt"`
}

var DefaultCategories = map[TransactionKind][]string{
	KindExpense: {
		"Food & Drink",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Health",
		"Education",
		"Household",
		"Clothing",
		"Beauty",
		"Sports",
		"Gifts",
		"Charity",
		"Other",
	},
	KindIncome: {
		"Salary",
		"Bonus",
		"Investment",
		"Business",
		"Freelance",
		"Gifts",
		CategoryOpeningBalance,
		"Other",
	},
	KindBill: {
		"Electricity",
		"Water",
		"Internet",
		"Phone",
		"Cable TV",
		"Streaming",
		"Insurance",
		"Installment",
		"Rent",
		"Other",
	},
}
