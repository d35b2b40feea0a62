package models

import "time"

type SavingsGoal struct {
	GoalID        string     `firestore:"goalId" json:"goalId"`
	Name          string     `firestore:"name" json:"name"`
	TargetAmount  int64      `firestore:"targetAmount" json:"targetAmount"`
	CurrentAmount int64      `firestore:"currentAmount" json:"currentAmount"`
	Deadline      *time.Time `firestore:"deadline,omitempty" json:"deadline,omitempty"`
	Icon          string     `firestore:"icon" json:"icon"`
	Color         string     `firestore:"color" json:"color"`
	CreatedAt     time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedAt" json:"updatedAt"`
}
