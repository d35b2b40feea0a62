package dto

import "time"

type CreateGoalRequest struct {
	Name          string     `json:"name"`
	TargetAmount  int64      `json:"targetAmount"`
	CurrentAmount int64      `json:"currentAmount,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Color         string     `json:"color,omitempty"`
}

type UpdateGoalRequest struct {
	Name          *string    `json:"name,omitempty"`
	TargetAmount  *int64     `json:"targetAmount,omitempty"`
	CurrentAmount *int64     `json:"currentAmount,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Icon          *string    `json:"icon,omitempty"`
	Color         *string    `json:"color,omitempty"`
}
