package models

import "time"

const (
	BudgetTypePersonal = "personal"
	BudgetTypeGroup    = "group"
)

type Budget struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Type      string    `json:"budget_type"`
	IsActive  int       `json:"is_active"` // stored as 0/1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateBudgetRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"budget_type" binding:"required,oneof=personal group"`
}

type UpdateBudgetRequest struct {
	Name     *string `json:"name"`
	IsActive *int    `json:"is_active" binding:"omitempty,oneof=0 1"`
}
