package models

import "time"

type Category struct {
	ID        string    `json:"id"`
	BudgetID  string    `json:"budget_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount"`
}

type UpdateCategoryRequest struct {
	Name   *string  `json:"name"`
	Amount *float64 `json:"amount"`
}
