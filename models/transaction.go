package models

import "time"

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

type Transaction struct {
	ID          string    `json:"id"`
	BudgetID    string    `json:"budget_id"`
	CategoryID  string    `json:"category_id"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"transaction_type"`
	Date        string    `json:"date"`
	Comment     string    `json:"comment,omitempty"`
	IsRecurring int       `json:"is_recurring"` // stored as 0/1
	CreatedAt   time.Time `json:"created_at"`
}

type CreateTransactionRequest struct {
	CategoryID string  `json:"category_id" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Type       string  `json:"transaction_type" binding:"required,oneof=income expense"`
	Date       string  `json:"date" binding:"required"`
	Comment    string  `json:"comment"`
}

type RecurringTransaction struct {
	ID         string    `json:"id"`
	BudgetID   string    `json:"budget_id"`
	CategoryID string    `json:"category_id"`
	Title      string    `json:"title"`
	Amount     float64   `json:"amount"`
	Type       string    `json:"transaction_type"`
	Frequency  string    `json:"frequency"`
	Day        *int      `json:"day,omitempty"`
	Active     int       `json:"active"` // stored as 0/1
	CreatedAt  time.Time `json:"created_at"`
}

type CreateRecurringTransactionRequest struct {
	CategoryID string  `json:"category_id" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Type       string  `json:"transaction_type" binding:"required,oneof=income expense"`
	Frequency  string  `json:"frequency" binding:"required,oneof=daily weekly monthly yearly"`
	Day        *int    `json:"day"`
}
