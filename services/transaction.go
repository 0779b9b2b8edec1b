package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tempobudget/budget-api/models"
)

type TransactionService struct {
	db *sql.DB
}

func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{db: db}
}

func (s *TransactionService) ListForBudget(ctx context.Context, budgetID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, budget_id, category_id, title, amount, transaction_type,
		       date, COALESCE(comment, ''), is_recurring, created_at
		FROM transactions
		WHERE budget_id = $1
		ORDER BY date DESC, created_at DESC
	`, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.BudgetID, &t.CategoryID, &t.Title, &t.Amount,
			&t.Type, &t.Date, &t.Comment, &t.IsRecurring, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func (s *TransactionService) Create(ctx context.Context, budgetID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	txn := &models.Transaction{
		ID:         uuid.New().String(),
		BudgetID:   budgetID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Amount:     req.Amount,
		Type:       req.Type,
		Date:       req.Date,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, budget_id, category_id, title, amount, transaction_type, date, comment, is_recurring, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
	`, txn.ID, txn.BudgetID, txn.CategoryID, txn.Title, txn.Amount, txn.Type,
		txn.Date, txn.Comment, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func (s *TransactionService) BudgetID(ctx context.Context, transactionID string) (string, error) {
	var budgetID string
	err := s.db.QueryRowContext(ctx,
		`SELECT budget_id FROM transactions WHERE id = $1`, transactionID).Scan(&budgetID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return budgetID, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TransactionService) ListRecurring(ctx context.Context, budgetID string) ([]models.RecurringTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, budget_id, category_id, title, amount, transaction_type,
		       frequency, day, active, created_at
		FROM recurring_transactions
		WHERE budget_id = $1
		ORDER BY created_at
	`, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recurring := []models.RecurringTransaction{}
	for rows.Next() {
		var r models.RecurringTransaction
		err := rows.Scan(&r.ID, &r.BudgetID, &r.CategoryID, &r.Title, &r.Amount,
			&r.Type, &r.Frequency, &r.Day, &r.Active, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		recurring = append(recurring, r)
	}

	return recurring, rows.Err()
}

func (s *TransactionService) CreateRecurring(ctx context.Context, budgetID string, req models.CreateRecurringTransactionRequest) (*models.RecurringTransaction, error) {
	rec := &models.RecurringTransaction{
		ID:         uuid.New().String(),
		BudgetID:   budgetID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Amount:     req.Amount,
		Type:       req.Type,
		Frequency:  req.Frequency,
		Day:        req.Day,
		Active:     1,
		CreatedAt:  time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recurring_transactions (id, budget_id, category_id, title, amount, transaction_type, frequency, day, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, rec.ID, rec.BudgetID, rec.CategoryID, rec.Title, rec.Amount, rec.Type,
		rec.Frequency, rec.Day, rec.Active, rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *TransactionService) RecurringBudgetID(ctx context.Context, id string) (string, error) {
	var budgetID string
	err := s.db.QueryRowContext(ctx,
		`SELECT budget_id FROM recurring_transactions WHERE id = $1`, id).Scan(&budgetID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return budgetID, nil
}

// ToggleRecurring flips the active flag and returns the new value.
func (s *TransactionService) ToggleRecurring(ctx context.Context, id string) (int, error) {
	var active int
	err := s.db.QueryRowContext(ctx, `
		UPDATE recurring_transactions
		SET active = 1 - active
		WHERE id = $1
		RETURNING active
	`, id).Scan(&active)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return active, nil
}

func (s *TransactionService) DeleteRecurring(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM recurring_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
