package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tempobudget/budget-api/models"
)

type CategoryService struct {
	db *sql.DB
}

func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) ListForBudget(ctx context.Context, budgetID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, budget_id, name, amount, created_at
		FROM categories
		WHERE budget_id = $1
		ORDER BY created_at
	`, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.BudgetID, &c.Name, &c.Amount, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *CategoryService) Create(ctx context.Context, budgetID, name string, amount float64) (*models.Category, error) {
	category := &models.Category{
		ID:        uuid.New().String(),
		BudgetID:  budgetID,
		Name:      name,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, budget_id, name, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, category.ID, category.BudgetID, category.Name, category.Amount, category.CreatedAt)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// GetByID also returns the parent budget ID so handlers can run the access
// check before mutating.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, budget_id, name, amount, created_at
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.BudgetID, &c.Name, &c.Amount, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, name *string, amount *float64) (*models.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name == nil && amount == nil {
		return nil, ErrInvalidState
	}
	if name != nil {
		category.Name = *name
	}
	if amount != nil {
		category.Amount = *amount
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, amount = $2 WHERE id = $3`,
		category.Name, category.Amount, id)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
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
