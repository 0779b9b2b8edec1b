package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tempobudget/budget-api/models"
	"github.com/tempobudget/budget-api/utils"
)

type BudgetService struct {
	db      *sql.DB
	members *MembershipService
}

func NewBudgetService(db *sql.DB, members *MembershipService) *BudgetService {
	return &BudgetService{db: db, members: members}
}

// Create inserts a budget. Group budgets get their owner membership in the
// same transaction; personal budgets have no membership rows and are
// authorized through owner_id alone.
func (s *BudgetService) Create(ctx context.Context, ownerID, name, budgetType string) (*models.Budget, error) {
	budget := &models.Budget{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Type:      budgetType,
		IsActive:  0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budgets (id, owner_id, name, budget_type, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, budget.ID, budget.OwnerID, budget.Name, budget.Type, budget.IsActive,
			budget.CreatedAt, budget.UpdatedAt)
		if err != nil {
			return err
		}

		if budget.Type == models.BudgetTypeGroup {
			if _, err := s.members.AddOwner(ctx, tx, budget.ID, ownerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// ListForUser returns budgets the user created plus group budgets they
// joined through an invitation.
func (s *BudgetService) ListForUser(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, budget_type, is_active, created_at, updated_at
		FROM budgets
		WHERE owner_id = $1
		   OR id IN (SELECT budget_id FROM budget_members WHERE user_id = $1)
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Type, &b.IsActive,
			&b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

func (s *BudgetService) GetByID(ctx context.Context, budgetID string) (*models.Budget, error) {
	var b models.Budget
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, budget_type, is_active, created_at, updated_at
		FROM budgets
		WHERE id = $1
	`, budgetID).Scan(&b.ID, &b.OwnerID, &b.Name, &b.Type, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Update changes budget metadata. Only the creator may update.
func (s *BudgetService) Update(ctx context.Context, budgetID, callerID string, name *string, isActive *int) (*models.Budget, error) {
	budget, err := s.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.OwnerID != callerID {
		return nil, ErrForbidden
	}

	if name != nil {
		budget.Name = *name
	}
	if isActive != nil {
		budget.IsActive = *isActive
	}
	budget.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx, `
		UPDATE budgets
		SET name = $1, is_active = $2, updated_at = $3
		WHERE id = $4
	`, budget.Name, budget.IsActive, budget.UpdatedAt, budgetID)
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// Delete removes a budget and everything under it. The caller must hold
// the owner role on a group budget, or be the creator of a personal one.
func (s *BudgetService) Delete(ctx context.Context, budgetID, callerID string) error {
	isOwner, err := s.members.HasRole(ctx, budgetID, callerID, models.RoleOwner)
	if err != nil {
		return err
	}

	var isCreator bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM budgets WHERE id = $1 AND owner_id = $2)`,
		budgetID, callerID).Scan(&isCreator)
	if err != nil {
		return err
	}

	if !isOwner && !isCreator {
		return ErrForbidden
	}

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM transactions WHERE budget_id = $1`,
			`DELETE FROM recurring_transactions WHERE budget_id = $1`,
			`DELETE FROM categories WHERE budget_id = $1`,
			`DELETE FROM budget_invitations WHERE budget_id = $1`,
			`DELETE FROM budget_members WHERE budget_id = $1`,
			`DELETE FROM budgets WHERE id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, q, budgetID); err != nil {
				return err
			}
		}
		return nil
	})
}

// CanAccess reports whether the user may read or write the budget's data:
// either they created it or they hold a membership row.
func (s *BudgetService) CanAccess(ctx context.Context, budgetID, userID string) (bool, error) {
	var isCreator bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM budgets WHERE id = $1 AND owner_id = $2)`,
		budgetID, userID).Scan(&isCreator)
	if err != nil {
		return false, err
	}
	if isCreator {
		return true, nil
	}
	return s.members.IsMember(ctx, budgetID, userID)
}
