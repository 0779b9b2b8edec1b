package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tempobudget/budget-api/models"
)

// MembershipService answers role and membership questions for group
// budgets. Every check re-reads the store; nothing is cached in process.
type MembershipService struct {
	db *sql.DB
}

func NewMembershipService(db *sql.DB) *MembershipService {
	return &MembershipService{db: db}
}

// IsMember reports whether the user has any membership row for the budget.
func (s *MembershipService) IsMember(ctx context.Context, budgetID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM budget_members
			WHERE budget_id = $1 AND user_id = $2
		)
	`, budgetID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// HasRole reports whether the user holds exactly the given role on the
// budget. There is no role hierarchy: an admin does not satisfy an owner
// check.
func (s *MembershipService) HasRole(ctx context.Context, budgetID, userID, role string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM budget_members
			WHERE budget_id = $1 AND user_id = $2 AND role = $3
		)
	`, budgetID, userID, role).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List returns the budget's members joined with user profile fields. The
// caller is responsible for the member-only access check.
func (s *MembershipService) List(ctx context.Context, budgetID string) ([]models.BudgetMemberWithUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT bm.id, bm.budget_id, bm.user_id, bm.role, bm.created_at,
		       u.name, u.email, COALESCE(u.avatar, '')
		FROM budget_members bm
		JOIN users u ON bm.user_id = u.id
		WHERE bm.budget_id = $1
		ORDER BY bm.created_at
	`, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.BudgetMemberWithUser{}
	for rows.Next() {
		var m models.BudgetMemberWithUser
		err := rows.Scan(&m.ID, &m.BudgetID, &m.UserID, &m.Role, &m.CreatedAt,
			&m.UserName, &m.UserEmail, &m.UserAvatar)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// AddOwner inserts the owner membership for a freshly created group budget.
// It runs inside the budget-creation transaction so a budget never exists
// without its owner row.
func (s *MembershipService) AddOwner(ctx context.Context, tx *sql.Tx, budgetID, userID string) (*models.BudgetMember, error) {
	member := &models.BudgetMember{
		ID:        uuid.New().String(),
		BudgetID:  budgetID,
		UserID:    userID,
		Role:      models.RoleOwner,
		CreatedAt: time.Now(),
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO budget_members (id, budget_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, member.ID, member.BudgetID, member.UserID, member.Role, member.CreatedAt)
	if err != nil {
		return nil, err
	}

	return member, nil
}

// Remove deletes a membership row. The owner-only authorization check
// belongs to the caller.
func (s *MembershipService) Remove(ctx context.Context, budgetID, memberID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM budget_members
		WHERE id = $1 AND budget_id = $2
	`, memberID, budgetID)
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
