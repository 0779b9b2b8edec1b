package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tempobudget/budget-api/models"
	"github.com/tempobudget/budget-api/utils"
)

// InvitationService drives the pending → accepted/rejected state machine
// that admits members into group budgets. Both terminal states are final.
type InvitationService struct {
	db      *sql.DB
	members *MembershipService
}

func NewInvitationService(db *sql.DB, members *MembershipService) *InvitationService {
	return &InvitationService{db: db, members: members}
}

// Create inserts a pending invitation. The inviter must hold the owner
// role, the invitee email must belong to an existing user, and that user
// must not already be a member. Duplicate pending invitations for the same
// budget and email are allowed.
func (s *InvitationService) Create(ctx context.Context, budgetID, inviterID, inviteeEmail, role string) (*models.Invitation, error) {
	isOwner, err := s.members.HasRole(ctx, budgetID, inviterID, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, ErrForbidden
	}

	var userExists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, inviteeEmail,
	).Scan(&userExists)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, ErrNotFound
	}

	var alreadyMember bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM budget_members bm
			JOIN users u ON bm.user_id = u.id
			WHERE bm.budget_id = $1 AND u.email = $2
		)
	`, budgetID, inviteeEmail).Scan(&alreadyMember)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, ErrConflict
	}

	inv := &models.Invitation{
		ID:           uuid.New().String(),
		BudgetID:     budgetID,
		InviterID:    inviterID,
		InviteeEmail: inviteeEmail,
		Role:         role,
		Status:       models.InvitationPending,
		CreatedAt:    time.Now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO budget_invitations (id, budget_id, inviter_id, invitee_email, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, inv.ID, inv.BudgetID, inv.InviterID, inv.InviteeEmail, inv.Role, inv.Status, inv.CreatedAt)
	if err != nil {
		return nil, err
	}

	utils.SafeInfo("invitation %s created for %s on budget %s", inv.ID, utils.MaskEmail(inviteeEmail), budgetID)
	return inv, nil
}

// ListPendingForUser returns the pending invitations addressed to the
// user's email, joined with budget and inviter names for display.
func (s *InvitationService) ListPendingForUser(ctx context.Context, userID string) ([]models.InvitationWithDetails, error) {
	email, err := s.userEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT bi.id, bi.budget_id, bi.inviter_id, bi.invitee_email, bi.role, bi.status, bi.created_at,
		       b.name, u.name
		FROM budget_invitations bi
		JOIN budgets b ON bi.budget_id = b.id
		JOIN users u ON bi.inviter_id = u.id
		WHERE bi.invitee_email = $1 AND bi.status = $2
	`, email, models.InvitationPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := []models.InvitationWithDetails{}
	for rows.Next() {
		var inv models.InvitationWithDetails
		err := rows.Scan(&inv.ID, &inv.BudgetID, &inv.InviterID, &inv.InviteeEmail,
			&inv.Role, &inv.Status, &inv.CreatedAt, &inv.BudgetName, &inv.InviterName)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

// Accept resolves a pending invitation in the caller's favor: one
// membership row is created and the invitation becomes accepted, both in
// the same transaction. Only the invitee's own identity may accept.
func (s *InvitationService) Accept(ctx context.Context, invitationID, callerID string) (string, error) {
	inv, err := s.loadForTransition(ctx, invitationID, callerID)
	if err != nil {
		return "", err
	}

	err = utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budget_members (id, budget_id, user_id, role, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), inv.BudgetID, callerID, inv.Role, time.Now())
		if err != nil {
			return fmt.Errorf("failed to add member: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE budget_invitations SET status = $1 WHERE id = $2`,
			models.InvitationAccepted, invitationID)
		if err != nil {
			return fmt.Errorf("failed to update invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	utils.SafeInfo("invitation %s accepted by user %s", invitationID, callerID)
	return inv.BudgetID, nil
}

// Reject marks a pending invitation rejected. No membership is created.
func (s *InvitationService) Reject(ctx context.Context, invitationID, callerID string) error {
	if _, err := s.loadForTransition(ctx, invitationID, callerID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE budget_invitations SET status = $1 WHERE id = $2`,
		models.InvitationRejected, invitationID)
	return err
}

// loadForTransition fetches the invitation and runs the shared accept /
// reject preconditions: the invitation exists, is still pending, and is
// addressed to the caller's own email.
func (s *InvitationService) loadForTransition(ctx context.Context, invitationID, callerID string) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.QueryRowContext(ctx, `
		SELECT id, budget_id, inviter_id, invitee_email, role, status, created_at
		FROM budget_invitations
		WHERE id = $1
	`, invitationID).Scan(&inv.ID, &inv.BudgetID, &inv.InviterID, &inv.InviteeEmail,
		&inv.Role, &inv.Status, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if inv.Status != models.InvitationPending {
		return nil, ErrInvalidState
	}

	email, err := s.userEmail(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if email != inv.InviteeEmail {
		return nil, ErrForbidden
	}

	return &inv, nil
}

func (s *InvitationService) userEmail(ctx context.Context, userID string) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx,
		`SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}
