package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempobudget/budget-api/models"
)

func newInvitationService() *InvitationService {
	return NewInvitationService(testDB, NewMembershipService(testDB))
}

func TestCreateInvitationRequiresOwner(t *testing.T) {
	ctx := context.Background()
	invitations := newInvitationService()

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)
	_, inviteeEmail := createTestUser(t, "invitee")

	// a stranger cannot invite
	strangerID, _ := createTestUser(t, "stranger")
	_, err := invitations.Create(ctx, budgetID, strangerID, inviteeEmail, models.RoleMember)
	assert.ErrorIs(t, err, ErrForbidden)

	// neither can an admin: the check is owner-exact
	adminID, _ := createTestUser(t, "admin")
	addMemberRow(t, budgetID, adminID, models.RoleAdmin)
	_, err = invitations.Create(ctx, budgetID, adminID, inviteeEmail, models.RoleMember)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateInvitationUnknownEmail(t *testing.T) {
	ctx := context.Background()
	invitations := newInvitationService()

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)

	_, err := invitations.Create(ctx, budgetID, ownerID, "nobody@example.com", models.RoleMember)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvitationAlreadyMember(t *testing.T) {
	ctx := context.Background()
	invitations := newInvitationService()

	ownerID, ownerEmail := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)

	_, err := invitations.Create(ctx, budgetID, ownerID, ownerEmail, models.RoleMember)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDuplicatePendingInvitationsCoexist(t *testing.T) {
	ctx := context.Background()
	invitations := newInvitationService()

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)
	inviteeID, inviteeEmail := createTestUser(t, "invitee")

	_, err := invitations.Create(ctx, budgetID, ownerID, inviteeEmail, models.RoleMember)
	require.NoError(t, err)
	_, err = invitations.Create(ctx, budgetID, ownerID, inviteeEmail, models.RoleAdmin)
	require.NoError(t, err)

	pending, err := invitations.ListPendingForUser(ctx, inviteeID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestListPendingForUserDetails(t *testing.T) {
	ctx := context.Background()
	invitations := newInvitationService()

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)
	inviteeID, inviteeEmail := createTestUser(t, "invitee")

	created, err := invitations.Create(ctx, budgetID, ownerID, inviteeEmail, models.RoleMember)
	require.NoError(t, err)

	pending, err := invitations.ListPendingForUser(ctx, inviteeID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	assert.Equal(t, created.ID, pending[0].ID)
	assert.Equal(t, "Household", pending[0].BudgetName)
	assert.Equal(t, "owner", pending[0].InviterName)
	assert.Equal(t, models.InvitationPending, pending[0].Status)
}

func TestAcceptRequiresInviteeIdentity(t *testing.T) {
	ctx := context.Background()
	invitations := newInvitationService()

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)
	_, aliceEmail := createTestUser(t, "alice")
	bobID, _ := createTestUser(t, "bob")

	inv, err := invitations.Create(ctx, budgetID, ownerID, aliceEmail, models.RoleMember)
	require.NoError(t, err)

	// bob is authenticated but the invitation is addressed to alice
	_, err = invitations.Accept(ctx, inv.ID, bobID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAcceptCreatesMembershipAndCloses(t *testing.T) {
	ctx := context.Background()
	members := NewMembershipService(testDB)
	invitations := NewInvitationService(testDB, members)

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)
	inviteeID, inviteeEmail := createTestUser(t, "carol")

	inv, err := invitations.Create(ctx, budgetID, ownerID, inviteeEmail, models.RoleAdmin)
	require.NoError(t, err)

	acceptedBudgetID, err := invitations.Accept(ctx, inv.ID, inviteeID)
	require.NoError(t, err)
	assert.Equal(t, budgetID, acceptedBudgetID)

	hasRole, err := members.HasRole(ctx, budgetID, inviteeID, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, hasRole)

	var count int
	err = testDB.QueryRow(`
		SELECT COUNT(*) FROM budget_members WHERE budget_id = $1 AND user_id = $2
	`, budgetID, inviteeID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "exactly one membership row is created")

	var status string
	err = testDB.QueryRow(`SELECT status FROM budget_invitations WHERE id = $1`, inv.ID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, status)

	pending, err := invitations.ListPendingForUser(ctx, inviteeID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// accepted is terminal
	_, err = invitations.Accept(ctx, inv.ID, inviteeID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectCreatesNoMembership(t *testing.T) {
	ctx := context.Background()
	members := NewMembershipService(testDB)
	invitations := NewInvitationService(testDB, members)

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)
	inviteeID, inviteeEmail := createTestUser(t, "invitee")

	inv, err := invitations.Create(ctx, budgetID, ownerID, inviteeEmail, models.RoleMember)
	require.NoError(t, err)

	require.NoError(t, invitations.Reject(ctx, inv.ID, inviteeID))

	var status string
	err = testDB.QueryRow(`SELECT status FROM budget_invitations WHERE id = $1`, inv.ID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationRejected, status)

	isMember, err := members.IsMember(ctx, budgetID, inviteeID)
	require.NoError(t, err)
	assert.False(t, isMember)

	// rejected is terminal too
	assert.ErrorIs(t, invitations.Reject(ctx, inv.ID, inviteeID), ErrInvalidState)
	_, err = invitations.Accept(ctx, inv.ID, inviteeID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAcceptUnknownInvitation(t *testing.T) {
	ctx := context.Background()
	invitations := newInvitationService()

	userID, _ := createTestUser(t, "user")
	_, err := invitations.Accept(ctx, "00000000-0000-0000-0000-000000000000", userID)
	assert.ErrorIs(t, err, ErrNotFound)
}
