package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempobudget/budget-api/models"
)

func TestDeleteBudgetAuthorization(t *testing.T) {
	ctx := context.Background()
	members := NewMembershipService(testDB)
	budgets := NewBudgetService(testDB, members)

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)

	memberID, _ := createTestUser(t, "member")
	addMemberRow(t, budgetID, memberID, models.RoleMember)

	// a plain member cannot delete
	assert.ErrorIs(t, budgets.Delete(ctx, budgetID, memberID), ErrForbidden)

	// the owner can
	require.NoError(t, budgets.Delete(ctx, budgetID, ownerID))

	_, err := budgets.GetByID(ctx, budgetID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePersonalBudgetByCreator(t *testing.T) {
	ctx := context.Background()
	members := NewMembershipService(testDB)
	budgets := NewBudgetService(testDB, members)

	userID, _ := createTestUser(t, "solo")
	budget, err := budgets.Create(ctx, userID, "Just me", models.BudgetTypePersonal)
	require.NoError(t, err)

	otherID, _ := createTestUser(t, "other")
	assert.ErrorIs(t, budgets.Delete(ctx, budget.ID, otherID), ErrForbidden)

	require.NoError(t, budgets.Delete(ctx, budget.ID, userID))
}

func TestDeleteBudgetCascades(t *testing.T) {
	ctx := context.Background()
	members := NewMembershipService(testDB)
	budgets := NewBudgetService(testDB, members)
	invitations := NewInvitationService(testDB, members)
	categories := NewCategoryService(testDB)

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)
	_, inviteeEmail := createTestUser(t, "invitee")

	_, err := invitations.Create(ctx, budgetID, ownerID, inviteeEmail, models.RoleMember)
	require.NoError(t, err)
	_, err = categories.Create(ctx, budgetID, "Groceries", 400)
	require.NoError(t, err)

	require.NoError(t, budgets.Delete(ctx, budgetID, ownerID))

	for _, table := range []string{"budget_members", "budget_invitations", "categories"} {
		var count int
		err := testDB.QueryRow(
			`SELECT COUNT(*) FROM `+table+` WHERE budget_id = $1`, budgetID).Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count, "%s rows must be removed with the budget", table)
	}
}

func TestListForUserIncludesJoinedBudgets(t *testing.T) {
	ctx := context.Background()
	members := NewMembershipService(testDB)
	budgets := NewBudgetService(testDB, members)

	ownerID, _ := createTestUser(t, "owner")
	budgetID := createGroupBudget(t, ownerID)

	joinedID, _ := createTestUser(t, "joined")
	addMemberRow(t, budgetID, joinedID, models.RoleMember)

	list, err := budgets.ListForUser(ctx, joinedID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, budgetID, list[0].ID)
}

func TestCanAccess(t *testing.T) {
	ctx := context.Background()
	members := NewMembershipService(testDB)
	budgets := NewBudgetService(testDB, members)

	ownerID, _ := createTestUser(t, "owner")
	budget, err := budgets.Create(ctx, ownerID, "Just me", models.BudgetTypePersonal)
	require.NoError(t, err)

	ok, err := budgets.CanAccess(ctx, budget.ID, ownerID)
	require.NoError(t, err)
	assert.True(t, ok)

	strangerID, _ := createTestUser(t, "stranger")
	ok, err = budgets.CanAccess(ctx, budget.ID, strangerID)
	require.NoError(t, err)
	assert.False(t, ok)
}
