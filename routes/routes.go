package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/tempobudget/budget-api/auth"
	"github.com/tempobudget/budget-api/handlers"
	"github.com/tempobudget/budget-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB, codec *auth.Codec) {
	authHandler := &handlers.AuthHandler{DB: db, Codec: codec}

	rg.POST("/auth/register", authHandler.Register)
	rg.POST("/auth/login", authHandler.Login)
}

// SetupBudgetRoutes sets up protected budget and member routes.
func SetupBudgetRoutes(rg *gin.RouterGroup, db *sql.DB) {
	members := services.NewMembershipService(db)
	budgets := services.NewBudgetService(db, members)
	invitations := services.NewInvitationService(db, members)

	budgetHandler := &handlers.BudgetHandler{Budgets: budgets}
	memberHandler := &handlers.MemberHandler{Members: members, Invitations: invitations}

	rg.GET("/budgets", budgetHandler.GetBudgets)
	rg.POST("/budgets", budgetHandler.CreateBudget)
	rg.GET("/budgets/:id", budgetHandler.GetBudget)
	rg.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	rg.DELETE("/budgets/:id", budgetHandler.DeleteBudget)

	rg.GET("/budgets/:id/members", memberHandler.GetMembers)
	rg.POST("/budgets/:id/members", memberHandler.InviteMember)
	rg.DELETE("/budgets/:id/members/:member_id", memberHandler.RemoveMember)
}

// SetupInvitationRoutes sets up protected invitation routes.
func SetupInvitationRoutes(rg *gin.RouterGroup, db *sql.DB) {
	members := services.NewMembershipService(db)
	invitations := services.NewInvitationService(db, members)

	invitationHandler := &handlers.InvitationHandler{Invitations: invitations}

	rg.GET("/invitations", invitationHandler.GetMyInvitations)
	rg.POST("/invitations/:id/accept", invitationHandler.AcceptInvitation)
	rg.POST("/invitations/:id/reject", invitationHandler.RejectInvitation)
}

// SetupCategoryRoutes sets up protected category routes.
func SetupCategoryRoutes(rg *gin.RouterGroup, db *sql.DB) {
	members := services.NewMembershipService(db)
	budgets := services.NewBudgetService(db, members)
	categories := services.NewCategoryService(db)

	categoryHandler := &handlers.CategoryHandler{Categories: categories, Budgets: budgets}

	rg.GET("/budgets/:id/categories", categoryHandler.GetCategories)
	rg.POST("/budgets/:id/categories", categoryHandler.CreateCategory)
	rg.PUT("/categories/:id", categoryHandler.UpdateCategory)
	rg.DELETE("/categories/:id", categoryHandler.DeleteCategory)
}

// SetupTransactionRoutes sets up protected transaction routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB) {
	members := services.NewMembershipService(db)
	budgets := services.NewBudgetService(db, members)
	transactions := services.NewTransactionService(db)

	transactionHandler := &handlers.TransactionHandler{Transactions: transactions, Budgets: budgets}

	rg.GET("/budgets/:id/transactions", transactionHandler.GetTransactions)
	rg.POST("/budgets/:id/transactions", transactionHandler.CreateTransaction)
	rg.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	rg.GET("/budgets/:id/recurring", transactionHandler.GetRecurring)
	rg.POST("/budgets/:id/recurring", transactionHandler.CreateRecurring)
	rg.PUT("/recurring/:id/toggle", transactionHandler.ToggleRecurring)
	rg.DELETE("/recurring/:id", transactionHandler.DeleteRecurring)
}
