package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tempobudget/budget-api/middleware"
	"github.com/tempobudget/budget-api/models"
	"github.com/tempobudget/budget-api/services"
)

type TransactionHandler struct {
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
}

func (h *TransactionHandler) requireAccess(c *gin.Context, budgetID string) bool {
	ok, err := h.Budgets.CanAccess(c.Request.Context(), budgetID, middleware.GetUserID(c))
	if err != nil {
		serviceError(c, err)
		return false
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return false
	}
	return true
}

func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	budgetID := c.Param("id")
	if !h.requireAccess(c, budgetID) {
		return
	}

	transactions, err := h.Transactions.ListForBudget(c.Request.Context(), budgetID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	budgetID := c.Param("id")
	if !h.requireAccess(c, budgetID) {
		return
	}

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.Transactions.Create(c.Request.Context(), budgetID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	budgetID, err := h.Transactions.BudgetID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	if !h.requireAccess(c, budgetID) {
		return
	}

	if err := h.Transactions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TransactionHandler) GetRecurring(c *gin.Context) {
	budgetID := c.Param("id")
	if !h.requireAccess(c, budgetID) {
		return
	}

	recurring, err := h.Transactions.ListRecurring(c.Request.Context(), budgetID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recurring)
}

func (h *TransactionHandler) CreateRecurring(c *gin.Context) {
	budgetID := c.Param("id")
	if !h.requireAccess(c, budgetID) {
		return
	}

	var req models.CreateRecurringTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.Transactions.CreateRecurring(c.Request.Context(), budgetID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *TransactionHandler) ToggleRecurring(c *gin.Context) {
	budgetID, err := h.Transactions.RecurringBudgetID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	if !h.requireAccess(c, budgetID) {
		return
	}

	active, err := h.Transactions.ToggleRecurring(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": active})
}

func (h *TransactionHandler) DeleteRecurring(c *gin.Context) {
	budgetID, err := h.Transactions.RecurringBudgetID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	if !h.requireAccess(c, budgetID) {
		return
	}

	if err := h.Transactions.DeleteRecurring(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
