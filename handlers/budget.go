package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tempobudget/budget-api/middleware"
	"github.com/tempobudget/budget-api/models"
	"github.com/tempobudget/budget-api/services"
)

type BudgetHandler struct {
	Budgets *services.BudgetService
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.Budgets.Create(c.Request.Context(), userID, req.Name, req.Type)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID := middleware.GetUserID(c)

	budgets, err := h.Budgets.ListForUser(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budget, err := h.Budgets.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.Budgets.Update(c.Request.Context(), c.Param("id"), userID, req.Name, req.IsActive)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Budgets.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
