package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tempobudget/budget-api/middleware"
	"github.com/tempobudget/budget-api/models"
	"github.com/tempobudget/budget-api/services"
)

type CategoryHandler struct {
	Categories *services.CategoryService
	Budgets    *services.BudgetService
}

func (h *CategoryHandler) requireAccess(c *gin.Context, budgetID string) bool {
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

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	budgetID := c.Param("id")
	if !h.requireAccess(c, budgetID) {
		return
	}

	categories, err := h.Categories.ListForBudget(c.Request.Context(), budgetID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	budgetID := c.Param("id")
	if !h.requireAccess(c, budgetID) {
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), budgetID, req.Name, req.Amount)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	category, err := h.Categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	if !h.requireAccess(c, category.BudgetID) {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Categories.Update(c.Request.Context(), category.ID, req.Name, req.Amount)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, err := h.Categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	if !h.requireAccess(c, category.BudgetID) {
		return
	}

	if err := h.Categories.Delete(c.Request.Context(), category.ID); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
