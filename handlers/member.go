package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tempobudget/budget-api/middleware"
	"github.com/tempobudget/budget-api/models"
	"github.com/tempobudget/budget-api/services"
)

type MemberHandler struct {
	Members     *services.MembershipService
	Invitations *services.InvitationService
}

// GetMembers lists a group budget's members. Members only.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	budgetID := c.Param("id")

	isMember, err := h.Members.IsMember(c.Request.Context(), budgetID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	members, err := h.Members.List(c.Request.Context(), budgetID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// InviteMember creates a pending invitation. Owner only; the service
// enforces the role check.
func (h *MemberHandler) InviteMember(c *gin.Context) {
	userID := middleware.GetUserID(c)
	budgetID := c.Param("id")

	var req models.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.Invitations.Create(c.Request.Context(), budgetID, userID, req.Email, req.Role)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// RemoveMember deletes a membership row. Owner only.
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	userID := middleware.GetUserID(c)
	budgetID := c.Param("id")

	isOwner, err := h.Members.HasRole(c.Request.Context(), budgetID, userID, models.RoleOwner)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can remove members"})
		return
	}

	if err := h.Members.Remove(c.Request.Context(), budgetID, c.Param("member_id")); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
