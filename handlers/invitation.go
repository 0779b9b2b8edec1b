package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tempobudget/budget-api/middleware"
	"github.com/tempobudget/budget-api/services"
)

type InvitationHandler struct {
	Invitations *services.InvitationService
}

// GetMyInvitations returns the caller's pending invitations.
func (h *InvitationHandler) GetMyInvitations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	invitations, err := h.Invitations.ListPendingForUser(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitations)
}

// AcceptInvitation joins the caller to the budget and closes the
// invitation. Only the invitee themselves can accept.
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	budgetID, err := h.Invitations.Accept(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Invitation accepted",
		"budget_id": budgetID,
	})
}

// RejectInvitation closes the invitation without creating a membership.
func (h *InvitationHandler) RejectInvitation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Invitations.Reject(c.Request.Context(), c.Param("id"), userID); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation rejected"})
}
