package models

import "time"

// Invitation statuses. Pending is the only non-terminal state.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

type Invitation struct {
	ID           string    `json:"id"`
	BudgetID     string    `json:"budget_id"`
	InviterID    string    `json:"inviter_id"`
	InviteeEmail string    `json:"invitee_email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// InvitationWithDetails is the pending-invitation list view, joined with
// budget and inviter names for display.
type InvitationWithDetails struct {
	Invitation
	BudgetName  string `json:"budget_name"`
	InviterName string `json:"inviter_name"`
}
