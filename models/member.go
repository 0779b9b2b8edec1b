package models

import "time"

// Member roles. Authorization checks compare these exactly; admin does not
// inherit owner privileges.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type BudgetMember struct {
	ID        string    `json:"id"`
	BudgetID  string    `json:"budget_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// BudgetMemberWithUser is the member list view, joined with user profile
// fields for display.
type BudgetMemberWithUser struct {
	BudgetMember
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	UserAvatar string `json:"user_avatar,omitempty"`
}

// InviteMemberRequest never accepts "owner"; the owner role is assigned
// once, at group budget creation.
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin member"`
}
