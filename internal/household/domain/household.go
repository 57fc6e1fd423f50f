package domain

import "time"

// InviteStatus represents the state of a household invitation
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// Invite is an email-addressed invitation embedded in a household record
type Invite struct {
	Email     string       `json:"email"`
	Status    InviteStatus `json:"status"`
	InvitedAt time.Time    `json:"invited_at"`
}

// Household is the ownership boundary for tasks and categories. It is either
// shared by multiple members or private to a single user.
type Household struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Members   []string  `json:"members" gorm:"serializer:json"` // user IDs
	CreatedBy string    `json:"created_by" gorm:"index;not null"`
	IsPrivate bool      `json:"is_private" gorm:"default:false"` // private households cannot be shared
	Invites   []Invite  `json:"invites" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMember reports whether the given user belongs to the household.
func (h *Household) HasMember(userID string) bool {
	for _, m := range h.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// PendingInvite returns the pending invite for the given email, or nil.
func (h *Household) PendingInvite(email string) *Invite {
	for i := range h.Invites {
		if h.Invites[i].Email == email && h.Invites[i].Status == InviteStatusPending {
			return &h.Invites[i]
		}
	}
	return nil
}
