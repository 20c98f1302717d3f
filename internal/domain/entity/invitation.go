package entity

import "time"

// Estados de Invitation.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusExpired  = "expired"
)

// InvitationTTL vigencia de una invitación.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation invitación a unirse a una empresa. Role nunca es owner.
type Invitation struct {
	ID          string
	CompanyID   string
	Email       string
	InvitedBy   string
	Role        string
	Department  string
	Permissions Permissions
	Token       string
	Status      string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExpired vencida a la fecha indicada.
func (i *Invitation) IsExpired(now time.Time) bool { return now.After(i.ExpiresAt) }
