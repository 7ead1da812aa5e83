package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation lifecycle: pending → viewed → accepted | declined.
// A bid submission forces accepted from any live state; declined is terminal.
const (
	InvitationPending  = "pending"
	InvitationViewed   = "viewed"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

// Invitation grants one subcontractor the right to bid on one project. The
// target may be addressed by account id or by email; the email is always
// recorded, and SubID is bound the first time the sub acts on the invitation.
type Invitation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_invitations_project_sub;uniqueIndex:idx_invitations_project_email" json:"project_id"`
	GCID        uuid.UUID  `gorm:"type:uuid;not null" json:"gc_id"`
	SubID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_invitations_project_sub" json:"sub_id,omitempty"`
	InviteEmail string     `gorm:"not null;size:255;uniqueIndex:idx_invitations_project_email" json:"invite_email"`
	InviteToken string     `gorm:"uniqueIndex;size:64" json:"invite_token"`
	Status      string     `gorm:"default:pending;size:20" json:"status"`
	ViewedAt    *time.Time `json:"viewed_at,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// OpenForBid reports whether a bid may still be submitted against this
// invitation.
func (i *Invitation) OpenForBid() bool {
	switch i.Status {
	case InvitationPending, InvitationViewed, InvitationAccepted:
		return true
	}
	return false
}

// Responded reports whether the invitation has left the pending/viewed states.
func (i *Invitation) Responded() bool {
	return i.Status == InvitationAccepted || i.Status == InvitationDeclined
}

// Bind attaches a concrete account to an email-only invitation. No-op once a
// sub id is set.
func (i *Invitation) Bind(subID uuid.UUID) {
	if i.SubID == nil {
		i.SubID = &subID
	}
}

// ForIdentity scopes a query to the invitation belonging to the acting sub on
// a project, matching either the bound account id or the invited email.
func ForIdentity(projectID, subID uuid.UUID, email string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("project_id = ? AND (sub_id = ? OR invite_email = ?)", projectID, subID, email)
	}
}

type InviteSubRequest struct {
	InviteEmail string `json:"invite_email"`
	SubID       string `json:"sub_id"`
}

type RespondToInvitationRequest struct {
	Response string `json:"response" binding:"required"`
}

type SubGuaranteeInfo struct {
	InvitesReceived int    `json:"invites_received"`
	Guaranteed      int    `json:"guaranteed"`
	Tier            string `json:"tier"`
}
