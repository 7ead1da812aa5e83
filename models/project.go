package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project statuses
const (
	ProjectDraft   = "draft"
	ProjectOpen    = "open"
	ProjectClosed  = "closed"
	ProjectAwarded = "awarded"
)

type Project struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	GCID              uuid.UUID  `gorm:"type:uuid;index;not null" json:"gc_id"`
	GC                User       `gorm:"foreignKey:GCID" json:"gc,omitempty"`
	Title             string     `gorm:"not null;size:200" json:"title"`
	Description       string     `gorm:"type:text" json:"description,omitempty"`
	Location          string     `gorm:"size:200" json:"location,omitempty"`
	BidDeadline       *time.Time `json:"bid_deadline,omitempty"`
	Status            string     `gorm:"default:draft;size:20" json:"status"` // draft, open, closed, awarded
	GuaranteedMinBids int        `gorm:"default:3" json:"guaranteed_min_bids"`
	AIPlanSummaryID   *uuid.UUID `gorm:"type:uuid" json:"ai_plan_summary_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProjectPlanFile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null" json:"project_id"`
	FileURL   string    `gorm:"not null" json:"file_url"`
	FileName  string    `gorm:"size:255" json:"file_name"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `gorm:"size:100" json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *ProjectPlanFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateProjectRequest struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description"`
	Location          string     `json:"location"`
	BidDeadline       *time.Time `json:"bid_deadline"`
	GuaranteedMinBids int        `json:"guaranteed_min_bids"`
}

type UpdateProjectRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	BidDeadline *time.Time `json:"bid_deadline"`
	Status      string     `json:"status"`
}

type AttachPlanFileRequest struct {
	FileURL  string `json:"file_url" binding:"required"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}

// Response structs
type ProjectProgress struct {
	BidsReceived       int     `json:"bids_received"`
	GuaranteedMinBids  int     `json:"guaranteed_min_bids"`
	PercentToGuarantee float64 `json:"percent_to_guarantee"`
	GuaranteeMet       bool    `json:"guarantee_met"`
	InvitationsSent    int     `json:"invitations_sent"`
	ViewedCount        int     `json:"viewed_count"`
	AcceptedCount      int     `json:"accepted_count"`
	ResponseRate       float64 `json:"response_rate"`
}

type SubGuaranteeProgress struct {
	InvitesReceived    int     `json:"invites_received"`
	GuaranteedInvites  int     `json:"guaranteed_invites"`
	PercentToGuarantee float64 `json:"percent_to_guarantee"`
	GuaranteeMet       bool    `json:"guarantee_met"`
	Tier               string  `json:"tier"`
}
