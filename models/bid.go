package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid statuses, mutated only by the owning GC after submission.
const (
	BidSubmitted   = "submitted"
	BidReviewed    = "reviewed"
	BidShortlisted = "shortlisted"
	BidRejected    = "rejected"
	BidAwarded     = "awarded"
)

func ValidBidStatus(status string) bool {
	switch status {
	case BidSubmitted, BidReviewed, BidShortlisted, BidRejected, BidAwarded:
		return true
	}
	return false
}

type Bid struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bids_project_sub" json:"project_id"`
	SubID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bids_project_sub" json:"sub_id"`
	Sub         User       `gorm:"foreignKey:SubID" json:"sub,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	BidFileURL  string     `json:"bid_file_url,omitempty"`
	Status      string     `gorm:"default:submitted;size:20" json:"status"`
	AISummaryID *uuid.UUID `gorm:"type:uuid" json:"ai_summary_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type SubmitBidRequest struct {
	Amount     *float64 `json:"amount"`
	Notes      string   `json:"notes"`
	BidFileURL string   `json:"bid_file_url"`
}

type UpdateBidStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BidResponse struct {
	Bid
	SubName    string `json:"sub_name,omitempty"`
	SubCompany string `json:"sub_company,omitempty"`
	SubEmail   string `json:"sub_email,omitempty"`
	AISummary  string `json:"ai_summary,omitempty"`
}
