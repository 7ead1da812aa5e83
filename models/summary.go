package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AI summary kinds
const (
	SummaryPlan       = "plan"
	SummaryBid        = "bid"
	SummaryComparison = "comparison"
)

// AISummary stores the output of the external summarization collaborator.
// Rows are written best-effort after the owning record is committed.
type AISummary struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind              string    `gorm:"not null;size:20" json:"kind"` // plan, bid, comparison
	SummaryText       string    `gorm:"type:text" json:"summary_text"`
	ExtractedPrice    *float64  `json:"extracted_price,omitempty"`
	ExtractedDuration string    `gorm:"size:50" json:"extracted_duration,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (s *AISummary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
