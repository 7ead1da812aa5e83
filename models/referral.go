package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Referral lifecycle: pending → registered → activated. A rewarded state is
// declared for a future payout/redemption step; no transition reaches it yet.
const (
	ReferralPending    = "pending"
	ReferralRegistered = "registered"
	ReferralActivated  = "activated"
	ReferralRewarded   = "rewarded"
)

// Referral is the audit trail of one outreach from a referrer to a prospective
// user. Attribution itself is keyed off the referral code on the user record;
// the row here tracks the funnel.
type Referral struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReferrerID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_referrals_referrer_email" json:"referrer_id"`
	ReferredID    *uuid.UUID `gorm:"type:uuid" json:"referred_id,omitempty"`
	ReferredEmail string     `gorm:"not null;size:255;uniqueIndex:idx_referrals_referrer_email" json:"referred_email"`
	ReferralCode  string     `gorm:"index;not null;size:20" json:"referral_code"`
	Status        string     `gorm:"default:pending;size:20" json:"status"`
	RewardType    string     `gorm:"size:50" json:"reward_type,omitempty"`
	RewardAmount  int        `json:"reward_amount"`
	ReferredRole  string     `gorm:"size:10" json:"referred_role,omitempty"`
	RegisteredAt  *time.Time `json:"registered_at,omitempty"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type SendReferralInviteRequest struct {
	Email      string `json:"email"`
	TargetRole string `json:"target_role"`
}
