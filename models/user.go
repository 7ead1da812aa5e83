package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Marketplace roles
const (
	RoleGC    = "gc"
	RoleSub   = "sub"
	RoleAdmin = "admin"
)

// Subscription tiers (subs only). The guarantee each tier carries lives in
// services.TierGuarantees.
const (
	TierFree     = "free"
	TierStandard = "standard"
	TierPro      = "pro"
	TierElite    = "elite"
)

func ValidRole(role string) bool {
	return role == RoleGC || role == RoleSub || role == RoleAdmin
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:100" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	Role         string    `gorm:"not null;size:10" json:"role"` // gc, sub, admin
	CompanyName  string    `gorm:"size:150" json:"company_name,omitempty"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	Trade        string    `gorm:"size:100" json:"trade,omitempty"`  // sub only
	Region       string    `gorm:"size:100" json:"region,omitempty"` // sub only

	// Guaranteed Bid System (subs): the tier commits to a minimum number of
	// invitations per month; the received counter is reset out-of-band monthly.
	SubscriptionTier          string `gorm:"default:free;size:20" json:"subscription_tier"`
	GuaranteedInvitesPerMonth int    `gorm:"default:3" json:"guaranteed_invites_per_month"`
	InvitesReceivedThisMonth  int    `gorm:"default:0" json:"invites_received_this_month"`

	BidlyAccess bool `gorm:"default:false" json:"bidly_access"`

	// Referral growth flywheel
	ReferralCode    string     `gorm:"uniqueIndex;size:20" json:"referral_code"`
	ReferredBy      *uuid.UUID `gorm:"type:uuid" json:"referred_by,omitempty"` // set at most once, at registration
	ReferralCount   int        `gorm:"default:0" json:"referral_count"`
	ReferralRewards int        `gorm:"default:0" json:"referral_rewards"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Response struct (what we return to clients)
type UserResponse struct {
	ID                        uuid.UUID `json:"id"`
	Name                      string    `json:"name"`
	Email                     string    `json:"email"`
	Role                      string    `json:"role"`
	CompanyName               string    `json:"company_name,omitempty"`
	Phone                     string    `json:"phone,omitempty"`
	Trade                     string    `json:"trade,omitempty"`
	Region                    string    `json:"region,omitempty"`
	SubscriptionTier          string    `json:"subscription_tier"`
	GuaranteedInvitesPerMonth int       `json:"guaranteed_invites_per_month"`
	InvitesReceivedThisMonth  int       `json:"invites_received_this_month"`
	BidlyAccess               bool      `json:"bidly_access"`
	ReferralCode              string    `json:"referral_code"`
	CreatedAt                 time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                        u.ID,
		Name:                      u.Name,
		Email:                     u.Email,
		Role:                      u.Role,
		CompanyName:               u.CompanyName,
		Phone:                     u.Phone,
		Trade:                     u.Trade,
		Region:                    u.Region,
		SubscriptionTier:          u.SubscriptionTier,
		GuaranteedInvitesPerMonth: u.GuaranteedInvitesPerMonth,
		InvitesReceivedThisMonth:  u.InvitesReceivedThisMonth,
		BidlyAccess:               u.BidlyAccess,
		ReferralCode:              u.ReferralCode,
		CreatedAt:                 u.CreatedAt,
	}
}
