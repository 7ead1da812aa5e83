package services

import (
	"fmt"

	"bidly-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TierGuarantees is the canonical guaranteed-invites-per-month mapping for
// each subscription tier.
var TierGuarantees = map[string]int{
	models.TierFree:     3,
	models.TierStandard: 2,
	models.TierPro:      5,
	models.TierElite:    10,
}

// GuaranteeForTier returns the monthly invite guarantee a tier carries.
func GuaranteeForTier(tier string) (int, bool) {
	n, ok := TierGuarantees[tier]
	return n, ok
}

// SetTier updates a sub's subscription tier and recomputes the derived
// guarantee.
func SetTier(db *gorm.DB, userID uuid.UUID, tier string) (*models.User, error) {
	guarantee, ok := GuaranteeForTier(tier)
	if !ok {
		return nil, fmt.Errorf("invalid subscription tier: %s", tier)
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"subscription_tier":            tier,
		"guaranteed_invites_per_month": guarantee,
	}).Error; err != nil {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordInviteReceived bumps a sub's monthly received counter. Callers run it
// in the same transaction that creates the invitation so a failed duplicate
// insert never leaves a stray increment. The guarantee is a floor, not a cap;
// the counter keeps rising past it.
func RecordInviteReceived(tx *gorm.DB, subID uuid.UUID) error {
	return tx.Model(&models.User{}).Where("id = ?", subID).
		Update("invites_received_this_month", gorm.Expr("invites_received_this_month + 1")).Error
}

// ApplyReferralBonus raises a sub referrer's guarantee and reward counter by
// the same amount.
func ApplyReferralBonus(tx *gorm.DB, userID uuid.UUID, extraInvites int) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"guaranteed_invites_per_month": gorm.Expr("guaranteed_invites_per_month + ?", extraInvites),
		"referral_rewards":             gorm.Expr("referral_rewards + ?", extraInvites),
	}).Error
}

// GuaranteeMet reports whether the month's received invites reached the
// guarantee.
func GuaranteeMet(received, guaranteed int) bool {
	return received >= guaranteed
}

// ProgressPercent returns received/guaranteed as a percentage, capped at 100.
func ProgressPercent(received, guaranteed int) float64 {
	if guaranteed <= 0 {
		return 100
	}
	pct := float64(received) / float64(guaranteed) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ResponseRate returns bids per invitation sent, guarding the empty case.
func ResponseRate(bids, invitations int) float64 {
	if invitations < 1 {
		invitations = 1
	}
	return float64(bids) / float64(invitations)
}
