package services

import (
	"errors"
	"time"

	"bidly-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reward types
const (
	RewardExtraBids    = "extra_bids"
	RewardExtraInvites = "extra_invites"
)

type ReferralReward struct {
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

var (
	rewardGCInvitesSub  = ReferralReward{Type: RewardExtraBids, Amount: 5, Description: "+5 guaranteed bids/month"}
	rewardSubInvitesGC  = ReferralReward{Type: RewardExtraInvites, Amount: 2, Description: "+2 guaranteed invites/month"}
	rewardSubInvitesSub = ReferralReward{Type: RewardExtraInvites, Amount: 1, Description: "+1 guaranteed invite/month"}
)

// RewardFor returns the reward for a (referrer role, new user role) pairing.
// Unmapped pairings (gc→gc, anything involving admin) earn nothing.
func RewardFor(referrerRole, newRole string) *ReferralReward {
	switch {
	case referrerRole == models.RoleGC && newRole == models.RoleSub:
		r := rewardGCInvitesSub
		return &r
	case referrerRole == models.RoleSub && newRole == models.RoleGC:
		r := rewardSubInvitesGC
		return &r
	case referrerRole == models.RoleSub && newRole == models.RoleSub:
		r := rewardSubInvitesSub
		return &r
	}
	return nil
}

// RewardOnSignup is what the stats/invite endpoints advertise to a would-be
// referrer.
func RewardOnSignup(referrerRole string) ReferralReward {
	if referrerRole == models.RoleGC {
		return rewardGCInvitesSub
	}
	return rewardSubInvitesGC
}

type ReferralResult struct {
	ReferrerID uuid.UUID       `json:"referrer_id"`
	Reward     *ReferralReward `json:"reward,omitempty"`
}

// ProcessReferral attributes a registration to the owner of a referral code.
// Invoked once per registration, only when a code was supplied. A code that
// resolves to nobody is a no-op, not an error. All writes happen in one
// transaction: binding the new user, crediting the referrer, and advancing the
// tracking row pending → registered → activated. The tracking row is an audit
// artifact; its absence does not block attribution.
func ProcessReferral(db *gorm.DB, code string, newUserID uuid.UUID, newRole string) (*ReferralResult, error) {
	var referrer models.User
	if err := db.Where("referral_code = ?", code).First(&referrer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	reward := RewardFor(referrer.Role, newRole)

	err := db.Transaction(func(tx *gorm.DB) error {
		// referred_by is immutable once set
		if err := tx.Model(&models.User{}).
			Where("id = ? AND referred_by IS NULL", newUserID).
			Update("referred_by", referrer.ID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", referrer.ID).
			Update("referral_count", gorm.Expr("referral_count + 1")).Error; err != nil {
			return err
		}

		if reward != nil {
			if reward.Type == RewardExtraInvites {
				if err := ApplyReferralBonus(tx, referrer.ID, reward.Amount); err != nil {
					return err
				}
			} else {
				if err := tx.Model(&models.User{}).Where("id = ?", referrer.ID).
					Update("referral_rewards", gorm.Expr("referral_rewards + ?", reward.Amount)).Error; err != nil {
					return err
				}
			}
		}

		// Advance the tracking row if one exists for this code
		var ref models.Referral
		if err := tx.Where("referral_code = ? AND status = ?", code, models.ReferralPending).
			Order("created_at ASC").First(&ref).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"referred_id":   newUserID,
			"referred_role": newRole,
			"status":        models.ReferralActivated,
			"registered_at": now,
			"activated_at":  now,
		}
		if reward != nil {
			updates["reward_type"] = reward.Type
			updates["reward_amount"] = reward.Amount
		}
		return tx.Model(&ref).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &ReferralResult{ReferrerID: referrer.ID, Reward: reward}, nil
}
