package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bidly-backend/config"
	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/services"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const leaderboardCacheKey = "referral_leaderboard"

// GET /api/referrals/stats
func GetReferralStats(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	// Older accounts may predate referral codes; mint one on first visit.
	if me.ReferralCode == "" {
		me.ReferralCode = utils.GenerateReferralCode(me.Name)
		if err := database.DB.Model(&models.User{}).Where("id = ?", me.ID).
			Update("referral_code", me.ReferralCode).Error; err != nil {
			utils.InternalError(c, "Failed to generate referral code")
			return
		}
	}

	var total, pending, activated int64
	database.DB.Model(&models.Referral{}).Where("referrer_id = ?", me.ID).Count(&total)
	database.DB.Model(&models.Referral{}).Where("referrer_id = ? AND status = ?", me.ID, models.ReferralPending).Count(&pending)
	database.DB.Model(&models.Referral{}).Where("referrer_id = ? AND status = ?", me.ID, models.ReferralActivated).Count(&activated)

	var recent []models.Referral
	database.DB.Where("referrer_id = ?", me.ID).Order("created_at DESC").Limit(10).Find(&recent)

	reward := services.RewardOnSignup(me.Role)

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"referral_code":       me.ReferralCode,
		"referral_link":       fmt.Sprintf("%s/register?ref=%s", config.AppConfig.FrontendURL, me.ReferralCode),
		"total_referrals":     me.ReferralCount,
		"total_rewards":       me.ReferralRewards,
		"reward_per_referral": reward,
		"breakdown": gin.H{
			"total":     total,
			"pending":   pending,
			"activated": activated,
		},
		"recent_referrals": recent,
		"milestones": []gin.H{
			{"count": 3, "reached": me.ReferralCount >= 3, "label": "Rising Connector"},
			{"count": 10, "reached": me.ReferralCount >= 10, "label": "Network Builder"},
			{"count": 25, "reached": me.ReferralCount >= 25, "label": "Industry Insider"},
		},
	})
}

// POST /api/referrals/invite
func SendReferralInvite(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	var req models.SendReferralInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Email == "" {
		utils.BadRequest(c, "Email is required")
		return
	}
	req.Email = utils.NormalizeEmail(req.Email)
	if !utils.IsValidEmail(req.Email) {
		utils.BadRequest(c, "Invalid email address")
		return
	}
	if req.TargetRole != "" && !models.ValidRole(req.TargetRole) {
		utils.BadRequest(c, "Invalid target role. Must be gc, sub, or admin")
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.Conflict(c, "This email is already registered")
		return
	}

	if me.ReferralCode == "" {
		me.ReferralCode = utils.GenerateReferralCode(me.Name)
		if err := database.DB.Model(&models.User{}).Where("id = ?", me.ID).
			Update("referral_code", me.ReferralCode).Error; err != nil {
			utils.InternalError(c, "Failed to generate referral code")
			return
		}
	}

	referral := models.Referral{
		ReferrerID:    me.ID,
		ReferredEmail: req.Email,
		ReferralCode:  me.ReferralCode,
		Status:        models.ReferralPending,
		ReferredRole:  req.TargetRole,
	}
	if err := database.DB.Create(&referral).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "You have already invited this email")
			return
		}
		utils.InternalError(c, "Failed to create referral")
		return
	}

	referralLink := fmt.Sprintf("%s/register?ref=%s", config.AppConfig.FrontendURL, me.ReferralCode)
	go services.GetEmailService().SendReferralInvite(req.Email, me.Name, referralLink)

	utils.SuccessResponse(c, http.StatusCreated, "Referral invite sent", gin.H{
		"email":            referral.ReferredEmail,
		"referral_link":    referralLink,
		"reward_on_signup": services.RewardOnSignup(me.Role),
	})
}

type leaderboardEntry struct {
	Name          string `json:"name"`
	CompanyName   string `json:"company_name,omitempty"`
	Role          string `json:"role"`
	ReferralCount int    `json:"referral_count"`
}

// GET /api/referrals/leaderboard
// Cached in redis for 5 minutes; falls through to the database when redis is
// down.
func GetReferralLeaderboard(c *gin.Context) {
	ctx := c.Request.Context()

	if database.Redis != nil {
		if cached, err := database.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []leaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				utils.SuccessResponse(c, http.StatusOK, "", entries)
				return
			}
		}
	}

	var users []models.User
	database.DB.Where("referral_count > 0").
		Order("referral_count DESC, name ASC").Limit(20).Find(&users)

	entries := make([]leaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, leaderboardEntry{
			Name:          u.Name,
			CompanyName:   u.CompanyName,
			Role:          u.Role,
			ReferralCount: u.ReferralCount,
		})
	}

	if database.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			database.Redis.Set(context.Background(), leaderboardCacheKey, payload, 5*time.Minute)
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", entries)
}
