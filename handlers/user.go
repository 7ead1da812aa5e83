package handlers

import (
	"errors"
	"net/http"

	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/services"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	CompanyName *string `json:"company_name"`
	Phone       *string `json:"phone"`
	Trade       *string `json:"trade"`
	Region      *string `json:"region"`
}

// GET /api/users/me
func GetMe(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", user.ToResponse())
}

// PUT /api/users/me
func UpdateMyProfile(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = utils.NormalizeEmail(req.Email)
	}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Trade != nil {
		updates["trade"] = *req.Trade
	}
	if req.Region != nil {
		updates["region"] = *req.Region
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Email already exists")
			return
		}
		utils.InternalError(c, "Failed to update profile")
		return
	}

	database.DB.First(&user, "id = ?", userID)
	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", user.ToResponse())
}

// GET /api/users/me/guarantee
// Sub-side guarantee dashboard: invites received this month against the
// tier's guaranteed floor.
func GetMyGuarantee(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if user.Role != models.RoleSub {
		utils.Forbidden(c, "Guarantee tracking is only available for subcontractors")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", models.SubGuaranteeProgress{
		InvitesReceived:    user.InvitesReceivedThisMonth,
		GuaranteedInvites:  user.GuaranteedInvitesPerMonth,
		PercentToGuarantee: services.ProgressPercent(user.InvitesReceivedThisMonth, user.GuaranteedInvitesPerMonth),
		GuaranteeMet:       services.GuaranteeMet(user.InvitesReceivedThisMonth, user.GuaranteedInvitesPerMonth),
		Tier:               user.SubscriptionTier,
	})
}

// GET /api/users/subs
// Subcontractor directory for GCs building an invite list. Paid tiers sort
// first.
func GetSubcontractors(c *gin.Context) {
	trade := c.Query("trade")
	region := c.Query("region")

	query := database.DB.Where("role = ?", models.RoleSub)
	if trade != "" {
		query = query.Where("trade = ?", trade)
	}
	if region != "" {
		query = query.Where("region ILIKE ?", "%"+region+"%")
	}

	var subs []models.User
	query.Order(`CASE subscription_tier
		WHEN 'elite' THEN 1
		WHEN 'pro' THEN 2
		WHEN 'standard' THEN 3
		ELSE 4
	END ASC, name ASC`).Find(&subs)

	responses := make([]models.UserResponse, 0, len(subs))
	for _, s := range subs {
		responses = append(responses, s.ToResponse())
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}
