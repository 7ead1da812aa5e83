package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/services"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/admin/users
func GetUsers(c *gin.Context) {
	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	query.Order("created_at DESC").Find(&users)

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/admin/projects
func GetProjects(c *gin.Context) {
	var projects []models.Project
	database.DB.Preload("GC").Order("created_at DESC").Find(&projects)

	utils.SuccessResponse(c, http.StatusOK, "", projects)
}

type ToggleAccessRequest struct {
	BidlyAccess *bool `json:"bidly_access" binding:"required"`
}

// PUT /api/admin/users/:id/access
func ToggleAccess(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var req ToggleAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := database.DB.Model(&user).Update("bidly_access", *req.BidlyAccess).Error; err != nil {
		utils.InternalError(c, "Failed to update access")
		return
	}

	user.BidlyAccess = *req.BidlyAccess
	utils.SuccessResponse(c, http.StatusOK, "Access updated successfully", user.ToResponse())
}

type UpdateTierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// PUT /api/admin/users/:id/tier
func UpdateSubscriptionTier(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var req UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if _, ok := services.GuaranteeForTier(req.Tier); !ok {
		utils.BadRequest(c, "Invalid tier. Must be free, standard, pro, or elite")
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	updated, err := services.SetTier(database.DB, userID, req.Tier)
	if err != nil {
		utils.InternalError(c, "Failed to update subscription tier")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription tier updated successfully", updated.ToResponse())
}

// POST /api/admin/reset-monthly-invites
// Zeroes every sub's received counter. Meant to run once at the start of each
// month; a redis marker makes repeat calls within the same month a no-op so an
// operator retry can't double-reset mid-month data.
func ResetMonthlyInvites(c *gin.Context) {
	if database.Redis != nil {
		key := fmt.Sprintf("invites_reset:%s", time.Now().Format("2006-01"))
		ok, err := database.Redis.SetNX(context.Background(), key, "1", 40*24*time.Hour).Result()
		if err == nil && !ok {
			utils.Conflict(c, "Monthly invites already reset for this month")
			return
		}
	}

	result := database.DB.Model(&models.User{}).Where("role = ?", models.RoleSub).
		Update("invites_received_this_month", 0)
	if result.Error != nil {
		utils.InternalError(c, "Failed to reset monthly invites")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Monthly invites reset", gin.H{
		"subs_reset": result.RowsAffected,
	})
}
