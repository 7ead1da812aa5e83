package handlers

import (
	"errors"
	"log"
	"net/http"

	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/services"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role" binding:"required"`
	CompanyName  string `json:"company_name"`
	Phone        string `json:"phone"`
	Trade        string `json:"trade"`
	Region       string `json:"region"`
	ReferralCode string `json:"referral_code"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token         string                   `json:"token"`
	User          models.UserResponse      `json:"user"`
	ReferralBonus *services.ReferralReward `json:"referral_bonus,omitempty"`
}

// POST /auth/register
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if !models.ValidRole(req.Role) {
		utils.BadRequest(c, "Invalid role. Must be gc, sub, or admin")
		return
	}

	req.Email = utils.NormalizeEmail(req.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "Failed to hash password")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
		CompanyName:  req.CompanyName,
		Phone:        req.Phone,
		ReferralCode: utils.GenerateReferralCode(req.Name),
		BidlyAccess:  req.Role == models.RoleAdmin, // admins get access out of the box
	}
	if req.Role == models.RoleSub {
		user.Trade = req.Trade
		user.Region = req.Region
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Email already registered")
			return
		}
		utils.InternalError(c, "Failed to create user")
		return
	}

	// Registration succeeds regardless of referral outcome; attribution
	// failures are logged, never surfaced.
	var bonus *services.ReferralReward
	if req.ReferralCode != "" {
		result, err := services.ProcessReferral(database.DB, req.ReferralCode, user.ID, user.Role)
		if err != nil {
			log.Printf("⚠️  Referral attribution failed for %s: %v", user.Email, err)
		} else if result != nil {
			bonus = result.Reward
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	message := "User registered successfully"
	if bonus != nil {
		message = "User registered successfully! Welcome bonus from referral applied."
	}

	utils.SuccessResponse(c, http.StatusCreated, message, AuthResponse{
		Token:         token,
		User:          user.ToResponse(),
		ReferralBonus: bonus,
	})
}

// POST /auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	req.Email = utils.NormalizeEmail(req.Email)

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	})
}

// GET /auth/verify-invitation/:token
// Public lookup so an emailed invite link can show the project before the sub
// registers.
func VerifyInvitation(c *gin.Context) {
	token := c.Param("token")

	var invitation models.Invitation
	if err := database.DB.Where("invite_token = ? AND status = ?", token, models.InvitationPending).
		First(&invitation).Error; err != nil {
		utils.NotFound(c, "Invalid or expired invitation token")
		return
	}

	var project models.Project
	if err := database.DB.Preload("GC").First(&project, "id = ?", invitation.ProjectID).Error; err != nil {
		utils.NotFound(c, "Project not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"invitation":    invitation,
		"project_title": project.Title,
		"description":   project.Description,
		"location":      project.Location,
		"bid_deadline":  project.BidDeadline,
		"gc_name":       project.GC.Name,
		"gc_company":    project.GC.CompanyName,
	})
}
