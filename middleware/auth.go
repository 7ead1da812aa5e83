package middleware

import (
	"strings"

	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired verifies the bearer token and loads the acting user into the
// request context. Handlers need the full record because invitations may be
// addressed by email, not just by id.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "No token provided. Authorization required.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, _, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			utils.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// RequireRole allows only the listed roles past.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := utils.GetCurrentUser(c)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		utils.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

// RequireBidlyAccess gates marketplace features behind the admin-managed
// access flag. Admins always pass.
func RequireBidlyAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := utils.GetCurrentUser(c)
		if user.Role != models.RoleAdmin && !user.BidlyAccess {
			utils.Forbidden(c, "Bidly access required. Please contact an admin to grant access.")
			c.Abort()
			return
		}
		c.Next()
	}
}
