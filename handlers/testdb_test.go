package handlers

import (
	"fmt"
	"testing"

	"bidly-backend/config"
	"bidly-backend/database"
	"bidly-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps the shared connection for an in-memory sqlite database so
// handler flows run against real constraints and transactions.
func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// a pooled second connection would see its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectPlanFile{},
		&models.Invitation{},
		&models.Bid{},
		&models.AISummary{},
		&models.Referral{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func idParam(id uuid.UUID) gin.Params {
	return gin.Params{{Key: "id", Value: id.String()}}
}

func createTestUser(t *testing.T, role string) models.User {
	t.Helper()
	user := models.User{
		Name:                      "Test User",
		Email:                     fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]),
		PasswordHash:              "hash",
		Role:                      role,
		SubscriptionTier:          models.TierFree,
		GuaranteedInvitesPerMonth: 3,
		BidlyAccess:               true,
		ReferralCode:              "REF" + uuid.NewString()[:4],
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestProject(t *testing.T, gc models.User) models.Project {
	t.Helper()
	project := models.Project{
		GCID:              gc.ID,
		Title:             "Test Project",
		Status:            models.ProjectOpen,
		GuaranteedMinBids: 3,
	}
	require.NoError(t, database.DB.Create(&project).Error)
	return project
}

func createTestInvitation(t *testing.T, project models.Project, sub *models.User, email, status string) models.Invitation {
	t.Helper()
	inv := models.Invitation{
		ProjectID:   project.ID,
		GCID:        project.GCID,
		InviteEmail: email,
		InviteToken: uuid.NewString(),
		Status:      status,
	}
	if sub != nil {
		inv.SubID = &sub.ID
		inv.InviteEmail = sub.Email
	}
	require.NoError(t, database.DB.Create(&inv).Error)
	return inv
}

func createTestBid(t *testing.T, project models.Project, sub models.User) models.Bid {
	t.Helper()
	bid := models.Bid{
		ProjectID: project.ID,
		SubID:     sub.ID,
		Notes:     "test bid",
		Status:    models.BidSubmitted,
	}
	require.NoError(t, database.DB.Create(&bid).Error)
	return bid
}
