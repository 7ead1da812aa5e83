package handlers

import (
	"net/http"
	"testing"

	"bidly-backend/database"
	"bidly-backend/models"

	"github.com/stretchr/testify/require"
)

func TestInviteSubcontractorIncrementsQuotaOnce(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	sub := createTestUser(t, models.RoleSub)
	project := createTestProject(t, gc)

	w := performJSON(t, InviteSubcontractor,
		models.InviteSubRequest{InviteEmail: sub.Email}, idParam(project.ID), gc)
	require.Equal(t, http.StatusCreated, w.Code)

	var updated models.User
	require.NoError(t, database.DB.First(&updated, "id = ?", sub.ID).Error)
	require.Equal(t, 1, updated.InvitesReceivedThisMonth)

	// duplicate invite conflicts and must not count a second time
	w = performJSON(t, InviteSubcontractor,
		models.InviteSubRequest{InviteEmail: sub.Email}, idParam(project.ID), gc)
	require.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, database.DB.First(&updated, "id = ?", sub.ID).Error)
	require.Equal(t, 1, updated.InvitesReceivedThisMonth)

	var invitations int64
	database.DB.Model(&models.Invitation{}).Where("project_id = ?", project.ID).Count(&invitations)
	require.Equal(t, int64(1), invitations)
}

func TestInviteUnregisteredEmailSkipsQuota(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	project := createTestProject(t, gc)

	w := performJSON(t, InviteSubcontractor,
		models.InviteSubRequest{InviteEmail: "nobody@example.com"}, idParam(project.ID), gc)
	require.Equal(t, http.StatusCreated, w.Code)

	var inv models.Invitation
	require.NoError(t, database.DB.First(&inv, "project_id = ?", project.ID).Error)
	require.Nil(t, inv.SubID)
	require.Equal(t, "nobody@example.com", inv.InviteEmail)
}

func TestInviteOtherGCsProjectNotFound(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, models.RoleGC)
	intruder := createTestUser(t, models.RoleGC)
	project := createTestProject(t, owner)

	w := performJSON(t, InviteSubcontractor,
		models.InviteSubRequest{InviteEmail: "sub@example.com"}, idParam(project.ID), intruder)
	require.Equal(t, http.StatusNotFound, w.Code)
}
