package handlers

import (
	"net/http"
	"testing"

	"bidly-backend/database"
	"bidly-backend/models"

	"github.com/stretchr/testify/require"
)

func TestSendReferralInviteStoresTargetRole(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)

	w := performJSON(t, SendReferralInvite,
		models.SendReferralInviteRequest{Email: "prospect@example.com", TargetRole: models.RoleSub},
		nil, gc)
	require.Equal(t, http.StatusCreated, w.Code)

	var referral models.Referral
	require.NoError(t, database.DB.First(&referral, "referrer_id = ?", gc.ID).Error)
	require.Equal(t, "prospect@example.com", referral.ReferredEmail)
	require.Equal(t, models.RoleSub, referral.ReferredRole)
	require.Equal(t, models.ReferralPending, referral.Status)
	require.Equal(t, gc.ReferralCode, referral.ReferralCode)
}

func TestSendReferralInviteRejectsUnknownTargetRole(t *testing.T) {
	gc := models.User{Role: models.RoleGC, ReferralCode: "REF1234"}

	w := performJSON(t, SendReferralInvite,
		models.SendReferralInviteRequest{Email: "prospect@example.com", TargetRole: "vendor"},
		nil, gc)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendReferralInviteDuplicateConflicts(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)

	w := performJSON(t, SendReferralInvite,
		models.SendReferralInviteRequest{Email: "prospect@example.com"}, nil, gc)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, SendReferralInvite,
		models.SendReferralInviteRequest{Email: "prospect@example.com"}, nil, gc)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSendReferralInviteExistingUserConflicts(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	existing := createTestUser(t, models.RoleSub)

	w := performJSON(t, SendReferralInvite,
		models.SendReferralInviteRequest{Email: existing.Email}, nil, gc)
	require.Equal(t, http.StatusConflict, w.Code)
}
