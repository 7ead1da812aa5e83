package services

import (
	"testing"

	"bidly-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRewardFor(t *testing.T) {
	tests := []struct {
		referrer   string
		newUser    string
		wantType   string
		wantAmount int
	}{
		{models.RoleGC, models.RoleSub, RewardExtraBids, 5},
		{models.RoleSub, models.RoleGC, RewardExtraInvites, 2},
		{models.RoleSub, models.RoleSub, RewardExtraInvites, 1},
	}

	for _, tc := range tests {
		reward := RewardFor(tc.referrer, tc.newUser)
		require.NotNil(t, reward, "%s → %s", tc.referrer, tc.newUser)
		require.Equal(t, tc.wantType, reward.Type)
		require.Equal(t, tc.wantAmount, reward.Amount)
	}
}

func TestRewardForUnmappedPairings(t *testing.T) {
	require.Nil(t, RewardFor(models.RoleGC, models.RoleGC))
	require.Nil(t, RewardFor(models.RoleAdmin, models.RoleSub))
	require.Nil(t, RewardFor(models.RoleGC, models.RoleAdmin))
	require.Nil(t, RewardFor(models.RoleSub, models.RoleAdmin))
}

func TestRewardForReturnsCopies(t *testing.T) {
	a := RewardFor(models.RoleGC, models.RoleSub)
	a.Amount = 99
	b := RewardFor(models.RoleGC, models.RoleSub)
	require.Equal(t, 5, b.Amount)
}

func TestRewardOnSignup(t *testing.T) {
	require.Equal(t, RewardExtraBids, RewardOnSignup(models.RoleGC).Type)
	require.Equal(t, RewardExtraInvites, RewardOnSignup(models.RoleSub).Type)
}
