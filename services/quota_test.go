package services

import (
	"testing"

	"bidly-backend/models"

	"github.com/stretchr/testify/require"
)

func TestGuaranteeForTier(t *testing.T) {
	cases := map[string]int{
		models.TierFree:     3,
		models.TierStandard: 2,
		models.TierPro:      5,
		models.TierElite:    10,
	}
	for tier, want := range cases {
		got, ok := GuaranteeForTier(tier)
		require.True(t, ok, "tier %s should be known", tier)
		require.Equal(t, want, got, "tier %s", tier)
	}

	_, ok := GuaranteeForTier("platinum")
	require.False(t, ok)
}

func TestProgressPercent(t *testing.T) {
	require.Equal(t, 0.0, ProgressPercent(0, 3))
	require.InDelta(t, 66.66, ProgressPercent(2, 3), 0.01)
	require.Equal(t, 100.0, ProgressPercent(3, 3))

	// overfulfilled months cap at 100
	require.Equal(t, 100.0, ProgressPercent(7, 3))

	// a zero guarantee is trivially met
	require.Equal(t, 100.0, ProgressPercent(0, 0))
}

func TestGuaranteeMet(t *testing.T) {
	require.False(t, GuaranteeMet(2, 3))
	require.True(t, GuaranteeMet(3, 3))
	require.True(t, GuaranteeMet(5, 3))
}

func TestResponseRate(t *testing.T) {
	require.Equal(t, 0.5, ResponseRate(2, 4))
	require.Equal(t, 0.0, ResponseRate(0, 10))

	// no invitations sent yet must not divide by zero
	require.Equal(t, 0.0, ResponseRate(0, 0))
	require.Equal(t, 1.0, ResponseRate(1, 0))
}
