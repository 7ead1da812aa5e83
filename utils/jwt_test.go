package utils

import (
	"testing"

	"bidly-backend/config"
	"bidly-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	userID := uuid.New()
	token, err := GenerateToken(userID, models.RoleGC)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, role, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, parsedID)
	require.Equal(t, models.RoleGC, role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	config.Load()

	_, _, err := ParseToken("not.a.token")
	require.Error(t, err)

	_, _, err = ParseToken("")
	require.Error(t, err)
}
