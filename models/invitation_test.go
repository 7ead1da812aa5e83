package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInvitationOpenForBid(t *testing.T) {
	for _, status := range []string{InvitationPending, InvitationViewed, InvitationAccepted} {
		inv := Invitation{Status: status}
		require.True(t, inv.OpenForBid(), "status %s", status)
	}

	inv := Invitation{Status: InvitationDeclined}
	require.False(t, inv.OpenForBid())
}

func TestInvitationResponded(t *testing.T) {
	require.False(t, (&Invitation{Status: InvitationPending}).Responded())
	require.False(t, (&Invitation{Status: InvitationViewed}).Responded())
	require.True(t, (&Invitation{Status: InvitationAccepted}).Responded())
	require.True(t, (&Invitation{Status: InvitationDeclined}).Responded())
}

func TestInvitationBindIsSticky(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	inv := Invitation{}
	inv.Bind(first)
	require.NotNil(t, inv.SubID)
	require.Equal(t, first, *inv.SubID)

	// once bound, a different account cannot take over the invitation
	inv.Bind(second)
	require.Equal(t, first, *inv.SubID)
}
