package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectInvitationTemplateEscapesInput(t *testing.T) {
	html, err := renderEmail(projectInvitationTmpl, projectInvitationData{
		GCName:       `<script>alert(1)</script>`,
		ProjectTitle: `Roof "Repair" & More`,
		AppName:      "Bidly",
		InviteURL:    "http://localhost:5173/bid/p1/tok",
	})
	require.NoError(t, err)
	require.NotContains(t, html, "<script>")
	require.Contains(t, html, "&lt;script&gt;")
	require.Contains(t, html, `href="http://localhost:5173/bid/p1/tok"`)
}

func TestReferralInviteTemplate(t *testing.T) {
	html, err := renderEmail(referralInviteTmpl, referralInviteData{
		ReferrerName: "John & Sons",
		AppName:      "Bidly",
		ReferralLink: "http://localhost:5173/register?ref=JOH1234",
	})
	require.NoError(t, err)
	require.Contains(t, html, "John &amp; Sons")
	require.Contains(t, html, "http://localhost:5173/register?ref=JOH1234")
}
