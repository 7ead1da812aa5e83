package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/services"

	"github.com/stretchr/testify/require"
)

func TestSubmitBidRequiresInvitation(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	sub := createTestUser(t, models.RoleSub)
	project := createTestProject(t, gc)

	handler := NewBidHandler(nil)
	w := performJSON(t, handler.SubmitBid,
		models.SubmitBidRequest{Notes: "uninvited"}, idParam(project.ID), sub)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitBidAcceptsInvitationAndBindsSub(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	sub := createTestUser(t, models.RoleSub)
	project := createTestProject(t, gc)

	// email-only invitation: sub_id must be bound on submission
	inv := createTestInvitation(t, project, nil, sub.Email, models.InvitationPending)

	handler := NewBidHandler(nil)
	w := performJSON(t, handler.SubmitBid,
		models.SubmitBidRequest{Notes: "my offer"}, idParam(project.ID), sub)
	require.Equal(t, http.StatusCreated, w.Code)

	var updated models.Invitation
	require.NoError(t, database.DB.First(&updated, "id = ?", inv.ID).Error)
	require.Equal(t, models.InvitationAccepted, updated.Status)
	require.NotNil(t, updated.SubID)
	require.Equal(t, sub.ID, *updated.SubID)

	// second submission hits the (project, sub) unique index
	w = performJSON(t, handler.SubmitBid,
		models.SubmitBidRequest{Notes: "again"}, idParam(project.ID), sub)
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	database.DB.Model(&models.Bid{}).Where("project_id = ? AND sub_id = ?", project.ID, sub.ID).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestDeclineLockedAfterBid(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	sub := createTestUser(t, models.RoleSub)
	project := createTestProject(t, gc)
	createTestInvitation(t, project, &sub, "", models.InvitationPending)

	handler := NewBidHandler(nil)
	w := performJSON(t, handler.SubmitBid,
		models.SubmitBidRequest{Notes: "my offer"}, idParam(project.ID), sub)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, RespondToInvitation,
		models.RespondToInvitationRequest{Response: models.InvitationDeclined},
		idParam(project.ID), sub)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var updated models.Invitation
	require.NoError(t, database.DB.First(&updated, "project_id = ? AND sub_id = ?", project.ID, sub.ID).Error)
	require.Equal(t, models.InvitationAccepted, updated.Status)
}

func TestAwardCascadeAndSingleAwardGuard(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	sub1 := createTestUser(t, models.RoleSub)
	sub2 := createTestUser(t, models.RoleSub)
	project := createTestProject(t, gc)
	createTestInvitation(t, project, &sub1, "", models.InvitationAccepted)
	createTestInvitation(t, project, &sub2, "", models.InvitationAccepted)
	bid1 := createTestBid(t, project, sub1)
	bid2 := createTestBid(t, project, sub2)

	w := performJSON(t, UpdateBidStatus,
		models.UpdateBidStatusRequest{Status: models.BidAwarded}, idParam(bid1.ID), gc)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Project
	require.NoError(t, database.DB.First(&updated, "id = ?", project.ID).Error)
	require.Equal(t, models.ProjectAwarded, updated.Status)

	// re-awarding the same bid is idempotent
	w = performJSON(t, UpdateBidStatus,
		models.UpdateBidStatusRequest{Status: models.BidAwarded}, idParam(bid1.ID), gc)
	require.Equal(t, http.StatusOK, w.Code)

	// awarding a different bid on the same project is refused
	w = performJSON(t, UpdateBidStatus,
		models.UpdateBidStatusRequest{Status: models.BidAwarded}, idParam(bid2.ID), gc)
	require.Equal(t, http.StatusConflict, w.Code)

	var b2 models.Bid
	require.NoError(t, database.DB.First(&b2, "id = ?", bid2.ID).Error)
	require.Equal(t, models.BidSubmitted, b2.Status)
}

func TestNonAwardStatusLeavesProjectAlone(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	sub := createTestUser(t, models.RoleSub)
	project := createTestProject(t, gc)
	createTestInvitation(t, project, &sub, "", models.InvitationAccepted)
	bid := createTestBid(t, project, sub)

	w := performJSON(t, UpdateBidStatus,
		models.UpdateBidStatusRequest{Status: models.BidShortlisted}, idParam(bid.ID), gc)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Project
	require.NoError(t, database.DB.First(&updated, "id = ?", project.ID).Error)
	require.Equal(t, models.ProjectOpen, updated.Status)
}

type fakeSummarizer struct {
	lastInput string
}

func (f *fakeSummarizer) SummarizePlan(ctx context.Context, planText string) (string, error) {
	return "plan summary", nil
}

func (f *fakeSummarizer) SummarizeBid(ctx context.Context, bidText string) (*services.BidSummary, error) {
	f.lastInput = bidText
	return &services.BidSummary{
		Summary:           bidText,
		ExtractedPrice:    services.ExtractPrice(bidText),
		ExtractedDuration: services.ExtractDuration(bidText),
	}, nil
}

func (f *fakeSummarizer) CompareBids(ctx context.Context, bids []services.BidComparisonInput) (string, error) {
	return "comparison", nil
}

func TestEnrichBidSummarizesUploadedFile(t *testing.T) {
	setupTestDB(t)
	gc := createTestUser(t, models.RoleGC)
	sub := createTestUser(t, models.RoleSub)
	project := createTestProject(t, gc)
	createTestInvitation(t, project, &sub, "", models.InvitationAccepted)
	bid := createTestBid(t, project, sub)

	document := "Full scope for $12,500.00 completed in 6 weeks"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, document)
	}))
	defer srv.Close()

	fake := &fakeSummarizer{}
	handler := NewBidHandler(fake)

	// file-only bid: notes empty, the document is the summarization source
	handler.enrichBid(bid.ID, srv.URL, "")
	require.Equal(t, document, fake.lastInput)

	var updated models.Bid
	require.NoError(t, database.DB.First(&updated, "id = ?", bid.ID).Error)
	require.NotNil(t, updated.AISummaryID)
	require.NotNil(t, updated.Amount)
	require.Equal(t, 12500.0, *updated.Amount)

	var summary models.AISummary
	require.NoError(t, database.DB.First(&summary, "id = ?", *updated.AISummaryID).Error)
	require.Equal(t, models.SummaryBid, summary.Kind)
	require.Equal(t, "6 weeks", summary.ExtractedDuration)
}

func TestBidDocumentTextFallsBackToNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	require.Equal(t, "my notes", bidDocumentText(context.Background(), srv.URL, "my notes"))
	require.Equal(t, "my notes", bidDocumentText(context.Background(), "", "my notes"))
}
