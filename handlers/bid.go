package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/services"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BidHandler carries the summarizer so bid enrichment can be swapped out (or
// disabled with a nil summarizer) without touching the handlers.
type BidHandler struct {
	Summarizer services.Summarizer
}

func NewBidHandler(summarizer services.Summarizer) *BidHandler {
	return &BidHandler{Summarizer: summarizer}
}

// POST /api/bids/project/:id
// Submitting a bid implicitly accepts the invitation; both writes commit
// together. The unique index on (project, sub) rejects a second bid.
func (h *BidHandler) SubmitBid(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID")
		return
	}

	var req models.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var invitation models.Invitation
	if err := database.DB.Scopes(models.ForIdentity(projectID, me.ID, me.Email)).First(&invitation).Error; err != nil {
		utils.Forbidden(c, "You were not invited to bid on this project")
		return
	}
	if !invitation.OpenForBid() {
		utils.Forbidden(c, "Invitation is "+invitation.Status+", bidding is closed")
		return
	}

	bid := models.Bid{
		ProjectID:  projectID,
		SubID:      me.ID,
		Amount:     req.Amount,
		Notes:      req.Notes,
		BidFileURL: req.BidFileURL,
		Status:     models.BidSubmitted,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bid).Error; err != nil {
			return err
		}
		now := time.Now()
		invitation.Bind(me.ID)
		return tx.Model(&models.Invitation{}).Where("id = ?", invitation.ID).Updates(map[string]interface{}{
			"status":       models.InvitationAccepted,
			"responded_at": now,
			"sub_id":       invitation.SubID,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Bid already submitted for this project")
			return
		}
		utils.InternalError(c, "Failed to submit bid")
		return
	}

	if h.Summarizer != nil && (bid.BidFileURL != "" || bid.Notes != "") {
		go h.enrichBid(bid.ID, bid.BidFileURL, bid.Notes)
	}

	utils.SuccessResponse(c, http.StatusCreated, "Bid submitted successfully", bid)
}

// bidDocumentText resolves what gets summarized: the uploaded bid file when
// one was supplied and retrievable, otherwise the notes.
func bidDocumentText(ctx context.Context, fileURL, notes string) string {
	if fileURL != "" {
		text, err := services.FetchDocumentText(ctx, fileURL)
		if err != nil {
			log.Printf("⚠️  Failed to fetch bid file %s: %v", fileURL, err)
		} else if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return notes
}

// enrichBid summarizes the bid document after commit. Failures are logged;
// the bid stands either way.
func (h *BidHandler) enrichBid(bidID uuid.UUID, fileURL, notes string) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	text := bidDocumentText(ctx, fileURL, notes)
	if text == "" {
		return
	}

	result, err := h.Summarizer.SummarizeBid(ctx, text)
	if err != nil {
		log.Printf("⚠️  Bid summarization failed for %s: %v", bidID, err)
		return
	}

	summary := models.AISummary{
		Kind:              models.SummaryBid,
		SummaryText:       result.Summary,
		ExtractedPrice:    result.ExtractedPrice,
		ExtractedDuration: result.ExtractedDuration,
	}
	if err := database.DB.Create(&summary).Error; err != nil {
		log.Printf("⚠️  Failed to store bid summary for %s: %v", bidID, err)
		return
	}

	updates := map[string]interface{}{"ai_summary_id": summary.ID}

	// Backfill the amount when the sub left it blank but the document names a
	// price.
	var bid models.Bid
	if err := database.DB.First(&bid, "id = ?", bidID).Error; err == nil {
		if bid.Amount == nil && result.ExtractedPrice != nil {
			updates["amount"] = *result.ExtractedPrice
		}
	}

	if err := database.DB.Model(&models.Bid{}).Where("id = ?", bidID).Updates(updates).Error; err != nil {
		log.Printf("⚠️  Failed to link bid summary for %s: %v", bidID, err)
		return
	}
	log.Printf("✅ Bid %s enriched with AI summary", bidID)
}

// GET /api/bids/project/:id
func GetProjectBids(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	var bids []models.Bid
	database.DB.Preload("Sub").Where("project_id = ?", project.ID).
		Order("created_at DESC").Find(&bids)

	responses := make([]models.BidResponse, 0, len(bids))
	for _, b := range bids {
		entry := models.BidResponse{
			Bid:        b,
			SubName:    b.Sub.Name,
			SubCompany: b.Sub.CompanyName,
			SubEmail:   b.Sub.Email,
		}
		if b.AISummaryID != nil {
			var s models.AISummary
			if err := database.DB.First(&s, "id = ?", *b.AISummaryID).Error; err == nil {
				entry.AISummary = s.SummaryText
			}
		}
		responses = append(responses, entry)
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/bids/me
func GetMyBids(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	var bids []models.Bid
	database.DB.Where("sub_id = ?", me.ID).Order("created_at DESC").Find(&bids)

	type bidWithProject struct {
		models.Bid
		ProjectTitle  string `json:"project_title"`
		ProjectStatus string `json:"project_status"`
	}

	responses := make([]bidWithProject, 0, len(bids))
	for _, b := range bids {
		entry := bidWithProject{Bid: b}
		var project models.Project
		if err := database.DB.First(&project, "id = ?", b.ProjectID).Error; err == nil {
			entry.ProjectTitle = project.Title
			entry.ProjectStatus = project.Status
		}
		responses = append(responses, entry)
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// PUT /api/bids/:id/status
// Only one bid per project can hold "awarded"; awarding also closes the
// project.
func UpdateBidStatus(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	bidID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid bid ID")
		return
	}

	var req models.UpdateBidStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if !models.ValidBidStatus(req.Status) {
		utils.BadRequest(c, "Invalid bid status")
		return
	}

	var bid models.Bid
	if err := database.DB.Joins("JOIN projects ON projects.id = bids.project_id").
		Where("bids.id = ? AND projects.gc_id = ?", bidID, me.ID).
		First(&bid).Error; err != nil {
		utils.NotFound(c, "Bid not found")
		return
	}

	if req.Status == models.BidAwarded {
		var existing models.Bid
		err := database.DB.Where("project_id = ? AND status = ? AND id != ?", bid.ProjectID, models.BidAwarded, bid.ID).
			First(&existing).Error
		if err == nil {
			utils.Conflict(c, "Another bid has already been awarded for this project")
			return
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Bid{}).Where("id = ?", bid.ID).Update("status", models.BidAwarded).Error; err != nil {
				return err
			}
			return tx.Model(&models.Project{}).Where("id = ?", bid.ProjectID).Update("status", models.ProjectAwarded).Error
		})
		if err != nil {
			utils.InternalError(c, "Failed to award bid")
			return
		}

		bid.Status = models.BidAwarded
		utils.SuccessResponse(c, http.StatusOK, "Bid awarded successfully", bid)
		return
	}

	if err := database.DB.Model(&models.Bid{}).Where("id = ?", bid.ID).Update("status", req.Status).Error; err != nil {
		utils.InternalError(c, "Failed to update bid status")
		return
	}

	bid.Status = req.Status
	utils.SuccessResponse(c, http.StatusOK, "Bid status updated successfully", bid)
}
