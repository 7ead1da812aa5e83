package handlers

import (
	"net/http"

	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/services"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
)

// AIHandler wraps the summarizer for the synchronous AI endpoints. Unlike bid
// enrichment these run inline, so a missing or failing collaborator is
// surfaced to the caller.
type AIHandler struct {
	Summarizer services.Summarizer
}

func NewAIHandler(summarizer services.Summarizer) *AIHandler {
	return &AIHandler{Summarizer: summarizer}
}

type SummarizePlanRequest struct {
	PlanText string `json:"plan_text" binding:"required"`
}

// POST /api/ai/projects/:id/summarize-plan
func (h *AIHandler) SummarizePlan(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	var req SummarizePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if h.Summarizer == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "AI summarization is not configured")
		return
	}

	text, err := h.Summarizer.SummarizePlan(c.Request.Context(), req.PlanText)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "AI summarization failed")
		return
	}

	summary := models.AISummary{
		Kind:        models.SummaryPlan,
		SummaryText: text,
	}
	if err := database.DB.Create(&summary).Error; err != nil {
		utils.InternalError(c, "Failed to store plan summary")
		return
	}

	if err := database.DB.Model(project).Update("ai_plan_summary_id", summary.ID).Error; err != nil {
		utils.InternalError(c, "Failed to link plan summary")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Plan summarized successfully", summary)
}

// POST /api/ai/projects/:id/compare-bids
func (h *AIHandler) CompareBids(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	if h.Summarizer == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "AI summarization is not configured")
		return
	}

	var bids []models.Bid
	database.DB.Preload("Sub").Where("project_id = ?", project.ID).Find(&bids)
	if len(bids) < 2 {
		utils.BadRequest(c, "At least two bids are required for comparison")
		return
	}

	inputs := make([]services.BidComparisonInput, 0, len(bids))
	for _, b := range bids {
		input := services.BidComparisonInput{
			SubName: b.Sub.Name,
			Amount:  b.Amount,
		}
		if b.AISummaryID != nil {
			var s models.AISummary
			if err := database.DB.First(&s, "id = ?", *b.AISummaryID).Error; err == nil {
				input.Summary = s.SummaryText
			}
		}
		if input.Summary == "" {
			input.Summary = b.Notes
		}
		inputs = append(inputs, input)
	}

	text, err := h.Summarizer.CompareBids(c.Request.Context(), inputs)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "AI comparison failed")
		return
	}

	summary := models.AISummary{
		Kind:        models.SummaryComparison,
		SummaryText: text,
	}
	if err := database.DB.Create(&summary).Error; err != nil {
		utils.InternalError(c, "Failed to store comparison")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bids compared successfully", gin.H{
		"comparison": text,
		"summary_id": summary.ID,
		"bids_count": len(bids),
	})
}
