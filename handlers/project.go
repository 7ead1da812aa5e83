package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bidly-backend/config"
	"bidly-backend/database"
	"bidly-backend/models"
	"bidly-backend/services"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// POST /api/projects/gc
func CreateProject(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	project := models.Project{
		GCID:        me.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		BidDeadline: req.BidDeadline,
		Status:      models.ProjectDraft,
	}
	if req.GuaranteedMinBids > 0 {
		project.GuaranteedMinBids = req.GuaranteedMinBids
	}

	if err := database.DB.Create(&project).Error; err != nil {
		utils.InternalError(c, "Failed to create project")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Project created successfully", project)
}

// GET /api/projects/gc
func GetGCProjects(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	query := database.DB.Where("gc_id = ?", me.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var projects []models.Project
	query.Order("created_at DESC").Find(&projects)

	type projectWithCounts struct {
		models.Project
		InvitationsCount int64 `json:"invitations_count"`
		BidsCount        int64 `json:"bids_count"`
	}

	responses := make([]projectWithCounts, 0, len(projects))
	for _, p := range projects {
		var invitations, bids int64
		database.DB.Model(&models.Invitation{}).Where("project_id = ?", p.ID).Count(&invitations)
		database.DB.Model(&models.Bid{}).Where("project_id = ?", p.ID).Count(&bids)
		responses = append(responses, projectWithCounts{Project: p, InvitationsCount: invitations, BidsCount: bids})
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// findOwnedProject resolves a project owned by the acting GC. Ownership check
// doubles as existence check so callers can't probe other GCs' projects.
func findOwnedProject(c *gin.Context, gcID uuid.UUID) (*models.Project, bool) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID")
		return nil, false
	}

	var project models.Project
	if err := database.DB.Where("id = ? AND gc_id = ?", projectID, gcID).First(&project).Error; err != nil {
		utils.NotFound(c, "Project not found")
		return nil, false
	}
	return &project, true
}

// GET /api/projects/gc/:id
func GetProject(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	var planFiles []models.ProjectPlanFile
	database.DB.Where("project_id = ?", project.ID).Find(&planFiles)

	var planSummary *models.AISummary
	if project.AIPlanSummaryID != nil {
		var s models.AISummary
		if err := database.DB.First(&s, "id = ?", *project.AIPlanSummaryID).Error; err == nil {
			planSummary = &s
		}
	}

	var invitations []models.Invitation
	database.DB.Where("project_id = ?", project.ID).Order("created_at DESC").Find(&invitations)

	var bids []models.Bid
	database.DB.Preload("Sub").Where("project_id = ?", project.ID).Order("created_at DESC").Find(&bids)

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"project":         project,
		"plan_files":      planFiles,
		"ai_plan_summary": planSummary,
		"invitations":     invitations,
		"bids":            bids,
	})
}

// PUT /api/projects/gc/:id
func UpdateProject(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.BidDeadline != nil {
		updates["bid_deadline"] = *req.BidDeadline
	}
	if req.Status != "" {
		switch req.Status {
		case models.ProjectDraft, models.ProjectOpen, models.ProjectClosed, models.ProjectAwarded:
			updates["status"] = req.Status
		default:
			utils.BadRequest(c, "Invalid project status")
			return
		}
	}

	if err := database.DB.Model(project).Updates(updates).Error; err != nil {
		utils.InternalError(c, "Failed to update project")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project updated successfully", project)
}

// DELETE /api/projects/gc/:id
func DeleteProject(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectPlanFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		utils.InternalError(c, "Failed to delete project")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project deleted successfully", nil)
}

// POST /api/projects/gc/:id/invite
// Creates the invitation and bumps the sub's monthly received counter in one
// transaction. The unique index on (project, identity) is the arbiter for
// duplicate invites, so a losing racer rolls back without touching the
// counter.
func InviteSubcontractor(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	var req models.InviteSubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.InviteEmail == "" && req.SubID == "" {
		utils.BadRequest(c, "Either invite_email or sub_id is required")
		return
	}

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	// Resolve the target sub so the invite counts toward their guarantee
	var sub *models.User
	if req.InviteEmail != "" {
		req.InviteEmail = utils.NormalizeEmail(req.InviteEmail)
		var u models.User
		if err := database.DB.Where("email = ? AND role = ?", req.InviteEmail, models.RoleSub).First(&u).Error; err == nil {
			sub = &u
		}
	} else {
		subID, err := uuid.Parse(req.SubID)
		if err != nil {
			utils.BadRequest(c, "Invalid sub_id")
			return
		}
		var u models.User
		if err := database.DB.Where("id = ? AND role = ?", subID, models.RoleSub).First(&u).Error; err != nil {
			utils.NotFound(c, "Subcontractor not found")
			return
		}
		sub = &u
	}

	inviteEmail := req.InviteEmail
	if inviteEmail == "" {
		inviteEmail = sub.Email
	}

	invitation := models.Invitation{
		ProjectID:   project.ID,
		GCID:        me.ID,
		InviteEmail: inviteEmail,
		InviteToken: uuid.NewString(),
		Status:      models.InvitationPending,
	}
	if sub != nil {
		invitation.SubID = &sub.ID
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invitation).Error; err != nil {
			return err
		}
		if sub != nil {
			return services.RecordInviteReceived(tx, sub.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Invitation already sent to this subcontractor for this project")
			return
		}
		utils.InternalError(c, "Failed to create invitation")
		return
	}

	inviteURL := fmt.Sprintf("%s/bid/%s/%s", config.AppConfig.FrontendURL, project.ID, invitation.InviteToken)

	var guaranteeInfo *models.SubGuaranteeInfo
	if sub != nil {
		var updated models.User
		if err := database.DB.First(&updated, "id = ?", sub.ID).Error; err == nil {
			guaranteeInfo = &models.SubGuaranteeInfo{
				InvitesReceived: updated.InvitesReceivedThisMonth,
				Guaranteed:      updated.GuaranteedInvitesPerMonth,
				Tier:            updated.SubscriptionTier,
			}
		}
	}

	go services.GetEmailService().SendProjectInvitation(inviteEmail, me.Name, project.Title, inviteURL)

	utils.SuccessResponse(c, http.StatusCreated, "Invitation sent successfully", gin.H{
		"invite_token":       invitation.InviteToken,
		"invite_url":         inviteURL,
		"sub_guarantee_info": guaranteeInfo,
	})
}

// GET /api/projects/gc/:id/progress
// GC-side guarantee dashboard: bids received against the project's guaranteed
// minimum, plus how the invited subs are responding.
func GetProjectProgress(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	var bids, invitations, viewed, accepted int64
	database.DB.Model(&models.Bid{}).Where("project_id = ?", project.ID).Count(&bids)
	database.DB.Model(&models.Invitation{}).Where("project_id = ?", project.ID).Count(&invitations)
	database.DB.Model(&models.Invitation{}).Where("project_id = ? AND status = ?", project.ID, models.InvitationViewed).Count(&viewed)
	database.DB.Model(&models.Invitation{}).Where("project_id = ? AND status = ?", project.ID, models.InvitationAccepted).Count(&accepted)

	utils.SuccessResponse(c, http.StatusOK, "", models.ProjectProgress{
		BidsReceived:       int(bids),
		GuaranteedMinBids:  project.GuaranteedMinBids,
		PercentToGuarantee: services.ProgressPercent(int(bids), project.GuaranteedMinBids),
		GuaranteeMet:       services.GuaranteeMet(int(bids), project.GuaranteedMinBids),
		InvitationsSent:    int(invitations),
		ViewedCount:        int(viewed),
		AcceptedCount:      int(accepted),
		ResponseRate:       services.ResponseRate(int(bids), int(invitations)),
	})
}

// POST /api/projects/gc/:id/plans
func AttachPlanFile(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	project, ok := findOwnedProject(c, me.ID)
	if !ok {
		return
	}

	var req models.AttachPlanFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	planFile := models.ProjectPlanFile{
		ProjectID: project.ID,
		FileURL:   req.FileURL,
		FileName:  req.FileName,
		FileSize:  req.FileSize,
		MimeType:  req.MimeType,
	}

	if err := database.DB.Create(&planFile).Error; err != nil {
		utils.InternalError(c, "Failed to attach plan file")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Plan file attached", planFile)
}

// GET /api/projects/sub
func GetSubProjects(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	var invitations []models.Invitation
	database.DB.Where("sub_id = ? OR invite_email = ?", me.ID, me.Email).
		Order("created_at DESC").Find(&invitations)

	type subProject struct {
		models.Project
		InvitationStatus string      `json:"invitation_status"`
		InviteToken      string      `json:"invite_token"`
		GCName           string      `json:"gc_name"`
		GCCompany        string      `json:"gc_company"`
		MyBid            *models.Bid `json:"my_bid,omitempty"`
	}

	responses := make([]subProject, 0, len(invitations))
	for _, inv := range invitations {
		var project models.Project
		if err := database.DB.Preload("GC").First(&project, "id = ?", inv.ProjectID).Error; err != nil {
			continue
		}

		entry := subProject{
			Project:          project,
			InvitationStatus: inv.Status,
			InviteToken:      inv.InviteToken,
			GCName:           project.GC.Name,
			GCCompany:        project.GC.CompanyName,
		}

		var bid models.Bid
		if err := database.DB.Where("project_id = ? AND sub_id = ?", inv.ProjectID, me.ID).First(&bid).Error; err == nil {
			entry.MyBid = &bid
		}

		responses = append(responses, entry)
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/projects/sub/:id
// First view moves the invitation pending → viewed and binds the sub's
// account to an email-only invitation.
func GetSubProject(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID")
		return
	}

	var invitation models.Invitation
	if err := database.DB.Scopes(models.ForIdentity(projectID, me.ID, me.Email)).First(&invitation).Error; err != nil {
		utils.Forbidden(c, "You do not have access to this project")
		return
	}

	if invitation.Status == models.InvitationPending && invitation.ViewedAt == nil {
		now := time.Now()
		invitation.Status = models.InvitationViewed
		invitation.ViewedAt = &now
		invitation.Bind(me.ID)
		database.DB.Model(&models.Invitation{}).Where("id = ?", invitation.ID).Updates(map[string]interface{}{
			"status":    invitation.Status,
			"viewed_at": invitation.ViewedAt,
			"sub_id":    invitation.SubID,
		})
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		utils.NotFound(c, "Project not found")
		return
	}

	var planFiles []models.ProjectPlanFile
	database.DB.Where("project_id = ?", projectID).Find(&planFiles)

	var planSummary *models.AISummary
	if project.AIPlanSummaryID != nil {
		var s models.AISummary
		if err := database.DB.First(&s, "id = ?", *project.AIPlanSummaryID).Error; err == nil {
			planSummary = &s
		}
	}

	var myBid *models.Bid
	var bid models.Bid
	if err := database.DB.Where("project_id = ? AND sub_id = ?", projectID, me.ID).First(&bid).Error; err == nil {
		myBid = &bid
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"project":           project,
		"invitation_status": invitation.Status,
		"plan_files":        planFiles,
		"ai_plan_summary":   planSummary,
		"my_bid":            myBid,
	})
}

// POST /api/projects/sub/:id/respond
func RespondToInvitation(c *gin.Context) {
	me := utils.GetCurrentUser(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID")
		return
	}

	var req models.RespondToInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Response != models.InvitationAccepted && req.Response != models.InvitationDeclined {
		utils.BadRequest(c, `Response must be "accepted" or "declined"`)
		return
	}

	var invitation models.Invitation
	if err := database.DB.Scopes(models.ForIdentity(projectID, me.ID, me.Email)).First(&invitation).Error; err != nil {
		utils.NotFound(c, "Invitation not found")
		return
	}

	if invitation.Responded() {
		utils.BadRequest(c, "Invitation already "+invitation.Status)
		return
	}

	// Declining is locked once a bid exists
	if req.Response == models.InvitationDeclined {
		var bids int64
		database.DB.Model(&models.Bid{}).Where("project_id = ? AND sub_id = ?", projectID, me.ID).Count(&bids)
		if bids > 0 {
			utils.BadRequest(c, "Cannot decline invitation after submitting a bid")
			return
		}
	}

	now := time.Now()
	invitation.Bind(me.ID)
	if err := database.DB.Model(&models.Invitation{}).Where("id = ?", invitation.ID).Updates(map[string]interface{}{
		"status":       req.Response,
		"responded_at": now,
		"sub_id":       invitation.SubID,
	}).Error; err != nil {
		utils.InternalError(c, "Failed to update invitation")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invitation "+req.Response+" successfully", gin.H{"status": req.Response})
}
