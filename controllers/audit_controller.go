// controllers/audit_controller.go
package controllers

import (
	"lifetag/models"
	"lifetag/services"
	"lifetag/utils"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	auditService *services.AuditService
}

func NewAuditController(auditService *services.AuditService) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetOwnAuditLog returns the access history for the caller's profile
// @Summary Get own profile access history
// @Tags Audit
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} models.APIResponse{data=models.AuditLogResponse}
// @Security BearerAuth
// @Router /profile/audit-log [get]
func (auc *AuditController) GetOwnAuditLog(c *gin.Context) {
	userID := utils.GetUserID(c)
	if userID == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	response, err := auc.auditService.GetProfileAuditLog(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Audit log retrieved", response)
}

// GetProfileAuditLog returns another profile's access history (admin)
// @Summary Get a profile's access history (admin)
// @Tags Admin
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} models.APIResponse{data=models.AuditLogResponse}
// @Security BearerAuth
// @Router /admin/users/{id}/audit-log [get]
func (auc *AuditController) GetProfileAuditLog(c *gin.Context) {
	profileID := c.Param("id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	response, err := auc.auditService.GetProfileAuditLog(c.Request.Context(), profileID, page, pageSize)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Audit log retrieved", response)
}

// GetRecentEvents returns recent audit entries across profiles (admin)
// @Summary Get recent audit events (admin)
// @Tags Admin
// @Produce json
// @Param eventType query string false "Filter by event type"
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {object} models.APIResponse{data=[]models.AuditLogEntry}
// @Security BearerAuth
// @Router /admin/audit-log [get]
func (auc *AuditController) GetRecentEvents(c *gin.Context) {
	eventType := c.Query("eventType")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := auc.auditService.GetRecentEvents(c.Request.Context(), eventType, limit)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	if entries == nil {
		entries = []models.AuditLogEntry{}
	}

	utils.SuccessResponse(c, "Audit events retrieved", entries)
}
