// controllers/profile_controller.go
package controllers

import (
	"lifetag/models"
	"lifetag/services"
	"lifetag/utils"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profileService *services.ProfileService
}

func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// ============== OWN PROFILE ==============

// GetProfile returns the authenticated user's profile
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.User}
// @Security BearerAuth
// @Router /profile [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID := utils.GetUserID(c)
	if userID == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := pc.profileService.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

// UpdateProfile applies a partial profile update
// @Summary Update own profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 400 {object} models.APIResponse
// @Security BearerAuth
// @Router /profile [put]
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	userID := utils.GetUserID(c)
	if userID == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	user, err := pc.profileService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated", user)
}

// DeleteProfile removes the authenticated user's account
// @Summary Delete own account
// @Tags Profile
// @Produce json
// @Success 200 {object} models.APIResponse
// @Security BearerAuth
// @Router /profile [delete]
func (pc *ProfileController) DeleteProfile(c *gin.Context) {
	userID := utils.GetUserID(c)
	if userID == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := pc.profileService.DeleteProfile(c.Request.Context(), userID); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Account deleted", nil)
}

// RegisterDevice stores the push token for access alerts
// @Summary Register device for push alerts
// @Tags Profile
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse
// @Security BearerAuth
// @Router /profile/device [post]
func (pc *ProfileController) RegisterDevice(c *gin.Context) {
	userID := utils.GetUserID(c)
	if userID == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		DeviceToken string `json:"deviceToken"`
		DeviceType  string `json:"deviceType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := pc.profileService.RegisterDevice(c.Request.Context(), userID, req.DeviceToken, req.DeviceType); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Device registered", nil)
}

// ============== SCANNED PROFILE ACCESS ==============

// GetScannedProfile resolves a profile id taken from a decoded QR code
// @Summary Open a profile from a QR scan
// @Tags Profile
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 403 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Security BearerAuth
// @Router /profile/{id} [get]
func (pc *ProfileController) GetScannedProfile(c *gin.Context) {
	profileID := c.Param("id")
	accessorID := utils.GetUserID(c)
	accessorRole := utils.GetUserRole(c)

	user, err := pc.profileService.GetScannedProfile(
		c.Request.Context(),
		profileID,
		accessorID,
		accessorRole,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

// ============== ADMIN ==============

// ListUsers returns a paginated user list
// @Summary List users (admin)
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Name or email search"
// @Success 200 {object} models.APIResponse{data=models.UserListResponse}
// @Security BearerAuth
// @Router /admin/users [get]
func (pc *ProfileController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	search := c.Query("search")

	response, err := pc.profileService.ListUsers(c.Request.Context(), page, pageSize, search)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Users retrieved", response)
}

// UpdateRole changes a user's role
// @Summary Update user role (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.UpdateRoleRequest true "New role"
// @Success 200 {object} models.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (pc *ProfileController) UpdateRole(c *gin.Context) {
	adminID := utils.GetUserID(c)
	targetID := c.Param("id")

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := pc.profileService.UpdateRole(c.Request.Context(), adminID, targetID, req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Role updated", nil)
}
