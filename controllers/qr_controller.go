// controllers/qr_controller.go
package controllers

import (
	"lifetag/models"
	"lifetag/services"
	"lifetag/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QRController struct {
	qrService *services.QRService
}

func NewQRController(qrService *services.QRService) *QRController {
	return &QRController{
		qrService: qrService,
	}
}

// GenerateQR encodes the authenticated user's profile as a QR string
// @Summary Generate emergency QR code
// @Description Encode the profile into the dual-layer emergency format
// @Tags QR
// @Accept json
// @Produce json
// @Param request body models.GenerateQRRequest false "Generation options"
// @Success 200 {object} models.APIResponse{data=models.GenerateQRResponse}
// @Failure 404 {object} models.APIResponse
// @Security BearerAuth
// @Router /qr/generate [post]
func (qc *QRController) GenerateQR(c *gin.Context) {
	userID := utils.GetUserID(c)
	if userID == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.GenerateQRRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request body")
			return
		}
	}

	response, err := qc.qrService.GenerateQR(c.Request.Context(), userID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "QR code generated", response)
}

// GetQRImage renders the encoded profile as a PNG
// @Summary Get emergency QR code as PNG
// @Tags QR
// @Produce png
// @Param size query int false "Image size in pixels (default 512, max 2048)"
// @Success 200 {file} png
// @Security BearerAuth
// @Router /qr/image [get]
func (qc *QRController) GetQRImage(c *gin.Context) {
	userID := utils.GetUserID(c)
	if userID == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "512"))

	png, err := qc.qrService.GenerateQRImage(c.Request.Context(), userID, models.GenerateQRRequest{}, size)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// DecodeQR parses a scanned string into structured emergency data
// @Summary Decode a scanned QR code
// @Description Decode both current and legacy emergency formats
// @Tags QR
// @Accept json
// @Produce json
// @Param request body models.DecodeQRRequest true "Scanned string"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /qr/decode [post]
func (qc *QRController) DecodeQR(c *gin.Context) {
	// Anonymous scans are allowed; accessorID is empty for them
	accessorID := utils.GetUserID(c)

	var req models.DecodeQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	data, kind, err := qc.qrService.DecodeQR(c.Request.Context(), accessorID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "QR code decoded", gin.H{
		"format": kind.String(),
		"data":   data,
	})
}

// ValidateQR checks a scanned string against the format contract
// @Summary Validate a scanned QR code
// @Tags QR
// @Accept json
// @Produce json
// @Param request body models.ValidateQRRequest true "Scanned string"
// @Success 200 {object} models.APIResponse
// @Router /qr/validate [post]
func (qc *QRController) ValidateQR(c *gin.Context) {
	var req models.ValidateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	result, err := qc.qrService.ValidateQR(req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "QR code validated", result)
}

// RefreshCheck reports whether the displayed QR string is stale
// @Summary Check whether the QR code needs regeneration
// @Tags QR
// @Produce json
// @Param qrString query string true "Currently displayed QR string"
// @Success 200 {object} models.APIResponse{data=models.RefreshCheckResponse}
// @Security BearerAuth
// @Router /qr/refresh-check [get]
func (qc *QRController) RefreshCheck(c *gin.Context) {
	userID := utils.GetUserID(c)
	if userID == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.RefreshCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil || req.QRString == "" {
		utils.BadRequestResponse(c, "qrString is required")
		return
	}

	response, err := qc.qrService.RefreshCheck(c.Request.Context(), userID, req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Refresh check complete", response)
}
