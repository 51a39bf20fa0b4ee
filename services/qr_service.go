package services

import (
	"context"
	"lifetag/models"
	"lifetag/qrcode"
	"lifetag/repositories"
	"lifetag/utils"

	"github.com/sirupsen/logrus"
	goqr "github.com/skip2/go-qrcode"
)

// QR image size bounds, pixels
const (
	defaultQRImageSize = 512
	maxQRImageSize     = 2048
)

// QRService owns the change-detecting generator and exposes the codec to
// the HTTP surface.
type QRService struct {
	userRepo  *repositories.UserRepository
	generator *qrcode.Generator
	auditSvc  *AuditService
	validator *utils.ValidationService
}

func NewQRService(userRepo *repositories.UserRepository, generator *qrcode.Generator, auditSvc *AuditService) *QRService {
	return &QRService{
		userRepo:  userRepo,
		generator: generator,
		auditSvc:  auditSvc,
		validator: utils.NewValidationService(),
	}
}

// Generator exposes the shared generator so other services can invalidate
// cached encodings.
func (qs *QRService) Generator() *qrcode.Generator {
	return qs.generator
}

// GenerateQR encodes the user's profile, serving the cached string when the
// emergency-relevant fields have not changed.
func (qs *QRService) GenerateQR(ctx context.Context, userID string, req models.GenerateQRRequest) (*models.GenerateQRResponse, error) {
	user, err := qs.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.NewNotFoundError("profile")
	}

	opts := qs.resolveOptions(user, req)
	result := qs.generator.Generate(user, opts, req.ForceRefresh)

	qs.auditSvc.RecordQREvent(user.ID, userID, models.AuditEventQRGenerate, map[string]interface{}{
		"fromCache":        result.FromCache,
		"emergencyOnly":    opts.EmergencyOnly,
		"includeProfileId": opts.IncludeProfileID,
	})

	return &models.GenerateQRResponse{
		QRString:    result.QRString,
		Data:        result.Data,
		FromCache:   result.FromCache,
		GeneratedAt: result.GeneratedAt,
	}, nil
}

// GenerateQRImage renders the encoded profile as a PNG. Medium error
// correction keeps the symbol scannable at the payload sizes the encoder
// produces.
func (qs *QRService) GenerateQRImage(ctx context.Context, userID string, req models.GenerateQRRequest, size int) ([]byte, error) {
	resp, err := qs.GenerateQR(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = defaultQRImageSize
	}
	if size > maxQRImageSize {
		size = maxQRImageSize
	}

	png, err := goqr.Encode(resp.QRString, goqr.Medium, size)
	if err != nil {
		logrus.Error("Failed to render QR image: ", err)
		return nil, utils.NewServiceErrorWithCause("QR_RENDER_FAILED", "failed to render QR image", err)
	}

	return png, nil
}

// DecodeQR parses a scanned string. Anonymous scans are allowed; when the
// payload carries a profile id the decode is audited against that profile.
func (qs *QRService) DecodeQR(ctx context.Context, accessorID string, req models.DecodeQRRequest) (*qrcode.EmergencyQRData, qrcode.FormatKind, error) {
	if validationErrors := qs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, qrcode.FormatUnknown, utils.NewBadRequestError(validationErrors[0].Message)
	}

	kind := qrcode.ClassifyFormat(req.QRString)
	data := qrcode.Decode(req.QRString)
	if data == nil {
		return nil, kind, utils.NewBadRequestError("QR code could not be decoded")
	}

	if data.ProfileID != "" {
		if oid := utils.ObjectIDFromHex(data.ProfileID); !oid.IsZero() {
			qs.auditSvc.RecordQREvent(oid, accessorID, models.AuditEventQRDecode, map[string]interface{}{
				"format": kind.String(),
			})
		}
	}

	return data, kind, nil
}

// ValidateQR checks a scanned string against the format contract
func (qs *QRService) ValidateQR(req models.ValidateQRRequest) (*qrcode.ValidationResult, error) {
	if validationErrors := qs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewBadRequestError(validationErrors[0].Message)
	}

	result := qrcode.Validate(req.QRString)
	return &result, nil
}

// RefreshCheck reports whether the QR string the client is displaying is
// stale relative to the stored profile.
func (qs *QRService) RefreshCheck(ctx context.Context, userID string, req models.RefreshCheckRequest) (*models.RefreshCheckResponse, error) {
	if validationErrors := qs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewBadRequestError(validationErrors[0].Message)
	}

	user, err := qs.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.NewNotFoundError("profile")
	}

	opts := qs.resolveOptions(user, models.GenerateQRRequest{})
	stale := qs.generator.ShouldRegenerate(req.QRString, user, opts)

	return &models.RefreshCheckResponse{ShouldRegenerate: stale}, nil
}

// resolveOptions starts from the profile-derived defaults and applies
// explicit request overrides.
func (qs *QRService) resolveOptions(user *models.User, req models.GenerateQRRequest) qrcode.Options {
	opts := qrcode.DefaultOptions(user)
	if req.EmergencyOnly != nil {
		opts.EmergencyOnly = *req.EmergencyOnly
		if opts.EmergencyOnly {
			opts.IncludeProfileID = false
		}
	}
	if req.IncludeProfileID != nil {
		opts.IncludeProfileID = *req.IncludeProfileID
	}
	return opts
}
