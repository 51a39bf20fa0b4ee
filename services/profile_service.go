package services

import (
	"context"
	"lifetag/models"
	"lifetag/qrcode"
	"lifetag/repositories"
	"lifetag/utils"

	"github.com/sirupsen/logrus"
)

type ProfileService struct {
	userRepo  *repositories.UserRepository
	generator *qrcode.Generator
	auditSvc  *AuditService
	alertSvc  *AlertService
	validator *utils.ValidationService
}

func NewProfileService(userRepo *repositories.UserRepository, generator *qrcode.Generator, auditSvc *AuditService, alertSvc *AlertService) *ProfileService {
	return &ProfileService{
		userRepo:  userRepo,
		generator: generator,
		auditSvc:  auditSvc,
		alertSvc:  alertSvc,
		validator: utils.NewValidationService(),
	}
}

// GetOwnProfile returns the authenticated user's profile
func (ps *ProfileService) GetOwnProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := ps.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.NewNotFoundError("profile")
	}

	user.Password = ""
	return user, nil
}

// UpdateProfile applies a partial update, recomputes completeness, and drops
// the cached QR encoding so the next generate reflects the change.
func (ps *ProfileService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	if validationErrors := ps.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewBadRequestError(validationErrors[0].Message)
	}

	user, err := ps.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.NewNotFoundError("profile")
	}

	if req.PersonalInfo != nil {
		user.PersonalInfo = *req.PersonalInfo
	}
	if req.MedicalInfo != nil {
		if req.MedicalInfo.BloodType != "" && !models.IsValidBloodType(req.MedicalInfo.BloodType) {
			return nil, utils.NewBadRequestError("invalid blood type")
		}
		user.MedicalInfo = *req.MedicalInfo
	}
	if req.EmergencyContacts != nil {
		contacts := *req.EmergencyContacts
		if err := validateContacts(contacts); err != nil {
			return nil, err
		}
		user.EmergencyContacts = contacts
	}
	if req.Privacy != nil {
		user.Privacy = *req.Privacy
	}
	if req.Notifications != nil {
		user.Notifications = *req.Notifications
	}

	user.ComputeCompleteness()

	if err := ps.userRepo.ReplaceProfile(ctx, user); err != nil {
		logrus.Error("Failed to update profile: ", err)
		return nil, err
	}

	if req.DeviceToken != nil {
		deviceType := user.DeviceType
		if req.DeviceType != nil {
			deviceType = *req.DeviceType
		}
		if err := ps.userRepo.UpdateDeviceToken(ctx, userID, *req.DeviceToken, deviceType); err != nil {
			logrus.Warn("Failed to update device token: ", err)
		}
	}

	// Cached encoding may now be stale
	ps.generator.Invalidate(user)

	user.Password = ""
	return user, nil
}

// GetScannedProfile resolves a profile id decoded from a QR code. Access is
// gated by the owner's privacy settings: when RequirePassword is set, only
// verified medical professionals (and only if the owner allows them) get the
// full profile without the owner's password.
func (ps *ProfileService) GetScannedProfile(ctx context.Context, profileID, accessorID, accessorRole, clientIP, userAgent string) (*models.User, error) {
	user, err := ps.userRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, utils.NewNotFoundError("profile")
	}

	if !user.IsActive {
		return nil, utils.NewNotFoundError("profile")
	}

	isOwner := accessorID == profileID

	// The professional role is self-asserted at registration, so the gate
	// only honors it for accounts an admin has verified.
	var accessor *models.User
	if !isOwner && accessorRole == models.RoleMedicalProfessional {
		accessor, _ = ps.userRepo.GetByID(ctx, accessorID)
	}

	if !scanAccessAllowed(user, accessor, accessorID, accessorRole) {
		return nil, utils.NewForbiddenError("this profile requires the owner's password")
	}

	if !isOwner {
		ps.auditSvc.RecordAccess(user.ID, accessorID, models.AuditEventProfileAccess, models.AccessViaQRScan, clientIP, userAgent)

		if user.Notifications.AccessAlerts {
			go ps.alertSvc.SendAccessAlert(user, clientIP)
		}
	}

	user.Password = ""
	return user, nil
}

// RegisterDevice stores the push token for access alerts
func (ps *ProfileService) RegisterDevice(ctx context.Context, userID, deviceToken, deviceType string) error {
	if deviceToken == "" {
		return utils.NewBadRequestError("device token is required")
	}
	return ps.userRepo.UpdateDeviceToken(ctx, userID, deviceToken, deviceType)
}

// DeleteProfile removes the account and its cached QR encoding
func (ps *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	user, err := ps.userRepo.GetByID(ctx, userID)
	if err != nil {
		return utils.NewNotFoundError("profile")
	}

	if err := ps.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	ps.generator.Invalidate(user)
	logrus.Infof("🗑️  Profile deleted: %s", utils.MaskEmail(user.Email))
	return nil
}

// ListUsers returns a paginated user list for the admin surface
func (ps *ProfileService) ListUsers(ctx context.Context, page, pageSize int, search string) (*models.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := ps.userRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return &models.UserListResponse{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: utils.CalculateTotalPages(total, pageSize),
	}, nil
}

// UpdateRole changes a user's role and records the change
func (ps *ProfileService) UpdateRole(ctx context.Context, adminID, targetID string, req models.UpdateRoleRequest) error {
	if validationErrors := ps.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return utils.NewBadRequestError(validationErrors[0].Message)
	}

	target, err := ps.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return utils.NewNotFoundError("user")
	}

	if err := ps.userRepo.UpdateRole(ctx, targetID, req.Role); err != nil {
		return err
	}

	ps.auditSvc.RecordRoleChange(target.ID, adminID, target.Role, req.Role)
	logrus.Infof("🔑 Role changed for %s: %s -> %s", utils.MaskEmail(target.Email), target.Role, req.Role)
	return nil
}

// scanAccessAllowed decides whether an accessor may view a password-protected
// profile without the owner's password. Owners and admins always may; a
// medical professional must be admin-verified and allowed by the owner.
func scanAccessAllowed(owner *models.User, accessor *models.User, accessorID, accessorRole string) bool {
	if !owner.Privacy.RequirePassword {
		return true
	}
	if accessorID != "" && accessorID == owner.ID.Hex() {
		return true
	}
	if accessorRole == models.RoleAdmin {
		return true
	}
	return accessorRole == models.RoleMedicalProfessional &&
		accessor != nil && accessor.IsActive && accessor.IsVerified &&
		owner.Privacy.AllowProfessionalAccess
}

func validateContacts(contacts []models.EmergencyContact) error {
	primaries := 0
	for _, c := range contacts {
		if c.Name == "" || c.Phone == "" {
			return utils.NewBadRequestError("emergency contacts need a name and phone number")
		}
		if c.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return utils.NewBadRequestError("only one emergency contact can be primary")
	}
	return nil
}
