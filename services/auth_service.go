package services

import (
	"context"
	"errors"
	"lifetag/models"
	"lifetag/repositories"
	"lifetag/utils"

	"github.com/sirupsen/logrus"
)

type AuthService struct {
	userRepo        *repositories.UserRepository
	jwtService      *utils.JWTService
	passwordService *utils.PasswordService
	validator       *utils.ValidationService
}

func NewAuthService(userRepo *repositories.UserRepository, jwtService *utils.JWTService) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtService:      jwtService,
		passwordService: utils.NewPasswordService(),
		validator:       utils.NewValidationService(),
	}
}

func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	// Validate request
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewBadRequestError(validationErrors[0].Message)
	}

	if !req.AcceptTerms {
		return nil, utils.NewBadRequestError("terms must be accepted")
	}

	// Check if user already exists
	existingUser, _ := as.userRepo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, utils.NewConflictError("user with this email already exists")
	}

	// Professionals can self-register, but the account stays unverified
	// (IsVerified false) until an admin grants the role, so the claimed
	// role carries no access to protected profiles on its own.
	role := models.RoleUser
	if req.Role == models.RoleMedicalProfessional {
		role = models.RoleMedicalProfessional
	}

	// Hash password
	hashedPassword, err := as.passwordService.HashPassword(req.Password)
	if err != nil {
		logrus.Error("Failed to hash password: ", err)
		return nil, errors.New("failed to create user")
	}

	// Create user with safe notification defaults; access alerts stay on
	// until the owner opts out.
	user := models.User{
		Email:    req.Email,
		Password: hashedPassword,
		Role:     role,
		PersonalInfo: models.PersonalInfo{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
		Privacy: models.PrivacySettings{
			AllowProfessionalAccess: true,
		},
		Notifications: models.NotificationPrefs{
			PushEnabled:  true,
			AccessAlerts: true,
		},
		DeviceType: req.DeviceType,
	}

	if req.PersonalInfo != nil {
		user.PersonalInfo = *req.PersonalInfo
		if user.PersonalInfo.FirstName == "" {
			user.PersonalInfo.FirstName = req.FirstName
		}
		if user.PersonalInfo.LastName == "" {
			user.PersonalInfo.LastName = req.LastName
		}
	}

	err = as.userRepo.Create(ctx, &user)
	if err != nil {
		logrus.Error("Failed to create user: ", err)
		return nil, errors.New("failed to create user")
	}

	// Generate JWT tokens
	tokenPair, err := as.jwtService.GenerateTokenPair(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		logrus.Error("Failed to generate tokens: ", err)
		return nil, errors.New("failed to generate authentication tokens")
	}

	// Remove password from response
	user.Password = ""

	logrus.Infof("👤 New user registered: %s", utils.MaskEmail(user.Email))

	return &models.AuthResponse{
		User:         user,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (as *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	// Validate request
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewBadRequestError(validationErrors[0].Message)
	}

	// Get user by email
	user, err := as.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}

	// Check if user is active
	if !user.IsActive {
		return nil, utils.NewForbiddenError("account is deactivated")
	}

	// Verify password
	isValid, err := as.passwordService.ComparePassword(req.Password, user.Password)
	if err != nil || !isValid {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}

	// Generate JWT tokens
	tokenPair, err := as.jwtService.GenerateTokenPair(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		logrus.Error("Failed to generate tokens: ", err)
		return nil, errors.New("failed to generate authentication tokens")
	}

	// Remove password from response
	user.Password = ""

	return &models.AuthResponse{
		User:         *user,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (as *AuthService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.AuthResponse, error) {
	tokenPair, err := as.jwtService.RefreshToken(req.RefreshToken)
	if err != nil {
		return nil, utils.NewUnauthorizedError("invalid refresh token")
	}

	claims, err := as.jwtService.ValidateToken(tokenPair.AccessToken)
	if err != nil {
		return nil, utils.NewUnauthorizedError("invalid refresh token")
	}

	user, err := as.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, utils.NewUnauthorizedError("user no longer exists")
	}

	if !user.IsActive {
		return nil, utils.NewForbiddenError("account is deactivated")
	}

	user.Password = ""

	return &models.AuthResponse{
		User:         *user,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (as *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return utils.NewBadRequestError(validationErrors[0].Message)
	}

	user, err := as.userRepo.GetByID(ctx, userID)
	if err != nil {
		return utils.NewNotFoundError("user")
	}

	isValid, err := as.passwordService.ComparePassword(req.CurrentPassword, user.Password)
	if err != nil || !isValid {
		return utils.NewUnauthorizedError("current password is incorrect")
	}

	hashedPassword, err := as.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		logrus.Error("Failed to hash password: ", err)
		return errors.New("failed to change password")
	}

	if err := as.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		logrus.Error("Failed to update password: ", err)
		return errors.New("failed to change password")
	}

	return nil
}
