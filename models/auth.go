// models/auth.go - Auth-related models
package models

// ============== AUTH REQUESTS ==============

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	DeviceType string `json:"deviceType,omitempty"`
}

type RegisterRequest struct {
	Email        string        `json:"email" validate:"required,email"`
	Password     string        `json:"password" validate:"required,min=6"`
	FirstName    string        `json:"firstName" validate:"required"`
	LastName     string        `json:"lastName" validate:"required"`
	Role         string        `json:"role,omitempty" validate:"omitempty,role"`
	AcceptTerms  bool          `json:"acceptTerms" validate:"required"`
	DeviceType   string        `json:"deviceType,omitempty"`
	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ============== AUTH RESPONSES ==============

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}
