// models/qr.go - QR endpoint request/response models
package models

import "time"

type GenerateQRRequest struct {
	IncludeProfileID *bool `json:"includeProfileId,omitempty"`
	EmergencyOnly    *bool `json:"emergencyOnly,omitempty"`
	ForceRefresh     bool  `json:"forceRefresh,omitempty"`
}

type DecodeQRRequest struct {
	QRString string `json:"qrString" validate:"required"`
}

type ValidateQRRequest struct {
	QRString string `json:"qrString" validate:"required"`
}

type RefreshCheckRequest struct {
	QRString string `json:"qrString" form:"qrString" validate:"required"`
}

type GenerateQRResponse struct {
	QRString    string      `json:"qrString"`
	Data        interface{} `json:"data"`
	FromCache   bool        `json:"fromCache"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

type RefreshCheckResponse struct {
	ShouldRegenerate bool `json:"shouldRegenerate"`
}
