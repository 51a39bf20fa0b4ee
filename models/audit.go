// models/audit.go - Profile access audit log
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLogEntry records a single access to a user's medical profile.
// Writes are fire-and-forget: a failed audit write must never block the
// access it is logging.
type AuditLogEntry struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// ProfileID is the profile that was accessed (the subject)
	ProfileID primitive.ObjectID `json:"profileId" bson:"profileId"`

	// AccessorID is the authenticated user who accessed it; zero when the
	// access came from an anonymous QR scan
	AccessorID primitive.ObjectID `json:"accessorId,omitempty" bson:"accessorId,omitempty"`

	EventType string `json:"eventType" bson:"eventType"` // profile_access, qr_generate, qr_decode, role_change
	AccessVia string `json:"accessVia" bson:"accessVia"` // qr_scan, direct, admin

	IPAddress  string                 `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent  string                 `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	DeviceType string                 `json:"deviceType,omitempty" bson:"deviceType,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Audit event types
const (
	AuditEventProfileAccess = "profile_access"
	AuditEventQRGenerate    = "qr_generate"
	AuditEventQRDecode      = "qr_decode"
	AuditEventRoleChange    = "role_change"
)

// Access surfaces
const (
	AccessViaQRScan = "qr_scan"
	AccessViaDirect = "direct"
	AccessViaAdmin  = "admin"
)

type AuditLogResponse struct {
	Entries    []AuditLogEntry `json:"entries"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}
