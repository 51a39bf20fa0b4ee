// models/user.go - User profile with medical information
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"` // Never include in JSON responses

	// Basic Info
	PersonalInfo PersonalInfo `json:"personalInfo" bson:"personalInfo"`

	// Medical Info
	MedicalInfo MedicalInfo `json:"medicalInfo" bson:"medicalInfo"`

	// Emergency Contacts (at most one is flagged primary)
	EmergencyContacts []EmergencyContact `json:"emergencyContacts,omitempty" bson:"emergencyContacts,omitempty"`

	// Privacy & Notifications
	Privacy       PrivacySettings   `json:"privacy" bson:"privacy"`
	Notifications NotificationPrefs `json:"notifications" bson:"notifications"`

	// Device registration for push alerts
	DeviceToken string `json:"-" bson:"deviceToken,omitempty"`
	DeviceType  string `json:"deviceType,omitempty" bson:"deviceType,omitempty"` // ios, android

	// Account Status
	IsActive   bool `json:"isActive" bson:"isActive"`
	IsVerified bool `json:"isVerified" bson:"isVerified"`

	// IsComplete is recomputed on every profile write; an incomplete profile
	// is encoded in emergency-only mode with no embedded profile id.
	IsComplete bool `json:"isComplete" bson:"isComplete"`

	Role string `json:"role" bson:"role"` // user, medical_professional, admin

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type PersonalInfo struct {
	FirstName   string `json:"firstName" bson:"firstName"`
	LastName    string `json:"lastName" bson:"lastName"`
	DateOfBirth string `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty" bson:"gender,omitempty"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
}

type MedicalInfo struct {
	BloodType     string   `json:"bloodType,omitempty" bson:"bloodType,omitempty"`
	Allergies     []string `json:"allergies,omitempty" bson:"allergies,omitempty"`
	Medications   []string `json:"medications,omitempty" bson:"medications,omitempty"`
	Conditions    []string `json:"conditions,omitempty" bson:"conditions,omitempty"`
	EmergencyNote string   `json:"emergencyNote,omitempty" bson:"emergencyNote,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name" bson:"name"`
	Phone        string `json:"phone" bson:"phone"`
	Relationship string `json:"relationship" bson:"relationship"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
	IsPrimary    bool   `json:"isPrimary" bson:"isPrimary"`
}

type PrivacySettings struct {
	// RequirePassword gates full-profile lookups that originate from a
	// scanned QR code carrying a profile id.
	RequirePassword bool `json:"requirePassword" bson:"requirePassword"`

	// AllowProfessionalAccess lets verified medical professionals open the
	// full profile from a scan without the owner's password.
	AllowProfessionalAccess bool `json:"allowProfessionalAccess" bson:"allowProfessionalAccess"`
}

type NotificationPrefs struct {
	PushEnabled  bool `json:"pushEnabled" bson:"pushEnabled"`
	SMSEnabled   bool `json:"smsEnabled" bson:"smsEnabled"`
	AccessAlerts bool `json:"accessAlerts" bson:"accessAlerts"`
}

// Role Constants
const (
	RoleUser                = "user"
	RoleMedicalProfessional = "medical_professional"
	RoleAdmin               = "admin"
)

// ValidBloodTypes is the fixed blood type enumeration
var ValidBloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodType reports whether bt is one of the fixed enumeration values
func IsValidBloodType(bt string) bool {
	for _, v := range ValidBloodTypes {
		if v == bt {
			return true
		}
	}
	return false
}

// FullName returns the display name used in the QR payload
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.PersonalInfo.FirstName) + " " + strings.TrimSpace(u.PersonalInfo.LastName))
}

// PrimaryContact returns the contact flagged primary, else the first one
func (u *User) PrimaryContact() *EmergencyContact {
	if len(u.EmergencyContacts) == 0 {
		return nil
	}
	for i := range u.EmergencyContacts {
		if u.EmergencyContacts[i].IsPrimary {
			return &u.EmergencyContacts[i]
		}
	}
	return &u.EmergencyContacts[0]
}

// ComputeCompleteness recomputes IsComplete from the fields the emergency
// payload depends on: a name, a blood type, and at least one contact.
func (u *User) ComputeCompleteness() bool {
	u.IsComplete = u.FullName() != "" &&
		u.MedicalInfo.BloodType != "" &&
		len(u.EmergencyContacts) > 0
	return u.IsComplete
}

type UpdateProfileRequest struct {
	PersonalInfo      *PersonalInfo       `json:"personalInfo,omitempty"`
	MedicalInfo       *MedicalInfo        `json:"medicalInfo,omitempty"`
	EmergencyContacts *[]EmergencyContact `json:"emergencyContacts,omitempty"`
	Privacy           *PrivacySettings    `json:"privacy,omitempty"`
	Notifications     *NotificationPrefs  `json:"notifications,omitempty"`
	DeviceToken       *string             `json:"deviceToken,omitempty"`
	DeviceType        *string             `json:"deviceType,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

type UserListResponse struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}
