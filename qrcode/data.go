// Package qrcode implements the emergency medical ID QR string codec: a
// dual-layer plain-text encoding that any generic QR scanner can display
// and the LifeTag app can parse back losslessly.
package qrcode

import "time"

// FormatVersion is the current QR format revision. It is embedded in every
// encoded string and drives decoder compatibility warnings.
const FormatVersion = "1.0"

const (
	// MaxQRLength bounds the encoded string so it stays scannable as a
	// single QR symbol. Oversize encodings degrade by dropping optional
	// segments, never by failing.
	MaxQRLength = 1000

	// MaxAllergies caps the allergy list after prioritization.
	MaxAllergies = 5

	noteExtractLimit = 200
	noteHumanLimit   = 150
	noteMachineLimit = 100
	noteWrapWidth    = 50
)

// Wire literals of the human-readable section. These are a bit-exact
// external contract: previously issued QR codes contain them verbatim.
const (
	headerLine      = "═══ EMERGENCY MEDICAL ID ═══"
	separatorLine   = "───────────────────────────"
	patientLabel    = "PATIENT: "
	bloodTypeLabel  = "🩸 BLOOD TYPE: "
	allergyHeader   = "⚠️  ALLERGIES:"
	contactHeader   = "📞 EMERGENCY CONTACT:"
	notesHeader     = "🏥 MEDICAL NOTES:"
	fullProfileLine = "📱 Full medical profile available in LifeTag app"
	updatedLabel    = "📅 Updated: "
	footerLine      = "🔒 Generated by LifeTag Medical ID"

	machineMarker = "APP_DATA:"
	legacyPrefix  = "DATA:"
)

// timestampLayout matches the ISO-8601 millisecond form produced by earlier
// app revisions, so timestamps round-trip byte for byte.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// EmergencyQRData is the canonical in-memory representation of a QR payload.
// It is constructed fresh from a profile snapshot at encode time and is
// immutable once produced.
type EmergencyQRData struct {
	Version          string   `json:"version"`
	Name             string   `json:"name"`
	BloodType        string   `json:"bloodType,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
	EmergencyContact *Contact `json:"emergencyContact,omitempty"`
	EmergencyNote    string   `json:"emergencyNote,omitempty"`
	HasFullProfile   bool     `json:"hasFullProfile"`
	ProfileID        string   `json:"profileId,omitempty"`
	Timestamp        string   `json:"timestamp"`
}

// Contact is the single emergency contact embedded in a QR payload.
type Contact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// Options control what the extractor includes in the payload.
type Options struct {
	// IncludeProfileID embeds an obfuscated profile id so the app can fetch
	// the full profile when scanning its own QR codes.
	IncludeProfileID bool

	// EmergencyOnly omits the "full profile available" hint.
	EmergencyOnly bool

	// CompressData is set when a long emergency note is present.
	CompressData bool
}

// FormatKind classifies a scanned string before parsing.
type FormatKind int

const (
	// FormatUnknown means the string is empty or unparseable.
	FormatUnknown FormatKind = iota

	// FormatCurrent is the dual-layer format: human-readable block plus an
	// APP_DATA machine section.
	FormatCurrent

	// FormatLegacy is the single-layer key-value format produced by earlier
	// codec revisions, optionally prefixed with "DATA:".
	FormatLegacy
)

func (k FormatKind) String() string {
	switch k {
	case FormatCurrent:
		return "current"
	case FormatLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// GeneratedAt parses the payload timestamp, returning the zero time when it
// is absent or malformed.
func (d *EmergencyQRData) GeneratedAt() time.Time {
	if d == nil || d.Timestamp == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, d.Timestamp)
	if err != nil {
		// Older builds emitted RFC 3339 without milliseconds
		t, err = time.Parse(time.RFC3339, d.Timestamp)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}
