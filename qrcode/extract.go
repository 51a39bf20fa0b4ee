package qrcode

import (
	"strings"
	"time"

	"lifetag/models"
)

// criticalAllergyKeywords flags allergies that must survive the QR size cap.
// Matching is substring-based and case-insensitive on purpose: over-matching
// a free-text allergy entry is acceptable, missing a life-threatening one is
// not.
var criticalAllergyKeywords = []string{
	"penicillin",
	"latex",
	"shellfish",
	"peanuts",
	"tree nuts",
	"bee",
	"wasp",
	"sulfa",
	"iodine",
	"aspirin",
}

// Extractor projects a full user profile down to the bounded field set that
// belongs in an emergency QR payload. It is a pure function of its input and
// the clock.
type Extractor struct {
	now func() time.Time
}

// NewExtractor returns an extractor using the wall clock.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorWithClock returns an extractor with an injected clock for tests.
func NewExtractorWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// DefaultOptions derives encoding options from the profile itself. An
// incomplete profile is minimized: emergency-only, no embedded profile id.
func DefaultOptions(user *models.User) Options {
	if user == nil || !user.IsComplete {
		return Options{EmergencyOnly: true}
	}
	return Options{
		IncludeProfileID: true,
		CompressData:     strings.TrimSpace(user.MedicalInfo.EmergencyNote) != "",
	}
}

// Extract builds the canonical payload from a profile snapshot. The returned
// value carries the generation timestamp and must not be mutated afterwards.
func (e *Extractor) Extract(user *models.User, opts Options) *EmergencyQRData {
	data := &EmergencyQRData{
		Version:        FormatVersion,
		Name:           user.FullName(),
		BloodType:      user.MedicalInfo.BloodType,
		Allergies:      PrioritizeAllergies(user.MedicalInfo.Allergies),
		HasFullProfile: !opts.EmergencyOnly,
		Timestamp:      e.now().UTC().Format(timestampLayout),
	}

	if contact := user.PrimaryContact(); contact != nil {
		data.EmergencyContact = &Contact{
			Name:         contact.Name,
			Phone:        contact.Phone,
			Relationship: contact.Relationship,
		}
	}

	if note := strings.TrimSpace(user.MedicalInfo.EmergencyNote); note != "" {
		data.EmergencyNote = truncateWithEllipsis(note, noteExtractLimit)
	}

	if opts.IncludeProfileID && !user.ID.IsZero() {
		data.ProfileID = user.ID.Hex()
	}

	return data
}

// PrioritizeAllergies orders critical allergies first, drops blank entries,
// and truncates to MaxAllergies. Insertion order within each group is kept.
func PrioritizeAllergies(allergies []string) []string {
	var critical, normal []string

	for _, a := range allergies {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if isCriticalAllergy(a) {
			critical = append(critical, a)
		} else {
			normal = append(normal, a)
		}
	}

	ordered := append(critical, normal...)
	if len(ordered) > MaxAllergies {
		ordered = ordered[:MaxAllergies]
	}
	return ordered
}

func isCriticalAllergy(allergy string) bool {
	lower := strings.ToLower(allergy)
	for _, keyword := range criticalAllergyKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// truncateWithEllipsis shortens s to max runes, appending "..." when content
// was dropped.
func truncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
