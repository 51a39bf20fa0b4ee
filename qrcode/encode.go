package qrcode

import (
	"encoding/base64"
	"strings"
)

// Encode renders a payload as a single QR-embeddable string: a
// human-readable block for generic scanner apps followed by an APP_DATA
// machine section for the app's own decoder. When the dual-layer string
// would exceed MaxQRLength, the human block is dropped entirely and the
// machine section is repacked key by key.
func Encode(data *EmergencyQRData) string {
	full := buildHumanSection(data) + "\n" + machineMarker + " " + buildMachineSection(data)
	if len(full) > MaxQRLength {
		return buildReducedEncoding(data)
	}
	return full
}

// buildHumanSection produces the fixed-format block a bystander reads in a
// generic QR scanner with no app installed.
func buildHumanSection(data *EmergencyQRData) string {
	lines := []string{headerLine, ""}

	lines = append(lines, patientLabel+strings.ToUpper(data.Name))

	if data.BloodType != "" {
		lines = append(lines, bloodTypeLabel+data.BloodType)
	}

	if len(data.Allergies) > 0 {
		lines = append(lines, allergyHeader)
		for _, allergy := range data.Allergies {
			lines = append(lines, "   • "+allergy)
		}
	}

	if c := data.EmergencyContact; c != nil {
		lines = append(lines, contactHeader)
		lines = append(lines, "   "+c.Name+" ("+c.Relationship+")")
		lines = append(lines, "   Phone: "+regroupPhoneDigits(c.Phone))
	}

	if data.EmergencyNote != "" {
		lines = append(lines, notesHeader)
		note := truncateWithEllipsis(data.EmergencyNote, noteHumanLimit)
		for _, wrapped := range wrapText(note, noteWrapWidth) {
			lines = append(lines, "   "+wrapped)
		}
	}

	lines = append(lines, separatorLine)

	if data.HasFullProfile {
		lines = append(lines, fullProfileLine)
	}

	lines = append(lines, updatedLabel+formatDisplayDate(data))
	lines = append(lines, footerLine)
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// buildMachineSection produces the semicolon-joined KEY:VALUE pairs.
func buildMachineSection(data *EmergencyQRData) string {
	pairs := append(criticalPairs(data), optionalPairs(data)...)
	return strings.Join(pairs, ";")
}

// criticalPairs are the identity and medical keys that are never dropped by
// length enforcement.
func criticalPairs(data *EmergencyQRData) []string {
	pairs := []string{
		"V:" + data.Version,
		"N:" + data.Name,
	}
	if data.BloodType != "" {
		pairs = append(pairs, "BT:"+data.BloodType)
	}
	if len(data.Allergies) > 0 {
		pairs = append(pairs, "ALG:"+strings.Join(data.Allergies, ","))
	}
	if c := data.EmergencyContact; c != nil {
		encodedPhone := base64.StdEncoding.EncodeToString([]byte(c.Phone))
		pairs = append(pairs, "EC:"+c.Name+"-"+encodedPhone+"-"+c.Relationship)
	}
	return pairs
}

// optionalPairs are dropped one at a time when the reduced encoding would
// overflow.
func optionalPairs(data *EmergencyQRData) []string {
	var pairs []string
	if data.EmergencyNote != "" {
		pairs = append(pairs, "NOTE:"+truncateWithEllipsis(data.EmergencyNote, noteMachineLimit))
	}
	if data.ProfileID != "" {
		pairs = append(pairs, "LT:"+base64.StdEncoding.EncodeToString([]byte(data.ProfileID)))
	}
	pairs = append(pairs, "TS:"+data.Timestamp)
	return pairs
}

// buildReducedEncoding packs the machine pairs alone: critical keys first,
// then each optional key only while the running length stays within
// MaxQRLength. A key that would overflow is skipped, not fatal.
func buildReducedEncoding(data *EmergencyQRData) string {
	encoded := strings.Join(criticalPairs(data), ";")
	for _, pair := range optionalPairs(data) {
		if len(encoded)+1+len(pair) > MaxQRLength {
			continue
		}
		encoded += ";" + pair
	}
	return encoded
}

// regroupPhoneDigits strips formatting and regroups the digits with spaces.
// The spacing keeps mobile OS text detectors from rendering the number as a
// tappable phone link inside the scan result.
func regroupPhoneDigits(phone string) string {
	var digits []rune
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return phone
	}

	switch len(digits) {
	case 10:
		return string(digits[:3]) + " " + string(digits[3:6]) + " " + string(digits[6:])
	case 11:
		return string(digits[:1]) + " " + string(digits[1:4]) + " " + string(digits[4:7]) + " " + string(digits[7:])
	default:
		var groups []string
		for i := 0; i < len(digits); i += 3 {
			end := i + 3
			if end > len(digits) {
				end = len(digits)
			}
			groups = append(groups, string(digits[i:end]))
		}
		return strings.Join(groups, " ")
	}
}

// wrapText word-wraps s into lines of at most width characters. Words longer
// than the width get a line of their own.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return lines
}

// formatDisplayDate renders the generation timestamp for the human block,
// falling back to the raw value when it does not parse.
func formatDisplayDate(data *EmergencyQRData) string {
	t := data.GeneratedAt()
	if t.IsZero() {
		return data.Timestamp
	}
	return t.Format("Jan 2, 2006")
}
