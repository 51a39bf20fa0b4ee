package qrcode

import (
	"encoding/base64"
	"strings"

	"github.com/sirupsen/logrus"
)

// ClassifyFormat tags a scanned string before parsing. A string carrying the
// human-readable header or the machine marker is the current dual-layer
// format; anything else non-empty is treated as the legacy single-layer
// key-value encoding.
func ClassifyFormat(raw string) FormatKind {
	if strings.TrimSpace(raw) == "" {
		return FormatUnknown
	}
	if strings.Contains(raw, headerLine) || strings.Contains(raw, machineMarker) {
		return FormatCurrent
	}
	return FormatLegacy
}

// Decode recovers an EmergencyQRData from an arbitrary scanned or pasted
// string. It returns nil (never a partial object) when the required fields
// (name, version) cannot be recovered. Individual field decode failures fall
// back to safe defaults and never abort the whole record. Panics inside
// parsing are converted to a nil result at this boundary.
func Decode(raw string) (data *EmergencyQRData) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Warn("QR decode panic recovered")
			data = nil
		}
	}()

	var decoded *EmergencyQRData
	switch ClassifyFormat(raw) {
	case FormatCurrent:
		decoded = decodeCurrent(raw)
	case FormatLegacy:
		decoded = decodeLegacy(raw)
	default:
		return nil
	}

	if decoded == nil || decoded.Name == "" || decoded.Version == "" {
		return nil
	}
	return decoded
}

// decodeCurrent parses the dual-layer format: the APP_DATA line is
// authoritative, the human-readable lines are a best-effort fallback in case
// the machine section is damaged or absent.
func decodeCurrent(raw string) *EmergencyQRData {
	data := &EmergencyQRData{}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, machineMarker) {
			parsePairs(strings.TrimSpace(strings.TrimPrefix(trimmed, machineMarker)), data, false)
		}
	}

	scanHumanSection(raw, data)
	return data
}

// decodeLegacy parses the single-layer key-value encoding, optionally
// prefixed with "DATA:".
func decodeLegacy(raw string) *EmergencyQRData {
	payload := strings.TrimSpace(raw)
	payload = strings.TrimSpace(strings.TrimPrefix(payload, legacyPrefix))

	data := &EmergencyQRData{}
	parsePairs(payload, data, true)
	return data
}

// scanHumanSection fills gaps from the human-readable lines: patient name,
// blood type, and the full-profile marker.
func scanHumanSection(raw string, data *EmergencyQRData) {
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if data.Name == "" && strings.HasPrefix(trimmed, patientLabel) {
			data.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, patientLabel))
		}
		if data.BloodType == "" {
			if idx := strings.Index(trimmed, "BLOOD TYPE:"); idx >= 0 {
				data.BloodType = strings.TrimSpace(trimmed[idx+len("BLOOD TYPE:"):])
			}
		}
		if trimmed == fullProfileLine {
			data.HasFullProfile = true
		}
	}
}

// parsePairs parses semicolon-joined KEY:VALUE pairs into data. Unknown keys
// are ignored for forward compatibility. The legacy flag enables the two
// keys only the old format produced (APP, FULL).
func parsePairs(payload string, data *EmergencyQRData, legacy bool) {
	for _, part := range strings.Split(payload, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := kv[1]

		switch key {
		case "V":
			data.Version = value
		case "N":
			data.Name = value
		case "BT":
			data.BloodType = value
		case "ALG":
			data.Allergies = splitAllergies(value)
		case "EC":
			data.EmergencyContact = parseContact(value)
		case "NOTE":
			data.EmergencyNote = value
		case "LT":
			if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
				data.ProfileID = string(decoded)
			} else {
				// Field-level failure: keep the rest of the record
				logrus.WithError(err).Warn("QR decode: invalid profile id encoding")
			}
		case "TS":
			data.Timestamp = value
		case "APP":
			if legacy {
				data.ProfileID = value
			}
		case "FULL":
			if legacy {
				data.HasFullProfile = value == "1"
			}
		}
	}
}

func splitAllergies(value string) []string {
	var allergies []string
	for _, a := range strings.Split(value, ",") {
		if a = strings.TrimSpace(a); a != "" {
			allergies = append(allergies, a)
		}
	}
	return allergies
}

// parseContact splits the EC value into name-phone-relationship. The phone
// sub-field is tried as base64 first and used verbatim on decode failure,
// which keeps un-obfuscated historical encodings working.
func parseContact(value string) *Contact {
	parts := strings.SplitN(value, "-", 3)
	if len(parts) != 3 {
		return nil
	}

	phone := parts[1]
	if decoded, err := base64.StdEncoding.DecodeString(phone); err == nil {
		phone = string(decoded)
	}

	return &Contact{
		Name:         parts[0],
		Phone:        phone,
		Relationship: parts[2],
	}
}
