package qrcode

import "fmt"

// ValidationResult reports structural validity and version compatibility of
// a scanned string without rendering it.
type ValidationResult struct {
	IsValid      bool             `json:"isValid"`
	IsCompatible bool             `json:"isCompatible"`
	Errors       []string         `json:"errors,omitempty"`
	Data         *EmergencyQRData `json:"data,omitempty"`
}

// Validate decodes the string and reports warnings for version drift and
// missing fields. A failed decode is the only hard failure.
func Validate(raw string) ValidationResult {
	data := Decode(raw)
	if data == nil {
		return ValidationResult{
			IsValid: false,
			Errors:  []string{"Invalid QR code format"},
		}
	}

	var errs []string
	compatible := data.Version == FormatVersion
	if !compatible {
		errs = append(errs, fmt.Sprintf("QR code version %s may not be fully compatible with this app version", data.Version))
	}
	if data.Name == "" {
		errs = append(errs, "Missing patient name")
	}
	if data.EmergencyContact == nil {
		errs = append(errs, "Missing emergency contact information")
	}

	// A version-compatible payload is reported valid even when warning-level
	// errors are listed. This matches what already-deployed app builds
	// accept; tightening it to len(errs) == 0 would start rejecting QR
	// codes those builds treat as fine.
	return ValidationResult{
		IsValid:      len(errs) == 0 || compatible,
		IsCompatible: compatible,
		Errors:       errs,
		Data:         data,
	}
}
