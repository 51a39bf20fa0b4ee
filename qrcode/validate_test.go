package qrcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_InvalidFormat(t *testing.T) {
	t.Parallel()

	result := Validate("not a qr code at all")
	require.False(t, result.IsValid)
	require.Equal(t, []string{"Invalid QR code format"}, result.Errors)
	require.Nil(t, result.Data)
}

func TestValidate_FullyPopulatedCurrentFormat(t *testing.T) {
	t.Parallel()

	result := Validate(Encode(testData()))
	require.True(t, result.IsValid)
	require.True(t, result.IsCompatible)
	require.Empty(t, result.Errors)
	require.NotNil(t, result.Data)
}

func TestValidate_VersionMismatchWithMissingContact(t *testing.T) {
	t.Parallel()

	result := Validate("V:0.1;N:X;TS:2024-01-01T00:00:00.000Z")

	require.False(t, result.IsCompatible)
	require.Contains(t, result.Errors, "Missing emergency contact information")

	// Incompatible version plus warnings: both sides of the validity rule
	// are false
	require.False(t, result.IsValid)
}

func TestValidate_CompatibleVersionIsValidDespiteWarnings(t *testing.T) {
	t.Parallel()

	// Current version, no emergency contact: the warning is listed but the
	// compatible version keeps the payload valid. This permissiveness is
	// load-bearing for QR codes already in circulation.
	result := Validate("V:1.0;N:X;TS:2024-01-01T00:00:00.000Z")

	require.True(t, result.IsCompatible)
	require.Contains(t, result.Errors, "Missing emergency contact information")
	require.True(t, result.IsValid)
}

func TestValidate_VersionMismatchAloneIsInvalid(t *testing.T) {
	t.Parallel()

	result := Validate("V:0.9;N:Jane;EC:John-111-spouse;TS:2024-01-01T00:00:00.000Z")

	require.False(t, result.IsCompatible)
	require.Len(t, result.Errors, 1)
	require.False(t, result.IsValid)
	require.NotNil(t, result.Data)
}
