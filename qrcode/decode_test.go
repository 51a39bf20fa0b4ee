package qrcode

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want FormatKind
	}{
		{"empty", "", FormatUnknown},
		{"whitespace only", "   \n  ", FormatUnknown},
		{"current via header", "═══ EMERGENCY MEDICAL ID ═══\n\nPATIENT: X", FormatCurrent},
		{"current via marker", "APP_DATA: V:1.0;N:X;TS:t", FormatCurrent},
		{"legacy bare pairs", "V:1.0;N:X", FormatLegacy},
		{"legacy with prefix", "DATA:V:1.0;N:X", FormatLegacy},
		{"arbitrary text", "not a qr code at all", FormatLegacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifyFormat(tt.in))
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	data := testData()
	decoded := Decode(Encode(data))

	require.NotNil(t, decoded)
	require.Equal(t, data.Version, decoded.Version)
	require.Equal(t, data.Name, decoded.Name)
	require.Equal(t, data.BloodType, decoded.BloodType)
	require.Equal(t, data.Allergies, decoded.Allergies)
	require.Equal(t, data.EmergencyNote, decoded.EmergencyNote)
	require.Equal(t, data.ProfileID, decoded.ProfileID)
	require.Equal(t, data.Timestamp, decoded.Timestamp)
	require.True(t, decoded.HasFullProfile)

	require.NotNil(t, decoded.EmergencyContact)
	require.Equal(t, data.EmergencyContact.Name, decoded.EmergencyContact.Name)
	require.Equal(t, data.EmergencyContact.Phone, decoded.EmergencyContact.Phone)
	require.Equal(t, data.EmergencyContact.Relationship, decoded.EmergencyContact.Relationship)
}

func TestDecode_LegacyFormat(t *testing.T) {
	t.Parallel()

	legacy := "V:1.0;N:Jane Doe;BT:O+;ALG:penicillin;EC:John-5551234567-spouse;TS:2024-01-01T00:00:00.000Z"
	decoded := Decode(legacy)

	require.NotNil(t, decoded)
	require.Equal(t, "1.0", decoded.Version)
	require.Equal(t, "Jane Doe", decoded.Name)
	require.Equal(t, "O+", decoded.BloodType)
	require.Equal(t, []string{"penicillin"}, decoded.Allergies)
	require.Equal(t, "2024-01-01T00:00:00.000Z", decoded.Timestamp)

	require.NotNil(t, decoded.EmergencyContact)
	require.Equal(t, "John", decoded.EmergencyContact.Name)
	require.Equal(t, "5551234567", decoded.EmergencyContact.Phone, "non-base64 phone used verbatim")
	require.Equal(t, "spouse", decoded.EmergencyContact.Relationship)
}

func TestDecode_LegacyOnlyKeys(t *testing.T) {
	t.Parallel()

	decoded := Decode("DATA:V:1.0;N:Jane;APP:abc123;FULL:1")
	require.NotNil(t, decoded)
	require.Equal(t, "abc123", decoded.ProfileID)
	require.True(t, decoded.HasFullProfile)

	decoded = Decode("V:1.0;N:Jane;FULL:0")
	require.NotNil(t, decoded)
	require.False(t, decoded.HasFullProfile)
}

func TestDecode_ObfuscatedPhoneAndProfileID(t *testing.T) {
	t.Parallel()

	phone := base64.StdEncoding.EncodeToString([]byte("5551234567"))
	id := base64.StdEncoding.EncodeToString([]byte("507f1f77bcf86cd799439011"))
	decoded := Decode("V:1.0;N:Jane;EC:John-" + phone + "-spouse;LT:" + id)

	require.NotNil(t, decoded)
	require.Equal(t, "5551234567", decoded.EmergencyContact.Phone)
	require.Equal(t, "507f1f77bcf86cd799439011", decoded.ProfileID)
}

func TestDecode_BadProfileIDEncodingIsNotFatal(t *testing.T) {
	t.Parallel()

	decoded := Decode("V:1.0;N:Jane;LT:!!!not-base64!!!")
	require.NotNil(t, decoded)
	require.Equal(t, "Jane", decoded.Name)
	require.Empty(t, decoded.ProfileID)
}

func TestDecode_NoResultOnGarbage(t *testing.T) {
	t.Parallel()

	tests := []string{
		"not a qr code at all",
		"",
		"   ",
		"https://example.com/some-other-qr",
		"N:OnlyName",             // version missing
		"V:1.0;TS:2024-01-01",    // name missing
		";;;:::",
	}

	for _, in := range tests {
		require.Nil(t, Decode(in), "input %q should give no result", in)
	}
}

func TestDecode_UnknownKeysIgnored(t *testing.T) {
	t.Parallel()

	decoded := Decode("V:1.0;N:Jane;XYZ:future;Q:1")
	require.NotNil(t, decoded)
	require.Equal(t, "Jane", decoded.Name)
}

func TestDecode_HumanSectionFallback(t *testing.T) {
	t.Parallel()

	// Machine section damaged: only the human block survived the scan
	raw := strings.Join([]string{
		"═══ EMERGENCY MEDICAL ID ═══",
		"",
		"PATIENT: JANE DOE",
		"🩸 BLOOD TYPE: O+",
		"───────────────────────────",
		"📱 Full medical profile available in LifeTag app",
		"🔒 Generated by LifeTag Medical ID",
	}, "\n")

	decoded := decodeCurrent(raw)
	require.Equal(t, "JANE DOE", decoded.Name)
	require.Equal(t, "O+", decoded.BloodType)
	require.True(t, decoded.HasFullProfile)

	// Version cannot be recovered from the human block, so the overall
	// decode still reports no result
	require.Nil(t, Decode(raw))
}

func TestDecode_MalformedContactDropped(t *testing.T) {
	t.Parallel()

	decoded := Decode("V:1.0;N:Jane;EC:nodashes")
	require.NotNil(t, decoded)
	require.Nil(t, decoded.EmergencyContact)
}
