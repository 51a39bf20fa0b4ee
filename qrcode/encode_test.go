package qrcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lifetag/models"
)

func testData() *EmergencyQRData {
	return &EmergencyQRData{
		Version:   FormatVersion,
		Name:      "Jane Doe",
		BloodType: "O+",
		Allergies: []string{"Penicillin", "dust"},
		EmergencyContact: &Contact{
			Name:         "John",
			Phone:        "5551234567",
			Relationship: "spouse",
		},
		EmergencyNote:  "Diabetic, insulin in fridge",
		HasFullProfile: true,
		ProfileID:      "507f1f77bcf86cd799439011",
		Timestamp:      "2024-06-15T10:30:00.000Z",
	}
}

func TestEncode_HumanSectionLiterals(t *testing.T) {
	t.Parallel()

	encoded := Encode(testData())

	require.Contains(t, encoded, "═══ EMERGENCY MEDICAL ID ═══")
	require.Contains(t, encoded, "PATIENT: JANE DOE")
	require.Contains(t, encoded, "🩸 BLOOD TYPE: O+")
	require.Contains(t, encoded, "⚠️  ALLERGIES:")
	require.Contains(t, encoded, "   • Penicillin")
	require.Contains(t, encoded, "📞 EMERGENCY CONTACT:")
	require.Contains(t, encoded, "   John (spouse)")
	require.Contains(t, encoded, "   Phone: 555 123 4567")
	require.Contains(t, encoded, "🏥 MEDICAL NOTES:")
	require.Contains(t, encoded, "───────────────────────────")
	require.Contains(t, encoded, "📱 Full medical profile available in LifeTag app")
	require.Contains(t, encoded, "📅 Updated: Jun 15, 2024")
	require.Contains(t, encoded, "🔒 Generated by LifeTag Medical ID")
	require.Contains(t, encoded, "APP_DATA: ")
}

func TestEncode_MachineSectionGrammar(t *testing.T) {
	t.Parallel()

	encoded := Encode(testData())

	var machine string
	for _, line := range strings.Split(encoded, "\n") {
		if strings.HasPrefix(line, "APP_DATA:") {
			machine = strings.TrimSpace(strings.TrimPrefix(line, "APP_DATA:"))
		}
	}
	require.NotEmpty(t, machine, "machine section missing")

	pairs := map[string]string{}
	for _, part := range strings.Split(machine, ";") {
		kv := strings.SplitN(part, ":", 2)
		require.Len(t, kv, 2, "malformed pair %q", part)
		pairs[kv[0]] = kv[1]
	}

	require.Equal(t, "1.0", pairs["V"])
	require.Equal(t, "Jane Doe", pairs["N"])
	require.Equal(t, "O+", pairs["BT"])
	require.Equal(t, "Penicillin,dust", pairs["ALG"])
	require.Equal(t, "2024-06-15T10:30:00.000Z", pairs["TS"])
	require.Contains(t, pairs, "EC")
	require.Contains(t, pairs, "NOTE")
	require.Contains(t, pairs, "LT")

	// Phone is obfuscated, not plain text
	require.NotContains(t, pairs["EC"], "5551234567")
}

func TestEncode_MinimalProfileStillValid(t *testing.T) {
	t.Parallel()

	data := &EmergencyQRData{
		Version:   FormatVersion,
		Name:      "Jane Doe",
		Timestamp: "2024-06-15T10:30:00.000Z",
	}

	encoded := Encode(data)
	require.NotEmpty(t, encoded)
	require.LessOrEqual(t, len(encoded), MaxQRLength)

	decoded := Decode(encoded)
	require.NotNil(t, decoded)
	require.Equal(t, "Jane Doe", decoded.Name)
	require.Equal(t, FormatVersion, decoded.Version)
	require.Equal(t, "2024-06-15T10:30:00.000Z", decoded.Timestamp)
}

func TestEncode_LengthBoundWithOversizeProfile(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.MedicalInfo.EmergencyNote = strings.Repeat("critical care instructions ", 40)
	user.MedicalInfo.Allergies = []string{
		"Penicillin and related beta-lactam antibiotics",
		"latex gloves and medical latex products",
		"shellfish including shrimp and lobster",
		"tree nuts of all kinds",
		"bee and wasp venom",
		"sulfa drugs",
		"iodine contrast dye",
	}
	for i := 0; i < 5; i++ {
		user.EmergencyContacts = append(user.EmergencyContacts, models.EmergencyContact{
			Name: "Contact Person With A Long Name", Phone: "15551234567", Relationship: "relative",
		})
	}

	data := NewExtractorWithClock(testClock()).Extract(user, Options{IncludeProfileID: true})
	encoded := Encode(data)

	require.LessOrEqual(t, len(encoded), MaxQRLength)

	decoded := Decode(encoded)
	require.NotNil(t, decoded)
	require.Equal(t, "Jane Doe", decoded.Name)
	require.Equal(t, FormatVersion, decoded.Version)
}

func TestRegroupPhoneDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"5551234567", "555 123 4567"},
		{"(555) 123-4567", "555 123 4567"},
		{"15551234567", "1 555 123 4567"},
		{"123456", "123 456"},
		{"12345", "123 45"},
		{"no digits", "no digits"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, regroupPhoneDigits(tt.in), "input %q", tt.in)
	}
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	lines := wrapText("history of seizures keep airway clear and call for help", 20)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		require.LessOrEqual(t, len(line), 20, "line %q exceeds width", line)
	}
	require.Equal(t, "history of seizures keep airway clear and call for help", strings.Join(lines, " "))
}

func TestBuildReducedEncoding_SkipsOverflowingKeys(t *testing.T) {
	t.Parallel()

	data := testData()
	// Inflate the allergies so the critical keys leave no room for NOTE
	long := strings.Repeat("a", 185)
	data.Allergies = []string{long, long, long, long, long}
	data.EmergencyNote = strings.Repeat("n", 150)

	critical := strings.Join(criticalPairs(data), ";")
	reduced := buildReducedEncoding(data)

	require.LessOrEqual(t, len(reduced), MaxQRLength)
	require.True(t, strings.HasPrefix(reduced, critical))
	require.NotContains(t, reduced, ";NOTE:")

	decoded := Decode(reduced)
	require.NotNil(t, decoded)
	require.Equal(t, "Jane Doe", decoded.Name)
	require.Equal(t, FormatVersion, decoded.Version)
}
