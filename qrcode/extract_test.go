package qrcode

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifetag/models"
)

func testClock() func() time.Time {
	fixed := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: "jane@example.com",
		PersonalInfo: models.PersonalInfo{
			FirstName: "Jane",
			LastName:  "Doe",
		},
		MedicalInfo: models.MedicalInfo{
			BloodType:     "O+",
			Allergies:     []string{"Penicillin", "dust"},
			EmergencyNote: "Diabetic, insulin in fridge",
		},
		EmergencyContacts: []models.EmergencyContact{
			{Name: "John", Phone: "5551234567", Relationship: "spouse", IsPrimary: true},
		},
		IsComplete: true,
	}
}

func TestPrioritizeAllergies_CriticalFirst(t *testing.T) {
	t.Parallel()

	got := PrioritizeAllergies([]string{"mild rash", "Penicillin", "dust"})
	require.Equal(t, []string{"Penicillin", "mild rash", "dust"}, got)
}

func TestPrioritizeAllergies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "blank entries dropped",
			input: []string{"", "  ", "latex", ""},
			want:  []string{"latex"},
		},
		{
			name:  "substring match is case insensitive",
			input: []string{"pollen", "TREE NUTS (severe)", "cats"},
			want:  []string{"TREE NUTS (severe)", "pollen", "cats"},
		},
		{
			name:  "capped at five total",
			input: []string{"a", "b", "c", "d", "bee stings", "wasp venom", "e"},
			want:  []string{"bee stings", "wasp venom", "a", "b", "c"},
		},
		{
			name:  "insertion order kept within groups",
			input: []string{"sulfa drugs", "aspirin", "grass", "mold"},
			want:  []string{"sulfa drugs", "aspirin", "grass", "mold"},
		},
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PrioritizeAllergies(tt.input))
		})
	}
}

func TestDefaultOptions_IncompleteProfileIsMinimized(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.IsComplete = false

	opts := DefaultOptions(user)
	require.True(t, opts.EmergencyOnly)
	require.False(t, opts.IncludeProfileID)
}

func TestDefaultOptions_CompleteProfile(t *testing.T) {
	t.Parallel()

	user := testUser()
	opts := DefaultOptions(user)
	require.False(t, opts.EmergencyOnly)
	require.True(t, opts.IncludeProfileID)
	require.True(t, opts.CompressData, "note present should set CompressData")

	user.MedicalInfo.EmergencyNote = ""
	require.False(t, DefaultOptions(user).CompressData)
}

func TestExtract_PopulatesAllFields(t *testing.T) {
	t.Parallel()

	user := testUser()
	extractor := NewExtractorWithClock(testClock())

	data := extractor.Extract(user, Options{IncludeProfileID: true})

	require.Equal(t, FormatVersion, data.Version)
	require.Equal(t, "Jane Doe", data.Name)
	require.Equal(t, "O+", data.BloodType)
	require.Equal(t, []string{"Penicillin", "dust"}, data.Allergies)
	require.Equal(t, "Diabetic, insulin in fridge", data.EmergencyNote)
	require.True(t, data.HasFullProfile)
	require.Equal(t, user.ID.Hex(), data.ProfileID)
	require.Equal(t, "2024-06-15T10:30:00.000Z", data.Timestamp)

	require.NotNil(t, data.EmergencyContact)
	require.Equal(t, "John", data.EmergencyContact.Name)
	require.Equal(t, "5551234567", data.EmergencyContact.Phone)
	require.Equal(t, "spouse", data.EmergencyContact.Relationship)
}

func TestExtract_PrimaryContactWins(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.EmergencyContacts = []models.EmergencyContact{
		{Name: "First", Phone: "111", Relationship: "friend"},
		{Name: "Primary", Phone: "222", Relationship: "spouse", IsPrimary: true},
		{Name: "Third", Phone: "333", Relationship: "parent"},
	}

	data := NewExtractorWithClock(testClock()).Extract(user, Options{})
	require.Equal(t, "Primary", data.EmergencyContact.Name)
}

func TestExtract_FirstContactWhenNoPrimary(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.EmergencyContacts = []models.EmergencyContact{
		{Name: "First", Phone: "111", Relationship: "friend"},
		{Name: "Second", Phone: "222", Relationship: "spouse"},
	}

	data := NewExtractorWithClock(testClock()).Extract(user, Options{})
	require.Equal(t, "First", data.EmergencyContact.Name)
}

func TestExtract_EmergencyOnlyOmitsFullProfile(t *testing.T) {
	t.Parallel()

	data := NewExtractorWithClock(testClock()).Extract(testUser(), Options{EmergencyOnly: true})
	require.False(t, data.HasFullProfile)
	require.Empty(t, data.ProfileID)
}

func TestExtract_LongNoteTruncatedWithEllipsis(t *testing.T) {
	t.Parallel()

	user := testUser()
	user.MedicalInfo.EmergencyNote = strings.Repeat("x", 500)

	data := NewExtractorWithClock(testClock()).Extract(user, Options{})
	require.Len(t, data.EmergencyNote, noteExtractLimit+3)
	require.True(t, strings.HasSuffix(data.EmergencyNote, "..."))
}
