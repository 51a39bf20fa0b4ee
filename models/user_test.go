package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	t.Parallel()

	u := &User{PersonalInfo: PersonalInfo{FirstName: " Jane ", LastName: "Doe"}}
	require.Equal(t, "Jane Doe", u.FullName())

	u = &User{PersonalInfo: PersonalInfo{FirstName: "Jane"}}
	require.Equal(t, "Jane", u.FullName())

	u = &User{}
	require.Equal(t, "", u.FullName())
}

func TestPrimaryContact(t *testing.T) {
	t.Parallel()

	u := &User{}
	require.Nil(t, u.PrimaryContact())

	u.EmergencyContacts = []EmergencyContact{
		{Name: "First", Phone: "111"},
		{Name: "Flagged", Phone: "222", IsPrimary: true},
	}
	require.Equal(t, "Flagged", u.PrimaryContact().Name)

	u.EmergencyContacts[1].IsPrimary = false
	require.Equal(t, "First", u.PrimaryContact().Name)
}

func TestComputeCompleteness(t *testing.T) {
	t.Parallel()

	u := &User{
		PersonalInfo: PersonalInfo{FirstName: "Jane", LastName: "Doe"},
		MedicalInfo:  MedicalInfo{BloodType: "O+"},
		EmergencyContacts: []EmergencyContact{
			{Name: "John", Phone: "5551234567"},
		},
	}
	require.True(t, u.ComputeCompleteness())
	require.True(t, u.IsComplete)

	u.MedicalInfo.BloodType = ""
	require.False(t, u.ComputeCompleteness())
	require.False(t, u.IsComplete)

	u.MedicalInfo.BloodType = "O+"
	u.EmergencyContacts = nil
	require.False(t, u.ComputeCompleteness())
}

func TestIsValidBloodType(t *testing.T) {
	t.Parallel()

	for _, bt := range ValidBloodTypes {
		require.True(t, IsValidBloodType(bt))
	}
	require.False(t, IsValidBloodType("C+"))
	require.False(t, IsValidBloodType("o+"))
	require.False(t, IsValidBloodType(""))
}
