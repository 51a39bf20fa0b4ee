package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhoneNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"+1 (555) 123-4567", "+15551234567"},
		{"555.123.4567", "5551234567"},
		{"5551234567", "5551234567"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizePhoneNumber(tt.in))
	}
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	require.Equal(t, "j*******@example.com", MaskEmail("janedoe1@example.com"))
	require.Equal(t, "a@example.com", MaskEmail("a@example.com"))
	require.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, CalculateTotalPages(0, 20))
	require.Equal(t, 1, CalculateTotalPages(1, 20))
	require.Equal(t, 1, CalculateTotalPages(20, 20))
	require.Equal(t, 2, CalculateTotalPages(21, 20))
	require.Equal(t, 0, CalculateTotalPages(100, 0))
}

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, CalculateOffset(0, 20))
	require.Equal(t, 0, CalculateOffset(1, 20))
	require.Equal(t, 40, CalculateOffset(3, 20))
}
