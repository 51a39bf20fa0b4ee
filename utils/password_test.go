package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordService_HashAndCompare(t *testing.T) {
	t.Parallel()

	ps := NewPasswordService()

	hashed, err := ps.HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hashed)

	ok, err := ps.ComparePassword("correct horse battery", hashed)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = ps.ComparePassword("wrong password", hashed)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPasswordService_RejectsShortPassword(t *testing.T) {
	t.Parallel()

	_, err := NewPasswordService().HashPassword("short")
	require.Error(t, err)
}
