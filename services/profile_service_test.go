package services

import (
	"lifetag/models"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func protectedOwner(requirePassword, allowProfessional bool) *models.User {
	return &models.User{
		ID: primitive.NewObjectID(),
		Privacy: models.PrivacySettings{
			RequirePassword:         requirePassword,
			AllowProfessionalAccess: allowProfessional,
		},
	}
}

func TestScanAccessAllowed(t *testing.T) {
	t.Parallel()

	owner := protectedOwner(true, true)

	tests := []struct {
		name         string
		owner        *models.User
		accessor     *models.User
		accessorID   string
		accessorRole string
		want         bool
	}{
		{
			name:  "unprotected profile is open to anonymous scans",
			owner: protectedOwner(false, true),
			want:  true,
		},
		{
			name:         "owner bypasses their own password gate",
			owner:        owner,
			accessorID:   owner.ID.Hex(),
			accessorRole: models.RoleUser,
			want:         true,
		},
		{
			name:         "admin bypasses the gate",
			owner:        owner,
			accessorID:   primitive.NewObjectID().Hex(),
			accessorRole: models.RoleAdmin,
			want:         true,
		},
		{
			name:         "verified professional allowed when owner permits",
			owner:        owner,
			accessor:     &models.User{IsActive: true, IsVerified: true},
			accessorID:   primitive.NewObjectID().Hex(),
			accessorRole: models.RoleMedicalProfessional,
			want:         true,
		},
		{
			name:         "self-registered professional without verification is blocked",
			owner:        owner,
			accessor:     &models.User{IsActive: true, IsVerified: false},
			accessorID:   primitive.NewObjectID().Hex(),
			accessorRole: models.RoleMedicalProfessional,
			want:         false,
		},
		{
			name:         "professional role claim with no account record is blocked",
			owner:        owner,
			accessor:     nil,
			accessorID:   primitive.NewObjectID().Hex(),
			accessorRole: models.RoleMedicalProfessional,
			want:         false,
		},
		{
			name:         "verified professional blocked when owner disallows professional access",
			owner:        protectedOwner(true, false),
			accessor:     &models.User{IsActive: true, IsVerified: true},
			accessorID:   primitive.NewObjectID().Hex(),
			accessorRole: models.RoleMedicalProfessional,
			want:         false,
		},
		{
			name:         "deactivated verified professional is blocked",
			owner:        owner,
			accessor:     &models.User{IsActive: false, IsVerified: true},
			accessorID:   primitive.NewObjectID().Hex(),
			accessorRole: models.RoleMedicalProfessional,
			want:         false,
		},
		{
			name:         "ordinary user is blocked",
			owner:        owner,
			accessorID:   primitive.NewObjectID().Hex(),
			accessorRole: models.RoleUser,
			want:         false,
		},
		{
			name:  "anonymous scan of a protected profile is blocked",
			owner: owner,
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := scanAccessAllowed(tt.owner, tt.accessor, tt.accessorID, tt.accessorRole)
			require.Equal(t, tt.want, got)
		})
	}
}
