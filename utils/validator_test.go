package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type validatorFixture struct {
	Phone        string `validate:"omitempty,phone"`
	BloodType    string `validate:"omitempty,blood_type"`
	Relationship string `validate:"omitempty,relationship"`
	Role         string `validate:"omitempty,role"`
}

func TestValidationService_CustomTags(t *testing.T) {
	t.Parallel()

	vs := NewValidationService()

	tests := []struct {
		name    string
		fixture validatorFixture
		wantErr bool
	}{
		{"all empty passes", validatorFixture{}, false},
		{"valid phone", validatorFixture{Phone: "+1 (555) 123-4567"}, false},
		{"phone with letters", validatorFixture{Phone: "call me"}, true},
		{"valid blood type", validatorFixture{BloodType: "AB-"}, false},
		{"invalid blood type", validatorFixture{BloodType: "C+"}, true},
		{"valid relationship", validatorFixture{Relationship: "spouse"}, false},
		{"relationship case insensitive", validatorFixture{Relationship: "Spouse"}, false},
		{"invalid relationship", validatorFixture{Relationship: "acquaintance"}, true},
		{"valid role", validatorFixture{Role: "medical_professional"}, false},
		{"invalid role", validatorFixture{Role: "superuser"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := vs.ValidateStruct(tt.fixture)
			if tt.wantErr {
				require.NotEmpty(t, errs)
			} else {
				require.Empty(t, errs)
			}
		})
	}
}

func TestValidationService_ErrorMessages(t *testing.T) {
	t.Parallel()

	vs := NewValidationService()

	type req struct {
		Email string `validate:"required,email"`
	}

	errs := vs.ValidateStruct(req{})
	require.Len(t, errs, 1)
	require.Equal(t, "Email", errs[0].Field)
	require.Equal(t, "required", errs[0].Tag)
	require.Contains(t, errs[0].Message, "required")

	errs = vs.ValidateStruct(req{Email: "not-an-email"})
	require.Len(t, errs, 1)
	require.Equal(t, "Invalid email format", errs[0].Message)
}
