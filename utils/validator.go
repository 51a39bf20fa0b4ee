package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"lifetag/models"
)

type ValidationService struct {
	validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func NewValidationService() *ValidationService {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("phone", validatePhone)
	v.RegisterValidation("blood_type", validateBloodType)
	v.RegisterValidation("relationship", validateRelationship)
	v.RegisterValidation("role", validateRole)

	return &ValidationService{
		validator: v,
	}
}

func (vs *ValidationService) ValidateStruct(s interface{}) []ValidationError {
	var validationErrors []ValidationError

	err := vs.validator.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: vs.getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func (vs *ValidationService) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "phone":
		return "Invalid phone number format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "blood_type":
		return "Invalid blood type"
	case "relationship":
		return "Invalid relationship"
	case "role":
		return "Invalid role"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-\(\)]{7,20}$`)

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if phone == "" {
		return true // optional fields use omitempty
	}
	return phoneRegex.MatchString(phone)
}

func validateBloodType(fl validator.FieldLevel) bool {
	bt := fl.Field().String()
	if bt == "" {
		return true
	}
	return models.IsValidBloodType(bt)
}

var validRelationships = []string{
	"spouse", "parent", "child", "sibling", "friend", "relative",
	"partner", "guardian", "caregiver", "other",
}

func validateRelationship(fl validator.FieldLevel) bool {
	rel := strings.ToLower(fl.Field().String())
	if rel == "" {
		return true
	}
	for _, v := range validRelationships {
		if v == rel {
			return true
		}
	}
	return false
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", models.RoleUser, models.RoleMedicalProfessional, models.RoleAdmin:
		return true
	}
	return false
}
