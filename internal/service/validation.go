package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const passwordSpecials = "!@#$%^&*"

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError is returned before any write when input is rejected.
// Message is the first violation, Violations holds all of them.
type ValidationError struct {
	Message    string
	Violations []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(violations ...string) *ValidationError {
	return &ValidationError{Message: violations[0], Violations: violations}
}

var fieldMessages = map[string]string{
	"Name":     "Name must be between 20 and 60 characters",
	"Email":    "Invalid email format",
	"Address":  "Address must be at most 400 characters",
	"Password": "Password must be 8-16 characters with at least one uppercase letter and one special character",
	"Role":     "Invalid role",
	"OwnerID":  "Store owner is required",
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return validPassword(fl.Field().String())
	})
	return v
}

// validPassword: 8-16 characters from [A-Za-z0-9_] plus the special set,
// with at least one uppercase letter and one special character.
func validPassword(p string) bool {
	if len(p) < 8 || len(p) > 16 {
		return false
	}

	var hasUpper, hasSpecial bool
	for _, r := range p {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		case unicode.IsLower(r), unicode.IsDigit(r), r == '_':
		default:
			return false
		}
	}

	return hasUpper && hasSpecial
}

func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	violations := make([]string, 0, len(fieldErrs))
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.StructField()]
		if fe.Tag() == "required" {
			msg, ok = "All fields are required", true
		}
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		if !seen[msg] {
			seen[msg] = true
			violations = append(violations, msg)
		}
	}

	return newValidationError(violations...)
}
