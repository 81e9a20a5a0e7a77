package domain

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^[+]?[\d\s\-()]{10,}$`)
	upiPattern   = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
)

// NewValidator returns a validator with the SmartFare field rules
// registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("smartfare_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("upi", func(fl validator.FieldLevel) bool {
		return upiPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidPhone reports whether s looks like a dialable phone number.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidUPI reports whether s is an email-shaped UPI identifier.
func ValidUPI(s string) bool {
	return upiPattern.MatchString(s)
}
