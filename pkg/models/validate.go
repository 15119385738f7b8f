package models

import (
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
)

var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// NewValidator returns a struct validator that understands the custom tags used
// by the models in this package ("fieldname" and "fieldtype").
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for empty tags or nil funcs.
	_ = validate.RegisterValidation("fieldname", func(fl validator.FieldLevel) bool {
		return fieldNamePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("fieldtype", func(fl validator.FieldLevel) bool {
		return IsKnownFieldType(FieldType(fl.Field().String()))
	})

	return validate
}

// IsKnownFieldType reports whether t is one of FieldTypes.
func IsKnownFieldType(t FieldType) bool {
	return slices.Contains(FieldTypes, t)
}
