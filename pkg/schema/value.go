package schema

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dukex/flowlint/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlValidator = validator.New()
)

// ValidateFieldValue checks value against the declared type and constraints of
// field. Only the first violated constraint is reported.
func ValidateFieldValue(value any, field models.FieldDefinition) models.ValueResult {
	if isEmpty(value) {
		if field.Required {
			return models.Invalid(fmt.Sprintf("Field %q is required", field.Label()))
		}

		return models.Valid()
	}

	rules := field.Validation
	if rules == nil {
		rules = &models.FieldValidation{}
	}

	switch field.Type {
	case models.FieldTypeString, models.FieldTypeEmail, models.FieldTypePhone, models.FieldTypeURL:
		return validateString(value, field.Type, rules)
	case models.FieldTypeNumber:
		return validateNumber(value, rules)
	case models.FieldTypeBoolean:
		return validateBoolean(value)
	case models.FieldTypeDate, models.FieldTypeDatetime:
		return validateDate(value)
	case models.FieldTypeArray:
		return validateArray(value, rules)
	case models.FieldTypeObject, models.FieldTypeJSON:
		return validateObject(value)
	}

	return models.Valid()
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	s, ok := value.(string)

	return ok && s == ""
}

func validateString(value any, fieldType models.FieldType, rules *models.FieldValidation) models.ValueResult {
	s, ok := value.(string)
	if !ok {
		return models.Invalid("Expected string, got " + kindOf(value))
	}

	length := utf8.RuneCountInString(s)

	if rules.MinLength != nil && length < *rules.MinLength {
		return models.Invalid(fmt.Sprintf("Minimum length is %d characters", *rules.MinLength))
	}

	if rules.MaxLength != nil && length > *rules.MaxLength {
		return models.Invalid(fmt.Sprintf("Maximum length is %d characters", *rules.MaxLength))
	}

	if rules.Pattern != "" {
		pattern, err := regexp.Compile(rules.Pattern)
		if err != nil {
			return models.Invalid("Invalid validation pattern")
		}

		if !pattern.MatchString(s) {
			return models.Invalid("Value does not match required pattern")
		}
	}

	if len(rules.Enum) > 0 && !slices.Contains(rules.Enum, s) {
		return models.Invalid("Value must be one of: " + strings.Join(rules.Enum, ", "))
	}

	switch fieldType {
	case models.FieldTypeEmail:
		if !emailPattern.MatchString(s) {
			return models.Invalid("Invalid email format")
		}
	case models.FieldTypeURL:
		if err := urlValidator.Var(s, "url"); err != nil {
			return models.Invalid("Invalid URL format")
		}
	}

	return models.Valid()
}

func validateNumber(value any, rules *models.FieldValidation) models.ValueResult {
	n, ok := toNumber(value)
	if !ok {
		return models.Invalid("Expected number")
	}

	if rules.Min != nil && n < *rules.Min {
		return models.Invalid("Minimum value is " + formatNumber(*rules.Min))
	}

	if rules.Max != nil && n > *rules.Max {
		return models.Invalid("Maximum value is " + formatNumber(*rules.Max))
	}

	return models.Valid()
}

// toNumber accepts Go numeric kinds and numeric strings. Booleans are not
// numbers even though cast would convert them.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case bool:
		return 0, false
	case string:
		value = strings.TrimSpace(v)
	}

	n, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}

	return n, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func validateBoolean(value any) models.ValueResult {
	switch v := value.(type) {
	case bool:
		return models.Valid()
	case string:
		if v == "true" || v == "false" {
			return models.Valid()
		}
	}

	return models.Invalid("Expected boolean")
}

func validateDate(value any) models.ValueResult {
	s, ok := value.(string)
	if !ok {
		return models.Invalid("Expected date string")
	}

	if _, err := cast.ToTimeE(s); err != nil {
		return models.Invalid("Invalid date format")
	}

	return models.Valid()
}

func validateArray(value any, rules *models.FieldValidation) models.ValueResult {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return models.Invalid("Expected array")
	}

	count := rv.Len()

	if rules.MinItems != nil && count < *rules.MinItems {
		return models.Invalid(fmt.Sprintf("Minimum %d items required", *rules.MinItems))
	}

	if rules.MaxItems != nil && count > *rules.MaxItems {
		return models.Invalid(fmt.Sprintf("Maximum %d items allowed", *rules.MaxItems))
	}

	return models.Valid()
}

func validateObject(value any) models.ValueResult {
	rv := reflect.Indirect(reflect.ValueOf(value))
	if rv.Kind() != reflect.Map && rv.Kind() != reflect.Struct {
		return models.Invalid("Expected object")
	}

	return models.Valid()
}

// kindOf names the runtime kind of value the way editor payloads describe it.
func kindOf(value any) string {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	default:
		return "object"
	}
}
