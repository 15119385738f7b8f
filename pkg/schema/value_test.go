package schema

import (
	"testing"

	"github.com/dukex/flowlint/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateFieldValue(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		field    models.FieldDefinition
		expected models.ValueResult
	}{
		{
			name:     "required but nil",
			value:    nil,
			field:    models.FieldDefinition{Name: "email", DisplayName: "Email address", Type: models.FieldTypeEmail, Required: true},
			expected: models.Invalid(`Field "Email address" is required`),
		},
		{
			name:     "required but empty string uses name without display name",
			value:    "",
			field:    models.FieldDefinition{Name: "email", Type: models.FieldTypeEmail, Required: true},
			expected: models.Invalid(`Field "email" is required`),
		},
		{
			name:     "empty and optional",
			value:    "",
			field:    models.FieldDefinition{Name: "count", Type: models.FieldTypeNumber},
			expected: models.Valid(),
		},
		{
			name:     "string type mismatch",
			value:    12.0,
			field:    models.FieldDefinition{Name: "name", Type: models.FieldTypeString},
			expected: models.Invalid("Expected string, got number"),
		},
		{
			name:     "min length",
			value:    "ab",
			field:    models.FieldDefinition{Name: "code", Type: models.FieldTypeString, Validation: &models.FieldValidation{MinLength: intPtr(3)}},
			expected: models.Invalid("Minimum length is 3 characters"),
		},
		{
			name:     "max length counts characters not bytes",
			value:    "héllo",
			field:    models.FieldDefinition{Name: "code", Type: models.FieldTypeString, Validation: &models.FieldValidation{MaxLength: intPtr(5)}},
			expected: models.Valid(),
		},
		{
			name:     "max length",
			value:    "toolong",
			field:    models.FieldDefinition{Name: "code", Type: models.FieldTypeString, Validation: &models.FieldValidation{MaxLength: intPtr(3)}},
			expected: models.Invalid("Maximum length is 3 characters"),
		},
		{
			name:     "pattern mismatch",
			value:    "abc",
			field:    models.FieldDefinition{Name: "zip", Type: models.FieldTypeString, Validation: &models.FieldValidation{Pattern: `^\d{5}$`}},
			expected: models.Invalid("Value does not match required pattern"),
		},
		{
			name:     "pattern match",
			value:    "12345",
			field:    models.FieldDefinition{Name: "zip", Type: models.FieldTypeString, Validation: &models.FieldValidation{Pattern: `^\d{5}$`}},
			expected: models.Valid(),
		},
		{
			name:     "length is checked before pattern",
			value:    "1",
			field:    models.FieldDefinition{Name: "zip", Type: models.FieldTypeString, Validation: &models.FieldValidation{MinLength: intPtr(5), Pattern: `^[a-z]+$`}},
			expected: models.Invalid("Minimum length is 5 characters"),
		},
		{
			name:     "enum",
			value:    "purple",
			field:    models.FieldDefinition{Name: "color", Type: models.FieldTypeString, Validation: &models.FieldValidation{Enum: []string{"red", "green"}}},
			expected: models.Invalid("Value must be one of: red, green"),
		},
		{
			name:     "invalid email",
			value:    "not-an-email",
			field:    models.FieldDefinition{Name: "email", Type: models.FieldTypeEmail},
			expected: models.Invalid("Invalid email format"),
		},
		{
			name:     "valid email",
			value:    "ada@example.com",
			field:    models.FieldDefinition{Name: "email", Type: models.FieldTypeEmail},
			expected: models.Valid(),
		},
		{
			name:     "invalid url",
			value:    "not a url",
			field:    models.FieldDefinition{Name: "site", Type: models.FieldTypeURL},
			expected: models.Invalid("Invalid URL format"),
		},
		{
			name:     "valid url",
			value:    "https://example.com/path?q=1",
			field:    models.FieldDefinition{Name: "site", Type: models.FieldTypeURL},
			expected: models.Valid(),
		},
		{
			name:     "phone accepts any string",
			value:    "+1 555 0100",
			field:    models.FieldDefinition{Name: "phone", Type: models.FieldTypePhone},
			expected: models.Valid(),
		},
		{
			name:     "number above max",
			value:    150,
			field:    models.FieldDefinition{Name: "score", Type: models.FieldTypeNumber, Validation: &models.FieldValidation{Max: floatPtr(100)}},
			expected: models.Invalid("Maximum value is 100"),
		},
		{
			name:     "number below min",
			value:    0.5,
			field:    models.FieldDefinition{Name: "score", Type: models.FieldTypeNumber, Validation: &models.FieldValidation{Min: floatPtr(1.5)}},
			expected: models.Invalid("Minimum value is 1.5"),
		},
		{
			name:     "numeric string is coerced",
			value:    " 42 ",
			field:    models.FieldDefinition{Name: "score", Type: models.FieldTypeNumber, Validation: &models.FieldValidation{Max: floatPtr(100)}},
			expected: models.Valid(),
		},
		{
			name:     "non numeric string",
			value:    "abc",
			field:    models.FieldDefinition{Name: "score", Type: models.FieldTypeNumber},
			expected: models.Invalid("Expected number"),
		},
		{
			name:     "boolean is not a number",
			value:    true,
			field:    models.FieldDefinition{Name: "score", Type: models.FieldTypeNumber},
			expected: models.Invalid("Expected number"),
		},
		{
			name:     "boolean literal string",
			value:    "false",
			field:    models.FieldDefinition{Name: "active", Type: models.FieldTypeBoolean},
			expected: models.Valid(),
		},
		{
			name:     "boolean rejects other strings",
			value:    "yes",
			field:    models.FieldDefinition{Name: "active", Type: models.FieldTypeBoolean},
			expected: models.Invalid("Expected boolean"),
		},
		{
			name:     "date string",
			value:    "2024-03-01",
			field:    models.FieldDefinition{Name: "day", Type: models.FieldTypeDate},
			expected: models.Valid(),
		},
		{
			name:     "datetime string",
			value:    "2024-03-01T10:00:00Z",
			field:    models.FieldDefinition{Name: "at", Type: models.FieldTypeDatetime},
			expected: models.Valid(),
		},
		{
			name:     "date must be a string",
			value:    20240301,
			field:    models.FieldDefinition{Name: "day", Type: models.FieldTypeDate},
			expected: models.Invalid("Expected date string"),
		},
		{
			name:     "unparseable date",
			value:    "yesterday-ish",
			field:    models.FieldDefinition{Name: "day", Type: models.FieldTypeDate},
			expected: models.Invalid("Invalid date format"),
		},
		{
			name:     "array expected",
			value:    "a,b",
			field:    models.FieldDefinition{Name: "tags", Type: models.FieldTypeArray},
			expected: models.Invalid("Expected array"),
		},
		{
			name:     "array min items",
			value:    []any{"a"},
			field:    models.FieldDefinition{Name: "tags", Type: models.FieldTypeArray, Validation: &models.FieldValidation{MinItems: intPtr(2)}},
			expected: models.Invalid("Minimum 2 items required"),
		},
		{
			name:     "array max items",
			value:    []string{"a", "b", "c"},
			field:    models.FieldDefinition{Name: "tags", Type: models.FieldTypeArray, Validation: &models.FieldValidation{MaxItems: intPtr(2)}},
			expected: models.Invalid("Maximum 2 items allowed"),
		},
		{
			name:     "object accepts maps",
			value:    map[string]any{"a": 1},
			field:    models.FieldDefinition{Name: "meta", Type: models.FieldTypeObject},
			expected: models.Valid(),
		},
		{
			name:     "json rejects arrays",
			value:    []any{1, 2},
			field:    models.FieldDefinition{Name: "payload", Type: models.FieldTypeJSON},
			expected: models.Invalid("Expected object"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidateFieldValue(tc.value, tc.field))
		})
	}
}
