package schema

import (
	"strings"

	"github.com/dukex/flowlint/pkg/fieldref"
	"github.com/dukex/flowlint/pkg/models"
)

// GetFieldType returns the declared type of fieldPath within objectTypeID.
//
// With a nil registry the type is guessed from the path by InferFieldType.
// That guess is a display hint only; validation goes through ResolveField,
// which never guesses.
func GetFieldType(objectTypeID, fieldPath string, reg *Registry) (models.FieldType, bool) {
	if objectTypeID == "" || fieldPath == "" {
		return "", false
	}

	if reg == nil {
		return InferFieldType(fieldPath), true
	}

	field, ok := reg.Resolve(objectTypeID, fieldPath)
	if !ok {
		return "", false
	}

	return field.Type, true
}

// ResolveField walks fieldPath through fields, following object fields into
// their ObjectTypeID schema and array fields into their ItemObjectTypeID
// schema. Indexed segments such as "items[0]" address the same field as
// "items". It returns nil when any segment is unknown, when a segment cannot
// be descended into, or when a referenced schema is missing.
func ResolveField(fields []models.FieldDefinition, fieldPath string, reg *Registry) *models.FieldDefinition {
	parts := fieldref.SplitPath(fieldPath)
	if len(parts) == 0 {
		return nil
	}

	current := fields

	for i, part := range parts {
		name, _, _ := fieldref.SplitIndex(part)

		field := findField(current, name)
		if field == nil {
			return nil
		}

		if i == len(parts)-1 {
			return field
		}

		next, ok := nestedFields(field, reg)
		if !ok {
			return nil
		}

		current = next
	}

	return nil
}

func findField(fields []models.FieldDefinition, name string) *models.FieldDefinition {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}

	return nil
}

// nestedFields returns the field list a path continues into after field.
func nestedFields(field *models.FieldDefinition, reg *Registry) ([]models.FieldDefinition, bool) {
	if field.Validation == nil {
		return nil, false
	}

	var target string

	switch field.Type {
	case models.FieldTypeObject:
		target = field.Validation.ObjectTypeID
	case models.FieldTypeArray:
		target = field.Validation.ItemObjectTypeID
	default:
		return nil, false
	}

	if target == "" {
		return nil, false
	}

	nested, ok := reg.Get(target)
	if !ok {
		return nil, false
	}

	return nested.Fields, true
}

// InferFieldType guesses a field type from substrings of its path. It exists
// for UI hints when no schemas are loaded and must not gate validation.
func InferFieldType(fieldPath string) models.FieldType {
	path := strings.ToLower(fieldPath)

	switch {
	case strings.Contains(path, "email"):
		return models.FieldTypeEmail
	case containsAny(path, "phone", "mobile"):
		return models.FieldTypePhone
	case containsAny(path, "url", "link"):
		return models.FieldTypeURL
	case strings.Contains(path, "date"):
		return models.FieldTypeDate
	case strings.Contains(path, "time"):
		return models.FieldTypeDatetime
	case containsAny(path, "count", "total", "amount"):
		return models.FieldTypeNumber
	case containsAny(path, "is", "has", "active"):
		return models.FieldTypeBoolean
	default:
		return models.FieldTypeString
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
