package schema

import (
	"fmt"
	"slices"

	"github.com/dukex/flowlint/pkg/models"
)

// assignable lists, per declared field type, the expected types it satisfies.
var assignable = map[models.FieldType][]models.FieldType{
	models.FieldTypeString:   {models.FieldTypeString, models.FieldTypeEmail, models.FieldTypePhone, models.FieldTypeURL},
	models.FieldTypeNumber:   {models.FieldTypeNumber},
	models.FieldTypeBoolean:  {models.FieldTypeBoolean},
	models.FieldTypeDate:     {models.FieldTypeDate, models.FieldTypeDatetime},
	models.FieldTypeDatetime: {models.FieldTypeDatetime, models.FieldTypeDate},
	models.FieldTypeEmail:    {models.FieldTypeEmail, models.FieldTypeString},
	models.FieldTypePhone:    {models.FieldTypePhone, models.FieldTypeString},
	models.FieldTypeURL:      {models.FieldTypeURL, models.FieldTypeString},
	models.FieldTypeJSON:     {models.FieldTypeJSON, models.FieldTypeObject, models.FieldTypeArray},
	models.FieldTypeArray:    {models.FieldTypeArray, models.FieldTypeJSON},
	models.FieldTypeObject:   {models.FieldTypeObject, models.FieldTypeJSON},
}

// interchangeable is the narrower table used when comparing two fields.
var interchangeable = map[models.FieldType][]models.FieldType{
	models.FieldTypeString:   {models.FieldTypeEmail, models.FieldTypePhone, models.FieldTypeURL},
	models.FieldTypeEmail:    {models.FieldTypeString},
	models.FieldTypePhone:    {models.FieldTypeString},
	models.FieldTypeURL:      {models.FieldTypeString},
	models.FieldTypeDate:     {models.FieldTypeDatetime},
	models.FieldTypeDatetime: {models.FieldTypeDate},
	models.FieldTypeJSON:     {models.FieldTypeObject, models.FieldTypeArray},
	models.FieldTypeObject:   {models.FieldTypeJSON},
	models.FieldTypeArray:    {models.FieldTypeJSON},
}

// ValidateFieldType checks that field can be used where expected is required.
func ValidateFieldType(field *models.FieldDefinition, expected models.FieldType) models.ValueResult {
	if field == nil {
		return models.Invalid("Field definition not found")
	}

	if field.Type == expected || slices.Contains(assignable[field.Type], expected) {
		return models.Valid()
	}

	return models.Invalid(fmt.Sprintf("Field type %q is not compatible with expected type %q", field.Type, expected))
}

// AreTypesCompatible reports whether values of t1 and t2 may be bound to each
// other, e.g. a date output into a datetime input. The relation is symmetric.
func AreTypesCompatible(t1, t2 models.FieldType) bool {
	if t1 == t2 {
		return true
	}

	return slices.Contains(interchangeable[t1], t2) || slices.Contains(interchangeable[t2], t1)
}
