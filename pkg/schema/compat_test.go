package schema

import (
	"testing"

	"github.com/dukex/flowlint/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateFieldType(t *testing.T) {
	assert.Equal(t, models.Invalid("Field definition not found"), ValidateFieldType(nil, models.FieldTypeString))

	email := &models.FieldDefinition{Name: "email", Type: models.FieldTypeEmail}
	assert.True(t, ValidateFieldType(email, models.FieldTypeString).Valid)
	assert.True(t, ValidateFieldType(email, models.FieldTypeEmail).Valid)

	payload := &models.FieldDefinition{Name: "payload", Type: models.FieldTypeJSON}
	assert.True(t, ValidateFieldType(payload, models.FieldTypeArray).Valid)

	count := &models.FieldDefinition{Name: "count", Type: models.FieldTypeNumber}
	assert.Equal(t,
		models.Invalid(`Field type "number" is not compatible with expected type "string"`),
		ValidateFieldType(count, models.FieldTypeString))
}

func TestAreTypesCompatible(t *testing.T) {
	testCases := []struct {
		t1, t2   models.FieldType
		expected bool
	}{
		{models.FieldTypeDate, models.FieldTypeDatetime, true},
		{models.FieldTypeString, models.FieldTypeURL, true},
		{models.FieldTypeObject, models.FieldTypeJSON, true},
		{models.FieldTypeArray, models.FieldTypeObject, false},
		{models.FieldTypeEmail, models.FieldTypePhone, false},
		{models.FieldTypeNumber, models.FieldTypeString, false},
		{models.FieldTypeBoolean, models.FieldTypeBoolean, true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.t1)+"/"+string(tc.t2), func(t *testing.T) {
			assert.Equal(t, tc.expected, AreTypesCompatible(tc.t1, tc.t2))
			assert.Equal(t, tc.expected, AreTypesCompatible(tc.t2, tc.t1), "relation must be symmetric")
		})
	}
}
