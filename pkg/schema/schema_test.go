package schema

import (
	"testing"

	"github.com/dukex/flowlint/pkg/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// testRegistry builds customer → address → (lines: array of line) plus order → items[].
func testRegistry(t *testing.T) *Registry {
	t.Helper()

	return NewRegistry(
		&models.ObjectTypeSchema{
			ID:   "customer",
			Name: "Customer",
			Fields: []models.FieldDefinition{
				{Name: "email", Type: models.FieldTypeEmail, Required: true},
				{Name: "name", Type: models.FieldTypeString},
				{Name: "address", Type: models.FieldTypeObject, Validation: &models.FieldValidation{ObjectTypeID: "address"}},
				{Name: "tags", Type: models.FieldTypeArray, Validation: &models.FieldValidation{ItemType: models.FieldTypeString}},
				{Name: "meta", Type: models.FieldTypeObject},
			},
		},
		&models.ObjectTypeSchema{
			ID:   "address",
			Name: "Address",
			Fields: []models.FieldDefinition{
				{Name: "city", Type: models.FieldTypeString},
				{Name: "lines", Type: models.FieldTypeArray, Validation: &models.FieldValidation{ItemObjectTypeID: "line"}},
				{Name: "geo", Type: models.FieldTypeObject, Validation: &models.FieldValidation{ObjectTypeID: "missing"}},
			},
		},
		&models.ObjectTypeSchema{
			ID:   "line",
			Name: "Line",
			Fields: []models.FieldDefinition{
				{Name: "text", Type: models.FieldTypeString},
				{Name: "verifiedAt", Type: models.FieldTypeDatetime},
			},
		},
		&models.ObjectTypeSchema{
			ID:   "order",
			Name: "Order",
			Fields: []models.FieldDefinition{
				{Name: "total", Type: models.FieldTypeNumber},
				{Name: "items", Type: models.FieldTypeArray, Validation: &models.FieldValidation{ItemObjectTypeID: "order-item"}},
				{Name: "history", Type: models.FieldTypeArray, Validation: &models.FieldValidation{ItemObjectTypeID: "gone"}},
			},
		},
		&models.ObjectTypeSchema{
			ID:   "order-item",
			Name: "Order Item",
			Fields: []models.FieldDefinition{
				{Name: "sku", Type: models.FieldTypeString},
				{Name: "price", Type: models.FieldTypeNumber},
			},
		},
	)
}
