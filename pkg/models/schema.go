package models

// FieldType is the declared type of an object-type field.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeURL      FieldType = "url"
	FieldTypeJSON     FieldType = "json"
	FieldTypeArray    FieldType = "array"
	FieldTypeObject   FieldType = "object"
)

// FieldTypes lists every known field type.
var FieldTypes = []FieldType{
	FieldTypeString,
	FieldTypeNumber,
	FieldTypeBoolean,
	FieldTypeDate,
	FieldTypeDatetime,
	FieldTypeEmail,
	FieldTypePhone,
	FieldTypeURL,
	FieldTypeJSON,
	FieldTypeArray,
	FieldTypeObject,
}

// ObjectTypeSchema is a named, user-defined set of fields. Fields may point at
// other schemas through FieldValidation.ObjectTypeID and ItemObjectTypeID.
type ObjectTypeSchema struct {
	ID          string            `json:"id"                    validate:"required"`
	Name        string            `json:"name"                  validate:"required"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields"                validate:"required,min=1,dive"`
}

// FieldDefinition declares a single field of an object type.
type FieldDefinition struct {
	Name         string           `json:"name"                   validate:"required,fieldname"`
	DisplayName  string           `json:"displayName,omitempty"`
	Type         FieldType        `json:"type"                   validate:"required,fieldtype"`
	Required     bool             `json:"required,omitempty"`
	Validation   *FieldValidation `json:"validation,omitempty"`
	DefaultValue any              `json:"defaultValue,omitempty"`
	Description  string           `json:"description,omitempty"`
}

// Label returns the display name when set, otherwise the field name.
func (f FieldDefinition) Label() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}

	return f.Name
}

// FieldValidation holds the type-dependent constraints of a field.
type FieldValidation struct {
	// string, email, phone, url
	MinLength *int     `json:"minLength,omitempty" validate:"omitempty,min=0"`
	MaxLength *int     `json:"maxLength,omitempty" validate:"omitempty,min=0"`
	Pattern   string   `json:"pattern,omitempty"`
	Enum      []string `json:"enum,omitempty"`

	// number
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// array
	MinItems         *int      `json:"minItems,omitempty"         validate:"omitempty,min=0"`
	MaxItems         *int      `json:"maxItems,omitempty"         validate:"omitempty,min=0"`
	ItemType         FieldType `json:"itemType,omitempty"         validate:"omitempty,fieldtype"`
	ItemObjectTypeID string    `json:"itemObjectTypeId,omitempty"`

	// object
	ObjectTypeID string `json:"objectTypeId,omitempty"`
}
