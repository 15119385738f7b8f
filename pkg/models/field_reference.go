package models

// FieldReference is the typed form of a field reference. The legacy form is a
// plain dotted string such as "user.profile.email".
type FieldReference struct {
	ObjectTypeID string    `json:"objectTypeId,omitempty"`
	FieldPath    string    `json:"fieldPath"`
	Type         FieldType `json:"type,omitempty"`
}

// ParsedFieldReference is the canonical in-memory form of either reference
// representation. An empty ObjectTypeID means no object type is known.
type ParsedFieldReference struct {
	ObjectTypeID string   `json:"objectTypeId,omitempty"`
	FieldPath    string   `json:"fieldPath"`
	Parts        []string `json:"parts"`
	IsNested     bool     `json:"isNested"`
}

// HasObjectType reports whether the reference names an object type.
func (p *ParsedFieldReference) HasObjectType() bool {
	return p.ObjectTypeID != ""
}
