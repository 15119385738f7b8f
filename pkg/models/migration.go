package models

// MigrationResult records the outcome of migrating one legacy reference.
type MigrationResult struct {
	Migrated  bool            `json:"migrated"`
	NodeID    string          `json:"node_id"`
	ConfigKey string          `json:"config_key"`
	FieldPath string          `json:"field_path"`
	OldValue  any             `json:"old_value"`
	NewValue  *FieldReference `json:"new_value"`
	Errors    []string        `json:"errors"`
}

// Suggestion ranks an object type as the probable target of a legacy path.
type Suggestion struct {
	FieldPath             string `json:"field_path"`
	SuggestedObjectTypeID string `json:"suggested_object_type_id"`
	Confidence            int    `json:"confidence"`
	Reason                string `json:"reason"`
}
