// Package refcheck validates the field references stored in node configuration
// against an object-type registry.
package refcheck

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/dukex/flowlint/pkg/fieldref"
	"github.com/dukex/flowlint/pkg/graph"
	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/schema"
)

// Options controls reference validation.
type Options struct {
	Registry *schema.Registry
	// ValidateTypes enables expected-type checks where a reference needs one,
	// such as the array field of a loop.
	ValidateTypes bool
	// AllowOldFormat downgrades references without an object type to warnings
	// and skips values that cannot be parsed at all.
	AllowOldFormat bool
}

// DefaultOptions returns lenient options over reg.
func DefaultOptions(reg *schema.Registry) Options {
	return Options{
		Registry:       reg,
		ValidateTypes:  true,
		AllowOldFormat: true,
	}
}

// reference is one field reference found in a node's configuration.
type reference struct {
	label    string
	value    any
	expected models.FieldType
}

// ValidateNode checks every field reference the node's subtype carries. It is a
// no-op when no object types are registered.
func ValidateNode(node *models.WorkflowNode, opts Options) []models.ValidationError {
	if node == nil || opts.Registry.Len() == 0 {
		return nil
	}

	var errs []models.ValidationError

	for _, ref := range extract(node) {
		errs = append(errs, validateReference(node.ID, ref, opts)...)
	}

	return errs
}

// ValidateGraph checks the references of every node in g.
func ValidateGraph(g *models.WorkflowGraph, opts Options) []models.ValidationError {
	if g == nil {
		return nil
	}

	errs := make([]models.ValidationError, 0)

	for _, node := range g.Nodes {
		errs = append(errs, ValidateNode(node, opts)...)
	}

	return errs
}

// ValidateWorkflow merges structural validation with reference validation.
func ValidateWorkflow(v *graph.Validator, g *models.WorkflowGraph, opts Options) models.ValidationResult {
	structure := v.ValidateStructure(g)

	errs := slices.Clone(structure.Errors)
	errs = append(errs, ValidateGraph(g, opts)...)

	return models.NewValidationResult(errs)
}

func extract(node *models.WorkflowNode) []reference {
	var refs []reference

	add := func(key, label string, expected models.FieldType) {
		value, ok := node.ConfigValue(key)
		if !ok || value == nil || value == "" {
			return
		}

		refs = append(refs, reference{label: label, value: value, expected: expected})
	}

	switch node.Type {
	case models.NodeTypeCondition:
		add("field", "Condition field", "")
	case models.NodeTypeSwitch:
		add("field", "Switch field", "")
	case models.NodeTypeLoop:
		add("arrayField", "Loop array field", models.FieldTypeArray)
	case models.NodeTypeTransform:
		add("sourceField", "Transform source field", "")
		add("targetField", "Transform target field", "")
	case models.NodeTypeMap:
		value, _ := node.ConfigValue("mapping")
		refs = append(refs, mappingReferences(value)...)
	case models.NodeTypeFilter:
		add("field", "Filter field", "")
		add("arrayField", "Filter array field", models.FieldTypeArray)
	case models.NodeTypeSendEmail, models.NodeTypeSendSMS:
		add("recipientField", "Recipient field", "")
	}

	return refs
}

// mappingReferences reads a map node's entries in key order. A mapping given as
// a JSON string is decoded first; entries that are neither strings nor objects
// are ignored.
func mappingReferences(mapping any) []reference {
	if raw, ok := mapping.(string); ok {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return nil
		}

		mapping = decoded
	}

	entries := make(map[string]any)

	switch m := mapping.(type) {
	case map[string]any:
		entries = m
	case map[string]string:
		for k, v := range m {
			entries[k] = v
		}
	default:
		return nil
	}

	var refs []reference

	for _, key := range slices.Sorted(maps.Keys(entries)) {
		switch entries[key].(type) {
		case string, map[string]any, models.FieldReference, *models.FieldReference:
			refs = append(refs, reference{label: fmt.Sprintf("Map field %q", key), value: entries[key]})
		}
	}

	return refs
}

func validateReference(nodeID string, ref reference, opts Options) []models.ValidationError {
	parsed := fieldref.Parse(ref.value)
	if parsed == nil {
		if opts.AllowOldFormat {
			return nil
		}

		return []models.ValidationError{
			finding(nodeID, models.ErrorKindFieldReference, models.SeverityError, ref.label+" has invalid format"),
		}
	}

	if !parsed.HasObjectType() {
		if opts.AllowOldFormat {
			return []models.ValidationError{
				finding(nodeID, models.ErrorKindLegacyReference, models.SeverityWarning,
					ref.label+" uses old format. Consider migrating to new format for better validation."),
			}
		}

		return []models.ValidationError{
			finding(nodeID, models.ErrorKindLegacyReference, models.SeverityError,
				ref.label+" should use new format with object type"),
		}
	}

	objectType, ok := opts.Registry.Get(parsed.ObjectTypeID)
	if !ok {
		return []models.ValidationError{
			finding(nodeID, models.ErrorKindFieldReference, models.SeverityError,
				fmt.Sprintf("%s: Object type %q not found", ref.label, parsed.ObjectTypeID)),
		}
	}

	field := schema.ResolveField(objectType.Fields, parsed.FieldPath, opts.Registry)
	if field == nil {
		return []models.ValidationError{
			finding(nodeID, models.ErrorKindFieldReference, models.SeverityError,
				fmt.Sprintf("%s: Field path %q not found in object type %q", ref.label, parsed.FieldPath, parsed.ObjectTypeID)),
		}
	}

	if opts.ValidateTypes && ref.expected != "" && !schema.ValidateFieldType(field, ref.expected).Valid {
		return []models.ValidationError{
			finding(nodeID, models.ErrorKindFieldReference, models.SeverityError,
				fmt.Sprintf("%s: Field %q has type %q, expected %q", ref.label, parsed.FieldPath, field.Type, ref.expected)),
		}
	}

	return nil
}

func finding(nodeID string, kind models.ErrorKind, severity models.Severity, msg string) models.ValidationError {
	return models.ValidationError{
		NodeID:   nodeID,
		Message:  msg,
		Severity: severity,
		Kind:     kind,
	}
}
