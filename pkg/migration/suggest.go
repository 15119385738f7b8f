// Package migration rewrites legacy string field references into typed
// references and suggests object types for paths that carry none.
package migration

import (
	"slices"
	"strings"

	"github.com/dukex/flowlint/pkg/fieldref"
	"github.com/dukex/flowlint/pkg/models"
	"github.com/dukex/flowlint/pkg/schema"
)

const (
	scoreNameMatch  = 50
	scoreFieldMatch = 30
	scorePrefix     = 20
)

// SuggestObjectTypes scores every registered object type as the owner of a
// legacy fieldPath. Only positive scores are returned, highest first; ties keep
// registry order.
func SuggestObjectTypes(fieldPath string, reg *schema.Registry) []models.Suggestion {
	parts := fieldref.SplitPath(fieldPath)
	if len(parts) == 0 {
		return []models.Suggestion{}
	}

	first := strings.ToLower(parts[0])

	fieldName := parts[0]
	if len(parts) > 1 {
		fieldName = parts[1]
	}

	suggestions := make([]models.Suggestion, 0)

	for id, objectType := range reg.All() {
		lowerID := strings.ToLower(id)

		var (
			confidence int
			reasons    []string
		)

		if first == strings.ToLower(objectType.Name) || first == lowerID {
			confidence += scoreNameMatch
			reasons = append(reasons, "first part matches object type name")
		}

		if hasField(objectType, fieldName) {
			confidence += scoreFieldMatch
			reasons = append(reasons, "field exists in object type")
		}

		if strings.HasPrefix(lowerID, first) || strings.HasPrefix(first, lowerID) {
			confidence += scorePrefix
			reasons = append(reasons, "name similarity")
		}

		if confidence == 0 {
			continue
		}

		suggestions = append(suggestions, models.Suggestion{
			FieldPath:             fieldPath,
			SuggestedObjectTypeID: id,
			Confidence:            confidence,
			Reason:                capitalize(strings.Join(reasons, ", ")),
		})
	}

	slices.SortStableFunc(suggestions, func(a, b models.Suggestion) int {
		return b.Confidence - a.Confidence
	})

	return suggestions
}

// hasField matches the raw segment, so an indexed segment like "items[0]" does
// not count.
func hasField(objectType *models.ObjectTypeSchema, name string) bool {
	return slices.ContainsFunc(objectType.Fields, func(f models.FieldDefinition) bool {
		return f.Name == name
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// MigrateFieldReference pairs a legacy path with objectTypeID. A path that
// already parses with an object type of its own is returned as that reference.
func MigrateFieldReference(fieldPath, objectTypeID string) models.FieldReference {
	if ref := fieldref.ConvertToNewFormat(fieldPath, objectTypeID); ref != nil {
		return *ref
	}

	return models.FieldReference{ObjectTypeID: objectTypeID, FieldPath: fieldPath}
}
