// Package fieldref converts field references between their legacy dotted-string
// form ("user.profile.email") and the typed {objectTypeId, fieldPath} form.
//
// Parsing a multi-segment legacy string always treats the first segment as the
// object type id. This is a heuristic: "user.name" may equally be a field named
// "user.name" in some single schema. Callers rely on the guess, so it is kept
// as is, including when the first segment names no known object type.
package fieldref

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dukex/flowlint/pkg/models"
)

var indexedSegment = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

// SplitPath splits a dotted path, dropping empty segments.
func SplitPath(path string) []string {
	raw := strings.Split(path, ".")
	parts := make([]string, 0, len(raw))

	for _, part := range raw {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return parts
}

// SplitIndex splits an array-indexed segment such as "items[0]" into its field
// name and index. ok is false for plain segments.
func SplitIndex(segment string) (string, int, bool) {
	match := indexedSegment.FindStringSubmatch(segment)
	if match == nil {
		return segment, 0, false
	}

	index, err := strconv.Atoi(match[2])
	if err != nil {
		return segment, 0, false
	}

	return match[1], index, true
}

// Parse reads a field reference in either form. It accepts a legacy string, a
// models.FieldReference (value or pointer), or a decoded JSON object carrying a
// "fieldPath" key. Anything else, including nil and "", yields nil.
func Parse(value any) *models.ParsedFieldReference {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return parseString(v)
	case models.FieldReference:
		return parsed(v.ObjectTypeID, v.FieldPath)
	case *models.FieldReference:
		if v == nil {
			return nil
		}

		return parsed(v.ObjectTypeID, v.FieldPath)
	case models.ParsedFieldReference:
		return parsed(v.ObjectTypeID, v.FieldPath)
	case *models.ParsedFieldReference:
		if v == nil {
			return nil
		}

		return parsed(v.ObjectTypeID, v.FieldPath)
	case map[string]any:
		raw, ok := v["fieldPath"]
		if !ok {
			return nil
		}

		fieldPath, _ := raw.(string)
		objectTypeID, _ := v["objectTypeId"].(string)

		return parsed(objectTypeID, fieldPath)
	default:
		return nil
	}
}

func parseString(value string) *models.ParsedFieldReference {
	if value == "" {
		return nil
	}

	segments := SplitPath(value)
	if len(segments) > 1 {
		return parsed(segments[0], strings.Join(segments[1:], "."))
	}

	return parsed("", value)
}

func parsed(objectTypeID, fieldPath string) *models.ParsedFieldReference {
	parts := SplitPath(fieldPath)

	return &models.ParsedFieldReference{
		ObjectTypeID: objectTypeID,
		FieldPath:    fieldPath,
		Parts:        parts,
		IsNested:     len(parts) > 1,
	}
}

// Format renders a parsed reference as "objectTypeId.fieldPath", or the bare
// field path when no object type is known.
func Format(ref *models.ParsedFieldReference) string {
	if ref == nil {
		return ""
	}

	if ref.ObjectTypeID != "" {
		return ref.ObjectTypeID + "." + ref.FieldPath
	}

	return ref.FieldPath
}

// IsOldFormat reports whether value is a legacy string reference.
func IsOldFormat(value any) bool {
	s, ok := value.(string)

	return ok && s != ""
}

// IsNewFormat reports whether value is a typed reference carrying both an
// object type id and a field path.
func IsNewFormat(value any) bool {
	switch v := value.(type) {
	case models.FieldReference:
		return v.ObjectTypeID != ""
	case *models.FieldReference:
		return v != nil && v.ObjectTypeID != ""
	case map[string]any:
		_, hasObjectType := v["objectTypeId"]
		_, hasFieldPath := v["fieldPath"]

		return hasObjectType && hasFieldPath
	default:
		return false
	}
}

// ConvertToNewFormat turns a legacy string into a typed reference, using
// defaultObjectTypeID when the string carries no object type of its own.
func ConvertToNewFormat(value, defaultObjectTypeID string) *models.FieldReference {
	ref := parseString(value)
	if ref == nil {
		return nil
	}

	objectTypeID := ref.ObjectTypeID
	if objectTypeID == "" {
		objectTypeID = defaultObjectTypeID
	}

	return &models.FieldReference{
		ObjectTypeID: objectTypeID,
		FieldPath:    ref.FieldPath,
	}
}

// ConvertToOldFormat renders a typed reference back into its legacy string.
func ConvertToOldFormat(ref *models.FieldReference) string {
	if ref == nil {
		return ""
	}

	if ref.ObjectTypeID != "" && ref.FieldPath != "" {
		return ref.ObjectTypeID + "." + ref.FieldPath
	}

	return ref.FieldPath
}

// DisplayName renders a reference for humans, e.g. "Order Item: Price → Amount".
func DisplayName(objectTypeID, fieldPath string) string {
	if fieldPath == "" {
		return ""
	}

	field := strings.Join(capitalizeAll(strings.Split(fieldPath, ".")), " → ")
	if objectTypeID == "" {
		return field
	}

	objectType := strings.Join(capitalizeAll(strings.Split(objectTypeID, "-")), " ")

	return objectType + ": " + field
}

func capitalizeAll(words []string) []string {
	out := make([]string, len(words))

	for i, word := range words {
		if word == "" {
			continue
		}

		out[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return out
}
