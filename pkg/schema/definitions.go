package schema

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dukex/flowlint/pkg/models"
	"github.com/go-playground/validator/v10"
)

// ValidateDefinitions checks that the registry itself is well formed: ids and
// names present, at least one field per schema, unique and well formed field
// names, known types, ordered min/max pairs, compilable patterns, resolvable
// non-self object references and array item declarations. It returns a
// *DefinitionError listing every problem, or nil.
func ValidateDefinitions(reg *Registry) error {
	validate := models.NewValidator()
	problems := make([]DefinitionProblem, 0)

	for id, s := range reg.All() {
		if err := validate.Struct(s); err != nil {
			problems = append(problems, structProblems(id, err)...)
		}

		seen := make(map[string]bool, len(s.Fields))

		for _, field := range s.Fields {
			if seen[field.Name] {
				problems = append(problems, DefinitionProblem{
					ObjectTypeID: id,
					Field:        field.Name,
					Message:      "duplicate field name",
				})
			}

			seen[field.Name] = true

			for _, msg := range fieldProblems(id, field, reg) {
				problems = append(problems, DefinitionProblem{ObjectTypeID: id, Field: field.Name, Message: msg})
			}
		}
	}

	if len(problems) > 0 {
		return &DefinitionError{Problems: problems}
	}

	return nil
}

func structProblems(id string, err error) []DefinitionProblem {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []DefinitionProblem{{ObjectTypeID: id, Message: err.Error()}}
	}

	problems := make([]DefinitionProblem, 0, len(validationErrors))

	for _, fieldErr := range validationErrors {
		problems = append(problems, DefinitionProblem{
			ObjectTypeID: id,
			Field:        fieldErr.Namespace(),
			Message:      describeTag(fieldErr),
		})
	}

	return problems
}

func describeTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fieldErr.Param() + " entries"
	case "fieldname":
		return "must contain only alphanumeric characters, underscores, and hyphens"
	case "fieldtype":
		return fmt.Sprintf("unknown field type %q", fieldErr.Value())
	default:
		return "failed on " + fieldErr.Tag()
	}
}

func fieldProblems(id string, field models.FieldDefinition, reg *Registry) []string {
	rules := field.Validation
	if rules == nil {
		if field.Type == models.FieldTypeArray {
			return []string{"array field must specify either itemType or itemObjectTypeId"}
		}

		return nil
	}

	var msgs []string

	if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
		msgs = append(msgs, "minLength cannot be greater than maxLength")
	}

	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		msgs = append(msgs, "min cannot be greater than max")
	}

	if rules.MinItems != nil && rules.MaxItems != nil && *rules.MinItems > *rules.MaxItems {
		msgs = append(msgs, "minItems cannot be greater than maxItems")
	}

	if rules.Pattern != "" {
		if _, err := regexp.Compile(rules.Pattern); err != nil {
			msgs = append(msgs, "invalid regex pattern: "+err.Error())
		}
	}

	if field.Type == models.FieldTypeObject && rules.ObjectTypeID != "" {
		msgs = append(msgs, referenceProblems(id, rules.ObjectTypeID, reg)...)
	}

	if field.Type == models.FieldTypeArray {
		switch {
		case rules.ItemType == "" && rules.ItemObjectTypeID == "":
			msgs = append(msgs, "array field must specify either itemType or itemObjectTypeId")
		case rules.ItemType != "" && rules.ItemObjectTypeID != "":
			msgs = append(msgs, "array field cannot specify both itemType and itemObjectTypeId")
		case rules.ItemObjectTypeID != "":
			msgs = append(msgs, referenceProblems(id, rules.ItemObjectTypeID, reg)...)
		}
	}

	return msgs
}

func referenceProblems(id, target string, reg *Registry) []string {
	if target == id {
		return []string{"circular reference detected: object type cannot reference itself"}
	}

	if _, ok := reg.Get(target); !ok {
		return []string{"referenced object type not found: " + target}
	}

	return nil
}
