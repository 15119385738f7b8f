package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDefinition indicates an object type registry that is not internally consistent.
var ErrInvalidDefinition = errors.New("invalid object type definition")

// DefinitionProblem is one inconsistency found in a schema registry.
type DefinitionProblem struct {
	ObjectTypeID string `json:"object_type_id"`
	Field        string `json:"field,omitempty"`
	Message      string `json:"message"`
}

func (p DefinitionProblem) String() string {
	if p.Field != "" {
		return fmt.Sprintf("%s.%s: %s", p.ObjectTypeID, p.Field, p.Message)
	}

	return fmt.Sprintf("%s: %s", p.ObjectTypeID, p.Message)
}

// DefinitionError aggregates every problem found by ValidateDefinitions.
// Wraps ErrInvalidDefinition for errors.Is() compatibility.
type DefinitionError struct {
	Problems []DefinitionProblem
}

func (e *DefinitionError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return ErrInvalidDefinition.Error()
	}

	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}

	return fmt.Sprintf("%s: %s", ErrInvalidDefinition.Error(), strings.Join(msgs, "; "))
}

func (e *DefinitionError) Unwrap() error { return ErrInvalidDefinition }
