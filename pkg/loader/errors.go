package loader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrInvalidDocument   = errors.New("invalid document")
)

// DocumentError lists the problems found in a document.
type DocumentError struct {
	Kind     string // "graph", "registry" or "empty"
	Problems []string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("invalid %s document: %s", e.Kind, strings.Join(e.Problems, "; "))
}

func (e *DocumentError) Unwrap() error {
	return ErrInvalidDocument
}
