package models

// Severity grades a validation finding. Only errors block validity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ErrorKind classifies where a validation finding came from.
type ErrorKind string

const (
	ErrorKindStructural      ErrorKind = "structural"       // trigger cardinality, connectivity, cycles
	ErrorKindConfig          ErrorKind = "config"           // missing per-subtype configuration
	ErrorKindFieldReference  ErrorKind = "field_reference"  // unparseable or unresolved references
	ErrorKindLegacyReference ErrorKind = "legacy_reference" // references still in the untyped form
)

// ValidationError is a single finding produced by graph or reference validation.
type ValidationError struct {
	NodeID   string    `json:"node_id,omitempty"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Kind     ErrorKind `json:"kind"`
}

// IsError reports whether the finding blocks validity.
func (e ValidationError) IsError() bool {
	return e.Severity == SeverityError
}

// ValidationResult aggregates findings. IsValid is false when any finding has
// error severity; warnings never affect it.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors"`
}

// NewValidationResult builds a result from errs, deriving IsValid.
func NewValidationResult(errs []ValidationError) ValidationResult {
	if errs == nil {
		errs = []ValidationError{}
	}

	return ValidationResult{
		IsValid: !HasErrors(errs),
		Errors:  errs,
	}
}

// HasErrors reports whether any entry has error severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.IsError() {
			return true
		}
	}

	return false
}

// Warnings returns the warning-severity entries of the result.
func (r ValidationResult) Warnings() []ValidationError {
	warnings := make([]ValidationError, 0)

	for _, e := range r.Errors {
		if e.Severity == SeverityWarning {
			warnings = append(warnings, e)
		}
	}

	return warnings
}

// ValueResult is the outcome of a single type or value check.
type ValueResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Valid is the passing ValueResult.
func Valid() ValueResult {
	return ValueResult{Valid: true}
}

// Invalid builds a failing ValueResult with msg.
func Invalid(msg string) ValueResult {
	return ValueResult{Valid: false, Error: msg}
}

// ConnectionResult is the outcome of checking a proposed edge.
type ConnectionResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}
