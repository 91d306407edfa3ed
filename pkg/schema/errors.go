package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is the sentinel wrapped by every ValidationError.
var ErrInvalid = errors.New("value does not match schema")

// ValidationError is the error form of a failed Result.
type ValidationError struct {
	Path   string // Dotted field path, empty for top-level failures
	Status Status
	Reason string // Human-readable reason for failure
	Value  any    // The offending value, when known
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("field %q: %s: %s", e.Path, e.Status, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// DefinitionError reports a malformed raw schema field.
type DefinitionError struct {
	Key    string // Dotted field path inside the schema document
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Key == "" {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema field %q: %s", e.Key, e.Reason)
}

// Result returns the SchemaError result equivalent to e.
func (e *DefinitionError) Result() Result {
	return Result{
		Status: SchemaError,
		Expect: &Expect{Key: e.Key},
		Actual: &Actual{Value: e.Reason},
	}
}

// SyntaxError reports a schema document that is not valid YAML or JSON.
type SyntaxError struct {
	Format string // "yaml" or "json"
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("failed to parse schema %s: %v", e.Format, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// AggregateError represents multiple failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d schema errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// DefinitionErrors returns all definition errors contained in err.
func DefinitionErrors(err error) []*DefinitionError {
	var out []*DefinitionError
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		for _, e := range aggr.Errors {
			var def *DefinitionError
			if errors.As(e, &def) {
				out = append(out, def)
			}
		}
		return out
	}
	var def *DefinitionError
	if errors.As(err, &def) {
		out = append(out, def)
	}
	return out
}

// ResultFromError maps an error returned by Parse to a SchemaError result.
func ResultFromError(err error) Result {
	if err == nil {
		return okResult
	}
	if defs := DefinitionErrors(err); len(defs) > 0 {
		return defs[0].Result()
	}
	return Result{Status: SchemaError, Actual: &Actual{Value: err.Error()}}
}

// IsSchemaError reports whether err comes from a malformed schema (bad
// syntax or bad field declarations) rather than from infrastructure.
func IsSchemaError(err error) bool {
	var syntaxErr *SyntaxError
	return len(DefinitionErrors(err)) > 0 || errors.As(err, &syntaxErr)
}
