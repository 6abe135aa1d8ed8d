package validation

import (
	"maps"
	"slices"
	"strings"
)

// Result collects field-level validation failures. The zero value is a
// valid, empty result.
type Result struct {
	Errors map[string]error
}

// Add records err for field. The first error recorded for a field wins.
func (r *Result) Add(field string, err error) {
	if r.Errors == nil {
		r.Errors = make(map[string]error)
	}
	if _, ok := r.Errors[field]; !ok {
		r.Errors[field] = err
	}
}

// Merge copies the failures of other into r.
func (r *Result) Merge(other Result) {
	for _, f := range slices.Sorted(maps.Keys(other.Errors)) {
		r.Add(f, other.Errors[f])
	}
}

// Valid reports whether no failure was recorded.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Fields: maps.Clone(r.Errors)}
}

// Error is the error form of a failed Result. errors.Is matches any of the
// field errors.
type Error struct {
	Fields map[string]error
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, f+": "+e.Fields[f].Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range slices.Sorted(maps.Keys(e.Fields)) {
		errs = append(errs, e.Fields[f])
	}
	return errs
}
