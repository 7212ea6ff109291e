// Package model defines the typed representations of remote tracker
// entities (projects, issues, worklogs, users, comments).
//
// Wire payloads use the server's camelCase field names, mapped onto the
// structs through json tags. Required fields are enforced by Validate on
// each type; unknown wire fields are ignored so newer server versions keep
// working. The alias table in alias.go carries the handful of names that do
// not follow the mechanical camelCase/snake_case correspondence.
package model

import "fmt"

// Resource is implemented by every entity type in this package.
// Validate reports the first missing or malformed required field.
type Resource interface {
	Validate() error
}

// Identifiable exposes the wire identity a collection de-duplicates on.
type Identifiable interface {
	ResourceID() string
}

// ValidationError reports a raw payload that cannot be turned into a
// well-formed resource. Field is the wire name of the offending field.
type ValidationError struct {
	Resource string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("%s: invalid field %q: %s", e.Resource, e.Field, e.Reason)
	default:
		return fmt.Sprintf("%s: missing required field %q", e.Resource, e.Field)
	}
}

func missingField(resource, field string) *ValidationError {
	return &ValidationError{Resource: resource, Field: field}
}

func invalidField(resource, field, reason string) *ValidationError {
	return &ValidationError{Resource: resource, Field: field, Reason: reason}
}
