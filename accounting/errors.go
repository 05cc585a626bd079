/*
errors.go - Centralized error types for the accounting time core

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every failure in this package is fail-fast: it is returned from the
  constructor or operation that detected it and never retried.

ERROR CATEGORIES:
  1. Validation errors - a value's invariant is violated at construction
  2. Conversion precondition errors - bad input to TryConvert
  3. Consistency errors - contradictory associations while building an index
  4. Unsupported type errors - the string codec was handed a foreign type
  5. Store errors - association persistence failures

USAGE:
  if errors.Is(err, accounting.ErrOutOfRange) { ... }

  var conflict *accounting.ConsistencyError
  if errors.As(err, &conflict) {
      log.Printf("conflict on %s", conflict.Period)
  }
*/
package accounting

import (
	"errors"
	"fmt"
	"reflect"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidArgument is returned when an argument is not valid for the
	// operation (invalid enum sentinel, mismatched kind, bad precondition).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned when a numeric or enumerated argument falls
	// outside its allowed range (year, month, day, StartOrEnd).
	ErrOutOfRange = errors.New("argument out of range")

	// ErrMissingArgument is returned when a required argument is absent.
	ErrMissingArgument = errors.New("missing argument")

	// ErrIncomparable is returned when two units of time have no defined
	// relative order (different kinds or different bounded granularities).
	ErrIncomparable = errors.New("units of time are not comparable")

	// ErrMixedGranularity is returned when a reporting period's start and end
	// do not share a granularity and a single unit was required.
	ErrMixedGranularity = errors.New("reporting period has mixed granularity")

	// ErrInconsistentAssociation is returned when two associations imply
	// different equivalents for the same period and unit.
	ErrInconsistentAssociation = errors.New("inconsistent unit kind association")

	// ErrUnsupportedType is returned by the string codec for types outside the
	// closed unit-of-time and reporting-period taxonomy.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDuplicateAssociation is returned when an association id already exists.
	ErrDuplicateAssociation = errors.New("duplicate association id")

	// ErrAssociationNotFound is returned when a referenced association doesn't exist.
	ErrAssociationNotFound = errors.New("association not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ArgumentError describes which argument was rejected and why.
// It unwraps to one of ErrInvalidArgument, ErrOutOfRange or ErrMissingArgument.
type ArgumentError struct {
	Name   string
	Value  any
	Reason string
	kind   error
}

func (e *ArgumentError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%v): %s", e.kind, e.Name, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return e.kind
}

func invalidArgument(name string, value any, reason string) error {
	return &ArgumentError{Name: name, Value: value, Reason: reason, kind: ErrInvalidArgument}
}

func outOfRange(name string, value any, reason string) error {
	return &ArgumentError{Name: name, Value: value, Reason: reason, kind: ErrOutOfRange}
}

func missingArgument(name string) error {
	return &ArgumentError{Name: name, Reason: "is required", kind: ErrMissingArgument}
}

// ConsistencyError provides details about two associations that disagree on
// the equivalent of Period in Unit.
type ConsistencyError struct {
	Period        ReportingPeriod[UnitOfTime]
	Unit          Unit
	Existing      ReportingPeriod[UnitOfTime]
	Conflicting   ReportingPeriod[UnitOfTime]
	AssociationID string
}

func (e *ConsistencyError) Error() string {
	id := e.AssociationID
	if id == "" {
		id = "<unnamed>"
	}
	return fmt.Sprintf("inconsistent association %s: %s in %s is already %s, cannot also be %s",
		id, e.Period, e.Unit, e.Existing, e.Conflicting)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrInconsistentAssociation
}

// UnsupportedTypeError names the type the codec refused.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type == nil {
		return "unsupported type: <nil>"
	}
	return fmt.Sprintf("unsupported type: %s", e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidationError returns true if the error is due to invalid caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrIncomparable) ||
		errors.Is(err, ErrMixedGranularity) ||
		errors.Is(err, ErrUnsupportedType)
}

// IsConsistencyError returns true if the error reports contradictory or
// duplicate associations.
func IsConsistencyError(err error) bool {
	return errors.Is(err, ErrInconsistentAssociation) ||
		errors.Is(err, ErrDuplicateAssociation)
}

// IsNotFound returns true if the error indicates a missing association.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAssociationNotFound)
}
