package segcoll

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by every *BoundsError.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidState is matched by every *StateError.
	ErrInvalidState = errors.New("invalid state")

	// ErrConcurrentModification is returned when an iterator is used after its
	// collection was structurally modified by someone else.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrInvalidArgument is matched by every *IllegalArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when an element is requested from an empty collection.
	ErrNotFound = errors.New("not found")

	// ErrInvariantViolation is the panic value raised by the debug verification layer.
	ErrInvariantViolation = errors.New("invariant violation")
)

// BoundsError reports an index outside [0, Size).
type BoundsError struct {
	Index int
	Size  int
}

// NewBoundsError returns a BoundsError for index against size.
func NewBoundsError(index, size int) *BoundsError {
	return &BoundsError{Index: index, Size: size}
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("index %d out of bounds [0, %d)", e.Index, e.Size)
}

// Is reports whether target is ErrOutOfBounds.
func (e *BoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// CheckIndex returns a *BoundsError if index is not within [0, size).
func CheckIndex(index, size int) error {
	if index < 0 || index >= size {
		return NewBoundsError(index, size)
	}
	return nil
}

// CheckRange returns a *BoundsError unless 0 <= from <= to <= size.
func CheckRange(from, to, size int) error {
	if from < 0 || from > size {
		return NewBoundsError(from, size+1)
	}
	if to < from || to > size {
		return NewBoundsError(to, size+1)
	}
	return nil
}

// StateError reports an operation that is invalid in the current state.
//
// Blocker is the position of the pinned iterator that refused a removal,
// or -1 when no iterator is involved.
type StateError struct {
	Op      string
	Reason  string
	Blocker int
}

// NewStateError returns a StateError without a blocker.
func NewStateError(op, reason string) *StateError {
	return &StateError{Op: op, Reason: reason, Blocker: -1}
}

func (e *StateError) Error() string {
	if e.Blocker >= 0 {
		return fmt.Sprintf("%s: %s (blocked by iterator at %d)", e.Op, e.Reason, e.Blocker)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrInvalidState.
func (e *StateError) Is(target error) bool { return target == ErrInvalidState }

// IllegalArgumentError reports a malformed constructor or method argument.
type IllegalArgumentError struct {
	Name   string
	Value  any
	Reason string
}

func (e *IllegalArgumentError) Error() string {
	return fmt.Sprintf("illegal argument %s=%v: %s", e.Name, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *IllegalArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// NewIllegalArgumentError returns an IllegalArgumentError.
func NewIllegalArgumentError(name string, value any, reason string) *IllegalArgumentError {
	return &IllegalArgumentError{Name: name, Value: value, Reason: reason}
}

// InvariantError describes a broken internal invariant. It is only produced
// when invariant checks are enabled.
type InvariantError struct {
	Structure string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Structure, e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }
