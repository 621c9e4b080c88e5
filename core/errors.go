// Package core holds the diagnostic types shared by every layer of the
// solver: the formula model, the CNF store, the CDCL engine and the
// congruence-closure theory solver all report failures through the same
// ErrKind taxonomy so that a caller can distinguish a malformed-input
// error from an internal invariant break without string-matching.
package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrKind classifies a solver error.
type ErrKind int

const (
	// KindMalformed is reserved for the parser; it never reaches the solver core.
	KindMalformed ErrKind = iota
	// KindUnsupportedFragment marks a first-order formula the SMT core cannot accept (e.g. it is quantified).
	KindUnsupportedFragment
	// KindExhaustion marks a search cap hit. The SAT entry point reports a decision-cap hit as UNKNOWN instead; the SMT entry point, which has no UNKNOWN verdict, returns an error of this kind.
	KindExhaustion
	// KindInternal marks an invariant violation: a bug, not a verdict.
	KindInternal
)

func (k ErrKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindUnsupportedFragment:
		return "unsupported-fragment"
	case KindExhaustion:
		return "exhaustion"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// LogicError represents an error in logic operations. It names the system
// (package) and operation that failed, the kind of failure, and
// human-readable detail.
type LogicError struct {
	System  string
	Op      string
	Kind    ErrKind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *LogicError) Error() string {
	if e.System != "" {
		return fmt.Sprintf("logic error in %s.%s: %s: %s", e.System, e.Op, e.Kind, e.Message)
	}
	return fmt.Sprintf("logic error in %s: %s: %s", e.Op, e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, so errors.Is/errors.As and
// github.com/pkg/errors.Cause both see through a LogicError.
func (e *LogicError) Unwrap() error {
	return e.cause
}

// NewLogicError creates a LogicError with no wrapped cause.
func NewLogicError(system, operation string, kind ErrKind, message string) *LogicError {
	return &LogicError{System: system, Op: operation, Kind: kind, Message: message}
}

// Wrap creates a LogicError that wraps an existing error, preserving its
// chain via errors.Wrap so the original failure stays inspectable.
func Wrap(system, operation string, kind ErrKind, cause error, message string) *LogicError {
	return &LogicError{
		System:  system,
		Op:      operation,
		Kind:    kind,
		Message: message,
		cause:   errors.Wrap(cause, message),
	}
}

// Internal is a convenience constructor for the invariant-violation kind,
// which must abort the solve rather than return a verdict.
func Internal(system, operation, message string) *LogicError {
	return NewLogicError(system, operation, KindInternal, message)
}

// IsKind reports whether err is a *LogicError of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var le *LogicError
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}
