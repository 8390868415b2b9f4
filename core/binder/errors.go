package binder

import (
	"fmt"
	"strings"
)

// ErrorCode classifies binding failures. Codes through
// CodeValidationFailed are user-input errors, the ambiguity codes
// report defects in the command's parameter declaration or in the
// argument combination as a whole.
type ErrorCode int

const (
	// CodeAlreadyBound reports a parameter named twice.
	CodeAlreadyBound ErrorCode = iota
	// CodeMissingArgument reports a value-taking parameter without a
	// value.
	CodeMissingArgument
	// CodeCannotConvert reports a value the parameter's type rejected.
	CodeCannotConvert
	// CodeValidationFailed reports a converted value the parameter's
	// validator rejected.
	CodeValidationFailed
	// CodeAmbiguousPosition reports two parameters sharing a position
	// in the same parameter set.
	CodeAmbiguousPosition
	// CodeAmbiguousSet reports arguments that leave more than one
	// candidate parameter set with no default to break the tie.
	CodeAmbiguousSet
)

func (c ErrorCode) String() string {
	switch c {
	case CodeAlreadyBound:
		return "AlreadyBound"
	case CodeMissingArgument:
		return "MissingArgument"
	case CodeCannotConvert:
		return "CannotConvert"
	case CodeValidationFailed:
		return "ValidationFailed"
	case CodeAmbiguousPosition:
		return "AmbiguousPosition"
	case CodeAmbiguousSet:
		return "AmbiguousSet"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// BindError is a typed parameter binding failure.
type BindError struct {
	Code      ErrorCode
	Parameter string
	// Conflict is the other parameter involved in ambiguity errors.
	Conflict string
	// Position is the disputed position for CodeAmbiguousPosition.
	Position int
	Extent   Extent
	Err      error
}

func (e *BindError) Error() string {
	switch e.Code {
	case CodeAlreadyBound:
		return fmt.Sprintf("parameter %q is already bound", e.Parameter)
	case CodeMissingArgument:
		return fmt.Sprintf("missing an argument for parameter %q", e.Parameter)
	case CodeCannotConvert:
		return fmt.Sprintf("cannot bind parameter %q: %v", e.Parameter, e.Err)
	case CodeValidationFailed:
		return fmt.Sprintf("parameter %q rejected its argument: %v", e.Parameter, e.Err)
	case CodeAmbiguousPosition:
		return fmt.Sprintf("parameters %q and %q both claim position %d in the same parameter set",
			e.Parameter, e.Conflict, e.Position)
	case CodeAmbiguousSet:
		return "parameter set cannot be resolved from the given arguments"
	default:
		return fmt.Sprintf("parameter binding failed (%s)", e.Code)
	}
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// DefaultError reports a failure while binding default values. It
// names the defaults that had already been committed so the reader can
// tell how far the phase got.
type DefaultError struct {
	Parameter string
	Committed []string
	Err       error
}

func (e *DefaultError) Error() string {
	msg := fmt.Sprintf("binding default value for parameter %q: %v", e.Parameter, e.Err)
	if len(e.Committed) > 0 {
		msg += fmt.Sprintf(" (defaults already bound: %s)", strings.Join(e.Committed, ", "))
	}
	return msg
}

func (e *DefaultError) Unwrap() error {
	return e.Err
}

type swallowableError struct {
	err error
}

func (e *swallowableError) Error() string {
	return e.err.Error()
}

func (e *swallowableError) Unwrap() error {
	return e.err
}

// Swallow marks a validation error as recordable but nonfatal. The
// binder logs such failures and carries on instead of aborting the
// phase.
func Swallow(err error) error {
	if err == nil {
		return nil
	}
	return &swallowableError{err: err}
}

// IsSwallowable reports whether err was marked by Swallow.
func IsSwallowable(err error) bool {
	for err != nil {
		if _, ok := err.(*swallowableError); ok {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
