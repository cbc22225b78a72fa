// Package moerr defines the small error taxonomy the prewarm subsystem
// raises to its caller. It is deliberately narrow: unlike a full database
// engine's error package, this subsystem only ever surfaces a handful of
// error classes (see spec §7), everything else is absorbed and logged.
package moerr

import (
	"context"
	"errors"
	"fmt"
)

// Code identifies an error class. Only the classes the prewarm subsystem
// actually raises are enumerated; there is no attempt to mirror a full
// engine-wide error code space.
type Code uint16

const (
	// Internal marks a bug in this module's own bookkeeping.
	Internal Code = iota + 1
	// InvalidInput marks a caller error: bad mode string, direct I/O
	// clash, nil table/pattern.
	InvalidInput
	// CatalogMiss marks an unresolved schema/table or a non-native table.
	CatalogMiss
	// NotImplemented marks a platform gap (PREFETCH on Windows).
	NotImplemented
)

func (c Code) String() string {
	switch c {
	case Internal:
		return "Internal"
	case InvalidInput:
		return "InvalidInput"
	case CatalogMiss:
		return "CatalogMiss"
	case NotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type raised across package boundaries in this
// module. It carries a Code so callers can branch on error class without
// string matching, and an optional cause for wrapping.
type Error struct {
	code    Code
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Code() Code {
	return e.code
}

func newError(_ context.Context, code Code, msg string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(msg, args...)}
}

// NewInvalidInput builds an InvalidInput error. ctx is accepted (and
// currently unused beyond call-site symmetry with the rest of the
// capability interfaces) so callers never need a special case when this
// module later grows request-scoped diagnostics.
func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, InvalidInput, msg, args...)
}

// NewCatalogMiss builds a CatalogMiss error.
func NewCatalogMiss(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, CatalogMiss, msg, args...)
}

// NewNotImplemented builds a NotImplemented error.
func NewNotImplemented(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, NotImplemented, msg, args...)
}

// NewInternal builds an Internal error with no cause; use Wrap to attach one.
func NewInternal(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, Internal, msg, args...)
}

// Wrap attaches a cause to an existing *Error, returning a copy.
func Wrap(err *Error, cause error) *Error {
	wrapped := *err
	wrapped.cause = cause
	return &wrapped
}

// Is reports whether err is a *Error of the given code, walking the
// standard errors.Unwrap chain.
func Is(err error, code Code) bool {
	var moErr *Error
	if errors.As(err, &moErr) {
		return moErr.code == code
	}
	return false
}
