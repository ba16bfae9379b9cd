package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all packages. Extensions register their own codes
// starting at 1000.
var (
	// ErrUnauthorized is returned when the caller is not allowed to
	// perform an operation.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when the requested data does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrModel is returned when a stored model cannot be decoded or fails
	// its own validation.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when something that must be unique
	// already exists.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct code never reaches.
	ErrHuman = Register(7, "coding error")

	// ErrImmutable is returned on an attempt to change a value that is
	// set once.
	ErrImmutable = Register(8, "cannot be modified")

	// ErrEmpty is returned when a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an operation is not allowed in the
	// current state, for example before the vault is initialized.
	ErrState = Register(10, "invalid state")

	// ErrType is returned for a value of an unexpected kind.
	ErrType = Register(11, "invalid type")

	// ErrAmount is returned for an unacceptable amount.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput is returned for malformed input.
	ErrInput = Register(14, "invalid input")

	// ErrOverflow is returned when a result does not fit its type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the underlying store fails.
	ErrDatabase = Register(17, "database error")

	// ErrPanic wraps a recovered panic. Its message is never exposed
	// outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered root error by code. Code 1 is reserved
// for errors that were never registered.
var registry = map[uint32]*Error{
	1: nil,
}

// Register declares a new root error. Each code can be registered only
// once, a second registration panics. Call it from package level var
// declarations only.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		desc := "internal"
		if prev != nil {
			desc = prev.desc
		}
		panic(fmt.Sprintf("error code %d already registered as %q", code, desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Every error returned at runtime should wrap one,
// so that callers can test the kind with Is and a host can expose the
// code safely.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the numeric code a host may use to represent this error.
func (e Error) Code() uint32 {
	return e.code
}

// New returns this error wrapped with a description. It is the same as
// Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// WithCause returns cause marked as this root error. Unlike Wrap, the
// cause stays in the chain: the result matches both this error and
// anything cause matches. The code reported by Info is the one of this
// error. A nil cause returns nil.
func (e *Error) WithCause(cause error) error {
	if cause == nil {
		return nil
	}
	if stackTrace(cause) == nil {
		cause = errors.WithStack(cause)
	}
	return &causedError{kind: e, parent: cause}
}

// Is returns true if err is this root error or wraps it. A nil *Error
// matches nil errors only.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if c, ok := err.(*causedError); ok && c.kind == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap returns err extended with a description. A stack trace is attached
// by the innermost Wrap only. Wrapping nil returns nil.
//
// An error that does not wrap a root error (ie. from the standard library)
// is reported as internal, see Info.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

// Cause returns the wrapped error.
func (e *wrappedError) Cause() error {
	return e.parent
}

// causedError is created by WithCause.
type causedError struct {
	kind   *Error
	parent error
}

func (e *causedError) Error() string {
	return e.kind.desc + ": " + e.parent.Error()
}

// Cause returns the error this one was created for.
func (e *causedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to err. It must be called
// with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType wraps err with the type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// causer is implemented by errors that wrap another error.
type causer interface {
	Cause() error
}

// isNilErr returns true for nil and for typed nil pointers.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
