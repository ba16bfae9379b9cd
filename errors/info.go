package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode is reported for a nil error.
	SuccessCode = 0

	// internalCode is reported for errors that wrap no registered root
	// error. Their message is replaced with internalLog.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the code and the message that represent err outside of the
// process.
//
// An error that does not wrap a registered root error is internal: it is
// reported with code 1 and, unless debug is set, a generic message. In
// debug mode the message includes the stack trace.
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}
	code := errCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode:
		return code, internalLog
	default:
		return code, err.Error()
	}
}

// coder is implemented by root errors.
type coder interface {
	Code() uint32
}

// errCode returns the code of the first root error found in the chain of
// causes, or internalCode.
func errCode(err error) uint32 {
	for err != nil {
		if c, ok := err.(*causedError); ok {
			return c.kind.Code()
		}
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		next, ok := err.(causer)
		if !ok {
			break
		}
		err = next.Cause()
	}
	return internalCode
}

// Redact replaces internal errors and recovered panics with a generic
// error. Registered errors pass unchanged. In debug mode nothing is
// replaced.
func Redact(err error, debug bool) error {
	if debug || isNilErr(err) {
		return err
	}
	if ErrPanic.Is(err) || errCode(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
