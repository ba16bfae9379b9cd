package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTracer is implemented by errors created with github.com/pkg/errors.
type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format works like pkg/errors, with additions.
// %s is just the error message
// %+v is the full stack trace
// %v appends a compressed [filename:line] where the error
//    was created
func (e *wrappedError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e)
}

func formatWithStack(s fmt.State, verb rune, e error) {
	// normal output here....
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	// work with the stack trace... whole or part
	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", stack)
		fmt.Fprint(s, e.Error())
	} else {
		fmt.Fprint(s, e.Error())
		if len(stack) > 0 {
			writeSimpleFrame(s, stack[0])
		}
	}
}

// Format works like the one of errors created with Wrap.
func (e *causedError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e)
}

// trimInternal removes the frames of this package and the runtime so that
// the trace starts where the error was created.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && (isWrapFrame(st[0]) || matchesFile(st[0], "/runtime/")) {
		st = st[1:]
	}
	// trim out outer wrappers (runtime)
	for l := len(st) - 1; l > 0 && matchesFile(st[l], "/runtime/"); l-- {
		st = st[:l]
	}
	return st
}

func matchesFile(f errors.Frame, substrs ...string) bool {
	file, _ := fileLine(f)
	for _, sub := range substrs {
		if strings.Contains(file, sub) {
			return true
		}
	}
	return false
}

// wrapFuncs are the functions of this package that attach a stack trace.
// They are never the place where an error was created.
var wrapFuncs = map[string]bool{
	"github.com/iov-one/custody/errors.Wrap":               true,
	"github.com/iov-one/custody/errors.Wrapf":              true,
	"github.com/iov-one/custody/errors.(*Error).New":       true,
	"github.com/iov-one/custody/errors.(*Error).Newf":      true,
	"github.com/iov-one/custody/errors.WithType":           true,
	"github.com/iov-one/custody/errors.(*Error).WithCause": true,
}

func isWrapFrame(f errors.Frame) bool {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return false
	}
	return wrapFuncs[fn.Name()]
}

func fileLine(f errors.Frame) (string, int) {
	// this looks a bit like magic, but follows pkg/errors Frame.pc
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

func writeSimpleFrame(s io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	// cut file at "github.com/"
	chunks := strings.SplitN(file, "github.com/", 2)
	if len(chunks) == 2 {
		file = chunks[1]
	}
	fmt.Fprintf(s, " [%s:%d]", file, line)
}
