package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"successful comparison to a double wrapped error": {
			a:      ErrState,
			b:      Wrap(Wrap(ErrState, "inner"), "outer"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

type customError struct {
}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.Code(), "another not found")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error is a success": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"registered error exposes its code": {
			err:      Wrap(ErrUnauthorized, "only authority"),
			wantCode: ErrUnauthorized.Code(),
			wantLog:  "only authority: unauthorized",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("disk on fire"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"stdlib error is visible in debug mode": {
			err:      fmt.Errorf("disk on fire"),
			debug:    true,
			wantCode: internalCode,
			wantLog:  "disk on fire",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrState.New("inactive"), false); !ErrState.Is(err) {
		t.Fatalf("registered error must survive redaction: %v", err)
	}
	if err := Redact(fmt.Errorf("secret"), false); err.Error() != internalLog {
		t.Fatalf("internal error must be redacted: %v", err)
	}
}

func TestWithCause(t *testing.T) {
	cause := Wrap(ErrAmount, "alice holds 3")
	err := ErrState.WithCause(cause)

	if !ErrState.Is(err) {
		t.Fatalf("want the marking error to match: %+v", err)
	}
	if !ErrAmount.Is(err) {
		t.Fatalf("want the cause to match: %+v", err)
	}
	if ErrNotFound.Is(err) {
		t.Fatalf("unrelated error must not match: %+v", err)
	}
	if got, want := err.Error(), "invalid state: alice holds 3: invalid amount"; got != want {
		t.Fatalf("want %q message, got %q", want, got)
	}

	code, log := Info(err, false)
	if code != ErrState.Code() {
		t.Fatalf("want code of the marking error, got %d", code)
	}
	if log != err.Error() {
		t.Fatalf("unexpected log %q", log)
	}

	// a foreign error gets a code through the marking error
	code, _ = Info(ErrState.WithCause(fmt.Errorf("socket closed")), false)
	if code != ErrState.Code() {
		t.Fatalf("want code %d, got %d", ErrState.Code(), code)
	}

	// wrapping keeps both in the chain
	wrapped := Wrap(err, "deposit")
	if !ErrState.Is(wrapped) || !ErrAmount.Is(wrapped) {
		t.Fatalf("wrapping lost the chain: %+v", wrapped)
	}

	if ErrState.WithCause(nil) != nil {
		t.Fatal("nil cause must give nil")
	}
}
