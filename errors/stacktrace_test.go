package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err     error
		wantMsg string
	}{
		"wrapped root error": {
			err:     Wrap(ErrDuplicate, "name"),
			wantMsg: "name: duplicate",
		},
		"root error New": {
			err:     ErrState.New("distribution not active"),
			wantMsg: "distribution not active: invalid state",
		},
		"root error Newf": {
			err:     ErrAmount.Newf("want %d", 7),
			wantMsg: "want 7: invalid amount",
		},
		"wrapped fmt error": {
			err:     Wrapf(fmt.Errorf("foo"), "standard %s", "lib"),
			wantMsg: "standard lib: foo",
		},
		"wrapped stdlib error": {
			err:     Wrap(errors.New("bar"), "pkg"),
			wantMsg: "pkg: bar",
		},
		"wrapped twice keeps one trace": {
			err:     Wrap(Wrap(ErrNotFound, "inner"), "outer"),
			wantMsg: "outer: inner: not found",
		},
	}

	const thisFile = "errors/stacktrace_test.go"

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantMsg, tc.err.Error())
			require.NotNil(t, stackTrace(tc.err))

			full := fmt.Sprintf("%+v", tc.err)
			assert.Contains(t, full, thisFile, "full trace must point at the creation site")
			assert.Contains(t, full, tc.wantMsg)

			short := fmt.Sprintf("%v", tc.err)
			assert.True(t, strings.HasPrefix(short, tc.wantMsg))
			assert.NotContains(t, short, "\n")
			assert.Contains(t, short, thisFile)

			assert.Equal(t, tc.wantMsg, fmt.Sprintf("%s", tc.err))
		})
	}
}
