package vault

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestIsAuthority(t *testing.T) {
	authority := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()

	cases := map[string]struct {
		conf   *Configuration
		caller custody.Address
		want   bool
	}{
		"authority": {
			conf:   &Configuration{Authority: authority},
			caller: authority,
			want:   true,
		},
		"someone else": {
			conf:   &Configuration{Authority: authority},
			caller: other,
		},
		"no caller": {
			conf: &Configuration{Authority: authority},
		},
		"authority not set": {
			conf:   &Configuration{},
			caller: authority,
		},
		"no configuration": {
			caller: authority,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAuthority(tc.conf, tc.caller))
		})
	}
}
