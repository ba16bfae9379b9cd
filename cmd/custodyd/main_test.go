package main

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/weavetest/assert"
	"github.com/iov-one/custody/x/vault"
)

func tempDir(t testing.TB) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "custodyd")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}

// run executes a command and returns its output.
func run(t testing.TB, cmd func(io.Reader, io.Writer, []string) error, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := cmd(strings.NewReader(input), &out, args)
	return strings.TrimSpace(out.String()), err
}

func TestDistributionFromCommandLine(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()
	home := filepath.Join(dir, "home")
	brandKey := filepath.Join(dir, "brand.key")
	aliceKey := filepath.Join(dir, "alice.key")

	brand, err := run(t, cmdKeygen, "", "--key", brandKey)
	assert.Nil(t, err)
	alice, err := run(t, cmdKeygen, "", "--key", aliceKey)
	assert.Nil(t, err)

	genesis := `{
		"conf": {"vault": {
			"deposit_asset": "USDT",
			"reward_asset": "PROJ",
			"authority": "` + brand + `"
		}},
		"cash": [
			{"address": "` + alice + `", "coins": [{"ticker": "USDT", "amount": 500}]},
			{"address": "` + vault.ReserveAddress().String() + `", "coins": [{"ticker": "PROJ", "amount": 1000}]}
		]
	}`
	_, err = run(t, cmdInit, genesis, "--home", home)
	assert.Nil(t, err)
	_, err = run(t, cmdInit, genesis, "--home", home)
	assert.IsErr(t, errors.ErrState, err)

	// without an allowance the vault cannot pull
	_, err = run(t, cmdDeposit, "", "--home", home, "--key", aliceKey, "--amount", "200")
	assert.IsErr(t, vault.ErrTransfer, err)

	_, err = run(t, cmdApprove, "", "--home", home, "--key", aliceKey, "--amount", "300")
	assert.Nil(t, err)
	_, err = run(t, cmdDeposit, "", "--home", home, "--key", aliceKey, "--amount", "200")
	assert.Nil(t, err)

	_, err = run(t, cmdClaim, "", "--home", home, "--key", aliceKey)
	assert.IsErr(t, errors.ErrState, err)
	_, err = run(t, cmdStart, "", "--home", home, "--key", aliceKey)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = run(t, cmdStart, "", "--home", home, "--key", brandKey)
	assert.Nil(t, err)
	_, err = run(t, cmdClaim, "", "--home", home, "--key", aliceKey)
	assert.Nil(t, err)
	_, err = run(t, cmdClaim, "", "--home", home, "--key", aliceKey)
	assert.IsErr(t, vault.ErrAlreadyClaimed, err)

	out, err := run(t, cmdQuery, "", "--home", home, "--addr", alice)
	assert.Nil(t, err)
	var view struct {
		DistributionActive bool   `json:"distribution_active"`
		TotalDeposited     uint64 `json:"total_deposited"`
		Participant        struct {
			Deposited uint64 `json:"deposited"`
			Allocated uint64 `json:"allocated"`
			Claimed   bool   `json:"claimed"`
			Eligible  bool   `json:"eligible"`
			Balances  []struct {
				Ticker string `json:"ticker"`
				Amount uint64 `json:"amount"`
			} `json:"balances"`
		} `json:"participant"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("cannot decode query output: %s\n%s", err, out)
	}
	assert.Equal(t, true, view.DistributionActive)
	assert.Equal(t, uint64(200), view.TotalDeposited)
	assert.Equal(t, uint64(200), view.Participant.Deposited)
	assert.Equal(t, uint64(200), view.Participant.Allocated)
	assert.Equal(t, true, view.Participant.Claimed)
	assert.Equal(t, false, view.Participant.Eligible)
	assert.Equal(t, 2, len(view.Participant.Balances))
	assert.Equal(t, "USDT", view.Participant.Balances[0].Ticker)
	assert.Equal(t, uint64(300), view.Participant.Balances[0].Amount)
	assert.Equal(t, "PROJ", view.Participant.Balances[1].Ticker)
	assert.Equal(t, uint64(200), view.Participant.Balances[1].Amount)

	out, err = run(t, cmdAudit, "", "--home", home)
	assert.Nil(t, err)
	assert.Equal(t, "ok", out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, cmdVersion, "")
	assert.Nil(t, err)
	if !strings.HasPrefix(out, "v0.") {
		t.Fatalf("unexpected version %q", out)
	}
}
