package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/vault"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("init", `
Create the home directory and load the genesis file into a fresh store.

The genesis file is a JSON document. The vault configuration is read from
"conf.vault", initial wallets from "cash" and initial allowances from
"allowances". Use "-" to read the genesis from standard input.
`)
	var (
		homeFl    = homeFlag(fl)
		genesisFl = fl.String("genesis", "-", "Path to the genesis file.")
		chainFl   = fl.String("chain-id", DefaultConfig().ChainID, "Chain ID written to a newly created configuration.")
	)
	if err := parseFlags(fl, args); err != nil {
		return err
	}

	var raw []byte
	var err error
	if *genesisFl == "-" {
		raw, err = ioutil.ReadAll(input)
	} else {
		raw, err = ioutil.ReadFile(*genesisFl)
	}
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var opts custody.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode genesis: %s", err)
	}

	if err := os.MkdirAll(*homeFl, 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "home directory: %s", err)
	}
	if _, err := os.Stat(filepath.Join(*homeFl, configFile)); os.IsNotExist(err) {
		conf := DefaultConfig()
		conf.ChainID = *chainFl
		if err := writeConfig(*homeFl, conf); err != nil {
			return err
		}
	}

	n, err := openNode(*homeFl, os.Stderr)
	if err != nil {
		return err
	}
	defer n.Close()

	if v, err := n.store.LatestVersion(); err != nil {
		return err
	} else if v.Version != 0 {
		return errors.Wrapf(errors.ErrState, "store already initialized at version %d", v.Version)
	}

	gen := custody.ChainInitializers(cash.Initializer{Ctrl: n.ctrl}, &vault.Initializer{})
	if err := gen.FromGenesis(opts, n.db); err != nil {
		return err
	}
	conf, err := n.vault.Configuration(n.db)
	if err != nil {
		return err
	}
	if err := n.commit(); err != nil {
		return err
	}
	n.logger.Info("genesis loaded", "deposit_asset", conf.DepositAsset, "reward_asset", conf.RewardAsset)
	return nil
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("approve", `
Allow the vault to pull up to the given amount from your wallet. A deposit
spends the allowance.
`)
	var (
		homeFl   = homeFlag(fl)
		keyFl    = keyFlag(fl)
		amountFl = fl.Uint64("amount", 0, "Amount the vault may pull.")
		tickerFl = fl.String("ticker", "", "Asset ticker. Defaults to the vault deposit asset.")
	)
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	return withSigner(*homeFl, *keyFl, func(n *node, owner custody.Address) ([]byte, func(custody.Context) error) {
		payload := []byte(fmt.Sprintf("approve:%s:%d", *tickerFl, *amountFl))
		return payload, func(ctx custody.Context) error {
			ticker := *tickerFl
			if ticker == "" {
				conf, err := n.vault.Configuration(n.db)
				if err != nil {
					return err
				}
				ticker = conf.DepositAsset
			}
			return n.ctrl.Approve(n.db, owner, vault.ReserveAddress(), ticker, *amountFl)
		}
	})
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("deposit", `
Deposit the given amount of the deposit asset into the vault.
`)
	var (
		homeFl   = homeFlag(fl)
		keyFl    = keyFlag(fl)
		amountFl = fl.Uint64("amount", 0, "Amount to deposit.")
	)
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	return withSigner(*homeFl, *keyFl, func(n *node, _ custody.Address) ([]byte, func(custody.Context) error) {
		payload := []byte(fmt.Sprintf("deposit:%d", *amountFl))
		return payload, func(ctx custody.Context) error {
			return n.vault.Deposit(ctx, n.db, *amountFl)
		}
	})
}

func cmdStart(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("start", `
Start the distribution. Only the vault authority can do this.
`)
	var (
		homeFl = homeFlag(fl)
		keyFl  = keyFlag(fl)
	)
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	return withSigner(*homeFl, *keyFl, func(n *node, _ custody.Address) ([]byte, func(custody.Context) error) {
		return []byte("start"), func(ctx custody.Context) error {
			return n.vault.StartDistribution(ctx, n.db)
		}
	})
}

func cmdClaim(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("claim", `
Claim your reward allocation. This can be done once, after the distribution
started.
`)
	var (
		homeFl = homeFlag(fl)
		keyFl  = keyFlag(fl)
	)
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	return withSigner(*homeFl, *keyFl, func(n *node, _ custody.Address) ([]byte, func(custody.Context) error) {
		return []byte("claim"), func(ctx custody.Context) error {
			return n.vault.Claim(ctx, n.db)
		}
	})
}

// withSigner opens the node, authorizes the operation built by fn with
// the key and commits if the operation succeeds.
func withSigner(home, keyPath string, fn func(*node, custody.Address) ([]byte, func(custody.Context) error)) error {
	key, err := readKey(keyPath)
	if err != nil {
		return err
	}
	n, err := openNode(home, os.Stderr)
	if err != nil {
		return err
	}
	defer n.Close()

	payload, run := fn(n, key.PublicKey().Address())
	ctx, err := n.authorize(key, payload)
	if err != nil {
		return err
	}
	if err := run(ctx); err != nil {
		return err
	}
	return n.commit()
}

// participantView is the query output for a single participant.
type participantView struct {
	Address   custody.Address `json:"address"`
	Deposited uint64          `json:"deposited"`
	Allocated uint64          `json:"allocated"`
	Claimed   bool            `json:"claimed"`
	Eligible  bool            `json:"eligible"`
	Balances  []*cash.Coin    `json:"balances"`
}

type vaultView struct {
	Configuration      *vault.Configuration `json:"configuration"`
	DistributionActive bool                 `json:"distribution_active"`
	TotalDeposited     uint64               `json:"total_deposited"`
	Participant        *participantView     `json:"participant,omitempty"`
}

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("query", `
Print the vault state as JSON. Provide an address to include the position
and wallet of a participant.
`)
	var (
		homeFl = homeFlag(fl)
		addrFl = fl.String("addr", "", "Participant address, in any format understood by the address parser.")
	)
	if err := parseFlags(fl, args); err != nil {
		return err
	}

	n, err := openNode(*homeFl, os.Stderr)
	if err != nil {
		return err
	}
	defer n.Close()

	var view vaultView
	if view.Configuration, err = n.vault.Configuration(n.db); err != nil {
		return err
	}
	if view.DistributionActive, err = n.vault.IsDistributionActive(n.db); err != nil {
		return err
	}
	if view.TotalDeposited, err = n.vault.TotalDeposits(n.db); err != nil {
		return err
	}

	if *addrFl != "" {
		addr, err := custody.ParseAddress(*addrFl)
		if err != nil {
			return err
		}
		p := participantView{Address: addr}
		if p.Deposited, err = n.vault.Deposits(n.db, addr); err != nil {
			return err
		}
		if p.Allocated, err = n.vault.Allocation(n.db, addr); err != nil {
			return err
		}
		if p.Claimed, err = n.vault.IsClaimed(n.db, addr); err != nil {
			return err
		}
		if p.Eligible, err = n.vault.CheckEligibility(n.db, addr); err != nil {
			return err
		}
		for _, ticker := range []string{view.Configuration.DepositAsset, view.Configuration.RewardAsset} {
			if ticker == "" {
				continue
			}
			amount, err := n.vault.BalanceOf(n.context(), ticker, addr)
			if err != nil {
				return err
			}
			p.Balances = append(p.Balances, &cash.Coin{Ticker: ticker, Amount: amount})
		}
		view.Participant = &p
	}

	raw, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}

func cmdAudit(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("audit", `
Verify that the stored vault state is consistent.
`)
	homeFl := homeFlag(fl)
	if err := parseFlags(fl, args); err != nil {
		return err
	}

	n, err := openNode(*homeFl, os.Stderr)
	if err != nil {
		return err
	}
	defer n.Close()

	if err := n.vault.Audit(n.db); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, "ok")
	return err
}
