package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/vault"
	"github.com/tendermint/tendermint/libs/log"
)

// node is an opened home directory.
type node struct {
	conf   Config
	logger log.Logger
	store  *iavl.CommitStore
	db     custody.CacheableKVStore
	ctrl   cash.Controller
	vault  *vault.Vault
}

func openNode(home string, logOutput io.Writer) (*node, error) {
	conf, err := loadConfig(home)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(logOutput, conf)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(home, "data"), 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "data directory: %s", err)
	}
	cs, err := iavl.NewCommitStore(filepath.Join(home, "data"), "custody")
	if err != nil {
		return nil, err
	}
	db := cs.Adapter()
	ctrl := cash.NewController()
	gw := cash.NewGateway(db, ctrl, vault.ReserveAddress())
	return &node{
		conf:   conf,
		logger: logger,
		store:  cs,
		db:     db,
		ctrl:   ctrl,
		vault:  vault.NewVault(sigs.Authenticate{}, gw),
	}, nil
}

func (n *node) Close() {
	n.store.Close()
}

// context returns a context with the node logger.
func (n *node) context() custody.Context {
	return custody.WithLogger(context.Background(), n.logger)
}

// authorize signs the payload with the key and returns a context
// authenticated as the key owner. The signer nonce is consumed.
func (n *node) authorize(key *crypto.PrivateKey, payload []byte) (custody.Context, error) {
	nonce, err := sigs.NextNonce(n.db, key.PublicKey().Address())
	if err != nil {
		return nil, err
	}
	sig, err := sigs.Sign(key, payload, n.conf.ChainID, nonce)
	if err != nil {
		return nil, err
	}
	return sigs.Authorize(n.context(), n.db, payload, n.conf.ChainID, sig)
}

// commit persists the working state as a new version.
func (n *node) commit() error {
	id, err := n.store.Commit()
	if err != nil {
		return err
	}
	n.logger.Debug("state committed", "version", id.Version, "hash", id.Hash)
	return nil
}
