package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("keygen", `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.

Provide a hex encoded seed to derive the key deterministically, using the
given derivation path.
`)
	var (
		keyPathFl = keyFlag(fl)
		seedFl    = fl.String("seed", "", "Hex encoded master seed. A random key is created if not provided.")
		pathFl    = fl.String("path", "m/44'/234'/0'", "Derivation path used together with the seed.")
	)
	if err := parseFlags(fl, args); err != nil {
		return err
	}

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Never overwrite an existing key. User must delete it first.
		return errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	key := crypto.GenPrivKeyEd25519()
	if *seedFl != "" {
		seed, err := hex.DecodeString(*seedFl)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "seed: %s", err)
		}
		if key, err = crypto.DerivePrivKeyEd25519(seed, *pathFl); err != nil {
			return err
		}
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(key.Ed25519); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot close private key file: %s", err)
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet("keyaddr", `
Print out the address associated with your private key.
`)
	var (
		keyPathFl = keyFlag(fl)
		bechFl    = fl.Bool("bech32", false, "Print the bech32 form instead of hex.")
	)
	if err := parseFlags(fl, args); err != nil {
		return err
	}

	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	if !*bechFl {
		_, err = fmt.Fprintln(output, addr)
		return err
	}
	b, err := addr.Bech32()
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(output, b)
	return err
}

func readKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}
