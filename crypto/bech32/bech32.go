// Package bech32 renders addresses in the checksummed bech32 format.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/custody/errors"
)

// EncodeAddress returns the bech32 form of an address under given human
// readable part.
func EncodeAddress(hrp string, addr []byte) (string, error) {
	if len(addr) == 0 {
		return "", errors.Wrap(errors.ErrEmpty, "address")
	}
	grouped, err := bech32.ConvertBits(addr, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	enc, err := bech32.Encode(hrp, grouped)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "encode: %s", err)
	}
	return enc, nil
}

// DecodeAddress returns the raw address carried by enc. The human readable
// part must be hrp.
func DecodeAddress(hrp, enc string) ([]byte, error) {
	got, grouped, err := bech32.Decode(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode: %s", err)
	}
	if got != hrp {
		return nil, errors.Wrapf(errors.ErrInput, "human readable part %q, want %q", got, hrp)
	}
	addr, err := bech32.ConvertBits(grouped, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	return addr, nil
}
