package sigs

import (
	"crypto/sha512"
	"encoding/binary"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_.-]{4,32}$`).MatchString

/*
BuildSignBytes combines the payload with the chain id and nonce before
signing, using the following format:

version | len(chainID) | chainID      | nonce             | payload
4bytes  | uint8        | ascii string | int64 (bigendian) | bytes

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !isChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, 4+1+len(chainID)+8+len(payload))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, []byte(chainID)...)
	output = append(output, nonce...)
	output = append(output, payload...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// Sign creates a signature of given payload.
func Sign(key *crypto.PrivateKey, payload []byte, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := BuildSignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(signBytes)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    key.PublicKey().Ed25519,
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// VerifySignature checks one signature against the payload, increments
// the signer nonce and returns the signer condition.
func VerifySignature(db custody.KVStore, sig *StdSignature, payload []byte, chainID string) (custody.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	pub := sig.PublicKey()
	addr := pub.Address()

	bucket := NewBucket()
	var user UserData
	switch err := bucket.One(db, addr, &user); {
	case errors.ErrNotFound.Is(err):
		user = UserData{Pubkey: pub.Ed25519}
	case err != nil:
		return nil, errors.Wrap(err, "load signer")
	}

	signBytes, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !pub.Verify(signBytes, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, addr, &user); err != nil {
		return nil, err
	}
	return pub.Condition(), nil
}

// NextNonce returns the next numeric nonce value that should be used when
// signing on behalf of given address.
func NextNonce(db custody.ReadOnlyKVStore, signer custody.Address) (int64, error) {
	var user UserData
	switch err := NewBucket().One(db, signer, &user); {
	case errors.ErrNotFound.Is(err):
		// nonce counting starts with zero
		return 0, nil
	case err != nil:
		return 0, err
	}
	return user.Sequence, nil
}
