package weavetest

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

// NewKey returns a random private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a condition of a random key.
func NewCondition() custody.Condition {
	return NewKey().PublicKey().Condition()
}
