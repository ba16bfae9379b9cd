package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"golang.org/x/crypto/ed25519"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// NewBucket returns the bucket holding UserData, keyed by signer address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName)
}

// The protobuf tags of the models below follow codec.proto.

// UserData is the state kept for every signer.
type UserData struct {
	// Pubkey is set on the first verified signature.
	Pubkey []byte `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	// Sequence is the nonce the next signature must carry.
	Sequence int64 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Reset()         { *u = UserData{} }
func (u *UserData) String() string { return proto.CompactTextString(u) }
func (*UserData) ProtoMessage()    {}

func (u *UserData) Validate() error {
	if len(u.Pubkey) != 0 && len(u.Pubkey) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "pubkey length")
	}
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && len(u.Pubkey) == 0 {
		return errors.Wrap(ErrInvalidSequence, "needs pubkey")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	// Greatest nonce a javascript client can represent.
	const maxSequenceValue = (1 << 53) - 1
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// StdSignature is a signature over a payload together with the public key
// and the nonce it was created with.
type StdSignature struct {
	Pubkey    []byte `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey"`
	Signature []byte `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature"`
	Sequence  int64  `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence"`
}

func (s *StdSignature) Reset()         { *s = StdSignature{} }
func (s *StdSignature) String() string { return proto.CompactTextString(s) }
func (*StdSignature) ProtoMessage()    {}

// Validate ensures the signature is well formed. It does not verify it.
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.Pubkey) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "pubkey length")
	}
	if len(s.Signature) != ed25519.SignatureSize {
		return errors.Wrap(errors.ErrInput, "signature length")
	}
	return nil
}

// PublicKey returns the key this signature claims to be created with.
func (s *StdSignature) PublicKey() *crypto.PublicKey {
	return &crypto.PublicKey{Ed25519: ed25519.PublicKey(s.Pubkey)}
}
