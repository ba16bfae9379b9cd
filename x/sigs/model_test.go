package sigs

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/weavetest/assert"
)

// Stored bytes must follow the field numbers declared in codec.proto.
func TestModelEncoding(t *testing.T) {
	raw, err := proto.Marshal(&UserData{Pubkey: []byte{1, 2, 3}, Sequence: 7})
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x0a, 0x03, 0x01, 0x02, 0x03, 0x10, 0x07}, raw)

	raw, err = proto.Marshal(&StdSignature{Pubkey: []byte{1}, Signature: []byte{2, 3}, Sequence: 1})
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x0a, 0x01, 0x01, 0x12, 0x02, 0x02, 0x03, 0x18, 0x01}, raw)

	var sig StdSignature
	assert.Nil(t, proto.Unmarshal(raw, &sig))
	assert.Equal(t, int64(1), sig.Sequence)
	assert.Equal(t, []byte{2, 3}, sig.Signature)
}
