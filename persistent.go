package custody

import (
	"github.com/gogo/protobuf/proto"
)

// Message is implemented by every persisted model. Models are protobuf
// messages encoded with github.com/gogo/protobuf and carry their own
// validation.
type Message interface {
	proto.Message
	Validate() error
}

// Marshal serializes given model after validating it.
func Marshal(m Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return proto.Marshal(m)
}

// Unmarshal loads the binary representation into the model. The model is
// reset first so no state from a previous decode leaks through.
func Unmarshal(raw []byte, m proto.Message) error {
	m.Reset()
	return proto.Unmarshal(raw, m)
}

// MustMarshal will succeed or panic
func MustMarshal(m Message) []byte {
	bz, err := Marshal(m)
	if err != nil {
		panic(err)
	}
	return bz
}

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}
