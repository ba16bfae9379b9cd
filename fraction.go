package custody

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// The protobuf tags of Fraction follow codec.proto.

// Fraction represents a rational number numerator/denominator. It is
// used by ratio policies to express deposit to allocation rates.
type Fraction struct {
	Numerator   uint32 `protobuf:"varint,1,opt,name=numerator,proto3" json:"numerator,omitempty"`
	Denominator uint32 `protobuf:"varint,2,opt,name=denominator,proto3" json:"denominator,omitempty"`
}

var _ proto.Message = (*Fraction)(nil)

func (f *Fraction) Reset()      { *f = Fraction{} }
func (*Fraction) ProtoMessage() {}

// String returns a human readable fraction representation.
func (f *Fraction) String() string {
	if f == nil {
		return "nil"
	}
	if f.Numerator == 0 {
		return "0"
	}
	if f.Denominator == 1 {
		return fmt.Sprint(f.Numerator)
	}
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

func (f Fraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Numerator   uint32 `json:"numerator"`
		Denominator uint32 `json:"denominator"`
	}{
		Numerator:   f.Numerator,
		Denominator: f.Denominator,
	})
}

func (f *Fraction) UnmarshalJSON(raw []byte) error {
	// Prioritize human readable format.
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		frac, err := ParseFractionString(human)
		if err != nil {
			return errors.Wrap(err, "fraction string")
		}
		*f = *frac
		return nil
	}

	var frac struct {
		Numerator   uint32
		Denominator uint32
	}
	if err := json.Unmarshal(raw, &frac); err != nil {
		return err
	}
	f.Numerator = frac.Numerator
	f.Denominator = frac.Denominator
	return nil
}

// Validate returns an error if this fraction represents an invalid value.
func (f Fraction) Validate() error {
	if f.Denominator == 0 {
		return errors.Wrap(errors.ErrState, "zero division")
	}
	return nil
}

// Normalize returns a new fraction instance that has its numerator and
// denominator reduced to the smallest possible representation.
func (f Fraction) Normalize() Fraction {
	div := uintGcd(f.Numerator, f.Denominator)
	if div == 0 {
		return f
	}
	return Fraction{
		Numerator:   f.Numerator / div,
		Denominator: f.Denominator / div,
	}
}

// Compare returns -1, 0 or 1 when f is respectively less than, equal to or
// greater than other. Both fractions must be valid.
func (f Fraction) Compare(other Fraction) int {
	// A zero numerator is zero regardless of the denominator.
	switch {
	case f.Numerator == 0 && other.Numerator == 0:
		return 0
	case f.Numerator == 0:
		return -1
	case other.Numerator == 0:
		return 1
	}
	a := uint64(f.Numerator) * uint64(other.Denominator)
	b := uint64(other.Numerator) * uint64(f.Denominator)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MulUint64 returns floor(n * f). The intermediate product is computed on
// 128 bits so the result is exact for any uint64 input.
func (f Fraction) MulUint64(n uint64) (uint64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	hi, lo := bits.Mul64(n, uint64(f.Numerator))
	den := uint64(f.Denominator)
	if hi >= den {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %s", n, f.String())
	}
	quo, _ := bits.Div64(hi, lo, den)
	return quo, nil
}

func uintGcd(a, b uint32) uint32 {
	for b != 0 {
		t := b
		b = a % b
		a = t
	}
	return a
}

// ParseFractionString returns a fraction value that is represented by given
// string. This function fails if given string does not represent a fraction
// value.
// This fuction does not fail if representation format is correct but the value
// is invalid (i.e. value of "2/0").
func ParseFractionString(raw string) (*Fraction, error) {
	chunks := strings.SplitN(raw, "/", 2)
	n, err := strconv.ParseUint(strings.TrimSpace(chunks[0]), 10, 32)
	if err != nil {
		return nil, errors.Wrap(err, "numerator")
	}
	if len(chunks) == 1 {
		return &Fraction{Numerator: uint32(n), Denominator: 1}, nil
	}
	d, err := strconv.ParseUint(strings.TrimSpace(chunks[1]), 10, 32)
	if err != nil {
		return nil, errors.Wrap(err, "denominator")
	}
	return &Fraction{Numerator: uint32(n), Denominator: uint32(d)}, nil
}
