package vault

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/weavetest/assert"
)

// Stored bytes must follow the field numbers declared in codec.proto.
func TestModelEncoding(t *testing.T) {
	authority := make(custody.Address, custody.AddressLength)
	for i := range authority {
		authority[i] = byte(i + 1)
	}
	conf := []byte{0x0a, 0x04, 'U', 'S', 'D', 'T', 0x12, 0x04, 'P', 'R', 'O', 'J', 0x1a, 0x14}
	conf = append(conf, authority...)
	conf = append(conf, 0x22, 0x04, 0x08, 0x01, 0x10, 0x02)

	cases := map[string]struct {
		model proto.Message
		empty proto.Message
		want  []byte
	}{
		"configuration": {
			model: &Configuration{
				DepositAsset: "USDT",
				RewardAsset:  "PROJ",
				Authority:    authority,
				Ratio:        &custody.Fraction{Numerator: 1, Denominator: 2},
			},
			empty: &Configuration{},
			want:  conf,
		},
		"participant": {
			model: &ParticipantRecord{Deposited: 150, Allocated: 75, Claimed: true},
			empty: &ParticipantRecord{},
			want:  []byte{0x08, 0x96, 0x01, 0x10, 0x4b, 0x18, 0x01},
		},
		"state": {
			model: &State{DistributionActive: true, TotalDeposited: 300},
			empty: &State{},
			want:  []byte{0x08, 0x01, 0x10, 0xac, 0x02},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := proto.Marshal(tc.model)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, raw)

			assert.Nil(t, custody.Unmarshal(raw, tc.empty))
			assert.Equal(t, tc.model, tc.empty)
		})
	}
}
