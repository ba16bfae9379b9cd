package vault

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

var isAssetID = regexp.MustCompile(`^[a-zA-Z0-9_.:\-]{1,64}$`).MatchString

// The protobuf tags of the models below follow codec.proto.

// Configuration is set once, when the vault is initialized.
type Configuration struct {
	// DepositAsset is the asset participants deposit.
	DepositAsset string `protobuf:"bytes,1,opt,name=deposit_asset,json=depositAsset,proto3" json:"deposit_asset"`
	// RewardAsset is the asset paid out on claim.
	RewardAsset string `protobuf:"bytes,2,opt,name=reward_asset,json=rewardAsset,proto3" json:"reward_asset"`
	// Authority may start the distribution and receives all deposits.
	Authority custody.Address `protobuf:"bytes,3,opt,name=authority,proto3" json:"authority"`
	// Ratio of reward allocated per deposited unit. Nil means 1:1.
	Ratio *custody.Fraction `protobuf:"bytes,4,opt,name=ratio,proto3" json:"ratio,omitempty"`
}

var _ custody.Message = (*Configuration)(nil)

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

// Validate requires both assets and the authority to be set.
func (c *Configuration) Validate() error {
	if !isAssetID(c.DepositAsset) {
		return errors.Wrapf(errors.ErrInput, "deposit asset %q", c.DepositAsset)
	}
	if !isAssetID(c.RewardAsset) {
		return errors.Wrapf(errors.ErrInput, "reward asset %q", c.RewardAsset)
	}
	if err := c.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if c.Ratio != nil {
		if err := (FractionRatio{Fraction: *c.Ratio}).Validate(); err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
	}
	return nil
}

// initialized returns true once a configuration was stored.
func (c *Configuration) initialized() bool {
	return c.DepositAsset != ""
}

// ParticipantRecord is the position of a single participant.
type ParticipantRecord struct {
	Deposited uint64 `protobuf:"varint,1,opt,name=deposited,proto3" json:"deposited"`
	Allocated uint64 `protobuf:"varint,2,opt,name=allocated,proto3" json:"allocated"`
	Claimed   bool   `protobuf:"varint,3,opt,name=claimed,proto3" json:"claimed"`
}

var _ orm.Model = (*ParticipantRecord)(nil)

func (p *ParticipantRecord) Reset()         { *p = ParticipantRecord{} }
func (p *ParticipantRecord) String() string { return proto.CompactTextString(p) }
func (*ParticipantRecord) ProtoMessage()    {}

// Validate rejects records that no sequence of operations can produce.
func (p *ParticipantRecord) Validate() error {
	if p.Allocated > p.Deposited {
		return errors.Wrapf(errors.ErrState, "allocated %d exceeds deposited %d", p.Allocated, p.Deposited)
	}
	if p.Claimed && p.Allocated == 0 {
		return errors.Wrap(errors.ErrState, "claimed without allocation")
	}
	return nil
}

// Eligible returns true if the participant has something left to claim.
func (p *ParticipantRecord) Eligible() bool {
	return p.Allocated > 0 && !p.Claimed
}

// State holds the vault wide aggregates.
type State struct {
	DistributionActive bool   `protobuf:"varint,1,opt,name=distribution_active,json=distributionActive,proto3" json:"distribution_active"`
	TotalDeposited     uint64 `protobuf:"varint,2,opt,name=total_deposited,json=totalDeposited,proto3" json:"total_deposited"`
}

var _ orm.Model = (*State)(nil)

func (s *State) Reset()         { *s = State{} }
func (s *State) String() string { return proto.CompactTextString(s) }
func (*State) ProtoMessage()    {}

// Validate always passes, any combination of the fields is reachable.
func (s *State) Validate() error {
	return nil
}
