package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Vault is the custody state machine. All state lives in the store passed
// to every call, a Vault only holds its collaborators.
type Vault struct {
	auth    x.Authenticator
	gateway Gateway
	ratio   RatioPolicy
	ledger  *Ledger
	metrics *metrics
	guard   guard
}

// Option configures a Vault.
type Option func(*Vault)

// WithRatio overrides the ratio policy. By default the ratio stored in the
// configuration is used, or 1:1 if none is set.
func WithRatio(r RatioPolicy) Option {
	return func(v *Vault) {
		v.ratio = r
	}
}

// WithMetrics registers operation counters with given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(v *Vault) {
		v.metrics = newMetrics(reg)
	}
}

// NewVault returns a vault that identifies callers with auth and moves
// assets through gw.
func NewVault(auth x.Authenticator, gw Gateway, opts ...Option) *Vault {
	v := &Vault{
		auth:    auth,
		gateway: gw,
		ledger:  NewLedger(),
	}
	for _, fn := range opts {
		fn(v)
	}
	return v
}

func logger(ctx custody.Context) log.Logger {
	return custody.GetLogger(ctx).With("module", "vault")
}

// policy returns the ratio used for given configuration.
func (v *Vault) policy(conf *Configuration) RatioPolicy {
	switch {
	case v.ratio != nil:
		return v.ratio
	case conf.Ratio != nil:
		return FractionRatio{Fraction: *conf.Ratio}
	default:
		return IdentityRatio{}
	}
}

// config returns the configuration of an initialized vault.
func (v *Vault) config(db custody.ReadOnlyKVStore) (*Configuration, error) {
	conf, err := v.ledger.Config(db)
	if err != nil {
		return nil, err
	}
	if !conf.initialized() {
		return nil, errors.Wrap(errors.ErrState, "vault not initialized")
	}
	return conf, nil
}

// Initialize stores the configuration. Once a configuration is stored it
// never changes: any later call returns nil and leaves it untouched.
func (v *Vault) Initialize(ctx custody.Context, db custody.KVStore, conf *Configuration) error {
	if conf == nil {
		return errors.Wrap(errors.ErrInput, "missing configuration")
	}
	current, err := v.ledger.Config(db)
	if err != nil {
		return err
	}
	if current.initialized() {
		logger(ctx).Debug("vault already initialized, ignoring",
			"deposit_asset", conf.DepositAsset, "reward_asset", conf.RewardAsset)
		return nil
	}
	if err := v.ledger.SetConfig(db, conf); err != nil {
		return errors.Wrap(err, "initialize")
	}
	logger(ctx).Info("vault initialized",
		"deposit_asset", conf.DepositAsset, "reward_asset", conf.RewardAsset, "authority", conf.Authority)
	return nil
}

// Deposit pulls amount of the deposit asset from the caller to the
// authority and credits the caller. A zero amount is accepted and changes
// nothing.
func (v *Vault) Deposit(ctx custody.Context, db custody.CacheableKVStore, amount uint64) (err error) {
	defer func() { v.metrics.observe("deposit", err) }()

	if !v.guard.enter() {
		return errors.Wrap(ErrReentrant, "deposit")
	}
	defer v.guard.leave()

	caller, err := x.Caller(ctx, v.auth)
	if err != nil {
		return err
	}
	conf, err := v.config(db)
	if err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}

	rec, err := v.ledger.Participant(db, caller)
	if err != nil {
		return err
	}
	// A claimed allocation is final, anything added to it could never be
	// paid out.
	if rec.Claimed {
		return errors.Wrapf(ErrAlreadyClaimed, "participant %s cannot deposit", caller)
	}
	st, err := v.ledger.State(db)
	if err != nil {
		return err
	}

	deposited := rec.Deposited + amount
	if deposited < rec.Deposited {
		return errors.Wrapf(errors.ErrOverflow, "deposit of %s", caller)
	}
	total := st.TotalDeposited + amount
	if total < st.TotalDeposited {
		return errors.Wrap(errors.ErrOverflow, "total deposit")
	}
	allocated, err := v.policy(conf).Allocate(deposited)
	if err != nil {
		return errors.Wrap(err, "allocation")
	}
	if allocated < rec.Allocated || allocated > deposited {
		return errors.Wrapf(errors.ErrState, "ratio policy allocated %d for deposit %d, previously %d", allocated, deposited, rec.Allocated)
	}

	rec.Deposited = deposited
	rec.Allocated = allocated
	st.TotalDeposited = total

	cache := db.CacheWrap()
	if err := v.ledger.SetParticipant(cache, caller, rec); err != nil {
		cache.Discard()
		return err
	}
	if err := v.ledger.SetState(cache, st); err != nil {
		cache.Discard()
		return err
	}

	if err := v.gateway.PullFrom(ctx, conf.DepositAsset, caller, conf.Authority, amount); err != nil {
		cache.Discard()
		logger(ctx).Error("deposit transfer failed", "participant", caller, "amount", amount, "err", err)
		return ErrTransfer.WithCause(err)
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	v.metrics.addDeposited(amount)
	logger(ctx).Info("deposit", "participant", caller, "amount", amount, "allocated", allocated)
	return nil
}

// StartDistribution allows claims. Only the authority may call it. Calling
// it again is a no-op.
func (v *Vault) StartDistribution(ctx custody.Context, db custody.KVStore) (err error) {
	defer func() { v.metrics.observe("start", err) }()

	if !v.guard.enter() {
		return errors.Wrap(ErrReentrant, "start distribution")
	}
	defer v.guard.leave()

	caller, err := x.Caller(ctx, v.auth)
	if err != nil {
		return err
	}
	conf, err := v.ledger.Config(db)
	if err != nil {
		return err
	}
	if !IsAuthority(conf, caller) {
		return errors.Wrap(errors.ErrUnauthorized, "only the authority can start distribution")
	}

	st, err := v.ledger.State(db)
	if err != nil {
		return err
	}
	if st.DistributionActive {
		return nil
	}
	st.DistributionActive = true
	if err := v.ledger.SetState(db, st); err != nil {
		return err
	}
	logger(ctx).Info("distribution started", "authority", caller)
	return nil
}

// CheckEligibility returns true if the participant has an allocation that
// was not claimed yet.
func (v *Vault) CheckEligibility(db custody.ReadOnlyKVStore, p custody.Address) (bool, error) {
	rec, err := v.ledger.Participant(db, p)
	if err != nil {
		return false, err
	}
	return rec.Eligible(), nil
}

// Claim pays the allocation of the caller. It succeeds at most once per
// participant, and only after the distribution started.
func (v *Vault) Claim(ctx custody.Context, db custody.CacheableKVStore) (err error) {
	defer func() { v.metrics.observe("claim", err) }()

	if !v.guard.enter() {
		return errors.Wrap(ErrReentrant, "claim")
	}
	defer v.guard.leave()

	caller, err := x.Caller(ctx, v.auth)
	if err != nil {
		return err
	}
	conf, err := v.config(db)
	if err != nil {
		return err
	}
	st, err := v.ledger.State(db)
	if err != nil {
		return err
	}
	if !st.DistributionActive {
		return errors.Wrap(errors.ErrState, "distribution not active")
	}
	rec, err := v.ledger.Participant(db, caller)
	if err != nil {
		return err
	}
	if rec.Claimed {
		return errors.Wrapf(ErrAlreadyClaimed, "participant %s", caller)
	}
	if !rec.Eligible() {
		return errors.Wrap(errors.ErrState, "not eligible for claim")
	}
	if rec.Allocated == 0 {
		return errors.Wrap(errors.ErrState, "no allocation")
	}

	rec.Claimed = true
	cache := db.CacheWrap()
	if err := v.ledger.SetParticipant(cache, caller, rec); err != nil {
		cache.Discard()
		return err
	}

	if err := v.gateway.PushTo(ctx, conf.RewardAsset, caller, rec.Allocated); err != nil {
		cache.Discard()
		logger(ctx).Error("claim transfer failed", "participant", caller, "amount", rec.Allocated, "err", err)
		return ErrTransfer.WithCause(err)
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	v.metrics.addClaimed(rec.Allocated)
	logger(ctx).Info("claim", "participant", caller, "amount", rec.Allocated)
	return nil
}

// Allocation returns the reward amount allocated to the participant.
func (v *Vault) Allocation(db custody.ReadOnlyKVStore, p custody.Address) (uint64, error) {
	rec, err := v.ledger.Participant(db, p)
	if err != nil {
		return 0, err
	}
	return rec.Allocated, nil
}

// Deposits returns the total amount deposited by the participant.
func (v *Vault) Deposits(db custody.ReadOnlyKVStore, p custody.Address) (uint64, error) {
	rec, err := v.ledger.Participant(db, p)
	if err != nil {
		return 0, err
	}
	return rec.Deposited, nil
}

// IsClaimed returns true if the participant claimed the allocation.
func (v *Vault) IsClaimed(db custody.ReadOnlyKVStore, p custody.Address) (bool, error) {
	rec, err := v.ledger.Participant(db, p)
	if err != nil {
		return false, err
	}
	return rec.Claimed, nil
}

// IsDistributionActive returns true once the authority started the
// distribution.
func (v *Vault) IsDistributionActive(db custody.ReadOnlyKVStore) (bool, error) {
	st, err := v.ledger.State(db)
	if err != nil {
		return false, err
	}
	return st.DistributionActive, nil
}

// TotalDeposits returns the sum of all deposits.
func (v *Vault) TotalDeposits(db custody.ReadOnlyKVStore) (uint64, error) {
	st, err := v.ledger.State(db)
	if err != nil {
		return 0, err
	}
	return st.TotalDeposited, nil
}

// Configuration returns the stored configuration, zero if the vault was
// not initialized.
func (v *Vault) Configuration(db custody.ReadOnlyKVStore) (*Configuration, error) {
	return v.ledger.Config(db)
}

// BalanceOf asks the gateway for the balance of an account.
func (v *Vault) BalanceOf(ctx custody.Context, asset string, account custody.Address) (uint64, error) {
	return v.gateway.BalanceOf(ctx, asset, account)
}

// Audit checks that the ledger holds together: deposits sum up to the
// total, every allocation follows the ratio policy and never exceeds the
// deposit, and claims happened only with an active distribution.
func (v *Vault) Audit(db custody.ReadOnlyKVStore) error {
	conf, err := v.ledger.Config(db)
	if err != nil {
		return err
	}
	st, err := v.ledger.State(db)
	if err != nil {
		return err
	}
	if !conf.initialized() {
		if st.TotalDeposited != 0 || st.DistributionActive {
			return errors.Wrap(errors.ErrState, "state without configuration")
		}
		return nil
	}
	ratio := v.policy(conf)

	var sum uint64
	err = v.ledger.IterateParticipants(db, func(p custody.Address, rec *ParticipantRecord) error {
		if err := rec.Validate(); err != nil {
			return errors.Wrapf(err, "participant %s", p)
		}
		want, err := ratio.Allocate(rec.Deposited)
		if err != nil {
			return errors.Wrapf(err, "participant %s", p)
		}
		if want != rec.Allocated {
			return errors.Wrapf(errors.ErrState, "participant %s: allocated %d, ratio gives %d", p, rec.Allocated, want)
		}
		if rec.Claimed && !st.DistributionActive {
			return errors.Wrapf(errors.ErrState, "participant %s claimed before distribution", p)
		}
		next := sum + rec.Deposited
		if next < sum {
			return errors.Wrap(errors.ErrOverflow, "sum of deposits")
		}
		sum = next
		return nil
	})
	if err != nil {
		return err
	}
	if sum != st.TotalDeposited {
		return errors.Wrapf(errors.ErrState, "deposits sum to %d, total is %d", sum, st.TotalDeposited)
	}
	return nil
}
