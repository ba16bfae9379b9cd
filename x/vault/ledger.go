package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
)

const (
	// ParticipantBucket holds participant records keyed by address.
	ParticipantBucket = "vault"
	// StateBucket holds the single aggregate state record.
	StateBucket = "vaultstate"
	// ConfigPkg is the gconf package name of the vault configuration.
	ConfigPkg = "vault"
)

var stateKey = []byte("state")

// Ledger stores the vault data. It returns zero values for anything never
// written and performs no validation beyond the models own.
type Ledger struct {
	participants orm.ModelBucket
	state        orm.ModelBucket
}

// NewLedger returns a ledger using the default buckets.
func NewLedger() *Ledger {
	return &Ledger{
		participants: orm.NewModelBucket(ParticipantBucket),
		state:        orm.NewModelBucket(StateBucket),
	}
}

// Participant returns the record of given participant or a zero record.
func (l *Ledger) Participant(db custody.ReadOnlyKVStore, p custody.Address) (*ParticipantRecord, error) {
	var rec ParticipantRecord
	switch err := l.participants.One(db, p, &rec); {
	case errors.ErrNotFound.Is(err):
		return &ParticipantRecord{}, nil
	case err != nil:
		return nil, errors.Wrapf(err, "participant %s", p)
	}
	return &rec, nil
}

// SetParticipant overwrites the record of given participant.
func (l *Ledger) SetParticipant(db custody.KVStore, p custody.Address, rec *ParticipantRecord) error {
	if err := l.participants.Put(db, p, rec); err != nil {
		return errors.Wrapf(err, "participant %s", p)
	}
	return nil
}

// IterateParticipants calls fn for every stored participant in address
// order.
func (l *Ledger) IterateParticipants(db custody.ReadOnlyKVStore, fn func(custody.Address, *ParticipantRecord) error) error {
	var rec ParticipantRecord
	return l.participants.ForEach(db, &rec, func(key []byte) error {
		cp := rec
		return fn(custody.Address(key), &cp)
	})
}

// State returns the aggregate state or a zero state.
func (l *Ledger) State(db custody.ReadOnlyKVStore) (*State, error) {
	var st State
	switch err := l.state.One(db, stateKey, &st); {
	case errors.ErrNotFound.Is(err):
		return &State{}, nil
	case err != nil:
		return nil, errors.Wrap(err, "state")
	}
	return &st, nil
}

// SetState overwrites the aggregate state.
func (l *Ledger) SetState(db custody.KVStore, st *State) error {
	return errors.Wrap(l.state.Put(db, stateKey, st), "state")
}

// Config returns the vault configuration. A zero configuration is
// returned if the vault was never initialized.
func (l *Ledger) Config(db custody.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, ConfigPkg, &conf); {
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	case err != nil:
		return nil, err
	}
	return &conf, nil
}

// SetConfig stores the configuration. Callers must make sure it is never
// replaced once set.
func (l *Ledger) SetConfig(db custody.KVStore, conf *Configuration) error {
	return gconf.Save(db, ConfigPkg, conf)
}
