package participation

import (
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"

	"github.com/harmony-one/coinbase/internal/utils"
	"github.com/harmony-one/coinbase/shard"
)

// Ledger accumulates reward units per epoch until the coinbase for that epoch
// is computed. It is safe for concurrent use.
type Ledger struct {
	lock   sync.RWMutex
	epochs map[uint64]map[shard.UnitID]*Unit
}

// NewLedger ..
func NewLedger() *Ledger {
	return &Ledger{
		epochs: make(map[uint64]map[shard.UnitID]*Unit),
	}
}

// Record stores the unit for (epoch, id). Recording the same pair again
// replaces the previous entry.
func (l *Ledger) Record(
	id shard.UnitID, proposal, final []bool, members shard.MemberList, epoch uint64,
) error {
	unit, err := NewUnit(id, proposal, final, members, epoch)
	if err != nil {
		return err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	units, ok := l.epochs[epoch]
	if !ok {
		units = make(map[shard.UnitID]*Unit)
		l.epochs[epoch] = units
	}
	if _, replaced := units[id]; replaced {
		utils.Logger().Info().
			Uint64("epoch", epoch).
			Str("unit", id.String()).
			Msg("[Ledger] Replacing previously recorded unit")
	}
	units[id] = unit
	return nil
}

// AllUnitsFor returns the committee unit followed by the shard units in
// ascending id order, once every one of them has been recorded.
func (l *Ledger) AllUnitsFor(epoch uint64, numShards uint32) ([]*Unit, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	units := l.epochs[epoch]
	expected := mapset.NewThreadUnsafeSet()
	expected.Add(shard.CommitteeUnitID)
	for i := uint32(0); i < numShards; i++ {
		expected.Add(shard.UnitID(i))
	}
	recorded := mapset.NewThreadUnsafeSet()
	for id := range units {
		recorded.Add(id)
	}

	if extra := recorded.Difference(expected); extra.Cardinality() > 0 {
		return nil, errors.Wrapf(ErrUnexpectedUnit,
			"epoch %d has %d shards, got units %v", epoch, numShards, sortedIDs(extra))
	}
	if missing := expected.Difference(recorded); missing.Cardinality() > 0 {
		return nil, errors.Wrapf(ErrIncompleteUnits,
			"epoch %d missing units %v", epoch, sortedIDs(missing))
	}

	result := make([]*Unit, 0, len(units))
	result = append(result, units[shard.CommitteeUnitID])
	for i := uint32(0); i < numShards; i++ {
		result = append(result, units[shard.UnitID(i)])
	}
	return result, nil
}

// Forget drops every unit recorded for epoch.
func (l *Ledger) Forget(epoch uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()

	delete(l.epochs, epoch)
}

// Epochs returns the epochs holding recorded units, ascending.
func (l *Ledger) Epochs() []uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()

	epochs := make([]uint64, 0, len(l.epochs))
	for e := range l.epochs {
		epochs = append(epochs, e)
	}
	sort.Slice(epochs, func(i, j int) bool { return epochs[i] < epochs[j] })
	return epochs
}

func sortedIDs(s mapset.Set) []shard.UnitID {
	ids := make([]shard.UnitID, 0, s.Cardinality())
	for _, v := range s.ToSlice() {
		ids = append(ids, v.(shard.UnitID))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
