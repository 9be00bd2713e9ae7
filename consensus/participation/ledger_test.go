package participation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmony-one/coinbase/shard"
)

func makeMembers(prefix string, n int) shard.MemberList {
	keys := make([]shard.SerializedPublicKey, n)
	for i := range keys {
		copy(keys[i][:], fmt.Sprintf("%s-%d", prefix, i))
	}
	return shard.NewMemberList(keys)
}

func allTrue(n int) []bool {
	b := make([]bool, n)
	for i := range b {
		b[i] = true
	}
	return b
}

func TestNewUnitValidation(t *testing.T) {
	members := makeMembers("m", 3)
	tests := []struct {
		name     string
		proposal []bool
		final    []bool
		members  shard.MemberList
	}{
		{"empty", []bool{}, []bool{}, shard.MemberList{}},
		{"short proposal", []bool{true}, allTrue(3), members},
		{"long final", allTrue(3), allTrue(4), members},
		{"duplicate member", allTrue(2), allTrue(2), shard.MemberList{members[0], members[0]}},
	}
	for _, test := range tests {
		_, err := NewUnit(0, test.proposal, test.final, test.members, 1)
		assert.True(t, errors.Is(err, ErrInvalidUnit), "%s: got %v", test.name, err)
	}
}

func TestUnitQualified(t *testing.T) {
	u, err := NewUnit(0,
		[]bool{true, true, false, true},
		[]bool{true, false, false, true},
		makeMembers("m", 4), 7)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 3}, u.Qualified().ToArray())
	assert.Equal(t, uint64(2), u.QualifiedCount())
	p, f := u.Signed(1)
	assert.True(t, p)
	assert.False(t, f)
	assert.Equal(t, 4, u.Size())
}

func TestUnitCopiesMembers(t *testing.T) {
	members := makeMembers("m", 2)
	u, err := NewUnit(0, allTrue(2), allTrue(2), members, 1)
	require.NoError(t, err)
	members[0] = shard.Member{}
	assert.NotEqual(t, shard.Member{}, u.Members[0])
}

func TestLedgerAllUnitsFor(t *testing.T) {
	l := NewLedger()
	const epoch = 12

	require.NoError(t, l.Record(1, allTrue(3), allTrue(3), makeMembers("s1", 3), epoch))
	_, err := l.AllUnitsFor(epoch, 2)
	assert.True(t, errors.Is(err, ErrIncompleteUnits))

	require.NoError(t, l.Record(0, allTrue(2), allTrue(2), makeMembers("s0", 2), epoch))
	_, err = l.AllUnitsFor(epoch, 2)
	assert.True(t, errors.Is(err, ErrIncompleteUnits), "committee still missing")

	require.NoError(t, l.Record(shard.CommitteeUnitID, allTrue(4), allTrue(4), makeMembers("c", 4), epoch))
	units, err := l.AllUnitsFor(epoch, 2)
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Equal(t, shard.CommitteeUnitID, units[0].ID)
	assert.Equal(t, shard.UnitID(0), units[1].ID)
	assert.Equal(t, shard.UnitID(1), units[2].ID)

	_, err = l.AllUnitsFor(epoch, 1)
	assert.True(t, errors.Is(err, ErrUnexpectedUnit))

	_, err = l.AllUnitsFor(epoch+1, 2)
	assert.True(t, errors.Is(err, ErrIncompleteUnits))
}

func TestLedgerRecordOverwrites(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Record(0, allTrue(2), allTrue(2), makeMembers("a", 2), 1))
	require.NoError(t, l.Record(0, []bool{false, false, true}, allTrue(3), makeMembers("b", 3), 1))
	require.NoError(t, l.Record(shard.CommitteeUnitID, allTrue(1), allTrue(1), makeMembers("c", 1), 1))

	units, err := l.AllUnitsFor(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, units[1].Size())
	assert.Equal(t, uint64(1), units[1].QualifiedCount())
}

func TestLedgerRejectsInvalidRecord(t *testing.T) {
	l := NewLedger()
	err := l.Record(0, nil, nil, nil, 1)
	assert.True(t, errors.Is(err, ErrInvalidUnit))
	assert.Empty(t, l.Epochs())
}

func TestLedgerForgetAndEpochs(t *testing.T) {
	l := NewLedger()
	for _, e := range []uint64{5, 2, 9} {
		require.NoError(t, l.Record(0, allTrue(1), allTrue(1), makeMembers("x", 1), e))
	}
	assert.Equal(t, []uint64{2, 5, 9}, l.Epochs())
	l.Forget(5)
	assert.Equal(t, []uint64{2, 9}, l.Epochs())
}

func TestLedgerConcurrentRecord(t *testing.T) {
	l := NewLedger()
	const shards = 16
	var wg sync.WaitGroup
	for i := 0; i < shards; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, l.Record(shard.UnitID(i), allTrue(3), allTrue(3),
				makeMembers(fmt.Sprintf("s%d", i), 3), 3))
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, l.Record(shard.CommitteeUnitID, allTrue(3), allTrue(3), makeMembers("c", 3), 3))
	}()
	wg.Wait()

	units, err := l.AllUnitsFor(3, shards)
	require.NoError(t, err)
	assert.Len(t, units, shards+1)
}
