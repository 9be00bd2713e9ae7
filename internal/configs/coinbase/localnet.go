package coinbaseconfig

import (
	"github.com/holiman/uint256"
)

// One is the number of base units in one token.
const One = 1e18

// LocalnetSchedule is the local testnet reward configuration schedule.
var LocalnetSchedule localnetSchedule

type localnetSchedule struct{}

func (localnetSchedule) InstanceForEpoch(epoch uint64) Instance {
	switch {
	case epoch >= 10:
		return localnetV1
	default: // genesis
		return localnetV0
	}
}

func tokens(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(One))
}

var localnetV0 = MustNewInstance(Params{
	TotalPool:        tokens(5000),
	CommitteePool:    tokens(1000),
	NumShards:        2,
	BasePercent:      50,
	MinCommitteeSize: 4,
	MinShardSize:     4,
	RemainderPolicy:  PolicyBurn,
})

var localnetV1 = MustNewInstance(Params{
	TotalPool:        tokens(9000),
	CommitteePool:    tokens(1500),
	NumShards:        3,
	BasePercent:      40,
	LookupPercent:    5,
	MinCommitteeSize: 4,
	MinShardSize:     4,
	RemainderPolicy:  PolicyBurn,
})
