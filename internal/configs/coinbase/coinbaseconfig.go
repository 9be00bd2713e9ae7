// Package coinbaseconfig defines types and utilities that deal with the
// per-epoch coinbase reward configuration schedule.
package coinbaseconfig

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Schedule returns the reward configuration instance for the given epoch.
type Schedule interface {
	InstanceForEpoch(epoch uint64) Instance
}

// Instance is one reward configuration instance.
type Instance interface {
	// TotalPool returns the coinbase paid out per epoch across all units.
	TotalPool() *uint256.Int

	// CommitteePool returns the part of TotalPool paid to the top-level
	// committee; the rest is divided among the shards.
	CommitteePool() *uint256.Int

	// NumShards returns the number of shard reward units per epoch.
	NumShards() uint32

	// BasePercent returns the percent of a unit pool paid equally to every
	// member regardless of participation.
	BasePercent() uint64

	// LookupPercent returns the percent of a unit pool reserved for lookup
	// nodes.
	LookupPercent() uint64

	// LookupNodes returns the addresses sharing the lookup percent.
	LookupNodes() []common.Address

	// MinCommitteeSize returns the expected minimum committee size. It is a
	// plausibility hint only.
	MinCommitteeSize() int

	// MinShardSize returns the expected minimum shard size. It is a
	// plausibility hint only.
	MinShardSize() int

	// RemainderPolicy returns where undistributed rounding remainders go.
	RemainderPolicy() RemainderPolicy

	// TreasuryAddress returns the receiver of remainders under PolicyTreasury.
	TreasuryAddress() common.Address
}

// RemainderPolicy selects the destination of unallocated reward remainders.
type RemainderPolicy string

const (
	// PolicyBurn leaves remainders unpaid; they are reported but never staged.
	PolicyBurn RemainderPolicy = "burn"
	// PolicyTreasury credits remainders to the treasury address.
	PolicyTreasury RemainderPolicy = "treasury"
)

// ParseRemainderPolicy ..
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch p := RemainderPolicy(s); p {
	case PolicyBurn, PolicyTreasury:
		return p, nil
	case "":
		return PolicyBurn, nil
	default:
		return "", errUnknownPolicy
	}
}
