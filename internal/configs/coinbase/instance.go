package coinbaseconfig

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/harmony-one/coinbase/numeric"
)

var (
	errUnknownPolicy = errors.New("unknown remainder policy")
	// ErrInvalidInstance is returned when reward parameters are inconsistent.
	ErrInvalidInstance = errors.New("invalid coinbase config instance")
)

// Params are the raw parameters of an Instance.
type Params struct {
	TotalPool        *uint256.Int
	CommitteePool    *uint256.Int
	NumShards        uint32
	BasePercent      uint64
	LookupPercent    uint64
	LookupNodes      []common.Address
	MinCommitteeSize int
	MinShardSize     int
	RemainderPolicy  RemainderPolicy
	TreasuryAddress  common.Address
}

type instance struct {
	totalPool        *uint256.Int
	committeePool    *uint256.Int
	numShards        uint32
	basePercent      uint64
	lookupPercent    uint64
	lookupNodes      []common.Address
	minCommitteeSize int
	minShardSize     int
	remainderPolicy  RemainderPolicy
	treasuryAddress  common.Address
}

// NewInstance creates and validates a new reward configuration based
// upon given parameters.
func NewInstance(p Params) (Instance, error) {
	if p.TotalPool == nil || p.CommitteePool == nil {
		return nil, errors.Wrap(ErrInvalidInstance, "pools must be set")
	}
	if p.CommitteePool.Gt(p.TotalPool) {
		return nil, errors.Wrapf(ErrInvalidInstance,
			"committee pool %s exceeds total pool %s",
			numeric.ToDecimal(p.CommitteePool), numeric.ToDecimal(p.TotalPool))
	}
	if p.NumShards < 1 {
		return nil, errors.Wrap(ErrInvalidInstance, "reward config must have at least one shard")
	}
	if p.BasePercent+p.LookupPercent > numeric.PercentBase {
		return nil, errors.Wrapf(ErrInvalidInstance,
			"base %d%% and lookup %d%% exceed 100%%", p.BasePercent, p.LookupPercent)
	}
	if p.MinCommitteeSize < 0 || p.MinShardSize < 0 {
		return nil, errors.Wrap(ErrInvalidInstance, "minimum sizes cannot be negative")
	}
	policy := p.RemainderPolicy
	if policy == "" {
		policy = PolicyBurn
	}
	if _, err := ParseRemainderPolicy(string(policy)); err != nil {
		return nil, errors.Wrapf(ErrInvalidInstance, "%v: %q", err, policy)
	}
	if policy == PolicyTreasury && (p.TreasuryAddress == common.Address{}) {
		return nil, errors.Wrap(ErrInvalidInstance, "treasury policy needs a treasury address")
	}
	return instance{
		totalPool:        p.TotalPool.Clone(),
		committeePool:    p.CommitteePool.Clone(),
		numShards:        p.NumShards,
		basePercent:      p.BasePercent,
		lookupPercent:    p.LookupPercent,
		lookupNodes:      append([]common.Address{}, p.LookupNodes...),
		minCommitteeSize: p.MinCommitteeSize,
		minShardSize:     p.MinShardSize,
		remainderPolicy:  policy,
		treasuryAddress:  p.TreasuryAddress,
	}, nil
}

// MustNewInstance creates a new reward configuration based upon given
// parameters. It panics if parameter validation fails.
// It is intended to be used for static initialization.
func MustNewInstance(p Params) Instance {
	in, err := NewInstance(p)
	if err != nil {
		panic(err)
	}
	return in
}

func (in instance) TotalPool() *uint256.Int {
	return in.totalPool.Clone()
}

func (in instance) CommitteePool() *uint256.Int {
	return in.committeePool.Clone()
}

func (in instance) NumShards() uint32 {
	return in.numShards
}

func (in instance) BasePercent() uint64 {
	return in.basePercent
}

func (in instance) LookupPercent() uint64 {
	return in.lookupPercent
}

func (in instance) LookupNodes() []common.Address {
	return append([]common.Address{}, in.lookupNodes...)
}

func (in instance) MinCommitteeSize() int {
	return in.minCommitteeSize
}

func (in instance) MinShardSize() int {
	return in.minShardSize
}

func (in instance) RemainderPolicy() RemainderPolicy {
	return in.remainderPolicy
}

func (in instance) TreasuryAddress() common.Address {
	return in.treasuryAddress
}
