package reward

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/harmony-one/coinbase/consensus/participation"
	coinbaseconfig "github.com/harmony-one/coinbase/internal/configs/coinbase"
	"github.com/harmony-one/coinbase/numeric"
)

var (
	// ErrEmptyUnit is returned for a unit without members.
	ErrEmptyUnit = errors.New("reward unit has no members")
	// ErrPoolExhausted is returned when the pool configuration cannot fund
	// the computed payouts.
	ErrPoolExhausted = errors.New("reward pool exhausted")
)

// Context is the reward configuration in force for one epoch.
type Context struct {
	TotalPool     *uint256.Int
	CommitteePool *uint256.Int
	NumShards     uint32
	BasePercent   uint64
	LookupPercent uint64
	LookupNodes   []common.Address
}

// NewContext snapshots the reward parameters of a config instance.
func NewContext(in coinbaseconfig.Instance) Context {
	return Context{
		TotalPool:     in.TotalPool(),
		CommitteePool: in.CommitteePool(),
		NumShards:     in.NumShards(),
		BasePercent:   in.BasePercent(),
		LookupPercent: in.LookupPercent(),
		LookupNodes:   in.LookupNodes(),
	}
}

// UnitPool returns the pool of the given unit. Shards split what the
// committee leaves of the total pool; the division remainder goes to shard 0
// so that the committee pool plus all shard pools equals the total pool.
func UnitPool(ctx Context, unit *participation.Unit) (*uint256.Int, error) {
	if ctx.TotalPool == nil || ctx.CommitteePool == nil {
		return nil, errors.Wrap(ErrPoolExhausted, "pools not configured")
	}
	if ctx.CommitteePool.Gt(ctx.TotalPool) {
		return nil, errors.Wrapf(ErrPoolExhausted,
			"committee pool %s exceeds total pool %s",
			numeric.ToDecimal(ctx.CommitteePool), numeric.ToDecimal(ctx.TotalPool))
	}
	if unit.ID.IsCommittee() {
		return ctx.CommitteePool.Clone(), nil
	}
	if ctx.NumShards == 0 {
		return nil, errors.Wrap(ErrPoolExhausted, "no shards to fund")
	}
	if uint32(unit.ID) >= ctx.NumShards {
		return nil, errors.Wrapf(participation.ErrUnexpectedUnit,
			"%s with %d shards", unit.ID, ctx.NumShards)
	}
	shardsPool := new(uint256.Int).Sub(ctx.TotalPool, ctx.CommitteePool)
	pool, rem := numeric.Split(shardsPool, uint64(ctx.NumShards))
	if unit.ID == 0 {
		pool.Add(pool, rem)
	}
	return pool, nil
}

// Compute returns the payouts of one unit. It reads no state: every member
// earns the base share, members marked in both bitmaps additionally earn the
// performance share, lookup nodes split the lookup share. Whatever integer
// division leaves over is returned as the unit remainder.
func Compute(ctx Context, unit *participation.Unit) (*UnitReward, error) {
	if unit == nil || unit.Size() == 0 {
		return nil, ErrEmptyUnit
	}
	size := unit.Size()
	for _, bm := range []*roaring.Bitmap{unit.Proposal, unit.Final} {
		if !bm.IsEmpty() && int(bm.Maximum()) >= size {
			return nil, errors.Wrapf(participation.ErrInvalidUnit,
				"%s: bitmap bit %d beyond %d members", unit.ID, bm.Maximum(), size)
		}
	}
	if ctx.BasePercent+ctx.LookupPercent > numeric.PercentBase {
		return nil, errors.Wrapf(ErrPoolExhausted,
			"base %d%% and lookup %d%% exceed the pool", ctx.BasePercent, ctx.LookupPercent)
	}

	pool, err := UnitPool(ctx, unit)
	if err != nil {
		return nil, err
	}
	lookupPool, err := numeric.Percent(pool, ctx.LookupPercent)
	if err != nil {
		return nil, err
	}
	basePool, err := numeric.Percent(pool, ctx.BasePercent)
	if err != nil {
		return nil, err
	}
	performancePool := new(uint256.Int).Sub(pool, lookupPool)
	performancePool.Sub(performancePool, basePool)

	qualified := unit.Qualified()
	baseShare, baseRem := numeric.Split(basePool, uint64(size))
	performanceShare, performanceRem := numeric.Split(performancePool, qualified.GetCardinality())
	lookupShare, lookupRem := numeric.Split(lookupPool, uint64(len(ctx.LookupNodes)))

	result := &UnitReward{
		UnitID:           unit.ID,
		Pool:             pool,
		BaseShare:        baseShare,
		PerformanceShare: performanceShare,
		LookupShare:      lookupShare,
		Qualified:        qualified.GetCardinality(),
		Payouts:          make([]Payout, 0, size+len(ctx.LookupNodes)),
	}
	for i, member := range unit.Members {
		due := baseShare.Clone()
		if qualified.Contains(uint32(i)) {
			due.Add(due, performanceShare)
		}
		result.Payouts = append(result.Payouts, Payout{
			Addr:        member.EcdsaAddress,
			NewlyEarned: due,
			EarningKey:  member.BLSPublicKey,
		})
	}
	for _, addr := range ctx.LookupNodes {
		result.Payouts = append(result.Payouts, Payout{
			Addr:        addr,
			NewlyEarned: lookupShare.Clone(),
		})
	}
	if result.Remainder, err = numeric.Sum(baseRem, performanceRem, lookupRem); err != nil {
		return nil, err
	}

	paid, err := result.Paid()
	if err != nil {
		return nil, err
	}
	if total, err := numeric.Add(paid, result.Remainder); err != nil || !total.Eq(pool) {
		return nil, errors.Wrapf(ErrPoolExhausted,
			"%s paid %s + remainder %s != pool %s", unit.ID,
			numeric.ToDecimal(paid), numeric.ToDecimal(result.Remainder), numeric.ToDecimal(pool))
	}
	return result, nil
}
