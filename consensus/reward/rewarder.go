package reward

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/harmony-one/coinbase/numeric"
	"github.com/harmony-one/coinbase/shard"
)

// Payout ..
type Payout struct {
	Addr        common.Address
	NewlyEarned *uint256.Int
	EarningKey  shard.SerializedPublicKey
}

// UnitReward is the outcome of rewarding one unit.
type UnitReward struct {
	UnitID shard.UnitID
	Pool   *uint256.Int

	BaseShare        *uint256.Int
	PerformanceShare *uint256.Int
	LookupShare      *uint256.Int
	Qualified        uint64

	// Payouts follow member order, lookup node payouts come last.
	Payouts []Payout
	// Remainder is the part of Pool no payout received.
	Remainder *uint256.Int
}

// Paid returns the sum of all payouts.
func (r *UnitReward) Paid() (*uint256.Int, error) {
	total := numeric.Zero()
	for i := range r.Payouts {
		var err error
		if total, err = numeric.Add(total, r.Payouts[i].NewlyEarned); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// CompletedRound ..
type CompletedRound struct {
	Epoch     uint64
	Total     *uint256.Int
	Remainder *uint256.Int
	Units     []*UnitReward
}

// NewCompletedRound sums the unit results of an epoch, keeping their order.
func NewCompletedRound(epoch uint64, units []*UnitReward) (*CompletedRound, error) {
	round := &CompletedRound{
		Epoch:     epoch,
		Total:     numeric.Zero(),
		Remainder: numeric.Zero(),
		Units:     units,
	}
	for _, u := range units {
		paid, err := u.Paid()
		if err != nil {
			return nil, err
		}
		if round.Total, err = numeric.Add(round.Total, paid); err != nil {
			return nil, err
		}
		if round.Remainder, err = numeric.Add(round.Remainder, u.Remainder); err != nil {
			return nil, err
		}
	}
	return round, nil
}

// Balances accumulates every payout by address. An address rewarded in
// several units receives the sum.
func (r *CompletedRound) Balances() (map[common.Address]*uint256.Int, error) {
	balances := make(map[common.Address]*uint256.Int)
	for _, u := range r.Units {
		for _, p := range u.Payouts {
			prev, ok := balances[p.Addr]
			if !ok {
				prev = numeric.Zero()
			}
			sum, err := numeric.Add(prev, p.NewlyEarned)
			if err != nil {
				return nil, err
			}
			balances[p.Addr] = sum
		}
	}
	return balances, nil
}

// SortedAddresses returns the keys of balances in byte order.
func SortedAddresses(balances map[common.Address]*uint256.Int) []common.Address {
	addrs := make([]common.Address, 0, len(balances))
	for a := range balances {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return addrs
}

// Reader ..
type Reader interface {
	ReadRoundResult() *CompletedRound
}
