package main

import (
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/harmony-one/coinbase/consensus/reward"
	"github.com/harmony-one/coinbase/core/state"
	"github.com/harmony-one/coinbase/numeric"
)

func printUnits(w io.Writer, round *reward.CompletedRound) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Unit", "Pool", "Base share", "Performance share", "Qualified", "Payouts", "Remainder"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, u := range round.Units {
		table.Append([]string{
			u.UnitID.String(),
			numeric.ToDecimal(u.Pool),
			numeric.ToDecimal(u.BaseShare),
			numeric.ToDecimal(u.PerformanceShare),
			strconv.FormatUint(u.Qualified, 10),
			strconv.Itoa(len(u.Payouts)),
			numeric.ToDecimal(u.Remainder),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", numeric.ToDecimal(round.Total), numeric.ToDecimal(round.Remainder)})
	table.Render()
}

func printAccounts(w io.Writer, round *reward.CompletedRound, store *state.Store, limit int) error {
	balances, err := round.Balances()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Address", "Earned", "Balance"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, addr := range reward.SortedAddresses(balances) {
		if limit > 0 && i >= limit {
			table.Append([]string{fmt.Sprintf("... %d more", len(balances)-limit), "", ""})
			break
		}
		acc, err := store.GetAccount(addr)
		if err != nil {
			return err
		}
		balance := "0"
		if acc != nil {
			balance = acc.Balance.String()
		}
		table.Append([]string{addr.Hex(), numeric.ToDecimal(balances[addr]), balance})
	}
	table.Render()
	return nil
}

// checkConservation verifies that everything paid plus the remainder equals
// the configured pool, and returns the paid share in percent.
func checkConservation(round *reward.CompletedRound, pool *uint256.Int) (*big.Float, error) {
	sum, err := numeric.Add(round.Total, round.Remainder)
	if err != nil {
		return nil, err
	}
	if !sum.Eq(pool) {
		return nil, errors.Errorf("paid %s plus remainder %s differs from pool %s",
			numeric.ToDecimal(round.Total), numeric.ToDecimal(round.Remainder), numeric.ToDecimal(pool))
	}
	if pool.IsZero() {
		return new(big.Float), nil
	}
	pct := new(big.Float).SetInt(new(big.Int).Mul(round.Total.ToBig(), big.NewInt(100)))
	return pct.Quo(pct, new(big.Float).SetInt(pool.ToBig())), nil
}
