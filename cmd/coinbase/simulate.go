package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/harmony-one/coinbase/consensus/participation"
	"github.com/harmony-one/coinbase/core/state"
	"github.com/harmony-one/coinbase/internal/chain"
	"github.com/harmony-one/coinbase/internal/cli"
	coinbaseconfig "github.com/harmony-one/coinbase/internal/configs/coinbase"
	"github.com/harmony-one/coinbase/shard"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "pay the coinbase of an epoch with random committees",
	Long: "simulate records a committee and every shard of the schedule with random " +
		"participation, pays the epoch, and checks that paid amounts plus the " +
		"remainder equal the configured pool",
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

var simulateFlags = []cli.Flag{
	epochFlag,
	seedFlag,
	committeeSizeFlag,
	shardSizeFlag,
	persistFlag,
	showAccountsFlag,
}

var (
	epochFlag = cli.Uint64Flag{
		Name:     "epoch",
		Usage:    "epoch to pay",
		DefValue: 1,
	}
	seedFlag = cli.IntFlag{
		Name:     "seed",
		Usage:    "random seed, 0 picks one from the clock",
		DefValue: 0,
	}
	committeeSizeFlag = cli.IntFlag{
		Name:     "committee.size",
		Usage:    "committee size, 0 picks a random size",
		DefValue: 0,
	}
	shardSizeFlag = cli.IntFlag{
		Name:     "shard.size",
		Usage:    "shard size, 0 picks a random size per shard",
		DefValue: 0,
	}
	persistFlag = cli.BoolFlag{
		Name:     "persist",
		Usage:    "write rewards to the account store at --datadir instead of memory",
		DefValue: false,
	}
	showAccountsFlag = cli.IntFlag{
		Name:     "accounts",
		Usage:    "number of rewarded accounts to print",
		DefValue: 20,
	}
)

func registerSimulateFlags() error {
	return cli.RegisterFlags(simulateCmd, simulateFlags)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	config, err := getCoinbaseConfig(cmd)
	if err != nil {
		return err
	}
	setupLog(config)
	svc := setupPrometheus(config)
	defer svc.Stop()

	schedule, err := config.schedule()
	if err != nil {
		return err
	}
	epoch := cli.GetUint64FlagValue(cmd, epochFlag)
	seed := int64(cli.GetIntFlagValue(cmd, seedFlag))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *state.Store
	if cli.GetBoolFlagValue(cmd, persistFlag) {
		store, err = openStore(config)
	} else {
		store, err = state.NewMemory()
	}
	if err != nil {
		return err
	}
	defer store.Close()

	instance := schedule.InstanceForEpoch(epoch)
	ledger := participation.NewLedger()
	sim := simulation{
		rand:          rand.New(rand.NewSource(seed)),
		committeeSize: cli.GetIntFlagValue(cmd, committeeSizeFlag),
		shardSize:     cli.GetIntFlagValue(cmd, shardSizeFlag),
	}
	if err := sim.record(ledger, instance, epoch); err != nil {
		return err
	}

	cb := chain.NewCoinbase(ledger, store, schedule)
	if err := cb.Run(context.Background(), epoch); err != nil {
		return err
	}
	round := cb.LastRound()
	if round == nil {
		fmt.Printf("Epoch %d was already rewarded\n", epoch)
		return nil
	}

	fmt.Printf("Epoch %d, seed %d\n", epoch, seed)
	printUnits(os.Stdout, round)
	if err := printAccounts(os.Stdout, round, store, cli.GetIntFlagValue(cmd, showAccountsFlag)); err != nil {
		return err
	}
	pct, err := checkConservation(round, instance.TotalPool())
	if err != nil {
		return err
	}
	fmt.Printf("Paid %s%% of the pool, lookup share %d%%\n",
		pct.Text('f', 4), instance.LookupPercent())
	return nil
}

type simulation struct {
	rand          *rand.Rand
	committeeSize int
	shardSize     int
}

// sizes follow the ranges of a small network: committees of 10 to 29
// members and shards of 20 to 119.
func (s simulation) size(fixed, base, spread int) int {
	if fixed > 0 {
		return fixed
	}
	return base + s.rand.Intn(spread)
}

func (s simulation) members(n int) shard.MemberList {
	keys := make([]shard.SerializedPublicKey, n)
	for i := range keys {
		s.rand.Read(keys[i][:])
	}
	return shard.NewMemberList(keys)
}

func (s simulation) bits(n int) []bool {
	b := make([]bool, n)
	for i := range b {
		b[i] = s.rand.Intn(2) == 1
	}
	return b
}

func (s simulation) record(ledger *participation.Ledger, instance coinbaseconfig.Instance, epoch uint64) error {
	n := s.size(s.committeeSize, 10, 20)
	if err := ledger.Record(shard.CommitteeUnitID, s.bits(n), s.bits(n), s.members(n), epoch); err != nil {
		return errors.Wrap(err, "cannot record committee")
	}
	for id := uint32(0); id < instance.NumShards(); id++ {
		n := s.size(s.shardSize, 20, 100)
		if err := ledger.Record(shard.UnitID(id), s.bits(n), s.bits(n), s.members(n), epoch); err != nil {
			return errors.Wrapf(err, "cannot record shard %d", id)
		}
	}
	return nil
}
