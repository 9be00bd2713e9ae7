package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/harmony-one/coinbase/consensus/participation"
	"github.com/harmony-one/coinbase/internal/chain"
	"github.com/harmony-one/coinbase/internal/cli"
	"github.com/harmony-one/coinbase/shard"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "pay the coinbase of an epoch from recorded participation",
	Long: "run reads the participation of every unit of an epoch from a JSON file, " +
		"pays the epoch and commits the rewards to the account store",
	Args: cobra.NoArgs,
	RunE: runCoinbase,
}

var runFlags = []cli.Flag{
	unitsFlag,
	epochFlag,
}

var unitsFlag = cli.StringFlag{
	Name:     "units",
	Usage:    "JSON file with the participation of every unit",
	DefValue: "",
}

// unitsFile is the participation of one epoch.
type unitsFile struct {
	Epoch uint64      `json:"epoch"`
	Units []unitEntry `json:"units"`
}

type unitEntry struct {
	Unit     shard.UnitID                `json:"unit"`
	Members  []shard.SerializedPublicKey `json:"members"`
	Proposal []bool                      `json:"proposal"`
	Final    []bool                      `json:"final"`
}

func registerRunFlags() error {
	if err := cli.RegisterFlags(runCmd, runFlags); err != nil {
		return err
	}
	return runCmd.MarkFlagRequired(unitsFlag.Name)
}

func loadUnitsFile(file string) (unitsFile, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return unitsFile{}, err
	}
	var units unitsFile
	if err := json.Unmarshal(b, &units); err != nil {
		return unitsFile{}, errors.Wrapf(err, "cannot parse units file %s", file)
	}
	return units, nil
}

// recordUnits records every entry of units into ledger under epoch.
func recordUnits(ledger *participation.Ledger, units unitsFile, epoch uint64) error {
	for i, u := range units.Units {
		members := shard.NewMemberList(u.Members)
		if err := ledger.Record(u.Unit, u.Proposal, u.Final, members, epoch); err != nil {
			return errors.Wrapf(err, "units[%d] (%s)", i, u.Unit)
		}
	}
	return nil
}

func runCoinbase(cmd *cobra.Command, args []string) error {
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
	units, err := loadUnitsFile(cli.GetStringFlagValue(cmd, unitsFlag))
	if err != nil {
		return err
	}
	epoch := units.Epoch
	if cli.IsFlagChanged(cmd, epochFlag) {
		epoch = cli.GetUint64FlagValue(cmd, epochFlag)
	}

	ledger := participation.NewLedger()
	if err := recordUnits(ledger, units, epoch); err != nil {
		return err
	}

	store, err := openStore(config)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cb := chain.NewCoinbase(ledger, store, schedule)
	if err := cb.Run(ctx, epoch); err != nil {
		return err
	}
	round := cb.LastRound()
	if round == nil {
		fmt.Printf("Epoch %d was already rewarded\n", epoch)
		return nil
	}
	printUnits(os.Stdout, round)
	root, err := store.LastDeltaRoot()
	if err != nil {
		return err
	}
	fmt.Printf("Epoch %d committed, delta %s\n", epoch, root.Hex())
	return nil
}
