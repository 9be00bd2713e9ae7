package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/harmony-one/coinbase/internal/cli"
	"github.com/harmony-one/coinbase/internal/utils"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "print the committed balance of an account",
	Long: "print the committed balance and nonce of an account; with --epoch, " +
		"also report whether the coinbase of that epoch was committed",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !common.IsHexAddress(args[0]) {
			return errors.Errorf("invalid address %q", args[0])
		}
		addr := common.HexToAddress(args[0])

		config, err := getCoinbaseConfig(cmd)
		if err != nil {
			return err
		}
		setupLog(config)
		store, err := openStore(config)
		if err != nil {
			return err
		}
		defer store.Close()

		acc, err := store.GetAccount(addr)
		if err != nil {
			return err
		}
		if acc == nil {
			fmt.Printf("%s: no account\n", addr.Hex())
		} else {
			fmt.Printf("%s: balance %s, nonce %d\n", addr.Hex(), acc.Balance, acc.Nonce)
		}

		if cli.IsFlagChanged(cmd, epochFlag) {
			epoch := cli.GetUint64FlagValue(cmd, epochFlag)
			rewarded, err := store.IsEpochRewarded(epoch)
			if err != nil {
				return err
			}
			fmt.Printf("epoch %d rewarded: %v\n", epoch, rewarded)
		}
		return nil
	},
}

func init() {
	if err := cli.RegisterFlags(balanceCmd, []cli.Flag{epochFlag}); err != nil {
		utils.FatalErrMsg(err, "cannot register balance flags")
	}
}
