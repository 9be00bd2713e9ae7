package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	prom "github.com/harmony-one/coinbase/api/service/prometheus"
	"github.com/harmony-one/coinbase/core/state"
	"github.com/harmony-one/coinbase/internal/cli"
	"github.com/harmony-one/coinbase/internal/utils"
)

// Version string variables
var (
	version string
	builtBy string
	builtAt string
	commit  string
)

var rootCmd = &cobra.Command{
	Use:   "coinbase",
	Short: "compute and commit epoch coinbase rewards",
	Long: "coinbase turns the consensus participation of an epoch into account " +
		"balance changes and commits them to the account store in one step",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version of the coinbase binary",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stderr, getCoinbaseVersion())
	},
}

func init() {
	cli.SetParseErrorHandle(func(err error) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(128)
	})

	rootCmd.AddCommand(simulateCmd, runCmd, balanceCmd, dumpConfigCmd, versionCmd)

	if err := cli.RegisterPFlags(rootCmd, rootFlags()); err != nil {
		utils.FatalErrMsg(err, "cannot register root flags")
	}
	if err := registerSimulateFlags(); err != nil {
		utils.FatalErrMsg(err, "cannot register simulate flags")
	}
	if err := registerRunFlags(); err != nil {
		utils.FatalErrMsg(err, "cannot register run flags")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getCoinbaseVersion() string {
	return fmt.Sprintf("Harmony coinbase (C) 2023. %v, version %v-%v (%v %v)",
		filepath.Base(os.Args[0]), version, commit, builtBy, builtAt)
}

func getCoinbaseConfig(cmd *cobra.Command) (coinbaseConfig, error) {
	var (
		config coinbaseConfig
		err    error
	)
	if cli.IsFlagChanged(cmd, configFlag) {
		config, err = loadCoinbaseConfig(cli.GetStringFlagValue(cmd, configFlag))
		if err != nil {
			return coinbaseConfig{}, err
		}
	} else {
		config = getDefaultCoinbaseConfigCopy()
	}
	applyRootFlags(cmd, &config)

	if err := validateCoinbaseConfig(config); err != nil {
		return coinbaseConfig{}, err
	}
	return config, nil
}

func setupLog(config coinbaseConfig) {
	if config.Log.FileName != "" {
		logPath := filepath.Join(config.Log.Folder, config.Log.FileName)
		utils.AddLogFile(logPath, config.Log.RotateSize, config.Log.RotateCount, config.Log.RotateMaxAge)
	}
	utils.SetLogVerbosity(config.Log.Verbosity)
	utils.SetLogContext("network", config.Network)
}

func setupPrometheus(config coinbaseConfig) *prom.Service {
	svc := prom.NewService(prom.Config{
		Enabled:    config.Prometheus.Enabled,
		IP:         config.Prometheus.IP,
		Port:       config.Prometheus.Port,
		EnablePush: config.Prometheus.EnablePush,
		Gateway:    config.Prometheus.Gateway,
		Job:        "coinbase/" + config.Network,
		Instance:   fmt.Sprintf("%s:%d", config.Prometheus.IP, config.Prometheus.Port),
	})
	svc.Start()
	return svc
}

func openStore(config coinbaseConfig) (*state.Store, error) {
	return state.Open(config.Store.DataDir, config.Store.CacheSize)
}
