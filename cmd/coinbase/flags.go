package main

import (
	"github.com/spf13/cobra"

	"github.com/harmony-one/coinbase/internal/cli"
)

var (
	configFlag = cli.StringFlag{
		Name:      "config",
		Usage:     "load coinbase config from the config toml file.",
		Shorthand: "c",
		DefValue:  "",
	}
	networkFlag = cli.StringFlag{
		Name:     "network",
		Usage:    "reward schedule preset (localnet, custom)",
		DefValue: defaultConfig.Network,
	}
	dataDirFlag = cli.StringFlag{
		Name:     "datadir",
		Usage:    "directory of the account store",
		DefValue: defaultConfig.Store.DataDir,
	}
)

var logFlags = []cli.Flag{
	logFolderFlag,
	logRotateSizeFlag,
	logVerbosityFlag,
	legacyVerbosityFlag,
}

var (
	logFolderFlag = cli.StringFlag{
		Name:     "log.dir",
		Usage:    "directory path to put rotation logs",
		DefValue: defaultConfig.Log.Folder,
	}
	logRotateSizeFlag = cli.IntFlag{
		Name:     "log.max-size",
		Usage:    "rotation log size in megabytes",
		DefValue: defaultConfig.Log.RotateSize,
	}
	logVerbosityFlag = cli.IntFlag{
		Name:      "log.verb",
		Shorthand: "v",
		Usage:     "logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		DefValue:  defaultConfig.Log.Verbosity,
	}
	legacyVerbosityFlag = cli.IntFlag{
		Name:       "verbosity",
		Usage:      "logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		DefValue:   defaultConfig.Log.Verbosity,
		Deprecated: "use --log.verb",
	}
)

var prometheusFlags = []cli.Flag{
	prometheusEnabledFlag,
	prometheusIPFlag,
	prometheusPortFlag,
}

var (
	prometheusEnabledFlag = cli.BoolFlag{
		Name:     "prometheus",
		Usage:    "enable HTTP server for Prometheus metrics",
		DefValue: defaultConfig.Prometheus.Enabled,
	}
	prometheusIPFlag = cli.StringFlag{
		Name:     "prometheus.addr",
		Usage:    "Prometheus HTTP server listen address",
		DefValue: defaultConfig.Prometheus.IP,
	}
	prometheusPortFlag = cli.IntFlag{
		Name:     "prometheus.port",
		Usage:    "Prometheus HTTP server listen port",
		DefValue: defaultConfig.Prometheus.Port,
	}
)

func rootFlags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, configFlag, networkFlag, dataDirFlag)
	flags = append(flags, logFlags...)
	flags = append(flags, prometheusFlags...)
	return flags
}

func applyRootFlags(cmd *cobra.Command, config *coinbaseConfig) {
	if cli.IsFlagChanged(cmd, networkFlag) {
		config.Network = cli.GetStringFlagValue(cmd, networkFlag)
	}
	if cli.IsFlagChanged(cmd, dataDirFlag) {
		config.Store.DataDir = cli.GetStringFlagValue(cmd, dataDirFlag)
	}
	applyLogFlags(cmd, config)
	applyPrometheusFlags(cmd, config)
}

func applyLogFlags(cmd *cobra.Command, config *coinbaseConfig) {
	if cli.IsFlagChanged(cmd, logFolderFlag) {
		config.Log.Folder = cli.GetStringFlagValue(cmd, logFolderFlag)
	}
	if cli.IsFlagChanged(cmd, logRotateSizeFlag) {
		config.Log.RotateSize = cli.GetIntFlagValue(cmd, logRotateSizeFlag)
	}
	if cli.IsFlagChanged(cmd, logVerbosityFlag) {
		config.Log.Verbosity = cli.GetIntFlagValue(cmd, logVerbosityFlag)
	} else if cli.IsFlagChanged(cmd, legacyVerbosityFlag) {
		config.Log.Verbosity = cli.GetIntFlagValue(cmd, legacyVerbosityFlag)
	}
}

func applyPrometheusFlags(cmd *cobra.Command, config *coinbaseConfig) {
	if cli.IsFlagChanged(cmd, prometheusEnabledFlag) {
		config.Prometheus.Enabled = cli.GetBoolFlagValue(cmd, prometheusEnabledFlag)
	}
	if cli.IsFlagChanged(cmd, prometheusIPFlag) {
		config.Prometheus.IP = cli.GetStringFlagValue(cmd, prometheusIPFlag)
	}
	if cli.IsFlagChanged(cmd, prometheusPortFlag) {
		config.Prometheus.Port = cli.GetIntFlagValue(cmd, prometheusPortFlag)
	}
}
