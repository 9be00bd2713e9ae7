package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/harmony-one/coinbase/internal/cli"
	coinbaseconfig "github.com/harmony-one/coinbase/internal/configs/coinbase"
	"github.com/harmony-one/coinbase/internal/utils"
	"github.com/harmony-one/coinbase/numeric"
)

const tomlConfigVersion = "1.0.0"

const (
	networkLocalnet = "localnet"
	networkCustom   = "custom"
)

type coinbaseConfig struct {
	Version    string
	Network    string
	Reward     []rewardConfig `toml:",omitempty"`
	Store      storeConfig
	Log        logConfig
	Prometheus prometheusConfig
}

// rewardConfig is one reward instance, in force from FromEpoch until the
// next entry. Pools are decimal strings.
type rewardConfig struct {
	FromEpoch        uint64
	TotalPool        string
	CommitteePool    string
	NumShards        int
	BasePercent      int
	LookupPercent    int
	LookupNodes      []string
	MinCommitteeSize int
	MinShardSize     int
	RemainderPolicy  string
	TreasuryAddress  string
}

type storeConfig struct {
	DataDir   string
	CacheSize int
}

type logConfig struct {
	Folder       string
	FileName     string
	RotateSize   int
	RotateCount  int
	RotateMaxAge int
	Verbosity    int
}

type prometheusConfig struct {
	Enabled    bool
	IP         string
	Port       int
	EnablePush bool
	Gateway    string
}

var dumpConfigCmd = &cobra.Command{
	Use:   "dumpconfig [config_file]",
	Short: "dump the default config to file",
	Long:  "dump the default coinbase config to file, using the network preset given with --network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := getDefaultCoinbaseConfigCopy()
		if cli.IsFlagChanged(cmd, networkFlag) {
			config.Network = cli.GetStringFlagValue(cmd, networkFlag)
		}
		if config.Network == networkCustom && len(config.Reward) == 0 {
			config.Reward = []rewardConfig{getDefaultRewardConfigCopy()}
		}
		if err := validateCoinbaseConfig(config); err != nil {
			return err
		}
		if err := writeCoinbaseConfigToFile(config, args[0]); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", args[0])
		return nil
	},
}

func loadCoinbaseConfig(file string) (coinbaseConfig, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return coinbaseConfig{}, err
	}

	var config coinbaseConfig
	if err := toml.Unmarshal(b, &config); err != nil {
		return coinbaseConfig{}, errors.Wrapf(err, "cannot parse config %s", file)
	}
	if config.Version != tomlConfigVersion {
		return coinbaseConfig{}, errors.Errorf("unsupported config version %q", config.Version)
	}
	return config, nil
}

func writeCoinbaseConfigToFile(config coinbaseConfig, file string) error {
	b, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(file, b, 0644)
}

func validateCoinbaseConfig(config coinbaseConfig) error {
	if _, err := config.schedule(); err != nil {
		return err
	}
	if config.Log.Verbosity < 0 {
		return errors.Errorf("invalid log verbosity %d", config.Log.Verbosity)
	}
	if config.Prometheus.Enabled && (config.Prometheus.Port <= 0 || config.Prometheus.Port > 65535) {
		return errors.Errorf("invalid prometheus port %d", config.Prometheus.Port)
	}
	return nil
}

// schedule builds the reward schedule the config describes.
func (config coinbaseConfig) schedule() (coinbaseconfig.Schedule, error) {
	switch config.Network {
	case networkLocalnet:
		return coinbaseconfig.LocalnetSchedule, nil
	case networkCustom:
		upgrades := make([]coinbaseconfig.Upgrade, 0, len(config.Reward))
		for i, rc := range config.Reward {
			instance, err := rc.instance()
			if err != nil {
				return nil, errors.Wrapf(err, "reward entry %d", i)
			}
			upgrades = append(upgrades, coinbaseconfig.Upgrade{Epoch: rc.FromEpoch, Instance: instance})
		}
		return coinbaseconfig.NewEpochSchedule(upgrades...)
	default:
		return nil, errors.Errorf("unknown network %q", config.Network)
	}
}

func (rc rewardConfig) instance() (coinbaseconfig.Instance, error) {
	total, err := numeric.ParseAmount(rc.TotalPool)
	if err != nil {
		return nil, errors.Wrap(err, "TotalPool")
	}
	committee, err := numeric.ParseAmount(rc.CommitteePool)
	if err != nil {
		return nil, errors.Wrap(err, "CommitteePool")
	}
	if rc.NumShards < 0 || rc.BasePercent < 0 || rc.LookupPercent < 0 {
		return nil, errors.Wrap(coinbaseconfig.ErrInvalidInstance, "negative shard count or percent")
	}
	lookups := make([]common.Address, 0, len(rc.LookupNodes))
	for _, s := range rc.LookupNodes {
		if !common.IsHexAddress(s) {
			return nil, errors.Errorf("invalid lookup node address %q", s)
		}
		var added bool
		if lookups, added = utils.AppendIfMissing(lookups, common.HexToAddress(s)); !added {
			return nil, errors.Errorf("duplicate lookup node address %q", s)
		}
	}
	policy, err := coinbaseconfig.ParseRemainderPolicy(rc.RemainderPolicy)
	if err != nil {
		return nil, err
	}
	var treasury common.Address
	if rc.TreasuryAddress != "" {
		if !common.IsHexAddress(rc.TreasuryAddress) {
			return nil, errors.Errorf("invalid treasury address %q", rc.TreasuryAddress)
		}
		treasury = common.HexToAddress(rc.TreasuryAddress)
	}
	return coinbaseconfig.NewInstance(coinbaseconfig.Params{
		TotalPool:        total,
		CommitteePool:    committee,
		NumShards:        uint32(rc.NumShards),
		BasePercent:      uint64(rc.BasePercent),
		LookupPercent:    uint64(rc.LookupPercent),
		LookupNodes:      lookups,
		MinCommitteeSize: rc.MinCommitteeSize,
		MinShardSize:     rc.MinShardSize,
		RemainderPolicy:  policy,
		TreasuryAddress:  treasury,
	})
}
