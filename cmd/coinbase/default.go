package main

var defaultConfig = coinbaseConfig{
	Version: tomlConfigVersion,
	Network: networkLocalnet,
	Store: storeConfig{
		DataDir:   "./coinbase_db",
		CacheSize: 4096,
	},
	Log: logConfig{
		Folder:       "./latest",
		FileName:     "coinbase.log",
		RotateSize:   100,
		RotateCount:  0,
		RotateMaxAge: 0,
		Verbosity:    3,
	},
	Prometheus: prometheusConfig{
		Enabled:    false,
		IP:         "0.0.0.0",
		Port:       9900,
		EnablePush: false,
		Gateway:    "https://gateway.harmony.one",
	},
}

// defaultRewardConfig matches the first localnet instance.
var defaultRewardConfig = rewardConfig{
	FromEpoch:        0,
	TotalPool:        "5_000_000000000000000000",
	CommitteePool:    "1_000_000000000000000000",
	NumShards:        2,
	BasePercent:      50,
	LookupPercent:    0,
	LookupNodes:      []string{},
	MinCommitteeSize: 4,
	MinShardSize:     4,
	RemainderPolicy:  "burn",
	TreasuryAddress:  "",
}

func getDefaultCoinbaseConfigCopy() coinbaseConfig {
	config := defaultConfig
	if defaultConfig.Reward != nil {
		config.Reward = append([]rewardConfig{}, defaultConfig.Reward...)
	}
	return config
}

func getDefaultRewardConfigCopy() rewardConfig {
	config := defaultRewardConfig
	config.LookupNodes = append([]string{}, defaultRewardConfig.LookupNodes...)
	return config
}
