package main

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmony-one/coinbase/consensus/participation"
	"github.com/harmony-one/coinbase/consensus/reward"
	coinbaseconfig "github.com/harmony-one/coinbase/internal/configs/coinbase"
	testutils "github.com/harmony-one/coinbase/internal/utils/testing"
	"github.com/harmony-one/coinbase/numeric"
	"github.com/harmony-one/coinbase/shard"
)

type testCfgOpt func(config *coinbaseConfig)

func makeTestConfig(opt testCfgOpt) coinbaseConfig {
	cfg := getDefaultCoinbaseConfigCopy()
	if opt != nil {
		opt(&cfg)
	}
	return cfg
}

func customConfig(config *coinbaseConfig) {
	config.Network = networkCustom
	v0 := getDefaultRewardConfigCopy()
	v1 := getDefaultRewardConfigCopy()
	v1.FromEpoch = 100
	v1.NumShards = 4
	v1.LookupPercent = 5
	v1.LookupNodes = []string{"0x1111111111111111111111111111111111111111"}
	v1.RemainderPolicy = "treasury"
	v1.TreasuryAddress = "0x2222222222222222222222222222222222222222"
	config.Reward = []rewardConfig{v0, v1}
}

func TestPersistConfig(t *testing.T) {
	testDir := t.TempDir()

	tests := []struct {
		config coinbaseConfig
	}{
		{
			config: makeTestConfig(nil),
		},
		{
			config: makeTestConfig(customConfig),
		},
		{
			config: makeTestConfig(func(cfg *coinbaseConfig) {
				cfg.Prometheus.Enabled = true
				cfg.Log.Verbosity = 5
				cfg.Store.DataDir = "/var/lib/coinbase"
			}),
		},
	}
	for i, test := range tests {
		file := filepath.Join(testDir, fmt.Sprintf("%d.conf", i))

		if err := writeCoinbaseConfigToFile(test.config, file); err != nil {
			t.Fatal(err)
		}
		config, err := loadCoinbaseConfig(file)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(config, test.config) {
			t.Errorf("Test %v: unexpected config \n\t%+v \n\t%+v", i, config, test.config)
		}
	}
}

func TestLoadConfigRejectsVersion(t *testing.T) {
	file := filepath.Join(t.TempDir(), "old.conf")
	require.NoError(t, writeCoinbaseConfigToFile(makeTestConfig(func(cfg *coinbaseConfig) {
		cfg.Version = "0.0.1"
	}), file))
	_, err := loadCoinbaseConfig(file)
	assert.Error(t, err)
}

func TestCustomSchedule(t *testing.T) {
	schedule, err := makeTestConfig(customConfig).schedule()
	require.NoError(t, err)

	v0 := schedule.InstanceForEpoch(99)
	assert.Equal(t, uint32(2), v0.NumShards())
	assert.Equal(t, coinbaseconfig.PolicyBurn, v0.RemainderPolicy())
	assert.Equal(t, "5000000000000000000000", numeric.ToDecimal(v0.TotalPool()))

	v1 := schedule.InstanceForEpoch(100)
	assert.Equal(t, uint32(4), v1.NumShards())
	assert.Equal(t, uint64(5), v1.LookupPercent())
	assert.Equal(t, []common.Address{common.HexToAddress("0x1111111111111111111111111111111111111111")}, v1.LookupNodes())
	assert.Equal(t, coinbaseconfig.PolicyTreasury, v1.RemainderPolicy())
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name  string
		opt   testCfgOpt
		valid bool
	}{
		{"default", nil, true},
		{"custom", customConfig, true},
		{"unknown network", func(cfg *coinbaseConfig) { cfg.Network = "mainnet" }, false},
		{"custom without rewards", func(cfg *coinbaseConfig) { cfg.Network = networkCustom }, false},
		{"bad pool", func(cfg *coinbaseConfig) {
			customConfig(cfg)
			cfg.Reward[0].TotalPool = "lots"
		}, false},
		{"committee above total", func(cfg *coinbaseConfig) {
			customConfig(cfg)
			cfg.Reward[0].CommitteePool = "6_000_000000000000000000"
		}, false},
		{"negative shards", func(cfg *coinbaseConfig) {
			customConfig(cfg)
			cfg.Reward[0].NumShards = -1
		}, false},
		{"duplicate lookup node", func(cfg *coinbaseConfig) {
			customConfig(cfg)
			cfg.Reward[1].LookupNodes = append(cfg.Reward[1].LookupNodes, cfg.Reward[1].LookupNodes[0])
		}, false},
		{"bad lookup node", func(cfg *coinbaseConfig) {
			customConfig(cfg)
			cfg.Reward[1].LookupNodes = []string{"one"}
		}, false},
		{"treasury without address", func(cfg *coinbaseConfig) {
			customConfig(cfg)
			cfg.Reward[1].TreasuryAddress = ""
		}, false},
		{"first upgrade not at genesis", func(cfg *coinbaseConfig) {
			customConfig(cfg)
			cfg.Reward = cfg.Reward[1:]
		}, false},
		{"bad prometheus port", func(cfg *coinbaseConfig) {
			cfg.Prometheus.Enabled = true
			cfg.Prometheus.Port = 70000
		}, false},
	}
	for _, test := range tests {
		err := validateCoinbaseConfig(makeTestConfig(test.opt))
		if test.valid {
			assert.NoError(t, err, test.name)
		} else {
			assert.Error(t, err, test.name)
		}
	}
}

func TestDefaultConfigCopyIsIndependent(t *testing.T) {
	cfg := makeTestConfig(customConfig)
	cfg.Reward[0].LookupNodes = append(cfg.Reward[0].LookupNodes, "0x33")
	assert.Nil(t, defaultConfig.Reward)
	assert.Empty(t, defaultRewardConfig.LookupNodes)
}

const testUnitsJSON = `{
  "epoch": 3,
  "units": [
    {
      "unit": "committee",
      "members": ["%s", "%s"],
      "proposal": [true, true],
      "final": [true, false]
    },
    {
      "unit": "shard-0",
      "members": ["%s"],
      "proposal": [true],
      "final": [true]
    }
  ]
}`

func testKey(b byte) string {
	var key shard.SerializedPublicKey
	for i := range key {
		key[i] = b
	}
	return "0x" + key.Hex()
}

func TestLoadUnitsFile(t *testing.T) {
	content := fmt.Sprintf(testUnitsJSON, testKey(1), testKey(2), testKey(3))
	f := testutils.NewTempFileWithContents(t, []byte(content))

	units, err := loadUnitsFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), units.Epoch)
	require.Len(t, units.Units, 2)
	assert.Equal(t, shard.CommitteeUnitID, units.Units[0].Unit)
	assert.Equal(t, shard.UnitID(0), units.Units[1].Unit)

	ledger := participation.NewLedger()
	require.NoError(t, recordUnits(ledger, units, units.Epoch))
	all, err := ledger.AllUnitsFor(3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), all[0].QualifiedCount())
	assert.Equal(t, all[0].Members[1].BLSPublicKey.Hex(), testKey(2)[2:])
}

func TestRecordUnitsRejectsMismatch(t *testing.T) {
	units := unitsFile{Units: []unitEntry{{
		Unit:     0,
		Members:  []shard.SerializedPublicKey{{0x1}},
		Proposal: []bool{true, true},
		Final:    []bool{true},
	}}}
	err := recordUnits(participation.NewLedger(), units, 1)
	assert.Error(t, err)
}

func TestCheckConservation(t *testing.T) {
	round := &reward.CompletedRound{Total: numeric.NewAmount(975), Remainder: numeric.NewAmount(25)}
	pct, err := checkConservation(round, numeric.NewAmount(1000))
	require.NoError(t, err)
	assert.Equal(t, "97.50", pct.Text('f', 2))

	_, err = checkConservation(round, numeric.NewAmount(1001))
	assert.Error(t, err)
}

func TestLoadUnitsFileRejectsGarbage(t *testing.T) {
	f := testutils.NewTempFileWithContents(t, []byte(`{"epoch": "three"}`))
	_, err := loadUnitsFile(f.Name())
	assert.Error(t, err)
}
