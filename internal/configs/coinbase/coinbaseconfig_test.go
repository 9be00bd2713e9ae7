package coinbaseconfig

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmony-one/coinbase/numeric"
)

func validParams() Params {
	return Params{
		TotalPool:     numeric.NewAmount(5000),
		CommitteePool: numeric.NewAmount(1000),
		NumShards:     1,
		BasePercent:   50,
	}
}

func TestNewInstance(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Params)
		valid  bool
	}{
		{"valid", func(p *Params) {}, true},
		{"committee exceeds total", func(p *Params) { p.CommitteePool = numeric.NewAmount(5001) }, false},
		{"committee equals total", func(p *Params) { p.CommitteePool = numeric.NewAmount(5000) }, true},
		{"no shards", func(p *Params) { p.NumShards = 0 }, false},
		{"percent overflow", func(p *Params) { p.BasePercent, p.LookupPercent = 90, 11 }, false},
		{"negative min size", func(p *Params) { p.MinShardSize = -1 }, false},
		{"missing pool", func(p *Params) { p.TotalPool = nil }, false},
		{"unknown policy", func(p *Params) { p.RemainderPolicy = "carry" }, false},
		{"treasury without address", func(p *Params) { p.RemainderPolicy = PolicyTreasury }, false},
		{"treasury with address", func(p *Params) {
			p.RemainderPolicy = PolicyTreasury
			p.TreasuryAddress = common.HexToAddress("0x1234")
		}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := validParams()
			test.modify(&p)
			in, err := NewInstance(p)
			if !test.valid {
				assert.True(t, errors.Is(err, ErrInvalidInstance), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p.NumShards, in.NumShards())
		})
	}
}

func TestInstanceIsImmutable(t *testing.T) {
	p := validParams()
	p.LookupNodes = []common.Address{{0x1}}
	in := MustNewInstance(p)

	p.TotalPool.SetUint64(1)
	p.LookupNodes[0] = common.Address{0x2}
	in.TotalPool().SetUint64(2)
	in.LookupNodes()[0] = common.Address{0x3}

	assert.Equal(t, uint64(5000), in.TotalPool().Uint64())
	assert.Equal(t, common.Address{0x1}, in.LookupNodes()[0])
	assert.Equal(t, PolicyBurn, in.RemainderPolicy())
}

func TestEpochSchedule(t *testing.T) {
	v0 := MustNewInstance(validParams())
	p := validParams()
	p.NumShards = 4
	v1 := MustNewInstance(p)

	s, err := NewEpochSchedule(Upgrade{Epoch: 10, Instance: v1}, Upgrade{Epoch: 0, Instance: v0})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), s.InstanceForEpoch(0).NumShards())
	assert.Equal(t, uint32(1), s.InstanceForEpoch(9).NumShards())
	assert.Equal(t, uint32(4), s.InstanceForEpoch(10).NumShards())
	assert.Equal(t, uint32(4), s.InstanceForEpoch(1<<40).NumShards())

	_, err = NewEpochSchedule(Upgrade{Epoch: 3, Instance: v0})
	assert.Error(t, err)
	_, err = NewEpochSchedule(Upgrade{Epoch: 0, Instance: v0}, Upgrade{Epoch: 0, Instance: v1})
	assert.Error(t, err)
	_, err = NewEpochSchedule()
	assert.Error(t, err)
}

func TestLocalnetInstanceForEpoch(t *testing.T) {
	tests := []struct {
		epoch    uint64
		instance Instance
	}{
		{0, localnetV0},
		{9, localnetV0},
		{10, localnetV1},
		{365, localnetV1},
	}
	for _, test := range tests {
		in := LocalnetSchedule.InstanceForEpoch(test.epoch)
		if in.NumShards() != test.instance.NumShards() || in.BasePercent() != test.instance.BasePercent() {
			t.Errorf("can't get the right instance for epoch: %v\n", test.epoch)
		}
	}
}

func TestParseRemainderPolicy(t *testing.T) {
	p, err := ParseRemainderPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyBurn, p)
	p, err = ParseRemainderPolicy("treasury")
	require.NoError(t, err)
	assert.Equal(t, PolicyTreasury, p)
	_, err = ParseRemainderPolicy("carry")
	assert.Error(t, err)
}
