package shard

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	blsPubKey1 = SerializedPublicKey{}
	blsPubKey2 = SerializedPublicKey{}
	blsPubKey3 = SerializedPublicKey{}
)

func init() {
	copy(blsPubKey1[:], []byte("random key 1"))
	copy(blsPubKey2[:], []byte("random key 2"))
	copy(blsPubKey3[:], []byte("random key 3"))
}

func TestAddressDerivation(t *testing.T) {
	m := NewMember(blsPubKey1)
	want := crypto.Keccak256(blsPubKey1[:])[12:]
	assert.Equal(t, want, m.EcdsaAddress.Bytes())
	assert.NotEqual(t, m.EcdsaAddress, NewMember(blsPubKey2).EcdsaAddress)
}

func TestUnitID(t *testing.T) {
	assert.True(t, CommitteeUnitID.IsCommittee())
	assert.False(t, UnitID(0).IsCommittee())
	assert.Equal(t, "committee", CommitteeUnitID.String())
	assert.Equal(t, "shard-3", UnitID(3).String())

	tests := []struct {
		in    string
		want  UnitID
		valid bool
	}{
		{"committee", CommitteeUnitID, true},
		{"shard-2", 2, true},
		{"5", 5, true},
		{"4294967295", 0, false},
		{"shard-x", 0, false},
		{"-1", 0, false},
	}
	for _, test := range tests {
		var id UnitID
		err := id.UnmarshalText([]byte(test.in))
		if !test.valid {
			assert.Error(t, err, test.in)
			continue
		}
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, id)
		text, err := id.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, test.want.String(), string(text))
	}
}

func TestMemberListHash(t *testing.T) {
	l1 := NewMemberList([]SerializedPublicKey{blsPubKey1, blsPubKey2, blsPubKey3})
	l2 := NewMemberList([]SerializedPublicKey{blsPubKey2, blsPubKey1, blsPubKey3})

	assert.NotEqual(t, l1.Hash(), l2.Hash(), "member order must change the hash")
	assert.Equal(t, l1.Hash(), l1.DeepCopy().Hash())
}

func TestPublicKeyJSON(t *testing.T) {
	m := NewMember(blsPubKey3)
	b, err := json.Marshal(m)
	require.NoError(t, err)

	var back Member
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, m, back)

	_, err = PublicKeyFromHex("0x1234")
	assert.Error(t, err)
}
