package shard

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// PublicKeySize is the size of a compressed BLS public key in bytes.
const PublicKeySize = 48

// CommitteeUnitID is the reward unit id of the top-level committee. Shard
// units are numbered from 0, so this id never collides with a shard index.
const CommitteeUnitID UnitID = math.MaxUint32

var (
	errPublicKeySize = errors.New("invalid public key size")
)

// SerializedPublicKey is a compressed BLS public key.
type SerializedPublicKey [PublicKeySize]byte

// Hex returns the 0x-less hex form of the key.
func (pk SerializedPublicKey) Hex() string {
	return hex.EncodeToString(pk[:])
}

// Address derives the account address the key earns rewards into.
func (pk SerializedPublicKey) Address() common.Address {
	return common.BytesToAddress(crypto.Keccak256(pk[:])[12:])
}

// MarshalText ..
func (pk SerializedPublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.Hex()), nil
}

// UnmarshalText ..
func (pk *SerializedPublicKey) UnmarshalText(text []byte) error {
	key, err := PublicKeyFromHex(string(text))
	if err != nil {
		return err
	}
	*pk = key
	return nil
}

// PublicKeyFromHex parses a hex encoded key, with or without the 0x prefix.
func PublicKeyFromHex(s string) (SerializedPublicKey, error) {
	key := SerializedPublicKey{}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return key, errors.Wrapf(err, "cannot decode public key %q", s)
	}
	if len(b) != PublicKeySize {
		return key, errors.Wrapf(errPublicKeySize, "got %d bytes", len(b))
	}
	copy(key[:], b)
	return key, nil
}

// UnitID identifies a reward unit inside one epoch.
type UnitID uint32

// IsCommittee reports whether id is the top-level committee unit.
func (id UnitID) IsCommittee() bool {
	return id == CommitteeUnitID
}

func (id UnitID) String() string {
	if id.IsCommittee() {
		return "committee"
	}
	return fmt.Sprintf("shard-%d", uint32(id))
}

// ParseUnitID parses "committee", "shard-N" or a bare shard number.
func ParseUnitID(s string) (UnitID, error) {
	if s == "committee" {
		return CommitteeUnitID, nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "shard-"), 10, 32)
	if err != nil || UnitID(n) == CommitteeUnitID {
		return 0, errors.Errorf("invalid unit id %q", s)
	}
	return UnitID(n), nil
}

// MarshalText ..
func (id UnitID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText ..
func (id *UnitID) UnmarshalText(text []byte) error {
	parsed, err := ParseUnitID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Member is one consensus participant of a reward unit.
type Member struct {
	BLSPublicKey SerializedPublicKey `json:"bls-pubkey"`
	EcdsaAddress common.Address      `json:"ecdsa-address"`
}

// NewMember returns the member for key with its derived earning address.
func NewMember(key SerializedPublicKey) Member {
	return Member{BLSPublicKey: key, EcdsaAddress: key.Address()}
}

// MemberList is the ordered membership of a reward unit; bitmaps are
// index-aligned with it.
type MemberList []Member

// NewMemberList derives a member list from the given keys, preserving order.
func NewMemberList(keys []SerializedPublicKey) MemberList {
	l := make(MemberList, len(keys))
	for i := range keys {
		l[i] = NewMember(keys[i])
	}
	return l
}

func (l MemberList) String() string {
	blsKeys := make([]string, len(l))
	for i, k := range l {
		blsKeys[i] = k.BLSPublicKey.Hex()
	}
	s, _ := json.Marshal(blsKeys)
	return string(s)
}

// DeepCopy returns a copy that shares no memory with l.
func (l MemberList) DeepCopy() MemberList {
	return append(MemberList{}, l...)
}

// Addresses returns the earning addresses in member order.
func (l MemberList) Addresses() []common.Address {
	addrs := make([]common.Address, len(l))
	for i := range l {
		addrs[i] = l[i].EcdsaAddress
	}
	return addrs
}

// Hash is the Keccak256 of the RLP encoded list; order matters.
func (l MemberList) Hash() common.Hash {
	b, err := rlp.EncodeToBytes(l)
	if err != nil {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(b)
}
