package state

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

var (
	accountPrefix   = []byte("ac")
	rewardedPrefix  = []byte("cr")
	lastDeltaKey    = []byte("last-delta-root")
	rewardedMarkVal = []byte{1}
)

// accountKey = accountPrefix + address
func accountKey(addr common.Address) []byte {
	return append(append([]byte{}, accountPrefix...), addr.Bytes()...)
}

// rewardedKey = rewardedPrefix + epoch (uint64 big endian)
func rewardedKey(epoch uint64) []byte {
	key := make([]byte, len(rewardedPrefix)+8)
	copy(key, rewardedPrefix)
	binary.BigEndian.PutUint64(key[len(rewardedPrefix):], epoch)
	return key
}
