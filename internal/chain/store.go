package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

//go:generate mockgen -source store.go -destination=mock_chain/store.go

// AccountStore is the part of the account store the coinbase writes through.
// Staged changes stay invisible to readers until CommitDelta succeeds.
type AccountStore interface {
	IsEpochRewarded(epoch uint64) (bool, error)
	StageDelta(addr common.Address, amount *uint256.Int) error
	MarkEpochRewarded(epoch uint64)
	SerializeDelta() ([]byte, error)
	CommitDelta() error
	RevertDelta()
}
