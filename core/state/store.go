// Package state provides the account store: committed accounts persisted in
// leveldb, and a delta layer where pending balance changes are staged before
// being committed in one batch or reverted.
package state

import (
	"bytes"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/harmony-one/coinbase/internal/utils"
	"github.com/harmony-one/coinbase/internal/utils/lrucache"
)

const defaultCacheSize = 4096

var (
	// ErrDeltaNotSerialized is returned by CommitDelta when the delta was not
	// serialized first.
	ErrDeltaNotSerialized = errors.New("delta must be serialized before commit")
	// ErrDeltaChanged is returned by CommitDelta when the delta no longer
	// matches what SerializeDelta produced.
	ErrDeltaChanged = errors.New("delta changed after serialization")
)

// Account is the stored form of an account.
type Account struct {
	Nonce   uint64
	Balance *big.Int
}

// Copy ..
func (a *Account) Copy() *Account {
	return &Account{Nonce: a.Nonce, Balance: new(big.Int).Set(a.Balance)}
}

type deltaAccount struct {
	Address common.Address
	Account Account
}

// deltaBlob is the serialized form of a delta.
type deltaBlob struct {
	Accounts []deltaAccount
	Epochs   []uint64
}

// Store is the account store. Readers of committed state never observe the
// delta; the delta becomes visible atomically on CommitDelta.
type Store struct {
	db    Database
	clean *lrucache.Cache[common.Address, *Account] // committed accounts

	// lock guards the committed view: the clean cache and writes to db.
	lock sync.RWMutex

	// deltaLock guards the delta. It is always taken before lock.
	deltaLock  sync.Mutex
	dirty      map[common.Address]*Account
	rewarded   map[uint64]struct{}
	serialized *common.Hash

	log zerolog.Logger
}

// New creates a store over db.
func New(db Database, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	clean, err := lrucache.NewCache[common.Address, *Account](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:       db,
		clean:    clean,
		dirty:    make(map[common.Address]*Account),
		rewarded: make(map[uint64]struct{}),
		log:      utils.Logger().With().Str("module", "account store").Logger(),
	}, nil
}

// Open opens or creates a leveldb backed store at path.
func Open(path string, cacheSize int) (*Store, error) {
	utils.Logger().Info().Str("path", path).Msg("account store folder")
	db, err := newLvlDB(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open account store at %s", path)
	}
	return New(db, cacheSize)
}

// NewMemory returns a store kept in memory. Used for simulation and tests.
func NewMemory() (*Store, error) {
	db, err := newMemDB()
	if err != nil {
		return nil, err
	}
	return New(db, defaultCacheSize)
}

// Close closes the underlying database. The delta is dropped.
func (s *Store) Close() error {
	s.RevertDelta()
	s.clean.Purge()
	return s.db.Close()
}

// GetAccount returns the committed account at addr, or nil if there is none.
func (s *Store) GetAccount(addr common.Address) (*Account, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	acc, err := s.readCommitted(addr)
	if err != nil || acc == nil {
		return nil, err
	}
	return acc.Copy(), nil
}

// readCommitted must be called with lock held.
func (s *Store) readCommitted(addr common.Address) (*Account, error) {
	if acc, ok := s.clean.Get(addr); ok {
		return acc, nil
	}
	val, err := s.db.Get(accountKey(addr), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "cannot read account %s", addr.Hex())
	}
	acc := new(Account)
	if err := rlp.DecodeBytes(val, acc); err != nil {
		return nil, errors.Wrapf(err, "cannot decode account %s", addr.Hex())
	}
	if acc.Balance == nil {
		acc.Balance = new(big.Int)
	}
	s.clean.Set(addr, acc)
	return acc, nil
}

// IsEpochRewarded reports whether the coinbase of epoch was committed.
func (s *Store) IsEpochRewarded(epoch uint64) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if _, err := s.db.Get(rewardedKey(epoch), nil); err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// LastDeltaRoot returns the hash of the last committed delta.
func (s *Store) LastDeltaRoot() (common.Hash, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	val, err := s.db.Get(lastDeltaKey, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return common.Hash{}, nil
		}
		return common.Hash{}, err
	}
	return common.BytesToHash(val), nil
}

// pending must be called with deltaLock held.
func (s *Store) pending(addr common.Address) (*Account, error) {
	if acc, ok := s.dirty[addr]; ok {
		return acc, nil
	}
	s.lock.RLock()
	acc, err := s.readCommitted(addr)
	s.lock.RUnlock()
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return &Account{Balance: new(big.Int)}, nil
	}
	return acc.Copy(), nil
}

// PendingAccount returns addr as it would be after committing the delta.
func (s *Store) PendingAccount(addr common.Address) (*Account, error) {
	s.deltaLock.Lock()
	defer s.deltaLock.Unlock()

	acc, err := s.pending(addr)
	if err != nil {
		return nil, err
	}
	return acc.Copy(), nil
}

// AddOrUpdate stages addr with the given balance and nonce.
func (s *Store) AddOrUpdate(addr common.Address, balance *big.Int, nonce uint64) error {
	if balance == nil || balance.Sign() < 0 {
		return errors.Errorf("invalid balance for %s", addr.Hex())
	}
	s.deltaLock.Lock()
	defer s.deltaLock.Unlock()

	s.dirty[addr] = &Account{Nonce: nonce, Balance: new(big.Int).Set(balance)}
	return nil
}

// StageDelta adds amount to the pending balance of addr.
func (s *Store) StageDelta(addr common.Address, amount *uint256.Int) error {
	if amount == nil {
		return errors.Errorf("nil amount for %s", addr.Hex())
	}
	s.deltaLock.Lock()
	defer s.deltaLock.Unlock()

	acc, err := s.pending(addr)
	if err != nil {
		return err
	}
	acc.Balance.Add(acc.Balance, amount.ToBig())
	s.dirty[addr] = acc
	return nil
}

// MarkEpochRewarded stages the marker recording that epoch's coinbase is paid.
func (s *Store) MarkEpochRewarded(epoch uint64) {
	s.deltaLock.Lock()
	defer s.deltaLock.Unlock()

	s.rewarded[epoch] = struct{}{}
}

// DeltaSize returns the number of accounts in the delta.
func (s *Store) DeltaSize() int {
	s.deltaLock.Lock()
	defer s.deltaLock.Unlock()

	return len(s.dirty)
}

// encodeDelta must be called with deltaLock held.
func (s *Store) encodeDelta() ([]byte, error) {
	blob := deltaBlob{
		Accounts: make([]deltaAccount, 0, len(s.dirty)),
		Epochs:   make([]uint64, 0, len(s.rewarded)),
	}
	for addr, acc := range s.dirty {
		blob.Accounts = append(blob.Accounts, deltaAccount{Address: addr, Account: *acc})
	}
	sort.Slice(blob.Accounts, func(i, j int) bool {
		return bytes.Compare(blob.Accounts[i].Address[:], blob.Accounts[j].Address[:]) < 0
	})
	for e := range s.rewarded {
		blob.Epochs = append(blob.Epochs, e)
	}
	sort.Slice(blob.Epochs, func(i, j int) bool { return blob.Epochs[i] < blob.Epochs[j] })
	return rlp.EncodeToBytes(blob)
}

// SerializeDelta encodes the delta deterministically and remembers its hash
// for CommitDelta to check against.
func (s *Store) SerializeDelta() ([]byte, error) {
	s.deltaLock.Lock()
	defer s.deltaLock.Unlock()

	b, err := s.encodeDelta()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize delta")
	}
	root := crypto.Keccak256Hash(b)
	s.serialized = &root
	return b, nil
}

// CommitDelta writes the serialized delta in one batch. On failure committed
// state is unchanged and the delta is kept for RevertDelta.
func (s *Store) CommitDelta() error {
	s.deltaLock.Lock()
	defer s.deltaLock.Unlock()

	if s.serialized == nil {
		return ErrDeltaNotSerialized
	}
	b, err := s.encodeDelta()
	if err != nil {
		return errors.Wrap(err, "cannot serialize delta")
	}
	root := crypto.Keccak256Hash(b)
	if root != *s.serialized {
		return errors.Wrapf(ErrDeltaChanged, "serialized %s, now %s", s.serialized.Hex(), root.Hex())
	}

	batch := new(leveldb.Batch)
	for addr, acc := range s.dirty {
		val, err := rlp.EncodeToBytes(acc)
		if err != nil {
			return errors.Wrapf(err, "cannot encode account %s", addr.Hex())
		}
		batch.Put(accountKey(addr), val)
	}
	for e := range s.rewarded {
		batch.Put(rewardedKey(e), rewardedMarkVal)
	}
	batch.Put(lastDeltaKey, root.Bytes())

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.db.Write(batch, nil); err != nil {
		s.log.Error().Err(err).Str("root", root.Hex()).Msg("delta commit failed")
		return errors.Wrap(err, "cannot write delta")
	}
	for addr, acc := range s.dirty {
		s.clean.Set(addr, acc)
	}
	s.log.Debug().
		Int("accounts", len(s.dirty)).
		Int("epochs", len(s.rewarded)).
		Str("root", root.Hex()).
		Msg("delta committed")
	s.resetDelta()
	return nil
}

// RevertDelta discards every staged change.
func (s *Store) RevertDelta() {
	s.deltaLock.Lock()
	defer s.deltaLock.Unlock()

	s.resetDelta()
}

func (s *Store) resetDelta() {
	s.dirty = make(map[common.Address]*Account)
	s.rewarded = make(map[uint64]struct{})
	s.serialized = nil
}
