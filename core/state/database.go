package state

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// Database is the part of *leveldb.DB the store relies on. Write must apply
// the whole batch or nothing.
type Database interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	Write(batch *leveldb.Batch, wo *opt.WriteOptions) error
	Close() error
}

func newLvlDB(dbPath string) (*leveldb.DB, error) {
	options := &opt.Options{
		OpenFilesCacheCapacity: 500,
		BlockCacheCapacity:     8 * 1024 * 1024, // 8 MiB
		WriteBuffer:            4 * 1024 * 1024, // 4 MiB
	}
	return leveldb.OpenFile(dbPath, options)
}

func newMemDB() (*leveldb.DB, error) {
	return leveldb.Open(storage.NewMemStorage(), nil)
}
