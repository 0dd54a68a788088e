// Package boltdb implements the device event log and metadata on top of bbolt.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/storage"
)

var (
	// BoltDB bucket names
	bucketEvents     = []byte("events")     // seq -> event JSON
	bucketEventKeys  = []byte("event_keys") // deviceId/id -> seq
	bucketMetadata   = []byte("metadata")   // device id, clock state
	bucketWatermarks = []byte("watermarks") // peer id -> seq
)

// Storage represents BoltDB storage of one device
type Storage struct {
	db *bbolt.DB
}

var (
	_ storage.EventLog        = (*Storage)(nil)
	_ storage.MetadataStorage = (*Storage)(nil)
)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketEvents, bucketEventKeys, bucketMetadata, bucketWatermarks} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
