package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/storage"
)

const (
	keyDeviceID     = "device_id"
	keyClockEpoch   = "clock_epoch"
	keyClockCounter = "clock_counter"
)

// GetDeviceID returns the persisted device id
func (s *Storage) GetDeviceID(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var id string
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMetadata).Get([]byte(keyDeviceID))
		if data == nil {
			return storage.ErrMetadataNotFound
		}
		id = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// SaveDeviceID persists the device id
func (s *Storage) SaveDeviceID(ctx context.Context, deviceID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketMetadata).Put([]byte(keyDeviceID), []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}
		return nil
	})
}

// GetClockState returns the last saved ID generator state
// Returns zeros if nothing was saved yet
func (s *Storage) GetClockState(ctx context.Context) (int64, int64, error) {
	if s.db == nil {
		return 0, 0, storage.ErrStorageClosed
	}

	var epoch, counter int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		epoch = getInt64(bucket, keyClockEpoch)
		counter = getInt64(bucket, keyClockCounter)
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get clock state: %w", err)
	}

	return epoch, counter, nil
}

// SaveClockState persists the ID generator state
func (s *Storage) SaveClockState(ctx context.Context, epoch, counter int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if err := putInt64(bucket, keyClockEpoch, epoch); err != nil {
			return fmt.Errorf("failed to save clock epoch: %w", err)
		}
		if err := putInt64(bucket, keyClockCounter, counter); err != nil {
			return fmt.Errorf("failed to save clock counter: %w", err)
		}
		return nil
	})
}

// GetPeerWatermark returns the sequence already delivered to peerID
// Returns 0 if the peer was never synced
func (s *Storage) GetPeerWatermark(ctx context.Context, peerID string) (uint64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var seq uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketWatermarks).Get([]byte(peerID))
		if data != nil {
			seq = binary.BigEndian.Uint64(data)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get watermark: %w", err)
	}

	return seq, nil
}

// SavePeerWatermark stores the delivered sequence for peerID
func (s *Storage) SavePeerWatermark(ctx context.Context, peerID string, seq uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketWatermarks).Put([]byte(peerID), seqKey(seq)); err != nil {
			return fmt.Errorf("failed to save watermark: %w", err)
		}
		return nil
	})
}

func getInt64(bucket *bbolt.Bucket, key string) int64 {
	data := bucket.Get([]byte(key))
	if data == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(data))
}

func putInt64(bucket *bbolt.Bucket, key string, v int64) error {
	// Конвертируем int64 в bytes
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return bucket.Put([]byte(key), b)
}
