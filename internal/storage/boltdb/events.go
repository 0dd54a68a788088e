package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
)

func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

// Append adds one event to the log
func (s *Storage) Append(ctx context.Context, event *models.Event) (uint64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var seq uint64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var err error
		seq, err = appendEvent(tx, event)
		return err
	})
	if err != nil {
		return 0, err
	}

	return seq, nil
}

// AppendBatch adds events in a single transaction, skipping keys already present
func (s *Storage) AppendBatch(ctx context.Context, events []models.Event) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	added := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		added = 0
		for i := range events {
			if _, err := appendEvent(tx, &events[i]); err != nil {
				if errors.Is(err, storage.ErrDuplicateEvent) {
					continue
				}
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("transaction failed: %w", err)
	}

	return added, nil
}

// appendEvent пишет событие в bucket events и индекс ключей в рамках tx
func appendEvent(tx *bbolt.Tx, event *models.Event) (uint64, error) {
	keys := tx.Bucket(bucketEventKeys)
	events := tx.Bucket(bucketEvents)

	key := []byte(event.Key())
	if keys.Get(key) != nil {
		return 0, fmt.Errorf("%w: %s", storage.ErrDuplicateEvent, event.Key())
	}

	// Сериализуем событие в JSON
	data, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	seq, err := events.NextSequence()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate sequence: %w", err)
	}
	if err := events.Put(seqKey(seq), data); err != nil {
		return 0, fmt.Errorf("failed to save event: %w", err)
	}
	if err := keys.Put(key, seqKey(seq)); err != nil {
		return 0, fmt.Errorf("failed to index event: %w", err)
	}

	return seq, nil
}

// All returns every event in append order
func (s *Storage) All(ctx context.Context) ([]models.Event, error) {
	events, _, err := s.Since(ctx, 0)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Since returns events appended after seq and the last sequence in the log
func (s *Storage) Since(ctx context.Context, seq uint64) ([]models.Event, uint64, error) {
	if s.db == nil {
		return nil, 0, storage.ErrStorageClosed
	}

	var (
		events []models.Event
		last   uint64
	)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		last = bucket.Sequence()

		// Ключи упорядочены по big-endian seq, курсор идет в порядке добавления
		c := bucket.Cursor()
		for k, v := c.Seek(seqKey(seq + 1)); k != nil; k, v = c.Next() {
			var event models.Event
			if err := json.Unmarshal(v, &event); err != nil {
				return fmt.Errorf("failed to unmarshal event %d: %w", binary.BigEndian.Uint64(k), err)
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read events: %w", err)
	}

	return events, last, nil
}

// Len returns the number of events in the log
func (s *Storage) Len(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketEvents).Stats().KeyN
		return nil
	})
	return n, err
}
