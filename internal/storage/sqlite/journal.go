package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/crmsync/internal/storage"
)

const journalColumns = `id, peer_id, peer_addr, direction, started_at, finished_at, sent, received, applied, error`

// Record stores one sync attempt and fills in record.ID
func (s *Storage) Record(ctx context.Context, record *storage.SyncRecord) error {
	query := `
		INSERT INTO sync_journal (peer_id, peer_addr, direction, started_at, finished_at, sent, received, applied, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		record.PeerID,
		record.PeerAddr,
		string(record.Direction),
		record.StartedAt.UnixMilli(),
		record.FinishedAt.UnixMilli(),
		record.Sent,
		record.Received,
		record.Applied,
		record.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get sync record id: %w", err)
	}
	record.ID = id

	return nil
}

// Recent returns up to limit latest records, newest first
func (s *Storage) Recent(ctx context.Context, limit int) ([]storage.SyncRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `SELECT ` + journalColumns + ` FROM sync_journal ORDER BY finished_at DESC, id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync journal: %w", err)
	}
	defer rows.Close()

	var records []storage.SyncRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// LastSuccess returns the latest successful exchange with peerID
func (s *Storage) LastSuccess(ctx context.Context, peerID string) (*storage.SyncRecord, error) {
	query := `SELECT ` + journalColumns + ` FROM sync_journal
		WHERE peer_id = ? AND error = ''
		ORDER BY finished_at DESC, id DESC LIMIT 1`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, peerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMetadataNotFound
		}
		return nil, err
	}

	return record, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*storage.SyncRecord, error) {
	var (
		record     storage.SyncRecord
		direction  string
		startedAt  int64
		finishedAt int64
	)

	err := row.Scan(
		&record.ID,
		&record.PeerID,
		&record.PeerAddr,
		&direction,
		&startedAt,
		&finishedAt,
		&record.Sent,
		&record.Received,
		&record.Applied,
		&record.Error,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan sync record: %w", err)
	}

	record.Direction = storage.SyncDirection(direction)
	record.StartedAt = time.UnixMilli(startedAt)
	record.FinishedAt = time.UnixMilli(finishedAt)

	return &record, nil
}
