package storage

import (
	"context"
	"time"
)

// SyncDirection says which side initiated a sync exchange
type SyncDirection string

const (
	SyncOutbound SyncDirection = "outbound" // this device connected to the peer
	SyncInbound  SyncDirection = "inbound"  // the peer connected to this device
)

// SyncRecord is one row of the sync journal
type SyncRecord struct {
	StartedAt  time.Time
	FinishedAt time.Time
	PeerID     string
	PeerAddr   string
	Direction  SyncDirection
	Error      string // пусто при успешном обмене
	ID         int64
	Sent       int // событий отправлено
	Received   int // событий получено
	Applied    int // из них новых для локального журнала
}

// Succeeded reports whether the exchange finished without error
func (r *SyncRecord) Succeeded() bool {
	return r.Error == ""
}

//go:generate moq -out journal_mock.go . SyncJournal

// SyncJournal keeps a history of sync attempts for diagnostics
type SyncJournal interface {
	// Record stores one attempt and fills in its ID
	Record(ctx context.Context, record *SyncRecord) error

	// Recent returns up to limit latest records, newest first
	Recent(ctx context.Context, limit int) ([]SyncRecord, error)

	// LastSuccess returns the latest successful exchange with peerID.
	// Returns ErrMetadataNotFound if there is none.
	LastSuccess(ctx context.Context, peerID string) (*SyncRecord, error)
}
