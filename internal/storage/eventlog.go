// Package storage defines the persistence contracts of a device: the append-only
// event log, device metadata and the sync journal.
package storage

import (
	"context"

	"github.com/iudanet/crmsync/internal/models"
)

//go:generate moq -out eventlog_mock.go . EventLog

// EventLog is the append-only log of events known to this device.
//
// Every append is assigned a local sequence number (1, 2, ...). Sequence numbers
// only describe the order in which this device learned about events and are used
// for sync watermarks; replay order always comes from crdt.SortEvents.
type EventLog interface {
	// Append adds one event and returns its sequence number.
	// Returns ErrDuplicateEvent if the event key is already present.
	Append(ctx context.Context, event *models.Event) (uint64, error)

	// AppendBatch adds events atomically, skipping keys already present.
	// Returns the number of events actually appended.
	AppendBatch(ctx context.Context, events []models.Event) (int, error)

	// All returns every event in append order.
	All(ctx context.Context) ([]models.Event, error)

	// Since returns events with a sequence number greater than seq, in append
	// order, and the highest sequence number in the log.
	Since(ctx context.Context, seq uint64) ([]models.Event, uint64, error)

	// Len returns the number of events in the log.
	Len(ctx context.Context) (int, error)
}
