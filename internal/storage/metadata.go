package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage stores per-device state that must survive restarts
type MetadataStorage interface {
	// GetDeviceID returns the persisted device id.
	// Returns ErrMetadataNotFound on first start.
	GetDeviceID(ctx context.Context) (string, error)

	// SaveDeviceID persists the device id
	SaveDeviceID(ctx context.Context, deviceID string) error

	// GetClockState returns the last (epoch, counter) issued by the ID generator.
	// Returns zeros if nothing was saved yet.
	GetClockState(ctx context.Context) (epoch, counter int64, err error)

	// SaveClockState persists the ID generator state
	SaveClockState(ctx context.Context, epoch, counter int64) error

	// GetPeerWatermark returns the local log sequence already delivered to peerID.
	// Returns 0 if the peer was never synced.
	GetPeerWatermark(ctx context.Context, peerID string) (uint64, error)

	// SavePeerWatermark stores the delivered sequence for peerID
	SavePeerWatermark(ctx context.Context, peerID string, seq uint64) error
}
