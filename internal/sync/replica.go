package sync

import (
	"context"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/store"
)

//go:generate moq -out replica_mock.go . Replica

// Replica - локальное хранилище событий, которое синхронизируется с пирами
type Replica interface {
	DeviceID() string
	Events() []models.Event
	Keys() []string
	EventsSince(ctx context.Context, seq uint64) ([]models.Event, uint64, error)
	Apply(ctx context.Context, remote []models.Event) (store.ApplyResult, error)
}

var _ Replica = (*store.Store)(nil)

//go:generate moq -out transport_mock.go . Transport

// Transport отправляет один запрос пиру и возвращает его ответ
type Transport interface {
	SyncWithPeer(ctx context.Context, peer models.DeviceInfo, payload []byte) ([]byte, error)
}

//go:generate moq -out peers_mock.go . PeerSource

// PeerSource - источник известных пиров (discovery)
type PeerSource interface {
	Peers() []models.DeviceInfo
}
