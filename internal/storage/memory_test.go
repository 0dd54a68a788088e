package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/models"
)

func testEvent(device, id string) models.Event {
	return models.Event{
		ID:        id,
		Type:      models.OrganizationCreated,
		Timestamp: "2024-01-01T00:00:00Z",
		DeviceID:  device,
		EntityID:  models.StringPtr("org-" + id),
		Payload:   []byte(`{"name":"x"}`),
	}
}

func TestMemoryLog(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()

	e1 := testEvent("d1", "evt-1-0")
	seq, err := log.Append(ctx, &e1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	// тот же id с другого устройства - другое событие
	e2 := testEvent("d2", "evt-1-0")
	seq, err = log.Append(ctx, &e2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), seq)

	_, err = log.Append(ctx, &e1)
	assert.ErrorIs(t, err, ErrDuplicateEvent)

	added, err := log.AppendBatch(ctx, []models.Event{e1, testEvent("d1", "evt-1-1"), testEvent("d1", "evt-1-1")})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	n, err := log.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	since, last, err := log.Since(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), last)
	require.Len(t, since, 2)
	assert.Equal(t, "d2/evt-1-0", since[0].Key())
	assert.Equal(t, "d1/evt-1-1", since[1].Key())

	since, last, err = log.Since(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, since)
	assert.Equal(t, uint64(3), last)

	all, err := log.All(ctx)
	require.NoError(t, err)
	all[0].ID = "mutated"
	again, err := log.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "evt-1-0", again[0].ID, "log must hand out copies")
}

func TestMemoryMetadata(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMetadata()

	_, err := m.GetDeviceID(ctx)
	assert.ErrorIs(t, err, ErrMetadataNotFound)

	require.NoError(t, m.SaveDeviceID(ctx, "dev-1"))
	id, err := m.GetDeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dev-1", id)

	epoch, counter, err := m.GetClockState(ctx)
	require.NoError(t, err)
	assert.Zero(t, epoch)
	assert.Zero(t, counter)

	require.NoError(t, m.SaveClockState(ctx, 1700, 4))
	epoch, counter, err = m.GetClockState(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1700), epoch)
	assert.Equal(t, int64(4), counter)

	wm, err := m.GetPeerWatermark(ctx, "peer")
	require.NoError(t, err)
	assert.Zero(t, wm)
	require.NoError(t, m.SavePeerWatermark(ctx, "peer", 12))
	wm, err = m.GetPeerWatermark(ctx, "peer")
	require.NoError(t, err)
	assert.Equal(t, uint64(12), wm)
}

func TestSyncRecord_Succeeded(t *testing.T) {
	assert.True(t, (&SyncRecord{}).Succeeded())
	assert.False(t, (&SyncRecord{Error: "timeout"}).Succeeded())
}
