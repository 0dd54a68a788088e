package storage

import (
	"context"
	"sync"

	"github.com/iudanet/crmsync/internal/models"
)

// MemoryLog is an EventLog kept in process memory
type MemoryLog struct {
	keys   map[string]struct{}
	events []models.Event
	mu     sync.RWMutex
}

// NewMemoryLog creates an empty in-memory log
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		keys: make(map[string]struct{}),
	}
}

// Append adds one event and returns its sequence number
func (l *MemoryLog) Append(ctx context.Context, event *models.Event) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := event.Key()
	if _, exists := l.keys[key]; exists {
		return 0, ErrDuplicateEvent
	}
	l.keys[key] = struct{}{}
	l.events = append(l.events, event.Clone())
	return uint64(len(l.events)), nil
}

// AppendBatch adds events, skipping keys already present
func (l *MemoryLog) AppendBatch(ctx context.Context, events []models.Event) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	added := 0
	for i := range events {
		key := events[i].Key()
		if _, exists := l.keys[key]; exists {
			continue
		}
		l.keys[key] = struct{}{}
		l.events = append(l.events, events[i].Clone())
		added++
	}
	return added, nil
}

// All returns every event in append order
func (l *MemoryLog) All(ctx context.Context) ([]models.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return models.CloneEvents(l.events), nil
}

// Since returns events appended after seq
func (l *MemoryLog) Since(ctx context.Context, seq uint64) ([]models.Event, uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	last := uint64(len(l.events))
	if seq >= last {
		return nil, last, nil
	}
	return models.CloneEvents(l.events[seq:]), last, nil
}

// Len returns the number of events in the log
func (l *MemoryLog) Len(ctx context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.events), nil
}

// MemoryMetadata is a MetadataStorage kept in process memory
type MemoryMetadata struct {
	watermarks map[string]uint64
	deviceID   string
	epoch      int64
	counter    int64
	mu         sync.RWMutex
}

// NewMemoryMetadata creates empty in-memory metadata
func NewMemoryMetadata() *MemoryMetadata {
	return &MemoryMetadata{
		watermarks: make(map[string]uint64),
	}
}

func (m *MemoryMetadata) GetDeviceID(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.deviceID == "" {
		return "", ErrMetadataNotFound
	}
	return m.deviceID, nil
}

func (m *MemoryMetadata) SaveDeviceID(ctx context.Context, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deviceID = deviceID
	return nil
}

func (m *MemoryMetadata) GetClockState(ctx context.Context) (int64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.epoch, m.counter, nil
}

func (m *MemoryMetadata) SaveClockState(ctx context.Context, epoch, counter int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch, m.counter = epoch, counter
	return nil
}

func (m *MemoryMetadata) GetPeerWatermark(ctx context.Context, peerID string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.watermarks[peerID], nil
}

func (m *MemoryMetadata) SavePeerWatermark(ctx context.Context, peerID string, seq uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.watermarks[peerID] = seq
	return nil
}
