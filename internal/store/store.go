// Package store владеет реплицируемым документом устройства: применяет локальные
// и удаленные события и держит журнал согласованным с документом.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/crmsync/internal/crdt"
	"github.com/iudanet/crmsync/internal/merge"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/reducer"
	"github.com/iudanet/crmsync/internal/storage"
)

// Options параметры Store
type Options struct {
	Log      storage.EventLog
	Metadata storage.MetadataStorage // может быть nil: состояние генератора не сохраняется
	Registry *reducer.Registry
	Adapter  merge.Adapter // nil - merge.ReplayAdapter
	Logger   *slog.Logger
	Now      func() time.Time
	DeviceID string
}

// ApplyResult итог применения пакета удаленных событий
type ApplyResult struct {
	Received int // событий в пакете
	Added    int // новых для этого устройства
	Rejected int // отвергнутых редьюсерами после слияния (всего по журналу)
}

// Store единственный писатель документа устройства. Dispatch и Apply
// выполняются последовательно, читатели получают копии.
type Store struct {
	log      storage.EventLog
	meta     storage.MetadataStorage
	registry *reducer.Registry
	adapter  merge.Adapter
	ids      *crdt.IDGenerator
	logger   *slog.Logger
	now      func() time.Time
	replica  *merge.Replica
	keys     map[string]struct{}
	latest   time.Time // наибольший timestamp среди известных событий
	halted   error
	deviceID string
	mu       sync.RWMutex
}

// Open восстанавливает документ из сохраненного журнала
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.DeviceID == "" {
		return nil, errors.New("device id is required")
	}
	if opts.Log == nil || opts.Registry == nil {
		return nil, errors.New("event log and reducer registry are required")
	}

	s := &Store{
		log:      opts.Log,
		meta:     opts.Metadata,
		registry: opts.Registry,
		adapter:  opts.Adapter,
		logger:   opts.Logger,
		now:      opts.Now,
		deviceID: opts.DeviceID,
	}
	if s.adapter == nil {
		s.adapter = merge.NewReplayAdapter(opts.Registry)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}

	var epoch, counter int64
	if s.meta != nil {
		var err error
		epoch, counter, err = s.meta.GetClockState(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load clock state: %w", err)
		}
	}
	s.ids = crdt.NewIDGenerator(epoch, counter).WithClock(s.now)

	events, err := s.log.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}

	s.keys = make(map[string]struct{}, len(events))
	for i := range events {
		s.keys[events[i].Key()] = struct{}{}
		if events[i].DeviceID == s.deviceID {
			s.ids.Observe(events[i].ID)
		}
	}
	s.observeTimestamps(events)

	replica, err := s.adapter.Replica(events)
	if err != nil {
		return nil, fmt.Errorf("failed to replay event log: %w", err)
	}
	s.replica = replica

	s.logger.Info("Store opened",
		"device_id", s.deviceID,
		"events", len(events),
		"rejected", len(replica.Rejected),
		"merge_adapter", s.adapter.Name())

	return s, nil
}

// DeviceID возвращает id, которым помечаются локальные события
func (s *Store) DeviceID() string {
	return s.deviceID
}

// NewEvent создает локальное событие с новым id, текущим временем и id устройства.
// payload может быть nil, json.RawMessage, []byte с JSON или любым значением для json.Marshal.
func (s *Store) NewEvent(ctx context.Context, eventType models.EventType, entityID string, payload any) (models.Event, error) {
	raw, err := encodePayload(payload)
	if err != nil {
		return models.Event{}, err
	}

	ts := s.nextTimestamp()

	id, epoch, counter := s.ids.Next()
	if s.meta != nil {
		if err := s.meta.SaveClockState(ctx, epoch, counter); err != nil {
			return models.Event{}, fmt.Errorf("failed to save clock state: %w", err)
		}
	}

	event := models.Event{
		ID:        id,
		Type:      eventType,
		Timestamp: models.FormatTimestamp(ts),
		DeviceID:  s.deviceID,
		Payload:   raw,
	}
	if entityID != "" {
		event.EntityID = models.StringPtr(entityID)
	}
	return event, nil
}

// nextTimestamp не дает локальному событию отстать от уже известных: при
// отстающих часах оно иначе воспроизводилось бы раньше сущностей, на которые ссылается.
func (s *Store) nextTimestamp() time.Time {
	now := s.now().UTC().Truncate(time.Millisecond)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !now.After(s.latest) {
		return s.latest.Add(time.Millisecond)
	}
	return now
}

// observeTimestamps продвигает s.latest. Вызывается под s.mu либо до публикации Store.
func (s *Store) observeTimestamps(events []models.Event) {
	for i := range events {
		ts, err := models.ParseTimestamp(events[i].Timestamp)
		if err != nil {
			continue
		}
		if ts.After(s.latest) {
			s.latest = ts
		}
	}
}

func encodePayload(payload any) (json.RawMessage, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return p, nil
	case []byte:
		return json.RawMessage(p), nil
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		return raw, nil
	}
}

// Dispatch применяет пакет событий в порядке ввода. Пакет либо применяется и
// пишется в журнал целиком, либо не применяется вовсе.
//
// Невалидное событие дает {Success: false} и nil ошибку, в том числе если после
// слияния в порядке воспроизведения событие пакета отвергнуто редьюсером.
// Тип события без редьюсера дает ошибку с reducer.ErrUnregistered и
// останавливает Store.
func (s *Store) Dispatch(ctx context.Context, events []models.Event) (models.DispatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.halted != nil {
		return models.DispatchResult{Error: s.halted.Error()}, ErrHalted
	}
	if len(events) == 0 {
		return models.DispatchResult{Success: true}, nil
	}

	batch := make(map[string]struct{}, len(events))
	doc := s.replica.Doc
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return s.reject(fmt.Errorf("%w: %w", reducer.ErrValidation, err)), nil
		}
		key := events[i].Key()
		_, seen := s.keys[key]
		if _, inBatch := batch[key]; seen || inBatch {
			return s.reject(fmt.Errorf("%w: %s", ErrDuplicateEvent, key)), nil
		}
		batch[key] = struct{}{}

		next, err := s.registry.Apply(doc, &events[i])
		if err != nil {
			if reducer.IsValidation(err) {
				return s.reject(err), nil
			}
			s.halt(err)
			return models.DispatchResult{Error: err.Error()}, err
		}
		doc = next
	}

	delta := models.CloneEvents(events)
	merged, err := s.merge(delta)
	if err != nil {
		return models.DispatchResult{Error: err.Error()}, err
	}
	for _, r := range merged.Rejected {
		if _, ok := batch[r.Key]; ok {
			return s.reject(fmt.Errorf("%w: %s: %s", ErrReplayRejected, r.Key, r.Reason)), nil
		}
	}
	if _, err := s.commit(ctx, delta, merged); err != nil {
		return models.DispatchResult{Error: err.Error()}, err
	}

	s.logger.Debug("Dispatched events", "count", len(events))
	return models.DispatchResult{Success: true}, nil
}

func (s *Store) reject(err error) models.DispatchResult {
	s.logger.Info("Dispatch rejected", "error", err)
	return models.DispatchResult{Error: err.Error()}
}

func (s *Store) halt(err error) {
	s.halted = err
	s.logger.Error("Store halted", "error", err)
}

// Apply сливает удаленные события с документом. Известные события пропускаются,
// остальные сливаются через адаптер и пишутся в журнал.
func (s *Store) Apply(ctx context.Context, remote []models.Event) (ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := ApplyResult{Received: len(remote)}
	if s.halted != nil {
		return result, ErrHalted
	}

	fresh := make([]models.Event, 0, len(remote))
	seen := make(map[string]struct{}, len(remote))
	for i := range remote {
		key := remote[i].Key()
		if _, ok := s.keys[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, remote[i].Clone())
	}
	if len(fresh) == 0 {
		result.Rejected = len(s.replica.Rejected)
		return result, nil
	}

	merged, err := s.merge(fresh)
	if err != nil {
		return result, err
	}
	added, err := s.commit(ctx, fresh, merged)
	if err != nil {
		return result, err
	}
	result.Added = added
	result.Rejected = len(s.replica.Rejected)

	s.logger.Debug("Applied remote events",
		"received", result.Received,
		"added", result.Added,
		"rejected", result.Rejected)

	return result, nil
}

// merge сливает новые события с текущей репликой, не меняя ее.
// Вызывается под s.mu.
func (s *Store) merge(events []models.Event) (*merge.Replica, error) {
	merged, err := s.mergeEvents(events)
	if err != nil {
		if errors.Is(err, reducer.ErrUnregistered) {
			s.halt(err)
		}
		return nil, fmt.Errorf("merge failed: %w", err)
	}
	return merged, nil
}

// commit пишет события в журнал и публикует слитую реплику. Вызывается под s.mu.
func (s *Store) commit(ctx context.Context, events []models.Event, merged *merge.Replica) (int, error) {
	added, err := s.log.AppendBatch(ctx, events)
	if err != nil {
		return 0, fmt.Errorf("failed to append events: %w", err)
	}
	for i := range events {
		s.keys[events[i].Key()] = struct{}{}
	}
	s.observeTimestamps(events)
	s.replica = merged

	return added, nil
}

func (s *Store) mergeEvents(events []models.Event) (*merge.Replica, error) {
	delta, err := s.adapter.Replica(events)
	if err != nil {
		return nil, err
	}
	return s.adapter.Merge(s.replica, delta)
}

// Document возвращает копию текущего документа
func (s *Store) Document() *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.replica.Doc.Clone()
}

// Events возвращает известные события в порядке воспроизведения
func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.CloneEvents(s.replica.Events)
}

// Keys возвращает ключи всех известных событий
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.replica.Keys()
}

// Contains сообщает, известно ли событие с таким ключом
func (s *Store) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.keys[key]
	return ok
}

// Rejected возвращает события, пропущенные при последнем воспроизведении
func (s *Store) Rejected() []reducer.Rejection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]reducer.Rejection(nil), s.replica.Rejected...)
}

// Hash возвращает канонический хеш текущего документа
func (s *Store) Hash() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.replica.Doc.Hash()
}

// Halted возвращает ошибку, остановившую Store, или nil
func (s *Store) Halted() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.halted
}

// EventsSince возвращает события, записанные после seq, и текущий последний
// номер журнала.
func (s *Store) EventsSince(ctx context.Context, seq uint64) ([]models.Event, uint64, error) {
	return s.log.Since(ctx, seq)
}
