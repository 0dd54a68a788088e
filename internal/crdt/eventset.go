package crdt

import (
	"sync"

	"github.com/iudanet/crmsync/internal/models"
)

// EventSet представляет Grow-Only Set событий, ключ - (deviceId, id).
// Элементы никогда не удаляются и не изменяются, поэтому Merge
// коммутативен, ассоциативен и идемпотентен: результат - объединение множеств.
type EventSet struct {
	elements map[string]models.Event // map[key]event
	mu       sync.RWMutex
}

// NewEventSet создает новый set, опционально заполненный событиями.
func NewEventSet(events ...models.Event) *EventSet {
	s := &EventSet{
		elements: make(map[string]models.Event, len(events)),
	}
	for i := range events {
		s.elements[events[i].Key()] = events[i].Clone()
	}
	return s
}

// Add добавляет событие. Возвращает false, если событие с таким ключом уже есть:
// первая версия остается, событие неизменяемо.
func (s *EventSet) Add(event models.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := event.Key()
	if _, exists := s.elements[key]; exists {
		return false
	}
	s.elements[key] = event.Clone()
	return true
}

// Contains проверяет наличие события с заданным ключом.
func (s *EventSet) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.elements[key]
	return exists
}

// Merge объединяет текущий set с другим и возвращает количество новых элементов.
func (s *EventSet) Merge(other *EventSet) int {
	if s == other {
		return 0
	}

	other.mu.RLock()
	incoming := make([]models.Event, 0, len(other.elements))
	for _, e := range other.elements {
		incoming = append(incoming, e)
	}
	other.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for i := range incoming {
		key := incoming[i].Key()
		if _, exists := s.elements[key]; exists {
			continue
		}
		s.elements[key] = incoming[i].Clone()
		added++
	}
	return added
}

// Keys возвращает ключи всех событий (без порядка).
func (s *EventSet) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.elements))
	for k := range s.elements {
		keys = append(keys, k)
	}
	return keys
}

// Sorted возвращает копии всех событий в порядке воспроизведения.
func (s *EventSet) Sorted() []models.Event {
	s.mu.RLock()
	events := make([]models.Event, 0, len(s.elements))
	for _, e := range s.elements {
		events = append(events, e.Clone())
	}
	s.mu.RUnlock()

	return SortEvents(events)
}

// Size возвращает количество событий в set.
func (s *EventSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.elements)
}
