package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidEvent означает событие без обязательных полей
var ErrInvalidEvent = errors.New("invalid event")

// TimestampLayout фиксированной ширины: строки сравниваются лексикографически,
// поэтому дробная часть не обрезается, а зона всегда Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp formats t for Event.Timestamp
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// EventType тег типа события, по нему выбирается reducer.
type EventType string

// Event представляет неизменяемый факт об одном изменении состояния.
// Событие создается один раз на устройстве-источнике и дальше только копируется.
type Event struct {
	EntityID  *string         `json:"entityId"`  // EntityID идентификатор сущности (может отсутствовать)
	ID        string          `json:"id"`        // ID формат evt-<epoch>-<counter>, уникален в пределах устройства
	Type      EventType       `json:"type"`      // Type тип события, например "account.created"
	Timestamp string          `json:"timestamp"` // Timestamp ISO-8601 (UTC, TimestampLayout)
	DeviceID  string          `json:"deviceId"`  // DeviceID идентификатор устройства-источника
	Payload   json.RawMessage `json:"payload"`   // Payload структурированные данные события
}

// Key returns the identity of the event inside a log: ids are only unique per device.
func (e *Event) Key() string {
	return e.DeviceID + "/" + e.ID
}

// Validate checks the fields every event must carry. Payload is checked by reducers.
func (e *Event) Validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("%w: id is empty", ErrInvalidEvent)
	case e.DeviceID == "":
		return fmt.Errorf("%w: device id is empty in %s", ErrInvalidEvent, e.ID)
	case e.Type == "":
		return fmt.Errorf("%w: type is empty in %s", ErrInvalidEvent, e.Key())
	case e.Timestamp == "":
		return fmt.Errorf("%w: timestamp is empty in %s", ErrInvalidEvent, e.Key())
	}
	if _, err := ParseTimestamp(e.Timestamp); err != nil {
		return fmt.Errorf("%w: %s in %s", ErrInvalidEvent, err, e.Key())
	}
	return nil
}

// ParseTimestamp разбирает строку только в формате TimestampLayout: иначе
// порядок строк разошелся бы с порядком времени.
func ParseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil || FormatTimestamp(t) != ts {
		return time.Time{}, fmt.Errorf("timestamp %q does not match %s", ts, TimestampLayout)
	}
	return t, nil
}

// Entity returns the entity id or an empty string.
func (e *Event) Entity() string {
	if e.EntityID == nil {
		return ""
	}
	return *e.EntityID
}

// Clone создает глубокую копию события
func (e *Event) Clone() Event {
	out := *e
	if e.EntityID != nil {
		id := *e.EntityID
		out.EntityID = &id
	}
	if e.Payload != nil {
		out.Payload = make(json.RawMessage, len(e.Payload))
		copy(out.Payload, e.Payload)
	}
	return out
}

// CloneEvents copies a slice of events.
func CloneEvents(events []Event) []Event {
	out := make([]Event, len(events))
	for i := range events {
		out[i] = events[i].Clone()
	}
	return out
}

// StringPtr is a helper for optional entity ids.
func StringPtr(s string) *string {
	return &s
}
