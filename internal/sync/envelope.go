// Package sync runs the sync protocol between two devices on top of the
// transport: each side sends the events the other may lack and merges the reply.
package sync

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/iudanet/crmsync/internal/models"
)

// ProtocolVersion - версия формата Envelope. Совместимы версии с одинаковым major.
const ProtocolVersion = "1.0.0"

var (
	// ErrIncompatibleProtocol означает другой major версии протокола
	ErrIncompatibleProtocol = errors.New("incompatible sync protocol")

	// ErrMalformedEnvelope означает payload, который не разбирается как Envelope
	ErrMalformedEnvelope = errors.New("malformed sync envelope")
)

// Envelope - запрос и ответ синхронизации.
// Known содержит ключи событий, которые отправителю присылать не нужно.
type Envelope struct {
	Protocol string         `json:"protocol"`
	DeviceID string         `json:"deviceId"`
	Events   []models.Event `json:"events"`
	Known    []string       `json:"known,omitempty"`
}

// Encode сериализует конверт
func Encode(env *Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return data, nil
}

// Decode разбирает конверт и проверяет версию протокола
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.DeviceID == "" {
		return nil, fmt.Errorf("%w: device id is empty", ErrMalformedEnvelope)
	}
	for i := range env.Events {
		if err := env.Events[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
	}
	if err := CheckCompatible(env.Protocol); err != nil {
		return nil, err
	}
	return &env, nil
}

// CheckCompatible проверяет, что удаленная версия протокола имеет тот же major
func CheckCompatible(remote string) error {
	local := semver.MustParse(ProtocolVersion)

	v, err := semver.NewVersion(remote)
	if err != nil {
		return fmt.Errorf("%w: bad version %q: %v", ErrIncompatibleProtocol, remote, err)
	}

	c, err := semver.NewConstraint(fmt.Sprintf("^%d.0.0", local.Major()))
	if err != nil {
		return fmt.Errorf("failed to build protocol constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: local %s, remote %s", ErrIncompatibleProtocol, local, v)
	}
	return nil
}

// missing возвращает события, ключей которых нет в known
func missing(events []models.Event, known map[string]struct{}) []models.Event {
	out := make([]models.Event, 0)
	for i := range events {
		if _, ok := known[events[i].Key()]; ok {
			continue
		}
		out = append(out, events[i])
	}
	return out
}

func keySet(keys []string, events []models.Event) map[string]struct{} {
	set := make(map[string]struct{}, len(keys)+len(events))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	for i := range events {
		set[events[i].Key()] = struct{}{}
	}
	return set
}
