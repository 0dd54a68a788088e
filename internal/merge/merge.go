// Package merge combines diverged replicas of the event log into one document.
package merge

import (
	"errors"
	"fmt"

	"github.com/iudanet/crmsync/internal/crdt"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/reducer"
)

// ErrLawViolated is returned by CheckLaws when an adapter breaks a merge law
var ErrLawViolated = errors.New("merge law violated")

// Replica is one device's view: its event set and the document folded from it.
type Replica struct {
	Doc      *models.Document
	Events   []models.Event // Events в порядке воспроизведения
	Rejected []reducer.Rejection
	Snapshot []byte // состояние адаптера, nil для ReplayAdapter
}

// Keys returns the event keys of the replica in replay order
func (r *Replica) Keys() []string {
	keys := make([]string, len(r.Events))
	for i := range r.Events {
		keys[i] = r.Events[i].Key()
	}
	return keys
}

// Hash returns the canonical hash of the replica document
func (r *Replica) Hash() (string, error) {
	return r.Doc.Hash()
}

// Adapter merges replicas. Every implementation must be commutative,
// associative and idempotent with respect to the resulting document.
type Adapter interface {
	// Name identifies the adapter in config and logs
	Name() string

	// Replica folds events into a new replica
	Replica(events []models.Event) (*Replica, error)

	// Clone returns an independent copy of r
	Clone(r *Replica) *Replica

	// Merge returns the replica holding the union of both event sets.
	// Neither input is modified.
	Merge(left, right *Replica) (*Replica, error)
}

// ReplayAdapter merges by event-set union followed by a full replay from the
// empty document.
type ReplayAdapter struct {
	registry *reducer.Registry
}

var _ Adapter = (*ReplayAdapter)(nil)

// NewReplayAdapter creates the default adapter
func NewReplayAdapter(registry *reducer.Registry) *ReplayAdapter {
	return &ReplayAdapter{registry: registry}
}

func (a *ReplayAdapter) Name() string {
	return "replay"
}

// Replica folds events into a new replica
func (a *ReplayAdapter) Replica(events []models.Event) (*Replica, error) {
	set := crdt.NewEventSet(events...)
	return Replay(a.registry, set.Sorted())
}

// Clone returns an independent copy of r
func (a *ReplayAdapter) Clone(r *Replica) *Replica {
	return CloneReplica(r)
}

// Merge returns the replica holding the union of both event sets
func (a *ReplayAdapter) Merge(left, right *Replica) (*Replica, error) {
	set := crdt.NewEventSet(left.Events...)
	if set.Merge(crdt.NewEventSet(right.Events...)) == 0 {
		return a.Clone(left), nil
	}
	return Replay(a.registry, set.Sorted())
}

// Replay folds an event set into a replica. Shared by every adapter: whatever
// an adapter uses to agree on the event set, the document always comes from the
// same ordered replay.
func Replay(registry *reducer.Registry, events []models.Event) (*Replica, error) {
	res, err := reducer.Fold(registry, events)
	if err != nil {
		return nil, fmt.Errorf("replay failed: %w", err)
	}
	return &Replica{
		Doc:      res.Doc,
		Events:   res.Events,
		Rejected: res.Rejected,
	}, nil
}

// CloneReplica deep-copies a replica
func CloneReplica(r *Replica) *Replica {
	out := &Replica{
		Doc:    r.Doc.Clone(),
		Events: models.CloneEvents(r.Events),
	}
	if r.Rejected != nil {
		out.Rejected = append([]reducer.Rejection(nil), r.Rejected...)
	}
	if r.Snapshot != nil {
		out.Snapshot = append([]byte(nil), r.Snapshot...)
	}
	return out
}
