// Package amerge is a merge.Adapter that keeps the event set in an automerge
// document. Replicas exchange and merge automerge state; the CRM document is
// always replayed from the merged event set.
package amerge

import (
	"encoding/json"
	"fmt"

	"github.com/automerge/automerge-go"

	"github.com/iudanet/crmsync/internal/merge"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/reducer"
)

// Adapter stores each event under its key in the root map of an automerge
// document. The root map is shared by every document, so concurrent inserts of
// different keys never conflict and inserts of the same key carry equal values.
type Adapter struct {
	registry *reducer.Registry
}

var _ merge.Adapter = (*Adapter)(nil)

// New creates an automerge-backed adapter
func New(registry *reducer.Registry) *Adapter {
	return &Adapter{registry: registry}
}

func (a *Adapter) Name() string {
	return "automerge"
}

// Replica folds events into a new replica with a fresh automerge snapshot
func (a *Adapter) Replica(events []models.Event) (*merge.Replica, error) {
	doc := automerge.New()
	if err := putEvents(doc, events); err != nil {
		return nil, err
	}
	return a.replay(doc)
}

// Clone returns an independent copy of r
func (a *Adapter) Clone(r *merge.Replica) *merge.Replica {
	return merge.CloneReplica(r)
}

// Merge merges the automerge state of right into a fork of left
func (a *Adapter) Merge(left, right *merge.Replica) (*merge.Replica, error) {
	ldoc, err := a.load(left)
	if err != nil {
		return nil, fmt.Errorf("load left: %w", err)
	}
	rdoc, err := a.load(right)
	if err != nil {
		return nil, fmt.Errorf("load right: %w", err)
	}

	if _, err := ldoc.Merge(rdoc); err != nil {
		return nil, fmt.Errorf("automerge merge: %w", err)
	}

	return a.replay(ldoc)
}

// load восстанавливает automerge документ реплики; реплики без снимка
// (например, созданные другим адаптером) строятся из их событий.
func (a *Adapter) load(r *merge.Replica) (*automerge.Doc, error) {
	if len(r.Snapshot) > 0 {
		return automerge.Load(r.Snapshot)
	}
	doc := automerge.New()
	if err := putEvents(doc, r.Events); err != nil {
		return nil, err
	}
	return doc, nil
}

func putEvents(doc *automerge.Doc, events []models.Event) error {
	for i := range events {
		data, err := json.Marshal(&events[i])
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", events[i].Key(), err)
		}
		if err := doc.Path(events[i].Key()).Set(data); err != nil {
			return fmt.Errorf("failed to store event %s: %w", events[i].Key(), err)
		}
	}
	if _, err := doc.Commit("events", automerge.CommitOptions{AllowEmpty: true}); err != nil {
		return fmt.Errorf("automerge commit: %w", err)
	}
	return nil
}

func readEvents(doc *automerge.Doc) ([]models.Event, error) {
	values, err := doc.RootMap().Values()
	if err != nil {
		return nil, fmt.Errorf("failed to read automerge root: %w", err)
	}

	events := make([]models.Event, 0, len(values))
	for key, v := range values {
		if v.Kind() != automerge.KindBytes {
			return nil, fmt.Errorf("unexpected value kind %v at %q", v.Kind(), key)
		}
		var event models.Event
		if err := json.Unmarshal(v.Bytes(), &event); err != nil {
			return nil, fmt.Errorf("failed to decode event %q: %w", key, err)
		}
		events = append(events, event)
	}
	return events, nil
}

func (a *Adapter) replay(doc *automerge.Doc) (*merge.Replica, error) {
	events, err := readEvents(doc)
	if err != nil {
		return nil, err
	}

	replica, err := merge.Replay(a.registry, events)
	if err != nil {
		return nil, err
	}
	replica.Snapshot = doc.Save()
	return replica, nil
}
