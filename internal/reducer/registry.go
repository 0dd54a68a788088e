// Package reducer maps event types to pure state transitions over a Document.
package reducer

import (
	"fmt"
	"slices"
	"sync"

	"github.com/iudanet/crmsync/internal/models"
)

// Func applies one event to a document and returns the next document.
// Implementations must not modify doc: callers keep using it after a failure.
type Func func(doc *models.Document, event *models.Event) (*models.Document, error)

// Registry maps event types to reducers.
type Registry struct {
	funcs map[models.EventType]Func
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[models.EventType]Func),
	}
}

// Register adds a reducer for eventType.
func (r *Registry) Register(eventType models.EventType, fn Func) error {
	if eventType == "" {
		return fmt.Errorf("%w: empty event type", ErrValidation)
	}
	if fn == nil {
		return fmt.Errorf("nil reducer for %q", eventType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[eventType]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, eventType)
	}
	r.funcs[eventType] = fn
	return nil
}

// MustRegister is Register for static wiring; it panics on error.
func (r *Registry) MustRegister(eventType models.EventType, fn Func) {
	if err := r.Register(eventType, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the reducer for eventType.
func (r *Registry) Lookup(eventType models.EventType) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[eventType]
	return fn, ok
}

// Has reports whether eventType has a reducer.
func (r *Registry) Has(eventType models.EventType) bool {
	_, ok := r.Lookup(eventType)
	return ok
}

// Types returns the registered event types, sorted.
func (r *Registry) Types() []models.EventType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]models.EventType, 0, len(r.funcs))
	for t := range r.funcs {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Apply runs the reducer for event against doc. An unregistered type yields an
// error wrapping ErrUnregistered; reducer failures are returned as is.
func (r *Registry) Apply(doc *models.Document, event *models.Event) (*models.Document, error) {
	fn, ok := r.Lookup(event.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q (event %s)", ErrUnregistered, event.Type, event.Key())
	}

	next, err := fn(doc, event)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", event.Type, event.Key(), err)
	}
	return next, nil
}
