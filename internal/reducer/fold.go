package reducer

import (
	"fmt"

	"github.com/iudanet/crmsync/internal/crdt"
	"github.com/iudanet/crmsync/internal/models"
)

// Rejection records an event skipped during replay because its reducer refused it.
type Rejection struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// FoldResult is the document derived from an event set.
type FoldResult struct {
	Doc      *models.Document
	Events   []models.Event // Events в порядке воспроизведения
	Rejected []Rejection
}

// Fold sorts events and folds them from the empty document.
//
// Events refused by their reducer (validation, missing reference) are skipped and
// reported: the decision depends only on the ordered event set, so every replica
// holding the same set skips the same events. An unregistered type stops the
// replay with an error wrapping ErrUnregistered.
func Fold(registry *Registry, events []models.Event) (*FoldResult, error) {
	sorted := crdt.SortEvents(events)
	doc := models.EmptyDocument()

	var rejected []Rejection
	for i := range sorted {
		next, err := registry.Apply(doc, &sorted[i])
		if err != nil {
			if !IsValidation(err) {
				return nil, fmt.Errorf("replay stopped at %s: %w", sorted[i].Key(), err)
			}
			rejected = append(rejected, Rejection{Key: sorted[i].Key(), Reason: err.Error()})
			continue
		}
		doc = next
	}

	return &FoldResult{
		Doc:      doc,
		Events:   sorted,
		Rejected: rejected,
	}, nil
}
