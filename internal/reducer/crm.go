package reducer

import (
	"fmt"

	"github.com/iudanet/crmsync/internal/models"
)

// reference описывает поле payload, ссылающееся на сущность другой коллекции.
type reference struct {
	field      string
	collection string // пусто - коллекция берется из typeField
	typeField  string
	label      string
}

// entityKind описывает одну коллекцию документа и ее ссылки.
type entityKind struct {
	collection string
	label      string
	refs       []reference
}

var (
	organizationKind = entityKind{
		collection: models.CollectionOrganizations,
		label:      "organization",
	}
	accountKind = entityKind{
		collection: models.CollectionAccounts,
		label:      "account",
		refs: []reference{
			{field: "organizationId", collection: models.CollectionOrganizations, label: "organization"},
		},
	}
	contactKind = entityKind{
		collection: models.CollectionContacts,
		label:      "contact",
		refs: []reference{
			{field: "accountId", collection: models.CollectionAccounts, label: "account"},
		},
	}
	noteKind = entityKind{
		collection: models.CollectionNotes,
		label:      "note",
		refs: []reference{
			{field: "calendarEventId", collection: models.CollectionCalendarEvents, label: "linked calendar event"},
			{field: "linkedEntityId", typeField: "linkedEntityType", label: "linked entity"},
		},
	}
	relationKind = entityKind{
		collection: models.CollectionRelations,
		label:      "relation",
		refs: []reference{
			{field: "fromId", typeField: "fromType", label: "relation source"},
			{field: "toId", typeField: "toType", label: "relation target"},
		},
	}
	calendarEventKind = entityKind{
		collection: models.CollectionCalendarEvents,
		label:      "calendar event",
	}
)

// Default returns a registry with every CRM reducer registered.
func Default() (*Registry, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to compile payload schemas: %w", err)
	}

	r := NewRegistry()
	bindings := []struct {
		eventType models.EventType
		fn        Func
	}{
		{models.OrganizationCreated, created(validator, organizationKind)},
		{models.OrganizationUpdated, updated(validator, organizationKind)},
		{models.OrganizationDeleted, deleted(validator, organizationKind)},
		{models.AccountCreated, created(validator, accountKind)},
		{models.AccountUpdated, updated(validator, accountKind)},
		{models.AccountDeleted, deleted(validator, accountKind)},
		{models.ContactCreated, created(validator, contactKind)},
		{models.ContactUpdated, updated(validator, contactKind)},
		{models.ContactDeleted, deleted(validator, contactKind)},
		{models.NoteCreated, created(validator, noteKind)},
		{models.NoteUpdated, updated(validator, noteKind)},
		{models.NoteDeleted, deleted(validator, noteKind)},
		{models.RelationCreated, created(validator, relationKind)},
		{models.RelationDeleted, deleted(validator, relationKind)},
		{models.CalendarEventCreated, created(validator, calendarEventKind)},
		{models.CalendarEventUpdated, updated(validator, calendarEventKind)},
		{models.CalendarEventDeleted, deleted(validator, calendarEventKind)},
	}
	for _, b := range bindings {
		if err := r.Register(b.eventType, b.fn); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func created(v *Validator, kind entityKind) Func {
	return func(doc *models.Document, event *models.Event) (*models.Document, error) {
		id, err := entityID(event)
		if err != nil {
			return nil, err
		}
		fields, err := v.Decode(event)
		if err != nil {
			return nil, err
		}
		if _, exists := doc.Collection(kind.collection)[id]; exists {
			return nil, fmt.Errorf("%s %q: %w", kind.label, id, ErrAlreadyExists)
		}
		if err := checkRefs(doc, kind, fields); err != nil {
			return nil, err
		}

		next, coll := doc.WithCollection(kind.collection)
		coll[id] = &models.Entity{
			ID:        id,
			Fields:    fields,
			CreatedAt: event.Timestamp,
			UpdatedAt: event.Timestamp,
			CreatedBy: event.DeviceID,
			UpdatedBy: event.DeviceID,
		}
		return next, nil
	}
}

func updated(v *Validator, kind entityKind) Func {
	return func(doc *models.Document, event *models.Event) (*models.Document, error) {
		id, err := entityID(event)
		if err != nil {
			return nil, err
		}
		changes, err := v.Decode(event)
		if err != nil {
			return nil, err
		}
		existing, ok := doc.Collection(kind.collection)[id]
		if !ok {
			return nil, fmt.Errorf("%s not found: %q: %w", kind.label, id, ErrNotFound)
		}

		// Сущность заменяется копией: входной документ остается прежним
		entity := existing.Clone()
		if entity.Fields == nil {
			entity.Fields = make(map[string]any, len(changes))
		}
		for field, value := range changes {
			if value == nil {
				delete(entity.Fields, field)
				continue
			}
			entity.Fields[field] = value
		}
		if err := checkRefs(doc, kind, entity.Fields); err != nil {
			return nil, err
		}
		entity.UpdatedAt = event.Timestamp
		entity.UpdatedBy = event.DeviceID

		next, coll := doc.WithCollection(kind.collection)
		coll[id] = entity
		return next, nil
	}
}

func deleted(v *Validator, kind entityKind) Func {
	return func(doc *models.Document, event *models.Event) (*models.Document, error) {
		id, err := entityID(event)
		if err != nil {
			return nil, err
		}
		if _, err := v.Decode(event); err != nil {
			return nil, err
		}
		if _, ok := doc.Collection(kind.collection)[id]; !ok {
			return nil, fmt.Errorf("%s not found: %q: %w", kind.label, id, ErrNotFound)
		}

		next, coll := doc.WithCollection(kind.collection)
		delete(coll, id)
		return next, nil
	}
}

func entityID(event *models.Event) (string, error) {
	id := event.Entity()
	if id == "" {
		return "", fmt.Errorf("%w: entity id is required for %s", ErrValidation, event.Type)
	}
	return id, nil
}

func checkRefs(doc *models.Document, kind entityKind, fields map[string]any) error {
	for _, ref := range kind.refs {
		raw, ok := fields[ref.field]
		if !ok {
			continue
		}
		target, ok := raw.(string)
		if !ok || target == "" {
			return fmt.Errorf("%w: %s must be a non-empty string", ErrValidation, ref.field)
		}

		collection := ref.collection
		if ref.typeField != "" {
			collection, _ = fields[ref.typeField].(string)
		}
		coll := doc.Collection(collection)
		if coll == nil {
			return fmt.Errorf("%w: unknown collection %q for %s", ErrValidation, collection, ref.field)
		}
		if _, exists := coll[target]; !exists {
			return fmt.Errorf("%s not found: %q: %w", ref.label, target, ErrNotFound)
		}
	}
	return nil
}
