package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/gowebpki/jcs"
)

// Collection names of the Document.
const (
	CollectionOrganizations  = "organizations"
	CollectionAccounts       = "accounts"
	CollectionContacts       = "contacts"
	CollectionNotes          = "notes"
	CollectionRelations      = "relations"
	CollectionCalendarEvents = "calendarEvents"
)

// Collections lists every collection in a fixed order.
var Collections = []string{
	CollectionOrganizations,
	CollectionAccounts,
	CollectionContacts,
	CollectionNotes,
	CollectionRelations,
	CollectionCalendarEvents,
}

// Entity представляет запись в одной из коллекций документа.
// Fields хранит пользовательские поля, которые обновляются по отдельности.
type Entity struct {
	Fields    map[string]any `json:"fields"`    // Fields произвольные поля сущности
	ID        string         `json:"id"`        // ID идентификатор сущности
	CreatedAt string         `json:"createdAt"` // CreatedAt timestamp события создания
	UpdatedAt string         `json:"updatedAt"` // UpdatedAt timestamp последнего изменения
	CreatedBy string         `json:"createdBy"` // CreatedBy устройство, создавшее сущность
	UpdatedBy string         `json:"updatedBy"` // UpdatedBy устройство, изменившее сущность последним
}

// Clone создает глубокую копию сущности
func (e *Entity) Clone() *Entity {
	out := *e
	out.Fields = cloneFields(e.Fields)
	return &out
}

// Document is the replicated aggregate root. It is never edited by hand: it is
// always the fold of an ordered event log through the reducer registry.
type Document struct {
	Organizations  map[string]*Entity `json:"organizations"`
	Accounts       map[string]*Entity `json:"accounts"`
	Contacts       map[string]*Entity `json:"contacts"`
	Notes          map[string]*Entity `json:"notes"`
	Relations      map[string]*Entity `json:"relations"`
	CalendarEvents map[string]*Entity `json:"calendarEvents"`
}

// EmptyDocument returns the fixed initial state every replay starts from.
func EmptyDocument() *Document {
	return &Document{
		Organizations:  make(map[string]*Entity),
		Accounts:       make(map[string]*Entity),
		Contacts:       make(map[string]*Entity),
		Notes:          make(map[string]*Entity),
		Relations:      make(map[string]*Entity),
		CalendarEvents: make(map[string]*Entity),
	}
}

// Collection returns the named collection or nil if the name is unknown.
func (d *Document) Collection(name string) map[string]*Entity {
	switch name {
	case CollectionOrganizations:
		return d.Organizations
	case CollectionAccounts:
		return d.Accounts
	case CollectionContacts:
		return d.Contacts
	case CollectionNotes:
		return d.Notes
	case CollectionRelations:
		return d.Relations
	case CollectionCalendarEvents:
		return d.CalendarEvents
	default:
		return nil
	}
}

// WithCollection returns a shallow copy of the document whose named collection is
// replaced by a fresh copy of the map. Entities themselves are shared, so callers
// must replace, not edit, the entities they change.
func (d *Document) WithCollection(name string) (*Document, map[string]*Entity) {
	out := *d
	coll := maps.Clone(d.Collection(name))
	if coll == nil {
		coll = make(map[string]*Entity)
	}
	switch name {
	case CollectionOrganizations:
		out.Organizations = coll
	case CollectionAccounts:
		out.Accounts = coll
	case CollectionContacts:
		out.Contacts = coll
	case CollectionNotes:
		out.Notes = coll
	case CollectionRelations:
		out.Relations = coll
	case CollectionCalendarEvents:
		out.CalendarEvents = coll
	}
	return &out, coll
}

// Clone создает полностью независимую копию документа
func (d *Document) Clone() *Document {
	out := EmptyDocument()
	for _, name := range Collections {
		dst := out.Collection(name)
		for id, e := range d.Collection(name) {
			dst[id] = e.Clone()
		}
	}
	return out
}

// Len returns the total number of entities across all collections.
func (d *Document) Len() int {
	n := 0
	for _, name := range Collections {
		n += len(d.Collection(name))
	}
	return n
}

// Canonical returns the RFC 8785 canonical JSON form of the document.
func (d *Document) Canonical() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize document: %w", err)
	}
	return canonical, nil
}

// Hash returns the hex SHA-256 of the canonical form. Replicas that folded the same
// event set have equal hashes.
func (d *Document) Hash() (string, error) {
	canonical, err := d.Canonical()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func cloneFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneFields(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	default:
		return v
	}
}
