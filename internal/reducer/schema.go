package reducer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/iudanet/crmsync/internal/models"
)

const schemaBaseURL = "https://crmsync.local/schemas/"

// Схемы payload для событий создания. Поля сверх перечисленных допускаются
// и сохраняются в сущности как есть.
var createSchemas = map[models.EventType]string{
	models.OrganizationCreated: `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string", "minLength": 1}}
	}`,
	models.AccountCreated: `{
		"type": "object",
		"required": ["name", "organizationId"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"organizationId": {"type": "string", "minLength": 1}
		}
	}`,
	models.ContactCreated: `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"email": {"type": "string"},
			"accountId": {"type": "string", "minLength": 1}
		}
	}`,
	models.NoteCreated: `{
		"type": "object",
		"required": ["body"],
		"properties": {
			"body": {"type": "string", "minLength": 1},
			"calendarEventId": {"type": "string", "minLength": 1},
			"linkedEntityType": {"enum": ["organizations", "accounts", "contacts"]},
			"linkedEntityId": {"type": "string", "minLength": 1}
		},
		"dependentRequired": {
			"linkedEntityType": ["linkedEntityId"],
			"linkedEntityId": ["linkedEntityType"]
		}
	}`,
	models.RelationCreated: `{
		"type": "object",
		"required": ["kind", "fromType", "fromId", "toType", "toId"],
		"properties": {
			"kind": {"type": "string", "minLength": 1},
			"fromType": {"enum": ["organizations", "accounts", "contacts"]},
			"fromId": {"type": "string", "minLength": 1},
			"toType": {"enum": ["organizations", "accounts", "contacts"]},
			"toId": {"type": "string", "minLength": 1}
		}
	}`,
	models.CalendarEventCreated: `{
		"type": "object",
		"required": ["title", "startsAt"],
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"startsAt": {"type": "string", "minLength": 1},
			"endsAt": {"type": "string"}
		}
	}`,
}

// updateSchema: хотя бы одно поле; null удаляет поле.
const updateSchema = `{"type": "object", "minProperties": 1}`

// deleteSchema: payload удаления не несет данных.
const deleteSchema = `{"type": ["object", "null"]}`

// Validator validates event payloads against compiled JSON Schemas.
type Validator struct {
	schemas map[models.EventType]*jsonschema.Schema
}

// NewValidator compiles the schemas for the default CRM event types.
func NewValidator() (*Validator, error) {
	v := &Validator{
		schemas: make(map[models.EventType]*jsonschema.Schema),
	}

	for eventType, schema := range createSchemas {
		if err := v.Add(eventType, schema); err != nil {
			return nil, err
		}
	}
	for _, eventType := range []models.EventType{
		models.OrganizationUpdated, models.AccountUpdated, models.ContactUpdated,
		models.NoteUpdated, models.CalendarEventUpdated,
	} {
		if err := v.Add(eventType, updateSchema); err != nil {
			return nil, err
		}
	}
	for _, eventType := range []models.EventType{
		models.OrganizationDeleted, models.AccountDeleted, models.ContactDeleted,
		models.NoteDeleted, models.RelationDeleted, models.CalendarEventDeleted,
	} {
		if err := v.Add(eventType, deleteSchema); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Add compiles schema and binds it to eventType.
func (v *Validator) Add(eventType models.EventType, schema string) error {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	schemaURL := schemaBaseURL + strings.ReplaceAll(string(eventType), ".", "/") + ".schema.json"
	if err := c.AddResource(schemaURL, strings.NewReader(schema)); err != nil {
		return fmt.Errorf("schema load failed for %q: %w", eventType, err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("schema compile failed for %q: %w", eventType, err)
	}
	v.schemas[eventType] = compiled
	return nil
}

// Decode validates the payload of event and returns it decoded. Types without a
// schema only need a JSON object or null payload.
func (v *Validator) Decode(event *models.Event) (map[string]any, error) {
	raw := bytes.TrimSpace(event.Payload)
	if len(raw) == 0 {
		raw = []byte("null")
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%w: payload is not valid JSON: %v", ErrValidation, err)
	}

	if schema, ok := v.schemas[event.Type]; ok {
		if err := schema.Validate(value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	switch t := value.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: payload must be an object", ErrValidation)
	}
}
