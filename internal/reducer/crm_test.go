package reducer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/models"
)

const ts = "2024-05-01T10:00:00Z"

func applyAll(t *testing.T, r *Registry, events ...models.Event) *models.Document {
	t.Helper()
	doc := models.EmptyDocument()
	for i := range events {
		next, err := r.Apply(doc, &events[i])
		require.NoError(t, err, "event %s", events[i].Key())
		doc = next
	}
	return doc
}

func TestDefault_RegistersAllTypes(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	for _, eventType := range []models.EventType{
		models.OrganizationCreated, models.OrganizationUpdated, models.OrganizationDeleted,
		models.AccountCreated, models.AccountUpdated, models.AccountDeleted,
		models.ContactCreated, models.ContactUpdated, models.ContactDeleted,
		models.NoteCreated, models.NoteUpdated, models.NoteDeleted,
		models.RelationCreated, models.RelationDeleted,
		models.CalendarEventCreated, models.CalendarEventUpdated, models.CalendarEventDeleted,
	} {
		assert.True(t, r.Has(eventType), eventType)
	}
}

func TestCRM_CreateUpdateDelete(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	doc := applyAll(t, r,
		newEvent("evt-1-0", ts, "d1", models.OrganizationCreated, "org-1", `{"name":"Acme"}`),
		newEvent("evt-1-1", ts, "d1", models.AccountCreated, "acc-1", `{"name":"Main","organizationId":"org-1"}`),
		newEvent("evt-1-2", "2024-05-01T11:00:00Z", "d2", models.OrganizationUpdated, "org-1", `{"name":"Acme Corp","site":"acme.io"}`),
	)

	org := doc.Organizations["org-1"]
	require.NotNil(t, org)
	assert.Equal(t, "Acme Corp", org.Fields["name"])
	assert.Equal(t, "acme.io", org.Fields["site"])
	assert.Equal(t, ts, org.CreatedAt)
	assert.Equal(t, "d1", org.CreatedBy)
	assert.Equal(t, "2024-05-01T11:00:00Z", org.UpdatedAt)
	assert.Equal(t, "d2", org.UpdatedBy)
	assert.Contains(t, doc.Accounts, "acc-1")

	// null удаляет поле
	e := newEvent("evt-1-3", ts, "d1", models.OrganizationUpdated, "org-1", `{"site":null}`)
	next, err := r.Apply(doc, &e)
	require.NoError(t, err)
	assert.NotContains(t, next.Organizations["org-1"].Fields, "site")
	assert.Contains(t, doc.Organizations["org-1"].Fields, "site", "input document must stay unchanged")

	del := newEvent("evt-1-4", ts, "d1", models.AccountDeleted, "acc-1", "")
	next, err = r.Apply(doc, &del)
	require.NoError(t, err)
	assert.NotContains(t, next.Accounts, "acc-1")
	assert.Contains(t, doc.Accounts, "acc-1", "input document must stay unchanged")
}

func TestCRM_Failures(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	base := applyAll(t, r,
		newEvent("evt-1-0", ts, "d1", models.OrganizationCreated, "org-1", `{"name":"Acme"}`),
		newEvent("evt-1-1", ts, "d1", models.ContactCreated, "c-1", `{"name":"Ann"}`),
	)

	tests := []struct {
		name    string
		event   models.Event
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing entity id",
			event:   newEvent("evt-2-0", ts, "d1", models.OrganizationCreated, "", `{"name":"X"}`),
			wantErr: ErrValidation,
		},
		{
			name:    "missing required field",
			event:   newEvent("evt-2-1", ts, "d1", models.OrganizationCreated, "org-2", `{}`),
			wantErr: ErrValidation,
		},
		{
			name:    "payload not json",
			event:   newEvent("evt-2-2", ts, "d1", models.OrganizationCreated, "org-2", `{name`),
			wantErr: ErrValidation,
		},
		{
			name:    "payload not object",
			event:   newEvent("evt-2-3", ts, "d1", models.OrganizationDeleted, "org-1", `[1,2]`),
			wantErr: ErrValidation,
		},
		{
			name:    "duplicate create",
			event:   newEvent("evt-2-4", ts, "d1", models.OrganizationCreated, "org-1", `{"name":"Again"}`),
			wantErr: ErrAlreadyExists,
		},
		{
			name:    "account without organization",
			event:   newEvent("evt-2-5", ts, "d1", models.AccountCreated, "acc-9", `{"name":"A","organizationId":"org-404"}`),
			wantErr: ErrNotFound,
			wantMsg: "organization not found",
		},
		{
			name:    "note with unknown calendar event",
			event:   newEvent("evt-2-6", ts, "d1", models.NoteCreated, "n-1", `{"body":"call back","calendarEventId":"cal-1"}`),
			wantErr: ErrNotFound,
			wantMsg: "linked calendar event not found",
		},
		{
			name:    "note linked entity type without id",
			event:   newEvent("evt-2-7", ts, "d1", models.NoteCreated, "n-1", `{"body":"x","linkedEntityType":"contacts"}`),
			wantErr: ErrValidation,
		},
		{
			name:    "relation to missing target",
			event:   newEvent("evt-2-8", ts, "d1", models.RelationCreated, "r-1", `{"kind":"works_at","fromType":"contacts","fromId":"c-1","toType":"organizations","toId":"org-9"}`),
			wantErr: ErrNotFound,
			wantMsg: "relation target not found",
		},
		{
			name:    "update missing entity",
			event:   newEvent("evt-2-9", ts, "d1", models.ContactUpdated, "c-9", `{"name":"B"}`),
			wantErr: ErrNotFound,
		},
		{
			name:    "empty update",
			event:   newEvent("evt-2-10", ts, "d1", models.ContactUpdated, "c-1", `{}`),
			wantErr: ErrValidation,
		},
		{
			name:    "delete missing entity",
			event:   newEvent("evt-2-11", ts, "d1", models.NoteDeleted, "n-404", ""),
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := base.Hash()
			require.NoError(t, err)

			_, err = r.Apply(base, &tt.event)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidation(err))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}

			after, err := base.Hash()
			require.NoError(t, err)
			assert.Equal(t, before, after, "failed reducer must not touch the input")
		})
	}
}

func TestCRM_LinkedReferences(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	doc := applyAll(t, r,
		newEvent("evt-1-0", ts, "d1", models.OrganizationCreated, "org-1", `{"name":"Acme"}`),
		newEvent("evt-1-1", ts, "d1", models.AccountCreated, "acc-1", `{"name":"Main","organizationId":"org-1"}`),
		newEvent("evt-1-2", ts, "d1", models.ContactCreated, "c-1", `{"name":"Ann","accountId":"acc-1"}`),
		newEvent("evt-1-3", ts, "d1", models.CalendarEventCreated, "cal-1", `{"title":"Demo","startsAt":"2024-05-02T09:00:00Z"}`),
		newEvent("evt-1-4", ts, "d1", models.NoteCreated, "n-1", `{"body":"prep","calendarEventId":"cal-1","linkedEntityType":"contacts","linkedEntityId":"c-1"}`),
		newEvent("evt-1-5", ts, "d1", models.RelationCreated, "r-1", `{"kind":"works_at","fromType":"contacts","fromId":"c-1","toType":"organizations","toId":"org-1"}`),
	)

	assert.Equal(t, 6, doc.Len())
	assert.Equal(t, "cal-1", doc.Notes["n-1"].Fields["calendarEventId"])
	assert.Equal(t, "org-1", doc.Relations["r-1"].Fields["toId"])
}
