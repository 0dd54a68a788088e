package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntity(id string, fields map[string]any) *Entity {
	return &Entity{
		ID:        id,
		Fields:    fields,
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
		CreatedBy: "d1",
		UpdatedBy: "d1",
	}
}

func TestEvent_Clone(t *testing.T) {
	original := Event{
		ID:        "evt-1-0",
		Type:      "account.created",
		EntityID:  StringPtr("acc-1"),
		Payload:   json.RawMessage(`{"name":"Acme"}`),
		Timestamp: "2024-01-01T00:00:00Z",
		DeviceID:  "d1",
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	// Модификация оригинала не должна влиять на клон
	*original.EntityID = "acc-2"
	original.Payload[2] = 'X'
	assert.Equal(t, "acc-1", clone.Entity())
	assert.Equal(t, `{"name":"Acme"}`, string(clone.Payload))
}

func TestEvent_Key(t *testing.T) {
	e := Event{ID: "evt-5-1", DeviceID: "d9"}
	assert.Equal(t, "d9/evt-5-1", e.Key())
	assert.Equal(t, "", e.Entity())
}

func TestEvent_Validate(t *testing.T) {
	valid := Event{ID: "evt-1-0", DeviceID: "d1", Type: "note.created", Timestamp: "2024-01-01T00:00:00.000Z"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(e *Event)
	}{
		{name: "no id", mutate: func(e *Event) { e.ID = "" }},
		{name: "no device", mutate: func(e *Event) { e.DeviceID = "" }},
		{name: "no type", mutate: func(e *Event) { e.Type = "" }},
		{name: "no timestamp", mutate: func(e *Event) { e.Timestamp = "" }},
		{name: "timestamp without millis", mutate: func(e *Event) { e.Timestamp = "2024-01-01T00:00:00Z" }},
		{name: "timestamp with offset", mutate: func(e *Event) { e.Timestamp = "2024-01-01T00:00:00.000+02:00" }},
		{name: "garbage timestamp", mutate: func(e *Event) { e.Timestamp = "yesterday" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid.Clone()
			tt.mutate(&e)
			assert.ErrorIs(t, e.Validate(), ErrInvalidEvent)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-01T10:00:00.250Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 250*int(time.Millisecond), time.UTC), ts)

	_, err = ParseTimestamp("2024-05-01T10:00:00.25Z")
	assert.Error(t, err)
}

func TestDocument_Clone(t *testing.T) {
	doc := EmptyDocument()
	doc.Organizations["org-1"] = testEntity("org-1", map[string]any{
		"name": "Acme",
		"tags": []any{"a", "b"},
		"addr": map[string]any{"city": "Oslo"},
	})

	clone := doc.Clone()
	require.Equal(t, doc, clone)

	doc.Organizations["org-1"].Fields["name"] = "Other"
	doc.Organizations["org-1"].Fields["tags"].([]any)[0] = "z"
	doc.Organizations["org-1"].Fields["addr"].(map[string]any)["city"] = "Bergen"

	assert.Equal(t, "Acme", clone.Organizations["org-1"].Fields["name"])
	assert.Equal(t, "a", clone.Organizations["org-1"].Fields["tags"].([]any)[0])
	assert.Equal(t, "Oslo", clone.Organizations["org-1"].Fields["addr"].(map[string]any)["city"])
}

func TestDocument_WithCollection(t *testing.T) {
	doc := EmptyDocument()
	doc.Accounts["acc-1"] = testEntity("acc-1", nil)

	next, accounts := doc.WithCollection(CollectionAccounts)
	accounts["acc-2"] = testEntity("acc-2", nil)

	assert.Len(t, doc.Accounts, 1, "input document must stay unchanged")
	assert.Len(t, next.Accounts, 2)
	assert.Equal(t, 2, next.Len())
}

func TestDocument_Collection(t *testing.T) {
	doc := EmptyDocument()
	for _, name := range Collections {
		assert.NotNil(t, doc.Collection(name), name)
	}
	assert.Nil(t, doc.Collection("unknown"))
}

func TestDocument_Hash(t *testing.T) {
	build := func(order []string) *Document {
		doc := EmptyDocument()
		for _, id := range order {
			doc.Contacts[id] = testEntity(id, map[string]any{"z": 1.0, "a": "x"})
		}
		return doc
	}

	h1, err := build([]string{"c1", "c2", "c3"}).Hash()
	require.NoError(t, err)
	h2, err := build([]string{"c3", "c1", "c2"}).Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "insertion order must not affect the hash")

	other := build([]string{"c1"})
	h3, err := other.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestDeviceInfo_Addr(t *testing.T) {
	assert.Equal(t, "", (&DeviceInfo{IPAddress: "10.0.0.1"}).Addr())
	assert.Equal(t, "10.0.0.1:8765", (&DeviceInfo{IPAddress: "10.0.0.1", Port: 8765}).Addr())
	assert.Equal(t, "[fe80::1]:8765", (&DeviceInfo{IPAddress: "fe80::1", Port: 8765}).Addr())
}
