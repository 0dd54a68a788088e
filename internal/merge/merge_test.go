package merge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/reducer"
)

func newAdapter(t *testing.T) *ReplayAdapter {
	t.Helper()
	registry, err := reducer.Default()
	require.NoError(t, err)
	return NewReplayAdapter(registry)
}

func event(id, ts, device string, eventType models.EventType, entity, payload string) models.Event {
	return models.Event{
		ID:        id,
		Type:      eventType,
		EntityID:  models.StringPtr(entity),
		Timestamp: ts,
		DeviceID:  device,
		Payload:   json.RawMessage(payload),
	}
}

// baseEvents: документ D0 с организацией org-1
func baseEvents() []models.Event {
	return []models.Event{
		event("evt-100-0", "2024-05-01T09:00:00Z", "d0", models.OrganizationCreated, "org-1", `{"name":"Acme"}`),
	}
}

func TestSimulateDivergence_TwoDevices(t *testing.T) {
	adapter := newAdapter(t)

	d1 := []models.Event{
		event("evt-200-0", "2024-05-01T10:00:00Z", "d1", models.AccountCreated, "acc-1", `{"name":"Main","organizationId":"org-1"}`),
	}
	d2 := []models.Event{
		event("evt-300-0", "2024-05-01T10:00:05Z", "d2", models.OrganizationUpdated, "org-1", `{"name":"Acme Renamed"}`),
	}

	div, err := SimulateDivergence(adapter, baseEvents(), d1, d2)
	require.NoError(t, err)

	// до обмена каждое устройство видит только свое изменение
	assert.Contains(t, div.Left.Doc.Accounts, "acc-1")
	assert.Equal(t, "Acme", div.Left.Doc.Organizations["org-1"].Fields["name"])
	assert.Empty(t, div.Right.Doc.Accounts)

	for name, merged := range map[string]*Replica{"left into right": div.LeftIntoRight, "right into left": div.RightIntoLeft} {
		assert.Contains(t, merged.Doc.Accounts, "acc-1", name)
		assert.Equal(t, "Acme Renamed", merged.Doc.Organizations["org-1"].Fields["name"], name)
	}

	converged, err := div.Converged()
	require.NoError(t, err)
	assert.True(t, converged)

	left, err := div.LeftIntoRight.Doc.Canonical()
	require.NoError(t, err)
	right, err := div.RightIntoLeft.Doc.Canonical()
	require.NoError(t, err)
	assert.Equal(t, left, right, "documents must be bit-for-bit equal")
}

func TestReplayAdapter_MergeDoesNotModifyInputs(t *testing.T) {
	adapter := newAdapter(t)

	left, err := adapter.Replica(baseEvents())
	require.NoError(t, err)
	right, err := adapter.Replica(append(baseEvents(),
		event("evt-200-0", "2024-05-01T10:00:00Z", "d1", models.ContactCreated, "c-1", `{"name":"Ann"}`)))
	require.NoError(t, err)

	leftHash, err := left.Hash()
	require.NoError(t, err)

	merged, err := adapter.Merge(left, right)
	require.NoError(t, err)
	assert.Len(t, merged.Events, 2)
	assert.Contains(t, merged.Doc.Contacts, "c-1")

	after, err := left.Hash()
	require.NoError(t, err)
	assert.Equal(t, leftHash, after)
	assert.Len(t, left.Events, 1)
}

func TestReplayAdapter_RejectedAreDeterministic(t *testing.T) {
	adapter := newAdapter(t)

	// оба устройства создают org-2: второе создание отвергается на обеих сторонах
	a, err := adapter.Replica([]models.Event{
		event("evt-1-0", "2024-05-01T10:00:00Z", "d1", models.OrganizationCreated, "org-2", `{"name":"From d1"}`),
	})
	require.NoError(t, err)
	b, err := adapter.Replica([]models.Event{
		event("evt-1-0", "2024-05-01T10:00:00Z", "d2", models.OrganizationCreated, "org-2", `{"name":"From d2"}`),
	})
	require.NoError(t, err)

	ab, err := adapter.Merge(a, b)
	require.NoError(t, err)
	ba, err := adapter.Merge(b, a)
	require.NoError(t, err)

	assert.Equal(t, "From d1", ab.Doc.Organizations["org-2"].Fields["name"])
	require.Len(t, ab.Rejected, 1)
	assert.Equal(t, "d2/evt-1-0", ab.Rejected[0].Key)
	assert.Equal(t, ab.Rejected, ba.Rejected)
}

func TestReplayAdapter_UnregisteredIsFatal(t *testing.T) {
	adapter := newAdapter(t)

	left, err := adapter.Replica(baseEvents())
	require.NoError(t, err)

	right := &Replica{
		Doc:    models.EmptyDocument(),
		Events: []models.Event{event("evt-1-0", "2024-05-01T10:00:00Z", "d9", "invoice.created", "inv-1", `{}`)},
	}

	_, err = adapter.Merge(left, right)
	assert.ErrorIs(t, err, reducer.ErrUnregistered)
}

func TestCheckLaws(t *testing.T) {
	adapter := newAdapter(t)

	a, err := adapter.Replica(baseEvents())
	require.NoError(t, err)
	b, err := adapter.Replica(append(baseEvents(),
		event("evt-2-0", "2024-05-01T10:00:00Z", "d1", models.AccountCreated, "acc-1", `{"name":"Main","organizationId":"org-1"}`)))
	require.NoError(t, err)
	c, err := adapter.Replica(append(baseEvents(),
		event("evt-3-0", "2024-05-01T10:00:00Z", "d2", models.OrganizationUpdated, "org-1", `{"name":"Acme 3"}`)))
	require.NoError(t, err)

	assert.NoError(t, CheckLaws(adapter, a, b, c))
}

// brokenAdapter теряет правую сторону при слиянии
type brokenAdapter struct {
	*ReplayAdapter
}

func (b brokenAdapter) Merge(left, _ *Replica) (*Replica, error) {
	return b.Clone(left), nil
}

func TestCheckLaws_DetectsViolation(t *testing.T) {
	adapter := brokenAdapter{newAdapter(t)}

	a, err := adapter.Replica(baseEvents())
	require.NoError(t, err)
	b, err := adapter.Replica([]models.Event{
		event("evt-2-0", "2024-05-01T10:00:00Z", "d1", models.ContactCreated, "c-1", `{"name":"Ann"}`),
	})
	require.NoError(t, err)

	err = CheckLaws(adapter, a, b, a)
	assert.ErrorIs(t, err, ErrLawViolated)
	assert.Contains(t, err.Error(), "commutativity")
}

func TestCloneReplica(t *testing.T) {
	adapter := newAdapter(t)
	r, err := adapter.Replica(baseEvents())
	require.NoError(t, err)
	r.Snapshot = []byte{1, 2, 3}

	c := CloneReplica(r)
	c.Events[0].ID = "changed"
	c.Doc.Organizations["org-1"].Fields["name"] = "changed"
	c.Snapshot[0] = 9

	assert.Equal(t, "evt-100-0", r.Events[0].ID)
	assert.Equal(t, "Acme", r.Doc.Organizations["org-1"].Fields["name"])
	assert.Equal(t, byte(1), r.Snapshot[0])
}
