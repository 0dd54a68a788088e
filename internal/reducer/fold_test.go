package reducer

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/models"
)

func TestFold_Deterministic(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	events := []models.Event{
		newEvent("evt-1-0", "2024-05-01T10:00:00Z", "d1", models.OrganizationCreated, "org-1", `{"name":"Acme"}`),
		newEvent("evt-1-1", "2024-05-01T10:00:01Z", "d1", models.AccountCreated, "acc-1", `{"name":"Main","organizationId":"org-1"}`),
		newEvent("evt-5-0", "2024-05-01T10:00:02Z", "d2", models.OrganizationUpdated, "org-1", `{"name":"Acme 2"}`),
	}

	first, err := Fold(r, events)
	require.NoError(t, err)

	reversed := slices.Clone(events)
	slices.Reverse(reversed)
	second, err := Fold(r, reversed)
	require.NoError(t, err)

	h1, err := first.Doc.Hash()
	require.NoError(t, err)
	h2, err := second.Doc.Hash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, first.Events, second.Events)
	assert.Equal(t, "Acme 2", first.Doc.Organizations["org-1"].Fields["name"])
	assert.Empty(t, first.Rejected)
}

func TestFold_SkipsRejected(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	events := []models.Event{
		// аккаунт раньше организации: ссылка не находится
		newEvent("evt-1-0", "2024-05-01T10:00:00Z", "d1", models.AccountCreated, "acc-1", `{"name":"Main","organizationId":"org-1"}`),
		newEvent("evt-1-1", "2024-05-01T10:00:01Z", "d1", models.OrganizationCreated, "org-1", `{"name":"Acme"}`),
	}

	res, err := Fold(r, events)
	require.NoError(t, err)

	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "d1/evt-1-0", res.Rejected[0].Key)
	assert.Contains(t, res.Rejected[0].Reason, "organization not found")
	assert.Len(t, res.Events, 2)
	assert.Empty(t, res.Doc.Accounts)
	assert.Contains(t, res.Doc.Organizations, "org-1")
}

func TestFold_UnregisteredIsFatal(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	events := []models.Event{
		newEvent("evt-1-0", "2024-05-01T10:00:00Z", "d1", models.OrganizationCreated, "org-1", `{"name":"Acme"}`),
		newEvent("evt-1-1", "2024-05-01T10:00:01Z", "d1", "invoice.created", "inv-1", `{}`),
	}

	res, err := Fold(r, events)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUnregistered)
}

func TestFold_Empty(t *testing.T) {
	res, err := Fold(NewRegistry(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Doc.Len())
	assert.Empty(t, res.Events)
}
