package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/crmsync/internal/merge/amerge"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/reducer"
	"github.com/iudanet/crmsync/internal/storage"
	"github.com/iudanet/crmsync/internal/storage/boltdb"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
}

func openStore(t *testing.T, deviceID string, log storage.EventLog) *Store {
	t.Helper()
	return openStoreAt(t, deviceID, log, fixedNow)
}

func openStoreAt(t *testing.T, deviceID string, log storage.EventLog, now func() time.Time) *Store {
	t.Helper()
	registry, err := reducer.Default()
	require.NoError(t, err)

	s, err := Open(context.Background(), Options{
		DeviceID: deviceID,
		Log:      log,
		Metadata: storage.NewMemoryMetadata(),
		Registry: registry,
		Logger:   discard,
		Now:      now,
	})
	require.NoError(t, err)
	return s
}

func mustEvent(t *testing.T, s *Store, eventType models.EventType, entityID string, payload any) models.Event {
	t.Helper()
	e, err := s.NewEvent(context.Background(), eventType, entityID, payload)
	require.NoError(t, err)
	return e
}

func TestOpen_Validation(t *testing.T) {
	registry, err := reducer.Default()
	require.NoError(t, err)

	_, err = Open(context.Background(), Options{Log: storage.NewMemoryLog(), Registry: registry})
	assert.Error(t, err)

	_, err = Open(context.Background(), Options{DeviceID: "d1", Registry: registry})
	assert.Error(t, err)
}

func TestNewEvent(t *testing.T) {
	s := openStore(t, "d1", storage.NewMemoryLog())

	e1 := mustEvent(t, s, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"})
	e2 := mustEvent(t, s, models.OrganizationDeleted, "org-1", nil)

	assert.Equal(t, "d1", e1.DeviceID)
	assert.Equal(t, "2024-05-01T10:00:00.000Z", e1.Timestamp)
	assert.Equal(t, "org-1", e1.Entity())
	assert.JSONEq(t, `{"name":"Acme"}`, string(e1.Payload))
	assert.Nil(t, e2.Payload)
	assert.NotEqual(t, e1.ID, e2.ID)

	raw := mustEvent(t, s, models.OrganizationCreated, "", []byte(`{"name":"Raw"}`))
	assert.Nil(t, raw.EntityID)
	assert.Equal(t, `{"name":"Raw"}`, string(raw.Payload))

	_, err := s.NewEvent(context.Background(), models.OrganizationCreated, "org-2", func() {})
	assert.Error(t, err)
}

func TestDispatch_Success(t *testing.T) {
	ctx := context.Background()
	log := storage.NewMemoryLog()
	s := openStore(t, "d1", log)

	res, err := s.Dispatch(ctx, []models.Event{
		mustEvent(t, s, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"}),
		mustEvent(t, s, models.AccountCreated, "acc-1", map[string]string{"name": "Main", "organizationId": "org-1"}),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)

	doc := s.Document()
	assert.Contains(t, doc.Organizations, "org-1")
	assert.Contains(t, doc.Accounts, "acc-1")

	n, err := log.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, s.Events(), 2)
	assert.Len(t, s.Keys(), 2)

	// пустой пакет ничего не меняет
	res, err = s.Dispatch(ctx, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestDispatch_ValidationAbortsWholeBatch(t *testing.T) {
	ctx := context.Background()
	log := storage.NewMemoryLog()
	s := openStore(t, "d1", log)

	before, err := s.Hash()
	require.NoError(t, err)

	res, err := s.Dispatch(ctx, []models.Event{
		mustEvent(t, s, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"}),
		mustEvent(t, s, models.NoteCreated, "n-1", map[string]string{"body": "call", "calendarEventId": "cal-404"}),
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "linked calendar event not found")

	after, err := s.Hash()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	n, err := log.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "nothing may be appended for a rejected batch")
}

func TestDispatch_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, "d1", storage.NewMemoryLog())

	e := mustEvent(t, s, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"})

	res, err := s.Dispatch(ctx, []models.Event{e, e})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, ErrDuplicateEvent.Error())

	res, err = s.Dispatch(ctx, []models.Event{e})
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = s.Dispatch(ctx, []models.Event{e})
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestDispatch_UnregisteredIsFatal(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, "d1", storage.NewMemoryLog())

	res, err := s.Dispatch(ctx, []models.Event{
		mustEvent(t, s, "invoice.created", "inv-1", map[string]string{"total": "10"}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, reducer.ErrUnregistered)
	assert.False(t, res.Success)
	assert.ErrorIs(t, s.Halted(), reducer.ErrUnregistered)

	// дальнейшие вызовы отвергаются
	_, err = s.Dispatch(ctx, []models.Event{
		mustEvent(t, s, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"}),
	})
	assert.ErrorIs(t, err, ErrHalted)

	_, err = s.Apply(ctx, nil)
	assert.ErrorIs(t, err, ErrHalted)
}

func TestDispatch_MalformedEvents(t *testing.T) {
	valid := func() models.Event {
		return models.Event{
			ID:        "evt-1-0",
			Type:      models.OrganizationCreated,
			Timestamp: "2024-05-01T10:00:00.000Z",
			DeviceID:  "d1",
			EntityID:  models.StringPtr("org-1"),
			Payload:   json.RawMessage(`{"name":"Acme"}`),
		}
	}

	tests := []struct {
		name   string
		mutate func(e *models.Event)
	}{
		{name: "no timestamp", mutate: func(e *models.Event) { e.Timestamp = "" }},
		{name: "garbage timestamp", mutate: func(e *models.Event) { e.Timestamp = "not a time" }},
		{name: "timestamp without millis", mutate: func(e *models.Event) { e.Timestamp = "2024-05-01T10:00:00Z" }},
		{name: "no id", mutate: func(e *models.Event) { e.ID = "" }},
		{name: "no device id", mutate: func(e *models.Event) { e.DeviceID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			log := storage.NewMemoryLog()
			s := openStore(t, "d1", log)

			e := valid()
			tt.mutate(&e)
			res, err := s.Dispatch(ctx, []models.Event{e})
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Contains(t, res.Error, models.ErrInvalidEvent.Error())

			n, err := log.Len(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
			assert.Empty(t, s.Events())
			assert.Empty(t, s.Document().Organizations)
		})
	}

	s := openStore(t, "d1", storage.NewMemoryLog())
	res, err := s.Dispatch(context.Background(), []models.Event{valid()})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestDispatch_PeerClockAhead(t *testing.T) {
	ctx := context.Background()
	log := storage.NewMemoryLog()
	d1 := openStore(t, "d1", log)
	d2 := openStoreAt(t, "d2", storage.NewMemoryLog(), func() time.Time {
		return fixedNow().Add(5 * time.Minute)
	})

	org := mustEvent(t, d2, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"})
	res, err := d2.Dispatch(ctx, []models.Event{org})
	require.NoError(t, err)
	require.True(t, res.Success)
	_, err = d1.Apply(ctx, d2.Events())
	require.NoError(t, err)

	// локальные часы отстают, но новое событие воспроизводится после org-1
	acc := mustEvent(t, d1, models.AccountCreated, "acc-1", map[string]string{"name": "Main", "organizationId": "org-1"})
	assert.Greater(t, acc.Timestamp, org.Timestamp)

	res, err = d1.Dispatch(ctx, []models.Event{acc})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, d1.Document().Accounts, "acc-1")
	assert.Empty(t, d1.Rejected())

	// событие с ранним временем проходит проверку по текущему документу,
	// но при воспроизведении окажется раньше org-1
	stale := models.Event{
		ID:        "evt-9-0",
		Type:      models.AccountCreated,
		Timestamp: models.FormatTimestamp(fixedNow()),
		DeviceID:  "d1",
		EntityID:  models.StringPtr("acc-2"),
		Payload:   json.RawMessage(`{"name":"Side","organizationId":"org-1"}`),
	}
	res, err = d1.Dispatch(ctx, []models.Event{stale})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, ErrReplayRejected.Error())
	assert.NotContains(t, d1.Document().Accounts, "acc-2")
	assert.False(t, d1.Contains(stale.Key()))

	n, err := log.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "rejected batch must not reach the log")
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	d1 := openStore(t, "d1", storage.NewMemoryLog())
	d2 := openStore(t, "d2", storage.NewMemoryLog())

	_, err := d1.Dispatch(ctx, []models.Event{
		mustEvent(t, d1, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"}),
	})
	require.NoError(t, err)

	res, err := d2.Apply(ctx, d1.Events())
	require.NoError(t, err)
	assert.Equal(t, ApplyResult{Received: 1, Added: 1}, res)
	assert.Contains(t, d2.Document().Organizations, "org-1")

	// повторная доставка - no-op
	res, err = d2.Apply(ctx, d1.Events())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Added)

	assert.True(t, d2.Contains(d1.Events()[0].Key()))
}

func TestApply_UnregisteredHalts(t *testing.T) {
	ctx := context.Background()
	log := storage.NewMemoryLog()
	s := openStore(t, "d1", log)

	_, err := s.Apply(ctx, []models.Event{{
		ID:        "evt-1-0",
		Type:      "invoice.created",
		Timestamp: "2024-05-01T10:00:00.000Z",
		DeviceID:  "d9",
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, reducer.ErrUnregistered)
	assert.ErrorIs(t, s.Halted(), reducer.ErrUnregistered)

	n, err := log.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDispatch_LogFailure(t *testing.T) {
	ctx := context.Background()
	log := &storage.EventLogMock{
		AllFunc: func(ctx context.Context) ([]models.Event, error) {
			return nil, nil
		},
		AppendBatchFunc: func(ctx context.Context, events []models.Event) (int, error) {
			return 0, errors.New("disk full")
		},
	}
	s := openStore(t, "d1", log)

	res, err := s.Dispatch(ctx, []models.Event{
		mustEvent(t, s, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"}),
	})
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, s.Document().Organizations, "document must not advance when the log write fails")
	assert.Len(t, log.AppendBatchCalls(), 1)
}

func TestOpen_ReplaysPersistedLog(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "store.db")

	db, err := boltdb.New(ctx, dbPath)
	require.NoError(t, err)

	s := openStore(t, "d1", db)
	first := mustEvent(t, s, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"})
	_, err = s.Dispatch(ctx, []models.Event{first})
	require.NoError(t, err)
	hash, err := s.Hash()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = boltdb.New(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close()

	// новый генератор без сохраненного состояния продолжает после событий журнала
	reopened := openStore(t, "d1", db)
	got, err := reopened.Hash()
	require.NoError(t, err)
	assert.Equal(t, hash, got)

	next := mustEvent(t, reopened, models.OrganizationUpdated, "org-1", map[string]string{"name": "Acme 2"})
	assert.NotEqual(t, first.ID, next.ID)
}

func TestTwoDevices_Converge(t *testing.T) {
	ctx := context.Background()

	for _, adapterName := range []string{"replay", "automerge"} {
		t.Run(adapterName, func(t *testing.T) {
			open := func(device string) *Store {
				registry, err := reducer.Default()
				require.NoError(t, err)
				opts := Options{
					DeviceID: device,
					Log:      storage.NewMemoryLog(),
					Registry: registry,
					Logger:   discard,
					Now:      fixedNow,
				}
				if adapterName == "automerge" {
					opts.Adapter = amerge.New(registry)
				}
				s, err := Open(ctx, opts)
				require.NoError(t, err)
				return s
			}

			d1 := open("d1")
			d2 := open("d2")

			// общий предок D0
			res, err := d1.Dispatch(ctx, []models.Event{
				mustEvent(t, d1, models.OrganizationCreated, "org-1", map[string]string{"name": "Acme"}),
			})
			require.NoError(t, err)
			require.True(t, res.Success)
			_, err = d2.Apply(ctx, d1.Events())
			require.NoError(t, err)

			// офлайн правки
			res, err = d1.Dispatch(ctx, []models.Event{
				mustEvent(t, d1, models.AccountCreated, "acc-1", map[string]string{"name": "Main", "organizationId": "org-1"}),
			})
			require.NoError(t, err)
			require.True(t, res.Success)
			res, err = d2.Dispatch(ctx, []models.Event{
				mustEvent(t, d2, models.OrganizationUpdated, "org-1", map[string]string{"name": "Acme Renamed"}),
			})
			require.NoError(t, err)
			require.True(t, res.Success)

			// обмен в обе стороны
			_, err = d1.Apply(ctx, d2.Events())
			require.NoError(t, err)
			_, err = d2.Apply(ctx, d1.Events())
			require.NoError(t, err)

			for _, s := range []*Store{d1, d2} {
				doc := s.Document()
				assert.Contains(t, doc.Accounts, "acc-1")
				assert.Equal(t, "Acme Renamed", doc.Organizations["org-1"].Fields["name"])
			}

			c1, err := d1.Document().Canonical()
			require.NoError(t, err)
			c2, err := d2.Document().Canonical()
			require.NoError(t, err)
			assert.Equal(t, c1, c2)
		})
	}
}
