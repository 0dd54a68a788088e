// Package app wires storage, the document store, discovery and the sync
// transport of one device together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/iudanet/crmsync/internal/config"
	"github.com/iudanet/crmsync/internal/discovery"
	"github.com/iudanet/crmsync/internal/merge"
	"github.com/iudanet/crmsync/internal/merge/amerge"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/reducer"
	"github.com/iudanet/crmsync/internal/storage"
	"github.com/iudanet/crmsync/internal/storage/boltdb"
	"github.com/iudanet/crmsync/internal/storage/sqlite"
	"github.com/iudanet/crmsync/internal/store"
	"github.com/iudanet/crmsync/internal/sync"
	"github.com/iudanet/crmsync/internal/transport"
)

// ErrAlreadyStarted is returned by Start on a running app
var ErrAlreadyStarted = errors.New("app already started")

// Options - зависимости приложения, которые подменяются в тестах
type Options struct {
	Config        *config.Config
	Logger        *slog.Logger
	Backend       discovery.Backend    // nil - mDNS через zeroconf
	MeterProvider metric.MeterProvider // nil - глобальный провайдер otel
	Passphrase    string               // перекрывает sync.passphrase из конфига
}

// App is one running crmsync device
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	events    *boltdb.Storage
	journal   *sqlite.Storage
	store     *store.Store
	discovery *discovery.Service
	server    *transport.Server
	sync      sync.Service
	cancel    context.CancelFunc
	done      chan struct{}
}

// New opens the local databases and builds every component. Nothing listens on
// the network until Start.
func New(ctx context.Context, opts Options) (a *App, err error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a = &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.events, err = boltdb.New(ctx, cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	a.journal, err = sqlite.New(ctx, cfg.Storage.JournalPath)
	if err != nil {
		return nil, err
	}

	deviceID, err := ResolveDeviceID(ctx, cfg.Device.ID, a.events)
	if err != nil {
		return nil, err
	}
	cfg.Device.ID = deviceID
	a.logger = logger.With("device_id", deviceID)

	registry, err := reducer.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to build reducer registry: %w", err)
	}
	adapter, err := NewAdapter(cfg.Sync.MergeAdapter, registry)
	if err != nil {
		return nil, err
	}

	a.store, err = store.Open(ctx, store.Options{
		Log:      a.events,
		Metadata: a.events,
		Registry: registry,
		Adapter:  adapter,
		Logger:   a.logger,
		DeviceID: deviceID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	passphrase := opts.Passphrase
	if passphrase == "" {
		passphrase = cfg.Sync.Passphrase
	}
	auth, err := NewAuthenticator(&cfg.Sync, passphrase, deviceID)
	if err != nil {
		return nil, err
	}
	metrics, err := transport.NewMetrics(opts.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	tcfg := cfg.Sync.Transport()
	a.server = transport.NewServer(tcfg, auth, metrics, a.logger)
	a.server.SetSyncHandler(sync.NewHandler(a.store, a.journal, a.logger).Handle)
	client := transport.NewClient(tcfg, auth, metrics, a.logger)

	var peers sync.PeerSource = noPeers{}
	if cfg.Discovery.Enabled {
		backend := opts.Backend
		if backend == nil {
			backend = discovery.NewZeroconfBackend(cfg.Discovery.Refresh(), nil, a.logger)
		}
		a.discovery, err = discovery.NewService(cfg.DiscoveryService(sync.ProtocolVersion), backend, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create discovery: %w", err)
		}
		peers = a.discovery
	}

	a.sync = sync.NewService(sync.Options{
		Replica:   a.store,
		Transport: client,
		Peers:     peers,
		Metadata:  a.events,
		Journal:   a.journal,
		Logger:    a.logger,
	})

	return a, nil
}

// ResolveDeviceID returns the configured id, the persisted one or a new uuid.
// The result is persisted so the device keeps its identity across restarts.
func ResolveDeviceID(ctx context.Context, configured string, meta storage.MetadataStorage) (string, error) {
	stored, err := meta.GetDeviceID(ctx)
	if err != nil && !errors.Is(err, storage.ErrMetadataNotFound) {
		return "", fmt.Errorf("failed to load device id: %w", err)
	}

	id := configured
	if id == "" {
		id = stored
	}
	if id == "" {
		id = uuid.NewString()
	}
	if id != stored {
		if err := meta.SaveDeviceID(ctx, id); err != nil {
			return "", fmt.Errorf("failed to save device id: %w", err)
		}
	}
	return id, nil
}

// NewAdapter returns the merge adapter by its config name
func NewAdapter(name string, registry *reducer.Registry) (merge.Adapter, error) {
	switch name {
	case "", config.AdapterReplay:
		return merge.NewReplayAdapter(registry), nil
	case config.AdapterAutomerge:
		return amerge.New(registry), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownAdapter, name)
	}
}

// NewAuthenticator выбирает схему аутентификации: passphrase дает JWT,
// явный token - статический токен, иначе токен выводится из имени группы.
func NewAuthenticator(cfg *config.SyncConfig, passphrase, deviceID string) (transport.Authenticator, error) {
	switch {
	case passphrase != "":
		return transport.NewJWTAuthenticator(passphrase, cfg.Group, deviceID, cfg.TokenTTL())
	case cfg.Token != "":
		return transport.NewStaticAuthenticator(cfg.Token)
	default:
		return transport.NewGroupAuthenticator(cfg.Group)
	}
}

// Start opens the sync port, announces the device, starts browsing for peers
// and, if configured, periodic sync. It returns once everything is listening.
func (a *App) Start(ctx context.Context) error {
	if a.cancel != nil {
		return ErrAlreadyStarted
	}
	if err := a.server.Start(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})

	if a.discovery != nil {
		if err := a.discovery.StartAdvertising(runCtx); err != nil {
			a.logger.Warn("Failed to advertise", "error", err)
		}
		if err := a.discovery.StartScanning(runCtx); err != nil {
			a.logger.Warn("Failed to start scanning", "error", err)
		}
	}

	go func() {
		defer close(a.done)
		a.sync.Run(runCtx, a.cfg.Sync.AutoSyncInterval())
	}()

	a.logger.Info("Device started",
		"addr", a.server.Addr().String(),
		"discovery", a.discovery != nil,
		"auto_sync", a.cfg.Sync.AutoSyncInterval())
	return nil
}

// Stop undoes Start. The databases stay open.
func (a *App) Stop() error {
	if a.cancel == nil {
		return nil
	}
	a.cancel()
	<-a.done
	a.cancel = nil

	if a.discovery != nil {
		a.discovery.StopScanning()
		a.discovery.StopAdvertising()
	}
	return a.server.Stop()
}

// Close stops the app and closes the databases
func (a *App) Close() error {
	var errs []error
	if a.server != nil {
		errs = append(errs, a.Stop())
	}
	if a.discovery != nil {
		a.discovery.Close()
	}
	if a.journal != nil {
		errs = append(errs, a.journal.Close())
	}
	if a.events != nil {
		errs = append(errs, a.events.Close())
	}
	return errors.Join(errs...)
}

// Addr returns the sync listener address or nil before Start
func (a *App) Addr() net.Addr {
	return a.server.Addr()
}

func (a *App) DeviceID() string {
	return a.store.DeviceID()
}

func (a *App) Store() *store.Store {
	return a.store
}

func (a *App) Sync() sync.Service {
	return a.sync
}

func (a *App) Journal() storage.SyncJournal {
	return a.journal
}

// Discovery returns nil when discovery is disabled
func (a *App) Discovery() *discovery.Service {
	return a.discovery
}

// noPeers is the peer source of a device with discovery disabled
type noPeers struct{}

func (noPeers) Peers() []models.DeviceInfo {
	return nil
}
