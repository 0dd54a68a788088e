package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
)

// defaultParallel - сколько пиров синхронизируется одновременно в SyncAll
const defaultParallel = 4

// ErrSyncInProgress возвращается, если SyncAll уже выполняется
var ErrSyncInProgress = errors.New("sync already in progress")

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для sync.Service
type Service interface {
	// SyncPeer выполняет один обмен с пиром
	SyncPeer(ctx context.Context, peer models.DeviceInfo) (*Result, error)

	// SyncAll синхронизируется со всеми известными пирами
	SyncAll(ctx context.Context) ([]Result, error)

	// Run синхронизируется со всеми пирами каждые interval до отмены ctx
	Run(ctx context.Context, interval time.Duration)
}

// Result contains sync operation results
type Result struct {
	Err      error
	PeerID   string
	Sent     int // отправлено событий
	Received int // получено событий
	Applied  int // новых для этого устройства
}

// Options - зависимости сервиса синхронизации
type Options struct {
	Replica   Replica
	Transport Transport
	Peers     PeerSource
	Metadata  storage.MetadataStorage // водяные знаки по пирам
	Journal   storage.SyncJournal     // может быть nil
	Logger    *slog.Logger
	Parallel  int
}

type service struct {
	replica   Replica
	transport Transport
	peers     PeerSource
	metadata  storage.MetadataStorage
	journal   storage.SyncJournal
	logger    *slog.Logger
	now       func() time.Time
	running   atomic.Bool
	parallel  int
}

// NewService creates a new sync service
func NewService(opts Options) Service {
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = defaultParallel
	}
	return &service{
		replica:   opts.Replica,
		transport: opts.Transport,
		peers:     opts.Peers,
		metadata:  opts.Metadata,
		journal:   opts.Journal,
		logger:    opts.Logger,
		now:       time.Now,
		parallel:  parallel,
	}
}

// SyncPeer отправляет пиру события, добавленные после его водяного знака, и
// ключи всех известных событий; ответ сливается в локальную реплику.
// Водяной знак сдвигается только после успешного слияния.
func (s *service) SyncPeer(ctx context.Context, peer models.DeviceInfo) (result *Result, err error) {
	result = &Result{PeerID: peer.DeviceID}
	record := &storage.SyncRecord{
		StartedAt: s.now(),
		PeerID:    peer.DeviceID,
		PeerAddr:  peer.Addr(),
		Direction: storage.SyncOutbound,
	}
	defer func() {
		record.Sent = result.Sent
		record.Received = result.Received
		record.Applied = result.Applied
		s.record(ctx, record, err)
	}()

	if peer.Protocol != "" {
		if err := CheckCompatible(peer.Protocol); err != nil {
			return result, err
		}
	}

	watermark, err := s.metadata.GetPeerWatermark(ctx, peer.DeviceID)
	if err != nil {
		return result, fmt.Errorf("failed to get watermark: %w", err)
	}

	appended, last, err := s.replica.EventsSince(ctx, watermark)
	if err != nil {
		return result, fmt.Errorf("failed to get local events: %w", err)
	}

	// Собственные события пира ему не нужны
	outgoing := make([]models.Event, 0, len(appended))
	for i := range appended {
		if appended[i].DeviceID != peer.DeviceID {
			outgoing = append(outgoing, appended[i])
		}
	}

	request, err := Encode(&Envelope{
		Protocol: ProtocolVersion,
		DeviceID: s.replica.DeviceID(),
		Events:   outgoing,
		Known:    s.replica.Keys(),
	})
	if err != nil {
		return result, err
	}
	result.Sent = len(outgoing)

	s.logger.Debug("Sending sync request",
		"peer", peer.DeviceID,
		"events", len(outgoing),
		"watermark", watermark,
	)

	raw, err := s.transport.SyncWithPeer(ctx, peer, request)
	if err != nil {
		return result, fmt.Errorf("sync with %s failed: %w", peer.DeviceID, err)
	}

	reply, err := Decode(raw)
	if err != nil {
		return result, err
	}
	if reply.DeviceID != peer.DeviceID {
		s.logger.Warn("Peer answered with another device id",
			"peer", peer.DeviceID,
			"reply_device_id", reply.DeviceID,
		)
	}
	result.Received = len(reply.Events)

	applied, err := s.replica.Apply(ctx, reply.Events)
	if err != nil {
		return result, fmt.Errorf("failed to apply events from %s: %w", peer.DeviceID, err)
	}
	result.Applied = applied.Added

	if err := s.metadata.SavePeerWatermark(ctx, peer.DeviceID, last); err != nil {
		// Не прерываем: следующий обмен просто повторит те же события
		s.logger.Warn("Failed to save watermark", "peer", peer.DeviceID, "error", err)
	}

	s.logger.Info("Synchronization completed",
		"peer", peer.DeviceID,
		"sent", result.Sent,
		"received", result.Received,
		"applied", result.Applied,
	)
	return result, nil
}

func (s *service) record(ctx context.Context, record *storage.SyncRecord, err error) {
	if err != nil {
		record.Error = err.Error()
		s.logger.Warn("Sync failed", "peer", record.PeerID, "error", err)
	}
	if s.journal == nil {
		return
	}
	record.FinishedAt = s.now()
	if jerr := s.journal.Record(context.WithoutCancel(ctx), record); jerr != nil {
		s.logger.Warn("Failed to record sync", "peer", record.PeerID, "error", jerr)
	}
}

// SyncAll синхронизируется со всеми пирами параллельно. Ошибка одного пира не
// останавливает остальных и возвращается в Result.Err.
func (s *service) SyncAll(ctx context.Context) ([]Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	peers := s.peers.Peers()
	results := make([]Result, len(peers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, peer := range peers {
		g.Go(func() error {
			res, err := s.SyncPeer(gctx, peer)
			results[i] = *res
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Run запускает автоматическую синхронизацию
func (s *service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Auto sync started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Auto sync stopped")
			return
		case <-ticker.C:
			results, err := s.SyncAll(ctx)
			if err != nil {
				if !errors.Is(err, ErrSyncInProgress) && ctx.Err() == nil {
					s.logger.Warn("Auto sync failed", "error", err)
				}
				continue
			}
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			s.logger.Debug("Auto sync round finished", "peers", len(results), "failed", failed)
		}
	}
}
