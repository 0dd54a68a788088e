package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/crmsync/internal/storage"
	"github.com/iudanet/crmsync/internal/transport"
)

// Handler обслуживает входящие синхронизации
type Handler struct {
	replica Replica
	journal storage.SyncJournal
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler создает обработчик. journal может быть nil.
func NewHandler(replica Replica, journal storage.SyncJournal, logger *slog.Logger) *Handler {
	return &Handler{
		replica: replica,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle принимает события пира, сливает их и возвращает события, которых
// у пира нет. Сигнатура совпадает с transport.SyncHandler.
func (h *Handler) Handle(ctx context.Context, request []byte) (response []byte, err error) {
	record := &storage.SyncRecord{
		StartedAt: h.now(),
		Direction: storage.SyncInbound,
	}
	record.PeerAddr, _ = transport.PeerAddr(ctx)
	defer func() {
		h.record(ctx, record, err)
	}()

	req, err := Decode(request)
	if err != nil {
		return nil, err
	}
	record.PeerID = req.DeviceID
	record.Received = len(req.Events)

	result, err := h.replica.Apply(ctx, req.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to apply events from %s: %w", req.DeviceID, err)
	}
	record.Applied = result.Added

	// Отвечаем тем, чего нет ни в Known, ни в самом запросе
	reply := missing(h.replica.Events(), keySet(req.Known, req.Events))
	record.Sent = len(reply)

	h.logger.Info("Inbound sync",
		"peer", req.DeviceID,
		"remote_addr", record.PeerAddr,
		"received", record.Received,
		"applied", record.Applied,
		"sent", record.Sent,
	)

	return Encode(&Envelope{
		Protocol: ProtocolVersion,
		DeviceID: h.replica.DeviceID(),
		Events:   reply,
	})
}

func (h *Handler) record(ctx context.Context, record *storage.SyncRecord, err error) {
	if err != nil {
		record.Error = err.Error()
		h.logger.Warn("Inbound sync failed", "remote_addr", record.PeerAddr, "error", err)
	}
	if h.journal == nil {
		return
	}
	record.FinishedAt = h.now()
	if jerr := h.journal.Record(context.WithoutCancel(ctx), record); jerr != nil {
		h.logger.Warn("Failed to record sync", "error", jerr)
	}
}
