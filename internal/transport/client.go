package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/iudanet/crmsync/internal/models"
)

// Client инициирует синхронизацию с пиром
type Client struct {
	auth    Authenticator
	limiter *rate.Limiter
	metrics *Metrics
	logger  *slog.Logger
	dialer  net.Dialer
	cfg     Config
}

// NewClient создает клиента. metrics может быть nil.
func NewClient(cfg Config, auth Authenticator, metrics *Metrics, logger *slog.Logger) *Client {
	if metrics == nil {
		metrics, _ = NewMetrics(nil)
	}

	limit := rate.Inf
	burst := cfg.OutboundBurst
	if cfg.OutboundRate > 0 {
		limit = rate.Limit(cfg.OutboundRate)
		if burst <= 0 {
			burst = 1
		}
	}

	return &Client{
		auth:    auth,
		limiter: rate.NewLimiter(limit, burst),
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// SyncWithPeer отправляет один аутентифицированный запрос и ждет один ответ.
// Сокет закрывается на любом пути выхода.
func (c *Client) SyncWithPeer(ctx context.Context, peer models.DeviceInfo, payload []byte) (resp []byte, err error) {
	addr := peer.Addr()
	if addr == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoPeerAddress, peer.DeviceID)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("outbound throttle: %w", err)
	}

	started := time.Now()
	defer func() {
		c.metrics.syncFinished(ctx, "outbound", started, err)
	}()

	// Один таймер на connect, запрос и ответ
	deadline := started.Add(c.cfg.timeout())
	dialCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	conn, err := c.dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, c.settle(ctx, err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetDeadline(deadline); err != nil {
		return nil, c.settle(ctx, err)
	}

	// Отмена ctx прерывает блокирующие чтение и запись
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	token, err := c.auth.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	request, err := EncodeAuthPayload(token, payload)
	if err != nil {
		return nil, err
	}

	if err := WriteFrame(conn, request, c.cfg.maxFrame()); err != nil {
		return nil, c.settle(ctx, err)
	}

	frame, err := ReadFrame(conn, c.cfg.maxFrame())
	if err != nil {
		return nil, c.settle(ctx, err)
	}

	respToken, inner, err := DecodeAuthPayload(frame)
	if err != nil {
		return nil, err
	}
	if err := c.auth.Verify(respToken); err != nil {
		return nil, err
	}

	c.logger.Debug("Sync exchange completed",
		"peer", peer.DeviceID,
		"remote_addr", addr,
		"sent", len(payload),
		"received", len(inner),
	)
	return inner, nil
}

// settle переводит ошибку сокета в ErrTimeout/ErrConnectionClosed.
// Отмена родительского контекста возвращается как есть.
func (c *Client) settle(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return mapConnError(err)
}

// mapConnError классифицирует ошибки чтения и записи. Ошибки протокола не меняются.
func mapConnError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded):
		return ErrTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrTimeout
	case errors.Is(err, ErrEmptyFrame), errors.Is(err, ErrFrameTooLarge):
		return err
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: premature close", ErrConnectionClosed)
	default:
		return fmt.Errorf("%w: %v", ErrConnectionClosed, err)
	}
}
