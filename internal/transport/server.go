package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime/debug"
	"strconv"
	"sync"
	"time"
)

// contextKey тип для ключей контекста
type contextKey string

// peerAddrKey ключ для адреса удаленной стороны в контексте обработчика
const peerAddrKey contextKey = "peer_addr"

// PeerAddr извлекает адрес удаленной стороны из контекста SyncHandler
func PeerAddr(ctx context.Context) (string, bool) {
	addr, ok := ctx.Value(peerAddrKey).(string)
	return addr, ok
}

// SyncHandler принимает inner payload запроса и возвращает inner payload ответа
type SyncHandler func(ctx context.Context, request []byte) ([]byte, error)

// Config - параметры транспорта синхронизации
type Config struct {
	BindAddress         string
	Port                int
	Timeout             time.Duration
	MaxConnections      int
	MaxConnectionsPerIP int
	RateLimitWindow     time.Duration
	RateLimitMax        int
	MaxFrameBytes       int
	// OutboundRate - исходящих синхронизаций в секунду, 0 без ограничения
	OutboundRate  float64
	OutboundBurst int
}

// DefaultConfig возвращает значения по умолчанию
func DefaultConfig() Config {
	return Config{
		BindAddress:         "127.0.0.1",
		Port:                8765,
		Timeout:             10 * time.Second,
		MaxConnections:      8,
		MaxConnectionsPerIP: 4,
		RateLimitWindow:     10 * time.Second,
		RateLimitMax:        20,
		MaxFrameBytes:       DefaultMaxFrameBytes,
	}
}

func (c Config) maxFrame() int {
	if c.MaxFrameBytes <= 0 {
		return DefaultMaxFrameBytes
	}
	return c.MaxFrameBytes
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultConfig().Timeout
	}
	return c.Timeout
}

// Server принимает входящие синхронизации: одно соединение - один запрос и один ответ
type Server struct {
	listener  net.Listener
	auth      Authenticator
	logger    *slog.Logger
	metrics   *Metrics
	admission *Admission
	handler   SyncHandler
	conns     map[net.Conn]struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	cfg       Config
	mu        sync.Mutex
}

// NewServer создает сервер. metrics может быть nil.
func NewServer(cfg Config, auth Authenticator, metrics *Metrics, logger *slog.Logger) *Server {
	if metrics == nil {
		metrics, _ = NewMetrics(nil)
	}
	return &Server{
		cfg:     cfg,
		auth:    auth,
		metrics: metrics,
		logger:  logger,
		conns:   make(map[net.Conn]struct{}),
	}
}

// SetSyncHandler регистрирует обработчик обмена
func (s *Server) SetSyncHandler(h SyncHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// Start открывает listening socket и начинает принимать соединения
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return ErrServerStarted
	}

	addr := net.JoinHostPort(s.cfg.BindAddress, strconv.Itoa(s.cfg.Port))
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.listener = ln
	s.admission = NewAdmission(AdmissionConfig{
		MaxConnections:      s.cfg.MaxConnections,
		MaxConnectionsPerIP: s.cfg.MaxConnectionsPerIP,
		RateLimitMax:        s.cfg.RateLimitMax,
		RateLimitWindow:     s.cfg.RateLimitWindow,
	})

	// Контекст живет до Stop, а не до возврата из Start
	serveCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.wg.Add(1)
	go s.acceptLoop(serveCtx, ln, s.admission)

	s.logger.Info("Sync server started", "addr", ln.Addr().String())
	return nil
}

// Addr возвращает фактический адрес listener или nil, если сервер не запущен
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop закрывает listener, разрывает открытые соединения и сбрасывает счетчики.
// Повторный вызов ничего не делает.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.listener == nil {
		s.mu.Unlock()
		return nil
	}

	err := s.listener.Close()
	s.listener = nil
	s.cancel()
	for conn := range s.conns {
		_ = conn.Close()
	}
	admission := s.admission
	s.mu.Unlock()

	s.wg.Wait()

	admission.Stop()
	admission.Reset()

	s.mu.Lock()
	clear(s.conns)
	s.mu.Unlock()

	s.logger.Info("Sync server stopped")
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("failed to close listener: %w", err)
	}
	return nil
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener, admission *Admission) {
	defer s.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			s.logger.Warn("Accept failed", "error", err)
			continue
		}

		ip := remoteIP(conn.RemoteAddr())
		if decision := admission.Admit(ip); decision != Admitted {
			// Отказ без ответа: отклоненная сторона ничего не узнает
			s.logger.Warn("Connection rejected",
				"remote_addr", conn.RemoteAddr().String(),
				"reason", decision.String(),
			)
			s.metrics.connectionRejected(ctx, decision.String())
			_ = conn.Close()
			continue
		}

		if !s.track(conn) {
			// Stop уже начался
			admission.Release(ip)
			_ = conn.Close()
			return
		}
		s.metrics.connectionAccepted(ctx)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer admission.Release(ip)
			defer s.untrack(conn)
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
	_ = conn.Close()
}

// serveConn выполняет Authenticating -> Exchanging -> Closed для одного соединения
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	started := time.Now()
	remote := conn.RemoteAddr().String()

	var err error
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered",
				"error", r,
				"remote_addr", remote,
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("panic: %v", r)
		}
		s.metrics.syncFinished(ctx, "inbound", started, err)
	}()

	// Один таймер на весь обмен
	deadline := started.Add(s.cfg.timeout())
	if err = conn.SetDeadline(deadline); err != nil {
		return
	}

	var resp []byte
	resp, err = s.exchange(ctx, conn, deadline)
	if err != nil {
		s.logger.Warn("Sync exchange failed", "remote_addr", remote, "error", err)
		if isProtocolError(err) {
			s.metrics.connectionRejected(ctx, "protocol")
		}
		return
	}

	if err = WriteFrame(conn, resp, s.cfg.maxFrame()); err != nil {
		s.logger.Warn("Failed to write response", "remote_addr", remote, "error", err)
		return
	}

	s.logger.Debug("Sync exchange completed",
		"remote_addr", remote,
		"duration", time.Since(started),
	)
}

// exchange читает и проверяет запрос, вызывает обработчик и возвращает готовый к отправке payload
func (s *Server) exchange(ctx context.Context, conn net.Conn, deadline time.Time) ([]byte, error) {
	frame, err := ReadFrame(conn, s.cfg.maxFrame())
	if err != nil {
		return nil, mapConnError(err)
	}

	token, inner, err := DecodeAuthPayload(frame)
	if err != nil {
		return nil, err
	}
	if err := s.auth.Verify(token); err != nil {
		return nil, err
	}

	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler == nil {
		return nil, ErrNoHandler
	}

	hctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	hctx = context.WithValue(hctx, peerAddrKey, conn.RemoteAddr().String())

	out, err := handler(hctx, inner)
	if err != nil {
		return nil, fmt.Errorf("sync handler failed: %w", err)
	}

	respToken, err := s.auth.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to issue response token: %w", err)
	}
	return EncodeAuthPayload(respToken, out)
}

func isProtocolError(err error) bool {
	for _, target := range []error{
		ErrEmptyFrame, ErrFrameTooLarge, ErrMalformedAuth,
		ErrTokenLength, ErrEmptyPayload, ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func remoteIP(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
