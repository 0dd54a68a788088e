package transport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/iudanet/crmsync/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Port = 0
	cfg.Timeout = 2 * time.Second
	return cfg
}

func mustStatic(t *testing.T, token string) *StaticAuthenticator {
	t.Helper()
	a, err := NewStaticAuthenticator(token)
	require.NoError(t, err)
	return a
}

func startServer(t *testing.T, cfg Config, auth Authenticator, metrics *Metrics, h SyncHandler) *Server {
	t.Helper()
	s := NewServer(cfg, auth, metrics, testLogger())
	if h != nil {
		s.SetSyncHandler(h)
	}
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func peerOf(t *testing.T, addr net.Addr) models.DeviceInfo {
	t.Helper()
	tcp, ok := addr.(*net.TCPAddr)
	require.True(t, ok)
	return models.DeviceInfo{DeviceID: "peer-1", IPAddress: tcp.IP.String(), Port: tcp.Port}
}

func upper(_ context.Context, req []byte) ([]byte, error) {
	return []byte(strings.ToUpper(string(req))), nil
}

func TestServer_Exchange(t *testing.T) {
	auth := mustStatic(t, "shared")

	var gotAddr atomic.Value
	s := startServer(t, testConfig(), auth, nil, func(ctx context.Context, req []byte) ([]byte, error) {
		addr, _ := PeerAddr(ctx)
		gotAddr.Store(addr)
		return upper(ctx, req)
	})

	c := NewClient(testConfig(), auth, nil, testLogger())
	resp, err := c.SyncWithPeer(context.Background(), peerOf(t, s.Addr()), []byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, "PING", string(resp))
	assert.Contains(t, gotAddr.Load(), "127.0.0.1:")

	// счетчики освобождены после обмена
	assert.Eventually(t, func() bool { return s.admission.Open() == 0 }, time.Second, 10*time.Millisecond)
}

func TestServer_TokenMismatch(t *testing.T) {
	var called atomic.Bool
	s := startServer(t, testConfig(), mustStatic(t, "server-token"), nil, func(ctx context.Context, req []byte) ([]byte, error) {
		called.Store(true)
		return req, nil
	})

	c := NewClient(testConfig(), mustStatic(t, "client-token"), nil, testLogger())
	_, err := c.SyncWithPeer(context.Background(), peerOf(t, s.Addr()), []byte("ping"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectionClosed)
	assert.False(t, called.Load(), "handler must not run for a rejected token")
}

func TestServer_OversizedFrameClosesConnection(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFrameBytes = 16
	s := startServer(t, cfg, mustStatic(t, "tok"), nil, upper)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte{0, 0, 1, 0})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, err = conn.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestServer_NoHandler(t *testing.T) {
	auth := mustStatic(t, "tok")
	s := startServer(t, testConfig(), auth, nil, nil)

	c := NewClient(testConfig(), auth, nil, testLogger())
	_, err := c.SyncWithPeer(context.Background(), peerOf(t, s.Addr()), []byte("ping"))
	assert.ErrorIs(t, err, ErrConnectionClosed)
}

func TestServer_AdmissionPerIP(t *testing.T) {
	cfg := testConfig()
	cfg.MaxConnectionsPerIP = 2
	s := startServer(t, cfg, mustStatic(t, "tok"), nil, upper)

	// Два соединения висят в Authenticating
	for i := 0; i < 2; i++ {
		conn, err := net.Dial("tcp", s.Addr().String())
		require.NoError(t, err)
		defer conn.Close()
	}
	require.Eventually(t, func() bool { return s.admission.Open() == 2 }, time.Second, 10*time.Millisecond)

	third, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer third.Close()

	require.NoError(t, third.SetReadDeadline(time.Now().Add(time.Second)))
	_, err = third.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF, "third connection must be closed without a response")
	assert.Equal(t, 2, s.admission.Open())
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 3
	cfg.RateLimitWindow = 300 * time.Millisecond
	auth := mustStatic(t, "tok")
	s := startServer(t, cfg, auth, nil, upper)

	c := NewClient(cfg, auth, nil, testLogger())
	peer := peerOf(t, s.Addr())

	for i := 0; i < 3; i++ {
		_, err := c.SyncWithPeer(context.Background(), peer, []byte("ping"))
		require.NoError(t, err, "attempt %d", i+1)
	}

	_, err := c.SyncWithPeer(context.Background(), peer, []byte("ping"))
	assert.ErrorIs(t, err, ErrConnectionClosed)

	time.Sleep(cfg.RateLimitWindow)
	resp, err := c.SyncWithPeer(context.Background(), peer, []byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, "PING", string(resp))
}

func TestServer_StopClosesConnections(t *testing.T) {
	s := startServer(t, testConfig(), mustStatic(t, "tok"), nil, upper)

	conn, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.admission.Open() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, s.Stop())
	assert.Nil(t, s.Addr())
	assert.Equal(t, 0, s.admission.Open())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, err = conn.Read(make([]byte, 1))
	assert.Error(t, err)

	// повторный Stop и повторный Start
	require.NoError(t, s.Stop())
	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrServerStarted)
}

func TestClient_Timeout(t *testing.T) {
	// Сервер принимает соединение и молчит
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	cfg := testConfig()
	cfg.Timeout = 100 * time.Millisecond
	c := NewClient(cfg, mustStatic(t, "tok"), nil, testLogger())

	started := time.Now()
	_, err = c.SyncWithPeer(context.Background(), peerOf(t, ln.Addr()), []byte("ping"))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(started), 2*time.Second)

	// клиент закрыл сокет: сервер видит EOF
	conn := <-accepted
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, err = io.ReadAll(conn)
	assert.NoError(t, err)
}

func TestClient_SlowHandlerTimesOut(t *testing.T) {
	auth := mustStatic(t, "tok")
	s := startServer(t, testConfig(), auth, nil, func(ctx context.Context, _ []byte) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	cfg := testConfig()
	cfg.Timeout = 100 * time.Millisecond
	c := NewClient(cfg, auth, nil, testLogger())

	_, err := c.SyncWithPeer(context.Background(), peerOf(t, s.Addr()), []byte("ping"))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_ContextCanceled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			defer conn.Close()
			_, _ = io.Copy(io.Discard, conn)
		}
	}()

	c := NewClient(testConfig(), mustStatic(t, "tok"), nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err = c.SyncWithPeer(ctx, peerOf(t, ln.Addr()), []byte("ping"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	peer := peerOf(t, ln.Addr())
	require.NoError(t, ln.Close())

	c := NewClient(testConfig(), mustStatic(t, "tok"), nil, testLogger())
	_, err = c.SyncWithPeer(context.Background(), peer, []byte("ping"))
	assert.ErrorIs(t, err, ErrConnectionClosed)
}

func TestClient_UnresolvedPeer(t *testing.T) {
	c := NewClient(testConfig(), mustStatic(t, "tok"), nil, testLogger())
	_, err := c.SyncWithPeer(context.Background(), models.DeviceInfo{DeviceID: "p"}, []byte("ping"))
	assert.ErrorIs(t, err, ErrNoPeerAddress)
}

func TestMapConnError(t *testing.T) {
	assert.ErrorIs(t, mapConnError(io.EOF), ErrConnectionClosed)
	assert.ErrorIs(t, mapConnError(io.ErrUnexpectedEOF), ErrConnectionClosed)
	assert.ErrorIs(t, mapConnError(errors.New("reset by peer")), ErrConnectionClosed)
	assert.ErrorIs(t, mapConnError(ErrFrameTooLarge), ErrFrameTooLarge)
}

func TestMetrics_Recorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	metrics, err := NewMetrics(provider)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.MaxConnectionsPerIP = 1
	auth := mustStatic(t, "tok")
	s := startServer(t, cfg, auth, metrics, upper)

	c := NewClient(cfg, auth, metrics, testLogger())
	_, err = c.SyncWithPeer(context.Background(), peerOf(t, s.Addr()), []byte("ping"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return s.admission.Open() == 0 }, time.Second, 10*time.Millisecond)

	// Одно соединение висит, второе отклоняется по лимиту адреса
	hold, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer hold.Close()
	require.Eventually(t, func() bool { return s.admission.Open() == 1 }, time.Second, 10*time.Millisecond)

	rejected, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer rejected.Close()
	require.NoError(t, rejected.SetReadDeadline(time.Now().Add(time.Second)))
	_, _ = rejected.Read(make([]byte, 1))

	var rm metricdata.ResourceMetrics
	require.Eventually(t, func() bool {
		rm = metricdata.ResourceMetrics{}
		require.NoError(t, reader.Collect(context.Background(), &rm))
		return sumOf(rm, "crmsync.transport.connections.rejected") == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, int64(2), sumOf(rm, "crmsync.transport.connections.accepted"))
	assert.True(t, hasMetric(rm, "crmsync.transport.sync.duration"))
}

func sumOf(rm metricdata.ResourceMetrics, name string) int64 {
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func hasMetric(rm metricdata.ResourceMetrics, name string) bool {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return true
			}
		}
	}
	return false
}
