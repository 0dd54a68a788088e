package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/grandcat/zeroconf"
)

// defaultRefresh - период перезапуска browse
const defaultRefresh = 30 * time.Second

// ZeroconfBackend реализует Backend поверх mDNS
type ZeroconfBackend struct {
	logger  *slog.Logger
	ifaces  []net.Interface
	refresh time.Duration
}

// NewZeroconfBackend создает backend. refresh задает, как часто повторяется
// browse: resolver сообщает каждую запись один раз за сессию, поэтому LastSeen
// обновляется только новым раундом.
func NewZeroconfBackend(refresh time.Duration, ifaces []net.Interface, logger *slog.Logger) *ZeroconfBackend {
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	return &ZeroconfBackend{
		logger:  logger,
		ifaces:  ifaces,
		refresh: refresh,
	}
}

// Advertise регистрирует сервис в mDNS
func (z *ZeroconfBackend) Advertise(ad Advertisement) (func(), error) {
	server, err := zeroconf.Register(ad.Instance, ad.Service, ad.Domain, ad.Port, ad.Text, z.ifaces)
	if err != nil {
		return nil, fmt.Errorf("failed to register mdns service: %w", err)
	}
	return server.Shutdown, nil
}

// Browse запускает раунды browse по refresh до отмены ctx
func (z *ZeroconfBackend) Browse(ctx context.Context, service, domain string, found func(Announcement)) error {
	for {
		if err := z.browseRound(ctx, service, domain, found); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		z.logger.Debug("Restarting mdns browse", "service", service)
	}
}

func (z *ZeroconfBackend) browseRound(ctx context.Context, service, domain string, found func(Announcement)) error {
	resolver, err := zeroconf.NewResolver(zeroconf.SelectIfaces(z.ifaces))
	if err != nil {
		return fmt.Errorf("failed to create mdns resolver: %w", err)
	}

	roundCtx, cancel := context.WithTimeout(ctx, z.refresh)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				found(toAnnouncement(entry))
			case <-roundCtx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(roundCtx, service, domain, entries); err != nil {
		cancel()
		<-done
		return fmt.Errorf("failed to browse %s: %w", service, err)
	}

	<-roundCtx.Done()
	<-done
	return nil
}

func toAnnouncement(entry *zeroconf.ServiceEntry) Announcement {
	ips := make([]net.IP, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	ips = append(ips, entry.AddrIPv4...)
	ips = append(ips, entry.AddrIPv6...)
	return Announcement{
		Instance: entry.Instance,
		Text:     entry.Text,
		IPs:      ips,
		Port:     entry.Port,
		TTL:      entry.TTL,
	}
}
