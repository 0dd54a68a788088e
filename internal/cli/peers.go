package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/crmsync/internal/models"
)

// discover сканирует сеть c.wait и возвращает найденных пиров
func (c *Cli) discover(ctx context.Context) ([]models.DeviceInfo, error) {
	if c.discovery == nil {
		return nil, fmt.Errorf("discovery is disabled. Set discovery.enabled or pass device-id@host:port")
	}

	if err := c.discovery.StartScanning(ctx); err != nil {
		return nil, fmt.Errorf("failed to start scanning: %w", err)
	}
	defer c.discovery.StopScanning()

	if c.wait > 0 {
		timer := time.NewTimer(c.wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return c.discovery.Peers(), nil
}

func (c *Cli) runPeers(ctx context.Context) error {
	peers, err := c.discover(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("=== Peers (%d) ===\n", len(peers))
	if len(peers) == 0 {
		c.io.Println("No peers found.")
		return nil
	}
	for _, p := range peers {
		addr := p.Addr()
		if addr == "" {
			addr = "unresolved"
		}
		c.io.Printf("%s  %s  %s  proto=%s  seen=%s\n",
			p.DeviceID, p.DeviceName, addr, p.Protocol, p.LastSeen.Format(time.RFC3339))
	}
	return nil
}
