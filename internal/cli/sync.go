package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/sync"
)

var ErrInvalidPeer = errors.New("invalid peer address")

// ParsePeer разбирает адрес вида device-id@host:port
func ParsePeer(s string) (models.DeviceInfo, error) {
	id, hostPort, ok := strings.Cut(s, "@")
	if !ok || id == "" {
		return models.DeviceInfo{}, fmt.Errorf("%w: %q, expected device-id@host:port", ErrInvalidPeer, s)
	}
	host, portStr, err := net.SplitHostPort(hostPort)
	if err != nil || host == "" {
		return models.DeviceInfo{}, fmt.Errorf("%w: %q", ErrInvalidPeer, s)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return models.DeviceInfo{}, fmt.Errorf("%w: bad port in %q", ErrInvalidPeer, s)
	}
	return models.DeviceInfo{
		DeviceID:   id,
		DeviceName: id,
		IPAddress:  host,
		Port:       port,
	}, nil
}

func (c *Cli) runSync(ctx context.Context, args []string) error {
	c.io.Println("=== Synchronization ===")

	var results []sync.Result
	if len(args) > 0 {
		peer, err := ParsePeer(args[0])
		if err != nil {
			return err
		}
		res, err := c.syncService.SyncPeer(ctx, peer)
		if res == nil {
			res = &sync.Result{PeerID: peer.DeviceID}
		}
		res.Err = err
		results = append(results, *res)
	} else {
		peers, err := c.discover(ctx)
		if err != nil {
			return err
		}
		if len(peers) == 0 {
			c.io.Println("No peers found.")
			return nil
		}
		results, err = c.syncService.SyncAll(ctx)
		if err != nil {
			return fmt.Errorf("synchronization failed: %w", err)
		}
	}

	failed := 0
	c.io.Println()
	for _, r := range results {
		if r.Err != nil {
			failed++
			c.io.Printf("✗ %s: %v\n", r.PeerID, r.Err)
			continue
		}
		c.io.Printf("✓ %s: sent %d, received %d, applied %d\n", r.PeerID, r.Sent, r.Received, r.Applied)
	}

	if failed > 0 {
		return fmt.Errorf("synchronization failed with %d of %d peer(s)", failed, len(results))
	}
	c.io.Println()
	c.io.Println("Synchronization completed successfully!")
	return nil
}
