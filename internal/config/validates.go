package config

import (
	"fmt"

	"github.com/iudanet/crmsync/internal/transport"
)

func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Sync.Validate(); err != nil {
		return err
	}
	if err := c.Discovery.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path", ErrMissingStoragePath)
	}
	return nil
}

func (c *SyncConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}

	if c.TimeoutMs <= 0 {
		return fmt.Errorf("%w: timeout_ms", ErrInvalidTimeout)
	}

	for name, v := range map[string]int{
		"max_connections":        c.MaxConnections,
		"max_connections_per_ip": c.MaxConnectionsPerIP,
		"rate_limit_window_ms":   c.RateLimitWindowMs,
		"rate_limit_max":         c.RateLimitMax,
		"max_frame_bytes":        c.MaxFrameBytes,
		"auto_sync_interval_ms":  c.AutoSyncIntervalMs,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidLimit, name)
		}
	}
	if c.OutboundRate < 0 {
		return fmt.Errorf("%w: outbound_rate", ErrInvalidLimit)
	}

	if len(c.Token) > transport.MaxTokenLength {
		return ErrTokenTooLong
	}

	if _, ok := knownAdapters[c.MergeAdapter]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAdapter, c.MergeAdapter)
	}

	return nil
}

func (c *DiscoveryConfig) Validate() error {
	if c.PeerTTLMs < 0 {
		return fmt.Errorf("%w: peer_ttl_ms", ErrInvalidLimit)
	}
	return nil
}

func (c *LogConfig) Validate() error {
	if _, ok := knownLevels[c.Level]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.Level)
	}
	return nil
}
