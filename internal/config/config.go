// Package config reads the YAML configuration of a crmsync device.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/crmsync/internal/discovery"
	"github.com/iudanet/crmsync/internal/transport"
)

type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	Storage   StorageConfig   `yaml:"storage"`
	Sync      SyncConfig      `yaml:"sync"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Log       LogConfig       `yaml:"log"`
}

type DeviceConfig struct {
	// ID пустой - берется из локальной базы или генерируется при первом запуске
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type StorageConfig struct {
	DBPath      string `yaml:"db_path"`
	JournalPath string `yaml:"journal_path"`
}

type SyncConfig struct {
	BindAddress         string  `yaml:"bind_address"`
	Group               string  `yaml:"group"`
	Token               string  `yaml:"token"`
	Passphrase          string  `yaml:"passphrase"`
	MergeAdapter        string  `yaml:"merge_adapter"`
	Port                int     `yaml:"port"`
	TimeoutMs           int     `yaml:"timeout_ms"`
	MaxConnections      int     `yaml:"max_connections"`
	MaxConnectionsPerIP int     `yaml:"max_connections_per_ip"`
	RateLimitWindowMs   int     `yaml:"rate_limit_window_ms"`
	RateLimitMax        int     `yaml:"rate_limit_max"`
	MaxFrameBytes       int     `yaml:"max_frame_bytes"`
	TokenTTLMs          int     `yaml:"token_ttl_ms"`
	OutboundRate        float64 `yaml:"outbound_rate"`
	AutoSyncIntervalMs  int     `yaml:"auto_sync_interval_ms"`
}

type DiscoveryConfig struct {
	Service   string `yaml:"service"`
	Domain    string `yaml:"domain"`
	PeerTTLMs int    `yaml:"peer_ttl_ms"`
	RefreshMs int    `yaml:"refresh_ms"`
	Enabled   bool   `yaml:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Read читает файл поверх значений по умолчанию
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.PopulateDefaults()

	return cfg, nil
}

// Transport возвращает параметры sync транспорта
func (c *SyncConfig) Transport() transport.Config {
	return transport.Config{
		BindAddress:         c.BindAddress,
		Port:                c.Port,
		Timeout:             time.Duration(c.TimeoutMs) * time.Millisecond,
		MaxConnections:      c.MaxConnections,
		MaxConnectionsPerIP: c.MaxConnectionsPerIP,
		RateLimitWindow:     time.Duration(c.RateLimitWindowMs) * time.Millisecond,
		RateLimitMax:        c.RateLimitMax,
		MaxFrameBytes:       c.MaxFrameBytes,
		OutboundRate:        c.OutboundRate,
	}
}

// AutoSyncInterval - период автосинхронизации, 0 выключает
func (c *SyncConfig) AutoSyncInterval() time.Duration {
	return time.Duration(c.AutoSyncIntervalMs) * time.Millisecond
}

// TokenTTL - срок жизни JWT токена синхронизации
func (c *SyncConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMs) * time.Millisecond
}

// Discovery возвращает параметры discovery для устройства
func (c *Config) DiscoveryService(protocol string) discovery.Config {
	return discovery.Config{
		DeviceID:   c.Device.ID,
		DeviceName: c.Device.Name,
		Protocol:   protocol,
		Service:    c.Discovery.Service,
		Domain:     c.Discovery.Domain,
		Port:       c.Sync.Port,
		PeerTTL:    time.Duration(c.Discovery.PeerTTLMs) * time.Millisecond,
	}
}

// Refresh - период перезапуска mDNS browse
func (c *DiscoveryConfig) Refresh() time.Duration {
	return time.Duration(c.RefreshMs) * time.Millisecond
}
