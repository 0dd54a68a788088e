package config

import (
	"github.com/iudanet/crmsync/internal/discovery"
	"github.com/iudanet/crmsync/internal/transport"
)

const (
	AdapterReplay    = "replay"
	AdapterAutomerge = "automerge"
)

var knownAdapters = map[string]struct{}{
	AdapterReplay:    {},
	AdapterAutomerge: {},
}

var knownLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var defaultStorage = StorageConfig{
	DBPath:      "crmsync.db",
	JournalPath: "crmsync-journal.db",
}

var defaultSync = SyncConfig{
	BindAddress:         "127.0.0.1",
	Port:                discovery.DefaultPort,
	TimeoutMs:           10_000,
	MaxConnections:      8,
	MaxConnectionsPerIP: 4,
	RateLimitWindowMs:   10_000,
	RateLimitMax:        20,
	MaxFrameBytes:       transport.DefaultMaxFrameBytes,
	Group:               "crmsync",
	MergeAdapter:        AdapterReplay,
	TokenTTLMs:          60_000,
}

var defaultDiscovery = DiscoveryConfig{
	Enabled:   true,
	Service:   discovery.ServiceType,
	Domain:    discovery.Domain,
	PeerTTLMs: 120_000,
	RefreshMs: 30_000,
}

var defaultLog = LogConfig{
	Level: "info",
}

func Default() *Config {
	return &Config{
		Storage:   defaultStorage,
		Sync:      defaultSync,
		Discovery: defaultDiscovery,
		Log:       defaultLog,
	}
}

func (c *StorageConfig) PopulateDefaults() {
	if c.DBPath == "" {
		c.DBPath = defaultStorage.DBPath
	}

	if c.JournalPath == "" {
		c.JournalPath = defaultStorage.JournalPath
	}
}

func (c *SyncConfig) PopulateDefaults() {
	if c.BindAddress == "" {
		c.BindAddress = defaultSync.BindAddress
	}

	if c.Port == 0 {
		c.Port = defaultSync.Port
	}

	if c.TimeoutMs == 0 {
		c.TimeoutMs = defaultSync.TimeoutMs
	}

	if c.MaxConnections == 0 {
		c.MaxConnections = defaultSync.MaxConnections
	}

	if c.MaxConnectionsPerIP == 0 {
		c.MaxConnectionsPerIP = defaultSync.MaxConnectionsPerIP
	}

	if c.RateLimitWindowMs == 0 {
		c.RateLimitWindowMs = defaultSync.RateLimitWindowMs
	}

	if c.RateLimitMax == 0 {
		c.RateLimitMax = defaultSync.RateLimitMax
	}

	if c.MaxFrameBytes == 0 {
		c.MaxFrameBytes = defaultSync.MaxFrameBytes
	}

	if c.Group == "" {
		c.Group = defaultSync.Group
	}

	if c.MergeAdapter == "" {
		c.MergeAdapter = defaultSync.MergeAdapter
	}

	if c.TokenTTLMs == 0 {
		c.TokenTTLMs = defaultSync.TokenTTLMs
	}
}

func (c *DiscoveryConfig) PopulateDefaults() {
	if c.Service == "" {
		c.Service = defaultDiscovery.Service
	}

	if c.Domain == "" {
		c.Domain = defaultDiscovery.Domain
	}

	if c.RefreshMs == 0 {
		c.RefreshMs = defaultDiscovery.RefreshMs
	}
}

func (c *LogConfig) PopulateDefaults() {
	if c.Level == "" {
		c.Level = defaultLog.Level
	}
}

func (c *Config) PopulateDefaults() {
	c.Storage.PopulateDefaults()
	c.Sync.PopulateDefaults()
	c.Discovery.PopulateDefaults()
	c.Log.PopulateDefaults()
}
