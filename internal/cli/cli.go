// Package cli implements the commands of the crmsync binary.
package cli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/iudanet/crmsync/internal/app"
	"github.com/iudanet/crmsync/internal/iocli"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/storage"
	"github.com/iudanet/crmsync/internal/store"
	"github.com/iudanet/crmsync/internal/sync"
)

//go:generate moq -out discovery_mock.go . Discovery

// Discovery - часть discovery.Service, нужная командам
type Discovery interface {
	StartScanning(ctx context.Context) error
	StopScanning()
	Peers() []models.DeviceInfo
}

//go:generate moq -out node_mock.go . Node

// Node - запуск и остановка устройства в режиме serve
type Node interface {
	Start(ctx context.Context) error
	Stop() error
	Addr() net.Addr
}

type Cli struct {
	io          iocli.IO
	node        Node
	store       *store.Store
	syncService sync.Service
	discovery   Discovery // nil, если discovery выключен
	journal     storage.SyncJournal
	wait        time.Duration // сколько ждать объявлений пиров
}

// New собирает CLI поверх запущенного приложения
func New(io iocli.IO, a *app.App, wait time.Duration) *Cli {
	c := &Cli{
		io:          io,
		node:        a,
		store:       a.Store(),
		syncService: a.Sync(),
		journal:     a.Journal(),
		wait:        wait,
	}
	if d := a.Discovery(); d != nil {
		c.discovery = d
	}
	return c
}

// Run выполняет одну команду
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "serve":
		return c.runServe(ctx)
	case "dispatch":
		return c.runDispatch(ctx, args)
	case "list":
		return c.runList(args)
	case "status":
		return c.runStatus(ctx)
	case "peers":
		return c.runPeers(ctx)
	case "sync":
		return c.runSync(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func PrintUsage(io iocli.IO) {
	io.Println("crmsync - offline-first CRM replica")
	io.Println()
	io.Println("Usage:")
	io.Println("  crmsync [OPTIONS] COMMAND")
	io.Println()
	io.Println("Options:")
	io.Println("  --version                  Show version information")
	io.Println("  --config PATH              Path to YAML config (default: crmsync.yaml if present)")
	io.Println("  --db PATH                  Path to event database (overrides storage.db_path)")
	io.Println("  --log-level LEVEL          debug, info, warn or error")
	io.Println("  --passphrase PHRASE        Sync passphrase (not recommended, use env var or file)")
	io.Println("  --passphrase-file PATH     Path to file containing the sync passphrase")
	io.Println("  --discovery-wait DURATION  How long peers/sync wait for announcements (default: 3s)")
	io.Println()
	io.Println("Passphrase Priority (highest to lowest):")
	io.Println("  1. CRMSYNC_PASSPHRASE environment variable")
	io.Println("  2. --passphrase-file (file path)")
	io.Println("  3. --passphrase (command line)")
	io.Println("  4. sync.passphrase from config")
	io.Println("  Without a passphrase devices authenticate with a token derived from sync.group.")
	io.Println()
	io.Println("Commands:")
	io.Println("  serve                                  Listen for peers, announce and auto-sync until interrupted")
	io.Println("  dispatch <type> <entity-id> [json]     Dispatch a local event")
	io.Println("  list <collection>                      Show entities of a collection")
	io.Println("  status                                 Show document, log and sync journal summary")
	io.Println("  peers                                  Show peers found on the local network")
	io.Println("  sync [device-id@host:port]             Sync with all discovered peers or one address")
	io.Println("  version                                Show version information")
	io.Println()
	io.Println("Examples:")
	io.Println("  crmsync dispatch organization.created org-1 '{\"name\":\"Acme\"}'")
	io.Println("  crmsync list organizations")
	io.Println("  crmsync sync office-pc@192.168.1.20:8765")
	io.Println("  CRMSYNC_PASSPHRASE='team secret' crmsync serve")
}
