package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/crmsync/internal/app"
	"github.com/iudanet/crmsync/internal/cli"
	"github.com/iudanet/crmsync/internal/config"
	"github.com/iudanet/crmsync/internal/iocli"
	"github.com/iudanet/crmsync/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const defaultConfigPath = "crmsync.yaml"

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML config")
	dbPath := flag.String("db", "", "Path to event database")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	passphrase := flag.String("passphrase", "", "Sync passphrase (not recommended, use env var or file)")
	passphraseFile := flag.String("passphrase-file", "", "Path to file containing the sync passphrase")
	discoveryWait := flag.Duration("discovery-wait", 3*time.Second, "How long peers and sync wait for announcements")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}
	command := args[0]
	if command == "version" {
		printVersion()
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	phrase, err := cli.ReadPassphrase(stdio, cli.Passphrases{
		FromFile: *passphraseFile,
		FromArgs: *passphrase,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Логи в stderr, чтобы не смешивать с выводом команд
	logger := logging.New(os.Stderr, cfg.Log.Level, "")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, app.Options{
		Config:     cfg,
		Logger:     logger,
		Passphrase: phrase,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open device: %v\n", err)
		os.Exit(1)
	}

	runErr := cli.New(stdio, a, *discoveryWait).Run(ctx, command, args[1:])
	if err := a.Close(); err != nil {
		slog.Error("failed to close device", "error", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// loadConfig читает явно заданный конфиг, затем crmsync.yaml рядом, иначе
// берет значения по умолчанию
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Read(path)
	}
	cfg, err := config.Read(defaultConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func printVersion() {
	fmt.Printf("crmsync\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
