package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iudanet/treesync/internal/client/api"
	"github.com/iudanet/treesync/internal/client/auth"
	"github.com/iudanet/treesync/internal/client/cli"
	"github.com/iudanet/treesync/internal/client/iocli"
	"github.com/iudanet/treesync/internal/client/storage"
	"github.com/iudanet/treesync/internal/client/storage/boltdb"
	"github.com/iudanet/treesync/internal/client/sync"
	"github.com/iudanet/treesync/internal/client/workspace"
	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/history"
	"github.com/iudanet/treesync/internal/identity"
	"github.com/iudanet/treesync/internal/reconcile"
	"github.com/iudanet/treesync/internal/snapshot"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	workspaceRoot := flag.String("workspace", ".", "Path to working copy root")
	masterPassword := flag.String("master-password", "", "Master password (not recommended)")
	masterPasswordFile := flag.String("master-password-file", "", "Path to file containing master password")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	// Служебная директория рабочей копии
	metaDir := filepath.Join(*workspaceRoot, snapshot.MetaDir)
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", metaDir, err)
		os.Exit(1)
	}

	// Открываем BoltDB storage (auth данные и состояние движка)
	boltStorage, err := boltdb.New(ctx, filepath.Join(metaDir, "client.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(apiClient, boltStorage)
	stdio := iocli.NewStdio()

	// Команды аутентификации не требуют движка и истории
	switch command {
	case "register", "login", "logout":
		c := cli.New(stdio, authService, nil, nil)
		c.Run(ctx, command, args[1:])
		return
	}

	// Остальные команды работают с рабочей копией. Идентичность
	// реплики задается при login и хранится в открытом виде.
	authData, err := boltStorage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			fmt.Fprintln(os.Stderr, "Not authenticated. Please run 'treesync login' first.")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read auth data: %v\n", err)
		}
		os.Exit(1)
	}

	store, histDB, err := history.Open(filepath.Join(metaDir, "history.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := histDB.Close(); err != nil {
			logger.Error("failed to close history", "error", err)
		}
	}()

	apiClient.SetReplicaID(authData.ReplicaID)

	clock := crdt.NewClockWithReplica(authData.ReplicaID)
	engine := crdt.NewEngine(clock, logger)
	assigner := identity.NewAssigner(clock, store, logger)
	rec := reconcile.NewReconciler(engine, assigner, store, logger, reconcile.DefaultConfig())

	ws, err := workspace.NewService(ctx, *workspaceRoot, engine, rec, boltStorage, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open working copy: %v\n", err)
		os.Exit(1)
	}

	syncService := sync.NewService(apiClient, engine, boltStorage, logger)

	c := cli.New(stdio, authService, syncService, ws)

	// Обмен с сервером требует расшифрованного access token
	if command == "sync" {
		passwords := cli.Passwors{
			FromFile: *masterPasswordFile,
			FromArgs: *masterPassword,
		}
		if err := c.ReadMasterPassword(ctx, passwords); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("Treesync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
