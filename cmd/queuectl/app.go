package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"

	"github.com/kavoyan/queuectl/config"
	"github.com/kavoyan/queuectl/lifecycle"
	"github.com/kavoyan/queuectl/store"
	"github.com/kavoyan/queuectl/store/sqlitestore"
)

// app bundles the collaborators every subcommand needs: configuration,
// an opened store, a lifecycle manager, and a logger. It is assembled
// fresh per invocation since each CLI run is a short-lived process.
type app struct {
	cfg     *config.Config
	db      *bun.DB
	store   store.Store
	manager *lifecycle.Manager
	log     *slog.Logger
	dataDir string
}

func newApp(configPath string) (*app, error) {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dataDir := resolveDataDir(cfg)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	dbPath := filepath.Join(dataDir, "queuectl.db")
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		dbPath,
	)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1) // single writer; sqlite does not support concurrent writers

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := sqlitestore.InitDB(rootContext(), db); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	st := sqlitestore.New(db)
	manager := lifecycle.New(st, log, cfg.MaxRetries(), cfg.BackoffBase())

	return &app{
		cfg:     cfg,
		db:      db,
		store:   st,
		manager: manager,
		log:     log,
		dataDir: dataDir,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func resolveDataDir(cfg *config.Config) string {
	dir := cfg.DataDir()
	if dir == "" {
		dir = ".queuectl"
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, dir)
}
