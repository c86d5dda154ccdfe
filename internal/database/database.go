// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/cancellarius/internal/config"
	"github.com/tomtom215/cancellarius/internal/logging"
)

// memoryPath is the config value selecting an in-memory database.
const memoryPath = "memory"

// DB wraps the DuckDB connection and provides data access methods
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New creates a new database connection and initializes the bookings schema.
//
// cfg.Path "memory" (the default) opens an in-memory database that vanishes
// when the process exits; any other value is treated as a file path whose
// parent directory is created if missing.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	path := cfg.Path
	if path == memoryPath || path == ":memory:" {
		path = ""
	}

	// Ensure parent directory exists for file-backed databases.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if path != "" {
		dbDir := filepath.Dir(path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// preserve_insertion_order=false reduces memory usage but may change result order
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments; the bookings schema needs no extensions.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, numThreads, cfg.MaxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Debug().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Str("max_memory", cfg.MaxMemory).
		Msg("Database opened")

	return db, nil
}

// configureConnectionPool sets pool limits suited to an analytical batch run.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates the bookings table and its indexes
func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.createSchema(ctx); err != nil {
		return err
	}
	return db.createIndexes(ctx)
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// IsInMemory reports whether the database lives only in process memory.
func (db *DB) IsInMemory() bool {
	return db.cfg.Path == memoryPath || db.cfg.Path == ":memory:" || db.cfg.Path == ""
}

// Close closes the database connection. File-backed databases get a
// best-effort CHECKPOINT first so the WAL is flushed into the main file.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	if !db.IsInMemory() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.Checkpoint(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}

	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return ErrNilConnection
	}
	return db.conn.PingContext(ctx)
}
