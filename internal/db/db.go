// Package db opens the nexcai SQLite database and applies migrations.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	// Register sqlite-vec as an auto-extension so every SQLite connection
	// opened by this process has the vec0 virtual table module available.
	vec.Auto()
}

const (
	// DefaultEmbeddingDimension is used when the caller does not supply a
	// vector width. nomic-embed-text (the default Ollama embed model)
	// produces 768-dim vectors.
	DefaultEmbeddingDimension = 768
)

// DB wraps a *sql.DB and exposes helpers.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies
// migrations. An absent file yields an empty store. embeddingDim is the
// vector width of the configured embedder (<= 0 selects the default);
// it must match the dimension the database file was created with.
func Open(path string, embeddingDim int) (*DB, error) {
	if embeddingDim <= 0 {
		embeddingDim = DefaultEmbeddingDimension
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", absPath)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Single writer, multiple readers. Also serialises the long-term
	// store's gate -> dedup -> embed -> insert critical section.
	conn.SetMaxOpenConns(1)

	if err := applyMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	// The vector table is not optional here: the long-term store keeps
	// record rows and embeddings in lockstep and cannot run without it.
	if err := applyVectorTables(conn, embeddingDim); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create vector table: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Conn returns the underlying *sql.DB for use by the store layer.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Ping checks the connection is live.
func (d *DB) Ping() error {
	return d.conn.Ping()
}

// SizeBytes returns the on-disk size of the database file.
func (d *DB) SizeBytes(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
