// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains bootstrapping helpers for the in-memory
// SQLite store (pure Go driver) and schema migrations.
package repo

import (
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
)

// MemoryDSN is the default store location: a shared-cache in-memory SQLite
// database. All connections in the pool see the same data, and everything is
// gone when the process exits — the noticeboard intentionally does not
// persist across restarts.
const MemoryDSN = "file::memory:?cache=shared"

// Open opens the SQLite store at dsn and applies PRAGMAs. When trace is true
// the GORM OpenTelemetry plugin is installed so store operations show up as
// spans under the HTTP request trace.
func Open(dsn string, trace bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs. WAL is pointless for a memory database, so only apply it to
	// file-backed DSNs (used by some tests and local debugging).
	if !strings.Contains(dsn, ":memory:") {
		db.Exec("PRAGMA journal_mode=WAL;")
	}
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool. SQLite serializes writers internally; a handful of connections is
	// enough and keeps shared-cache contention low.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if trace {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all noticeboard tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Announcement{},
		&domain.Comment{},
		&domain.Reaction{},
		&domain.Idempotency{},
	)
}
