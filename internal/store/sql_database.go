// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/migrations"
)

const defaultRetryInitialInterval = 50 * time.Millisecond

// DB wraps a *sql.DB with everything a repository needs to talk to one SQL
// dialect: a statement builder with the right placeholder format, an error
// classifier, and the retry budget for transient failures.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator

	retryInitialInterval time.Duration
	retryMaxElapsed      time.Duration

	logger *logger.Logger
}

// newDB assembles a DB for an already opened connection.
func newDB(conn *sql.DB, driver string, classificator ErrorClassificator, retryMaxElapsed time.Duration, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == config.DBDriverPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                   conn,
		driver:               driver,
		builder:              sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator:   classificator,
		retryInitialInterval: defaultRetryInitialInterval,
		retryMaxElapsed:      retryMaxElapsed,
		logger:               log,
	}
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, workers config.Workers, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DBDriverPostgres:
		return NewConnectPostgres(ctx, cfg, workers, log)
	case config.DBDriverSQLite:
		return NewConnectSQLite(ctx, cfg, workers, log)
	default:
		log.Error().Str("func", "NewConnect").Str("driver", cfg.Driver).Msg("unsupported database driver")
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies the embedded migrations of the connected dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
