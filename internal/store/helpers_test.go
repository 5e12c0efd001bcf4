package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// newMockDB returns a DB backed by sqlmock that speaks the given dialect.
// Retries are disabled; tests that need them set retryMaxElapsed.
func newMockDB(t *testing.T, driver string) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var classificator ErrorClassificator = NewPostgresErrorClassifier()
	if driver == config.DBDriverSQLite {
		classificator = NewSQLiteErrorClassifier()
	}

	return newDB(conn, driver, classificator, 0, logger.Nop()), mock
}

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func int64Ptr(v int64) *int64 { return &v }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// ── row fixtures ──

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func folderRows() *sqlmock.Rows {
	return sqlmock.NewRows(folderColumns)
}

func fileRows() *sqlmock.Rows {
	return sqlmock.NewRows(fileColumns)
}

func reminderRows() *sqlmock.Rows {
	return sqlmock.NewRows(reminderColumns)
}

// nullParent converts an optional parent into a driver value for AddRow.
func nullParent(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
