package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-file-keeper/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID,
		&u.Login,
		&u.Name,
		&u.PasswordHash,
		&u.Keys.KEKSalt,
		&u.Keys.WrapIV,
		&u.Keys.WrappedFEK,
		nullTimestamp{&u.PasswordChangedAt},
		timestamp{&u.CreatedAt},
	)
	return u, err
}

func scanFolder(row rowScanner) (models.Folder, error) {
	var f models.Folder
	err := row.Scan(
		&f.FolderID,
		&f.UserID,
		&f.Name,
		&f.ParentFolder,
		&f.IsRoot,
		&f.IsTrashed,
		&f.Tags,
		timestamp{&f.CreatedAt},
		timestamp{&f.UpdatedAt},
	)
	return f, err
}

func scanFile(row rowScanner) (models.File, error) {
	var f models.File
	err := row.Scan(
		&f.FileID,
		&f.UserID,
		&f.Name,
		&f.ContentType,
		&f.Size,
		&f.Location,
		&f.ParentFolder,
		&f.IsRoot,
		&f.IsTrashed,
		&f.IsDeleted,
		&f.Tags,
		timestamp{&f.CreatedAt},
		timestamp{&f.UpdatedAt},
	)
	return f, err
}

func scanReminder(row rowScanner) (models.Reminder, error) {
	var r models.Reminder
	err := row.Scan(
		&r.ReminderID,
		&r.UserID,
		&r.Title,
		&r.Description,
		timestamp{&r.RemindAt},
		&r.IsRecurring,
		&r.RecurrencePattern,
		nullTimestamp{&r.RecurrenceEndDate},
		&r.FileID,
		&r.IsActive,
		timestamp{&r.CreatedAt},
		timestamp{&r.UpdatedAt},
	)
	return r, err
}

// timestamp scans a TIMESTAMP column. SQLite hands values back as text
// when it cannot tell the declared column type, e.g. in RETURNING clauses.
type timestamp struct {
	dst *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts.dst = time.Time{}
		return nil
	case time.Time:
		*ts.dst = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*ts.dst = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

// nullTimestamp is a timestamp that leaves nil behind for NULL.
type nullTimestamp struct {
	dst **time.Time
}

func (ts nullTimestamp) Scan(src any) error {
	if src == nil {
		*ts.dst = nil
		return nil
	}
	var t time.Time
	if err := (timestamp{&t}).Scan(src); err != nil {
		return err
	}
	*ts.dst = &t
	return nil
}

// queryRow runs a single-row query under the retry policy.
func (db *DB) queryRow(ctx context.Context, op, query string, args []any, scan func(rowScanner) error) error {
	return db.withRetry(ctx, op, func() error {
		return scan(db.QueryRowContext(ctx, query, args...))
	})
}

// exec runs a statement under the retry policy.
func (db *DB) exec(ctx context.Context, op, query string, args []any) (sql.Result, error) {
	var res sql.Result
	err := db.withRetry(ctx, op, func() error {
		var err error
		res, err = db.ExecContext(ctx, query, args...)
		return err
	})
	return res, err
}

// queryAll runs a multi-row query under the retry policy and scans every
// row with scan. A partially read result is discarded before a retry.
func queryAll[T any](ctx context.Context, db *DB, op, query string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	var out []T
	err := db.withRetry(ctx, op, func() error {
		out = make([]T, 0)

		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			out = append(out, item)
		}
		return rows.Err()
	})
	return out, err
}
