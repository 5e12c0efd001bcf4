package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrFolderNotFound is returned when a folder does not exist or belongs
	// to another user.
	ErrFolderNotFound = errors.New("folder was not found")

	// ErrFileNotFound is returned when a file record does not exist or
	// belongs to another user.
	ErrFileNotFound = errors.New("file was not found")

	// ErrReminderNotFound is returned when a reminder does not exist or
	// belongs to another user.
	ErrReminderNotFound = errors.New("reminder was not found")

	// ErrObjectNotFound is returned by [ObjectStorage.GetObject] when the
	// encrypted body is missing from the object store.
	ErrObjectNotFound = errors.New("object was not found")

	// ErrLocationAlreadyExists is returned when a file record would point at
	// an object key that is already in use.
	ErrLocationAlreadyExists = errors.New("object location already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDriver is returned when the configured driver is unknown.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")

	// ErrObjectStorage is returned when the object store rejects an operation.
	ErrObjectStorage = errors.New("object storage error")
)
