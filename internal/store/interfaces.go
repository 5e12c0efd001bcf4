package store

import (
	"context"

	"github.com/MKhiriev/go-file-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts together with their wrapped key material.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// UpdateCredentials replaces the password hash, the key material triple
	// and the password change moment in a single statement.
	UpdateCredentials(ctx context.Context, user models.User) error
	// UpdateProfile stores login and name and returns the stored record.
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// FolderRepository persists folder records. Every method is scoped to the
// owning user.
type FolderRepository interface {
	CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	GetFolder(ctx context.Context, userID, folderID int64) (models.Folder, error)
	ListFolders(ctx context.Context, userID int64) ([]models.Folder, error)
	ListRootFolders(ctx context.Context, userID int64) ([]models.Folder, error)
	ListSubfolders(ctx context.Context, userID, parentID int64) ([]models.Folder, error)
	UpdateFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	// DeleteFolder removes the record; a missing record is not an error.
	DeleteFolder(ctx context.Context, userID, folderID int64) error
}

// FileRepository persists file metadata. List methods return tombstoned
// (IsDeleted) records too so that an interrupted delete can be finished.
type FileRepository interface {
	CreateFile(ctx context.Context, file models.File) (models.File, error)
	GetFile(ctx context.Context, userID, fileID int64) (models.File, error)
	ListFiles(ctx context.Context, userID int64) ([]models.File, error)
	ListFilesInFolder(ctx context.Context, userID, folderID int64) ([]models.File, error)
	UpdateFile(ctx context.Context, file models.File) (models.File, error)
	// ListDeletedFiles returns tombstoned files of all users, oldest first.
	ListDeletedFiles(ctx context.Context, limit uint64) ([]models.File, error)
	// MarkFileDeleted sets the tombstone flag; a missing record is not an error.
	MarkFileDeleted(ctx context.Context, userID, fileID int64) error
	// DeleteFile removes the record; a missing record is not an error.
	DeleteFile(ctx context.Context, userID, fileID int64) error
}

// ReminderRepository persists reminders. Every method is scoped to the
// owning user.
type ReminderRepository interface {
	CreateReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error)
	GetReminder(ctx context.Context, userID, reminderID int64) (models.Reminder, error)
	// ListReminders returns the reminders of the user, newest first.
	ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error)
	// DeleteReminder returns ErrReminderNotFound when nothing was removed.
	DeleteReminder(ctx context.Context, userID, reminderID int64) error
}

// ObjectStorage keeps the encrypted bodies of files. It never sees
// plaintext or keys.
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, data []byte) error
	// GetObject returns ErrObjectNotFound when key does not exist.
	GetObject(ctx context.Context, key string) ([]byte, error)
	// DeleteObject removes key; a missing object is not an error.
	DeleteObject(ctx context.Context, key string) error
}

// ErrorClassificator decides how the store reacts to driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
