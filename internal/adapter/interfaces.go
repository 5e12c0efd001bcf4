// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client for the go-file-keeper HTTP API.
//
// [FileKeeperClient] hides the REST surface behind typed calls. After
// Register, Login or ChangePassword the client remembers the session: the
// bearer token is attached to every authorized call and the file key is sent
// as X-File-Key on upload and download.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-file-keeper/internal/tree"
	"github.com/MKhiriev/go-file-keeper/models"
)

// FileKeeperClient talks to a go-file-keeper server on behalf of one user.
type FileKeeperClient interface {
	// SetSession replaces the stored token and base64 file key.
	SetSession(session models.Session)

	// Session returns the stored token and file key.
	Session() models.Session

	// Version returns the server's application version.
	Version(ctx context.Context) (string, error)

	// Register creates an account and stores the returned session.
	Register(ctx context.Context, login, password string) (models.Session, error)

	// Login authenticates and stores the returned session.
	Login(ctx context.Context, login, password string) (models.Session, error)

	// ChangePassword rewraps the file key under newPassword. The old token
	// stops working, so the fresh session replaces the stored one.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (models.Session, error)

	// DeleteAccount removes the account with every folder and file and
	// forgets the session.
	DeleteAccount(ctx context.Context, password string) error

	GetProfile(ctx context.Context) (models.User, error)

	// UpdateProfile changes login or display name. Passwords are refused by
	// the server; use ChangePassword.
	UpdateProfile(ctx context.Context, request models.ProfileRequest) (models.User, error)

	// VerifySession checks the stored token and replaces it with a renewed
	// one. The stored file key is kept.
	VerifySession(ctx context.Context) (models.Session, error)

	CreateFolder(ctx context.Context, request models.FolderRequest) (models.Folder, error)
	GetFolder(ctx context.Context, folderID int64) (models.FolderContents, error)
	ListRootFolders(ctx context.Context) ([]models.Folder, error)
	UpdateFolder(ctx context.Context, folderID int64, request models.FolderRequest) (models.Folder, error)
	MoveFolder(ctx context.Context, folderID int64, parent *int64) (models.Folder, error)
	TrashFolder(ctx context.Context, folderID int64) (models.Folder, error)
	DeleteFolder(ctx context.Context, folderID int64) error

	// Tree returns the user's whole folder and file hierarchy.
	Tree(ctx context.Context) (tree.Forest, error)

	// UploadFiles sends up to five files in one multipart request. A nil
	// parent uploads to the root level.
	UploadFiles(ctx context.Context, parent *int64, tags models.Tags, uploads ...models.FileUpload) ([]models.File, error)

	// DownloadFile returns the decrypted body together with the name and
	// content type the server reported.
	DownloadFile(ctx context.Context, fileID int64) (models.FileDownload, error)

	GetFileDetails(ctx context.Context, fileID int64) (models.File, error)
	MoveFile(ctx context.Context, fileID int64, parent *int64) (models.File, error)
	TrashFile(ctx context.Context, fileID int64) (models.File, error)
	DeleteFile(ctx context.Context, fileID int64) error

	CreateReminder(ctx context.Context, request models.ReminderRequest) (models.Reminder, error)
	GetReminder(ctx context.Context, reminderID int64) (models.Reminder, error)
	ListReminders(ctx context.Context) ([]models.Reminder, error)
	// UpcomingReminders returns active reminders with an occurrence left,
	// soonest first.
	UpcomingReminders(ctx context.Context) ([]models.Reminder, error)
	// PastReminders returns reminders without occurrences left, latest first.
	PastReminders(ctx context.Context) ([]models.Reminder, error)
	// UpdateReminder changes the non-nil fields of request. A FileID of 0
	// removes the file link.
	UpdateReminder(ctx context.Context, reminderID int64, request models.ReminderRequest) (models.Reminder, error)
	ToggleReminder(ctx context.Context, reminderID int64) (models.Reminder, error)
	DeleteReminder(ctx context.Context, reminderID int64) error
}
