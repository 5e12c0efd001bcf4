package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-file-keeper/internal/tree"
	"github.com/MKhiriev/go-file-keeper/models"
)

// KeyService owns the envelope that protects a user's file-encryption key.
// The FEK is generated once by Provision and never changes afterwards; only
// the wrapping around it does.
type KeyService interface {
	// Provision creates a fresh FEK for a user without key material and
	// returns the user with Keys filled in together with the plaintext FEK.
	Provision(ctx context.Context, user models.User, secret string) (models.User, []byte, error)

	// Recover unwraps the FEK stored on user.
	Recover(ctx context.Context, user models.User, secret string) ([]byte, error)

	// Rewrap re-encrypts the same FEK under newSecret with a fresh salt and
	// IV. On error the returned user is zero and the input is untouched.
	Rewrap(ctx context.Context, user models.User, oldSecret, newSecret string) (models.User, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, []byte, error)
	Login(ctx context.Context, user models.User) (models.User, []byte, error)
	ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) (models.User, []byte, error)
	DeleteAccount(ctx context.Context, userID int64, password string) error
	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, request models.ProfileRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type FolderService interface {
	CreateFolder(ctx context.Context, userID int64, request models.FolderRequest) (models.Folder, error)
	GetFolder(ctx context.Context, userID, folderID int64) (models.FolderContents, error)
	ListRootFolders(ctx context.Context, userID int64) ([]models.Folder, error)
	UpdateFolder(ctx context.Context, userID, folderID int64, request models.FolderRequest) (models.Folder, error)
	MoveFolder(ctx context.Context, userID, folderID int64, parent *int64) (models.Folder, error)
	TrashFolder(ctx context.Context, userID, folderID int64) (models.Folder, error)
	DeleteFolder(ctx context.Context, userID, folderID int64) error
}

type FileService interface {
	UploadFiles(ctx context.Context, userID int64, fek []byte, parent *int64, tags models.Tags, uploads ...models.FileUpload) ([]models.File, error)
	DownloadFile(ctx context.Context, userID, fileID int64, fek []byte) (models.FileDownload, error)
	GetFileDetails(ctx context.Context, userID, fileID int64) (models.File, error)
	MoveFile(ctx context.Context, userID, fileID int64, parent *int64) (models.File, error)
	TrashFile(ctx context.Context, userID, fileID int64) (models.File, error)
	DeleteFile(ctx context.Context, userID, fileID int64) error
}

// ReminderService manages the reminders of a user. Upcoming and past
// views are computed against the service clock.
type ReminderService interface {
	CreateReminder(ctx context.Context, userID int64, request models.ReminderRequest) (models.Reminder, error)
	GetReminder(ctx context.Context, userID, reminderID int64) (models.Reminder, error)
	ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error)
	// ListUpcoming returns active reminders that still have an occurrence,
	// soonest first.
	ListUpcoming(ctx context.Context, userID int64) ([]models.Reminder, error)
	// ListPast returns reminders without occurrences left, latest first.
	ListPast(ctx context.Context, userID int64) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, userID, reminderID int64, request models.ReminderRequest) (models.Reminder, error)
	ToggleReminder(ctx context.Context, userID, reminderID int64) (models.Reminder, error)
	DeleteReminder(ctx context.Context, userID, reminderID int64) error
}

type TreeService interface {
	GetTree(ctx context.Context, userID int64) (tree.Forest, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
