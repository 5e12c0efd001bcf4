// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/models"
)

var (
	userColumns = []string{
		"user_id",
		"login",
		"name",
		"password_hash",
		"kek_salt",
		"wrap_iv",
		"wrapped_fek",
		"password_changed_at",
		"created_at",
	}

	folderColumns = []string{
		"folder_id",
		"user_id",
		"name",
		"parent_folder",
		"is_root",
		"is_trashed",
		"tags",
		"created_at",
		"updated_at",
	}

	fileColumns = []string{
		"file_id",
		"user_id",
		"name",
		"content_type",
		"size",
		"location",
		"parent_folder",
		"is_root",
		"is_trashed",
		"is_deleted",
		"tags",
		"created_at",
		"updated_at",
	}

	reminderColumns = []string{
		"reminder_id",
		"user_id",
		"title",
		"description",
		"remind_at",
		"is_recurring",
		"recurrence_pattern",
		"recurrence_end_date",
		"file_id",
		"is_active",
		"created_at",
		"updated_at",
	}
)

func returning(columns []string) string {
	s := "RETURNING "
	for i, c := range columns {
		if i > 0 {
			s += ", "
		}
		s += c
	}
	return s
}

// ── users ──

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert("users").
		Columns("login", "name", "password_hash", "kek_salt", "wrap_iv", "wrapped_fek").
		Values(user.Login, user.Name, user.PasswordHash, user.Keys.KEKSalt, user.Keys.WrapIV, user.Keys.WrappedFEK).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
}

func buildUpdateCredentialsQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update("users").
		Set("password_hash", user.PasswordHash).
		Set("kek_salt", user.Keys.KEKSalt).
		Set("wrap_iv", user.Keys.WrapIV).
		Set("wrapped_fek", user.Keys.WrappedFEK).
		Set("password_changed_at", user.PasswordChangedAt).
		Where(sq.Eq{"user_id": user.UserID}).
		ToSql()
}

func buildUpdateProfileQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update("users").
		Set("login", user.Login).
		Set("name", user.Name).
		Where(sq.Eq{"user_id": user.UserID}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Delete("users").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── folders ──

func buildInsertFolderQuery(b sq.StatementBuilderType, folder models.Folder) (string, []any, error) {
	return b.Insert("folders").
		Columns("user_id", "name", "parent_folder", "is_root", "is_trashed", "tags").
		Values(folder.UserID, folder.Name, folder.ParentFolder, folder.ParentFolder == nil, folder.IsTrashed, folder.Tags).
		Suffix(returning(folderColumns)).
		ToSql()
}

// buildSelectFoldersQuery selects the folders of userID. A nil parent in
// where yields IS NULL.
func buildSelectFoldersQuery(b sq.StatementBuilderType, userID int64, where sq.Eq) (string, []any, error) {
	query := b.Select(folderColumns...).
		From("folders").
		Where(sq.Eq{"user_id": userID})
	if len(where) > 0 {
		query = query.Where(where)
	}
	return query.OrderBy("folder_id").ToSql()
}

func buildUpdateFolderQuery(b sq.StatementBuilderType, folder models.Folder) (string, []any, error) {
	return b.Update("folders").
		Set("name", folder.Name).
		Set("parent_folder", folder.ParentFolder).
		Set("is_root", folder.ParentFolder == nil).
		Set("is_trashed", folder.IsTrashed).
		Set("tags", folder.Tags).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"user_id": folder.UserID, "folder_id": folder.FolderID}).
		Suffix(returning(folderColumns)).
		ToSql()
}

func buildDeleteFolderQuery(b sq.StatementBuilderType, userID, folderID int64) (string, []any, error) {
	return b.Delete("folders").
		Where(sq.Eq{"user_id": userID, "folder_id": folderID}).
		ToSql()
}

// ── files ──

func buildInsertFileQuery(b sq.StatementBuilderType, file models.File) (string, []any, error) {
	return b.Insert("files").
		Columns("user_id", "name", "content_type", "size", "location", "parent_folder", "is_root", "is_trashed", "tags").
		Values(file.UserID, file.Name, file.ContentType, file.Size, file.Location, file.ParentFolder, file.ParentFolder == nil, file.IsTrashed, file.Tags).
		Suffix(returning(fileColumns)).
		ToSql()
}

func buildSelectFilesQuery(b sq.StatementBuilderType, userID int64, where sq.Eq) (string, []any, error) {
	query := b.Select(fileColumns...).
		From("files").
		Where(sq.Eq{"user_id": userID})
	if len(where) > 0 {
		query = query.Where(where)
	}
	return query.OrderBy("file_id").ToSql()
}

func buildSelectDeletedFilesQuery(b sq.StatementBuilderType, limit uint64) (string, []any, error) {
	return b.Select(fileColumns...).
		From("files").
		Where(sq.Eq{"is_deleted": true}).
		OrderBy("file_id").
		Limit(limit).
		ToSql()
}

func buildUpdateFileQuery(b sq.StatementBuilderType, file models.File) (string, []any, error) {
	return b.Update("files").
		Set("name", file.Name).
		Set("parent_folder", file.ParentFolder).
		Set("is_root", file.ParentFolder == nil).
		Set("is_trashed", file.IsTrashed).
		Set("tags", file.Tags).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"user_id": file.UserID, "file_id": file.FileID}).
		Suffix(returning(fileColumns)).
		ToSql()
}

func buildMarkFileDeletedQuery(b sq.StatementBuilderType, userID, fileID int64) (string, []any, error) {
	return b.Update("files").
		Set("is_deleted", true).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"user_id": userID, "file_id": fileID}).
		ToSql()
}

func buildDeleteFileQuery(b sq.StatementBuilderType, userID, fileID int64) (string, []any, error) {
	return b.Delete("files").
		Where(sq.Eq{"user_id": userID, "file_id": fileID}).
		ToSql()
}

// ── reminders ──

func buildInsertReminderQuery(b sq.StatementBuilderType, r models.Reminder) (string, []any, error) {
	return b.Insert("reminders").
		Columns("user_id", "title", "description", "remind_at", "is_recurring", "recurrence_pattern", "recurrence_end_date", "file_id", "is_active").
		Values(r.UserID, r.Title, r.Description, r.RemindAt.UTC(), r.IsRecurring, string(r.RecurrencePattern), utcPtr(r.RecurrenceEndDate), r.FileID, r.IsActive).
		Suffix(returning(reminderColumns)).
		ToSql()
}

// buildSelectRemindersQuery selects the reminders of userID, newest first.
func buildSelectRemindersQuery(b sq.StatementBuilderType, userID int64, where sq.Eq) (string, []any, error) {
	query := b.Select(reminderColumns...).
		From("reminders").
		Where(sq.Eq{"user_id": userID})
	if len(where) > 0 {
		query = query.Where(where)
	}
	return query.OrderBy("created_at DESC", "reminder_id DESC").ToSql()
}

func buildUpdateReminderQuery(b sq.StatementBuilderType, r models.Reminder) (string, []any, error) {
	return b.Update("reminders").
		Set("title", r.Title).
		Set("description", r.Description).
		Set("remind_at", r.RemindAt.UTC()).
		Set("is_recurring", r.IsRecurring).
		Set("recurrence_pattern", string(r.RecurrencePattern)).
		Set("recurrence_end_date", utcPtr(r.RecurrenceEndDate)).
		Set("file_id", r.FileID).
		Set("is_active", r.IsActive).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"user_id": r.UserID, "reminder_id": r.ReminderID}).
		Suffix(returning(reminderColumns)).
		ToSql()
}

func buildDeleteReminderQuery(b sq.StatementBuilderType, userID, reminderID int64) (string, []any, error) {
	return b.Delete("reminders").
		Where(sq.Eq{"user_id": userID, "reminder_id": reminderID}).
		ToSql()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
