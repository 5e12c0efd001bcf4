package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/models"
)

type folderRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFolderRepository constructs a [FolderRepository] backed by db.
func NewFolderRepository(db *DB, logger *logger.Logger) FolderRepository {
	logger.Debug().Msg("creating folder repository")
	return &folderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *folderRepository) CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertFolderQuery(r.db.builder, folder)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.CreateFolder").Msg("error building query")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanFolder(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.CreateFolder").Int64("user_id", folder.UserID).Msg("error inserting folder")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *folderRepository) GetFolder(ctx context.Context, userID, folderID int64) (models.Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFoldersQuery(r.db.builder, userID, sq.Eq{"folder_id": folderID})
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.GetFolder").Msg("error building query")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var folder models.Folder
	err = r.db.queryRow(ctx, "*folderRepository.GetFolder", query, args, func(row rowScanner) error {
		var scanErr error
		folder, scanErr = scanFolder(row)
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Folder{}, ErrFolderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.GetFolder").Int64("folder_id", folderID).Msg("error selecting folder")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return folder, nil
}

// ListFolders returns every folder of the user, trashed ones included.
func (r *folderRepository) ListFolders(ctx context.Context, userID int64) ([]models.Folder, error) {
	return r.listFolders(ctx, "*folderRepository.ListFolders", userID, nil)
}

func (r *folderRepository) ListRootFolders(ctx context.Context, userID int64) ([]models.Folder, error) {
	return r.listFolders(ctx, "*folderRepository.ListRootFolders", userID, sq.Eq{"parent_folder": nil})
}

func (r *folderRepository) ListSubfolders(ctx context.Context, userID, parentID int64) ([]models.Folder, error) {
	return r.listFolders(ctx, "*folderRepository.ListSubfolders", userID, sq.Eq{"parent_folder": parentID})
}

func (r *folderRepository) listFolders(ctx context.Context, funcName string, userID int64, where sq.Eq) ([]models.Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFoldersQuery(r.db.builder, userID, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	folders, err := queryAll(ctx, r.db, funcName, query, args, scanFolder)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("user_id", userID).Msg("error selecting folders")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return folders, nil
}

// UpdateFolder overwrites the mutable columns (name, parent, trash flag,
// tags) and returns the stored record. [ErrFolderNotFound] is returned when
// no row matched.
func (r *folderRepository) UpdateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateFolderQuery(r.db.builder, folder)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.UpdateFolder").Msg("error building query")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Folder
	err = r.db.queryRow(ctx, "*folderRepository.UpdateFolder", query, args, func(row rowScanner) error {
		var scanErr error
		updated, scanErr = scanFolder(row)
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Folder{}, ErrFolderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.UpdateFolder").Int64("folder_id", folder.FolderID).Msg("error updating folder")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func (r *folderRepository) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteFolderQuery(r.db.builder, userID, folderID)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.DeleteFolder").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.exec(ctx, "*folderRepository.DeleteFolder", query, args); err != nil {
		log.Err(err).Str("func", "*folderRepository.DeleteFolder").Int64("folder_id", folderID).Msg("error deleting folder")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
