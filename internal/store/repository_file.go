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

type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFileRepository constructs a [FileRepository] backed by db.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *fileRepository) CreateFile(ctx context.Context, file models.File) (models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertFileQuery(r.db.builder, file)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.CreateFile").Msg("error building query")
		return models.File{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanFile(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.CreateFile").Int64("user_id", file.UserID).Msg("error inserting file")
		if r.db.errorClassificator != nil && r.db.errorClassificator.IsUniqueViolation(err) {
			return models.File{}, ErrLocationAlreadyExists
		}
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *fileRepository) GetFile(ctx context.Context, userID, fileID int64) (models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFilesQuery(r.db.builder, userID, sq.Eq{"file_id": fileID})
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.GetFile").Msg("error building query")
		return models.File{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var file models.File
	err = r.db.queryRow(ctx, "*fileRepository.GetFile", query, args, func(row rowScanner) error {
		var scanErr error
		file, scanErr = scanFile(row)
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.File{}, ErrFileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.GetFile").Int64("file_id", fileID).Msg("error selecting file")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return file, nil
}

func (r *fileRepository) ListFiles(ctx context.Context, userID int64) ([]models.File, error) {
	return r.listFiles(ctx, "*fileRepository.ListFiles", userID, nil)
}

func (r *fileRepository) ListFilesInFolder(ctx context.Context, userID, folderID int64) ([]models.File, error) {
	return r.listFiles(ctx, "*fileRepository.ListFilesInFolder", userID, sq.Eq{"parent_folder": folderID})
}

func (r *fileRepository) listFiles(ctx context.Context, funcName string, userID int64, where sq.Eq) ([]models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFilesQuery(r.db.builder, userID, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	files, err := queryAll(ctx, r.db, funcName, query, args, scanFile)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("user_id", userID).Msg("error selecting files")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

// ListDeletedFiles returns up to limit tombstoned files of every user.
func (r *fileRepository) ListDeletedFiles(ctx context.Context, limit uint64) ([]models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDeletedFilesQuery(r.db.builder, limit)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListDeletedFiles").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	files, err := queryAll(ctx, r.db, "*fileRepository.ListDeletedFiles", query, args, scanFile)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListDeletedFiles").Msg("error selecting tombstoned files")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

func (r *fileRepository) UpdateFile(ctx context.Context, file models.File) (models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateFileQuery(r.db.builder, file)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.UpdateFile").Msg("error building query")
		return models.File{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.File
	err = r.db.queryRow(ctx, "*fileRepository.UpdateFile", query, args, func(row rowScanner) error {
		var scanErr error
		updated, scanErr = scanFile(row)
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.File{}, ErrFileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.UpdateFile").Int64("file_id", file.FileID).Msg("error updating file")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func (r *fileRepository) MarkFileDeleted(ctx context.Context, userID, fileID int64) error {
	query, args, err := buildMarkFileDeletedQuery(r.db.builder, userID, fileID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execStatement(ctx, "*fileRepository.MarkFileDeleted", fileID, query, args)
}

func (r *fileRepository) DeleteFile(ctx context.Context, userID, fileID int64) error {
	query, args, err := buildDeleteFileQuery(r.db.builder, userID, fileID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execStatement(ctx, "*fileRepository.DeleteFile", fileID, query, args)
}

func (r *fileRepository) execStatement(ctx context.Context, funcName string, fileID int64, query string, args []any) error {
	if _, err := r.db.exec(ctx, funcName, query, args); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Int64("file_id", fileID).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
