// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-file-keeper/internal/crypto"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/validators"
	"github.com/MKhiriev/go-file-keeper/models"
)

const defaultContentType = "application/octet-stream"

// IDGenerator produces the unique part of object keys.
type IDGenerator interface {
	Generate() string
}

type fileService struct {
	folderRepository store.FolderRepository
	fileRepository   store.FileRepository
	objectStorage    store.ObjectStorage

	keyChain  crypto.KeyChainService
	ids       IDGenerator
	validator validators.Validator

	logger *logger.Logger
}

// NewFileService constructs a FileService that encrypts every body with
// keyChain before it reaches the object store.
func NewFileService(storages *store.Storages, keyChain crypto.KeyChainService, ids IDGenerator, validator validators.Validator, logger *logger.Logger) FileService {
	return &fileService{
		folderRepository: storages.FolderRepository,
		fileRepository:   storages.FileRepository,
		objectStorage:    storages.ObjectStorage,
		keyChain:         keyChain,
		ids:              ids,
		validator:        validator,
		logger:           logger,
	}
}

// UploadFiles encrypts each upload with fek, stores the blob and records
// its metadata under parent (nil means root). Uploads are processed in
// order; on failure the files created so far are kept and the error of the
// failing upload is returned.
func (s *fileService) UploadFiles(ctx context.Context, userID int64, fek []byte, parent *int64, tags models.Tags, uploads ...models.FileUpload) ([]models.File, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, uploads, validators.FieldFiles); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid uploads provided")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := s.validator.Validate(ctx, tags, validators.FieldTags); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid upload tags provided")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if tags == nil {
		tags = models.Tags{}
	}

	if parent != nil {
		if _, err := checkParent(ctx, s.folderRepository, userID, *parent); err != nil {
			return nil, err
		}
	}

	created := make([]models.File, 0, len(uploads))
	for _, upload := range uploads {
		file, err := s.upload(ctx, userID, fek, parent, tags, upload)
		if err != nil {
			return created, err
		}
		created = append(created, file)
	}

	return created, nil
}

func (s *fileService) upload(ctx context.Context, userID int64, fek []byte, parent *int64, tags models.Tags, upload models.FileUpload) (models.File, error) {
	log := logger.FromContext(ctx)

	blob, err := s.keyChain.EncryptObject(upload.Data, fek)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("name", upload.Name).Msg("file encryption failed")
		return models.File{}, fmt.Errorf("file encryption failed: %w", err)
	}

	location := objectKey(userID, parent, s.ids.Generate(), upload.Name)
	if err = s.objectStorage.PutObject(ctx, location, blob); err != nil {
		log.Err(err).Str("location", location).Msg("object upload failed")
		return models.File{}, fmt.Errorf("object upload failed: %w", err)
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	file := models.File{
		UserID:      userID,
		Name:        upload.Name,
		ContentType: contentType,
		Size:        int64(len(upload.Data)),
		Location:    location,
		Tags:        tags,
	}
	file.SetParent(parent)

	created, err := s.fileRepository.CreateFile(ctx, file)
	if err != nil {
		log.Err(err).Str("location", location).Msg("file record creation failed")
		if delErr := s.objectStorage.DeleteObject(ctx, location); delErr != nil {
			log.Err(delErr).Str("location", location).Msg("orphaned object was not removed")
		}
		return models.File{}, fmt.Errorf("file record creation failed: %w", err)
	}

	return created, nil
}

// DownloadFile fetches and decrypts the body of a file. A blob that fails
// authentication under fek is reported as ErrObjectTampered.
func (s *fileService) DownloadFile(ctx context.Context, userID, fileID int64, fek []byte) (models.FileDownload, error) {
	log := logger.FromContext(ctx)

	file, err := s.GetFileDetails(ctx, userID, fileID)
	if err != nil {
		return models.FileDownload{}, err
	}

	blob, err := s.objectStorage.GetObject(ctx, file.Location)
	if err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("object download failed")
		return models.FileDownload{}, fmt.Errorf("object download failed: %w", err)
	}

	data, err := s.keyChain.DecryptObject(blob, fek)
	if errors.Is(err, crypto.ErrIntegrity) {
		log.Warn().Int64("file_id", fileID).Msg("object failed integrity check")
		return models.FileDownload{}, fmt.Errorf("%w: %w", ErrObjectTampered, err)
	}
	if err != nil {
		return models.FileDownload{}, fmt.Errorf("file decryption failed: %w", err)
	}

	return models.FileDownload{File: file, Data: data}, nil
}

// GetFileDetails returns the metadata of a file. Files that are being
// deleted are reported as store.ErrFileNotFound.
func (s *fileService) GetFileDetails(ctx context.Context, userID, fileID int64) (models.File, error) {
	file, err := s.fileRepository.GetFile(ctx, userID, fileID)
	if err != nil {
		return models.File{}, fmt.Errorf("error getting file: %w", err)
	}
	if file.IsDeleted {
		return models.File{}, store.ErrFileNotFound
	}
	return file, nil
}

// MoveFile changes the parent of a file. The object key is not changed.
func (s *fileService) MoveFile(ctx context.Context, userID, fileID int64, parent *int64) (models.File, error) {
	file, err := s.GetFileDetails(ctx, userID, fileID)
	if err != nil {
		return models.File{}, err
	}

	if parent != nil {
		if _, err = checkParent(ctx, s.folderRepository, userID, *parent); err != nil {
			return models.File{}, err
		}
	}

	file.SetParent(parent)
	return s.save(ctx, file)
}

// TrashFile soft-deletes a file. Trashing a trashed file is a no-op.
func (s *fileService) TrashFile(ctx context.Context, userID, fileID int64) (models.File, error) {
	file, err := s.GetFileDetails(ctx, userID, fileID)
	if err != nil {
		return models.File{}, err
	}
	if file.IsTrashed {
		return file, nil
	}

	file.IsTrashed = true
	return s.save(ctx, file)
}

// DeleteFile removes the encrypted body and the record of a file.
func (s *fileService) DeleteFile(ctx context.Context, userID, fileID int64) error {
	file, err := s.fileRepository.GetFile(ctx, userID, fileID)
	if err != nil {
		return fmt.Errorf("error getting file: %w", err)
	}
	return purgeFile(ctx, s.fileRepository, s.objectStorage, file)
}

func (s *fileService) save(ctx context.Context, file models.File) (models.File, error) {
	updated, err := s.fileRepository.UpdateFile(ctx, file)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("file_id", file.FileID).Msg("file update ended with error")
		return models.File{}, fmt.Errorf("file update ended with error: %w", err)
	}
	return updated, nil
}

// purgeFile tombstones the record, removes the object and then the record.
// A crash in between leaves a tombstone that readers skip and that the
// sweeper worker finishes later. Each step accepts already-missing data.
func purgeFile(ctx context.Context, files store.FileRepository, objects store.ObjectStorage, file models.File) error {
	log := logger.FromContext(ctx)

	if err := files.MarkFileDeleted(ctx, file.UserID, file.FileID); err != nil {
		log.Err(err).Int64("file_id", file.FileID).Msg("file tombstone failed")
		return fmt.Errorf("error marking file %d deleted: %w", file.FileID, err)
	}
	if err := objects.DeleteObject(ctx, file.Location); err != nil {
		log.Err(err).Int64("file_id", file.FileID).Msg("object deletion failed")
		return fmt.Errorf("error deleting object of file %d: %w", file.FileID, err)
	}
	if err := files.DeleteFile(ctx, file.UserID, file.FileID); err != nil {
		log.Err(err).Int64("file_id", file.FileID).Msg("file record deletion failed")
		return fmt.Errorf("error deleting file %d: %w", file.FileID, err)
	}
	return nil
}

// objectKey builds clients/{userID}/{parent|root}/{id}-{name}. The name is
// validated to contain no path separators before it gets here.
func objectKey(userID int64, parent *int64, id, name string) string {
	folder := "root"
	if parent != nil {
		folder = strconv.FormatInt(*parent, 10)
	}
	return fmt.Sprintf("clients/%d/%s/%s-%s", userID, folder, id, name)
}
