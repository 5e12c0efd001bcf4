package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/validators"
	"github.com/MKhiriev/go-file-keeper/models"
)

type folderService struct {
	folderRepository store.FolderRepository
	fileRepository   store.FileRepository
	objectStorage    store.ObjectStorage

	validator validators.Validator

	logger *logger.Logger
}

// NewFolderService constructs a FolderService over the record and object
// stores of storages.
func NewFolderService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) FolderService {
	return &folderService{
		folderRepository: storages.FolderRepository,
		fileRepository:   storages.FileRepository,
		objectStorage:    storages.ObjectStorage,
		validator:        validator,
		logger:           logger,
	}
}

// CreateFolder creates an active folder at the root or under an existing,
// non-trashed folder of the same user.
func (s *folderService) CreateFolder(ctx context.Context, userID int64, request models.FolderRequest) (models.Folder, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request, validators.FieldName, validators.FieldTags); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid folder data provided")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if request.ParentFolder != nil {
		if _, err := checkParent(ctx, s.folderRepository, userID, *request.ParentFolder); err != nil {
			return models.Folder{}, err
		}
	}

	folder := models.Folder{
		UserID: userID,
		Name:   strings.TrimSpace(*request.Name),
		Tags:   models.Tags{},
	}
	folder.SetParent(request.ParentFolder)
	if request.Tags != nil {
		folder.Tags = *request.Tags
	}

	created, err := s.folderRepository.CreateFolder(ctx, folder)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("folder creation ended with error")
		return models.Folder{}, fmt.Errorf("folder creation ended with error: %w", err)
	}

	return created, nil
}

// GetFolder returns a folder with its direct subfolders and files.
// Files that are being deleted are left out.
func (s *folderService) GetFolder(ctx context.Context, userID, folderID int64) (models.FolderContents, error) {
	folder, err := s.folderRepository.GetFolder(ctx, userID, folderID)
	if err != nil {
		return models.FolderContents{}, fmt.Errorf("error getting folder: %w", err)
	}

	subfolders, err := s.folderRepository.ListSubfolders(ctx, userID, folderID)
	if err != nil {
		return models.FolderContents{}, fmt.Errorf("error listing subfolders: %w", err)
	}

	files, err := s.fileRepository.ListFilesInFolder(ctx, userID, folderID)
	if err != nil {
		return models.FolderContents{}, fmt.Errorf("error listing files: %w", err)
	}

	return models.FolderContents{
		Folder:     folder,
		Subfolders: subfolders,
		Files:      visibleFiles(files),
	}, nil
}

// ListRootFolders returns the non-trashed root folders of the user.
func (s *folderService) ListRootFolders(ctx context.Context, userID int64) ([]models.Folder, error) {
	roots, err := s.folderRepository.ListRootFolders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing root folders: %w", err)
	}

	active := make([]models.Folder, 0, len(roots))
	for _, f := range roots {
		if !f.IsTrashed {
			active = append(active, f)
		}
	}
	return active, nil
}

// UpdateFolder renames a folder or replaces its tags. Nil request fields
// are left unchanged; a trashed folder cannot be updated.
func (s *folderService) UpdateFolder(ctx context.Context, userID, folderID int64, request models.FolderRequest) (models.Folder, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request, validators.FieldUpdate, validators.FieldTags); err != nil {
		log.Err(err).Int64("folder_id", folderID).Msg("invalid folder update provided")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	folder, err := s.folderRepository.GetFolder(ctx, userID, folderID)
	if err != nil {
		return models.Folder{}, fmt.Errorf("error getting folder: %w", err)
	}
	if folder.IsTrashed {
		return models.Folder{}, ErrTrashedFolderUpdate
	}

	if request.Name != nil {
		folder.Name = strings.TrimSpace(*request.Name)
	}
	if request.Tags != nil {
		folder.Tags = *request.Tags
	}

	return s.save(ctx, folder)
}

// MoveFolder moves a folder to the root (nil parent) or under another
// active folder of the same user. Moving a folder under itself or one of
// its descendants is rejected with ErrMoveIntoDescendant, which keeps the
// parent relation acyclic.
func (s *folderService) MoveFolder(ctx context.Context, userID, folderID int64, parent *int64) (models.Folder, error) {
	folder, err := s.folderRepository.GetFolder(ctx, userID, folderID)
	if err != nil {
		return models.Folder{}, fmt.Errorf("error getting folder: %w", err)
	}
	if folder.IsTrashed {
		return models.Folder{}, ErrTrashedFolderUpdate
	}

	if parent != nil {
		if *parent == folderID {
			return models.Folder{}, ErrMoveIntoDescendant
		}
		if _, err = checkParent(ctx, s.folderRepository, userID, *parent); err != nil {
			return models.Folder{}, err
		}
		if err = s.checkNotDescendant(ctx, userID, folderID, *parent); err != nil {
			return models.Folder{}, err
		}
	}

	folder.SetParent(parent)
	return s.save(ctx, folder)
}

// TrashFolder soft-deletes a folder. Trashing a trashed folder is a no-op.
func (s *folderService) TrashFolder(ctx context.Context, userID, folderID int64) (models.Folder, error) {
	folder, err := s.folderRepository.GetFolder(ctx, userID, folderID)
	if err != nil {
		return models.Folder{}, fmt.Errorf("error getting folder: %w", err)
	}
	if folder.IsTrashed {
		return folder, nil
	}

	folder.IsTrashed = true
	return s.save(ctx, folder)
}

// DeleteFolder hard-deletes a trashed folder with its whole subtree.
//
// The subtree is walked depth-first with an explicit stack. When a folder is
// first visited its files are purged and its subfolders are pushed; the
// folder record itself is removed once all of them are gone, so children
// always go before their parent. Every step tolerates records and objects
// that are already missing, so a retried cascade converges: once the top
// folder is gone a repeated call returns nil.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID int64) error {
	log := logger.FromContext(ctx)

	folder, err := s.folderRepository.GetFolder(ctx, userID, folderID)
	if errors.Is(err, store.ErrFolderNotFound) {
		// an earlier attempt already removed the top record
		log.Debug().Int64("folder_id", folderID).Msg("folder already deleted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error getting folder: %w", err)
	}
	if !folder.IsTrashed {
		log.Warn().Int64("folder_id", folderID).Msg("refusing to delete a folder that is not trashed")
		return ErrFolderNotTrashed
	}

	type frame struct {
		folderID int64
		expanded bool
	}

	stack := []frame{{folderID: folderID}}
	var deletedFolders, deletedFiles int

	for len(stack) > 0 {
		top := len(stack) - 1
		current := stack[top].folderID

		if !stack[top].expanded {
			stack[top].expanded = true

			files, err := s.fileRepository.ListFilesInFolder(ctx, userID, current)
			if err != nil {
				return fmt.Errorf("error listing files of folder %d: %w", current, err)
			}
			for _, file := range files {
				if err = purgeFile(ctx, s.fileRepository, s.objectStorage, file); err != nil {
					return err
				}
				deletedFiles++
			}

			subfolders, err := s.folderRepository.ListSubfolders(ctx, userID, current)
			if err != nil {
				return fmt.Errorf("error listing subfolders of folder %d: %w", current, err)
			}
			for _, sub := range subfolders {
				stack = append(stack, frame{folderID: sub.FolderID})
			}
			continue
		}

		if err = s.folderRepository.DeleteFolder(ctx, userID, current); err != nil {
			return fmt.Errorf("error deleting folder %d: %w", current, err)
		}
		stack = stack[:top]
		deletedFolders++
	}

	log.Info().
		Int64("folder_id", folderID).
		Int("folders", deletedFolders).
		Int("files", deletedFiles).
		Msg("folder subtree deleted")
	return nil
}

func (s *folderService) save(ctx context.Context, folder models.Folder) (models.Folder, error) {
	updated, err := s.folderRepository.UpdateFolder(ctx, folder)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("folder_id", folder.FolderID).Msg("folder update ended with error")
		return models.Folder{}, fmt.Errorf("folder update ended with error: %w", err)
	}
	return updated, nil
}

// checkNotDescendant walks up from target to the root and fails if it meets
// folderID on the way.
func (s *folderService) checkNotDescendant(ctx context.Context, userID, folderID, target int64) error {
	folders, err := s.folderRepository.ListFolders(ctx, userID)
	if err != nil {
		return fmt.Errorf("error listing folders: %w", err)
	}

	parents := make(map[int64]*int64, len(folders))
	for _, f := range folders {
		parents[f.FolderID] = f.ParentFolder
	}

	seen := make(map[int64]struct{}, len(folders))
	for current := &target; current != nil; current = parents[*current] {
		if *current == folderID {
			return ErrMoveIntoDescendant
		}
		if _, ok := seen[*current]; ok {
			break
		}
		seen[*current] = struct{}{}
	}
	return nil
}

// checkParent loads the folder a new item is placed under.
func checkParent(ctx context.Context, folders store.FolderRepository, userID, parentID int64) (models.Folder, error) {
	parent, err := folders.GetFolder(ctx, userID, parentID)
	if errors.Is(err, store.ErrFolderNotFound) {
		return models.Folder{}, ErrParentNotFound
	}
	if err != nil {
		return models.Folder{}, fmt.Errorf("error getting parent folder: %w", err)
	}
	if parent.IsTrashed {
		return models.Folder{}, ErrParentTrashed
	}
	return parent, nil
}

func visibleFiles(files []models.File) []models.File {
	visible := make([]models.File, 0, len(files))
	for _, f := range files {
		if !f.IsDeleted {
			visible = append(visible, f)
		}
	}
	return visible
}
