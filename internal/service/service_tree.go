package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/tree"
)

type treeService struct {
	folderRepository store.FolderRepository
	fileRepository   store.FileRepository

	logger *logger.Logger
}

func NewTreeService(storages *store.Storages, logger *logger.Logger) TreeService {
	return &treeService{
		folderRepository: storages.FolderRepository,
		fileRepository:   storages.FileRepository,
		logger:           logger,
	}
}

// GetTree loads every folder and file of the user and builds the forest.
// Trashed items stay in the tree with their flag set; tombstoned files do
// not.
func (s *treeService) GetTree(ctx context.Context, userID int64) (tree.Forest, error) {
	folders, err := s.folderRepository.ListFolders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing folders: %w", err)
	}

	files, err := s.fileRepository.ListFiles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}

	forest := tree.Build(folders, visibleFiles(files))
	logger.FromContext(ctx).Debug().
		Int64("user_id", userID).
		Int("nodes", forest.Count()).
		Msg("tree built")

	return forest, nil
}
