package service

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/models"
)

// memoryRecords is an in-memory FolderRepository and FileRepository used by
// scenario tests. It mirrors the SQL repositories: deletes of missing rows
// succeed and lists include tombstoned files.
type memoryRecords struct {
	mu      sync.Mutex
	nextID  int64
	folders map[int64]models.Folder
	files   map[int64]models.File
}

func newMemoryRecords() *memoryRecords {
	return &memoryRecords{
		folders: make(map[int64]models.Folder),
		files:   make(map[int64]models.File),
	}
}

func (m *memoryRecords) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryRecords) CreateFolder(_ context.Context, folder models.Folder) (models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	folder.FolderID = m.id()
	m.folders[folder.FolderID] = folder
	return folder, nil
}

func (m *memoryRecords) GetFolder(_ context.Context, userID, folderID int64) (models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[folderID]
	if !ok || f.UserID != userID {
		return models.Folder{}, store.ErrFolderNotFound
	}
	return f, nil
}

func (m *memoryRecords) listFolders(match func(models.Folder) bool) []models.Folder {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Folder, 0)
	for _, f := range m.folders {
		if match(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FolderID < out[j].FolderID })
	return out
}

func (m *memoryRecords) ListFolders(_ context.Context, userID int64) ([]models.Folder, error) {
	return m.listFolders(func(f models.Folder) bool { return f.UserID == userID }), nil
}

func (m *memoryRecords) ListRootFolders(_ context.Context, userID int64) ([]models.Folder, error) {
	return m.listFolders(func(f models.Folder) bool { return f.UserID == userID && f.ParentFolder == nil }), nil
}

func (m *memoryRecords) ListSubfolders(_ context.Context, userID, parentID int64) ([]models.Folder, error) {
	return m.listFolders(func(f models.Folder) bool {
		return f.UserID == userID && f.ParentFolder != nil && *f.ParentFolder == parentID
	}), nil
}

func (m *memoryRecords) UpdateFolder(_ context.Context, folder models.Folder) (models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.folders[folder.FolderID]; !ok || f.UserID != folder.UserID {
		return models.Folder{}, store.ErrFolderNotFound
	}
	m.folders[folder.FolderID] = folder
	return folder, nil
}

func (m *memoryRecords) DeleteFolder(_ context.Context, userID, folderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.folders[folderID]; ok && f.UserID == userID {
		delete(m.folders, folderID)
	}
	return nil
}

func (m *memoryRecords) CreateFile(_ context.Context, file models.File) (models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	file.FileID = m.id()
	m.files[file.FileID] = file
	return file, nil
}

func (m *memoryRecords) GetFile(_ context.Context, userID, fileID int64) (models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[fileID]
	if !ok || f.UserID != userID {
		return models.File{}, store.ErrFileNotFound
	}
	return f, nil
}

func (m *memoryRecords) listFiles(match func(models.File) bool) []models.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.File, 0)
	for _, f := range m.files {
		if match(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileID < out[j].FileID })
	return out
}

func (m *memoryRecords) ListFiles(_ context.Context, userID int64) ([]models.File, error) {
	return m.listFiles(func(f models.File) bool { return f.UserID == userID }), nil
}

func (m *memoryRecords) ListFilesInFolder(_ context.Context, userID, folderID int64) ([]models.File, error) {
	return m.listFiles(func(f models.File) bool {
		return f.UserID == userID && f.ParentFolder != nil && *f.ParentFolder == folderID
	}), nil
}

func (m *memoryRecords) ListDeletedFiles(_ context.Context, limit uint64) ([]models.File, error) {
	out := m.listFiles(func(f models.File) bool { return f.IsDeleted })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryRecords) UpdateFile(_ context.Context, file models.File) (models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[file.FileID]; !ok || f.UserID != file.UserID {
		return models.File{}, store.ErrFileNotFound
	}
	m.files[file.FileID] = file
	return file, nil
}

func (m *memoryRecords) MarkFileDeleted(_ context.Context, userID, fileID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[fileID]; ok && f.UserID == userID {
		f.IsDeleted = true
		m.files[fileID] = f
	}
	return nil
}

func (m *memoryRecords) DeleteFile(_ context.Context, userID, fileID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[fileID]; ok && f.UserID == userID {
		delete(m.files, fileID)
	}
	return nil
}

// sequenceIDs hands out "id-1", "id-2", ... as object key prefixes.
type sequenceIDs struct {
	n int
}

func (s *sequenceIDs) Generate() string {
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }
