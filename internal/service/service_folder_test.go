package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/mock"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/validators"
	"github.com/MKhiriev/go-file-keeper/models"
)

type folderMocks struct {
	folders *mock.MockFolderRepository
	files   *mock.MockFileRepository
	objects *mock.MockObjectStorage
}

func newMockedFolderService(t *testing.T) (FolderService, folderMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := folderMocks{
		folders: mock.NewMockFolderRepository(ctrl),
		files:   mock.NewMockFileRepository(ctrl),
		objects: mock.NewMockObjectStorage(ctrl),
	}
	storages := &store.Storages{FolderRepository: m.folders, FileRepository: m.files, ObjectStorage: m.objects}
	return NewFolderService(storages, validators.NewFileKeeperValidator(), logger.Nop()), m
}

func newFakeFolderService(t *testing.T) (FolderService, *memoryRecords) {
	t.Helper()
	records := newMemoryRecords()
	objects, err := store.NewMemoryObjectStorage(logger.Nop())
	require.NoError(t, err)
	storages := &store.Storages{FolderRepository: records, FileRepository: records, ObjectStorage: objects}
	return NewFolderService(storages, validators.NewFileKeeperValidator(), logger.Nop()), records
}

// ─────────────────────────────────────────────
// CreateFolder
// ─────────────────────────────────────────────

func TestCreateFolder_Root(t *testing.T) {
	svc, m := newMockedFolderService(t)

	m.folders.EXPECT().CreateFolder(gomock.Any(), models.Folder{
		UserID: 1,
		Name:   "Docs",
		IsRoot: true,
		Tags:   models.Tags{},
	}).DoAndReturn(func(_ context.Context, f models.Folder) (models.Folder, error) {
		f.FolderID = 10
		return f, nil
	})

	folder, err := svc.CreateFolder(context.Background(), 1, models.FolderRequest{Name: strPtr("  Docs ")})
	require.NoError(t, err)
	assert.Equal(t, int64(10), folder.FolderID)
	assert.True(t, folder.IsRoot)
}

func TestCreateFolder_UnderParent(t *testing.T) {
	svc, m := newMockedFolderService(t)
	tags := models.Tags{"work"}

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(3)).Return(models.Folder{FolderID: 3, UserID: 1}, nil)
	m.folders.EXPECT().CreateFolder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.Folder) (models.Folder, error) {
			require.NotNil(t, f.ParentFolder)
			assert.Equal(t, int64(3), *f.ParentFolder)
			assert.False(t, f.IsRoot)
			assert.Equal(t, tags, f.Tags)
			return f, nil
		})

	_, err := svc.CreateFolder(context.Background(), 1, models.FolderRequest{
		Name:         strPtr("Reports"),
		ParentFolder: int64Ptr(3),
		Tags:         &tags,
	})
	require.NoError(t, err)
}

func TestCreateFolder_Rejections(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		svc, _ := newMockedFolderService(t)
		_, err := svc.CreateFolder(context.Background(), 1, models.FolderRequest{})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("unknown parent", func(t *testing.T) {
		svc, m := newMockedFolderService(t)
		m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(3)).Return(models.Folder{}, store.ErrFolderNotFound)

		_, err := svc.CreateFolder(context.Background(), 1, models.FolderRequest{Name: strPtr("x"), ParentFolder: int64Ptr(3)})
		assert.ErrorIs(t, err, ErrParentNotFound)
	})

	t.Run("trashed parent", func(t *testing.T) {
		svc, m := newMockedFolderService(t)
		m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(3)).Return(models.Folder{FolderID: 3, IsTrashed: true}, nil)

		_, err := svc.CreateFolder(context.Background(), 1, models.FolderRequest{Name: strPtr("x"), ParentFolder: int64Ptr(3)})
		assert.ErrorIs(t, err, ErrParentTrashed)
	})
}

// ─────────────────────────────────────────────
// GetFolder / ListRootFolders
// ─────────────────────────────────────────────

func TestGetFolder_HidesTombstonedFiles(t *testing.T) {
	svc, m := newMockedFolderService(t)

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(3)).Return(models.Folder{FolderID: 3, Name: "Docs"}, nil)
	m.folders.EXPECT().ListSubfolders(gomock.Any(), int64(1), int64(3)).Return([]models.Folder{{FolderID: 4}}, nil)
	m.files.EXPECT().ListFilesInFolder(gomock.Any(), int64(1), int64(3)).Return([]models.File{
		{FileID: 7, Name: "a.txt"},
		{FileID: 8, Name: "gone.txt", IsDeleted: true},
	}, nil)

	contents, err := svc.GetFolder(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "Docs", contents.Folder.Name)
	assert.Len(t, contents.Subfolders, 1)
	require.Len(t, contents.Files, 1)
	assert.Equal(t, int64(7), contents.Files[0].FileID)
}

func TestGetFolder_NotFound(t *testing.T) {
	svc, m := newMockedFolderService(t)
	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(3)).Return(models.Folder{}, store.ErrFolderNotFound)

	_, err := svc.GetFolder(context.Background(), 1, 3)
	assert.ErrorIs(t, err, store.ErrFolderNotFound)
}

func TestListRootFolders_SkipsTrashed(t *testing.T) {
	svc, m := newMockedFolderService(t)
	m.folders.EXPECT().ListRootFolders(gomock.Any(), int64(1)).Return([]models.Folder{
		{FolderID: 1, Name: "active"},
		{FolderID: 2, Name: "trashed", IsTrashed: true},
	}, nil)

	roots, err := svc.ListRootFolders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "active", roots[0].Name)
}

// ─────────────────────────────────────────────
// UpdateFolder / TrashFolder
// ─────────────────────────────────────────────

func TestUpdateFolder(t *testing.T) {
	svc, records := newFakeFolderService(t)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, 1, models.FolderRequest{Name: strPtr("Docs"), Tags: &models.Tags{"a"}})
	require.NoError(t, err)

	renamed, err := svc.UpdateFolder(ctx, 1, folder.FolderID, models.FolderRequest{Name: strPtr("Papers")})
	require.NoError(t, err)
	assert.Equal(t, "Papers", renamed.Name)
	assert.Equal(t, models.Tags{"a"}, renamed.Tags, "nil fields are left unchanged")

	_, err = svc.UpdateFolder(ctx, 1, folder.FolderID, models.FolderRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.TrashFolder(ctx, 1, folder.FolderID)
	require.NoError(t, err)

	_, err = svc.UpdateFolder(ctx, 1, folder.FolderID, models.FolderRequest{Name: strPtr("Again")})
	assert.ErrorIs(t, err, ErrTrashedFolderUpdate)
	assert.Equal(t, "Papers", records.folders[folder.FolderID].Name)
}

func TestTrashFolder_Idempotent(t *testing.T) {
	svc, m := newMockedFolderService(t)

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(3)).Return(models.Folder{FolderID: 3, UserID: 1, IsTrashed: true}, nil)
	m.folders.EXPECT().UpdateFolder(gomock.Any(), gomock.Any()).Times(0)

	folder, err := svc.TrashFolder(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, folder.IsTrashed)
}

// ─────────────────────────────────────────────
// MoveFolder
// ─────────────────────────────────────────────

func TestMoveFolder(t *testing.T) {
	svc, _ := newFakeFolderService(t)
	ctx := context.Background()

	a, err := svc.CreateFolder(ctx, 1, models.FolderRequest{Name: strPtr("A")})
	require.NoError(t, err)
	b, err := svc.CreateFolder(ctx, 1, models.FolderRequest{Name: strPtr("B"), ParentFolder: &a.FolderID})
	require.NoError(t, err)
	c, err := svc.CreateFolder(ctx, 1, models.FolderRequest{Name: strPtr("C"), ParentFolder: &b.FolderID})
	require.NoError(t, err)
	other, err := svc.CreateFolder(ctx, 1, models.FolderRequest{Name: strPtr("Other")})
	require.NoError(t, err)

	t.Run("into itself", func(t *testing.T) {
		_, err := svc.MoveFolder(ctx, 1, a.FolderID, &a.FolderID)
		assert.ErrorIs(t, err, ErrMoveIntoDescendant)
	})

	t.Run("into grandchild", func(t *testing.T) {
		_, err := svc.MoveFolder(ctx, 1, a.FolderID, &c.FolderID)
		assert.ErrorIs(t, err, ErrMoveIntoDescendant)
	})

	t.Run("under sibling tree", func(t *testing.T) {
		moved, err := svc.MoveFolder(ctx, 1, b.FolderID, &other.FolderID)
		require.NoError(t, err)
		require.NotNil(t, moved.ParentFolder)
		assert.Equal(t, other.FolderID, *moved.ParentFolder)
		assert.False(t, moved.IsRoot)
	})

	t.Run("to root", func(t *testing.T) {
		moved, err := svc.MoveFolder(ctx, 1, b.FolderID, nil)
		require.NoError(t, err)
		assert.Nil(t, moved.ParentFolder)
		assert.True(t, moved.IsRoot)
	})

	t.Run("former descendant is a valid target once detached", func(t *testing.T) {
		moved, err := svc.MoveFolder(ctx, 1, a.FolderID, &c.FolderID)
		require.NoError(t, err)
		assert.Equal(t, c.FolderID, *moved.ParentFolder)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := svc.MoveFolder(ctx, 1, other.FolderID, int64Ptr(999))
		assert.ErrorIs(t, err, ErrParentNotFound)
	})

	t.Run("someone else's parent", func(t *testing.T) {
		foreign, err := svc.CreateFolder(ctx, 2, models.FolderRequest{Name: strPtr("Foreign")})
		require.NoError(t, err)

		_, err = svc.MoveFolder(ctx, 1, other.FolderID, &foreign.FolderID)
		assert.ErrorIs(t, err, ErrParentNotFound)
	})
}

// ─────────────────────────────────────────────
// DeleteFolder
// ─────────────────────────────────────────────

func TestDeleteFolder_NotTrashed(t *testing.T) {
	svc, m := newMockedFolderService(t)

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(3)).Return(models.Folder{FolderID: 3, UserID: 1}, nil)
	m.folders.EXPECT().DeleteFolder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.files.EXPECT().MarkFileDeleted(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	assert.ErrorIs(t, svc.DeleteFolder(context.Background(), 1, 3), ErrFolderNotTrashed)
}

func TestDeleteFolder_ChildrenBeforeParent(t *testing.T) {
	svc, m := newMockedFolderService(t)
	ctx := context.Background()

	f1 := models.File{FileID: 11, UserID: 1, Location: "clients/1/1/id-f1"}
	f2 := models.File{FileID: 12, UserID: 1, Location: "clients/1/2/id-f2"}

	gomock.InOrder(
		m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(1)).Return(models.Folder{FolderID: 1, UserID: 1, IsTrashed: true}, nil),

		m.files.EXPECT().ListFilesInFolder(gomock.Any(), int64(1), int64(1)).Return([]models.File{f1}, nil),
		m.files.EXPECT().MarkFileDeleted(gomock.Any(), int64(1), int64(11)).Return(nil),
		m.objects.EXPECT().DeleteObject(gomock.Any(), f1.Location).Return(nil),
		m.files.EXPECT().DeleteFile(gomock.Any(), int64(1), int64(11)).Return(nil),
		m.folders.EXPECT().ListSubfolders(gomock.Any(), int64(1), int64(1)).Return([]models.Folder{{FolderID: 2, UserID: 1}}, nil),

		m.files.EXPECT().ListFilesInFolder(gomock.Any(), int64(1), int64(2)).Return([]models.File{f2}, nil),
		m.files.EXPECT().MarkFileDeleted(gomock.Any(), int64(1), int64(12)).Return(nil),
		m.objects.EXPECT().DeleteObject(gomock.Any(), f2.Location).Return(nil),
		m.files.EXPECT().DeleteFile(gomock.Any(), int64(1), int64(12)).Return(nil),
		m.folders.EXPECT().ListSubfolders(gomock.Any(), int64(1), int64(2)).Return([]models.Folder{}, nil),

		m.folders.EXPECT().DeleteFolder(gomock.Any(), int64(1), int64(2)).Return(nil),
		m.folders.EXPECT().DeleteFolder(gomock.Any(), int64(1), int64(1)).Return(nil),
	)

	require.NoError(t, svc.DeleteFolder(ctx, 1, 1))
}

func TestDeleteFolder_ToleratesMissingData(t *testing.T) {
	svc, records := newFakeFolderService(t)
	ctx := context.Background()

	root, err := svc.CreateFolder(ctx, 1, models.FolderRequest{Name: strPtr("root")})
	require.NoError(t, err)
	child, err := svc.CreateFolder(ctx, 1, models.FolderRequest{Name: strPtr("child"), ParentFolder: &root.FolderID})
	require.NoError(t, err)

	// A file whose blob is already gone and one tombstoned by an earlier,
	// interrupted attempt.
	_, err = records.CreateFile(ctx, models.File{UserID: 1, Location: "clients/1/missing", ParentFolder: &child.FolderID})
	require.NoError(t, err)
	_, err = records.CreateFile(ctx, models.File{UserID: 1, Location: "clients/1/half-deleted", ParentFolder: &root.FolderID, IsDeleted: true})
	require.NoError(t, err)

	_, err = svc.TrashFolder(ctx, 1, root.FolderID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFolder(ctx, 1, root.FolderID))
	assert.Empty(t, records.folders)
	assert.Empty(t, records.files)

	_, err = svc.GetFolder(ctx, 1, root.FolderID)
	assert.ErrorIs(t, err, store.ErrFolderNotFound)

	// A retry after the cascade finished converges.
	assert.NoError(t, svc.DeleteFolder(ctx, 1, root.FolderID))
}

func TestDeleteFolder_AlreadyGone(t *testing.T) {
	svc, m := newMockedFolderService(t)

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(9)).Return(models.Folder{}, store.ErrFolderNotFound)
	m.files.EXPECT().ListFilesInFolder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.folders.EXPECT().DeleteFolder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	assert.NoError(t, svc.DeleteFolder(context.Background(), 1, 9))
}

func TestDeleteFolder_LookupFailure(t *testing.T) {
	svc, m := newMockedFolderService(t)

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(9)).Return(models.Folder{}, store.ErrExecutingQuery)

	assert.ErrorIs(t, svc.DeleteFolder(context.Background(), 1, 9), store.ErrExecutingQuery)
}

func TestDeleteFolder_StopsOnStoreFailure(t *testing.T) {
	svc, m := newMockedFolderService(t)

	m.folders.EXPECT().GetFolder(gomock.Any(), int64(1), int64(1)).Return(models.Folder{FolderID: 1, UserID: 1, IsTrashed: true}, nil)
	m.files.EXPECT().ListFilesInFolder(gomock.Any(), int64(1), int64(1)).Return([]models.File{{FileID: 5, UserID: 1, Location: "k"}}, nil)
	m.files.EXPECT().MarkFileDeleted(gomock.Any(), int64(1), int64(5)).Return(nil)
	m.objects.EXPECT().DeleteObject(gomock.Any(), "k").Return(store.ErrObjectStorage)
	m.folders.EXPECT().DeleteFolder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	assert.ErrorIs(t, svc.DeleteFolder(context.Background(), 1, 1), store.ErrObjectStorage)
}
