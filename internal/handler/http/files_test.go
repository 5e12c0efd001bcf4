package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/tree"
	"github.com/MKhiriev/go-file-keeper/models"
)

type formFile struct {
	name        string
	contentType string
	data        []byte
}

// newUploadRequest builds an authorized multipart upload carrying the test
// file key.
func newUploadRequest(t *testing.T, fields map[string][]string, files ...formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := newRequest(t, http.MethodPost, "/api/files", body.String())
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return withFileKeyHeader(authed(req), testFEK)
}

// ─────────────────────────────────────────────
// uploadFiles
// ─────────────────────────────────────────────

func TestUploadFiles(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)

	m.files.EXPECT().
		UploadFiles(gomock.Any(), int64(1), testFEK, gomock.Any(), models.Tags{"q3", "finance"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ []byte, parent *int64, _ models.Tags, uploads ...models.FileUpload) ([]models.File, error) {
			require.NotNil(t, parent)
			assert.Equal(t, int64(3), *parent)
			require.Len(t, uploads, 2)
			assert.Equal(t, models.FileUpload{Name: "report.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.7")}, uploads[0])
			assert.Equal(t, models.FileUpload{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello")}, uploads[1])
			return []models.File{
				{FileID: 1, Name: "report.pdf", Size: 8, ParentFolder: parent, Location: "clients/1/3/x"},
				{FileID: 2, Name: "notes.txt", Size: 5, ParentFolder: parent, Location: "clients/1/3/y"},
			}, nil
		})

	req := newUploadRequest(t,
		map[string][]string{uploadParentField: {"3"}, uploadTagsField: {"q3", " ", "finance"}},
		formFile{"report.pdf", "application/pdf", []byte("%PDF-1.7")},
		formFile{"notes.txt", "text/plain", []byte("hello")},
	)
	rec := serve(h, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var files []models.File
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 2)
	assert.Equal(t, "report.pdf", files[0].Name)
	assert.NotContains(t, rec.Body.String(), "clients/")
}

func TestUploadFiles_RootWithoutTags(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)

	m.files.EXPECT().
		UploadFiles(gomock.Any(), int64(1), testFEK, gomock.Nil(), models.Tags{}, gomock.Any()).
		Return([]models.File{{FileID: 1, Name: "a.txt", IsRoot: true}}, nil)

	rec := serve(h, newUploadRequest(t, nil, formFile{"a.txt", "text/plain", []byte("a")}))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUploadFiles_FileKey(t *testing.T) {
	tests := []struct {
		name  string
		value string
		body  string
	}{
		{"missing", "", ErrMissingFileKey.Error()},
		{"not base64", "%%%", ErrInvalidFileKey.Error()},
		{"short key", encodeFileKey([]byte("short")), ErrInvalidFileKey.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, config.Server{})
			m.allowToken(1)
			m.files.EXPECT().UploadFiles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			req := newUploadRequest(t, nil, formFile{"a.txt", "text/plain", []byte("a")})
			req.Header.Set(fileKeyHeader, tt.value)
			rec := serve(h, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.body+"\n", rec.Body.String())
		})
	}
}

func TestUploadFiles_BadForm(t *testing.T) {
	t.Run("not multipart", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		m.allowToken(1)

		req := withFileKeyHeader(authed(newRequest(t, http.MethodPost, "/api/files", `{"files":[]}`)), testFEK)
		rec := serve(h, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad parent", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		m.allowToken(1)

		rec := serve(h, newUploadRequest(t, map[string][]string{uploadParentField: {"abc"}}, formFile{"a.txt", "text/plain", []byte("a")}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejected by service", func(t *testing.T) {
		h, m := newTestHandler(t, config.Server{})
		m.allowToken(1)
		m.files.EXPECT().UploadFiles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, service.ErrInvalidDataProvided)

		rec := serve(h, newUploadRequest(t, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUploadFiles_TooLarge(t *testing.T) {
	h, m := newTestHandler(t, config.Server{MaxUploadSize: 512})
	m.allowToken(1)
	m.files.EXPECT().UploadFiles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := serve(h, newUploadRequest(t, nil, formFile{"big.bin", "application/octet-stream", bytes.Repeat([]byte{1}, 4096)}))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// ─────────────────────────────────────────────
// downloadFile
// ─────────────────────────────────────────────

func TestDownloadFile(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)
	m.files.EXPECT().DownloadFile(gomock.Any(), int64(1), int64(9), testFEK).Return(models.FileDownload{
		File: models.File{FileID: 9, Name: "report.pdf", ContentType: "application/pdf"},
		Data: []byte("%PDF-1.7"),
	}, nil)

	req := withFileKeyHeader(authed(newRequest(t, http.MethodGet, "/api/files/9", nil)), testFEK)
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
	assert.Equal(t, `attachment; filename=report.pdf`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.7", rec.Body.String())
}

func TestDownloadFile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"tampered", service.ErrObjectTampered, http.StatusUnprocessableEntity},
		{"missing record", store.ErrFileNotFound, http.StatusNotFound},
		{"missing object", store.ErrObjectNotFound, http.StatusNotFound},
		{"object store down", store.ErrObjectStorage, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, config.Server{})
			m.allowToken(1)
			m.files.EXPECT().DownloadFile(gomock.Any(), int64(1), int64(9), testFEK).Return(models.FileDownload{}, tt.err)

			req := withFileKeyHeader(authed(newRequest(t, http.MethodGet, "/api/files/9", nil)), testFEK)
			rec := serve(h, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDownloadFile_RequiresFileKey(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)

	rec := serve(h, authed(newRequest(t, http.MethodGet, "/api/files/9", nil)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// metadata routes
// ─────────────────────────────────────────────

func TestGetFileDetails(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)
	m.files.EXPECT().GetFileDetails(gomock.Any(), int64(1), int64(9)).
		Return(models.File{FileID: 9, Name: "report.pdf", Size: 8, Location: "clients/1/root/x"}, nil)

	rec := serve(h, authed(newRequest(t, http.MethodGet, "/api/files/9/details", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"report.pdf"`)
	assert.NotContains(t, rec.Body.String(), "clients/")
}

func TestMoveFile(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)
	m.files.EXPECT().MoveFile(gomock.Any(), int64(1), int64(9), ptr(int64(4))).Return(models.File{FileID: 9, ParentFolder: ptr(int64(4))}, nil)

	rec := serve(h, authed(newRequest(t, http.MethodPatch, "/api/files/9/move", models.MoveRequest{ParentFolder: ptr(int64(4))})))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMoveFile_TrashedParent(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)
	m.files.EXPECT().MoveFile(gomock.Any(), int64(1), int64(9), gomock.Any()).Return(models.File{}, service.ErrParentTrashed)

	rec := serve(h, authed(newRequest(t, http.MethodPatch, "/api/files/9/move", models.MoveRequest{ParentFolder: ptr(int64(4))})))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrashFile(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)
	m.files.EXPECT().TrashFile(gomock.Any(), int64(1), int64(9)).Return(models.File{FileID: 9, IsTrashed: true}, nil)

	rec := serve(h, authed(newRequest(t, http.MethodPatch, "/api/files/9/trash", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_trashed":true`)
}

func TestDeleteFile(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)
	m.files.EXPECT().DeleteFile(gomock.Any(), int64(1), int64(9)).Return(nil)

	rec := serve(h, authed(newRequest(t, http.MethodDelete, "/api/files/9", nil)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetTree(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)

	parent := int64(1)
	m.tree.EXPECT().GetTree(gomock.Any(), int64(1)).Return(tree.Forest{
		{ID: 1, Name: "A", Kind: tree.KindFolder, Children: []*tree.Node{
			{ID: 7, Name: "f1", Kind: tree.KindFile, ParentFolder: &parent, Size: 3},
		}},
	}, nil)

	rec := serve(h, authed(newRequest(t, http.MethodGet, "/api/files/tree", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var forest []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forest))
	require.Len(t, forest, 1)
	assert.Equal(t, "A", forest[0]["name"])
	children, ok := forest[0]["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.Equal(t, "f1", children[0].(map[string]any)["name"])
}

func TestGetTree_StoreFailure(t *testing.T) {
	h, m := newTestHandler(t, config.Server{})
	m.allowToken(1)
	m.tree.EXPECT().GetTree(gomock.Any(), int64(1)).Return(nil, store.ErrExecutingQuery)

	rec := serve(h, authed(newRequest(t, http.MethodGet, "/api/files/tree", nil)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
