package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

const (
	uploadFilesField  = "files"
	uploadParentField = "parent_folder"
	uploadTagsField   = "tags"

	// multipartMemory is how much of a multipart body is kept in memory
	// before parts spill to temporary files.
	multipartMemory = 8 << 20
)

// uploadFiles accepts a multipart form with up to five "files" parts, an
// optional "parent_folder" id and any number of "tags" values.
func (h *Handler) uploadFiles(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}
	fek, ok := utils.GetFileKeyFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingFileKey, "no file key in context")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err = r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: %w", ErrInvalidMultipartForm, err)
		}
		writeError(w, r, err, "error parsing upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	parent, err := parseParentField(r.MultipartForm.Value[uploadParentField])
	if err != nil {
		writeError(w, r, err, "bad parent folder")
		return
	}

	uploads, err := readUploads(r)
	if err != nil {
		writeError(w, r, err, "error reading uploaded files")
		return
	}

	files, err := h.services.FileService.UploadFiles(r.Context(), userID, fek, parent, uploadTags(r), uploads...)
	if err != nil {
		writeError(w, r, err, "file upload failed")
		return
	}

	utils.WriteJSON(w, files, http.StatusCreated)
}

// downloadFile streams the decrypted body with the stored content type.
func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	userID, fileID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad file request")
		return
	}
	fek, ok := utils.GetFileKeyFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingFileKey, "no file key in context")
		return
	}

	download, err := h.services.FileService.DownloadFile(r.Context(), userID, fileID, fek)
	if err != nil {
		writeError(w, r, err, "file download failed")
		return
	}

	w.Header().Set("Content-Type", download.File.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(download.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": download.File.Name}))
	w.WriteHeader(http.StatusOK)
	w.Write(download.Data)
}

func (h *Handler) getFileDetails(w http.ResponseWriter, r *http.Request) {
	userID, fileID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad file request")
		return
	}

	file, err := h.services.FileService.GetFileDetails(r.Context(), userID, fileID)
	if err != nil {
		writeError(w, r, err, "getting file details failed")
		return
	}

	utils.WriteJSON(w, file, http.StatusOK)
}

func (h *Handler) moveFile(w http.ResponseWriter, r *http.Request) {
	userID, fileID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad file request")
		return
	}

	var request models.MoveRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	file, err := h.services.FileService.MoveFile(r.Context(), userID, fileID, request.ParentFolder)
	if err != nil {
		writeError(w, r, err, "file move failed")
		return
	}

	utils.WriteJSON(w, file, http.StatusOK)
}

func (h *Handler) trashFile(w http.ResponseWriter, r *http.Request) {
	userID, fileID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad file request")
		return
	}

	file, err := h.services.FileService.TrashFile(r.Context(), userID, fileID)
	if err != nil {
		writeError(w, r, err, "file trash failed")
		return
	}

	utils.WriteJSON(w, file, http.StatusOK)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	userID, fileID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad file request")
		return
	}

	if err = h.services.FileService.DeleteFile(r.Context(), userID, fileID); err != nil {
		writeError(w, r, err, "file deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTree(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	forest, err := h.services.TreeService.GetTree(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "building tree failed")
		return
	}

	utils.WriteJSON(w, forest, http.StatusOK)
}

func parseParentField(values []string) (*int64, error) {
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(strings.TrimSpace(values[0]), 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: parent_folder %q", ErrInvalidMultipartForm, values[0])
	}
	return &id, nil
}

func uploadTags(r *http.Request) models.Tags {
	tags := models.Tags{}
	for _, tag := range r.MultipartForm.Value[uploadTagsField] {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// readUploads reads every "files" part into memory. The batch size is
// checked by the file service.
func readUploads(r *http.Request) ([]models.FileUpload, error) {
	headers := r.MultipartForm.File[uploadFilesField]
	uploads := make([]models.FileUpload, 0, len(headers))

	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMultipartForm, err)
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMultipartForm, err)
		}

		uploads = append(uploads, models.FileUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return uploads, nil
}
