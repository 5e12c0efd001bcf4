package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

func (h *Handler) createFolder(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	var request models.FolderRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	folder, err := h.services.FolderService.CreateFolder(r.Context(), userID, request)
	if err != nil {
		writeError(w, r, err, "folder creation failed")
		return
	}

	utils.WriteJSON(w, folder, http.StatusCreated)
}

func (h *Handler) listRootFolders(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "no user in context")
		return
	}

	folders, err := h.services.FolderService.ListRootFolders(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "listing root folders failed")
		return
	}

	utils.WriteJSON(w, folders, http.StatusOK)
}

func (h *Handler) getFolder(w http.ResponseWriter, r *http.Request) {
	userID, folderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad folder request")
		return
	}

	contents, err := h.services.FolderService.GetFolder(r.Context(), userID, folderID)
	if err != nil {
		writeError(w, r, err, "getting folder failed")
		return
	}

	utils.WriteJSON(w, contents, http.StatusOK)
}

func (h *Handler) updateFolder(w http.ResponseWriter, r *http.Request) {
	userID, folderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad folder request")
		return
	}

	var request models.FolderRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	folder, err := h.services.FolderService.UpdateFolder(r.Context(), userID, folderID, request)
	if err != nil {
		writeError(w, r, err, "folder update failed")
		return
	}

	utils.WriteJSON(w, folder, http.StatusOK)
}

func (h *Handler) moveFolder(w http.ResponseWriter, r *http.Request) {
	userID, folderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad folder request")
		return
	}

	var request models.MoveRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "invalid JSON was passed")
		return
	}

	folder, err := h.services.FolderService.MoveFolder(r.Context(), userID, folderID, request.ParentFolder)
	if err != nil {
		writeError(w, r, err, "folder move failed")
		return
	}

	utils.WriteJSON(w, folder, http.StatusOK)
}

func (h *Handler) trashFolder(w http.ResponseWriter, r *http.Request) {
	userID, folderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad folder request")
		return
	}

	folder, err := h.services.FolderService.TrashFolder(r.Context(), userID, folderID)
	if err != nil {
		writeError(w, r, err, "folder trash failed")
		return
	}

	utils.WriteJSON(w, folder, http.StatusOK)
}

func (h *Handler) deleteFolder(w http.ResponseWriter, r *http.Request) {
	userID, folderID, err := pathIDs(r)
	if err != nil {
		writeError(w, r, err, "bad folder request")
		return
	}

	if err = h.services.FolderService.DeleteFolder(r.Context(), userID, folderID); err != nil {
		writeError(w, r, err, "folder deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathIDs returns the authenticated user and the {id} path parameter.
func pathIDs(r *http.Request) (int64, int64, error) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		return 0, 0, err
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, ErrInvalidID
	}
	return userID, id, nil
}
