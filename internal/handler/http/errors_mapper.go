package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-file-keeper/internal/crypto"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/store"
)

// errorStatuses is checked top to bottom; errors that wrap several
// sentinels get the status of the first match.
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrKeyMismatch, http.StatusInternalServerError},
	{service.ErrObjectTampered, http.StatusUnprocessableEntity},

	{service.ErrAuthentication, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrEmptyToken, http.StatusUnauthorized},

	{ErrMissingFileKey, http.StatusBadRequest},
	{ErrInvalidFileKey, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidID, http.StatusBadRequest},
	{ErrInvalidMultipartForm, http.StatusBadRequest},
	{ErrInvalidGzipBody, http.StatusBadRequest},
	{service.ErrPasswordUpdateNotAllowed, http.StatusBadRequest},
	{service.ErrLinkedFileNotFound, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrMalformedKeyMaterial, http.StatusBadRequest},
	{service.ErrKeyMaterialExists, http.StatusBadRequest},
	{service.ErrFolderNotTrashed, http.StatusBadRequest},
	{service.ErrTrashedFolderUpdate, http.StatusBadRequest},
	{service.ErrParentNotFound, http.StatusBadRequest},
	{service.ErrParentTrashed, http.StatusBadRequest},
	{service.ErrMoveIntoDescendant, http.StatusBadRequest},
	{crypto.ErrFormat, http.StatusBadRequest},
	{crypto.ErrInvalidKeyMaterial, http.StatusBadRequest},

	{store.ErrLoginAlreadyExists, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrFolderNotFound, http.StatusNotFound},
	{store.ErrFileNotFound, http.StatusNotFound},
	{store.ErrReminderNotFound, http.StatusNotFound},
	{store.ErrObjectNotFound, http.StatusNotFound},
}

// statusFromError returns the response status for err together with the
// sentinel that decided it, or nil when none matched.
func statusFromError(err error) (int, error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, nil
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err
		}
	}
	return http.StatusInternalServerError, nil
}

// writeError logs err and answers with its mapped status. Client errors
// carry the sentinel text; server errors only the status text.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	status, sentinel := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", status).Msg(msg)
	}

	text := http.StatusText(status)
	if sentinel != nil && status < http.StatusInternalServerError {
		text = sentinel.Error()
	}
	http.Error(w, text, status)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
