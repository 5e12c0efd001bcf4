// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/MKhiriev/go-file-keeper/internal/crypto"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
)

const fileKeyHeader = "X-File-Key"

// withFileKey requires the X-File-Key header on content routes. The value
// is the standard base64 of the 32-byte file-encryption key handed out by
// register, login and password change. The decoded key is stored in the
// request context under [utils.FileKeyCtxKey]; it is never logged.
func (h *Handler) withFileKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fek, err := decodeFileKey(r.Header.Get(fileKeyHeader))
		if err != nil {
			writeError(w, r, err, "file key rejected")
			return
		}

		ctx := context.WithValue(r.Context(), utils.FileKeyCtxKey, fek)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func decodeFileKey(value string) ([]byte, error) {
	if value == "" {
		return nil, ErrMissingFileKey
	}

	fek, err := base64.StdEncoding.DecodeString(value)
	if err != nil || len(fek) != crypto.KeySize {
		return nil, ErrInvalidFileKey
	}
	return fek, nil
}

func encodeFileKey(fek []byte) string {
	return base64.StdEncoding.EncodeToString(fek)
}
