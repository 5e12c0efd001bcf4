// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the middleware and request decoding of this
// package. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrMissingFileKey is returned when a content request comes without the
	// X-File-Key header.
	ErrMissingFileKey = errors.New("missing `X-File-Key` header")

	// ErrInvalidFileKey is returned when X-File-Key is not standard base64
	// or does not decode to a 32-byte key.
	ErrInvalidFileKey = errors.New("invalid `X-File-Key` header")

	ErrInvalidJSON          = errors.New("invalid JSON was passed")
	ErrInvalidID            = errors.New("invalid id in path")
	ErrInvalidMultipartForm = errors.New("invalid multipart form")
	ErrInvalidGzipBody      = errors.New("invalid gzip request body")

	// ErrNoUserInContext means an authenticated route was reached without
	// the auth middleware.
	ErrNoUserInContext = errors.New("no user id in request context")
)
