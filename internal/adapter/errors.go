package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrTampered            = errors.New("stored file failed integrity check")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	ErrNoSession          = errors.New("no session: register or log in first")
	ErrInvalidAddr        = errors.New("invalid server address")
	ErrUnexpectedResponse = errors.New("unexpected response from server")
)
