// Package http implements the HTTP transport layer of the file keeper.
//
// It exposes route wiring, request handlers and middleware for the REST API.
// Request tracing, access logging, bearer-token authentication and the
// X-File-Key handoff are handled in this package before requests are
// delegated to the service layer.
package http
