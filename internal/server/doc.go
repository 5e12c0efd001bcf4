// Package server wires and runs the file keeper's HTTP server together with
// its background workers.
//
// It owns the process lifecycle: startup, signal handling and graceful
// shutdown of the listener followed by the workers.
package server
