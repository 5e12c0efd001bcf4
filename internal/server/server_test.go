package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/handler"
	myHTTP "github.com/MKhiriev/go-file-keeper/internal/handler/http"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
	"github.com/MKhiriev/go-file-keeper/internal/workers"
)

type signalWorker struct {
	started chan struct{}
	stopped chan struct{}
}

func newSignalWorker() *signalWorker {
	return &signalWorker{started: make(chan struct{}), stopped: make(chan struct{})}
}

func (w *signalWorker) Run(ctx context.Context) {
	close(w.started)
	<-ctx.Done()
	close(w.stopped)
}

func newTestServer(address string, ws *workers.Workers) *server {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	return &server{
		httpServer: newHTTPServer(handler, config.Server{HTTPAddress: address}, logger.Nop()),
		workers:    ws,
		logger:     logger.Nop(),
	}
}

func TestNewServer(t *testing.T) {
	handlers := &handler.Handlers{HTTP: myHTTP.NewHandler(&service.Services{}, config.Server{}, logger.Nop())}

	s, err := NewServer(handlers, nil, config.Server{HTTPAddress: "localhost:8080"}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, s)

	srv, ok := s.(*server)
	require.True(t, ok)
	assert.Equal(t, "localhost:8080", srv.httpServer.server.Addr)
	assert.Equal(t, readHeaderTimeout, srv.httpServer.server.ReadHeaderTimeout)
}

func TestNewServer_NothingToServe(t *testing.T) {
	handlers := &handler.Handlers{HTTP: myHTTP.NewHandler(&service.Services{}, config.Server{}, logger.Nop())}

	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.Server
	}{
		{"no address", handlers, config.Server{}},
		{"no handlers", nil, config.Server{HTTPAddress: "localhost:8080"}},
		{"no http handler", &handler.Handlers{}, config.Server{HTTPAddress: "localhost:8080"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(tt.handlers, nil, tt.cfg, logger.Nop())
			assert.ErrorIs(t, err, errNoServersAreCreated)
			assert.Nil(t, s)
		})
	}
}

func TestRun_StopsWorkersOnShutdown(t *testing.T) {
	worker := newSignalWorker()
	s := newTestServer("127.0.0.1:0", workers.NewWorkers(worker))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	select {
	case <-worker.started:
	case <-time.After(5 * time.Second):
		t.Fatal("worker was not started")
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}

	select {
	case <-worker.stopped:
	default:
		t.Fatal("worker is still running")
	}
}

func TestRun_WithoutWorkers(t *testing.T) {
	s := newTestServer("127.0.0.1:0", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, s.run(ctx))
}

func TestRun_AddressInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	worker := newSignalWorker()
	s := newTestServer(listener.Addr().String(), workers.NewWorkers(worker))

	err = s.run(context.Background())
	assert.ErrorIs(t, err, errListen)

	select {
	case <-worker.started:
		t.Fatal("workers must not start when the address is taken")
	default:
	}
}
