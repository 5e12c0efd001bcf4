package server

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/handler"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer builds the HTTP server from handlers. workers may be nil when
// no background work is configured.
func NewServer(handlers *handler.Handlers, workers *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    workers,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

// run serves until ctx is cancelled, then stops the listener and waits for
// in-flight requests and workers to finish.
func (s *server) run(ctx context.Context) error {
	listener, err := s.httpServer.listen()
	if err != nil {
		return fmt.Errorf("%w: %w", errListen, err)
	}

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var wg sync.WaitGroup
	if s.workers != nil {
		s.logger.Info().Msg("launching background workers")
		wg.Go(func() {
			s.workers.Run(workersCtx)
		})
	}

	s.logger.Info().Msg("launching HTTP server")
	wg.Go(func() {
		s.httpServer.serve(listener)
	})

	<-ctx.Done()

	s.logger.Info().Msg("shutting down")
	s.Shutdown()
	stopWorkers()
	wg.Wait()

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
