// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
)

const defaultSweepBatch = 100

// TombstoneSweeper removes files left in the tombstoned state.
//
// A file delete marks the record, removes the object and then removes the
// record. When the process dies or a store call fails in between, the
// tombstone stays behind; readers already skip it and the sweeper finishes
// the two remaining steps on its next pass.
type TombstoneSweeper struct {
	fileRepository store.FileRepository
	objectStorage  store.ObjectStorage

	interval time.Duration
	batch    uint64

	logger *logger.Logger
}

// NewTombstoneSweeper constructs a sweeper over the file records and object
// store of storages. A zero cfg.SweepInterval makes Run return immediately.
func NewTombstoneSweeper(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *TombstoneSweeper {
	batch := cfg.SweepBatch
	if batch == 0 {
		batch = defaultSweepBatch
	}

	return &TombstoneSweeper{
		fileRepository: storages.FileRepository,
		objectStorage:  storages.ObjectStorage,
		interval:       cfg.SweepInterval,
		batch:          batch,
		logger:         logger,
	}
}

// Run sweeps once right away and then every interval until ctx is done.
func (s *TombstoneSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info().Str("func", "*TombstoneSweeper.Run").Msg("tombstone sweeper is disabled")
		return
	}

	ctx = s.logger.WithContext(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		swept, err := s.Sweep(ctx)
		if err != nil && ctx.Err() == nil {
			s.logger.Err(err).Str("func", "*TombstoneSweeper.Run").Int("swept", swept).Msg("tombstone sweep ended with errors")
		} else if swept > 0 {
			s.logger.Info().Str("func", "*TombstoneSweeper.Run").Int("swept", swept).Msg("tombstones swept")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
		}
	}
}

// Sweep makes a single pass over at most batch tombstones and returns how
// many were removed. A failing file does not stop the pass; all errors are
// joined into the result.
func (s *TombstoneSweeper) Sweep(ctx context.Context) (int, error) {
	files, err := s.fileRepository.ListDeletedFiles(ctx, s.batch)
	if err != nil {
		return 0, fmt.Errorf("error listing tombstones: %w", err)
	}

	var (
		swept int
		errs  []error
	)
	for _, file := range files {
		if err = ctx.Err(); err != nil {
			return swept, err
		}

		if err = s.objectStorage.DeleteObject(ctx, file.Location); err != nil {
			errs = append(errs, fmt.Errorf("error deleting object of file %d: %w", file.FileID, err))
			continue
		}
		if err = s.fileRepository.DeleteFile(ctx, file.UserID, file.FileID); err != nil {
			errs = append(errs, fmt.Errorf("error deleting file %d: %w", file.FileID, err))
			continue
		}
		swept++
	}

	return swept, errors.Join(errs...)
}
