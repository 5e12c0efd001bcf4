package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// Storages groups every repository and the object store used by the
// service layer.
type Storages struct {
	UserRepository     UserRepository
	FolderRepository   FolderRepository
	FileRepository     FileRepository
	ReminderRepository ReminderRepository
	ObjectStorage      ObjectStorage
}

// NewStorages builds the repositories on top of db and connects the object
// store selected by cfg.Driver.
func NewStorages(ctx context.Context, db *DB, cfg config.Objects, log *logger.Logger) (*Storages, error) {
	objects, err := NewObjectStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		FolderRepository:   NewFolderRepository(db, log),
		FileRepository:     NewFileRepository(db, log),
		ReminderRepository: NewReminderRepository(db, log),
		ObjectStorage:      objects,
	}, nil
}

// NewObjectStorage returns the object store selected by cfg.Driver.
func NewObjectStorage(ctx context.Context, cfg config.Objects, log *logger.Logger) (ObjectStorage, error) {
	switch cfg.Driver {
	case config.ObjectsDriverMinio:
		return NewMinioObjectStorage(ctx, cfg, log)
	case config.ObjectsDriverMemory:
		return NewMemoryObjectStorage(log)
	default:
		log.Error().Str("func", "NewObjectStorage").Str("driver", cfg.Driver).Msg("unsupported object storage driver")
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}
