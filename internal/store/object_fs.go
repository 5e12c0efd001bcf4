package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/absfs/absfs"
	"github.com/absfs/memfs"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// fsObjectStorage keeps encrypted bodies as files of an absfs filesystem.
// Object keys map to slash separated paths below the filesystem root.
type fsObjectStorage struct {
	mu     sync.RWMutex
	fs     absfs.FileSystem
	logger *logger.Logger
}

// NewFSObjectStorage stores objects in fs.
func NewFSObjectStorage(fs absfs.FileSystem, log *logger.Logger) ObjectStorage {
	log.Debug().Msg("creating filesystem object storage")
	return &fsObjectStorage{
		fs:     fs,
		logger: log,
	}
}

// NewMemoryObjectStorage stores objects in a process-local in-memory
// filesystem. Everything is lost on restart.
func NewMemoryObjectStorage(log *logger.Logger) (ObjectStorage, error) {
	fs, err := memfs.NewFS()
	if err != nil {
		log.Err(err).Str("func", "NewMemoryObjectStorage").Msg("error creating in-memory filesystem")
		return nil, fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	return NewFSObjectStorage(fs, log), nil
}

// objectPath turns key into an absolute path that cannot leave the root.
func objectPath(key string) (string, error) {
	p := path.Clean("/" + key)
	if p == "/" || strings.HasSuffix(key, "/") {
		return "", fmt.Errorf("%w: invalid object key %q", ErrObjectStorage, key)
	}
	return p, nil
}

func (s *fsObjectStorage) PutObject(ctx context.Context, key string, data []byte) error {
	p, err := objectPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.fs.MkdirAll(path.Dir(p), 0o700); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fsObjectStorage.PutObject").Str("key", key).Msg("error creating directory")
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}

	f, err := s.fs.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fsObjectStorage.PutObject").Str("key", key).Msg("error creating object")
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	if _, err = f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	return nil
}

func (s *fsObjectStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	p, err := objectPath(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err = s.fs.Stat(p); os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	}

	f, err := s.fs.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*fsObjectStorage.GetObject").Str("key", key).Msg("error opening object")
		return nil, fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	return data, nil
}

func (s *fsObjectStorage) DeleteObject(ctx context.Context, key string) error {
	p, err := objectPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err = s.fs.Stat(p); os.IsNotExist(err) {
		return nil
	}
	if err = s.fs.Remove(p); err != nil && !os.IsNotExist(err) {
		logger.FromContext(ctx).Err(err).Str("func", "*fsObjectStorage.DeleteObject").Str("key", key).Msg("error removing object")
		return fmt.Errorf("%w: %w", ErrObjectStorage, err)
	}
	return nil
}
